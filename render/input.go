package render

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/meteors/game"
)

// Bindings maps each game key to the physical keys that trigger it.
type Bindings map[game.Key][]ebiten.Key

// DefaultBindings covers both arrow keys and WASD.
func DefaultBindings() Bindings {
	return Bindings{
		game.KeyThrust:    {ebiten.KeyArrowUp, ebiten.KeyW},
		game.KeyTurnLeft:  {ebiten.KeyArrowLeft, ebiten.KeyA},
		game.KeyTurnRight: {ebiten.KeyArrowRight, ebiten.KeyD},
		game.KeyFire:      {ebiten.KeySpace},
		game.KeyStart:     {ebiten.KeyEnter},
	}
}

// KeyboardInput reads the keyboard through ebiten. While Blocked reports
// true (ImGui owns the keyboard) every key reads as released.
type KeyboardInput struct {
	Bindings Bindings
	Blocked  func() bool
}

func NewKeyboardInput() *KeyboardInput {
	return &KeyboardInput{Bindings: DefaultBindings()}
}

func (k *KeyboardInput) blocked() bool {
	return k.Blocked != nil && k.Blocked()
}

func (k *KeyboardInput) Pressed(key game.Key) bool {
	if k.blocked() {
		return false
	}
	for _, ek := range k.Bindings[key] {
		if ebiten.IsKeyPressed(ek) {
			return true
		}
	}
	return false
}

func (k *KeyboardInput) JustPressed(key game.Key) bool {
	if k.blocked() {
		return false
	}
	for _, ek := range k.Bindings[key] {
		if inpututil.IsKeyJustPressed(ek) {
			return true
		}
	}
	return false
}
