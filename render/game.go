package render

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/meteors/debugui"
	"github.com/plus3/meteors/game"
)

// Game runs a World inside ebiten. The ImGui frame brackets each world step
// so that panels deferred by debugui.PanelSystem are drawn in the same frame.
type Game struct {
	world    *game.World
	renderer *Renderer
	backend  *debugui.Backend
	dt       float64
}

func NewGame(w *game.World, renderer *Renderer, backend *debugui.Backend, tps int) *Game {
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	ebiten.SetTPS(tps)
	return &Game{world: w, renderer: renderer, backend: backend, dt: 1 / float64(tps)}
}

func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	g.backend.BeginFrame()
	g.world.Step(g.dt)
	g.backend.EndFrame()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen)
	g.backend.Draw(screen)
}

// Layout keeps the logical screen at the viewport size so world coordinates
// map one to one onto pixels.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.backend.Layout(outsideWidth, outsideHeight)
	vp := g.world.Viewport()
	return int(vp.Width), int(vp.Height)
}
