// Package render draws the world with ebiten and feeds it keyboard input.
package render

import (
	"errors"
	"fmt"
	"image/color"
	_ "image/png"
	"io/fs"
	"math"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/meteors/ecs"
	"github.com/plus3/meteors/game"
	"github.com/plus3/meteors/physics"
)

var (
	background = color.RGBA{0x05, 0x05, 0x12, 0xff}
	shipColor  = color.RGBA{0xe0, 0xe0, 0xff, 0xff}
	rockColor  = color.RGBA{0xb0, 0x90, 0x70, 0xff}
	shotColor  = color.RGBA{0xff, 0xe0, 0x40, 0xff}
)

// ToScreen converts world coordinates (origin at the centre, y up) to screen
// pixels (origin top-left, y down).
func ToScreen(p game.Position, vp game.Viewport) (float64, float64) {
	return vp.Width/2 + p.X, vp.Height/2 - p.Y
}

// shipOutline returns the three screen-space corners of a ship triangle
// centred on (x, y) with its nose along orientation.
func shipOutline(x, y, orientation, r float64) [3][2]float32 {
	corner := func(angle, dist float64) [2]float32 {
		// screen y grows downwards
		return [2]float32{float32(x + dist*math.Cos(angle)), float32(y - dist*math.Sin(angle))}
	}
	return [3][2]float32{
		corner(orientation, r*1.5),
		corner(orientation+2.5, r),
		corner(orientation-2.5, r),
	}
}

type drawable struct {
	*game.Position
	*game.Sprite
	Movement *game.Movement `ecs:"optional"`
	Collider *game.Collider `ecs:"optional"`
}

// Renderer draws every entity with a Sprite plus the HUD.
type Renderer struct {
	world    *game.World
	items    *ecs.Query[drawable]
	dir      string
	images   map[string]*ebiten.Image
	viewport game.Viewport
	logger   *log.Logger
}

// NewRenderer loads sprites lazily from dir. A missing or unreadable file is
// logged once and the entity is drawn with vector shapes instead.
func NewRenderer(w *game.World, dir string, logger *log.Logger) *Renderer {
	return &Renderer{
		world:    w,
		items:    ecs.NewQuery[drawable](w.Storage()),
		dir:      dir,
		images:   make(map[string]*ebiten.Image),
		viewport: w.Viewport(),
		logger:   logger,
	}
}

func (r *Renderer) image(name string) *ebiten.Image {
	if img, ok := r.images[name]; ok {
		return img
	}
	img, _, err := ebitenutil.NewImageFromFile(filepath.Join(r.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.logger.Debug("asset missing, using vector shape", "asset", name)
		} else {
			r.logger.Warn("failed to load asset", "asset", name, "err", err)
		}
		img = nil
	}
	r.images[name] = img
	return img
}

func (r *Renderer) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	r.items.Execute()
	for item := range r.items.Values() {
		x, y := ToScreen(*item.Position, r.viewport)
		orientation := 0.0
		if item.Movement != nil {
			orientation = item.Movement.Orientation
		}

		if img := r.image(item.Sprite.Asset); img != nil {
			drawSprite(screen, img, x, y, orientation)
			continue
		}
		if item.Collider != nil {
			drawShape(screen, item.Collider, x, y, orientation)
		}
	}

	r.drawHUD(screen)
}

func drawSprite(screen, img *ebiten.Image, x, y, orientation float64) {
	b := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
	// sprites point up at orientation pi/2; ebiten rotates clockwise
	op.GeoM.Rotate(math.Pi/2 - orientation)
	op.GeoM.Translate(x, y)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}

func drawShape(screen *ebiten.Image, c *game.Collider, x, y, orientation float64) {
	switch c.Kind {
	case physics.KindShip:
		pts := shipOutline(x, y, orientation, c.Radius)
		for i := range pts {
			a, b := pts[i], pts[(i+1)%len(pts)]
			vector.StrokeLine(screen, a[0], a[1], b[0], b[1], 2, shipColor, true)
		}
	case physics.KindMeteor:
		vector.StrokeCircle(screen, float32(x), float32(y), float32(c.Radius), 2, rockColor, true)
	case physics.KindBullet:
		vector.DrawFilledCircle(screen, float32(x), float32(y), float32(max(c.Radius, 1.5)), shotColor, true)
	}
}

func (r *Renderer) drawHUD(screen *ebiten.Image) {
	hud := r.world.HUD()
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("SCORE %d   LIVES %d   WAVE %d", hud.Score, hud.Lives, hud.Wave), 10, 10)

	if hud.Visibility.GameOver {
		const text = "GAME OVER"
		// the debug font is 6x16 per glyph
		x := int(r.viewport.Width)/2 - len(text)*3
		y := int(r.viewport.Height)/2 - 80
		ebitenutil.DebugPrintAt(screen, text, x, y)
	}
}
