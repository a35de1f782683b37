package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/meteors/game"
)

const startPanelFlags = imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
	imgui.WindowFlagsNoMove | imgui.WindowFlagsAlwaysAutoResize | imgui.WindowFlagsNoCollapse

// NewStartPanel returns the centred start window. It is drawn only while the
// HUD says the start button is visible; clicking it calls World.Start.
func NewStartPanel(w *game.World) Panel {
	vp := w.Viewport()
	center := imgui.NewVec2(float32(vp.Width/2), float32(vp.Height/2))

	return Panel{
		Name: "start",
		Render: func() {
			hud := w.HUD()
			if !hud.Visibility.StartButton {
				return
			}

			imgui.SetNextWindowPosV(center, imgui.CondAlways, imgui.NewVec2(0.5, 0.5))
			if imgui.BeginV("##start", nil, startPanelFlags) {
				if hud.State == game.Ended {
					imgui.Text(fmt.Sprintf("Final score: %d  (wave %d)", hud.Score, hud.Wave))
				}
				if imgui.ButtonV("Start", imgui.NewVec2(160, 40)) {
					w.Start()
				}
			}
			imgui.End()
		},
	}
}
