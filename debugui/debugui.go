// Package debugui draws the start button and the debug panels with Dear ImGui.
// Panels are entities carrying a Panel component; PanelSystem defers their render
// functions into the frame's command buffer so they run between the backend's
// BeginFrame and EndFrame.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/meteors/ecs"
	"github.com/plus3/meteors/game"
)

// Panel holds an ImGui render function.
type Panel struct {
	Name   string
	Render func()
}

// InputCapture mirrors whether ImGui is consuming mouse or keyboard input.
type InputCapture struct {
	Mouse    bool
	Keyboard bool
}

// PanelSystem defers every Panel's render function and refreshes InputCapture.
type PanelSystem struct {
	Panels  ecs.Query[struct{ *Panel }]
	Capture ecs.Singleton[InputCapture]
}

func (s *PanelSystem) Execute(frame *ecs.UpdateFrame) {
	io := imgui.CurrentIO()
	capture := s.Capture.Get()
	capture.Mouse = io.WantCaptureMouse()
	capture.Keyboard = io.WantCaptureKeyboard()

	for item := range s.Panels.Values() {
		frame.Commands.Defer(item.Render)
	}
}

// Options selects which panels Install spawns.
type Options struct {
	Debug          bool
	HistoryFrames  int
	EntitiesOnPage int
}

// Install registers the panel components on the world's storage, spawns the
// start panel plus, with opts.Debug, the stats and entity panels, and
// registers PanelSystem last so panels see the finished frame. The returned
// singleton tracks ImGui's input capture.
func Install(w *game.World, opts Options) *ecs.Singleton[InputCapture] {
	storage := w.Storage()
	ecs.RegisterComponent[Panel](storage.Registry())

	storage.Spawn(NewStartPanel(w))
	if opts.Debug {
		if opts.HistoryFrames <= 0 {
			opts.HistoryFrames = 120
		}
		if opts.EntitiesOnPage <= 0 {
			opts.EntitiesOnPage = 50
		}
		storage.Spawn(NewStatsPanel(w, opts.HistoryFrames))
		storage.Spawn(NewEntityPanel(w.Storage(), opts.EntitiesOnPage))
	}

	capture := ecs.NewSingleton(storage, InputCapture{})
	w.Scheduler().Register(&PanelSystem{})
	return capture
}
