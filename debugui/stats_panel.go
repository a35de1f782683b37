package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/meteors/game"
)

// frameHistory is a fixed ring of frame times in milliseconds.
type frameHistory struct {
	samples []float32
	next    int
	filled  int
	last    time.Time
}

func newFrameHistory(size int) *frameHistory {
	return &frameHistory{samples: make([]float32, size)}
}

func (h *frameHistory) add(ms float32) {
	h.samples[h.next] = ms
	h.next = (h.next + 1) % len(h.samples)
	if h.filled < len(h.samples) {
		h.filled++
	}
}

// tick records the time since the previous tick. The first call only starts
// the clock.
func (h *frameHistory) tick(now time.Time) {
	if !h.last.IsZero() {
		h.add(float32(now.Sub(h.last).Seconds() * 1000))
	}
	h.last = now
}

// average ignores slots that were never written.
func (h *frameHistory) average() float32 {
	if h.filled == 0 {
		return 0
	}
	var sum float32
	for i := range h.filled {
		sum += h.samples[i]
	}
	return sum / float32(h.filled)
}

// NewStatsPanel shows the HUD values, storage counts and per-system timings.
func NewStatsPanel(w *game.World, historyFrames int) Panel {
	history := newFrameHistory(historyFrames)

	return Panel{
		Name: "stats",
		Render: func() {
			history.tick(time.Now())

			imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
			imgui.SetNextWindowSizeV(imgui.NewVec2(340, 360), imgui.CondOnce)
			if !imgui.BeginV("Stats", nil, imgui.WindowFlagsNone) {
				imgui.End()
				return
			}

			hud := w.HUD()
			imgui.Text(fmt.Sprintf("State: %s", hud.State))
			imgui.Text(fmt.Sprintf("Score: %d  Lives: %d  Wave: %d", hud.Score, hud.Lives, hud.Wave))

			imgui.Separator()
			stats := w.Storage().CollectStats()
			imgui.Text(fmt.Sprintf("Entities: %d", stats.TotalEntityCount))
			imgui.Text(fmt.Sprintf("Archetypes: %d", stats.ArchetypeCount))
			imgui.Text(fmt.Sprintf("Pending events: %d", stats.PendingEvents))

			avg := history.average()
			if avg > 0 {
				imgui.Text(fmt.Sprintf("Frame: %.2f ms (%.0f FPS)", avg, 1000/avg))
			}
			imgui.PlotLinesFloatPtr("##frametime", &history.samples[0], int32(len(history.samples)))

			sched := w.Scheduler().GetStats()
			if imgui.TreeNodeStr(fmt.Sprintf("Systems (%d frames)", sched.Frames)) {
				const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSizingFixedFit
				if imgui.BeginTableV("Systems", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
					imgui.TableSetupColumn("Name")
					imgui.TableSetupColumn("Avg (ms)")
					imgui.TableSetupColumn("Max (ms)")
					imgui.TableHeadersRow()
					for _, sys := range sched.Systems {
						imgui.TableNextRow()
						imgui.TableNextColumn()
						imgui.Text(sys.Name)
						imgui.TableNextColumn()
						imgui.Text(fmt.Sprintf("%.3f", float64(sys.AvgDuration.Microseconds())/1000))
						imgui.TableNextColumn()
						imgui.Text(fmt.Sprintf("%.3f", float64(sys.MaxDuration.Microseconds())/1000))
					}
					imgui.EndTable()
				}
				imgui.TreePop()
			}

			imgui.End()
		},
	}
}
