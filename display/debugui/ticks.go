package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tetrad/engine"
)

// tickHistory is a ring of recent per-frame average tick times in ms.
type tickHistory struct {
	samples   []float32
	next      int
	lastTicks int64
	lastTotal time.Duration
}

func newTickHistory(n int) *tickHistory {
	return &tickHistory{samples: make([]float32, n)}
}

// push records the average tick time since the previous call.
func (h *tickHistory) push(stats engine.Stats) {
	ticks := stats.Ticks - h.lastTicks
	if ticks <= 0 {
		return
	}
	spent := stats.TotalTime - h.lastTotal
	h.lastTicks, h.lastTotal = stats.Ticks, stats.TotalTime

	h.samples[h.next] = float32(spent.Seconds()*1000) / float32(ticks)
	h.next = (h.next + 1) % len(h.samples)
}

func (h *tickHistory) mean() float32 {
	var sum float32
	for _, v := range h.samples {
		sum += v
	}
	return sum / float32(len(h.samples))
}

func renderTicks(stats engine.Stats, h *tickHistory) {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 320), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(260, 240), imgui.CondOnce)
	if !imgui.BeginV("Ticks", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Ticks: %d", stats.Ticks))
	imgui.Text(fmt.Sprintf("Last: %v", stats.LastDuration))
	imgui.Text(fmt.Sprintf("Min/Avg/Max: %v / %v / %v", stats.MinDuration, stats.AvgDuration, stats.MaxDuration))
	imgui.Text(fmt.Sprintf("Recent avg: %.3f ms", h.mean()))
	imgui.Separator()
	imgui.Text("Tick time (ms)")
	imgui.PlotLinesFloatPtr("##ticktime", &h.samples[0], int32(len(h.samples)))
	imgui.Separator()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("Counters", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Counter")
		imgui.TableSetupColumn("Value")
		imgui.TableHeadersRow()
		for _, row := range []struct {
			name  string
			value int
		}{
			{"Pieces locked", stats.PiecesLocked},
			{"Rows cleared", stats.RowsCleared},
			{"Holds", stats.Holds},
			{"Hard drops", stats.HardDrops},
			{"Deferred actions", stats.Deferred},
		} {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(row.name)
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", row.value))
		}
		imgui.EndTable()
	}
	imgui.End()
}
