package diagnostics

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/handcannon/ecs"
)

// PerformanceWindow draws the Diagnostics singleton and per-system timings.
type PerformanceWindow struct {
	scheduler *ecs.Scheduler
}

func NewPerformanceWindow(scheduler *ecs.Scheduler) *PerformanceWindow {
	return &PerformanceWindow{scheduler: scheduler}
}

func (w *PerformanceWindow) Render(storage *ecs.Storage) {
	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	var diag *Diagnostics
	if !storage.ReadSingleton(&diag) || len(diag.FrameTimes) == 0 {
		imgui.Text("No diagnostics recorded")
		return
	}

	imgui.Text(fmt.Sprintf("Entities: %d", diag.Entities))
	imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)",
		float64(diag.AverageFrameTime().Microseconds())/1000, diag.FPS()))
	imgui.Text(fmt.Sprintf("Worst Frame: %.2f ms", float64(diag.MaxFrameTime().Microseconds())/1000))

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &diag.FrameTimes[0], int32(len(diag.FrameTimes)))

	if w.scheduler == nil || !imgui.TreeNodeStr("Systems") {
		return
	}
	defer imgui.TreePop()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if !imgui.BeginTableV("SystemStatsTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		return
	}
	imgui.TableSetupColumn("System")
	imgui.TableSetupColumn("Avg")
	imgui.TableSetupColumn("Max")
	imgui.TableHeadersRow()

	for _, system := range w.scheduler.GetStats().Systems {
		imgui.TableNextRow()
		imgui.TableNextColumn()
		imgui.Text(system.Name)
		imgui.TableNextColumn()
		imgui.Text(system.AvgDuration.String())
		imgui.TableNextColumn()
		imgui.Text(system.MaxDuration.String())
	}
	imgui.EndTable()
}
