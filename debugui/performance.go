package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/AllenDang/cimgui-go/implot"
)

// PerformanceWindow plots frame times. Call Record once per frame.
type PerformanceWindow struct {
	frames *History
}

func NewPerformanceWindow(historyFrames int) *PerformanceWindow {
	return &PerformanceWindow{frames: NewHistory(historyFrames)}
}

// Record adds one frame's duration.
func (pw *PerformanceWindow) Record(dt time.Duration) {
	pw.frames.Push(float32(dt.Seconds() * 1000))
}

func (pw *PerformanceWindow) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 420), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(320, 240), imgui.CondOnce)

	if !imgui.BeginV("Performance", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	avg := pw.frames.Average()
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
	} else {
		imgui.Text("Avg Frame Time: -")
	}

	samples := pw.frames.Ordered()
	if len(samples) == 0 {
		imgui.End()
		return
	}

	imgui.Separator()
	if imgui.BeginTabBar("PerfTabs") {
		if imgui.BeginTabItem("Sparkline") {
			imgui.PlotLinesFloatPtr("##frametime", &samples[0], int32(len(samples)))
			imgui.EndTabItem()
		}
		if imgui.BeginTabItem("Plot") {
			if implot.BeginPlotV("Frame Time", imgui.NewVec2(-1, -1), 0) {
				implot.SetupAxesV("Frame", "ms", 0, implot.AxisFlagsAutoFit)
				implot.PlotLineFloatPtrInt("frame", &samples[0], int32(len(samples)))
				implot.EndPlot()
			}
			imgui.EndTabItem()
		}
		imgui.EndTabBar()
	}

	imgui.End()
}
