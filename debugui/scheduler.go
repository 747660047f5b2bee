package debugui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/mageise/gtd-any/loop"
)

// Sort columns of the scheduler table.
const (
	columnName = iota
	columnAvg
	columnMin
	columnMax
	columnRuns
)

// SchedulerWindow shows per-system timings of a scheduler.
type SchedulerWindow struct {
	scheduler *loop.Scheduler
}

func NewSchedulerWindow(s *loop.Scheduler) *SchedulerWindow {
	return &SchedulerWindow{scheduler: s}
}

func millis(d time.Duration) string {
	return fmt.Sprintf("%.3f", float64(d.Microseconds())/1000.0)
}

func sortSystems(systems []loop.SystemStats, column int, descending bool) {
	slices.SortStableFunc(systems, func(a, b loop.SystemStats) int {
		var c int
		switch column {
		case columnName:
			c = strings.Compare(a.Name, b.Name)
		case columnAvg:
			c = cmp.Compare(a.AvgDuration, b.AvgDuration)
		case columnMin:
			c = cmp.Compare(a.MinDuration, b.MinDuration)
		case columnMax:
			c = cmp.Compare(a.MaxDuration, b.MaxDuration)
		case columnRuns:
			c = cmp.Compare(a.ExecutionCount, b.ExecutionCount)
		}
		if descending {
			return -c
		}
		return c
	})
}

func (sw *SchedulerWindow) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(340, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(420, 220), imgui.CondOnce)

	if !imgui.BeginV("Scheduler", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := sw.scheduler.GetStats()
	if sw.scheduler.Running() {
		imgui.TextColored(imgui.NewVec4(0.0, 1.0, 0.0, 1.0), "RUNNING")
	} else {
		imgui.TextColored(imgui.NewVec4(1.0, 0.8, 0.0, 1.0), "HALTED")
	}
	imgui.Text(fmt.Sprintf("Ticks: %d  Posted: %d  Executions: %d", stats.Ticks, stats.Posted, stats.TotalExecutions))
	imgui.Separator()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsSizingFixedFit
	if imgui.BeginTableV("Systems", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Name")
		imgui.TableSetupColumn("Avg (ms)")
		imgui.TableSetupColumn("Min (ms)")
		imgui.TableSetupColumn("Max (ms)")
		imgui.TableSetupColumn("Runs")
		imgui.TableHeadersRow()

		systems := stats.Systems
		if sortSpecs := imgui.TableGetSortSpecs(); sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			sortSystems(systems, int(spec.ColumnIndex()), spec.SortDirection() == imgui.SortDirectionDescending)
		}

		for _, sys := range systems {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			imgui.Text(sys.Name)

			imgui.TableNextColumn()
			imgui.Text(millis(sys.AvgDuration))

			imgui.TableNextColumn()
			if sys.ExecutionCount > 0 {
				imgui.Text(millis(sys.MinDuration))
			} else {
				imgui.Text("-")
			}

			imgui.TableNextColumn()
			imgui.Text(millis(sys.MaxDuration))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", sys.ExecutionCount))
		}
		imgui.EndTable()
	}

	imgui.End()
}
