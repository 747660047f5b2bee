package main

import (
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"

	"github.com/mageise/gtd-any/loop"
	"github.com/mageise/gtd-any/puzzle"
)

type Report struct {
	// Configuration
	Duration time.Duration
	Games    int
	Frame    time.Duration
	Limit    time.Duration
	Activity float64
	Width    int
	Height   int

	// Results
	TotalSteps     int64
	TotalTime      time.Duration
	StepTime       Stats
	Outcomes       *Outcomes
	Systems        []loop.SystemStats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// Outcomes aggregates finished games.
type Outcomes struct {
	Played    int
	BestScore int
	MinScore  int
	AvgScore  float64
	MaxLines  int
	AvgLines  float64
	MaxLevel  int
	Reasons   map[puzzle.EndReason]int
	Spawned   map[puzzle.Kind]int
	Clears    [5]int
	Drought   int

	totalScore int
	totalLines int
}

func newOutcomes() *Outcomes {
	return &Outcomes{
		Reasons: make(map[puzzle.EndReason]int),
		Spawned: make(map[puzzle.Kind]int),
	}
}

// Add records the final snapshot of a game.
func (o *Outcomes) Add(snap puzzle.Snapshot) {
	if o.Played == 0 {
		o.MinScore = snap.Score
	}
	o.Played++
	o.totalScore += snap.Score
	o.totalLines += snap.Lines
	o.BestScore = max(o.BestScore, snap.Score)
	o.MinScore = min(o.MinScore, snap.Score)
	o.MaxLines = max(o.MaxLines, snap.Lines)
	o.MaxLevel = max(o.MaxLevel, snap.Level)
	o.AvgScore = float64(o.totalScore) / float64(o.Played)
	o.AvgLines = float64(o.totalLines) / float64(o.Played)
	o.Reasons[snap.Reason]++
}

// AddStats folds one game's piece statistics into the totals.
func (o *Outcomes) AddStats(stats *puzzle.Stats) {
	for _, k := range puzzle.Kinds {
		o.Spawned[k] += stats.Spawned(k)
	}
	for n := 1; n <= 4; n++ {
		o.Clears[n] += stats.Clears(n)
	}
	o.Drought = max(o.Drought, stats.LongestDrought())
}

// AddScheduler sums the per-system timings of one game's scheduler.
func (r *Report) AddScheduler(stats *loop.SchedulerStats) {
	for _, s := range stats.Systems {
		i := slices.IndexFunc(r.Systems, func(have loop.SystemStats) bool { return have.Name == s.Name })
		if i < 0 {
			r.Systems = append(r.Systems, s)
			continue
		}
		have := &r.Systems[i]
		have.ExecutionCount += s.ExecutionCount
		have.TotalDuration += s.TotalDuration
		have.MinDuration = min(have.MinDuration, s.MinDuration)
		have.MaxDuration = max(have.MaxDuration, s.MaxDuration)
		if have.ExecutionCount > 0 {
			have.AvgDuration = have.TotalDuration / time.Duration(have.ExecutionCount)
		}
	}
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Blockfall Bench Report

## Configuration
- **Time Budget:** {{.Duration}}
- **Games Requested:** {{.Games}}
- **Board:** {{.Width}}x{{.Height}}
- **Simulated Frame:** {{.Frame}}
- **Simulated Limit per Game:** {{.Limit}}
- **Bot Activity:** {{printf "%.2f" .Activity}}

## Outcomes
- **Games Played:** {{.Outcomes.Played}}
- **Score:** min {{.Outcomes.MinScore}} / avg {{printf "%.1f" .Outcomes.AvgScore}} / best {{.Outcomes.BestScore}}
- **Lines:** avg {{printf "%.1f" .Outcomes.AvgLines}} / max {{.Outcomes.MaxLines}}
- **Highest Level:** {{.Outcomes.MaxLevel}}
- **End Reasons:**
{{- range $reason, $n := .Outcomes.Reasons}}
  - {{$reason}}: {{$n}}
{{- end}}
- **Pieces Spawned:**
{{- range kinds}}
  - {{.}}: {{index $.Outcomes.Spawned .}}
{{- end}}
- **Clears:** single {{index .Outcomes.Clears 1}}, double {{index .Outcomes.Clears 2}}, triple {{index .Outcomes.Clears 3}}, four {{index .Outcomes.Clears 4}}
- **Longest Drought:** {{.Outcomes.Drought}} pieces

## Loop Performance
- **Total Steps:** {{.TotalSteps}}
- **Total Wall Time:** {{.TotalTime}}
- **Step Time:**
  - **Avg:** {{.StepTime.Avg}}
  - **Min:** {{.StepTime.Min}}
  - **Max:** {{.StepTime.Max}}
{{range .Systems}}
- **{{.Name}}:** {{.ExecutionCount}} runs, avg {{.AvgDuration}}, min {{.MinDuration}}, max {{.MaxDuration}}
{{- end}}

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Sys Memory:     {{.MemStatsStart.Sys}} (start) -> {{.MemStatsEnd.Sys}} (end) -> delta: {{bsub .MemStatsEnd.Sys .MemStatsStart.Sys}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}
`

	fm := template.FuncMap{
		"kinds": func() []puzzle.Kind {
			return puzzle.Kinds[:]
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
