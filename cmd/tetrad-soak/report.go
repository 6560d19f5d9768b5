package main

import (
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/tetrad/engine"
)

type Report struct {
	// Configuration
	Seed            uint64
	CommandsPerTick int

	// Results
	Duration       time.Duration
	Games          int
	Commands       int64
	Ticks          int64
	PiecesLocked   int
	RowsCleared    int
	HardDrops      int
	Holds          int
	BestScore      int
	TickTime       Stats
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

func (r *Report) addGame(s engine.Stats, score int) {
	r.Games++
	r.Ticks += s.Ticks
	r.PiecesLocked += s.PiecesLocked
	r.RowsCleared += s.RowsCleared
	r.HardDrops += s.HardDrops
	r.Holds += s.Holds
	r.BestScore = max(r.BestScore, score)
}

const reportTemplate = `
# Engine Soak Report

## Configuration
- **Seed:** {{.Seed}}
- **Commands per tick:** {{.CommandsPerTick}}

## Games
- **Games played:** {{.Games}}
- **Best score:** {{.BestScore}}
- **Commands issued:** {{.Commands}}
- **Pieces locked:** {{.PiecesLocked}}
- **Rows cleared:** {{.RowsCleared}}
- **Hard drops:** {{.HardDrops}}
- **Holds:** {{.Holds}}

## Tick Performance
- **Total ticks:** {{.Ticks}}
- **Run time:** {{.Duration}}
- **Tick time:**
  - **Avg:** {{.TickTime.Avg}}
  - **Min:** {{.TickTime.Min}}
  - **Max:** {{.TickTime.Max}}

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pauses
- **Total GC Pause:** {{usub64 .MemStatsEnd.PauseTotalNs .MemStatsStart.PauseTotalNs | ns}}
{{end}}`

var reportFuncs = template.FuncMap{
	"bsub": func(a, b uint64) int64 {
		return int64(a) - int64(b)
	},
	"usub": func(a, b uint32) uint32 {
		return a - b
	},
	"usub64": func(a, b uint64) uint64 {
		return a - b
	},
	"ns": func(ns uint64) string {
		return time.Duration(ns).String()
	},
}

func (r *Report) Generate(w io.Writer) error {
	tmpl, err := template.New("report").Funcs(reportFuncs).Parse(reportTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, r)
}
