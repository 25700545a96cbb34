package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/kamstrup/intmap"

	"github.com/plus3/calmtris/tetris"
)

type Report struct {
	// Configuration
	Duration time.Duration
	MaxGames int
	Seed     uint64
	Width    int
	Height   int
	Bag      bool
	FPS      int

	// Results
	TotalFrames    int64
	TotalTime      time.Duration
	FrameTime      Stats
	Games          []tetris.Stats
	Score          IntStats
	Lines          IntStats
	Pieces         *intmap.Map[tetris.PieceType, int]
	DroppedInputs  int64
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

func NewReport() *Report {
	return &Report{
		Pieces: intmap.New[tetris.PieceType, int](tetris.PieceCount),
	}
}

// AddGame records a finished game and the pieces dealt during it.
func (r *Report) AddGame(stats tetris.Stats, counts map[tetris.PieceType]int) {
	r.Games = append(r.Games, stats)
	r.Score.Samples = append(r.Score.Samples, stats.Score)
	r.Lines.Samples = append(r.Lines.Samples, stats.LinesCleared)

	for t, n := range counts {
		total, _ := r.Pieces.Get(t)
		r.Pieces.Put(t, total+n)
	}
}

// Stats keeps running frame-time aggregates, so a long soak holds no
// per-frame history.
type Stats struct {
	Min   time.Duration
	Max   time.Duration
	Avg   time.Duration
	Total time.Duration
	Count int64
}

func (s *Stats) Add(d time.Duration) {
	if s.Count == 0 {
		s.Min = d
		s.Max = d
	}
	s.Min = min(s.Min, d)
	s.Max = max(s.Max, d)
	s.Total += d
	s.Count++
}

func (s *Stats) Finalize() {
	if s.Count == 0 {
		return
	}
	s.Avg = s.Total / time.Duration(s.Count)
}

type IntStats struct {
	Min     int
	Max     int
	Avg     float64
	Total   int
	Samples []int
}

func (s *IntStats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	s.Min = s.Samples[0]
	s.Max = s.Samples[0]
	s.Total = 0

	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		s.Total += sample
	}
	s.Avg = float64(s.Total) / float64(len(s.Samples))
}

func (r *Report) Finalize() {
	r.FrameTime.Finalize()
	r.Score.Finalize()
	r.Lines.Finalize()
}

type HistogramRow struct {
	Piece string
	Count int
	Share float64
}

// Histogram lists every piece type in catalog order with its share of all
// pieces dealt.
func (r *Report) Histogram() []HistogramRow {
	total := 0
	for t := tetris.PieceI; t <= tetris.PieceL; t++ {
		n, _ := r.Pieces.Get(t)
		total += n
	}

	rows := make([]HistogramRow, 0, tetris.PieceCount)
	for t := tetris.PieceI; t <= tetris.PieceL; t++ {
		n, _ := r.Pieces.Get(t)
		row := HistogramRow{Piece: t.String(), Count: n}
		if total > 0 {
			row.Share = float64(n) / float64(total) * 100
		}
		rows = append(rows, row)
	}
	return rows
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Tetris Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Max Games:** {{if .MaxGames}}{{.MaxGames}}{{else}}unlimited{{end}}
- **Seed:** {{.Seed}}
- **Board:** {{.Width}}x{{.Height}}
- **Randomizer:** {{if .Bag}}bag{{else}}uniform{{end}}
- **Simulated FPS:** {{.FPS}}

## Performance Results
- **Total Frames:** {{.TotalFrames}}
- **Total Test Time:** {{.TotalTime}}
- **Dropped Inputs:** {{.DroppedInputs}}
- **Frame Time:**
  - **Avg:** {{.FrameTime.Avg}}
  - **Min:** {{.FrameTime.Min}}
  - **Max:** {{.FrameTime.Max}}

## Games
- **Games Finished:** {{len .Games}}
- **Score:** avg {{printf "%.1f" .Score.Avg}}, min {{.Score.Min}}, max {{.Score.Max}}
- **Lines:** avg {{printf "%.1f" .Lines.Avg}}, min {{.Lines.Min}}, max {{.Lines.Max}}, total {{.Lines.Total}}

## Pieces Dealt
| Piece | Count | Share |
|-------|-------|-------|
{{range .Histogram}}| {{.Piece}} | {{.Count}} | {{printf "%.1f%%" .Share}} |
{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
{{end}}`

	fm := template.FuncMap{
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
		return fmt.Errorf("parse report template: %w", err)
	}

	return tmpl.Execute(w, r)
}
