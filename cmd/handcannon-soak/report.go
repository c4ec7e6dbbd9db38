package main

import (
	"fmt"
	"io"
	"math"
	"runtime"
	"slices"
	"text/template"
	"time"

	"github.com/plus3/handcannon/cannon"
)

type Report struct {
	// Configuration
	Duration   time.Duration
	Delta      time.Duration
	FireEvery  int
	CycleEvery int
	MoveEvery  int
	FireAmount int

	// Results
	Frames          int
	TotalTime       time.Duration
	UpdateTime      Stats
	PeakProjectiles int
	ProjectileCap   int
	PeakEntities    int
	FinalEntities   int
	Archetypes      int
	Despawned       int64
	GCPauseMetrics  bool
	MemStatsStart   runtime.MemStats
	MemStatsEnd     runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	P99     time.Duration
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
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
	s.P99 = percentile(s.Samples, 0.99)
}

func percentile(samples []time.Duration, p float64) time.Duration {
	sorted := make([]time.Duration, len(samples))
	copy(sorted, samples)
	slices.Sort(sorted)
	idx := int(math.Ceil(p*float64(len(sorted)))) - 1
	return sorted[max(idx, 0)]
}

// projectileCap is the most projectiles that can be alive at once when fire
// is pressed every fireEvery frames. Zero means fire is never pressed.
func projectileCap(settings cannon.Settings, fireEvery int, dt float64) int {
	if fireEvery <= 0 {
		return 0
	}
	perShot := settings.FireAmount * settings.FireAmount

	interval := float64(fireEvery) * dt
	if fireEvery == 1 {
		// Held down: one press, then auto-fire if the cannon has it.
		if !settings.AutoFire {
			return perShot
		}
		interval = max(settings.FireRate.Seconds(), dt)
	}

	// Expired projectiles are deleted on the following flush, so one extra
	// volley can overlap.
	shots := int(math.Floor(settings.ProjectileLifetime.Seconds()/interval)) + 2
	return shots * perShot
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Hand Cannon Soak Report

## Run Configuration
- **Simulated Duration:** {{.Duration}}
- **Frame Delta:** {{.Delta}}
- **Fire Every:** {{.FireEvery}} frames ({{.FireAmount}}x{{.FireAmount}} grid)
- **Cycle Every:** {{.CycleEvery}} frames
- **Move Every:** {{.MoveEvery}} frames

## Simulation Results
- **Frames:** {{.Frames}}
- **Wall Time:** {{.TotalTime}}
- **Peak Projectiles:** {{.PeakProjectiles}}{{if .ProjectileCap}} (cap {{.ProjectileCap}}){{end}}
- **Peak Entities:** {{.PeakEntities}}
- **Final Entities:** {{.FinalEntities}}
- **Archetypes:** {{.Archetypes}}
- **Despawned:** {{.Despawned}}
- **Update Time (Frame):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **P99:** {{.UpdateTime.P99}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}

## Memory Usage (MiB)
- Heap Alloc:     {{mb .MemStatsStart.HeapAlloc}} (start) -> {{mb .MemStatsEnd.HeapAlloc}} (end) -> delta: {{mb (bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc)}}
- Total Alloc:    {{mb .MemStatsStart.TotalAlloc}} (start) -> {{mb .MemStatsEnd.TotalAlloc}} (end)
- Sys Memory:     {{mb .MemStatsStart.Sys}} (start) -> {{mb .MemStatsEnd.Sys}} (end)
- Num GC:         {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
{{end}}`

	fm := template.FuncMap{
		"mb": func(v any) string {
			switch val := v.(type) {
			case uint64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			case int64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			default:
				return "N/A"
			}
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
