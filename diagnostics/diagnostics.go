// Package diagnostics measures frame timing and world size, logs a summary
// periodically and draws it in the debug overlay.
package diagnostics

import (
	"time"

	"go.uber.org/zap"

	"github.com/plus3/handcannon/ecs"
	"github.com/plus3/handcannon/lifetime"
	"github.com/plus3/handcannon/logging"
)

// Diagnostics is the running frame summary, stored as a singleton.
type Diagnostics struct {
	// FrameTimes is a ring of recent frame times in milliseconds.
	FrameTimes []float32
	next       int
	filled     int

	Frames   int64
	Entities int
}

// New keeps the last historyFrames frame times.
func New(historyFrames int) Diagnostics {
	return Diagnostics{FrameTimes: make([]float32, max(1, historyFrames))}
}

// Record adds one frame.
func (d *Diagnostics) Record(dt time.Duration, entities int) {
	if len(d.FrameTimes) == 0 {
		d.FrameTimes = make([]float32, 1)
	}
	d.FrameTimes[d.next] = float32(dt.Seconds() * 1000)
	d.next = (d.next + 1) % len(d.FrameTimes)
	d.filled = min(d.filled+1, len(d.FrameTimes))
	d.Frames++
	d.Entities = entities
}

// AverageFrameTime is the mean over the recorded history.
func (d *Diagnostics) AverageFrameTime() time.Duration {
	if d.filled == 0 {
		return 0
	}
	var total float64
	for _, ms := range d.recent() {
		total += float64(ms)
	}
	return time.Duration(total / float64(d.filled) * float64(time.Millisecond))
}

// MaxFrameTime is the slowest frame in the history.
func (d *Diagnostics) MaxFrameTime() time.Duration {
	var worst float32
	for _, ms := range d.recent() {
		worst = max(worst, ms)
	}
	return time.Duration(float64(worst) * float64(time.Millisecond))
}

// FPS derived from AverageFrameTime; 0 before any frame was recorded.
func (d *Diagnostics) FPS() float64 {
	avg := d.AverageFrameTime()
	if avg <= 0 {
		return 0
	}
	return float64(time.Second) / float64(avg)
}

func (d *Diagnostics) recent() []float32 {
	if d.filled < len(d.FrameTimes) {
		return d.FrameTimes[:d.filled]
	}
	return d.FrameTimes
}

// System records every frame and logs a summary every interval.
type System struct {
	Diagnostics ecs.Singleton[Diagnostics]
	Collected   ecs.Singleton[lifetime.Stats]

	logger    *zap.Logger
	interval  ecs.Timer
	scheduler *ecs.Scheduler
}

// NewSystem logs through logger every interval; an interval of 0 never logs.
// Per-system timings are included at debug level when scheduler is set.
func NewSystem(logger *zap.Logger, interval time.Duration, scheduler *ecs.Scheduler) *System {
	return &System{
		logger:    logging.OrNop(logger).Named("diagnostics"),
		interval:  ecs.NewTimer(interval, ecs.TimerRepeating),
		scheduler: scheduler,
	}
}

func (s *System) Execute(frame *ecs.UpdateFrame) {
	diag := s.Diagnostics.Get()
	if diag == nil {
		return
	}
	diag.Record(frame.Delta(), frame.Storage.EntityCount())

	if s.interval.Duration() <= 0 || !s.interval.Tick(frame.Delta()).JustFinished() {
		return
	}
	s.log(diag)
}

func (s *System) log(diag *Diagnostics) {
	fields := []zap.Field{
		zap.Float64("fps", diag.FPS()),
		zap.Duration("frame_time_avg", diag.AverageFrameTime()),
		zap.Duration("frame_time_max", diag.MaxFrameTime()),
		zap.Int64("frames", diag.Frames),
		zap.Int("entities", diag.Entities),
	}
	if collected := s.Collected.Get(); collected != nil {
		fields = append(fields, zap.Int64("despawned", collected.Despawned))
	}
	s.logger.Info("frame diagnostics", fields...)

	if s.scheduler == nil || !s.logger.Core().Enabled(zap.DebugLevel) {
		return
	}
	for _, system := range s.scheduler.GetStats().Systems {
		s.logger.Debug("system timing",
			zap.String("system", system.Name),
			zap.Duration("avg", system.AvgDuration),
			zap.Duration("max", system.MaxDuration),
			zap.Int64("runs", system.ExecutionCount),
		)
	}
}
