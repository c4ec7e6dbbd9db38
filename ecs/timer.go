package ecs

import (
	"math"
	"time"
)

// TimerMode selects whether a Timer fires once or keeps cycling.
type TimerMode int

const (
	TimerOnce TimerMode = iota
	TimerRepeating
)

// Timer counts elapsed frame time towards a fixed duration. Systems own timers
// through components and advance them with Tick once per frame.
type Timer struct {
	duration time.Duration
	elapsed  time.Duration
	mode     TimerMode
	finished bool
	times    int
}

// NewTimer creates a stopped-at-zero timer of the given duration and mode.
func NewTimer(duration time.Duration, mode TimerMode) Timer {
	return Timer{duration: duration, mode: mode}
}

// TimerFromSeconds is NewTimer for durations expressed in seconds. Engine API
// for callers that configure timers in float seconds.
func TimerFromSeconds(seconds float64, mode TimerMode) Timer {
	return NewTimer(Seconds(seconds), mode)
}

// Seconds converts a frame delta in seconds to a time.Duration, rounded to
// the nearest nanosecond so fixed-rate deltas sum to whole seconds.
func Seconds(seconds float64) time.Duration {
	return time.Duration(math.Round(seconds * float64(time.Second)))
}

// Tick advances the timer. A once-mode timer that has already finished stays
// finished and never reports JustFinished again.
func (t *Timer) Tick(delta time.Duration) *Timer {
	if t.mode == TimerOnce && t.finished {
		t.times = 0
		return t
	}

	t.elapsed += delta
	if t.elapsed < t.duration {
		t.times = 0
		t.finished = false
		return t
	}

	t.finished = true
	switch t.mode {
	case TimerRepeating:
		if t.duration <= 0 {
			t.times = 1
			t.elapsed = 0
			break
		}
		t.times = int(t.elapsed / t.duration)
		t.elapsed %= t.duration
	default:
		t.times = 1
		t.elapsed = t.duration
	}

	return t
}

// JustFinished reports whether the last Tick completed at least one cycle.
func (t *Timer) JustFinished() bool {
	return t.times > 0
}

// Finished reports whether the timer has reached its duration. For repeating
// timers this is only true on the tick that wrapped.
func (t *Timer) Finished() bool {
	return t.finished
}

// TimesFinishedThisTick is the number of cycles completed by the last Tick.
func (t *Timer) TimesFinishedThisTick() int {
	return t.times
}

// Reset rewinds the timer to zero elapsed time.
func (t *Timer) Reset() {
	t.elapsed = 0
	t.finished = false
	t.times = 0
}

func (t *Timer) Elapsed() time.Duration {
	return t.elapsed
}

func (t *Timer) Duration() time.Duration {
	return t.duration
}

func (t *Timer) Mode() TimerMode {
	return t.mode
}

// Fraction is elapsed/duration in [0, 1].
func (t *Timer) Fraction() float64 {
	if t.duration <= 0 {
		return 1
	}
	return float64(t.elapsed) / float64(t.duration)
}
