package core

import "time"

// FixedStep turns a stream of frame deltas into discrete events at a steady
// rate. It drives both the simulation tick cadence and the injection rate.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
}

// NewFixedStep constructs a FixedStep firing rate times per second. The first
// Advance call fires immediately.
func NewFixedStep(rate float64) *FixedStep {
	fs := &FixedStep{}
	fs.SetRate(rate)
	fs.accumulator = fs.step
	return fs
}

// SetRate changes the firing rate. Non-positive rates fall back to 60/s.
func (f *FixedStep) SetRate(rate float64) {
	if rate <= 0 {
		rate = 60
	}
	f.step = time.Duration(float64(time.Second) / rate)
	if f.step <= 0 {
		f.step = time.Nanosecond
	}
}

// Interval returns the time between two events.
func (f *FixedStep) Interval() time.Duration { return f.step }

// Prime makes the next Advance fire regardless of elapsed time.
func (f *FixedStep) Prime() {
	f.accumulator = f.step
}

// Advance adds delta to the accumulator and reports whether an event is due.
// At most one event fires per call; surplus time beyond one extra interval is
// dropped so a stalled host does not burst afterwards.
func (f *FixedStep) Advance(delta time.Duration) bool {
	if delta > 0 {
		f.accumulator += delta
	}
	if f.accumulator < f.step {
		return false
	}
	f.accumulator -= f.step
	if f.accumulator > f.step {
		f.accumulator = f.step
	}
	return true
}
