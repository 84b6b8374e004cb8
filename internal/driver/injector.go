package driver

import (
	"time"

	"sandfall/internal/core"
)

// Injector rate-limits spawning while the pointer is held. The first spawn
// happens as soon as the pointer goes down; later ones follow at the
// configured rate.
type Injector struct {
	step *core.FixedStep
	held bool
	at   core.Cell
}

// NewInjector returns an injector emitting rate particles per second.
func NewInjector(rate float64) *Injector {
	return &Injector{step: core.NewFixedStep(rate)}
}

// SetRate changes the injection rate.
func (in *Injector) SetRate(rate float64) { in.step.SetRate(rate) }

// Interval returns the time between two injected particles.
func (in *Injector) Interval() time.Duration { return in.step.Interval() }

// Press starts injecting at c.
func (in *Injector) Press(c core.Cell) {
	in.held = true
	in.at = c
	in.step.Prime()
}

// Move retargets injection to c.
func (in *Injector) Move(c core.Cell) { in.at = c }

// Release stops injecting.
func (in *Injector) Release() { in.held = false }

// Held reports whether the pointer is down.
func (in *Injector) Held() bool { return in.held }

// Advance reports the cell to spawn at when a particle is due after delta.
func (in *Injector) Advance(delta time.Duration) (core.Cell, bool) {
	if !in.held {
		return core.Cell{}, false
	}
	if !in.step.Advance(delta) {
		return core.Cell{}, false
	}
	return in.at, true
}
