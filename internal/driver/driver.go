// Package driver runs the animation loop: it starts ticking when particles
// are added and stops once a tick produces no motion and no input is held.
package driver

import (
	"image/color"

	"sandfall/internal/core"
)

// State is the animation state.
type State uint8

const (
	// Idle means no tick is scheduled.
	Idle State = iota
	// Running means a tick is scheduled.
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "idle"
}

// Kernel is the part of the simulation the driver animates.
type Kernel interface {
	Spawn(c core.Cell, col color.RGBA) (int, bool)
	Step() bool
}

// TickResult describes one completed tick.
type TickResult struct {
	Tick  uint64
	Moved bool
	Held  bool
	State State
}

// Driver is the Idle/Running state machine around a Kernel. It is
// single-threaded: Spawn, SetHeld, Stop and the scheduled ticks must all run
// on the same goroutine.
type Driver struct {
	kernel Kernel
	sched  Scheduler

	state  State
	held   bool
	closed bool
	inTick bool

	cancel   func()
	gen      uint64
	ticks    uint64
	deferred []func()

	// OnTick, when set, is called after every tick with its outcome.
	OnTick func(TickResult)
}

// New returns an idle driver.
func New(k Kernel, s Scheduler) *Driver {
	return &Driver{kernel: k, sched: s}
}

// State returns the current animation state.
func (d *Driver) State() State { return d.state }

// Held reports whether the input signal is asserted.
func (d *Driver) Held() bool { return d.held }

// Ticks returns the number of ticks run so far.
func (d *Driver) Ticks() uint64 { return d.ticks }

// Spawn adds a particle and starts the loop if it was idle. Rejected spawns
// leave the state unchanged.
func (d *Driver) Spawn(c core.Cell, col color.RGBA) bool {
	if d.closed {
		return false
	}
	if _, ok := d.kernel.Spawn(c, col); !ok {
		return false
	}
	d.start()
	return true
}

// SetHeld asserts or releases the external input signal. While held the loop
// keeps running even when nothing moves.
func (d *Driver) SetHeld(held bool) { d.held = held }

// Stop cancels any scheduled tick and returns to Idle. It is idempotent; a
// later successful Spawn starts the loop again.
func (d *Driver) Stop() {
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.gen++
	d.state = Idle
}

// Close stops the driver for good. Further spawns are rejected and no tick
// will run.
func (d *Driver) Close() {
	d.Stop()
	d.closed = true
	d.held = false
	d.deferred = nil
}

// Closed reports whether Close was called.
func (d *Driver) Closed() bool { return d.closed }

// Defer runs fn immediately unless a tick is in progress, in which case fn
// runs right after that tick completes. Reconfiguration goes through here so
// it never lands mid-tick.
func (d *Driver) Defer(fn func()) {
	if d.inTick {
		d.deferred = append(d.deferred, fn)
		return
	}
	fn()
}

func (d *Driver) start() {
	if d.state == Running || d.closed {
		return
	}
	d.state = Running
	d.schedule()
}

func (d *Driver) schedule() {
	gen := d.gen
	d.cancel = d.sched.Schedule(func() { d.tick(gen) })
}

func (d *Driver) tick(gen uint64) {
	// A tick scheduled before Stop or Close must not run.
	if gen != d.gen || d.closed || d.state != Running {
		return
	}
	d.cancel = nil

	d.inTick = true
	moved := d.kernel.Step()
	d.inTick = false
	d.ticks++

	if moved || d.held {
		d.schedule()
	} else {
		d.state = Idle
	}

	if d.OnTick != nil {
		d.OnTick(TickResult{Tick: d.ticks, Moved: moved, Held: d.held, State: d.state})
	}

	d.flushDeferred()
}

func (d *Driver) flushDeferred() {
	for len(d.deferred) > 0 {
		fn := d.deferred[0]
		d.deferred = d.deferred[1:]
		fn()
	}
}
