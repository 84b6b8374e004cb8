package driver

import (
	"image/color"
	"testing"
	"time"

	"sandfall/internal/core"
	"sandfall/internal/sand"
	rng "sandfall/pkg/core"
)

var grain = color.RGBA{R: 200, G: 180, B: 120, A: 255}

// scriptedKernel reports motion for a fixed number of steps.
type scriptedKernel struct {
	movesLeft int
	steps     int
	reject    bool
	onStep    func()
}

func (k *scriptedKernel) Spawn(core.Cell, color.RGBA) (int, bool) {
	if k.reject {
		return 0, false
	}
	return 0, true
}

func (k *scriptedKernel) Step() bool {
	k.steps++
	if k.onStep != nil {
		k.onStep()
	}
	if k.movesLeft > 0 {
		k.movesLeft--
		return true
	}
	return false
}

func pumpUntilIdle(t *testing.T, s *FrameScheduler, d *Driver, limit int) int {
	t.Helper()
	frames := 0
	for d.State() == Running {
		if frames >= limit {
			t.Fatalf("driver still running after %d frames", limit)
		}
		s.Pump()
		frames++
	}
	return frames
}

func TestSpawnStartsAndSettledTickStops(t *testing.T) {
	k := &scriptedKernel{movesLeft: 3}
	s := NewFrameScheduler()
	d := New(k, s)

	if d.State() != Idle {
		t.Fatal("new driver should be idle")
	}
	if !d.Spawn(core.Cell{}, grain) {
		t.Fatal("spawn should succeed")
	}
	if d.State() != Running || s.Pending() != 1 {
		t.Fatalf("spawn should schedule one tick, state=%v pending=%d", d.State(), s.Pending())
	}

	d.Spawn(core.Cell{}, grain)
	if s.Pending() != 1 {
		t.Fatalf("spawning while running must not schedule twice, pending=%d", s.Pending())
	}

	frames := pumpUntilIdle(t, s, d, 10)
	if frames != 4 || k.steps != 4 {
		t.Fatalf("expected 3 moving ticks plus one settled tick, frames=%d steps=%d", frames, k.steps)
	}
	if s.Pending() != 0 {
		t.Fatal("idle driver must not leave a tick scheduled")
	}
}

func TestRejectedSpawnStaysIdle(t *testing.T) {
	k := &scriptedKernel{reject: true}
	s := NewFrameScheduler()
	d := New(k, s)
	if d.Spawn(core.Cell{}, grain) {
		t.Fatal("rejected spawn should report false")
	}
	if d.State() != Idle || s.Pending() != 0 {
		t.Fatal("rejected spawn must not start the loop")
	}
}

func TestHeldInputKeepsRunning(t *testing.T) {
	k := &scriptedKernel{}
	s := NewFrameScheduler()
	d := New(k, s)

	d.SetHeld(true)
	d.Spawn(core.Cell{}, grain)
	for i := 0; i < 5; i++ {
		s.Pump()
		if d.State() != Running {
			t.Fatalf("frame %d: held input should keep the loop alive", i)
		}
	}

	d.SetHeld(false)
	s.Pump()
	if d.State() != Idle {
		t.Fatal("releasing input with nothing moving should stop the loop")
	}
}

func TestStopIsIdempotentAndCancelsPendingTick(t *testing.T) {
	k := &scriptedKernel{movesLeft: 100}
	s := NewFrameScheduler()
	d := New(k, s)

	d.Spawn(core.Cell{}, grain)
	s.Pump()
	d.Stop()
	d.Stop()
	if d.State() != Idle {
		t.Fatal("stop should return to idle")
	}
	if ran := s.Pump(); ran != 0 {
		t.Fatalf("no tick may run after stop, ran %d", ran)
	}
	if k.steps != 1 {
		t.Fatalf("expected exactly one step before stop, got %d", k.steps)
	}

	d.Spawn(core.Cell{}, grain)
	if d.State() != Running {
		t.Fatal("spawn after stop should restart the loop")
	}
}

type leakyScheduler struct {
	fns []func()
}

func (l *leakyScheduler) Schedule(fn func()) func() {
	l.fns = append(l.fns, fn)
	return func() {}
}

func TestStaleTickAfterCloseIsIgnored(t *testing.T) {
	k := &scriptedKernel{movesLeft: 100}
	s := &leakyScheduler{}
	d := New(k, s)

	d.Spawn(core.Cell{}, grain)
	if d.Closed() {
		t.Fatal("driver reports closed before Close")
	}
	d.Close()
	d.Close()
	if !d.Closed() {
		t.Fatal("driver should report closed")
	}
	for _, fn := range s.fns {
		fn()
	}
	if k.steps != 0 {
		t.Fatalf("a tick fired after close, steps=%d", k.steps)
	}
	if d.Spawn(core.Cell{}, grain) {
		t.Fatal("closed driver must reject spawns")
	}
	if len(s.fns) != 1 {
		t.Fatalf("closed driver must not schedule, scheduled %d", len(s.fns))
	}
}

func TestDeferWaitsForTickBoundary(t *testing.T) {
	var order []string
	k := &scriptedKernel{}
	s := NewFrameScheduler()
	d := New(k, s)
	k.onStep = func() {
		order = append(order, "step-begin")
		d.Defer(func() { order = append(order, "reconfigure") })
		order = append(order, "step-end")
	}
	d.OnTick = func(TickResult) { order = append(order, "tick") }

	d.Defer(func() { order = append(order, "immediate") })
	d.Spawn(core.Cell{}, grain)
	s.Pump()

	want := []string{"immediate", "step-begin", "step-end", "tick", "reconfigure"}
	if len(order) != len(want) {
		t.Fatalf("order %v, expected %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order %v, expected %v", order, want)
		}
	}
}

func TestOnTickReportsOutcome(t *testing.T) {
	k := &scriptedKernel{movesLeft: 1}
	s := NewFrameScheduler()
	d := New(k, s)
	var results []TickResult
	d.OnTick = func(r TickResult) { results = append(results, r) }

	d.Spawn(core.Cell{}, grain)
	pumpUntilIdle(t, s, d, 5)

	if len(results) != 2 {
		t.Fatalf("expected 2 tick results, got %d", len(results))
	}
	if !results[0].Moved || results[0].State != Running || results[0].Tick != 1 {
		t.Fatalf("unexpected first result %+v", results[0])
	}
	if results[1].Moved || results[1].State != Idle || d.Ticks() != 2 {
		t.Fatalf("unexpected second result %+v", results[1])
	}
}

func TestDriverWithSandKernelSettles(t *testing.T) {
	w := sand.New(10, 10, rng.NewRNG(1))
	s := NewFrameScheduler()
	d := New(w, s)

	d.Spawn(core.Cell{Col: 5, Row: 0}, grain)
	frames := pumpUntilIdle(t, s, d, 20)
	if frames != 10 {
		t.Fatalf("expected 9 falling ticks and one settled tick, got %d", frames)
	}
	if got := w.Particles()[0].Cell; got != (core.Cell{Col: 5, Row: 9}) {
		t.Fatalf("particle should rest on the floor, got %+v", got)
	}
}

func TestInjectorRate(t *testing.T) {
	in := NewInjector(50)
	if in.Interval() != 20*time.Millisecond {
		t.Fatalf("unexpected interval %v", in.Interval())
	}
	if _, ok := in.Advance(time.Second); ok {
		t.Fatal("released injector must not emit")
	}

	at := core.Cell{Col: 3, Row: 1}
	in.Press(at)
	c, ok := in.Advance(0)
	if !ok || c != at {
		t.Fatal("press should emit immediately")
	}

	emitted := 0
	in.Move(core.Cell{Col: 4, Row: 1})
	for frame := 0; frame < 60; frame++ {
		if c, ok := in.Advance(time.Second / 60); ok {
			emitted++
			if c.Col != 4 {
				t.Fatalf("injection should follow the pointer, got %+v", c)
			}
		}
	}
	if emitted < 49 || emitted > 51 {
		t.Fatalf("expected about 50 particles in one second, got %d", emitted)
	}

	in.Release()
	if _, ok := in.Advance(time.Second); ok {
		t.Fatal("release should stop injection")
	}
}
