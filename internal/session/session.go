// Package session wires the kernel, color resolver, driver and injector into
// the single object a host talks to. Hosts forward pointer events and frame
// deltas; the session decides when to spawn and when to tick.
package session

import (
	"context"
	"image/color"
	"log/slog"
	"time"

	"sandfall/internal/config"
	"sandfall/internal/core"
	"sandfall/internal/driver"
	"sandfall/internal/palette"
	"sandfall/internal/sand"
	rng "sandfall/pkg/core"
)

// BaseTPS is the tick rate at full gravity. The effective rate is
// BaseTPS * Gravity.
const BaseTPS = 60

// Frame is everything a host needs to redraw the field.
type Frame struct {
	Particles  []sand.Particle
	Cols       int
	Rows       int
	CellSize   int
	Background color.RGBA
}

// Option customizes a Session.
type Option func(*Session)

// WithLogger routes session diagnostics to l.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithRand replaces the seeded random source derived from the config.
func WithRand(r rng.Rand) Option {
	return func(s *Session) {
		if r != nil {
			s.rng = r
		}
	}
}

// Session is single-threaded. Every method must be called from the host's
// update goroutine.
type Session struct {
	cfg config.Config
	log *slog.Logger
	rng rng.Rand

	world    *sand.World
	resolver *palette.Resolver
	sched    *driver.FrameScheduler
	drv      *driver.Driver
	inject   *driver.Injector
	cadence  *core.FixedStep

	spawned   uint64
	observers []func(driver.TickResult)
}

// New builds a session for cfg. The config is validated first.
func New(cfg config.Config, opts ...Option) *Session {
	cfg = cfg.Validate()
	s := &Session{
		cfg: cfg,
		log: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rng.NewRNG(cfg.Seed)
	}

	size := cfg.GridSize()
	s.world = sand.New(size.W, size.H, s.rng)
	s.resolver = palette.NewResolver(s.rng)
	s.sched = driver.NewFrameScheduler()
	s.drv = driver.New(s.world, s.sched)
	s.drv.OnTick = s.afterTick
	s.inject = driver.NewInjector(cfg.ParticleRate)
	s.cadence = core.NewFixedStep(tickRate(cfg))

	s.log.Debug("session created",
		"cols", size.W, "rows", size.H,
		"mode", cfg.ColorMode, "theme", cfg.Theme,
		"tps", tickRate(cfg))
	return s
}

func tickRate(cfg config.Config) float64 { return BaseTPS * cfg.Gravity }

// Config returns the active configuration.
func (s *Session) Config() config.Config { return s.cfg }

// World exposes the kernel for inspection. Callers must not mutate it.
func (s *Session) World() *sand.World { return s.world }

// State returns the animation state.
func (s *Session) State() driver.State { return s.drv.State() }

// Ticks returns the number of ticks run so far.
func (s *Session) Ticks() uint64 { return s.drv.Ticks() }

// Spawned returns the number of particles accepted so far.
func (s *Session) Spawned() uint64 { return s.spawned }

// Observe registers fn to receive every tick result.
func (s *Session) Observe(fn func(driver.TickResult)) {
	s.observers = append(s.observers, fn)
}

// Press starts injecting particles at pixel (x, y).
func (s *Session) Press(x, y int) {
	s.inject.Press(s.cellAt(x, y))
	s.drv.SetHeld(true)
}

// Move retargets injection to pixel (x, y). It is a no-op while released.
func (s *Session) Move(x, y int) {
	s.inject.Move(s.cellAt(x, y))
}

// Release stops injecting.
func (s *Session) Release() {
	s.inject.Release()
	s.drv.SetHeld(false)
}

// Held reports whether the pointer is down.
func (s *Session) Held() bool { return s.inject.Held() }

func (s *Session) cellAt(x, y int) core.Cell {
	return core.CellOf(x, y, s.cfg.CellSize)
}

// Advance feeds one host frame of dt. A due tick runs first, then a due
// injection. It reports whether a tick ran.
func (s *Session) Advance(dt time.Duration) bool {
	ticked := false
	if s.drv.State() == driver.Running {
		if s.cadence.Advance(dt) {
			ticked = s.sched.Pump() > 0
		}
	} else {
		s.cadence.Prime()
	}
	if c, ok := s.inject.Advance(dt); ok {
		s.Spawn(c)
	}
	return ticked
}

// Spawn drops one particle at c using the configured color rule. Occupied or
// out of range cells are rejected.
func (s *Session) Spawn(c core.Cell) bool {
	col := s.resolver.ColorFor(s.cfg.Palette())
	if !s.drv.Spawn(c, col) {
		return false
	}
	s.spawned++
	return true
}

// Step runs one tick immediately, ignoring the cadence. It reports false when
// the driver was idle.
func (s *Session) Step() bool {
	if s.drv.State() != driver.Running {
		return false
	}
	return s.sched.Pump() > 0
}

// Settle steps until the driver goes idle or maxTicks ticks have run. It
// returns the ticks run and whether the field came to rest.
func (s *Session) Settle(maxTicks int) (int, bool) {
	n := 0
	for n < maxTicks && s.Step() {
		n++
	}
	return n, s.drv.State() == driver.Idle
}

// Clear removes every particle and stops the loop. Held input restarts it on
// the next injection.
func (s *Session) Clear() {
	s.drv.Defer(func() {
		s.drv.Stop()
		s.world.Clear()
		s.log.Debug("field cleared")
	})
}

// Reconfigure swaps in cfg between ticks. A change of width, height or cell
// size rebuilds the grid and discards every particle; other changes keep the
// field.
func (s *Session) Reconfigure(cfg config.Config) {
	cfg = cfg.Validate()
	s.drv.Defer(func() { s.apply(cfg) })
}

func (s *Session) apply(cfg config.Config) {
	prev := s.cfg
	s.cfg = cfg
	s.inject.SetRate(cfg.ParticleRate)
	s.cadence.SetRate(tickRate(cfg))
	if !prev.SameGeometry(cfg) {
		size := cfg.GridSize()
		s.drv.Stop()
		s.world.Resize(size.W, size.H)
		s.log.Debug("grid resized", "cols", size.W, "rows", size.H)
	}
	s.log.Debug("config applied",
		"gravity", cfg.Gravity, "rate", cfg.ParticleRate,
		"mode", cfg.ColorMode, "theme", cfg.Theme)
}

// Frame returns the current render snapshot. The particle slice is only
// valid until the next tick.
func (s *Session) Frame() Frame {
	size := s.world.Size()
	return Frame{
		Particles:  s.world.Particles(),
		Cols:       size.W,
		Rows:       size.H,
		CellSize:   s.cfg.CellSize,
		Background: s.cfg.Background(),
	}
}

// Close stops the session for good. Repeated calls are no-ops.
func (s *Session) Close() {
	if s.drv.Closed() {
		return
	}
	s.inject.Release()
	s.drv.Close()
	s.log.Debug("session closed", "ticks", s.drv.Ticks(), "particles", s.world.Len())
}

func (s *Session) afterTick(res driver.TickResult) {
	if res.State == driver.Idle {
		s.log.Debug("field at rest", "tick", res.Tick, "particles", s.world.Len())
	}
	if s.log.Enabled(context.Background(), slog.LevelDebug) {
		if err := s.world.Check(); err != nil {
			s.log.Error("kernel invariant violated", "tick", res.Tick, "err", err)
		}
	}
	for _, fn := range s.observers {
		fn(res)
	}
}
