package session

import (
	"fmt"
	"strings"
	"time"

	"sandfall/internal/core"
	"sandfall/internal/driver"
	rng "sandfall/pkg/core"
)

// Pattern selects how headless runs drop particles.
type Pattern uint8

const (
	// PatternPour holds the pointer at the top center until enough particles
	// were injected.
	PatternPour Pattern = iota
	// PatternRandom drops one particle per tick at a random column of the
	// top row.
	PatternRandom
	// PatternLine fills the free cells of the top row each tick.
	PatternLine
)

var patternNames = []string{"pour", "random", "line"}

func (p Pattern) String() string {
	if int(p) < len(patternNames) {
		return patternNames[p]
	}
	return fmt.Sprintf("pattern(%d)", p)
}

// ParsePattern resolves a pattern name.
func ParsePattern(s string) (Pattern, error) {
	for i, name := range patternNames {
		if strings.EqualFold(s, name) {
			return Pattern(i), nil
		}
	}
	return 0, fmt.Errorf("unknown pattern %q (want one of %s)", s, strings.Join(patternNames, ", "))
}

// PatternNames lists the accepted pattern names.
func PatternNames() []string { return append([]string(nil), patternNames...) }

// DropResult summarizes a headless run.
type DropResult struct {
	Spawned int
	Ticks   int
	Settled bool
}

// Drop adds n particles following p and then steps until the field rests or
// maxTicks ticks have run in total. Spawns that land on occupied cells are
// retried on later ticks, so a full top row ends the run early.
func (s *Session) Drop(p Pattern, n, maxTicks int) DropResult {
	start := s.spawned
	ticks := 0
	budget := func() bool { return ticks < maxTicks }

	switch p {
	case PatternPour:
		top := core.Cell{Col: s.world.Size().W / 2}
		s.Press(top.Col*s.cfg.CellSize, 0)
		dt := time.Duration(float64(time.Second) / tickRate(s.cfg))
		for int(s.spawned-start) < n && budget() {
			if !s.Advance(dt) {
				if s.drv.State() == driver.Idle && s.world.Occupied(top) {
					// Every injection lands on the spout and is rejected.
					break
				}
				continue
			}
			ticks++
			if s.world.LastMoves() == 0 && s.world.Occupied(top) {
				// The pile reached the spout.
				break
			}
		}
		s.Release()
	case PatternRandom:
		r := rng.NewRNG(s.cfg.Seed + 1)
		cols := s.world.Size().W
		misses := 0
		for int(s.spawned-start) < n && budget() && misses < cols {
			if s.Spawn(core.Cell{Col: r.IntN(cols)}) {
				misses = 0
			} else {
				misses++
			}
			if s.Step() {
				ticks++
			}
		}
	case PatternLine:
		cols := s.world.Size().W
		for int(s.spawned-start) < n && budget() {
			added := 0
			for col := 0; col < cols && int(s.spawned-start) < n; col++ {
				if s.Spawn(core.Cell{Col: col}) {
					added++
				}
			}
			if added == 0 {
				break
			}
			if s.Step() {
				ticks++
			}
		}
	}

	settled, rest := s.Settle(maxTicks - ticks)
	return DropResult{
		Spawned: int(s.spawned - start),
		Ticks:   ticks + settled,
		Settled: rest,
	}
}
