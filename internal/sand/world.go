// Package sand holds the falling-sand kernel: the particle store, its
// occupancy grid and the per-tick update rules.
package sand

import (
	"image/color"

	"sandfall/internal/core"
	rng "sandfall/pkg/core"
)

// Particle is a single grain of sand.
type Particle struct {
	Cell  core.Cell
	Color color.RGBA
}

// World owns the particle list and the occupancy grid as one aggregate. Every
// mutation goes through Spawn, Step, Clear or Resize so both views always
// agree.
type World struct {
	grid      *core.Grid
	particles []Particle
	rng       rng.Rand

	lastMoves int
}

// New returns an empty world of cols x rows cells. The random source breaks
// ties between the two diagonal slides; it must not be nil.
func New(cols, rows int, r rng.Rand) *World {
	return &World{grid: core.NewGrid(cols, rows), rng: r}
}

// Size returns the grid dimensions in cells.
func (w *World) Size() core.Size { return core.Size{W: w.grid.W, H: w.grid.H} }

// Len returns the number of live particles.
func (w *World) Len() int { return len(w.particles) }

// Particles exposes the live particles in insertion order. The slice is owned
// by the world and is only valid until the next mutation.
func (w *World) Particles() []Particle { return w.particles }

// Occupied reports whether c currently holds a particle.
func (w *World) Occupied(c core.Cell) bool { return w.grid.Occupied(c) }

// Cells exposes the occupancy buffer (1 = occupied) in row-major order.
func (w *World) Cells() []uint8 { return w.grid.Cells() }

// LastMoves returns how many particles moved during the latest Step.
func (w *World) LastMoves() int { return w.lastMoves }

// Spawn adds a particle at c. It returns the new particle's index, or false
// when c is outside the grid or already occupied.
func (w *World) Spawn(c core.Cell, col color.RGBA) (int, bool) {
	if !w.grid.Free(c) {
		return 0, false
	}
	w.grid.Set(c, true)
	w.particles = append(w.particles, Particle{Cell: c, Color: col})
	return len(w.particles) - 1, true
}

// Clear removes every particle.
func (w *World) Clear() {
	w.particles = w.particles[:0]
	w.grid.Clear()
	w.lastMoves = 0
}

// Resize rebuilds the world at cols x rows. Existing particles are discarded
// since their positions may not fit the new bounds.
func (w *World) Resize(cols, rows int) {
	w.grid.Reset(cols, rows)
	w.particles = nil
	w.lastMoves = 0
}

// Step advances every particle by one tick and reports whether any moved.
//
// Particles resolve newest first. Each move is visible to the particles
// processed after it, so a column can cascade within a single tick.
func (w *World) Step() bool {
	moves := 0
	for i := len(w.particles) - 1; i >= 0; i-- {
		p := &w.particles[i]
		dst, ok := w.destination(p.Cell)
		if !ok {
			continue
		}
		if !w.grid.Move(p.Cell, dst) {
			continue
		}
		p.Cell = dst
		moves++
	}
	w.lastMoves = moves
	return moves > 0
}

// destination picks where the particle at c goes this tick. A particle that
// is out of bounds, or whose cell is not marked in the grid, stays frozen.
func (w *World) destination(c core.Cell) (core.Cell, bool) {
	if !w.grid.Occupied(c) {
		return c, false
	}
	below := c.Below()
	if !w.grid.InBounds(below) {
		return c, false
	}
	if w.grid.Free(below) {
		return below, true
	}
	left, right := c.BelowLeft(), c.BelowRight()
	canLeft, canRight := w.grid.Free(left), w.grid.Free(right)
	switch {
	case canLeft && canRight:
		if w.rng.IntN(2) == 0 {
			return left, true
		}
		return right, true
	case canLeft:
		return left, true
	case canRight:
		return right, true
	}
	return c, false
}
