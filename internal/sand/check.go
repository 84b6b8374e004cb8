package sand

import (
	"errors"
	"fmt"
)

// ErrInvariant marks a broken grid/store consistency guarantee.
var ErrInvariant = errors.New("sand: invariant violated")

// Check verifies that every particle is inside the grid, that no two
// particles share a cell and that the grid marks exactly the particle cells.
// It is meant for tests and debug hosts; Step never depends on it.
func (w *World) Check() error {
	seen := make(map[int]int, len(w.particles))
	for i, p := range w.particles {
		if !w.grid.InBounds(p.Cell) {
			return fmt.Errorf("%w: particle %d at (%d,%d) outside %dx%d", ErrInvariant, i, p.Cell.Col, p.Cell.Row, w.grid.W, w.grid.H)
		}
		idx := w.grid.Index(p.Cell)
		if other, dup := seen[idx]; dup {
			return fmt.Errorf("%w: particles %d and %d share (%d,%d)", ErrInvariant, other, i, p.Cell.Col, p.Cell.Row)
		}
		seen[idx] = i
		if !w.grid.Occupied(p.Cell) {
			return fmt.Errorf("%w: particle %d at (%d,%d) not marked in grid", ErrInvariant, i, p.Cell.Col, p.Cell.Row)
		}
	}
	if n := w.grid.Count(); n != len(w.particles) {
		return fmt.Errorf("%w: grid marks %d cells for %d particles", ErrInvariant, n, len(w.particles))
	}
	return nil
}
