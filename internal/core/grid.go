package core

// Grid is a row-major occupancy index. Out-of-range cells read as unoccupied
// so neighbor probes near the edges need no special casing; callers that need
// a legal destination must also check InBounds.
type Grid struct {
	W, H  int
	data  []uint8
	count int
}

// NewGrid allocates an empty grid with the given dimensions. Non-positive
// dimensions produce an empty grid that rejects every cell.
func NewGrid(w, h int) *Grid {
	g := &Grid{}
	g.Reset(w, h)
	return g
}

// Reset reallocates the grid to w x h with every cell empty.
func (g *Grid) Reset(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	g.W, g.H = w, h
	g.data = make([]uint8, w*h)
	g.count = 0
}

// Cells exposes the backing slice (1 = occupied) for read-only consumers such
// as rasterizers. Callers must not write through it.
func (g *Grid) Cells() []uint8 { return g.data }

// Index returns the linear slice index for c. It does not bounds-check.
func (g *Grid) Index(c Cell) int { return c.Row*g.W + c.Col }

// InBounds reports whether c addresses a cell inside the grid.
func (g *Grid) InBounds(c Cell) bool {
	return c.Col >= 0 && c.Col < g.W && c.Row >= 0 && c.Row < g.H
}

// Occupied reports whether c holds a particle. Cells outside the grid are
// never occupied.
func (g *Grid) Occupied(c Cell) bool {
	if !g.InBounds(c) {
		return false
	}
	return g.data[g.Index(c)] != 0
}

// Free reports whether c is inside the grid and empty, i.e. a legal
// destination for a particle.
func (g *Grid) Free(c Cell) bool {
	return g.InBounds(c) && g.data[g.Index(c)] == 0
}

// Set marks c occupied or empty. Writes outside the grid are ignored.
func (g *Grid) Set(c Cell, occupied bool) {
	if !g.InBounds(c) {
		return
	}
	idx := g.Index(c)
	was := g.data[idx] != 0
	switch {
	case occupied && !was:
		g.data[idx] = 1
		g.count++
	case !occupied && was:
		g.data[idx] = 0
		g.count--
	}
}

// Move clears from and marks to in a single operation. It reports false and
// leaves the grid untouched unless from is occupied and to is free.
func (g *Grid) Move(from, to Cell) bool {
	if !g.Occupied(from) || !g.Free(to) {
		return false
	}
	g.data[g.Index(from)] = 0
	g.data[g.Index(to)] = 1
	return true
}

// Count returns the number of occupied cells.
func (g *Grid) Count() int { return g.count }

// Clear empties every cell without reallocating.
func (g *Grid) Clear() {
	for i := range g.data {
		g.data[i] = 0
	}
	g.count = 0
}
