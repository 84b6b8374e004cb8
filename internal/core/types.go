package core

// Size describes the dimensions of a simulation grid in cells.
type Size struct {
	W int
	H int
}

// Cell addresses a single grid position. Col grows to the right and Row grows
// downwards, so the floor is Row == H-1.
type Cell struct {
	Col int
	Row int
}

// Below returns the cell directly underneath c.
func (c Cell) Below() Cell { return Cell{Col: c.Col, Row: c.Row + 1} }

// BelowLeft returns the diagonal neighbor down and to the left.
func (c Cell) BelowLeft() Cell { return Cell{Col: c.Col - 1, Row: c.Row + 1} }

// BelowRight returns the diagonal neighbor down and to the right.
func (c Cell) BelowRight() Cell { return Cell{Col: c.Col + 1, Row: c.Row + 1} }

// CellOf converts pixel coordinates into the cell that contains them. Division
// floors towards negative infinity so points left of or above the surface map
// to negative (out of bounds) cells rather than folding onto column or row 0.
func CellOf(x, y, cellSize int) Cell {
	if cellSize <= 0 {
		cellSize = 1
	}
	return Cell{Col: floorDiv(x, cellSize), Row: floorDiv(y, cellSize)}
}

// GridSize returns the number of whole cells that fit in a width x height
// pixel surface.
func GridSize(width, height, cellSize int) Size {
	if cellSize <= 0 {
		cellSize = 1
	}
	return Size{W: width / cellSize, H: height / cellSize}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
