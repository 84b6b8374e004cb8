package core

import "testing"

func TestGridOutOfRangeReadsEmpty(t *testing.T) {
	g := NewGrid(4, 3)
	for _, c := range []Cell{{-1, 0}, {0, -1}, {4, 0}, {0, 3}, {-5, -5}} {
		if g.Occupied(c) {
			t.Fatalf("cell %+v outside the grid must read as unoccupied", c)
		}
		if g.Free(c) {
			t.Fatalf("cell %+v outside the grid must not be a legal destination", c)
		}
		g.Set(c, true)
	}
	if g.Count() != 0 {
		t.Fatalf("out of range writes must be ignored, count=%d", g.Count())
	}
}

func TestGridSetAndCount(t *testing.T) {
	g := NewGrid(4, 3)
	c := Cell{Col: 2, Row: 1}
	g.Set(c, true)
	g.Set(c, true)
	if !g.Occupied(c) || g.Count() != 1 {
		t.Fatalf("expected one occupied cell, count=%d", g.Count())
	}
	if g.Cells()[g.Index(c)] != 1 {
		t.Fatal("backing buffer should mark the cell")
	}
	g.Set(c, false)
	g.Set(c, false)
	if g.Occupied(c) || g.Count() != 0 {
		t.Fatalf("expected empty grid, count=%d", g.Count())
	}
}

func TestGridMove(t *testing.T) {
	g := NewGrid(3, 3)
	from, to := Cell{Col: 1, Row: 0}, Cell{Col: 1, Row: 1}
	if g.Move(from, to) {
		t.Fatal("moving from an empty cell must fail")
	}
	g.Set(from, true)
	g.Set(to, true)
	if g.Move(from, to) {
		t.Fatal("moving onto an occupied cell must fail")
	}
	g.Set(to, false)
	if !g.Move(from, to) {
		t.Fatal("expected move to succeed")
	}
	if g.Occupied(from) || !g.Occupied(to) || g.Count() != 1 {
		t.Fatalf("move left grid inconsistent: from=%v to=%v count=%d", g.Occupied(from), g.Occupied(to), g.Count())
	}
	if g.Move(to, Cell{Col: 1, Row: 3}) {
		t.Fatal("moving off the grid must fail")
	}
}

func TestGridReset(t *testing.T) {
	g := NewGrid(2, 2)
	g.Set(Cell{Col: 1, Row: 1}, true)
	g.Reset(5, 1)
	if g.W != 5 || g.H != 1 || len(g.Cells()) != 5 || g.Count() != 0 {
		t.Fatalf("unexpected grid after reset: %dx%d len=%d count=%d", g.W, g.H, len(g.Cells()), g.Count())
	}
	g.Reset(-1, 3)
	if g.InBounds(Cell{}) {
		t.Fatal("degenerate grid must reject every cell")
	}
}
