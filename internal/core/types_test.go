package core

import "testing"

func TestCellOf(t *testing.T) {
	cases := []struct {
		x, y, size int
		want       Cell
	}{
		{0, 0, 4, Cell{0, 0}},
		{3, 3, 4, Cell{0, 0}},
		{4, 7, 4, Cell{1, 1}},
		{399, 200, 4, Cell{99, 50}},
		{-1, 5, 4, Cell{-1, 1}},
		{-4, -5, 4, Cell{-1, -2}},
		{9, 9, 0, Cell{9, 9}},
	}
	for _, tc := range cases {
		if got := CellOf(tc.x, tc.y, tc.size); got != tc.want {
			t.Fatalf("CellOf(%d,%d,%d) = %+v, expected %+v", tc.x, tc.y, tc.size, got, tc.want)
		}
	}
}

func TestGridSize(t *testing.T) {
	if got := GridSize(400, 402, 4); got != (Size{W: 100, H: 100}) {
		t.Fatalf("unexpected grid size %+v", got)
	}
}
