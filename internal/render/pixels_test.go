package render

import (
	"image/color"
	"testing"

	"sandfall/internal/core"
	"sandfall/internal/sand"
)

func TestCanvasFill(t *testing.T) {
	bg := color.RGBA{R: 1, G: 2, B: 3, A: 255}
	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}

	c := NewCanvas(3, 2)
	c.Fill([]sand.Particle{
		{Cell: core.Cell{Col: 0, Row: 0}, Color: red},
		{Cell: core.Cell{Col: 2, Row: 1}, Color: blue},
		{Cell: core.Cell{Col: 5, Row: 5}, Color: red},
	}, bg)

	if got := c.At(0, 0); got != red {
		t.Fatalf("expected red at origin, got %v", got)
	}
	if got := c.At(2, 1); got != blue {
		t.Fatalf("expected blue at (2,1), got %v", got)
	}
	for _, cell := range []core.Cell{{Col: 1, Row: 0}, {Col: 2, Row: 0}, {Col: 0, Row: 1}, {Col: 1, Row: 1}} {
		if got := c.At(cell.Col, cell.Row); got != bg {
			t.Fatalf("expected background at %+v, got %v", cell, got)
		}
	}
	if got := c.At(-1, 0); got != (color.RGBA{}) {
		t.Fatalf("out of range read should be zero, got %v", got)
	}
}

func TestCanvasRefillClearsOldParticles(t *testing.T) {
	bg := color.RGBA{A: 255}
	c := NewCanvas(2, 2)
	c.Fill([]sand.Particle{{Cell: core.Cell{Col: 1, Row: 1}, Color: color.RGBA{G: 200, A: 255}}}, bg)
	c.Fill(nil, bg)
	if got := c.At(1, 1); got != bg {
		t.Fatalf("stale particle left on canvas: %v", got)
	}
}

func TestCanvasResize(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Resize(4, 3)
	if c.W != 4 || c.H != 3 || len(c.Pix) != 4*4*3 {
		t.Fatalf("unexpected canvas after resize: %dx%d len=%d", c.W, c.H, len(c.Pix))
	}
}
