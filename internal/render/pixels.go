// Package render rasterizes the particle field. Canvas is shared by the GUI
// painter and the terminal host; the ebiten painter lives behind the ebiten
// build tag.
package render

import (
	"image/color"

	"sandfall/internal/sand"
)

// Canvas is a cols x rows RGBA buffer with one pixel per cell.
type Canvas struct {
	W, H int
	Pix  []byte
}

// NewCanvas allocates a canvas for a grid of w x h cells.
func NewCanvas(w, h int) *Canvas {
	c := &Canvas{}
	c.Resize(w, h)
	return c
}

// Resize reallocates the buffer when the grid dimensions change.
func (c *Canvas) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	if w == c.W && h == c.H && c.Pix != nil {
		return
	}
	c.W, c.H = w, h
	c.Pix = make([]byte, 4*w*h)
}

// Fill clears the canvas to bg and paints every particle in its own color.
func (c *Canvas) Fill(particles []sand.Particle, bg color.RGBA) {
	fillParticlesRGBA(c.Pix, c.W, c.H, particles, bg)
}

// At returns the color of the cell at col, row. Out of range cells read as
// transparent black.
func (c *Canvas) At(col, row int) color.RGBA {
	if col < 0 || row < 0 || col >= c.W || row >= c.H {
		return color.RGBA{}
	}
	base := (row*c.W + col) * 4
	return color.RGBA{R: c.Pix[base], G: c.Pix[base+1], B: c.Pix[base+2], A: c.Pix[base+3]}
}

// fillParticlesRGBA writes bg into every pixel of buf and then the color of
// each particle at its cell. Particles outside the w x h grid are skipped.
func fillParticlesRGBA(buf []byte, w, h int, particles []sand.Particle, bg color.RGBA) {
	n := w * h
	if len(buf) < n*4 {
		return
	}
	for i := 0; i < n; i++ {
		base := i * 4
		buf[base+0] = bg.R
		buf[base+1] = bg.G
		buf[base+2] = bg.B
		buf[base+3] = bg.A
	}
	for _, p := range particles {
		c := p.Cell
		if c.Col < 0 || c.Row < 0 || c.Col >= w || c.Row >= h {
			continue
		}
		base := (c.Row*w + c.Col) * 4
		buf[base+0] = p.Color.R
		buf[base+1] = p.Color.G
		buf[base+2] = p.Color.B
		buf[base+3] = p.Color.A
	}
}
