//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"sandfall/internal/sand"
)

// GridPainter uploads the particle field into a single image and draws it
// scaled by the cell size.
type GridPainter struct {
	canvas *Canvas
	img    *ebiten.Image
}

// NewGridPainter allocates a painter for a grid of w x h cells.
func NewGridPainter(w, h int) *GridPainter {
	gp := &GridPainter{canvas: NewCanvas(w, h)}
	gp.img = ebiten.NewImage(max(w, 1), max(h, 1))
	return gp
}

// Blit rasterizes particles over bg and draws the result at scale pixels per
// cell. The backing image is rebuilt when the grid size changes.
func (gp *GridPainter) Blit(dst *ebiten.Image, particles []sand.Particle, cols, rows int, bg color.RGBA, scale int) {
	if cols != gp.canvas.W || rows != gp.canvas.H {
		gp.canvas.Resize(cols, rows)
		gp.img.Deallocate()
		gp.img = ebiten.NewImage(max(cols, 1), max(rows, 1))
	}
	if cols == 0 || rows == 0 {
		dst.Fill(bg)
		return
	}
	gp.canvas.Fill(particles, bg)
	gp.img.WritePixels(gp.canvas.Pix)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image in cells.
func (gp *GridPainter) Size() (int, int) { return gp.canvas.W, gp.canvas.H }
