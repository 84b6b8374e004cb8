//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"sandfall/internal/core"
)

// Overlay draws optional debugging visuals on top of the sand field: the raw
// occupancy grid (key 1) and the injection cell under the pointer (key 2).
type Overlay struct {
	showOccupancy bool
	showCursor    bool

	maskImg *ebiten.Image
	maskBuf []byte
}

// NewOverlay constructs an overlay with the cursor marker enabled.
func NewOverlay() *Overlay {
	return &Overlay{showCursor: true}
}

// Update toggles overlay layers.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showOccupancy = !o.showOccupancy
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showCursor = !o.showCursor
	}
}

// Draw renders the enabled layers. cells is the occupancy buffer of a
// cols x rows grid; cursor is the cell under the pointer.
func (o *Overlay) Draw(screen *ebiten.Image, cells []uint8, cols, rows, scale int, cursor core.Cell) {
	if cols <= 0 || rows <= 0 {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	if o.showOccupancy {
		o.drawOccupancy(screen, cells, cols, rows, scale)
	}
	if o.showCursor && cursor.Col >= 0 && cursor.Row >= 0 && cursor.Col < cols && cursor.Row < rows {
		x := float32(cursor.Col * scale)
		y := float32(cursor.Row * scale)
		vector.StrokeRect(screen, x, y, float32(scale), float32(scale), 1, color.RGBA{R: 240, G: 240, B: 255, A: 200}, false)
	}
}

func (o *Overlay) drawOccupancy(screen *ebiten.Image, cells []uint8, cols, rows, scale int) {
	total := cols * rows
	if len(cells) != total {
		return
	}
	if o.maskImg == nil || o.maskImg.Bounds().Dx() != cols || o.maskImg.Bounds().Dy() != rows {
		if o.maskImg != nil {
			o.maskImg.Deallocate()
		}
		o.maskImg = ebiten.NewImage(cols, rows)
		o.maskBuf = make([]byte, 4*total)
	}
	tint := color.RGBA{R: 64, G: 164, B: 223, A: 140}
	for i, c := range cells {
		base := i * 4
		if c == 0 {
			o.maskBuf[base+0] = 0
			o.maskBuf[base+1] = 0
			o.maskBuf[base+2] = 0
			o.maskBuf[base+3] = 0
			continue
		}
		// Premultiplied alpha.
		o.maskBuf[base+0] = scaleColorComponent(tint.R, float64(tint.A)/255)
		o.maskBuf[base+1] = scaleColorComponent(tint.G, float64(tint.A)/255)
		o.maskBuf[base+2] = scaleColorComponent(tint.B, float64(tint.A)/255)
		o.maskBuf[base+3] = tint.A
	}
	o.maskImg.WritePixels(o.maskBuf)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	screen.DrawImage(o.maskImg, op)
}

func scaleColorComponent(value uint8, factor float64) uint8 {
	scaled := float64(value) * factor
	if scaled > 255 {
		return 255
	}
	if scaled < 0 {
		return 0
	}
	return uint8(scaled)
}
