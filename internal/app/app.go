//go:build ebiten

package app

import (
	"fmt"
	"time"

	"sandfall/internal/core"
	"sandfall/internal/render"
	"sandfall/internal/session"
	"sandfall/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a sand session to the ebiten.Game interface.
type Game struct {
	sess    *session.Session
	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay

	last   time.Time
	cursor core.Cell
	winW   int
	winH   int

	// OnExit, when set, runs once before the game terminates.
	OnExit func(*session.Session)
}

// New constructs a Game for the session. hudWidth of zero hides the panel.
func New(sess *session.Session, hudWidth int) *Game {
	f := sess.Frame()
	return &Game{
		sess:    sess,
		painter: render.NewGridPainter(f.Cols, f.Rows),
		hud:     ui.NewHUD(sess, hudWidth, "Sand Controls"),
		overlay: ui.NewOverlay(),
	}
}

// Update handles input and advances the session by the elapsed frame time.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		if g.OnExit != nil {
			g.OnExit(g.sess)
		}
		g.sess.Close()
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.sess.Clear()
	}

	g.overlay.Update()
	f := g.sess.Frame()
	fieldW := f.Cols * f.CellSize
	onPanel := g.hud.Update(fieldW)

	mx, my := ebiten.CursorPosition()
	g.cursor = core.CellOf(mx, my, f.CellSize)
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && !onPanel && mx < fieldW:
		g.sess.Press(mx, my)
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		g.sess.Release()
	case g.sess.Held():
		g.sess.Move(mx, my)
	}

	g.sess.Advance(g.elapsed())
	g.syncWindowSize()
	g.hud.SetStatus(
		fmt.Sprintf("state: %s", g.sess.State()),
		fmt.Sprintf("particles: %d", g.sess.World().Len()),
		fmt.Sprintf("ticks: %d", g.sess.Ticks()),
	)
	return nil
}

func (g *Game) elapsed() time.Duration {
	now := time.Now()
	if g.last.IsZero() {
		g.last = now
		return time.Second / time.Duration(ebiten.TPS())
	}
	dt := now.Sub(g.last)
	g.last = now
	return dt
}

// syncWindowSize follows geometry changes made from the HUD.
func (g *Game) syncWindowSize() {
	w, h := g.Layout(0, 0)
	if w == g.winW && h == g.winH {
		return
	}
	if g.winW != 0 {
		ebiten.SetWindowSize(w, h)
	}
	g.winW, g.winH = w, h
}

// Draw renders the field, overlay and HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	f := g.sess.Frame()
	screen.Fill(f.Background)
	g.painter.Blit(screen, f.Particles, f.Cols, f.Rows, f.Background, f.CellSize)
	g.overlay.Draw(screen, g.sess.World().Cells(), f.Cols, f.Rows, f.CellSize, g.cursor)
	g.hud.Draw(screen, f.Cols*f.CellSize, f.Rows*f.CellSize)
}

// Layout returns the logical screen size: the field plus the HUD panel.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	f := g.sess.Frame()
	return f.Cols*f.CellSize + g.hud.Width(), f.Rows * f.CellSize
}
