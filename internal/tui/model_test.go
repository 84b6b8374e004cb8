package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"sandfall/internal/config"
	"sandfall/internal/core"
	"sandfall/internal/driver"
	"sandfall/internal/palette"
	"sandfall/internal/session"
)

func newTestModel() (*Model, *session.Session) {
	cfg := config.DefaultConfig()
	cfg.Width = 100
	cfg.Height = 100
	cfg.CellSize = 10
	sess := session.New(cfg)
	return NewModel(sess), sess
}

func frame(m *Model, at time.Time) time.Time {
	m.Update(TickMsg(at))
	return at.Add(frameInterval)
}

func TestMousePoursSand(t *testing.T) {
	m, sess := newTestModel()
	now := time.Unix(0, 0)

	m.Update(tea.MouseMsg{X: 3, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	now = frame(m, now)
	if sess.World().Len() != 1 {
		t.Fatalf("press should pour one particle, have %d", sess.World().Len())
	}
	if got := sess.World().Particles()[0].Cell; got.Col != 3 || got.Row != 0 {
		t.Fatalf("particle should appear under the pointer, got %+v", got)
	}

	m.Update(tea.MouseMsg{X: 3, Y: 0, Action: tea.MouseActionRelease})
	for i := 0; i < 30 && sess.State() == driver.Running; i++ {
		now = frame(m, now)
	}
	if sess.State() != driver.Idle {
		t.Fatal("field should settle after release")
	}
	if len(m.moves) == 0 {
		t.Fatal("tick observer should record moves")
	}
}

func TestKeysAdjustSession(t *testing.T) {
	m, sess := newTestModel()

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("t")})
	if got := sess.Config().Theme; got != palette.ThemeRainbow {
		t.Fatalf("theme should cycle from dark to rainbow, got %v", got)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("m")})
	if got := sess.Config().ColorMode; got != palette.ModeRandom {
		t.Fatalf("mode should cycle from specific to random, got %v", got)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if got := sess.Config().Gravity; got < 0.89 || got > 0.91 {
		t.Fatalf("down should lower gravity, got %v", got)
	}

	sess.Spawn(core.Cell{})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})
	if sess.World().Len() != 0 {
		t.Fatal("c should clear the field")
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("q should return tea.Quit")
	}
}

func TestViewDrawsHalfBlocks(t *testing.T) {
	m, sess := newTestModel()
	sess.Spawn(core.Cell{})

	out := m.renderField()
	lines := strings.Split(out, "\n")
	if len(lines) != 5 {
		t.Fatalf("10 rows should render as 5 lines, got %d", len(lines))
	}
	if n := strings.Count(out, "▀"); n != 50 {
		t.Fatalf("expected 50 half blocks, got %d", n)
	}
	if !strings.Contains(m.View(), "SANDFALL") {
		t.Fatal("status panel missing")
	}
}
