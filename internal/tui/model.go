// Package tui is a terminal host for the sand session. Each character shows
// two cells stacked with a half block; the left mouse button pours sand.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"sandfall/internal/config"
	"sandfall/internal/driver"
	"sandfall/internal/palette"
	"sandfall/internal/render"
	"sandfall/internal/session"
)

const (
	frameInterval   = time.Second / 60
	historyCapacity = 120
)

// TickMsg is the frame clock.
type TickMsg time.Time

// Model drives a session from terminal input.
type Model struct {
	sess   *session.Session
	canvas *render.Canvas
	last   time.Time

	moves   []float64
	showHUD bool

	// OnExit, when set, runs once before the program quits.
	OnExit func(*session.Session)
}

// NewModel wraps sess. The model registers a tick observer on it.
func NewModel(sess *session.Session) *Model {
	f := sess.Frame()
	m := &Model{
		sess:    sess,
		canvas:  render.NewCanvas(f.Cols, f.Rows),
		showHUD: true,
	}
	sess.Observe(func(driver.TickResult) {
		m.moves = append(m.moves, float64(sess.World().LastMoves()))
		if len(m.moves) > historyCapacity {
			m.moves = m.moves[1:]
		}
	})
	return m
}

// Run starts a full-screen program for sess and blocks until it quits.
func Run(m *Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Init starts the frame clock.
func (m *Model) Init() tea.Cmd { return tick() }

// Update handles input and advances the session.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg.String())
	case tea.MouseMsg:
		m.handleMouse(msg)
	case TickMsg:
		now := time.Time(msg)
		dt := frameInterval
		if !m.last.IsZero() {
			dt = now.Sub(m.last)
		}
		m.last = now
		m.sess.Advance(dt)
		return m, tick()
	}
	return m, nil
}

func (m *Model) handleKey(key string) tea.Cmd {
	cfg := m.sess.Config()
	switch key {
	case "q", "ctrl+c", "esc":
		if m.OnExit != nil {
			m.OnExit(m.sess)
		}
		m.sess.Close()
		return tea.Quit
	case "c":
		m.sess.Clear()
	case "h":
		m.showHUD = !m.showHUD
	case "t":
		m.sess.SetChoiceParameter(config.KeyTheme, nextName(palette.ThemeNames(), cfg.Theme.String()))
	case "m":
		m.sess.SetChoiceParameter(config.KeyMode, nextName(palette.ModeNames(), cfg.ColorMode.String()))
	case "up", "k":
		m.sess.SetFloatParameter(config.KeyGravity, cfg.Gravity+0.1)
	case "down", "j":
		m.sess.SetFloatParameter(config.KeyGravity, cfg.Gravity-0.1)
	case "+", "=":
		m.sess.SetFloatParameter(config.KeyRate, cfg.ParticleRate+10)
	case "-", "_":
		m.sess.SetFloatParameter(config.KeyRate, cfg.ParticleRate-10)
	}
	return nil
}

// handleMouse maps a terminal position to the pixel at the center of the top
// cell drawn in that character.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	cs := m.sess.Config().CellSize
	x := msg.X*cs + cs/2
	y := msg.Y*2*cs + cs/2
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.sess.Press(x, y)
		}
	case tea.MouseActionMotion:
		if m.sess.Held() {
			m.sess.Move(x, y)
		}
	case tea.MouseActionRelease:
		m.sess.Release()
	}
}

func nextName(names []string, current string) string {
	for i, name := range names {
		if name == current {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}
