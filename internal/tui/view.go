package tui

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"sandfall/internal/palette"
	"sandfall/internal/telemetry"
)

var (
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 2).Width(40)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

// View renders the field and, when enabled, the status panel.
func (m *Model) View() string {
	field := m.renderField()
	if !m.showHUD {
		return field
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, field, statsStyle.Render(m.renderStats()))
}

// renderField draws two grid rows per terminal line using the upper half
// block: foreground is the top cell, background the bottom one.
func (m *Model) renderField() string {
	f := m.sess.Frame()
	m.canvas.Resize(f.Cols, f.Rows)
	m.canvas.Fill(f.Particles, f.Background)

	var b strings.Builder
	for row := 0; row < f.Rows; row += 2 {
		col := 0
		for col < f.Cols {
			top, bottom := m.canvas.At(col, row), f.Background
			if row+1 < f.Rows {
				bottom = m.canvas.At(col, row+1)
			}
			run := 1
			for col+run < f.Cols {
				nt := m.canvas.At(col+run, row)
				nb := f.Background
				if row+1 < f.Rows {
					nb = m.canvas.At(col+run, row+1)
				}
				if nt != top || nb != bottom {
					break
				}
				run++
			}
			b.WriteString(cellStyle(top, bottom).Render(strings.Repeat("▀", run)))
			col += run
		}
		if row+2 < f.Rows {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func cellStyle(top, bottom color.RGBA) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(palette.Hex(top))).
		Background(lipgloss.Color(palette.Hex(bottom)))
}

func (m *Model) renderStats() string {
	cfg := m.sess.Config()
	var s strings.Builder
	s.WriteString(headerStyle.Render("SANDFALL") + "\n")
	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("State", m.sess.State().String())
	row("Particles", fmt.Sprintf("%d", m.sess.World().Len()))
	row("Ticks", fmt.Sprintf("%d", m.sess.Ticks()))
	row("Gravity", fmt.Sprintf("%.1f", cfg.Gravity))
	row("Rate", fmt.Sprintf("%.0f/s", cfg.ParticleRate))
	row("Mode", cfg.ColorMode.String())
	row("Theme", cfg.Theme.String())
	if len(m.moves) > 1 {
		chart := telemetry.Plot(m.moves, 30, 4, "moves per tick")
		s.WriteString(graphStyle.Render(chart) + "\n")
	}
	s.WriteString(helpStyle.Render("Mouse: pour  C: clear  Q: quit\nT: theme  M: mode  H: panel\n↑↓: gravity  +-: rate"))
	return s.String()
}
