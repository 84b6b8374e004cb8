package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"sandfall/internal/session"
	"sandfall/internal/telemetry"
	"sandfall/internal/tui"
)

var (
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("220")).Padding(0, 2)
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	graphStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("49"))
)

func newRunCmd() *cobra.Command {
	var (
		drops    int
		pattern  string
		maxTicks int
		csvPath  string
		plot     bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "drop particles headlessly and step until the field rests",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := session.ParsePattern(pattern)
			if err != nil {
				return err
			}
			cfg, err := resolveConfig(openStore())
			if err != nil {
				return err
			}

			var out io.Writer
			switch csvPath {
			case "":
			case "-":
				out = cmd.OutOrStdout()
			default:
				f, err := os.Create(csvPath)
				if err != nil {
					return fmt.Errorf("creating telemetry file: %w", err)
				}
				defer f.Close()
				out = f
			}

			sess := session.New(cfg, session.WithLogger(slog.Default()))
			rec := telemetry.NewRecorder(out)
			sess.Observe(rec.Observer(sess.World()))

			slog.Info("starting headless run",
				"pattern", p, "drops", drops, "cols", sess.World().Size().W, "rows", sess.World().Size().H)
			start := time.Now()
			res := sess.Drop(p, drops, maxTicks)
			elapsed := time.Since(start)
			if err := rec.Err(); err != nil {
				return err
			}
			if err := sess.World().Check(); err != nil {
				return err
			}
			if !res.Settled {
				slog.Warn("tick budget exhausted before the field came to rest", "max_ticks", maxTicks)
			}

			if csvPath != "-" {
				fmt.Fprintln(cmd.OutOrStdout(), summaryBox(res, elapsed))
				if plot {
					chart := telemetry.Plot(rec.Moves(), 80, 10, "particles moved per tick")
					fmt.Fprintln(cmd.OutOrStdout(), graphStyle.Render(chart))
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&drops, "drops", "n", 500, "number of particles to drop")
	cmd.Flags().StringVar(&pattern, "pattern", "pour", "drop pattern: pour, random or line")
	cmd.Flags().IntVar(&maxTicks, "max-ticks", 20000, "tick budget")
	cmd.Flags().StringVar(&csvPath, "csv", "", "write per-tick telemetry CSV to this path (- for stdout)")
	cmd.Flags().BoolVar(&plot, "plot", true, "plot motion per tick")
	return cmd
}

func summaryBox(res session.DropResult, elapsed time.Duration) string {
	row := func(label string, value any) string {
		return labelStyle.Render(label) + fmt.Sprint(value) + "\n"
	}
	body := titleStyle.Render("RUN SUMMARY") + "\n\n" +
		row("Particles", res.Spawned) +
		row("Ticks", res.Ticks) +
		row("At rest", res.Settled) +
		row("Elapsed", elapsed.Round(time.Millisecond))
	return boxStyle.Render(body)
}

func newTUICmd() *cobra.Command {
	var save bool
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "pour sand in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := openStore()
			cfg, err := resolveConfig(store)
			if err != nil {
				return err
			}
			// bubbletea owns the terminal, so only warnings reach stderr.
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
			m := tui.NewModel(session.New(cfg, session.WithLogger(logger)))
			if save {
				name := preset
				if name == "" {
					name = "tui"
				}
				m.OnExit = func(s *session.Session) {
					if err := store.Save(name, s.Config()); err != nil {
						logger.Warn("saving preset failed", "preset", name, "error", err)
					}
				}
			}
			if err := tui.Run(m); err != nil {
				return fmt.Errorf("terminal host: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "save the final settings to the preset on exit")
	return cmd
}
