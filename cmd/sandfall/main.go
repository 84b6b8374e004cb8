//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"

	"sandfall/internal/app"
	"sandfall/internal/session"
	"sandfall/internal/settings"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	store, err := settings.Open(settings.AppName)
	if err != nil {
		logger.Warn("settings storage unavailable, presets will not persist", "error", err)
	}
	simCfg, err := settings.Resolve(store, cfg.Preset, cfg.ConfigPath, cfg.Overrides)
	if err != nil {
		log.Fatalf("loading configuration: %v", err)
	}

	sess := session.New(simCfg, session.WithLogger(logger))
	game := app.New(sess, cfg.HUDWidth)
	if cfg.SaveOnExit {
		name := cfg.Preset
		if name == "" {
			name = settings.DefaultPreset
		}
		game.OnExit = func(s *session.Session) {
			if err := store.Save(name, s.Config()); err != nil {
				logger.Warn("saving preset failed", "preset", name, "error", err)
			}
		}
	}

	w, h := game.Layout(0, 0)
	ebiten.SetWindowTitle("sandfall")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
