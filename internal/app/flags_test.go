package app

import (
	"flag"
	"io"
	"testing"

	"sandfall/internal/config"
)

func TestBindCollectsOverrides(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("sandfall", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfg.Bind(fs)

	args := []string{"-w", "600", "-theme", "light", "-set", "gravity=0.5, rate=80", "-hud", "0"}
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cfg.HUDWidth != 0 {
		t.Fatalf("hud flag not bound, got %d", cfg.HUDWidth)
	}

	got := config.FromMap(cfg.Overrides)
	if got.Width != 600 || got.Gravity != 0.5 || got.ParticleRate != 80 || got.Theme.String() != "light" {
		t.Fatalf("overrides not applied: %+v", got)
	}
}

func TestBindRejectsMalformedPairs(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("sandfall", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfg.Bind(fs)
	if err := fs.Parse([]string{"-set", "gravity"}); err == nil {
		t.Fatal("missing '=' should fail")
	}
}

func TestSettingFlagsMatchConfigKeys(t *testing.T) {
	keys := map[string]bool{
		config.KeyWidth: true, config.KeyHeight: true, config.KeyCellSize: true,
		config.KeyGravity: true, config.KeyMode: true, config.KeyColor: true,
		config.KeyTheme: true, config.KeyRate: true, config.KeySeed: true,
	}
	for _, opt := range settingFlags {
		if !keys[opt.key] {
			t.Fatalf("flag %q does not name a config key", opt.key)
		}
		delete(keys, opt.key)
	}
	if len(keys) != 0 {
		t.Fatalf("config keys without a flag: %v", keys)
	}
}
