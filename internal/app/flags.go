package app

import (
	"flag"
	"fmt"
	"strings"
)

// Config represents the command-line parameters for the GUI.
type Config struct {
	ConfigPath string
	Preset     string
	Overrides  map[string]string
	HUDWidth   int
	TPS        int
	Debug      bool
	SaveOnExit bool
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Overrides: map[string]string{}, HUDWidth: 260, TPS: 60}
}

// Bind attaches the configuration to the provided FlagSet. Each simulation
// setting gets its own flag named after its parameter key.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.ConfigPath, "config", c.ConfigPath, "config file path (yaml)")
	fs.StringVar(&c.Preset, "preset", c.Preset, "load a saved preset")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "control panel width in pixels (0 hides it)")
	fs.IntVar(&c.TPS, "tps", c.TPS, "frames per second")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "debug logging and invariant checks")
	fs.BoolVar(&c.SaveOnExit, "save", c.SaveOnExit, "save the final settings to the preset on exit")
	for _, opt := range settingFlags {
		fs.Func(opt.key, opt.usage, c.override(opt.key))
	}
	fs.Func("set", "override settings as key=value[,key=value]", c.parsePairs)
}

func (c *Config) override(key string) func(string) error {
	return func(v string) error {
		c.Overrides[key] = v
		return nil
	}
}

func (c *Config) parsePairs(s string) error {
	for _, pair := range strings.Split(s, ",") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return fmt.Errorf("expected key=value, got %q", pair)
		}
		c.Overrides[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return nil
}

var settingFlags = []struct{ key, usage string }{
	{"w", "field width in pixels"},
	{"h", "field height in pixels"},
	{"cell", "cell size in pixels"},
	{"gravity", "gravity in [0.1, 1]"},
	{"mode", "color mode: specific, random or themed"},
	{"color", "base color as #rrggbb"},
	{"theme", "theme: light, dark or rainbow"},
	{"rate", "particles per second while the mouse is held"},
	{"seed", "random seed"},
}
