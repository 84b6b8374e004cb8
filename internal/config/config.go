// Package config holds the validated configuration handed to the simulation.
package config

import (
	_ "embed"
	"fmt"
	"image/color"
	"math"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"sandfall/internal/core"
	"sandfall/internal/palette"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Supported ranges. Values outside them are clamped by Validate.
const (
	MinSize     = 100
	MaxSize     = 1000
	MinCellSize = 1
	MaxCellSize = 32
	MinGravity  = 0.1
	MaxGravity  = 1.0
	MinRate     = 1
	MaxRate     = 1000
)

// Config is an immutable-per-tick snapshot of the simulation settings.
type Config struct {
	Width    int `yaml:"width"`
	Height   int `yaml:"height"`
	CellSize int `yaml:"cell_size"`

	// Gravity scales the tick cadence. A particle always descends one cell
	// per tick.
	Gravity float64 `yaml:"gravity"`

	ColorMode palette.Mode  `yaml:"color_mode"`
	BaseColor Color         `yaml:"base_color"`
	Theme     palette.Theme `yaml:"theme"`

	// ParticleRate is the injection rate in particles per second while the
	// pointer is held.
	ParticleRate float64 `yaml:"particle_rate"`

	Seed int64 `yaml:"seed"`
}

// Color is an RGB color stored as "#rrggbb" in YAML.
type Color color.RGBA

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:        400,
		Height:       400,
		CellSize:     4,
		Gravity:      1.0,
		ColorMode:    palette.ModeSpecific,
		BaseColor:    Color{R: 0xdf, G: 0xb3, B: 0x30, A: 255},
		Theme:        palette.ThemeDark,
		ParticleRate: 50,
		Seed:         1337,
	}
}

// Load reads configuration from a YAML file layered over the embedded
// defaults. An empty path yields the defaults alone. The result is validated.
func Load(path string) (Config, error) {
	if path == "" {
		return Parse(nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML layered over the embedded defaults and validates the
// result. Fields missing from data keep their default values.
func Parse(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(defaultsYAML, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config: %w", err)
		}
	}
	return cfg.Validate(), nil
}

// Marshal renders the configuration as YAML.
func (c Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return data, nil
}

// FromMap overlays flag-style key/value pairs on the defaults. Unparseable
// values are ignored.
func FromMap(cfg map[string]string) Config {
	return DefaultConfig().Apply(cfg)
}

// Apply overlays flag-style key/value pairs on c and returns the validated
// result. Recognised keys: w, h, cell, gravity, mode, color, theme, rate, seed.
func (c Config) Apply(cfg map[string]string) Config {
	if v, ok := cfg[KeyWidth]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Width = parsed
		}
	}
	if v, ok := cfg[KeyHeight]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Height = parsed
		}
	}
	if v, ok := cfg[KeyCellSize]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.CellSize = parsed
		}
	}
	if v, ok := cfg[KeyGravity]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Gravity = parsed
		}
	}
	if v, ok := cfg[KeyMode]; ok {
		if parsed, err := palette.ParseMode(v); err == nil {
			c.ColorMode = parsed
		}
	}
	if v, ok := cfg[KeyColor]; ok {
		if parsed, err := palette.ParseHex(v); err == nil {
			c.BaseColor = Color(parsed)
		}
	}
	if v, ok := cfg[KeyTheme]; ok {
		if parsed, err := palette.ParseTheme(v); err == nil {
			c.Theme = parsed
		}
	}
	if v, ok := cfg[KeyRate]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.ParticleRate = parsed
		}
	}
	if v, ok := cfg[KeySeed]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	return c.Validate()
}

// Validate clamps every field into its supported range.
func (c Config) Validate() Config {
	c.Width = clampInt(c.Width, MinSize, MaxSize)
	c.Height = clampInt(c.Height, MinSize, MaxSize)
	c.CellSize = clampInt(c.CellSize, MinCellSize, MaxCellSize)
	c.Gravity = clampFloat(c.Gravity, MinGravity, MaxGravity)
	c.ParticleRate = clampFloat(c.ParticleRate, MinRate, MaxRate)
	if int(c.ColorMode) >= len(palette.ModeNames()) {
		c.ColorMode = palette.ModeSpecific
	}
	if int(c.Theme) >= len(palette.ThemeNames()) {
		c.Theme = palette.ThemeDark
	}
	c.BaseColor.A = 255
	return c
}

// GridSize returns the grid dimensions in cells.
func (c Config) GridSize() core.Size {
	return core.GridSize(c.Width, c.Height, c.CellSize)
}

// SameGeometry reports whether o keeps the grid of c unchanged.
func (c Config) SameGeometry(o Config) bool {
	return c.Width == o.Width && c.Height == o.Height && c.CellSize == o.CellSize
}

// Palette returns the resolver input for this configuration.
func (c Config) Palette() palette.Options {
	return palette.Options{Mode: c.ColorMode, Theme: c.Theme, Base: color.RGBA(c.BaseColor)}
}

// Background returns the clear color for the configured theme.
func (c Config) Background() color.RGBA {
	return palette.Background(c.Theme)
}

// MarshalYAML writes the color as "#rrggbb".
func (c Color) MarshalYAML() (interface{}, error) {
	return palette.Hex(color.RGBA(c)), nil
}

// UnmarshalYAML accepts "#rrggbb".
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := palette.ParseHex(value.Value)
	if err != nil {
		return err
	}
	*c = Color(parsed)
	return nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
