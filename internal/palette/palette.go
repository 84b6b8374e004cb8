// Package palette assigns colors to newly spawned particles.
package palette

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	rng "sandfall/pkg/core"
)

// Mode selects how a spawn color is chosen.
type Mode uint8

const (
	// ModeSpecific uses the configured base color.
	ModeSpecific Mode = iota
	// ModeRandom draws a uniformly random color per particle.
	ModeRandom
	// ModeThemed draws from the active theme's palette.
	ModeThemed
)

var modeNames = []string{"specific", "random", "themed"}

// Theme names a themed palette and its background.
type Theme uint8

const (
	// ThemeLight draws warm sand tones on a light background.
	ThemeLight Theme = iota
	// ThemeDark draws muted earth tones on black.
	ThemeDark
	// ThemeRainbow picks a random saturated hue per particle.
	ThemeRainbow
)

var themeNames = []string{"light", "dark", "rainbow"}

const (
	// VariationChance is the probability that a particle's color is perturbed.
	VariationChance = 0.10
	// VariationDelta is the per-channel perturbation applied when it is.
	VariationDelta = 6
)

// Options is the slice of the configuration the resolver depends on.
type Options struct {
	Mode  Mode
	Theme Theme
	Base  color.RGBA
}

var themes = map[Theme][]color.RGBA{
	ThemeLight: {
		{R: 223, G: 179, B: 48, A: 255},
		{R: 237, G: 201, B: 120, A: 255},
		{R: 194, G: 178, B: 128, A: 255},
		{R: 245, G: 222, B: 179, A: 255},
	},
	ThemeDark: {
		{R: 150, G: 111, B: 51, A: 255},
		{R: 120, G: 94, B: 60, A: 255},
		{R: 166, G: 138, B: 80, A: 255},
		{R: 101, G: 79, B: 48, A: 255},
	},
}

var backgrounds = map[Theme]color.RGBA{
	ThemeLight:   {R: 0xf0, G: 0xf0, B: 0xf0, A: 255},
	ThemeDark:    {R: 0, G: 0, B: 0, A: 255},
	ThemeRainbow: {R: 0, G: 0, B: 0, A: 255},
}

// Background returns the clear color used when drawing a theme.
func Background(t Theme) color.RGBA {
	if bg, ok := backgrounds[t]; ok {
		return bg
	}
	return backgrounds[ThemeDark]
}

// Resolver picks particle colors from an injected random source.
type Resolver struct {
	rng rng.Rand
}

// NewResolver returns a resolver drawing from r.
func NewResolver(r rng.Rand) *Resolver {
	return &Resolver{rng: r}
}

// ColorFor returns the color of the next spawned particle.
func (r *Resolver) ColorFor(s Options) color.RGBA {
	switch s.Mode {
	case ModeRandom:
		return color.RGBA{R: r.channel(), G: r.channel(), B: r.channel(), A: 255}
	case ModeThemed:
		return r.vary(r.themed(s.Theme))
	default:
		base := s.Base
		base.A = 255
		return r.vary(base)
	}
}

func (r *Resolver) themed(t Theme) color.RGBA {
	if t == ThemeRainbow {
		hue := r.rng.Float64() * 360
		c := colorful.Hsv(hue, 0.85, 0.95).Clamped()
		red, green, blue := c.RGB255()
		return color.RGBA{R: red, G: green, B: blue, A: 255}
	}
	colors := themes[t]
	if len(colors) == 0 {
		colors = themes[ThemeLight]
	}
	return colors[r.rng.IntN(len(colors))]
}

// vary applies the texture perturbation to roughly one particle in ten.
func (r *Resolver) vary(c color.RGBA) color.RGBA {
	if r.rng.Float64() >= VariationChance {
		return c
	}
	c.R = r.nudge(c.R)
	c.G = r.nudge(c.G)
	c.B = r.nudge(c.B)
	return c
}

func (r *Resolver) nudge(v uint8) uint8 {
	d := VariationDelta
	if r.rng.IntN(2) == 0 {
		d = -d
	}
	n := int(v) + d
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return uint8(n)
}

func (r *Resolver) channel() uint8 { return uint8(r.rng.IntN(256)) }

// String returns the lowercase mode name.
func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("mode(%d)", m)
}

// ParseMode parses a mode name case-insensitively.
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return Mode(i), nil
		}
	}
	return ModeSpecific, fmt.Errorf("palette: unknown color mode %q", s)
}

// ModeNames lists the valid mode names in order.
func ModeNames() []string { return append([]string(nil), modeNames...) }

// String returns the lowercase theme name.
func (t Theme) String() string {
	if int(t) < len(themeNames) {
		return themeNames[t]
	}
	return fmt.Sprintf("theme(%d)", t)
}

// ParseTheme parses a theme name case-insensitively.
func ParseTheme(s string) (Theme, error) {
	for i, name := range themeNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return Theme(i), nil
		}
	}
	return ThemeLight, fmt.Errorf("palette: unknown theme %q", s)
}

// ThemeNames lists the valid theme names in order.
func ThemeNames() []string { return append([]string(nil), themeNames...) }

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (t Theme) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Theme) UnmarshalText(text []byte) error {
	parsed, err := ParseTheme(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
