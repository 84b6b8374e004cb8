package config

import (
	"strconv"

	"sandfall/internal/core"
	"sandfall/internal/palette"
)

// Parameter keys shared by the HUD, FromMap and the setters below.
const (
	KeyWidth    = "w"
	KeyHeight   = "h"
	KeyCellSize = "cell"
	KeyGravity  = "gravity"
	KeyMode     = "mode"
	KeyTheme    = "theme"
	KeyColor    = "color"
	KeyRed      = "red"
	KeyGreen    = "green"
	KeyBlue     = "blue"
	KeyRate     = "rate"
	KeySeed     = "seed"
)

// Parameters returns the current settings grouped for display.
func (c Config) Parameters() core.ParameterSnapshot {
	groups := []core.ParameterGroup{
		{
			Name: "Field",
			Params: []core.Parameter{
				intParam(KeyWidth, "Width", c.Width),
				intParam(KeyHeight, "Height", c.Height),
				intParam(KeyCellSize, "Cell size", c.CellSize),
				int64Param(KeySeed, "Seed", c.Seed),
			},
		},
		{
			Name: "Motion",
			Params: []core.Parameter{
				floatParam(KeyGravity, "Gravity", c.Gravity),
				floatParam(KeyRate, "Particles/s", c.ParticleRate),
			},
		},
		{
			Name: "Color",
			Params: []core.Parameter{
				choiceParam(KeyMode, "Color mode", c.ColorMode.String()),
				choiceParam(KeyTheme, "Theme", c.Theme.String()),
				intParam(KeyRed, "Red", int(c.BaseColor.R)),
				intParam(KeyGreen, "Green", int(c.BaseColor.G)),
				intParam(KeyBlue, "Blue", int(c.BaseColor.B)),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the settings adjustable from the HUD.
func ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: KeyWidth, Label: "Width", Type: core.ParamTypeInt, Step: 50, Min: MinSize, Max: MaxSize, HasMin: true, HasMax: true},
		{Key: KeyHeight, Label: "Height", Type: core.ParamTypeInt, Step: 50, Min: MinSize, Max: MaxSize, HasMin: true, HasMax: true},
		{Key: KeyCellSize, Label: "Cell size", Type: core.ParamTypeInt, Step: 1, Min: MinCellSize, Max: MaxCellSize, HasMin: true, HasMax: true},
		{Key: KeyGravity, Label: "Gravity", Type: core.ParamTypeFloat, Step: 0.1, Min: MinGravity, Max: MaxGravity, HasMin: true, HasMax: true},
		{Key: KeyRate, Label: "Particles/s", Type: core.ParamTypeFloat, Step: 10, Min: MinRate, Max: MaxRate, HasMin: true, HasMax: true},
		{Key: KeyMode, Label: "Color mode", Type: core.ParamTypeChoice, Options: palette.ModeNames()},
		{Key: KeyTheme, Label: "Theme", Type: core.ParamTypeChoice, Options: palette.ThemeNames()},
		{Key: KeyRed, Label: "Red", Type: core.ParamTypeInt, Step: 8, Min: 0, Max: 255, HasMin: true, HasMax: true},
		{Key: KeyGreen, Label: "Green", Type: core.ParamTypeInt, Step: 8, Min: 0, Max: 255, HasMin: true, HasMax: true},
		{Key: KeyBlue, Label: "Blue", Type: core.ParamTypeInt, Step: 8, Min: 0, Max: 255, HasMin: true, HasMax: true},
	}
}

// WithInt returns c with an integer setting replaced. It reports false for
// unknown keys.
func (c Config) WithInt(key string, value int) (Config, bool) {
	switch key {
	case KeyWidth:
		c.Width = value
	case KeyHeight:
		c.Height = value
	case KeyCellSize:
		c.CellSize = value
	case KeySeed:
		c.Seed = int64(value)
	case KeyRed:
		c.BaseColor.R = channel(value)
	case KeyGreen:
		c.BaseColor.G = channel(value)
	case KeyBlue:
		c.BaseColor.B = channel(value)
	default:
		return c, false
	}
	return c.Validate(), true
}

// WithFloat returns c with a floating point setting replaced.
func (c Config) WithFloat(key string, value float64) (Config, bool) {
	switch key {
	case KeyGravity:
		c.Gravity = value
	case KeyRate:
		c.ParticleRate = value
	default:
		return c, false
	}
	return c.Validate(), true
}

// WithChoice returns c with a named option selected.
func (c Config) WithChoice(key, value string) (Config, bool) {
	switch key {
	case KeyMode:
		m, err := palette.ParseMode(value)
		if err != nil {
			return c, false
		}
		c.ColorMode = m
	case KeyTheme:
		t, err := palette.ParseTheme(value)
		if err != nil {
			return c, false
		}
		c.Theme = t
	default:
		return c, false
	}
	return c.Validate(), true
}

func channel(v int) uint8 {
	return uint8(clampInt(v, 0, 255))
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

func choiceParam(key, label, value string) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeChoice,
		Value: value,
	}
}
