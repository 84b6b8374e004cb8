package session

import (
	"sandfall/internal/config"
	"sandfall/internal/core"
)

// Parameters returns the current tunables for the HUD.
func (s *Session) Parameters() core.ParameterSnapshot {
	return s.cfg.Parameters()
}

// ParameterControls implements core.ParameterControlsProvider.
func (s *Session) ParameterControls() []core.ParameterControl {
	return config.ParameterControls()
}

// SetIntParameter implements core.IntParameterSetter.
func (s *Session) SetIntParameter(key string, value int) bool {
	cfg, ok := s.cfg.WithInt(key, value)
	if !ok {
		return false
	}
	s.Reconfigure(cfg)
	return true
}

// SetFloatParameter implements core.FloatParameterSetter.
func (s *Session) SetFloatParameter(key string, value float64) bool {
	cfg, ok := s.cfg.WithFloat(key, value)
	if !ok {
		return false
	}
	s.Reconfigure(cfg)
	return true
}

// SetChoiceParameter implements core.ChoiceParameterSetter.
func (s *Session) SetChoiceParameter(key, value string) bool {
	cfg, ok := s.cfg.WithChoice(key, value)
	if !ok {
		return false
	}
	s.Reconfigure(cfg)
	return true
}

var (
	_ core.ParameterControlsProvider = (*Session)(nil)
	_ core.IntParameterSetter        = (*Session)(nil)
	_ core.FloatParameterSetter      = (*Session)(nil)
	_ core.ChoiceParameterSetter     = (*Session)(nil)
)
