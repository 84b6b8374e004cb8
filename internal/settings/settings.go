// Package settings persists named configuration presets in the per-user data
// directory. Only configuration is stored, never particle state.
package settings

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/quasilyte/gdata/v2"

	"sandfall/internal/config"
)

// AppName is the gdata application directory.
const AppName = "sandfall"

// DefaultPreset is the preset hosts load at startup.
const DefaultPreset = "default"

const presetsObject = "presets"

// ErrBadName is returned for preset names that are not safe as file names.
var ErrBadName = errors.New("invalid preset name")

var namePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,63}$`)

// Store loads and saves presets. A Store without a gdata manager works in
// degraded mode: loads return the defaults and saves are dropped.
type Store struct {
	manager *gdata.Manager
}

// Open creates a Store backed by gdata for appName. On failure it still
// returns a usable degraded Store together with the error.
func Open(appName string) (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return &Store{}, fmt.Errorf("opening settings storage: %w", err)
	}
	return &Store{manager: m}, nil
}

// NewStore wraps an existing manager. m may be nil.
func NewStore(m *gdata.Manager) *Store {
	return &Store{manager: m}
}

// Persistent reports whether saves reach disk.
func (s *Store) Persistent() bool { return s != nil && s.manager != nil }

// Exists reports whether a preset was saved under name.
func (s *Store) Exists(name string) bool {
	if !s.Persistent() || !namePattern.MatchString(name) {
		return false
	}
	return s.manager.ObjectPropExists(presetsObject, name)
}

// Load returns the preset stored under name. Missing presets and degraded
// stores yield the embedded defaults.
func (s *Store) Load(name string) (config.Config, error) {
	if !namePattern.MatchString(name) {
		return config.Config{}, fmt.Errorf("%w: %q", ErrBadName, name)
	}
	if !s.Exists(name) {
		return config.Parse(nil)
	}
	data, err := s.manager.LoadObjectProp(presetsObject, name)
	if err != nil {
		return config.Config{}, fmt.Errorf("loading preset %q: %w", name, err)
	}
	cfg, err := config.Parse(data)
	if err != nil {
		return config.Config{}, fmt.Errorf("decoding preset %q: %w", name, err)
	}
	return cfg, nil
}

// Save stores cfg under name. It is a no-op for degraded stores.
func (s *Store) Save(name string, cfg config.Config) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrBadName, name)
	}
	if !s.Persistent() {
		return nil
	}
	data, err := cfg.Validate().Marshal()
	if err != nil {
		return err
	}
	if err := s.manager.SaveObjectProp(presetsObject, name, data); err != nil {
		return fmt.Errorf("saving preset %q: %w", name, err)
	}
	return nil
}

// Reset overwrites the preset under name with the defaults.
func (s *Store) Reset(name string) error {
	return s.Save(name, config.DefaultConfig())
}

// Resolve builds the startup configuration: a named preset or a YAML file
// (never both) layered over the defaults, then flag-style overrides.
func Resolve(s *Store, preset, path string, overrides map[string]string) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	switch {
	case preset != "" && path != "":
		return config.Config{}, errors.New("a preset and a config file are mutually exclusive")
	case preset != "":
		cfg, err = s.Load(preset)
	default:
		cfg, err = config.Load(path)
	}
	if err != nil {
		return config.Config{}, err
	}
	return cfg.Apply(overrides), nil
}
