// Package prefs persists dashboard preferences to a small YAML file.
package prefs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"tradeDashboard/internal/domain"
	"tradeDashboard/internal/ports"
)

// DefaultPath is where preferences are stored when no path is configured.
const DefaultPath = "./data/preferences.yaml"

// Config holds configuration for the preference store.
type Config struct {
	Path   string
	Logger ports.Logger
}

// Store implements ports.PreferenceStore over a YAML file.
type Store struct {
	path   string
	logger ports.Logger
	mu     sync.Mutex
}

// Compile-time check.
var _ ports.PreferenceStore = (*Store)(nil)

// NewStore creates a preference store. The file is not touched until Load or Save.
func NewStore(cfg Config) (*Store, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for preference store")
	}
	if cfg.Path == "" {
		cfg.Path = DefaultPath
	}
	return &Store{path: cfg.Path, logger: cfg.Logger}, nil
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Load reads the stored preferences. A missing file yields defaults. Unknown or empty
// values in the file fall back to their defaults individually.
func (s *Store) Load(ctx context.Context) (domain.Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.logger.Debug(ctx, "Preferences file not found, using defaults", map[string]interface{}{"path": s.path})
		return domain.DefaultPreferences(), nil
	}
	if err != nil {
		return domain.Preferences{}, fmt.Errorf("failed to read preferences %s: %w", s.path, err)
	}

	prefs := domain.DefaultPreferences()
	if err := yaml.Unmarshal(b, &prefs); err != nil {
		return domain.Preferences{}, fmt.Errorf("failed to parse preferences %s: %w", s.path, err)
	}
	return normalize(prefs), nil
}

// Save validates prefs and writes them, creating the parent directory if needed.
func (s *Store) Save(ctx context.Context, prefs domain.Preferences) error {
	if err := Validate(prefs); err != nil {
		return err
	}

	b, err := yaml.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create preferences directory %s: %w", dir, err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("failed to write preferences %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace preferences %s: %w", s.path, err)
	}

	s.logger.Info(ctx, "Preferences saved", map[string]interface{}{
		"path":   s.path,
		"theme":  prefs.Theme,
		"period": prefs.SelectedPeriod,
	})
	return nil
}

// Validate rejects unknown themes and periods with ports.ErrInvalidRequest.
func Validate(prefs domain.Preferences) error {
	if prefs.Theme != domain.ThemeDark && prefs.Theme != domain.ThemeLight {
		return fmt.Errorf("%w: unknown theme %q", ports.ErrInvalidRequest, prefs.Theme)
	}
	if !prefs.SelectedPeriod.Valid() {
		return fmt.Errorf("%w: unknown period %q", ports.ErrInvalidRequest, prefs.SelectedPeriod)
	}
	return nil
}

func normalize(p domain.Preferences) domain.Preferences {
	def := domain.DefaultPreferences()
	if p.Theme != domain.ThemeDark && p.Theme != domain.ThemeLight {
		p.Theme = def.Theme
	}
	if !p.SelectedPeriod.Valid() {
		p.SelectedPeriod = def.SelectedPeriod
	}
	return p
}
