// Package settings holds the persisted user settings document.
package settings

import (
	"fmt"
	"strings"

	"github.com/atomicstack/inkshell/internal/jsonutil"
)

// DefaultPath is the settings document location used when none is given.
const DefaultPath = "Settings.json"

// LightLevels are the frontlight intensity and warmth, each in [0, 100].
type LightLevels struct {
	Intensity float64 `json:"intensity"`
	Warmth    float64 `json:"warmth"`
}

// Settings is the user settings document.
type Settings struct {
	LibraryPath      string      `json:"library_path"`
	Frontlight       bool        `json:"frontlight"`
	FrontlightLevels LightLevels `json:"frontlight_levels"`
	// FontPath optionally points at a TrueType/OpenType face used for text.
	FontPath string `json:"font_path,omitempty"`
}

// Default returns the settings written by a first run.
func Default() Settings {
	return Settings{
		LibraryPath:      "library",
		Frontlight:       true,
		FrontlightLevels: LightLevels{Intensity: 20},
	}
}

// Validate reports settings that cannot be used to start the shell.
func (s Settings) Validate() error {
	if strings.TrimSpace(s.LibraryPath) == "" {
		return fmt.Errorf("library_path must be set")
	}
	if s.FrontlightLevels.Intensity < 0 || s.FrontlightLevels.Intensity > 100 {
		return fmt.Errorf("frontlight intensity must be within [0, 100] (got %g)", s.FrontlightLevels.Intensity)
	}
	if s.FrontlightLevels.Warmth < 0 || s.FrontlightLevels.Warmth > 100 {
		return fmt.Errorf("frontlight warmth must be within [0, 100] (got %g)", s.FrontlightLevels.Warmth)
	}
	return nil
}

// Load reads and validates the settings document at path.
func Load(path string) (Settings, error) {
	var s Settings
	if err := jsonutil.Load(path, &s); err != nil {
		return Settings{}, fmt.Errorf("load settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("load settings %s: %w", path, err)
	}
	return s, nil
}

// Save writes s to path.
func Save(path string, s Settings) error {
	if err := jsonutil.Save(path, s); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
