// Package frontlight defines the frontlight capability. Off-device builds
// use Fake, which remembers the levels it was given.
package frontlight

import "github.com/atomicstack/inkshell/internal/settings"

// Frontlight controls the panel light.
type Frontlight interface {
	SetIntensity(value float64)
	SetWarmth(value float64)
	Levels() settings.LightLevels
}

// Fake is an in-memory frontlight.
type Fake struct {
	levels settings.LightLevels
}

// NewFake returns a fake frontlight starting at levels.
func NewFake(levels settings.LightLevels) *Fake {
	return &Fake{levels: levels}
}

func (f *Fake) SetIntensity(value float64) {
	f.levels.Intensity = clamp(value)
}

func (f *Fake) SetWarmth(value float64) {
	f.levels.Warmth = clamp(value)
}

func (f *Fake) Levels() settings.LightLevels {
	return f.levels
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}
