package input

import (
	"fmt"
	"image"
)

// FingerStatus is the phase of a pointer contact.
type FingerStatus int

const (
	FingerDown FingerStatus = iota
	FingerUp
	FingerMotion
)

func (s FingerStatus) String() string {
	switch s {
	case FingerDown:
		return "down"
	case FingerUp:
		return "up"
	case FingerMotion:
		return "motion"
	default:
		return "unknown"
	}
}

// DeviceEvent is raw pointer-like input. Time is in seconds and is
// monotonic within a session.
type DeviceEvent struct {
	ID       int
	Status   FingerStatus
	Position image.Point
	Time     float64
}

func (e DeviceEvent) String() string {
	return fmt.Sprintf("finger %d %s at %v (%.3fs)", e.ID, e.Status, e.Position, e.Time)
}

// Seconds converts a millisecond timestamp into DeviceEvent time.
func Seconds(ms uint32) float64 {
	return float64(ms) / 1000.0
}
