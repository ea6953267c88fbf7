// Package framebuffer defines the display capability the dispatcher drives
// and provides Memory, the off-device implementation used by the emulator
// and by tests.
//
// E-ink updates complete asynchronously: Update issues a refresh of a
// rectangle in a given mode and returns a token, and Wait blocks until the
// refresh identified by that token has settled.
package framebuffer

import (
	"image"
	"image/draw"
)

// UpdateMode is the refresh style requested from the panel.
type UpdateMode int

const (
	// Gui is the driver's default mode for interface elements.
	Gui UpdateMode = iota
	// Partial refreshes only changed pixels.
	Partial
	// Full repaints with a flash, clearing ghosting.
	Full
	// Fast trades quality for latency.
	Fast
	// NoGhost is a partial update with ghost compensation.
	NoGhost
)

func (m UpdateMode) String() string {
	switch m {
	case Gui:
		return "gui"
	case Partial:
		return "partial"
	case Full:
		return "full"
	case Fast:
		return "fast"
	case NoGhost:
		return "no-ghost"
	default:
		return "unknown"
	}
}

// Token identifies an in-flight update. The zero token is never issued.
type Token uint32

// Framebuffer is the display capability. Views draw through the embedded
// draw.Image; the dispatcher issues and waits on updates.
type Framebuffer interface {
	draw.Image
	Update(rect image.Rectangle, mode UpdateMode) (Token, error)
	Wait(tok Token) (int, error)
	Save(path string) error
	ToggleInverted()
	ToggleMonochrome()
	Dims() (int, int)
	Rect() image.Rectangle
}
