package view

import (
	"fmt"
	"image"

	"github.com/atomicstack/inkshell/internal/framebuffer"
	"github.com/atomicstack/inkshell/internal/gesture"
	"github.com/atomicstack/inkshell/internal/input"
	"github.com/atomicstack/inkshell/internal/metadata"
)

// Event is a message routed through the dispatcher. Events are plain
// values and are never mutated after construction.
type Event interface {
	Name() string
}

// Render asks for rect to be redrawn and refreshed. It waits for
// overlapping updates that are still settling.
type Render struct {
	Rect image.Rectangle
	Mode framebuffer.UpdateMode
}

// RenderNoWait is Render without waiting on earlier updates.
type RenderNoWait struct {
	Rect image.Rectangle
	Mode framebuffer.UpdateMode
}

// Expose redraws only the background view in Rect, healing the area a
// removed overlay used to cover.
type Expose struct {
	Rect image.Rectangle
}

// Open asks for a document to be opened in a reader.
type Open struct {
	Info metadata.Info
}

// Invalid reports a document that could not be opened.
type Invalid struct {
	Info metadata.Info
}

// Back returns to the previous top-level view.
type Back struct{}

// Show adds the overlay identified by ID to the active view.
type Show struct {
	ID ID
}

// Close removes the overlay identified by ID from the active view.
type Close struct {
	ID ID
}

// Select triggers a menu entry.
type Select struct {
	Entry EntryID
}

// Key carries a semantic key press.
type Key struct {
	Kind input.KeyKind
}

// ClockTick fires periodically so views can refresh a clock.
type ClockTick struct{}

// Gesture carries a recognised touch gesture.
type Gesture struct {
	Gesture gesture.Event
}

func (Render) Name() string       { return "render" }
func (RenderNoWait) Name() string { return "render-no-wait" }
func (Expose) Name() string       { return "expose" }
func (Open) Name() string         { return "open" }
func (Invalid) Name() string      { return "invalid" }
func (Back) Name() string         { return "back" }
func (Show) Name() string         { return "show" }
func (Close) Name() string        { return "close" }
func (Select) Name() string       { return "select" }
func (Key) Name() string          { return "key" }
func (ClockTick) Name() string    { return "clock-tick" }
func (Gesture) Name() string      { return "gesture" }

// Describe renders evt for trace logs.
func Describe(evt Event) string {
	switch e := evt.(type) {
	case Render:
		return fmt.Sprintf("render %v %s", e.Rect, e.Mode)
	case RenderNoWait:
		return fmt.Sprintf("render-no-wait %v %s", e.Rect, e.Mode)
	case Expose:
		return fmt.Sprintf("expose %v", e.Rect)
	case Open:
		return fmt.Sprintf("open %s", e.Info.File.Path)
	case Invalid:
		return fmt.Sprintf("invalid %s", e.Info.File.Path)
	case Show:
		return fmt.Sprintf("show %s", e.ID)
	case Close:
		return fmt.Sprintf("close %s", e.ID)
	case Select:
		return fmt.Sprintf("select %s", e.Entry)
	case Key:
		return fmt.Sprintf("key %s", e.Kind)
	case Gesture:
		return e.Gesture.String()
	case nil:
		return "<nil>"
	default:
		return evt.Name()
	}
}
