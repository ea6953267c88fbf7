// Package gesture turns raw finger events into interaction events. It runs
// as its own goroutine fed over a dedicated channel, so the dispatcher only
// ever sees recognised gestures, never the raw contacts behind them.
package gesture

import (
	"context"
	"fmt"
	"image"

	"github.com/atomicstack/inkshell/internal/geom"
	"github.com/atomicstack/inkshell/internal/input"
)

// Kind discriminates Event.
type Kind int

const (
	Tap Kind = iota
	Hold
	Swipe
)

// Event is a recognised gesture. Dir and End are set for swipes only.
type Event struct {
	Kind  Kind
	Start image.Point
	End   image.Point
	Dir   geom.Dir
}

func (e Event) String() string {
	switch e.Kind {
	case Tap:
		return fmt.Sprintf("tap %v", e.Start)
	case Hold:
		return fmt.Sprintf("hold %v", e.Start)
	case Swipe:
		return fmt.Sprintf("swipe %s %v→%v", e.Dir, e.Start, e.End)
	default:
		return "unknown"
	}
}

// Point returns the position the gesture is anchored at.
func (e Event) Point() image.Point {
	return e.Start
}

// Thresholds configure classification.
type Thresholds struct {
	// SwipeDistance is the minimum travel, in pixels, of a swipe.
	SwipeDistance int
	// HoldDuration is the minimum contact time, in seconds, of a hold.
	HoldDuration float64
}

// DefaultThresholds returns thresholds suitable for a ~167-300dpi panel.
func DefaultThresholds() Thresholds {
	return Thresholds{SwipeDistance: 60, HoldDuration: 0.6}
}

type contact struct {
	start image.Point
	last  image.Point
	time  float64
}

// Recognizer classifies finger sequences. It is not safe for concurrent use;
// Recognize drives one from a single goroutine.
type Recognizer struct {
	thresholds Thresholds
	contacts   map[int]contact
}

// NewRecognizer returns a recognizer using the given thresholds.
func NewRecognizer(t Thresholds) *Recognizer {
	return &Recognizer{thresholds: t, contacts: make(map[int]contact)}
}

// Feed consumes one device event and returns a gesture when a contact ends.
func (r *Recognizer) Feed(evt input.DeviceEvent) (Event, bool) {
	switch evt.Status {
	case input.FingerDown:
		r.contacts[evt.ID] = contact{start: evt.Position, last: evt.Position, time: evt.Time}
	case input.FingerMotion:
		if c, ok := r.contacts[evt.ID]; ok {
			c.last = evt.Position
			r.contacts[evt.ID] = c
		}
	case input.FingerUp:
		c, ok := r.contacts[evt.ID]
		if !ok {
			return Event{}, false
		}
		delete(r.contacts, evt.ID)
		return r.classify(c, evt.Position, evt.Time), true
	}
	return Event{}, false
}

func (r *Recognizer) classify(c contact, end image.Point, t float64) Event {
	minDist := r.thresholds.SwipeDistance
	if geom.Distance2(c.start, end) >= minDist*minDist {
		d := end.Sub(c.start)
		var dir geom.Dir
		if abs(d.X) >= abs(d.Y) {
			dir = geom.East
			if d.X < 0 {
				dir = geom.West
			}
		} else {
			dir = geom.South
			if d.Y < 0 {
				dir = geom.North
			}
		}
		return Event{Kind: Swipe, Start: c.start, End: end, Dir: dir}
	}
	if t-c.time >= r.thresholds.HoldDuration {
		return Event{Kind: Hold, Start: c.start}
	}
	return Event{Kind: Tap, Start: c.start}
}

// Recognize consumes device events until in is closed or ctx is done and
// publishes recognised gestures on the returned channel.
func Recognize(ctx context.Context, in <-chan input.DeviceEvent, t Thresholds) <-chan Event {
	out := make(chan Event, 16)
	r := NewRecognizer(t)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-in:
				if !ok {
					return
				}
				g, ok := r.Feed(evt)
				if !ok {
					continue
				}
				select {
				case <-ctx.Done():
					return
				case out <- g:
				}
			}
		}
	}()
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
