// Package updates tracks in-flight display updates. Each update issued by
// the dispatcher is registered under the token the display returned for it,
// so later requests can wait on whatever is still settling beneath them.
package updates

import (
	"errors"
	"fmt"
	"image"

	"github.com/atomicstack/inkshell/internal/framebuffer"
)

// ErrDuplicateToken is returned when a token is registered twice while the
// first registration is still outstanding.
var ErrDuplicateToken = errors.New("duplicate update token")

// Entry holds one outstanding update.
type Entry struct {
	Token framebuffer.Token
	Rect  image.Rectangle
}

// Tracker maps update tokens to the rectangles they cover. It is owned by
// the dispatcher and is not safe for concurrent use.
type Tracker struct {
	rects map[framebuffer.Token]image.Rectangle
	order []framebuffer.Token
}

// New creates an empty tracker.
func New() *Tracker {
	return &Tracker{rects: make(map[framebuffer.Token]image.Rectangle)}
}

// Register records that tok covers rect.
func (t *Tracker) Register(tok framebuffer.Token, rect image.Rectangle) error {
	if _, ok := t.rects[tok]; ok {
		return fmt.Errorf("register %d: %w", tok, ErrDuplicateToken)
	}
	t.rects[tok] = rect
	t.order = append(t.order, tok)
	return nil
}

// Forget removes tok. Returns true if it was tracked.
func (t *Tracker) Forget(tok framebuffer.Token) bool {
	if _, ok := t.rects[tok]; !ok {
		return false
	}
	delete(t.rects, tok)
	for i, v := range t.order {
		if v == tok {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

// Overlapping returns the outstanding updates whose rectangle intersects
// rect, oldest first.
func (t *Tracker) Overlapping(rect image.Rectangle) []Entry {
	var out []Entry
	for _, tok := range t.order {
		r := t.rects[tok]
		if r.Overlaps(rect) {
			out = append(out, Entry{Token: tok, Rect: r})
		}
	}
	return out
}

// Entries returns every outstanding update, oldest first.
func (t *Tracker) Entries() []Entry {
	out := make([]Entry, 0, len(t.order))
	for _, tok := range t.order {
		out = append(out, Entry{Token: tok, Rect: t.rects[tok]})
	}
	return out
}

// Len returns the number of outstanding updates.
func (t *Tracker) Len() int {
	return len(t.rects)
}
