// Package platform abstracts the host the shell runs on: a window, a
// terminal or a script. A Source is polled by the dispatcher for raw key
// presses, pointer activity and quit requests.
package platform

import (
	"fmt"
	"time"

	"github.com/atomicstack/inkshell/internal/input"
)

// Kind discriminates Event.
type Kind int

const (
	KeyDown Kind = iota
	Pointer
	Quit
)

// Event is one raw platform event. Key is set for KeyDown, Device for
// Pointer.
type Event struct {
	Kind   Kind
	Key    input.Keycode
	Device input.DeviceEvent
}

func (e Event) String() string {
	switch e.Kind {
	case KeyDown:
		return fmt.Sprintf("key %q", string(e.Key))
	case Pointer:
		return "pointer " + e.Device.String()
	case Quit:
		return "quit"
	default:
		return "unknown"
	}
}

// Key returns a KeyDown event for code.
func Key(code input.Keycode) Event {
	return Event{Kind: KeyDown, Key: code}
}

// Finger returns a Pointer event.
func Finger(evt input.DeviceEvent) Event {
	return Event{Kind: Pointer, Device: evt}
}

// Source is polled by the dispatcher. Poll waits at most timeout and
// reports false when nothing arrived.
type Source interface {
	Poll(timeout time.Duration) (Event, bool)
}

// Channel is a Source fed by other goroutines. Terminal hosts and tests
// push into it; the dispatcher polls it.
type Channel struct {
	ch chan Event
}

// NewChannel returns a source buffering up to capacity events.
func NewChannel(capacity int) *Channel {
	return &Channel{ch: make(chan Event, capacity)}
}

// NewScript returns a source that yields events in order and then stays
// silent.
func NewScript(events ...Event) *Channel {
	c := NewChannel(len(events) + 16)
	for _, evt := range events {
		c.ch <- evt
	}
	return c
}

// Push enqueues evt, waiting at most timeout when the buffer is full.
func (c *Channel) Push(evt Event, timeout time.Duration) bool {
	select {
	case c.ch <- evt:
		return true
	default:
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case c.ch <- evt:
		return true
	case <-timer.C:
		return false
	}
}

func (c *Channel) Poll(timeout time.Duration) (Event, bool) {
	select {
	case evt := <-c.ch:
		return evt, true
	default:
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case evt := <-c.ch:
		return evt, true
	case <-timer.C:
		return Event{}, false
	}
}

// Pending returns the number of buffered events.
func (c *Channel) Pending() int {
	return len(c.ch)
}
