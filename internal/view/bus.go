package view

// Bus is the FIFO a view pushes same-turn follow-up events onto. The zero
// value is ready to use.
type Bus struct {
	events []Event
}

// Push appends evt.
func (b *Bus) Push(evt Event) {
	b.events = append(b.events, evt)
}

// Append moves every event of other onto b, preserving order.
func (b *Bus) Append(other *Bus) {
	b.events = append(b.events, other.Drain()...)
}

// Drain returns the queued events in FIFO order and empties the bus.
func (b *Bus) Drain() []Event {
	out := b.events
	b.events = nil
	return out
}

// Len returns the number of queued events.
func (b *Bus) Len() int {
	return len(b.events)
}
