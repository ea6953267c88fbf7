package backend

import (
	"sync/atomic"
	"time"

	"github.com/atomicstack/inkshell/internal/view"
)

// Queue is the main event queue: many producers, one consumer. Producers
// send onto a buffered channel with a bounded wait. The consumer may also
// put events back at the head with PushFront; those are received before
// anything still waiting in the channel.
type Queue struct {
	ch          chan view.Event
	front       []view.Event
	sendTimeout time.Duration
	dropped     atomic.Uint64
}

// NewQueue returns a queue buffering up to capacity events. Sends give up
// after sendTimeout when the buffer stays full.
func NewQueue(capacity int, sendTimeout time.Duration) *Queue {
	return &Queue{ch: make(chan view.Event, capacity), sendTimeout: sendTimeout}
}

// Send enqueues evt at the tail. It reports false when the queue stayed
// full for the whole send timeout and the event was dropped.
func (q *Queue) Send(evt view.Event) bool {
	select {
	case q.ch <- evt:
		return true
	default:
	}
	timer := time.NewTimer(q.sendTimeout)
	defer timer.Stop()
	select {
	case q.ch <- evt:
		return true
	case <-timer.C:
		q.dropped.Add(1)
		return false
	}
}

// PushFront puts events at the head of the queue, events[0] first. Only
// the consumer may call it.
func (q *Queue) PushFront(events ...view.Event) {
	if len(events) == 0 {
		return
	}
	head := make([]view.Event, 0, len(events)+len(q.front))
	head = append(head, events...)
	q.front = append(head, q.front...)
}

// Receive returns the next event, waiting at most timeout for one to
// arrive. Only the consumer may call it.
func (q *Queue) Receive(timeout time.Duration) (view.Event, bool) {
	if len(q.front) > 0 {
		evt := q.front[0]
		q.front[0] = nil
		q.front = q.front[1:]
		return evt, true
	}
	select {
	case evt := <-q.ch:
		return evt, true
	default:
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case evt := <-q.ch:
		return evt, true
	case <-timer.C:
		return nil, false
	}
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	return len(q.front) + len(q.ch)
}

// Dropped returns the number of events lost to full-queue timeouts.
func (q *Queue) Dropped() uint64 {
	return q.dropped.Load()
}
