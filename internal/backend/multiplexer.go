package backend

import (
	"context"
	"sync"
	"time"

	"github.com/atomicstack/inkshell/internal/gesture"
	"github.com/atomicstack/inkshell/internal/input"
	"github.com/atomicstack/inkshell/internal/logging/events"
	"github.com/atomicstack/inkshell/internal/view"
)

// Options configure the background producers.
type Options struct {
	// ClockInterval is the period of ClockTick events.
	ClockInterval time.Duration
	// RawTimeout bounds the wait when handing a finger event to the
	// gesture recognizer.
	RawTimeout time.Duration
	Thresholds gesture.Thresholds
}

// DefaultOptions returns a one minute clock and the default gesture
// thresholds.
func DefaultOptions() Options {
	return Options{
		ClockInterval: time.Minute,
		RawTimeout:    20 * time.Millisecond,
		Thresholds:    gesture.DefaultThresholds(),
	}
}

// Multiplexer runs the producers feeding the main queue: a forwarder
// relaying recognised gestures and a clock ticker. Raw finger events reach
// the recognizer over their own channel and never enter the main queue.
type Multiplexer struct {
	queue *Queue
	opts  Options

	ctx    context.Context
	cancel context.CancelFunc

	raw chan input.DeviceEvent
	wg  sync.WaitGroup
}

// Start launches the producers. They run until Stop is called or parent is
// done.
func Start(parent context.Context, queue *Queue, opts Options) *Multiplexer {
	ctx, cancel := context.WithCancel(parent)
	m := &Multiplexer{
		queue:  queue,
		opts:   opts,
		ctx:    ctx,
		cancel: cancel,
		raw:    make(chan input.DeviceEvent, 64),
	}

	m.startGestureForwarder()
	if opts.ClockInterval > 0 {
		m.startClock()
	}
	return m
}

// SendRaw hands a finger event to the gesture recognizer, waiting at most
// the raw timeout.
func (m *Multiplexer) SendRaw(evt input.DeviceEvent) bool {
	if m.ctx.Err() != nil {
		return false
	}
	timer := time.NewTimer(m.opts.RawTimeout)
	defer timer.Stop()
	select {
	case m.raw <- evt:
		return true
	case <-m.ctx.Done():
		return false
	case <-timer.C:
		events.Input.RawDropped(evt.ID)
		return false
	}
}

// Stop cancels the producers. They exit after their current send; use
// Wait if a clean drain is required (e.g. in tests).
func (m *Multiplexer) Stop() {
	m.cancel()
}

// Wait blocks until every producer goroutine has exited.
func (m *Multiplexer) Wait() {
	m.wg.Wait()
}

func (m *Multiplexer) startGestureForwarder() {
	gestures := gesture.Recognize(m.ctx, m.raw, m.opts.Thresholds)
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		for g := range gestures {
			events.Input.Gesture(g.String())
			if !m.queue.Send(view.Gesture{Gesture: g}) {
				events.Input.QueueFull("gesture")
			}
		}
	}()
}

func (m *Multiplexer) startClock() {
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		ticker := time.NewTicker(m.opts.ClockInterval)
		defer ticker.Stop()
		for {
			select {
			case <-m.ctx.Done():
				return
			case <-ticker.C:
				if !m.queue.Send(view.ClockTick{}) {
					events.Input.QueueFull("clock")
				}
			}
		}
	}()
}
