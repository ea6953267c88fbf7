package backend

import (
	"context"
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/atomicstack/inkshell/internal/gesture"
	"github.com/atomicstack/inkshell/internal/input"
	"github.com/atomicstack/inkshell/internal/view"
)

func TestQueueReceivesInSendOrder(t *testing.T) {
	q := NewQueue(8, 10*time.Millisecond)
	require.True(t, q.Send(view.Back{}))
	require.True(t, q.Send(view.ClockTick{}))

	evt, ok := q.Receive(time.Millisecond)
	require.True(t, ok)
	require.Equal(t, view.Back{}, evt)
	evt, ok = q.Receive(time.Millisecond)
	require.True(t, ok)
	require.Equal(t, view.ClockTick{}, evt)

	_, ok = q.Receive(time.Millisecond)
	require.False(t, ok)
}

func TestQueuePushFrontPrecedesPendingSends(t *testing.T) {
	q := NewQueue(8, 10*time.Millisecond)
	q.Send(view.ClockTick{})
	q.PushFront(view.Close{ID: view.Singleton(view.KindMainMenu)}, view.Select{Entry: view.EntryTakeScreenshot})
	q.PushFront(view.Back{})
	require.Equal(t, 4, q.Len())

	var got []view.Event
	for {
		evt, ok := q.Receive(time.Millisecond)
		if !ok {
			break
		}
		got = append(got, evt)
	}
	require.Equal(t, []view.Event{
		view.Back{},
		view.Close{ID: view.Singleton(view.KindMainMenu)},
		view.Select{Entry: view.EntryTakeScreenshot},
		view.ClockTick{},
	}, got)
}

func TestQueueSendTimesOutWhenFull(t *testing.T) {
	q := NewQueue(1, 5*time.Millisecond)
	require.True(t, q.Send(view.Back{}))
	require.False(t, q.Send(view.Back{}))
	require.EqualValues(t, 1, q.Dropped())
}

func TestMultiplexerForwardsGestures(t *testing.T) {
	q := NewQueue(8, 10*time.Millisecond)
	opts := DefaultOptions()
	opts.ClockInterval = 0
	m := Start(context.Background(), q, opts)
	defer func() {
		m.Stop()
		m.Wait()
	}()

	require.True(t, m.SendRaw(input.DeviceEvent{Status: input.FingerDown, Position: image.Pt(40, 40), Time: 1}))
	require.True(t, m.SendRaw(input.DeviceEvent{Status: input.FingerUp, Position: image.Pt(41, 40), Time: 1.05}))

	evt, ok := q.Receive(time.Second)
	require.True(t, ok)
	g, isGesture := evt.(view.Gesture)
	require.True(t, isGesture, "got %T", evt)
	require.Equal(t, gesture.Tap, g.Gesture.Kind)
	require.Equal(t, image.Pt(40, 40), g.Gesture.Point())
}

func TestMultiplexerTicksClock(t *testing.T) {
	q := NewQueue(8, 10*time.Millisecond)
	opts := DefaultOptions()
	opts.ClockInterval = 5 * time.Millisecond
	m := Start(context.Background(), q, opts)

	evt, ok := q.Receive(time.Second)
	require.True(t, ok)
	require.Equal(t, view.ClockTick{}, evt)

	m.Stop()
	m.Wait()
}

func TestMultiplexerStopsWithParent(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	m := Start(ctx, NewQueue(1, time.Millisecond), DefaultOptions())
	cancel()

	done := make(chan struct{})
	go func() {
		m.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("producers did not exit after cancellation")
	}
	require.False(t, m.SendRaw(input.DeviceEvent{Status: input.FingerDown}))
}

func TestThrottleAllow(t *testing.T) {
	th := NewThrottle(time.Hour)
	require.True(t, th.Allow())
	require.False(t, th.Allow())

	require.True(t, NewThrottle(0).Allow())
	var nilThrottle *Throttle
	require.True(t, nilThrottle.Allow())
}
