package gesture

import (
	"context"
	"image"
	"testing"
	"time"

	"github.com/atomicstack/inkshell/internal/geom"
	"github.com/atomicstack/inkshell/internal/input"
)

func finger(status input.FingerStatus, x, y int, t float64) input.DeviceEvent {
	return input.DeviceEvent{ID: 0, Status: status, Position: image.Pt(x, y), Time: t}
}

func TestFeedClassifiesTap(t *testing.T) {
	r := NewRecognizer(DefaultThresholds())
	if _, ok := r.Feed(finger(input.FingerDown, 100, 100, 1.0)); ok {
		t.Fatalf("finger down must not produce a gesture")
	}
	g, ok := r.Feed(finger(input.FingerUp, 104, 98, 1.1))
	if !ok || g.Kind != Tap || g.Point() != image.Pt(100, 100) {
		t.Fatalf("expected tap at (100,100), got %v (ok=%v)", g, ok)
	}
}

func TestFeedClassifiesHold(t *testing.T) {
	r := NewRecognizer(DefaultThresholds())
	r.Feed(finger(input.FingerDown, 10, 10, 2.0))
	g, ok := r.Feed(finger(input.FingerUp, 12, 10, 3.0))
	if !ok || g.Kind != Hold {
		t.Fatalf("expected hold, got %v", g)
	}
}

func TestFeedClassifiesSwipeDirections(t *testing.T) {
	cases := []struct {
		dx, dy int
		dir    geom.Dir
	}{
		{200, 10, geom.East},
		{-200, 10, geom.West},
		{5, 150, geom.South},
		{5, -150, geom.North},
	}
	for _, tc := range cases {
		r := NewRecognizer(DefaultThresholds())
		r.Feed(finger(input.FingerDown, 300, 300, 0))
		r.Feed(finger(input.FingerMotion, 300+tc.dx/2, 300+tc.dy/2, 0.05))
		g, ok := r.Feed(finger(input.FingerUp, 300+tc.dx, 300+tc.dy, 0.1))
		if !ok || g.Kind != Swipe || g.Dir != tc.dir {
			t.Fatalf("dx=%d dy=%d: expected swipe %s, got %v", tc.dx, tc.dy, tc.dir, g)
		}
	}
}

func TestFeedIgnoresUnknownContact(t *testing.T) {
	r := NewRecognizer(DefaultThresholds())
	if _, ok := r.Feed(finger(input.FingerUp, 1, 1, 0)); ok {
		t.Fatalf("lifting an unknown finger must not produce a gesture")
	}
}

func TestRecognizeStreams(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	in := make(chan input.DeviceEvent, 4)
	out := Recognize(ctx, in, DefaultThresholds())
	in <- finger(input.FingerDown, 50, 50, 0)
	in <- finger(input.FingerUp, 50, 50, 0.1)
	select {
	case g := <-out:
		if g.Kind != Tap {
			t.Fatalf("expected tap, got %v", g)
		}
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for gesture")
	}
	close(in)
	select {
	case _, ok := <-out:
		if ok {
			t.Fatalf("expected output channel to close")
		}
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for close")
	}
}
