package home

import (
	"image"
	"testing"

	"github.com/atomicstack/inkshell/internal/framebuffer"
	"github.com/atomicstack/inkshell/internal/geom"
	"github.com/atomicstack/inkshell/internal/gesture"
	"github.com/atomicstack/inkshell/internal/input"
	"github.com/atomicstack/inkshell/internal/testutil"
	"github.com/atomicstack/inkshell/internal/view"
)

func newHome(t *testing.T) (*Home, *view.Bus) {
	t.Helper()
	ctx := testutil.NewContext(t, map[string]string{
		"alpha.txt": "first document",
		"beta.txt":  "second document",
	})
	return New(ctx), &view.Bus{}
}

func TestTypingFiltersAndReturnOpens(t *testing.T) {
	ctx := testutil.NewContext(t, map[string]string{"alpha.txt": "a", "beta.txt": "b"})
	h := New(ctx)
	var bus view.Bus

	if !h.Handle(view.Key{Kind: input.OutputKey('b')}, nil, &bus, ctx) {
		t.Fatalf("expected output key to be consumed")
	}
	if h.Filter() != "b" {
		t.Fatalf("expected filter %q, got %q", "b", h.Filter())
	}
	if events := bus.Drain(); len(events) != 1 || events[0].Name() != "render" {
		t.Fatalf("expected one render, got %v", events)
	}

	h.Handle(view.Key{Kind: input.KeyKind{Type: input.Return}}, nil, &bus, ctx)
	events := bus.Drain()
	if len(events) != 1 {
		t.Fatalf("expected one open event, got %v", events)
	}
	open, ok := events[0].(view.Open)
	if !ok || open.Info.File.Path != "beta.txt" {
		t.Fatalf("expected open of beta.txt, got %v", events[0])
	}
}

func TestDeleteKeysEditFilter(t *testing.T) {
	ctx := testutil.NewContext(t, map[string]string{"alpha.txt": "a"})
	h := New(ctx)
	var bus view.Bus
	h.Handle(view.Key{Kind: input.OutputKey('a')}, nil, &bus, ctx)
	h.Handle(view.Key{Kind: input.OutputKey('l')}, nil, &bus, ctx)
	h.Handle(view.Key{Kind: input.DeleteKey(geom.Backward)}, nil, &bus, ctx)
	if h.Filter() != "a" {
		t.Fatalf("expected filter %q, got %q", "a", h.Filter())
	}
}

func TestTopBarTapShowsMainMenu(t *testing.T) {
	h, bus := newHome(t)
	tap := view.Gesture{Gesture: gesture.Event{Kind: gesture.Tap, Start: image.Pt(300, 5)}}
	if !h.Handle(tap, nil, bus, nil) {
		t.Fatalf("expected tap to be consumed")
	}
	events := bus.Drain()
	if len(events) != 1 || events[0] != (view.Show{ID: view.Singleton(view.KindMainMenu)}) {
		t.Fatalf("expected show main menu, got %v", events)
	}
}

func TestModifierKeysShowOverlays(t *testing.T) {
	h, bus := newHome(t)
	h.Handle(view.Key{Kind: input.KeyKind{Type: input.Combine}}, nil, bus, nil)
	h.Handle(view.Key{Kind: input.KeyKind{Type: input.Alternate}}, nil, bus, nil)
	events := bus.Drain()
	want := []view.Event{
		view.Show{ID: view.Singleton(view.KindMainMenu)},
		view.Show{ID: view.Singleton(view.KindFrontlight)},
	}
	if len(events) != 2 || events[0] != want[0] || events[1] != want[1] {
		t.Fatalf("expected %v, got %v", want, events)
	}
}

func TestTapOnRowOpensDocument(t *testing.T) {
	h, bus := newHome(t)
	y := h.body.Min.Y + h.rowH + h.rowH/2
	h.Handle(view.Gesture{Gesture: gesture.Event{Kind: gesture.Tap, Start: image.Pt(100, y)}}, nil, bus, nil)
	events := bus.Drain()
	if len(events) != 1 {
		t.Fatalf("expected one event, got %v", events)
	}
	if open, ok := events[0].(view.Open); !ok || open.Info.File.Path != "beta.txt" {
		t.Fatalf("expected open of second row, got %v", events[0])
	}
}

func TestInvalidAddsNotification(t *testing.T) {
	ctx := testutil.NewContext(t, map[string]string{"alpha.txt": "a"})
	h := New(ctx)
	var bus view.Bus
	info := testutil.Info(t, ctx, "alpha.txt")
	if !h.Handle(view.Invalid{Info: info}, nil, &bus, ctx) {
		t.Fatalf("expected invalid to be consumed")
	}
	if len(h.Children()) != 1 || h.Children()[0].ID().Kind != view.KindNotification {
		t.Fatalf("expected one notification child, got %v", h.Children())
	}
	events := bus.Drain()
	if len(events) != 1 {
		t.Fatalf("expected one render, got %v", events)
	}
	if r, ok := events[0].(view.Render); !ok || r.Rect != h.Children()[0].Rect() {
		t.Fatalf("expected render of the notification, got %v", events[0])
	}
}

func TestClockTickAndBackRender(t *testing.T) {
	ctx := testutil.NewContext(t, map[string]string{"alpha.txt": "a"})
	h := New(ctx)
	var bus view.Bus
	h.Handle(view.ClockTick{}, nil, &bus, ctx)
	h.Handle(view.Back{}, nil, &bus, ctx)
	events := bus.Drain()
	if len(events) != 2 {
		t.Fatalf("expected two renders, got %v", events)
	}
	if events[0] != (view.Render{Rect: h.top, Mode: framebuffer.Gui}) {
		t.Fatalf("expected top bar render, got %v", events[0])
	}
	if events[1] != (view.Render{Rect: h.Rect(), Mode: framebuffer.Full}) {
		t.Fatalf("expected full render, got %v", events[1])
	}
	if h.clock != "09:30" {
		t.Fatalf("expected clock 09:30, got %q", h.clock)
	}
}

func TestDrawPaintsSelectedRow(t *testing.T) {
	ctx := testutil.NewContext(t, map[string]string{"alpha.txt": "a"})
	h := New(ctx)
	fb := framebuffer.NewMemory(ctx.Device.Width, ctx.Device.Height)
	view.RenderTree(h, h.Rect(), fb, ctx.Fonts)
	row := image.Pt(h.body.Max.X-2, h.body.Min.Y+1)
	if fb.GrayAt(row.X, row.Y) != view.Dark {
		t.Fatalf("expected highlighted row, got %v", fb.GrayAt(row.X, row.Y))
	}
}
