package view

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/atomicstack/inkshell/internal/font"
	"github.com/atomicstack/inkshell/internal/state"
)

type probe struct {
	Node
	shade    uint8
	consumes func(Event) bool
	emits    func(Event, *Bus)
	handled  []Event
}

func newProbe(id ID, rect image.Rectangle, shade uint8) *probe {
	return &probe{Node: NewNode(id, rect), shade: shade}
}

func (p *probe) Handle(evt Event, hub Hub, bus *Bus, ctx *state.Context) bool {
	p.handled = append(p.handled, evt)
	if p.emits != nil {
		p.emits(evt, bus)
	}
	return p.consumes != nil && p.consumes(evt)
}

func (p *probe) Draw(dst draw.Image, rect image.Rectangle, fonts *font.Fonts) {
	Fill(dst, rect, color.Gray{Y: p.shade})
}

func TestHandleEventOffersChildrenFrontToBack(t *testing.T) {
	root := newProbe(Singleton(KindHome), image.Rect(0, 0, 100, 100), 0xff)
	back := newProbe(ID{KindNotification, 1}, image.Rect(0, 0, 10, 10), 0)
	front := newProbe(ID{KindNotification, 2}, image.Rect(0, 0, 10, 10), 0)
	front.consumes = func(Event) bool { return true }
	AddChild(root, back)
	AddChild(root, front)

	var bus Bus
	if !HandleEvent(root, ClockTick{}, nil, &bus, nil) {
		t.Fatalf("expected event to be captured")
	}
	if len(front.handled) != 1 || len(back.handled) != 0 || len(root.handled) != 0 {
		t.Fatalf("unexpected delivery: front=%d back=%d root=%d", len(front.handled), len(back.handled), len(root.handled))
	}
}

func TestHandleEventFallsBackToParent(t *testing.T) {
	root := newProbe(Singleton(KindHome), image.Rect(0, 0, 100, 100), 0xff)
	root.consumes = func(Event) bool { return true }
	AddChild(root, newProbe(Singleton(KindMainMenu), image.Rect(0, 0, 10, 10), 0))

	var bus Bus
	if !HandleEvent(root, Back{}, nil, &bus, nil) {
		t.Fatalf("expected root to consume")
	}
	if len(root.handled) != 1 {
		t.Fatalf("expected root to see the event once, got %d", len(root.handled))
	}
}

func TestHandleEventOffersChildBusToParentFirst(t *testing.T) {
	root := newProbe(Singleton(KindHome), image.Rect(0, 0, 100, 100), 0xff)
	root.consumes = func(evt Event) bool {
		_, ok := evt.(Select)
		return ok
	}
	child := newProbe(Singleton(KindMainMenu), image.Rect(0, 0, 10, 10), 0)
	child.consumes = func(Event) bool { return true }
	child.emits = func(evt Event, bus *Bus) {
		if _, ok := evt.(ClockTick); ok {
			bus.Push(Select{Entry: EntryQuit})
			bus.Push(Close{ID: Singleton(KindMainMenu)})
		}
	}
	AddChild(root, child)

	var bus Bus
	HandleEvent(root, ClockTick{}, nil, &bus, nil)
	got := bus.Drain()
	if len(got) != 1 {
		t.Fatalf("expected only the unconsumed event to bubble, got %v", got)
	}
	if c, ok := got[0].(Close); !ok || c.ID != Singleton(KindMainMenu) {
		t.Fatalf("expected close to bubble, got %v", got[0])
	}
}

func TestRenderDrawsIntersectingChildrenAboveParent(t *testing.T) {
	dst := image.NewGray(image.Rect(0, 0, 40, 40))
	root := newProbe(Singleton(KindHome), dst.Bounds(), 0xff)
	inside := newProbe(ID{KindNotification, 1}, image.Rect(0, 0, 10, 10), 0x10)
	outside := newProbe(ID{KindNotification, 2}, image.Rect(30, 30, 40, 40), 0x20)
	AddChild(root, inside)
	AddChild(root, outside)

	RenderTree(root, image.Rect(0, 0, 20, 20), dst, nil)
	if dst.GrayAt(5, 5).Y != 0x10 {
		t.Fatalf("expected child pixel, got %#x", dst.GrayAt(5, 5).Y)
	}
	if dst.GrayAt(15, 15).Y != 0xff {
		t.Fatalf("expected parent pixel, got %#x", dst.GrayAt(15, 15).Y)
	}
	if dst.GrayAt(35, 35).Y != 0 {
		t.Fatalf("pixels outside the render rect must stay untouched")
	}

	FillCrack(root, image.Rect(0, 0, 10, 10), dst, nil)
	if dst.GrayAt(5, 5).Y != 0xff {
		t.Fatalf("fill crack must draw only the background")
	}
}

func TestLocateAndOverlappingRect(t *testing.T) {
	root := newProbe(Singleton(KindHome), image.Rect(0, 0, 100, 100), 0xff)
	AddChild(root, newProbe(Singleton(KindFrontlight), image.Rect(10, 10, 50, 50), 0))
	AddChild(root, newProbe(ID{KindNotification, 4}, image.Rect(40, 40, 80, 80), 0))
	AddChild(root, newProbe(ID{KindNotification, 5}, image.Rect(90, 90, 100, 100), 0))

	i, ok := Locate(root, KindFrontlight)
	if !ok || i != 0 {
		t.Fatalf("expected frontlight at 0, got %d %v", i, ok)
	}
	if _, ok := Locate(root, KindMainMenu); ok {
		t.Fatalf("main menu must not be found")
	}
	j, ok := LocateByID(root, ID{KindNotification, 4})
	if !ok || j != 1 {
		t.Fatalf("expected notification 4 at 1, got %d %v", j, ok)
	}
	if got := OverlappingRect(root, j); got != image.Rect(10, 10, 80, 80) {
		t.Fatalf("unexpected overlapping rect %v", got)
	}
	removed := RemoveChild(root, j)
	if removed.ID() != (ID{KindNotification, 4}) || len(root.Children()) != 2 {
		t.Fatalf("unexpected removal result")
	}
}

func TestStackPushPop(t *testing.T) {
	root := newProbe(Singleton(KindHome), image.Rect(0, 0, 1, 1), 0)
	s := NewStack(root)
	if s.Pop() {
		t.Fatalf("pop on empty history must fail")
	}
	if s.Active() != View(root) || s.Depth() != 0 {
		t.Fatalf("empty pop must not change the stack")
	}
	reader := newProbe(Singleton(KindReader), image.Rect(0, 0, 1, 1), 0)
	s.Push(reader)
	if s.Active() != View(reader) || s.Depth() != 1 {
		t.Fatalf("push must install the new view")
	}
	if !s.Pop() || s.Active() != View(root) || s.Depth() != 0 {
		t.Fatalf("pop must restore the root")
	}
}

func TestBusKeepsFIFOOrder(t *testing.T) {
	var a, b Bus
	a.Push(ClockTick{})
	b.Push(Back{})
	b.Push(Select{Entry: EntryQuit})
	a.Append(&b)
	got := a.Drain()
	if len(got) != 3 || got[0].Name() != "clock-tick" || got[1].Name() != "back" || got[2].Name() != "select" {
		t.Fatalf("unexpected order %v", got)
	}
	if a.Len() != 0 || b.Len() != 0 {
		t.Fatalf("buses must be empty after drain")
	}
}
