// Package view defines the view tree driven by the dispatcher: the event
// union, the View contract, the per-event bus, overlay lookup, the render
// helpers and the stack of top-level views.
//
// A View owns its children, which are overlays drawn above it and searched
// front to back (last child first). Views never hold references to their
// parent; follow-up work is expressed as events pushed onto a Bus or sent
// through the Hub.
package view

import (
	"image"
	"image/draw"

	"github.com/atomicstack/inkshell/internal/font"
	"github.com/atomicstack/inkshell/internal/state"
)

// Hub accepts events from views outside the current dispatch turn, such as
// timers. Sends never block indefinitely.
type Hub interface {
	Send(evt Event) bool
}

// View is a node of the view tree.
type View interface {
	ID() ID
	Rect() image.Rectangle
	Children() []View
	SetChildren(children []View)
	// Handle reacts to evt and reports whether it was consumed. Follow-up
	// events go on bus; they are dispatched right after evt.
	Handle(evt Event, hub Hub, bus *Bus, ctx *state.Context) bool
	// Draw paints the part of the view inside rect.
	Draw(dst draw.Image, rect image.Rectangle, fonts *font.Fonts)
}

// Node carries the identity, bounds and children common to every view.
// Concrete views embed it.
type Node struct {
	id       ID
	rect     image.Rectangle
	children []View
}

// NewNode returns a node with the given identity and bounds.
func NewNode(id ID, rect image.Rectangle) Node {
	return Node{id: id, rect: rect}
}

func (n *Node) ID() ID {
	return n.id
}

func (n *Node) Rect() image.Rectangle {
	return n.rect
}

func (n *Node) Children() []View {
	return n.children
}

func (n *Node) SetChildren(children []View) {
	n.children = children
}

// AddChild appends child above the existing children of v.
func AddChild(v View, child View) {
	v.SetChildren(append(v.Children(), child))
}

// RemoveChild removes and returns the child at index i.
func RemoveChild(v View, i int) View {
	children := v.Children()
	child := children[i]
	rest := make([]View, 0, len(children)-1)
	rest = append(rest, children[:i]...)
	rest = append(rest, children[i+1:]...)
	v.SetChildren(rest)
	return child
}

// HandleEvent routes evt through v's subtree. Children are offered the
// event front to back and the first to consume it stops the search. Events
// the children put on their bus are offered to v before bubbling up to
// bus. When no child consumed evt, v handles it itself.
func HandleEvent(v View, evt Event, hub Hub, bus *Bus, ctx *state.Context) bool {
	children := v.Children()
	if len(children) == 0 {
		return v.Handle(evt, hub, bus, ctx)
	}

	captured := false
	var childBus Bus
	for i := len(children) - 1; i >= 0; i-- {
		if HandleEvent(children[i], evt, hub, &childBus, ctx) {
			captured = true
			break
		}
	}

	var own Bus
	for _, childEvt := range childBus.Drain() {
		if !v.Handle(childEvt, hub, &own, ctx) {
			bus.Push(childEvt)
		}
	}
	bus.Append(&own)

	if captured {
		return true
	}
	return v.Handle(evt, hub, bus, ctx)
}

// RenderTree draws v inside rect, then every child intersecting rect, back to
// front.
func RenderTree(v View, rect image.Rectangle, dst draw.Image, fonts *font.Fonts) {
	area := rect.Intersect(v.Rect())
	if !area.Empty() {
		v.Draw(dst, area, fonts)
	}
	for _, child := range v.Children() {
		if child.Rect().Overlaps(rect) {
			RenderTree(child, rect, dst, fonts)
		}
	}
}

// FillCrack draws only v, without its children, inside rect.
func FillCrack(v View, rect image.Rectangle, dst draw.Image, fonts *font.Fonts) {
	area := rect.Intersect(v.Rect())
	if area.Empty() {
		return
	}
	v.Draw(dst, area, fonts)
}
