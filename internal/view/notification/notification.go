// Package notification implements the transient message overlay.
package notification

import (
	"image"
	"image/draw"
	"time"

	"github.com/atomicstack/inkshell/internal/font"
	"github.com/atomicstack/inkshell/internal/gesture"
	"github.com/atomicstack/inkshell/internal/state"
	"github.com/atomicstack/inkshell/internal/view"
)

const slots = 4

// Notification shows a line of text until it is tapped or times out.
type Notification struct {
	view.Node
	text  string
	timer *time.Timer
}

// New creates notification number index on the screen of ctx. When the
// context has a notification timeout, a Close for it is sent through hub
// once the timeout elapses.
func New(text string, index uint, hub view.Hub, ctx *state.Context) *Notification {
	id := view.ID{Kind: view.KindNotification, Seq: index}
	n := &Notification{Node: view.NewNode(id, layout(ctx, text, index)), text: text}
	if hub != nil && ctx.NotificationTimeout > 0 {
		n.timer = time.AfterFunc(ctx.NotificationTimeout, func() {
			hub.Send(view.Close{ID: id})
		})
	}
	return n
}

func layout(ctx *state.Context, text string, index uint) image.Rectangle {
	screen := ctx.Device.Rect()
	fonts := ctx.Fonts
	h := font.LineHeight(fonts.Text) + 4*view.Padding
	w := font.Width(fonts.Text, text) + 6*view.Padding
	if maxW := screen.Dx() * 5 / 6; w > maxW {
		w = maxW
	}
	top := screen.Min.Y + view.BarHeight(fonts) + 2*view.Padding
	slot := int((index + slots - 1) % slots)
	x := screen.Min.X + (screen.Dx()-w)/2
	y := top + slot*(h+view.Padding)
	return image.Rect(x, y, x+w, y+h)
}

// Text returns the message.
func (n *Notification) Text() string {
	return n.text
}

// Stop cancels the pending timeout, if any.
func (n *Notification) Stop() {
	if n.timer != nil {
		n.timer.Stop()
	}
}

func (n *Notification) Handle(evt view.Event, hub view.Hub, bus *view.Bus, ctx *state.Context) bool {
	g, ok := evt.(view.Gesture)
	if !ok || g.Gesture.Kind != gesture.Tap {
		return false
	}
	if !g.Gesture.Point().In(n.Rect()) {
		return false
	}
	n.Stop()
	bus.Push(view.Close{ID: n.ID()})
	return true
}

func (n *Notification) Draw(dst draw.Image, rect image.Rectangle, fonts *font.Fonts) {
	r := n.Rect()
	view.Fill(dst, rect, view.White)
	view.Border(dst, r, rect, 2, view.Black)
	text := font.Fit(fonts.Text, n.text, r.Dx()-4*view.Padding)
	x := r.Min.X + (r.Dx()-font.Width(fonts.Text, text))/2
	y := r.Min.Y + (r.Dy()-font.LineHeight(fonts.Text))/2
	font.Draw(dst, rect, fonts.Text, image.Pt(x, y), text, view.Black)
}
