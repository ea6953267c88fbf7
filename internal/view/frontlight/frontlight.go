// Package frontlight implements the frontlight window overlay.
package frontlight

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/atomicstack/inkshell/internal/font"
	"github.com/atomicstack/inkshell/internal/framebuffer"
	"github.com/atomicstack/inkshell/internal/geom"
	"github.com/atomicstack/inkshell/internal/gesture"
	"github.com/atomicstack/inkshell/internal/input"
	"github.com/atomicstack/inkshell/internal/state"
	"github.com/atomicstack/inkshell/internal/view"
)

// Step is the intensity change of one adjustment.
const Step = 10

// Window shows and adjusts the frontlight levels.
type Window struct {
	view.Node
	intensity float64
	warmth    float64
	bar       image.Rectangle
}

// New builds the window centred on the screen of ctx.
func New(ctx *state.Context) *Window {
	screen := ctx.Device.Rect()
	fonts := ctx.Fonts
	lh := font.LineHeight(fonts.Text)
	w := screen.Dx() * 2 / 3
	h := 3*lh + 8*view.Padding
	rect := geom.Centered(screen, w, h)
	barTop := rect.Min.Y + 2*lh + 5*view.Padding
	levels := ctx.Frontlight.Levels()
	return &Window{
		Node:      view.NewNode(view.Singleton(view.KindFrontlight), rect),
		intensity: levels.Intensity,
		warmth:    levels.Warmth,
		bar:       image.Rect(rect.Min.X+3*view.Padding, barTop, rect.Max.X-3*view.Padding, barTop+lh),
	}
}

// Intensity returns the displayed intensity.
func (w *Window) Intensity() float64 {
	return w.intensity
}

func (w *Window) adjust(delta float64, bus *view.Bus, ctx *state.Context) {
	ctx.Frontlight.SetIntensity(w.intensity + delta)
	levels := ctx.Frontlight.Levels()
	w.intensity = levels.Intensity
	w.warmth = levels.Warmth
	ctx.Settings.FrontlightLevels = levels
	bus.Push(view.Render{Rect: w.Rect(), Mode: framebuffer.Gui})
}

func (w *Window) Handle(evt view.Event, hub view.Hub, bus *view.Bus, ctx *state.Context) bool {
	switch e := evt.(type) {
	case view.Key:
		switch e.Kind.Type {
		case input.Move:
			w.adjust(float64(e.Kind.Dir.Delta()*Step), bus, ctx)
			return true
		case input.Return, input.Alternate:
			bus.Push(view.Close{ID: w.ID()})
			return true
		}
	case view.Gesture:
		g := e.Gesture
		switch g.Kind {
		case gesture.Tap:
			pt := g.Point()
			if !pt.In(w.Rect()) {
				bus.Push(view.Close{ID: w.ID()})
				return true
			}
			if pt.In(w.bar) {
				target := 100 * float64(pt.X-w.bar.Min.X) / float64(w.bar.Dx())
				w.adjust(target-w.intensity, bus, ctx)
			}
			return true
		case gesture.Swipe:
			if !g.Start.In(w.Rect()) {
				return false
			}
			switch g.Dir {
			case geom.East:
				w.adjust(Step, bus, ctx)
			case geom.West:
				w.adjust(-Step, bus, ctx)
			}
			return true
		}
	}
	return false
}

func (w *Window) Draw(dst draw.Image, rect image.Rectangle, fonts *font.Fonts) {
	r := w.Rect()
	lh := font.LineHeight(fonts.Text)
	view.Fill(dst, rect, view.White)
	view.Border(dst, r, rect, 2, view.Black)
	title := "Frontlight"
	font.Draw(dst, rect, fonts.Title, image.Pt(r.Min.X+(r.Dx()-font.Width(fonts.Title, title))/2, r.Min.Y+2*view.Padding), title, view.Black)
	label := fmt.Sprintf("Intensity %.0f%%  Warmth %.0f%%", w.intensity, w.warmth)
	font.Draw(dst, rect, fonts.Text, image.Pt(r.Min.X+3*view.Padding, r.Min.Y+lh+4*view.Padding), label, view.Black)
	view.Border(dst, w.bar, rect, 1, view.Black)
	filled := w.bar
	filled.Max.X = w.bar.Min.X + int(float64(w.bar.Dx())*w.intensity/100)
	view.Fill(dst, filled.Intersect(rect), view.Dark)
}
