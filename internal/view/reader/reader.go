// Package reader implements the top-level view that pages through a
// plain-text document.
package reader

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/atomicstack/inkshell/internal/font"
	"github.com/atomicstack/inkshell/internal/framebuffer"
	"github.com/atomicstack/inkshell/internal/geom"
	"github.com/atomicstack/inkshell/internal/gesture"
	"github.com/atomicstack/inkshell/internal/input"
	"github.com/atomicstack/inkshell/internal/metadata"
	"github.com/atomicstack/inkshell/internal/state"
	"github.com/atomicstack/inkshell/internal/view"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

var (
	ErrUnsupported = errors.New("unsupported document kind")
	ErrEncoding    = errors.New("document is not valid UTF-8")
	ErrEmpty       = errors.New("document is empty")
)

// fullRefreshEvery is the number of page turns between flashing refreshes.
const fullRefreshEvery = 6

// Reader displays one document.
type Reader struct {
	view.Node
	info    metadata.Info
	pages   [][]string
	current int
	turns   int

	top    image.Rectangle
	body   image.Rectangle
	bottom image.Rectangle
	lineH  int
}

// New opens info from the library of ctx.
func New(info metadata.Info, ctx *state.Context) (*Reader, error) {
	if !metadata.Supported(info.File.Kind) {
		return nil, fmt.Errorf("open %s: %w: %q", info.File.Path, ErrUnsupported, info.File.Kind)
	}
	data, err := os.ReadFile(metadata.Resolve(ctx.Library.Root(), info))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", info.File.Path, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("open %s: %w", info.File.Path, ErrEncoding)
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("open %s: %w", info.File.Path, ErrEmpty)
	}

	screen := ctx.Device.Rect()
	fonts := ctx.Fonts
	barH := view.BarHeight(fonts)
	r := &Reader{
		Node:   view.NewNode(view.Singleton(view.KindReader), screen),
		info:   info,
		top:    image.Rect(screen.Min.X, screen.Min.Y, screen.Max.X, screen.Min.Y+barH),
		bottom: image.Rect(screen.Min.X, screen.Max.Y-barH, screen.Max.X, screen.Max.Y),
		lineH:  font.LineHeight(fonts.Text),
	}
	r.body = image.Rect(screen.Min.X+3*view.Padding, r.top.Max.Y+view.Padding, screen.Max.X-3*view.Padding, r.bottom.Min.Y-view.Padding)
	r.pages = paginate(text, fonts, r.body, r.lineH)

	r.current = info.Reader.CurrentPage
	if r.current < 0 || r.current >= len(r.pages) {
		r.current = 0
	}
	r.info.Reader.PagesCount = len(r.pages)
	r.info.Reader.Opened = ctx.Clock()
	r.save(ctx)
	return r, nil
}

func paginate(text string, fonts *font.Fonts, body image.Rectangle, lineH int) [][]string {
	glyph := font.Width(fonts.Text, "0")
	if glyph < 1 {
		glyph = 1
	}
	cols := body.Dx() / glyph
	if cols < 1 {
		cols = 1
	}
	perPage := body.Dy() / lineH
	if perPage < 1 {
		perPage = 1
	}
	wrapped := wrap.String(wordwrap.String(text, cols), cols)
	lines := strings.Split(strings.TrimRight(wrapped, "\n"), "\n")
	var pages [][]string
	for len(lines) > 0 {
		n := perPage
		if n > len(lines) {
			n = len(lines)
		}
		pages = append(pages, lines[:n])
		lines = lines[n:]
	}
	return pages
}

// Info returns the document entry with the current reading progress.
func (r *Reader) Info() metadata.Info {
	return r.info
}

// Page returns the zero-based current page and the page count.
func (r *Reader) Page() (int, int) {
	return r.current, len(r.pages)
}

func (r *Reader) save(ctx *state.Context) {
	r.info.Reader.CurrentPage = r.current
	ctx.Library.Update(r.info)
}

func (r *Reader) turn(delta int, bus *view.Bus, ctx *state.Context) {
	next := r.current + delta
	if next < 0 || next >= len(r.pages) {
		return
	}
	r.current = next
	r.turns++
	r.save(ctx)
	mode := framebuffer.Partial
	if r.turns%fullRefreshEvery == 0 {
		mode = framebuffer.Full
	}
	bus.Push(view.Render{Rect: r.Rect(), Mode: mode})
}

func (r *Reader) Handle(evt view.Event, hub view.Hub, bus *view.Bus, ctx *state.Context) bool {
	switch e := evt.(type) {
	case view.Key:
		switch e.Kind.Type {
		case input.Move:
			r.turn(e.Kind.Dir.Delta(), bus, ctx)
			return true
		case input.Return:
			bus.Push(view.Back{})
			return true
		case input.Combine:
			bus.Push(view.Show{ID: view.Singleton(view.KindMainMenu)})
			return true
		case input.Alternate:
			bus.Push(view.Show{ID: view.Singleton(view.KindFrontlight)})
			return true
		}
	case view.Gesture:
		g := e.Gesture
		switch g.Kind {
		case gesture.Tap:
			pt := g.Point()
			switch {
			case pt.In(r.top):
				bus.Push(view.Back{})
			case pt.X < r.Rect().Min.X+r.Rect().Dx()/3:
				r.turn(-1, bus, ctx)
			default:
				r.turn(1, bus, ctx)
			}
			return true
		case gesture.Swipe:
			switch g.Dir {
			case geom.West:
				r.turn(1, bus, ctx)
				return true
			case geom.East:
				r.turn(-1, bus, ctx)
				return true
			}
		}
	}
	return false
}

func (r *Reader) Draw(dst draw.Image, rect image.Rectangle, fonts *font.Fonts) {
	view.Fill(dst, rect, view.White)
	if r.top.Overlaps(rect) {
		title := font.Fit(fonts.Title, r.info.Label(), r.top.Dx()-4*view.Padding)
		font.Draw(dst, rect, fonts.Title, image.Pt(r.top.Min.X+2*view.Padding, r.top.Min.Y+view.Padding), title, view.Black)
		view.Fill(dst, image.Rect(r.top.Min.X, r.top.Max.Y-1, r.top.Max.X, r.top.Max.Y).Intersect(rect), view.Black)
	}
	if r.body.Overlaps(rect) {
		for i, line := range r.pages[r.current] {
			y := r.body.Min.Y + i*r.lineH
			if y+r.lineH <= rect.Min.Y || y >= rect.Max.Y {
				continue
			}
			font.Draw(dst, rect, fonts.Text, image.Pt(r.body.Min.X, y), line, view.Black)
		}
	}
	if r.bottom.Overlaps(rect) {
		label := fmt.Sprintf("%d / %d", r.current+1, len(r.pages))
		x := r.bottom.Max.X - 2*view.Padding - font.Width(fonts.Text, label)
		font.Draw(dst, rect, fonts.Text, image.Pt(x, r.bottom.Min.Y+view.Padding), label, view.Dark)
	}
}
