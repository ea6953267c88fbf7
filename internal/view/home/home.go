// Package home implements the library view, the root of the view stack.
package home

import (
	"fmt"
	"image"
	"image/draw"
	"strconv"

	"github.com/atomicstack/inkshell/internal/font"
	"github.com/atomicstack/inkshell/internal/format/table"
	"github.com/atomicstack/inkshell/internal/framebuffer"
	"github.com/atomicstack/inkshell/internal/geom"
	"github.com/atomicstack/inkshell/internal/gesture"
	"github.com/atomicstack/inkshell/internal/input"
	"github.com/atomicstack/inkshell/internal/listing"
	"github.com/atomicstack/inkshell/internal/metadata"
	"github.com/atomicstack/inkshell/internal/state"
	"github.com/atomicstack/inkshell/internal/view"
	"github.com/atomicstack/inkshell/internal/view/notification"
	"github.com/dustin/go-humanize"
)

var alignments = []table.Alignment{table.AlignLeft, table.AlignLeft, table.AlignRight}

// Home lists the library. Typing filters the list, the cursor picks a
// document and Return opens it.
type Home struct {
	view.Node
	list    *listing.List
	entries metadata.Metadata

	top    image.Rectangle
	search image.Rectangle
	body   image.Rectangle
	rowH   int

	clock   string
	battery string
}

// New builds the home view over the library of ctx.
func New(ctx *state.Context) *Home {
	screen := ctx.Device.Rect()
	fonts := ctx.Fonts
	barH := view.BarHeight(fonts)
	h := &Home{
		Node:   view.NewNode(view.Singleton(view.KindHome), screen),
		top:    view.TopBar(screen, fonts),
		search: image.Rect(screen.Min.X, screen.Min.Y+barH, screen.Max.X, screen.Min.Y+2*barH),
		body:   image.Rect(screen.Min.X, screen.Min.Y+2*barH, screen.Max.X, screen.Max.Y),
		rowH:   view.RowHeight(fonts),
	}
	h.list = listing.New(nil)
	h.reload(ctx)
	h.tick(ctx)
	return h
}

func (h *Home) reload(ctx *state.Context) {
	h.entries = ctx.Library.Entries()
	items := make([]listing.Item, len(h.entries))
	for i, info := range h.entries {
		items[i] = listing.Item{ID: info.File.Path, Label: info.Label(), Detail: info.Author}
	}
	cursor := ""
	if cur, ok := h.list.Current(); ok {
		cursor = cur.ID
	}
	h.list.UpdateItems(items)
	if i := h.list.IndexOf(cursor); i >= 0 {
		h.list.Cursor = i
	}
}

func (h *Home) tick(ctx *state.Context) {
	h.clock = ctx.Clock().Format("15:04")
	h.battery = ""
	if ctx.Battery != nil {
		if capacity, err := ctx.Battery.Capacity(); err == nil {
			h.battery = strconv.Itoa(int(capacity)) + "%"
		}
	}
}

// Filter returns the current search text.
func (h *Home) Filter() string {
	return h.list.Filter
}

// Selected returns the entry under the cursor.
func (h *Home) Selected() (metadata.Info, bool) {
	cur, ok := h.list.Current()
	if !ok {
		return metadata.Info{}, false
	}
	i := h.entries.Find(cur.ID)
	if i < 0 {
		return metadata.Info{}, false
	}
	return h.entries[i], true
}

func (h *Home) visibleRows() int {
	return h.body.Dy() / h.rowH
}

func (h *Home) rowAt(pt image.Point) (int, bool) {
	if !pt.In(h.body) {
		return 0, false
	}
	rows, first := h.list.Visible(h.visibleRows())
	i := (pt.Y - h.body.Min.Y) / h.rowH
	if i >= len(rows) {
		return 0, false
	}
	return first + i, true
}

func (h *Home) open(bus *view.Bus) {
	if info, ok := h.Selected(); ok {
		bus.Push(view.Open{Info: info})
	}
}

func (h *Home) refreshList(bus *view.Bus) {
	bus.Push(view.Render{Rect: image.Rect(h.search.Min.X, h.search.Min.Y, h.body.Max.X, h.body.Max.Y), Mode: framebuffer.Gui})
}

func (h *Home) Handle(evt view.Event, hub view.Hub, bus *view.Bus, ctx *state.Context) bool {
	switch e := evt.(type) {
	case view.Key:
		return h.handleKey(e.Kind, bus)
	case view.Gesture:
		return h.handleGesture(e.Gesture, bus)
	case view.ClockTick:
		h.tick(ctx)
		bus.Push(view.Render{Rect: h.top, Mode: framebuffer.Gui})
		return true
	case view.Back:
		h.reload(ctx)
		bus.Push(view.Render{Rect: h.Rect(), Mode: framebuffer.Full})
		return true
	case view.Invalid:
		text := fmt.Sprintf("Couldn't open %s.", e.Info.Label())
		n := notification.New(text, ctx.NextNotificationIndex(), hub, ctx)
		view.AddChild(h, n)
		bus.Push(view.Render{Rect: n.Rect(), Mode: framebuffer.Gui})
		return true
	}
	return false
}

func (h *Home) handleKey(k input.KeyKind, bus *view.Bus) bool {
	switch k.Type {
	case input.Output:
		if h.list.TypeFilter(string(k.Char)) {
			h.refreshList(bus)
		}
	case input.Delete:
		var changed bool
		if k.Dir == geom.Backward {
			changed = h.list.EraseFilter()
		} else {
			changed = h.list.ClearFilter()
		}
		if changed {
			h.refreshList(bus)
		}
	case input.Move:
		if h.list.MoveCursorBy(k.Dir.Delta()) {
			h.refreshList(bus)
		}
	case input.Return:
		h.open(bus)
	case input.Combine:
		bus.Push(view.Show{ID: view.Singleton(view.KindMainMenu)})
	case input.Alternate:
		bus.Push(view.Show{ID: view.Singleton(view.KindFrontlight)})
	case input.Shift:
	default:
		return false
	}
	return true
}

func (h *Home) handleGesture(g gesture.Event, bus *view.Bus) bool {
	switch g.Kind {
	case gesture.Tap:
		pt := g.Point()
		if pt.In(h.top) {
			bus.Push(view.Show{ID: view.Singleton(view.KindMainMenu)})
			return true
		}
		if i, ok := h.rowAt(pt); ok {
			h.list.Cursor = i
			h.open(bus)
			return true
		}
	case gesture.Swipe:
		switch g.Dir {
		case geom.North, geom.West:
			if h.list.MoveCursorPageDown(h.visibleRows()) {
				h.refreshList(bus)
			}
			return true
		case geom.South, geom.East:
			if h.list.MoveCursorPageUp(h.visibleRows()) {
				h.refreshList(bus)
			}
			return true
		}
	case gesture.Hold:
		if g.Point().In(h.top) {
			bus.Push(view.Show{ID: view.Singleton(view.KindFrontlight)})
			return true
		}
	}
	return false
}

func (h *Home) Draw(dst draw.Image, rect image.Rectangle, fonts *font.Fonts) {
	view.Fill(dst, rect, view.White)
	if h.top.Overlaps(rect) {
		h.drawTop(dst, rect, fonts)
	}
	if h.search.Overlaps(rect) {
		label := "Search: " + h.list.Filter
		font.Draw(dst, rect, fonts.Text, image.Pt(h.search.Min.X+2*view.Padding, h.search.Min.Y+view.Padding), label, view.Dark)
		view.Fill(dst, image.Rect(h.search.Min.X, h.search.Max.Y-1, h.search.Max.X, h.search.Max.Y).Intersect(rect), view.Gray)
	}
	if h.body.Overlaps(rect) {
		h.drawRows(dst, rect, fonts)
	}
}

func (h *Home) drawTop(dst draw.Image, rect image.Rectangle, fonts *font.Fonts) {
	y := h.top.Min.Y + view.Padding
	font.Draw(dst, rect, fonts.Title, image.Pt(h.top.Min.X+2*view.Padding, y), "Library", view.Black)
	status := h.clock
	if h.battery != "" {
		status += "  " + h.battery
	}
	x := h.top.Max.X - 2*view.Padding - font.Width(fonts.Title, status)
	font.Draw(dst, rect, fonts.Title, image.Pt(x, y), status, view.Black)
	view.Fill(dst, image.Rect(h.top.Min.X, h.top.Max.Y-1, h.top.Max.X, h.top.Max.Y).Intersect(rect), view.Black)
}

func (h *Home) drawRows(dst draw.Image, rect image.Rectangle, fonts *font.Fonts) {
	items, first := h.list.Visible(h.visibleRows())
	cells := make([][]string, len(items))
	for i, item := range items {
		cells[i] = []string{item.Label, item.Detail, h.size(item.ID)}
	}
	measure := func(s string) int { return font.Width(fonts.Text, s) }
	cols := table.Columns(cells, measure, 4*view.Padding)
	if n := len(cols); n > 0 {
		// The title column absorbs any overflow.
		room := h.body.Dx() - 4*view.Padding - (cols[n-1].Offset + cols[n-1].Width)
		if room < 0 {
			cols[0].Width += room
			for c := 1; c < n; c++ {
				cols[c].Offset += room
			}
		}
	}
	for i, row := range cells {
		r := image.Rect(h.body.Min.X, h.body.Min.Y+i*h.rowH, h.body.Max.X, h.body.Min.Y+(i+1)*h.rowH)
		if !r.Overlaps(rect) {
			continue
		}
		fg := view.Black
		if first+i == h.list.Cursor {
			view.Fill(dst, r.Intersect(rect), view.Dark)
			fg = view.White
		}
		row[0] = font.Fit(fonts.Text, row[0], cols[0].Width)
		xs := table.Place(row, cols, alignments, measure)
		for c, cell := range row {
			font.Draw(dst, rect, fonts.Text, image.Pt(r.Min.X+2*view.Padding+xs[c], r.Min.Y+view.Padding), cell, fg)
		}
	}
}

func (h *Home) size(path string) string {
	i := h.entries.Find(path)
	if i < 0 {
		return ""
	}
	info := h.entries[i]
	size := humanize.Bytes(uint64(info.File.Size))
	if info.Reader.PagesCount > 0 {
		return fmt.Sprintf("%d/%d  %s", info.Reader.CurrentPage+1, info.Reader.PagesCount, size)
	}
	return size
}
