// Package menu implements the main menu overlay.
package menu

import (
	"image"
	"image/draw"

	"github.com/atomicstack/inkshell/internal/font"
	"github.com/atomicstack/inkshell/internal/framebuffer"
	"github.com/atomicstack/inkshell/internal/gesture"
	"github.com/atomicstack/inkshell/internal/input"
	"github.com/atomicstack/inkshell/internal/listing"
	"github.com/atomicstack/inkshell/internal/state"
	"github.com/atomicstack/inkshell/internal/view"
)

// Entries is the main menu content, top to bottom.
var Entries = []view.EntryID{
	view.EntryToggleInverted,
	view.EntryToggleMonochrome,
	view.EntryTakeScreenshot,
	view.EntryFrontlight,
	view.EntryQuit,
}

// Menu is the main menu overlay. It sits under the right end of the top
// bar.
type Menu struct {
	view.Node
	list *listing.List
	rowH int
}

// New builds the menu for the screen of ctx.
func New(ctx *state.Context) *Menu {
	fonts := ctx.Fonts
	screen := ctx.Device.Rect()
	items := make([]listing.Item, len(Entries))
	width := 0
	for i, e := range Entries {
		items[i] = listing.Item{ID: e.String(), Label: e.Label()}
		if w := font.Width(fonts.Text, e.Label()); w > width {
			width = w
		}
	}
	width += 6 * view.Padding
	rowH := view.RowHeight(fonts)
	top := view.TopBar(screen, fonts).Max.Y
	rect := image.Rect(screen.Max.X-width-view.Padding, top, screen.Max.X-view.Padding, top+rowH*len(Entries)+2*view.Padding)
	return &Menu{
		Node: view.NewNode(view.Singleton(view.KindMainMenu), rect),
		list: listing.New(items),
		rowH: rowH,
	}
}

// Cursor returns the highlighted entry.
func (m *Menu) Cursor() view.EntryID {
	return Entries[m.list.Cursor]
}

func (m *Menu) rowRect(i int) image.Rectangle {
	r := m.Rect()
	y := r.Min.Y + view.Padding + i*m.rowH
	return image.Rect(r.Min.X+2, y, r.Max.X-2, y+m.rowH)
}

func (m *Menu) activate(entry view.EntryID, bus *view.Bus) {
	bus.Push(view.Close{ID: m.ID()})
	if entry == view.EntryFrontlight {
		bus.Push(view.Show{ID: view.Singleton(view.KindFrontlight)})
		return
	}
	bus.Push(view.Select{Entry: entry})
}

func (m *Menu) Handle(evt view.Event, hub view.Hub, bus *view.Bus, ctx *state.Context) bool {
	switch e := evt.(type) {
	case view.Key:
		switch e.Kind.Type {
		case input.Move:
			if m.list.MoveCursorBy(e.Kind.Dir.Delta()) {
				bus.Push(view.Render{Rect: m.Rect(), Mode: framebuffer.Gui})
			}
			return true
		case input.Return:
			m.activate(m.Cursor(), bus)
			return true
		case input.Delete, input.Combine:
			bus.Push(view.Close{ID: m.ID()})
			return true
		}
	case view.Gesture:
		if e.Gesture.Kind != gesture.Tap {
			return false
		}
		pt := e.Gesture.Point()
		if !pt.In(m.Rect()) {
			bus.Push(view.Close{ID: m.ID()})
			return true
		}
		for i := range Entries {
			if pt.In(m.rowRect(i)) {
				m.list.Cursor = i
				m.activate(Entries[i], bus)
				return true
			}
		}
		return true
	}
	return false
}

func (m *Menu) Draw(dst draw.Image, rect image.Rectangle, fonts *font.Fonts) {
	r := m.Rect()
	view.Fill(dst, rect, view.White)
	view.Border(dst, r, rect, 2, view.Black)
	for i, e := range Entries {
		row := m.rowRect(i)
		if !row.Overlaps(rect) {
			continue
		}
		fg := view.Black
		if i == m.list.Cursor {
			view.Fill(dst, row.Intersect(rect), view.Dark)
			fg = view.White
		}
		font.Draw(dst, rect, fonts.Text, image.Pt(row.Min.X+2*view.Padding, row.Min.Y+view.Padding), e.Label(), fg)
	}
}
