// Package listing holds the cursor, filter and viewport state of list-like
// views such as the library and the main menu.
package listing

// Item is one row of a list.
type Item struct {
	ID     string
	Label  string
	Detail string
}

// List encapsulates list state such as cursor position, filter, and viewport.
type List struct {
	Items          []Item
	Full           []Item
	Filter         string
	Cursor         int
	LastCursor     int
	ViewportOffset int
}

// New constructs a List over items with the cursor on the first row.
func New(items []Item) *List {
	l := &List{LastCursor: -1}
	l.UpdateItems(items)
	l.Cursor = 0
	return l
}

// IndexOf returns the index for a given item identifier.
func (l *List) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, item := range l.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// Current returns the item under the cursor.
func (l *List) Current() (Item, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return Item{}, false
	}
	return l.Items[l.Cursor], true
}

// UpdateItems refreshes the list items, keeping the viewport when possible.
func (l *List) UpdateItems(items []Item) {
	prevOffset := l.ViewportOffset
	l.Full = CloneItems(items)
	l.applyFilter()
	if len(l.Items) == 0 {
		l.ViewportOffset = 0
		return
	}
	if prevOffset < 0 {
		prevOffset = 0
	}
	if prevOffset > len(l.Items)-1 {
		l.ViewportOffset = 0
		return
	}
	l.ViewportOffset = prevOffset
}

// CloneItems produces a shallow copy of the provided items.
func CloneItems(items []Item) []Item {
	dup := make([]Item, len(items))
	copy(dup, items)
	return dup
}
