package listing

// MoveCursorBy moves the cursor by delta rows, clamped to the list.
func (l *List) MoveCursorBy(delta int) bool {
	if len(l.Items) == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	l.Cursor = min(max(l.Cursor+delta, 0), len(l.Items)-1)
	return l.Cursor != old
}

// MoveCursorPageUp and MoveCursorPageDown move by one screenful of rows.
func (l *List) MoveCursorPageUp(rows int) bool {
	return l.MoveCursorBy(-l.pageSize(rows))
}

func (l *List) MoveCursorPageDown(rows int) bool {
	return l.MoveCursorBy(l.pageSize(rows))
}

func (l *List) pageSize(rows int) int {
	if rows <= 0 || rows > len(l.Items) {
		return len(l.Items)
	}
	return rows
}

// Visible returns the rows of the page holding the cursor and the index of
// the first one. Pages are fixed: the viewport jumps a whole page when the
// cursor leaves it, which keeps e-ink redraws to one per page.
func (l *List) Visible(rows int) ([]Item, int) {
	if len(l.Items) == 0 {
		l.Cursor, l.ViewportOffset = 0, 0
		return nil, 0
	}
	l.Cursor = min(max(l.Cursor, 0), len(l.Items)-1)
	if rows <= 0 || len(l.Items) <= rows {
		l.ViewportOffset = 0
		return l.Items, 0
	}
	l.ViewportOffset = l.Cursor / rows * rows
	end := min(l.ViewportOffset+rows, len(l.Items))
	return l.Items[l.ViewportOffset:end], l.ViewportOffset
}
