package view

import "image"

// Locate returns the index of the topmost child of v with the given kind.
func Locate(v View, kind Kind) (int, bool) {
	children := v.Children()
	for i := len(children) - 1; i >= 0; i-- {
		if children[i].ID().Kind == kind {
			return i, true
		}
	}
	return 0, false
}

// LocateByID returns the index of the child of v with the given id.
func LocateByID(v View, id ID) (int, bool) {
	children := v.Children()
	for i := len(children) - 1; i >= 0; i-- {
		if children[i].ID() == id {
			return i, true
		}
	}
	return 0, false
}

// OverlappingRect returns the union of the rectangle of the child at index
// and the rectangles of its siblings that overlap it.
func OverlappingRect(v View, index int) image.Rectangle {
	children := v.Children()
	rect := children[index].Rect()
	union := rect
	for i, sibling := range children {
		if i != index && sibling.Rect().Overlaps(rect) {
			union = union.Union(sibling.Rect())
		}
	}
	return union
}

// Overlapping returns the children of v, other than skip, whose rectangle
// overlaps rect, back to front.
func Overlapping(v View, rect image.Rectangle, skip int) []View {
	var out []View
	for i, child := range v.Children() {
		if i != skip && child.Rect().Overlaps(rect) {
			out = append(out, child)
		}
	}
	return out
}
