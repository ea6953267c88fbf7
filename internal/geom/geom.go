// Package geom holds the small geometry vocabulary shared by input, views,
// and the display. Rectangles are image.Rectangle values in framebuffer
// pixel coordinates.
package geom

import "image"

// LinearDir is a direction along a line of text or a sequence of pages.
type LinearDir int

const (
	Backward LinearDir = iota
	Forward
)

func (d LinearDir) String() string {
	switch d {
	case Backward:
		return "backward"
	case Forward:
		return "forward"
	default:
		return "unknown"
	}
}

// Opposite returns the reverse direction.
func (d LinearDir) Opposite() LinearDir {
	if d == Backward {
		return Forward
	}
	return Backward
}

// Delta returns -1 for Backward and 1 for Forward.
func (d LinearDir) Delta() int {
	if d == Backward {
		return -1
	}
	return 1
}

// Dir is a screen direction.
type Dir int

const (
	North Dir = iota
	East
	South
	West
)

func (d Dir) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// Overlaps reports whether a and b share at least one pixel.
func Overlaps(a, b image.Rectangle) bool {
	return !a.Intersect(b).Empty()
}

// Union returns the smallest rectangle containing every non-empty input.
func Union(rects ...image.Rectangle) image.Rectangle {
	var out image.Rectangle
	for _, r := range rects {
		out = out.Union(r)
	}
	return out
}

// Rect is shorthand for image.Rect.
func Rect(x0, y0, x1, y1 int) image.Rectangle {
	return image.Rect(x0, y0, x1, y1)
}

// Centered returns a w×h rectangle centred inside outer.
func Centered(outer image.Rectangle, w, h int) image.Rectangle {
	if w > outer.Dx() {
		w = outer.Dx()
	}
	if h > outer.Dy() {
		h = outer.Dy()
	}
	x := outer.Min.X + (outer.Dx()-w)/2
	y := outer.Min.Y + (outer.Dy()-h)/2
	return image.Rect(x, y, x+w, y+h)
}

// Distance2 returns the squared Euclidean distance between two points.
func Distance2(a, b image.Point) int {
	d := a.Sub(b)
	return d.X*d.X + d.Y*d.Y
}
