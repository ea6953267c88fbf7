package view

import (
	"image"

	"github.com/atomicstack/inkshell/internal/font"
)

// Padding is the inner spacing of bars and boxes, in pixels.
const Padding = 6

// BarHeight is the height of top and bottom bars.
func BarHeight(fonts *font.Fonts) int {
	return font.LineHeight(fonts.Title) + 2*Padding
}

// RowHeight is the height of one list row.
func RowHeight(fonts *font.Fonts) int {
	return font.LineHeight(fonts.Text) + 2*Padding
}

// TopBar returns the top bar of screen.
func TopBar(screen image.Rectangle, fonts *font.Fonts) image.Rectangle {
	return image.Rect(screen.Min.X, screen.Min.Y, screen.Max.X, screen.Min.Y+BarHeight(fonts))
}
