package ui

import (
	"image"
	"strings"
)

// PreviewCols is the width of the screen preview in terminal cells.
const PreviewCols = 50

// shades runs from dark to light.
var shades = []rune{'█', '▓', '▒', '░', ' '}

// PreviewSize returns the preview dimensions, in cells, for a screen of
// the given pixel size. Cells are assumed twice as tall as they are wide.
func PreviewSize(width, height int) (int, int) {
	if width <= 0 || height <= 0 {
		return PreviewCols, 1
	}
	rows := height * PreviewCols / (width * 2)
	if rows < 1 {
		rows = 1
	}
	return PreviewCols, rows
}

// Downsample renders img as rows of shade characters, averaging a sparse
// grid of samples per cell.
func Downsample(img *image.Gray, inverted bool, cols, rows int) []string {
	b := img.Bounds()
	out := make([]string, rows)
	var sb strings.Builder
	for r := 0; r < rows; r++ {
		sb.Reset()
		y0 := b.Min.Y + r*b.Dy()/rows
		y1 := b.Min.Y + (r+1)*b.Dy()/rows
		for c := 0; c < cols; c++ {
			x0 := b.Min.X + c*b.Dx()/cols
			x1 := b.Min.X + (c+1)*b.Dx()/cols
			v := average(img, image.Rect(x0, y0, x1, y1))
			if inverted {
				v = 0xff - v
			}
			sb.WriteRune(shades[v*len(shades)/256])
		}
		out[r] = sb.String()
	}
	return out
}

func average(img *image.Gray, cell image.Rectangle) int {
	stepX := max(1, cell.Dx()/4)
	stepY := max(1, cell.Dy()/4)
	sum, n := 0, 0
	for y := cell.Min.Y; y < cell.Max.Y; y += stepY {
		for x := cell.Min.X; x < cell.Max.X; x += stepX {
			sum += int(img.GrayAt(x, y).Y)
			n++
		}
	}
	if n == 0 {
		return 0xff
	}
	return sum / n
}
