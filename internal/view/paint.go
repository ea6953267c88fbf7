package view

import (
	"image"
	"image/color"
	"image/draw"
)

// Shades used by the views.
var (
	White = color.Gray{Y: 0xff}
	Gray  = color.Gray{Y: 0xaa}
	Dark  = color.Gray{Y: 0x55}
	Black = color.Gray{Y: 0x00}
)

// Fill paints rect with c.
func Fill(dst draw.Image, rect image.Rectangle, c color.Color) {
	draw.Draw(dst, rect, image.NewUniform(c), image.Point{}, draw.Src)
}

// Border paints a frame of the given thickness along the inside of frame,
// limited to clip.
func Border(dst draw.Image, frame, clip image.Rectangle, thickness int, c color.Color) {
	edges := []image.Rectangle{
		image.Rect(frame.Min.X, frame.Min.Y, frame.Max.X, frame.Min.Y+thickness),
		image.Rect(frame.Min.X, frame.Max.Y-thickness, frame.Max.X, frame.Max.Y),
		image.Rect(frame.Min.X, frame.Min.Y, frame.Min.X+thickness, frame.Max.Y),
		image.Rect(frame.Max.X-thickness, frame.Min.Y, frame.Max.X, frame.Max.Y),
	}
	for _, e := range edges {
		Fill(dst, e.Intersect(clip), c)
	}
}
