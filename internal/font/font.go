// Package font loads the faces used to draw text and offers the few text
// drawing helpers views need.
package font

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Fonts is the font cache. It is loaded once at startup.
type Fonts struct {
	Text  xfont.Face
	Title xfont.Face
	// Source is the path the faces were loaded from; empty for the
	// built-in bitmap face.
	Source string
}

// Load builds the cache. An empty path selects the built-in bitmap face;
// otherwise the TrueType/OpenType file at path is parsed and sized for the
// panel's dpi.
func Load(path string, dpi int) (*Fonts, error) {
	if path == "" {
		return &Fonts{Text: basicfont.Face7x13, Title: basicfont.Face7x13}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load fonts: %w", err)
	}
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}
	text, err := opentype.NewFace(parsed, &opentype.FaceOptions{Size: 10, DPI: float64(dpi), Hinting: xfont.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("font face %s: %w", path, err)
	}
	title, err := opentype.NewFace(parsed, &opentype.FaceOptions{Size: 13, DPI: float64(dpi), Hinting: xfont.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("font face %s: %w", path, err)
	}
	return &Fonts{Text: text, Title: title, Source: path}, nil
}

// LineHeight returns the distance between baselines for face, in pixels.
func LineHeight(face xfont.Face) int {
	return face.Metrics().Height.Ceil()
}

// Width returns the advance of s in face, in pixels.
func Width(face xfont.Face, s string) int {
	return xfont.MeasureString(face, s).Ceil()
}

// Fit returns the longest prefix of s that fits in width pixels.
func Fit(face xfont.Face, s string, width int) string {
	if Width(face, s) <= width {
		return s
	}
	runes := []rune(s)
	for n := len(runes) - 1; n > 0; n-- {
		if Width(face, string(runes[:n])) <= width {
			return string(runes[:n])
		}
	}
	return ""
}

// Draw writes s onto dst with its top-left corner at pt, clipped to clip.
func Draw(dst draw.Image, clip image.Rectangle, face xfont.Face, pt image.Point, s string, c color.Color) {
	target := dst
	if sub, ok := dst.(interface {
		SubImage(image.Rectangle) image.Image
	}); ok {
		if clipped, ok := sub.SubImage(clip).(draw.Image); ok {
			target = clipped
		}
	}
	d := xfont.Drawer{
		Dst:  target,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(pt.X, pt.Y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)
}
