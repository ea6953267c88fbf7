package framebuffer

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

// UpdateInfo describes one issued update. Observers receive a copy.
type UpdateInfo struct {
	Token Token
	Rect  image.Rectangle
	Mode  UpdateMode
}

// Observer is notified after every successful update.
type Observer func(UpdateInfo)

// Memory is an in-memory 8-bit gray framebuffer. Updates settle instantly.
// It is owned by the dispatcher and is not safe for concurrent use.
type Memory struct {
	*image.Gray

	last       Token
	inverted   bool
	monochrome bool
	observer   Observer
}

// NewMemory allocates a white framebuffer of the given size.
func NewMemory(width, height int) *Memory {
	gray := image.NewGray(image.Rect(0, 0, width, height))
	for i := range gray.Pix {
		gray.Pix[i] = 0xff
	}
	return &Memory{Gray: gray}
}

// SetObserver installs fn to be called after each update. Passing nil
// removes the observer.
func (m *Memory) SetObserver(fn Observer) {
	m.observer = fn
}

// Update issues a refresh of rect clipped to the screen.
func (m *Memory) Update(rect image.Rectangle, mode UpdateMode) (Token, error) {
	clipped := rect.Intersect(m.Bounds())
	if clipped.Empty() {
		return 0, fmt.Errorf("update %v: rectangle outside of screen %v", rect, m.Bounds())
	}
	m.last++
	info := UpdateInfo{Token: m.last, Rect: clipped, Mode: mode}
	if m.observer != nil {
		m.observer(info)
	}
	return m.last, nil
}

// Wait returns immediately; memory updates have no refresh latency.
func (m *Memory) Wait(tok Token) (int, error) {
	if tok == 0 || tok > m.last {
		return 0, fmt.Errorf("wait: unknown token %d", tok)
	}
	return 1, nil
}

// Save writes the screen as an RGB8 PNG, applying the inverted and
// monochrome presentation flags.
func (m *Memory) Save(path string) error {
	rgb := m.rgb()
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, rgb); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// rgb converts the gray store to an opaque RGBA image, which the PNG
// encoder writes as 8-bit truecolor without alpha.
func (m *Memory) rgb() *image.RGBA {
	b := m.Bounds()
	out := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			v := m.GrayAt(x, y).Y
			if m.monochrome {
				if v < 0x80 {
					v = 0
				} else {
					v = 0xff
				}
			}
			if m.inverted {
				v = 0xff - v
			}
			out.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 0xff})
		}
	}
	return out
}

func (m *Memory) ToggleInverted() {
	m.inverted = !m.inverted
}

func (m *Memory) ToggleMonochrome() {
	m.monochrome = !m.monochrome
}

// Inverted reports the current inversion state.
func (m *Memory) Inverted() bool {
	return m.inverted
}

// Monochrome reports the current monochrome state.
func (m *Memory) Monochrome() bool {
	return m.monochrome
}

func (m *Memory) Dims() (int, int) {
	b := m.Bounds()
	return b.Dx(), b.Dy()
}

func (m *Memory) Rect() image.Rectangle {
	return m.Bounds()
}

// ErrReadOnly is returned by Failing for every save.
var ErrReadOnly = errors.New("read-only filesystem")

// Failing wraps a Framebuffer so that Save always fails. It stands in for
// an unwritable storage medium.
type Failing struct {
	Framebuffer
}

func (f Failing) Save(path string) error {
	return fmt.Errorf("save %s: %w", path, ErrReadOnly)
}
