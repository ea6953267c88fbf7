// Package device describes the e-ink hardware the shell is driving. A
// Descriptor is resolved once at startup and threaded through the
// application; nothing reads it from package state afterwards.
package device

import (
	"fmt"
	"image"
	"sort"
	"strings"
)

// Descriptor is an immutable description of a reader model.
type Descriptor struct {
	Name   string
	Model  string
	Width  int
	Height int
	DPI    int
}

// Rect returns the full-screen rectangle.
func (d Descriptor) Rect() image.Rectangle {
	return image.Rect(0, 0, d.Width, d.Height)
}

// Dims returns width and height in pixels.
func (d Descriptor) Dims() (int, int) {
	return d.Width, d.Height
}

const DefaultName = "touch"

var known = map[string]Descriptor{
	"touch":    {Name: "touch", Model: "Touch", Width: 600, Height: 800, DPI: 167},
	"glo-hd":   {Name: "glo-hd", Model: "Glo HD", Width: 1072, Height: 1448, DPI: 300},
	"aura-one": {Name: "aura-one", Model: "Aura ONE", Width: 1404, Height: 1872, DPI: 300},
	"clara-hd": {Name: "clara-hd", Model: "Clara HD", Width: 1072, Height: 1448, DPI: 300},
}

// Lookup resolves a descriptor by name. Names are case-insensitive.
func Lookup(name string) (Descriptor, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = DefaultName
	}
	d, ok := known[key]
	if !ok {
		return Descriptor{}, fmt.Errorf("unknown device %q (known: %s)", name, strings.Join(Names(), ", "))
	}
	return d, nil
}

// Names lists the known descriptor names in sorted order.
func Names() []string {
	names := make([]string, 0, len(known))
	for name := range known {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
