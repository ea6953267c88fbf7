// Package testutil builds the fixtures shared by the view and dispatcher
// tests: a Context over a temporary library and a recording Hub.
package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/atomicstack/inkshell/internal/battery"
	"github.com/atomicstack/inkshell/internal/device"
	"github.com/atomicstack/inkshell/internal/font"
	"github.com/atomicstack/inkshell/internal/frontlight"
	"github.com/atomicstack/inkshell/internal/metadata"
	"github.com/atomicstack/inkshell/internal/settings"
	"github.com/atomicstack/inkshell/internal/state"
	"github.com/atomicstack/inkshell/internal/view"
)

// Now is the fixed clock of contexts built by NewContext.
var Now = time.Date(2024, 5, 17, 9, 30, 0, 0, time.UTC)

// NewContext returns a Context for the 600×800 touch device whose library
// holds docs, keyed by file name. Settings are saved next to the library so
// Context.Save works.
func NewContext(t *testing.T, docs map[string]string) *state.Context {
	t.Helper()
	dir := t.TempDir()
	lib := filepath.Join(dir, "library")
	if err := os.MkdirAll(lib, 0o755); err != nil {
		t.Fatalf("create library: %v", err)
	}
	names := make([]string, 0, len(docs))
	for name := range docs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(lib, name), []byte(docs[name]), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	md, _, err := metadata.Sync(lib, nil, Now)
	if err != nil {
		t.Fatalf("sync library: %v", err)
	}
	sort.SliceStable(md, func(i, j int) bool { return md[i].File.Path < md[j].File.Path })

	dev, err := device.Lookup(device.DefaultName)
	if err != nil {
		t.Fatalf("lookup device: %v", err)
	}
	fonts, err := font.Load("", dev.DPI)
	if err != nil {
		t.Fatalf("load fonts: %v", err)
	}
	s := settings.Default()
	s.LibraryPath = lib
	ctx := state.New(dev, s, md, fonts, frontlight.NewFake(s.FrontlightLevels), battery.NewFake())
	ctx.SettingsPath = filepath.Join(dir, settings.DefaultPath)
	ctx.ScreenshotDir = dir
	ctx.Now = func() time.Time { return Now }
	return ctx
}

// Info returns the library entry for name.
func Info(t *testing.T, ctx *state.Context, name string) metadata.Info {
	t.Helper()
	entries := ctx.Library.Entries()
	i := entries.Find(name)
	if i < 0 {
		t.Fatalf("no library entry for %s", name)
	}
	return entries[i]
}

// Hub records every event sent to it.
type Hub struct {
	mu     sync.Mutex
	events []view.Event
	sent   chan struct{}
}

// NewHub returns an empty recording hub.
func NewHub() *Hub {
	return &Hub{sent: make(chan struct{}, 64)}
}

func (h *Hub) Send(evt view.Event) bool {
	h.mu.Lock()
	h.events = append(h.events, evt)
	h.mu.Unlock()
	select {
	case h.sent <- struct{}{}:
	default:
	}
	return true
}

// Events returns a copy of the recorded events.
func (h *Hub) Events() []view.Event {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]view.Event(nil), h.events...)
}

// WaitFor blocks until at least n events were sent or timeout elapses.
func (h *Hub) WaitFor(n int, timeout time.Duration) []view.Event {
	deadline := time.After(timeout)
	for {
		if events := h.Events(); len(events) >= n {
			return events
		}
		select {
		case <-h.sent:
		case <-deadline:
			return h.Events()
		}
	}
}
