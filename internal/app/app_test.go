package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atomicstack/inkshell/internal/metadata"
	"github.com/atomicstack/inkshell/internal/settings"
)

func TestRunInitWritesDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	var out bytes.Buffer
	if err := Run(context.Background(), Config{SettingsPath: settings.DefaultPath, Init: true}, &out); err != nil {
		t.Fatalf("init: %v", err)
	}
	if _, err := settings.Load(settings.DefaultPath); err != nil {
		t.Fatalf("settings not written: %v", err)
	}
	if _, err := os.Stat(metadata.PathIn(settings.Default().LibraryPath)); err != nil {
		t.Fatalf("metadata not written: %v", err)
	}
	if !strings.Contains(out.String(), "Wrote default settings") {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestRunFailsWithoutSettings(t *testing.T) {
	chdir(t, t.TempDir())
	var out bytes.Buffer
	err := Run(context.Background(), Config{SettingsPath: "missing.json", Device: "touch"}, &out)
	if err == nil {
		t.Fatalf("expected load failure")
	}
	if out.Len() != 0 {
		t.Fatalf("banner printed before a failed load: %q", out.String())
	}
}

func TestRunHeadlessPrintsBannerAndSaves(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	if err := Run(context.Background(), Config{SettingsPath: settings.DefaultPath, Init: true}, new(bytes.Buffer)); err != nil {
		t.Fatalf("init: %v", err)
	}
	lib := settings.Default().LibraryPath
	if err := os.WriteFile(filepath.Join(lib, "note.txt"), []byte("hello"), 0o644); err != nil {
		t.Fatalf("write doc: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	cfg := Config{SettingsPath: settings.DefaultPath, Device: "glo-hd", Headless: true, ScreenshotDir: dir}
	if err := Run(ctx, cfg, &out); err != nil {
		t.Fatalf("run: %v", err)
	}

	want := "inkshell is running on a Kobo Glo HD.\nThe framebuffer resolution is 1072 by 1448.\n"
	if out.String() != want {
		t.Fatalf("unexpected banner %q", out.String())
	}
	md, err := metadata.Load(lib)
	if err != nil {
		t.Fatalf("load metadata: %v", err)
	}
	if md.Find("note.txt") < 0 {
		t.Fatalf("new document missing from saved index: %+v", md)
	}
}

func TestRunFailsWithoutLibraryIndex(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	if err := Run(context.Background(), Config{SettingsPath: settings.DefaultPath, Init: true}, new(bytes.Buffer)); err != nil {
		t.Fatalf("init: %v", err)
	}
	index := metadata.PathIn(settings.Default().LibraryPath)
	if err := os.Remove(index); err != nil {
		t.Fatalf("remove index: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Run(ctx, Config{SettingsPath: settings.DefaultPath, Device: "touch", Headless: true}, new(bytes.Buffer))
	if err == nil || !strings.Contains(err.Error(), "load state") {
		t.Fatalf("expected missing index to fail startup, got %v", err)
	}
}
