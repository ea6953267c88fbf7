package reader

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atomicstack/inkshell/internal/geom"
	"github.com/atomicstack/inkshell/internal/gesture"
	"github.com/atomicstack/inkshell/internal/input"
	"github.com/atomicstack/inkshell/internal/metadata"
	"github.com/atomicstack/inkshell/internal/testutil"
	"github.com/atomicstack/inkshell/internal/view"
)

func longText() string {
	return strings.Repeat("All work and no play makes for a long document. ", 800)
}

func TestNewRejectsUnopenableDocuments(t *testing.T) {
	ctx := testutil.NewContext(t, map[string]string{
		"empty.txt": "   \n",
		"ok.txt":    "fine",
	})
	if err := os.WriteFile(filepath.Join(ctx.Library.Root(), "binary.txt"), []byte{0xff, 0xfe, 0x00}, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cases := []struct {
		name string
		info metadata.Info
		want error
	}{
		{"empty", testutil.Info(t, ctx, "empty.txt"), ErrEmpty},
		{"encoding", metadata.Info{File: metadata.FileInfo{Path: "binary.txt", Kind: "txt"}}, ErrEncoding},
		{"kind", metadata.Info{File: metadata.FileInfo{Path: "book.epub", Kind: "epub"}}, ErrUnsupported},
		{"missing", metadata.Info{File: metadata.FileInfo{Path: "gone.txt", Kind: "txt"}}, os.ErrNotExist},
	}
	for _, tc := range cases {
		if _, err := New(tc.info, ctx); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestPageTurnsUpdateLibrary(t *testing.T) {
	ctx := testutil.NewContext(t, map[string]string{"long.txt": longText()})
	r, err := New(testutil.Info(t, ctx, "long.txt"), ctx)
	if err != nil {
		t.Fatalf("new reader: %v", err)
	}
	page, count := r.Page()
	if page != 0 || count < 2 {
		t.Fatalf("expected several pages starting at 0, got %d/%d", page, count)
	}
	var bus view.Bus
	r.Handle(view.Key{Kind: input.MoveKey(geom.Forward)}, nil, &bus, ctx)
	if page, _ := r.Page(); page != 1 {
		t.Fatalf("expected page 1, got %d", page)
	}
	if bus.Len() != 1 {
		t.Fatalf("expected a render after turning")
	}
	saved := testutil.Info(t, ctx, "long.txt")
	if saved.Reader.CurrentPage != 1 || saved.Reader.PagesCount != count {
		t.Fatalf("expected progress saved, got %+v", saved.Reader)
	}

	bus.Drain()
	r.Handle(view.Key{Kind: input.MoveKey(geom.Backward)}, nil, &bus, ctx)
	r.Handle(view.Key{Kind: input.MoveKey(geom.Backward)}, nil, &bus, ctx)
	if page, _ := r.Page(); page != 0 || bus.Len() != 1 {
		t.Fatalf("expected to stop at the first page, page=%d renders=%d", page, bus.Len())
	}
}

func TestResumesSavedPage(t *testing.T) {
	ctx := testutil.NewContext(t, map[string]string{"long.txt": longText()})
	info := testutil.Info(t, ctx, "long.txt")
	info.Reader.CurrentPage = 2
	r, err := New(info, ctx)
	if err != nil {
		t.Fatalf("new reader: %v", err)
	}
	if page, _ := r.Page(); page != 2 {
		t.Fatalf("expected page 2, got %d", page)
	}
}

func TestReturnAndTopTapGoBack(t *testing.T) {
	ctx := testutil.NewContext(t, map[string]string{"short.txt": "hello"})
	r, err := New(testutil.Info(t, ctx, "short.txt"), ctx)
	if err != nil {
		t.Fatalf("new reader: %v", err)
	}
	var bus view.Bus
	r.Handle(view.Key{Kind: input.KeyKind{Type: input.Return}}, nil, &bus, ctx)
	r.Handle(view.Gesture{Gesture: gesture.Event{Kind: gesture.Tap, Start: image.Pt(300, 2)}}, nil, &bus, ctx)
	events := bus.Drain()
	if len(events) != 2 || events[0] != (view.Back{}) || events[1] != (view.Back{}) {
		t.Fatalf("expected two back events, got %v", events)
	}
}
