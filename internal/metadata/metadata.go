// Package metadata holds the document index stored under the library root.
package metadata

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/atomicstack/inkshell/internal/jsonutil"
)

// Filename is the name of the index document inside the library.
const Filename = ".metadata.json"

// FileInfo describes the file backing a document. Path is relative to the
// library root.
type FileInfo struct {
	Path string `json:"path"`
	Kind string `json:"kind"`
	Size int64  `json:"size"`
}

// ReaderInfo is the reading progress of a document.
type ReaderInfo struct {
	CurrentPage int       `json:"current_page"`
	PagesCount  int       `json:"pages_count"`
	Opened      time.Time `json:"opened"`
}

// Info is one entry of the document index.
type Info struct {
	Title  string     `json:"title"`
	Author string     `json:"author"`
	File   FileInfo   `json:"file"`
	Added  time.Time  `json:"added"`
	Reader ReaderInfo `json:"reader"`
}

// Label returns the title, falling back to the file name.
func (i Info) Label() string {
	if strings.TrimSpace(i.Title) != "" {
		return i.Title
	}
	return filepath.Base(i.File.Path)
}

// Metadata is the document index.
type Metadata []Info

// PathIn returns the index location for a library root.
func PathIn(library string) string {
	return filepath.Join(library, Filename)
}

// Load reads the index of the given library.
func Load(library string) (Metadata, error) {
	var md Metadata
	if err := jsonutil.Load(PathIn(library), &md); err != nil {
		return nil, fmt.Errorf("load metadata: %w", err)
	}
	return md, nil
}

// Save writes the index of the given library.
func Save(library string, md Metadata) error {
	if md == nil {
		md = Metadata{}
	}
	if err := jsonutil.Save(PathIn(library), md); err != nil {
		return fmt.Errorf("save metadata: %w", err)
	}
	return nil
}

// Find returns the index of the entry for path, or -1.
func (md Metadata) Find(path string) int {
	for i, info := range md {
		if info.File.Path == path {
			return i
		}
	}
	return -1
}

// Update replaces the entry with the same file path. It returns false when
// no such entry exists.
func (md Metadata) Update(info Info) bool {
	i := md.Find(info.File.Path)
	if i < 0 {
		return false
	}
	md[i] = info
	return true
}

// Sync adds entries for documents present under library but missing from
// the index. Entries whose files have disappeared are kept; their open
// attempts degrade to an invalid-document notice.
func Sync(library string, md Metadata, now time.Time) (Metadata, int, error) {
	var added int
	err := filepath.WalkDir(library, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != library && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		kind := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
		if !Supported(kind) {
			return nil
		}
		rel, err := filepath.Rel(library, path)
		if err != nil {
			return err
		}
		if md.Find(rel) >= 0 {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return err
		}
		title := strings.TrimSuffix(filepath.Base(rel), filepath.Ext(rel))
		md = append(md, Info{
			Title: title,
			File:  FileInfo{Path: rel, Kind: kind, Size: fi.Size()},
			Added: now,
		})
		added++
		return nil
	})
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return md, added, fmt.Errorf("scan library %s: %w", library, err)
	}
	sort.SliceStable(md, func(i, j int) bool { return md[i].Added.After(md[j].Added) })
	return md, added, nil
}

// Supported reports whether documents of the given kind can be opened.
func Supported(kind string) bool {
	return kind == "txt"
}

// Resolve returns the absolute location of info's file within library.
func Resolve(library string, info Info) string {
	if filepath.IsAbs(info.File.Path) {
		return info.File.Path
	}
	return filepath.Join(library, info.File.Path)
}

// EnsureLibrary creates the library root if needed.
func EnsureLibrary(library string) error {
	if err := os.MkdirAll(library, 0o755); err != nil {
		return fmt.Errorf("create library %s: %w", library, err)
	}
	return nil
}
