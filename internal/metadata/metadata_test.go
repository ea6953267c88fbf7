package metadata

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	lib := t.TempDir()
	added := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	md := Metadata{{
		Title:  "Walden",
		Author: "Thoreau",
		File:   FileInfo{Path: "walden.txt", Kind: "txt", Size: 1024},
		Added:  added,
		Reader: ReaderInfo{CurrentPage: 3, PagesCount: 10},
	}}
	require.NoError(t, Save(lib, md))
	require.FileExists(t, filepath.Join(lib, Filename))

	got, err := Load(lib)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Walden", got[0].Title)
	require.Equal(t, 3, got[0].Reader.CurrentPage)
	require.True(t, got[0].Added.Equal(added))
}

func TestSaveNilWritesEmptyArray(t *testing.T) {
	lib := t.TempDir()
	require.NoError(t, Save(lib, nil))
	data, err := os.ReadFile(PathIn(lib))
	require.NoError(t, err)
	require.Equal(t, "[]\n", string(data))
}

func TestLoadMissingIndexFails(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
}

func TestUpdateReplacesByPath(t *testing.T) {
	md := Metadata{{Title: "a", File: FileInfo{Path: "a.txt"}}, {Title: "b", File: FileInfo{Path: "b.txt"}}}
	require.True(t, md.Update(Info{Title: "b2", File: FileInfo{Path: "b.txt"}}))
	require.Equal(t, "b2", md[1].Title)
	require.False(t, md.Update(Info{File: FileInfo{Path: "c.txt"}}))
}

func TestSyncAddsSupportedDocuments(t *testing.T) {
	lib := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(lib, "notes.txt"), []byte("hello"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(lib, "cover.png"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(lib, ".hidden"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(lib, ".hidden", "skip.txt"), []byte("x"), 0o644))

	md := Metadata{{Title: "Known", File: FileInfo{Path: "known.txt", Kind: "txt"}}}
	md, added, err := Sync(lib, md, time.Now())
	require.NoError(t, err)
	require.Equal(t, 1, added)
	i := md.Find("notes.txt")
	require.GreaterOrEqual(t, i, 0)
	require.Equal(t, "notes", md[i].Title)
	require.EqualValues(t, 5, md[i].File.Size)
	require.Equal(t, -1, md.Find(filepath.Join(".hidden", "skip.txt")))
}

func TestLabelFallsBackToFileName(t *testing.T) {
	require.Equal(t, "x.txt", Info{File: FileInfo{Path: "dir/x.txt"}}.Label())
	require.Equal(t, "T", Info{Title: "T"}.Label())
}
