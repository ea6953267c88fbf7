package state

import "github.com/atomicstack/inkshell/internal/metadata"

// LibraryStore holds the document index. Callers receive copies; changes go
// through SetEntries or Update.
type LibraryStore interface {
	Root() string
	Entries() metadata.Metadata
	SetEntries(metadata.Metadata)
	Update(metadata.Info) bool
}

type libraryStore struct {
	root    string
	entries metadata.Metadata
}

// NewLibraryStore returns a store for the library at root.
func NewLibraryStore(root string, entries metadata.Metadata) LibraryStore {
	return &libraryStore{root: root, entries: cloneEntries(entries)}
}

func (l *libraryStore) Root() string {
	return l.root
}

func (l *libraryStore) Entries() metadata.Metadata {
	return cloneEntries(l.entries)
}

func (l *libraryStore) SetEntries(entries metadata.Metadata) {
	l.entries = cloneEntries(entries)
}

func (l *libraryStore) Update(info metadata.Info) bool {
	return l.entries.Update(info)
}

func cloneEntries(entries metadata.Metadata) metadata.Metadata {
	if len(entries) == 0 {
		return nil
	}
	dup := make(metadata.Metadata, len(entries))
	copy(dup, entries)
	return dup
}
