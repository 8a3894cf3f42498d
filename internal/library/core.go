package library

import (
	"encoding/json"
	"os"

	"github.com/eaglecooler/core/internal/atomicfile"
	"github.com/eaglecooler/core/internal/paths"
)

// Library is a bare, file-backed view of one host library rooted at Root.
// It holds no cached state; every operation reads the relevant file(s)
// fresh and, for mutations, writes them back. The library document and its
// derived indexes are replaced atomically; per-item metadata.json and .url
// files are written in place with os.WriteFile.
type Library struct {
	Root string
}

// Open returns a Library view rooted at root. It performs no I/O and never
// fails — root need not exist until the first read.
func Open(root string) *Library {
	return &Library{Root: root}
}

// ReadMetadata reads and decodes the library document. A missing or
// malformed file surfaces its error to the caller (spec.md §7: Bare
// Library I/O does not invent a default document).
func (l *Library) ReadMetadata() (*Document, error) {
	data, err := os.ReadFile(paths.LibraryMetadataPath(l.Root))
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (l *Library) writeMetadata(doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return atomicfile.WriteFile(paths.LibraryMetadataPath(l.Root), data, 0o644)
}

// MutateFunc mutates a deep-cloned document in place. Returning an error
// aborts the update before anything is written.
type MutateFunc func(*Document) error

// UpdateMetadata implements clone-mutate-replace (spec.md §4.C): it reads
// the current document, deep-clones it so the caller's mutation can never
// alias the original read result, applies fn to the clone, and — if fn
// succeeds — atomically replaces the on-disk document with the clone. The
// deep-clone guarantee (spec.md §8) means a caller holding the result of a
// prior ReadMetadata is never affected by this call.
func (l *Library) UpdateMetadata(fn MutateFunc) (*Document, error) {
	doc, err := l.ReadMetadata()
	if err != nil {
		return nil, err
	}
	clone, err := deepClone(doc)
	if err != nil {
		return nil, err
	}
	if err := fn(clone); err != nil {
		return nil, err
	}
	if err := l.writeMetadata(clone); err != nil {
		return nil, err
	}
	return clone, nil
}

// addToForest locates the forest selected by field (Folders or
// SmartFolders) within a freshly cloned document and appends node to it.
func (l *Library) addToForest(field func(*Document) *[]Node, node Node, parentID string) (*Document, error) {
	return l.UpdateMetadata(func(d *Document) error {
		slot := field(d)
		updated, err := Add(*slot, node, parentID)
		if err != nil {
			return err
		}
		*slot = updated
		return nil
	})
}

func (l *Library) updateInForest(field func(*Document) *[]Node, id string, patch map[string]interface{}) (*Document, error) {
	return l.UpdateMetadata(func(d *Document) error {
		return Update(*field(d), id, patch)
	})
}

func (l *Library) removeFromForest(field func(*Document) *[]Node, id string) (*Document, error) {
	return l.UpdateMetadata(func(d *Document) error {
		slot := field(d)
		*slot = Remove(*slot, id)
		return nil
	})
}
