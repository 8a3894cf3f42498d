package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"sync"
	"testing"

	"github.com/eaglecooler/core/internal/library"
	"github.com/eaglecooler/core/internal/paths"
)

var captureStdoutMu sync.Mutex

// captureStdout redirects os.Stdout for the duration of fn and returns what
// was written, grounded on the teacher's internal/cli/new_test.go helper.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	captureStdoutMu.Lock()
	defer captureStdoutMu.Unlock()

	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	os.Stdout = w

	outputCh := make(chan string, 1)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outputCh <- buf.String()
	}()

	fn()

	os.Stdout = orig
	_ = w.Close()
	out := <-outputCh
	_ = r.Close()
	return out
}

// newFixtureLibrary writes a minimal library document plus one item under a
// fresh temp directory and returns a Library view over it alongside an
// FSHost pointed at the same root.
func newFixtureLibrary(t *testing.T) (*library.Library, *FSHost) {
	t.Helper()
	root := t.TempDir()

	emptyDoc, err := json.Marshal(library.Document{})
	if err != nil {
		t.Fatalf("marshal empty document: %v", err)
	}
	if err := os.WriteFile(paths.LibraryMetadataPath(root), emptyDoc, 0o644); err != nil {
		t.Fatalf("seed empty metadata: %v", err)
	}

	lib := library.Open(root)
	_, err = lib.UpdateMetadata(func(d *library.Document) error {
		d.Folders = []library.Node{
			{"id": "top", "name": "Top", "children": []interface{}{
				map[string]interface{}{"id": "child", "name": "Child"},
			}},
		}
		d.TagGroups = []library.TagGroup{{ID: "g1", Name: "Colors", Tags: []string{"red", "blue"}}}
		return nil
	})
	if err != nil {
		t.Fatalf("seed metadata: %v", err)
	}

	if err := os.MkdirAll(paths.ItemDir(root, "item1"), 0o755); err != nil {
		t.Fatalf("seed item dir: %v", err)
	}

	star := 4
	err = lib.WriteItem("item1", &library.ItemMetadata{
		ID:   "item1",
		Name: "Sunset",
		Ext:  "png",
		Tags: []string{"red"},
		Star: &star,
	}, library.DefaultWriteOptions())
	if err != nil {
		t.Fatalf("seed item: %v", err)
	}

	return lib, NewFSHost(root)
}

func resetGlobalCLIState(t *testing.T) {
	t.Helper()
	prevJSON := jsonOutput
	prevHost := fsHost
	prevLibPath := resolvedLibraryPath
	t.Cleanup(func() {
		jsonOutput = prevJSON
		fsHost = prevHost
		resolvedLibraryPath = prevLibPath
	})
}

