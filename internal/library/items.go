package library

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/eaglecooler/core/internal/paths"
)

// ItemMetadata is the per-item JSON document stored at
// images/{id}.info/metadata.json (spec.md §3). Star is a pointer so an
// absent rating round-trips as a missing field rather than zero.
type ItemMetadata struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Size             int64    `json:"size"`
	BTime            int64    `json:"btime,omitempty"`
	MTime            int64    `json:"mtime,omitempty"`
	ModificationTime int64    `json:"modificationTime,omitempty"`
	LastModified     int64    `json:"lastModified,omitempty"`
	Ext              string   `json:"ext"`
	Tags             []string `json:"tags"`
	Folders          []string `json:"folders"`
	IsDeleted        bool     `json:"isDeleted"`
	URL              string   `json:"url,omitempty"`
	Annotation       string   `json:"annotation,omitempty"`
	Star             *int     `json:"star,omitempty"`
}

// WriteOptions controls the side effects of Library.WriteItem.
type WriteOptions struct {
	// WriteURLCompanion writes the .url shortcut file alongside metadata
	// when Ext == "url". Defaults to true via DefaultWriteOptions.
	WriteURLCompanion bool
	// UpdateIndexes maintains mtime.json and tags.json after the write.
	// Defaults to true via DefaultWriteOptions.
	UpdateIndexes bool
}

// DefaultWriteOptions returns the options used when a caller has no reason
// to skip either side effect.
func DefaultWriteOptions() WriteOptions {
	return WriteOptions{WriteURLCompanion: true, UpdateIndexes: true}
}

// ReadItem reads and decodes one item's metadata.json, filling in its URL
// from the .url companion file when the stored metadata omits it but the
// item is a url-type item.
func (l *Library) ReadItem(id string) (*ItemMetadata, error) {
	data, err := os.ReadFile(paths.ItemMetadataPath(l.Root, id))
	if err != nil {
		return nil, err
	}
	var m ItemMetadata
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if m.Ext == "url" && m.URL == "" {
		if companion, ok := findURLCompanion(paths.ItemDir(l.Root, id)); ok {
			if url, err := readURLShortcut(companion); err == nil {
				m.URL = url
			}
		}
	}
	return &m, nil
}

// WriteItem writes an item's metadata.json, optionally writing its .url
// companion file and maintaining the derived indexes. The metadata write
// does not create the per-item directory — a missing directory surfaces
// as an error, exactly as a direct write to any other missing directory
// would.
func (l *Library) WriteItem(id string, data *ItemMetadata, opts WriteOptions) error {
	payload, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(paths.ItemMetadataPath(l.Root, id), payload, 0o644); err != nil {
		return err
	}

	if opts.WriteURLCompanion && data.Ext == "url" {
		dir := paths.ItemDir(l.Root, id)
		companion, ok := findURLCompanion(dir)
		if !ok {
			companion = paths.ItemURLFilePath(l.Root, id)
		}
		if err := writeURLShortcut(companion, data.URL); err != nil {
			return err
		}
	}

	if opts.UpdateIndexes {
		if err := l.updateIndexesOnWrite(id, data); err != nil {
			return err
		}
	}
	return nil
}

// ListItemIDs lists every item id present under the library's images
// directory, derived from its "{id}.info" subdirectory names.
func (l *Library) ListItemIDs() ([]string, error) {
	entries, err := os.ReadDir(paths.ImagesPath(l.Root))
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if id, ok := paths.ItemIDFromInfoDirName(e.Name()); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// findURLCompanion returns the first ".url"-suffixed file in dir. The
// companion's name need not match "{id}.url" — a host may have created it
// under a different name, and reads must still find it.
func findURLCompanion(dir string) (string, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".url") {
			return filepath.Join(dir, e.Name()), true
		}
	}
	return "", false
}

// readURLShortcut parses the Windows "[InternetShortcut]" ini format down
// to its URL= value.
func readURLShortcut(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	inSection := false
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "[InternetShortcut]":
			inSection = true
		case strings.HasPrefix(line, "["):
			inSection = false
		case inSection && strings.HasPrefix(line, "URL="):
			return strings.TrimPrefix(line, "URL="), nil
		}
	}
	return "", nil
}

// writeURLShortcut writes the Windows "[InternetShortcut]" ini format.
func writeURLShortcut(path, url string) error {
	content := "[InternetShortcut]\r\nURL=" + url + "\r\n"
	return os.WriteFile(path, []byte(content), 0o644)
}
