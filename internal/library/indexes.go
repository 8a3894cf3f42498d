package library

import (
	"encoding/json"
	"os"
	"time"

	"github.com/eaglecooler/core/internal/atomicfile"
	"github.com/eaglecooler/core/internal/paths"
)

// nowMs is the clock used to stamp the mtime index on writes that carry no
// explicit timestamp; overridable in tests.
var nowMs = func() int64 { return time.Now().UnixMilli() }

// MtimeIndex maps item id to last-modified epoch-ms. An optional "all" key
// carries an aggregate timestamp for the whole library.
type MtimeIndex map[string]int64

// TagsIndex tracks tags the host has ever seen, split into a general
// history and a starred subset.
type TagsIndex struct {
	HistoryTags []string `json:"historyTags"`
	StarredTags []string `json:"starredTags"`
}

// ReadMtimeIndex reads and decodes mtime.json. A missing or malformed file
// surfaces its error — callers needing best-effort reads should treat a
// non-nil error as "treat the index as empty" themselves.
func (l *Library) ReadMtimeIndex() (MtimeIndex, error) {
	data, err := os.ReadFile(paths.MtimePath(l.Root))
	if err != nil {
		return nil, err
	}
	var idx MtimeIndex
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, err
	}
	return idx, nil
}

func (l *Library) writeMtimeIndex(idx MtimeIndex) error {
	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return err
	}
	return atomicfile.WriteFile(paths.MtimePath(l.Root), data, 0o644)
}

// ReadTagsIndex reads and decodes tags.json.
func (l *Library) ReadTagsIndex() (TagsIndex, error) {
	data, err := os.ReadFile(paths.TagsPath(l.Root))
	if err != nil {
		return TagsIndex{}, err
	}
	var idx TagsIndex
	if err := json.Unmarshal(data, &idx); err != nil {
		return TagsIndex{}, err
	}
	return idx, nil
}

func (l *Library) writeTagsIndex(idx TagsIndex) error {
	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return err
	}
	return atomicfile.WriteFile(paths.TagsPath(l.Root), data, 0o644)
}

// updateIndexesOnWrite maintains both derived indexes after an item
// metadata write. Both indexes are treated as empty on read failure here —
// this call is part of the write's own bookkeeping, not a caller-facing
// read, so there is nothing to surface an error to.
func (l *Library) updateIndexesOnWrite(id string, data *ItemMetadata) error {
	mtimeIdx, err := l.ReadMtimeIndex()
	if err != nil || mtimeIdx == nil {
		mtimeIdx = MtimeIndex{}
	}
	ts := data.LastModified
	if ts == 0 {
		ts = data.ModificationTime
	}
	if ts == 0 {
		ts = nowMs()
	}
	mtimeIdx[id] = ts
	if err := l.writeMtimeIndex(mtimeIdx); err != nil {
		return err
	}

	tagsIdx, err := l.ReadTagsIndex()
	if err != nil {
		tagsIdx = TagsIndex{}
	}
	for _, tag := range data.Tags {
		if !containsString(tagsIdx.HistoryTags, tag) {
			tagsIdx.HistoryTags = append(tagsIdx.HistoryTags, tag)
		}
	}
	// StarredTags is left untouched here: spec only mandates historyTags
	// maintenance on write, and no host-compatible population rule for
	// starredTags is confirmed (see DESIGN.md's Open Question decisions).
	return l.writeTagsIndex(tagsIdx)
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
