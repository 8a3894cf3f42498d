package cli

import (
	"os"
	"path/filepath"

	"github.com/eaglecooler/core/internal/hostapi"
	"github.com/eaglecooler/core/internal/library"
)

// FSHost is a hostapi.Host implementation that reads directly from a
// library root on disk, standing in for THE HOST's in-process object API
// when eaglecoolctl is pointed at a real or fixture library directory
// rather than running inside the host process (SPEC_FULL.md's "CLI demo"
// supplement — the spec names only the consumed operations, §6, and
// leaves a concrete host out of scope).
//
// FSHost has no selection concept of its own (there is no running host UI
// to select items in): SelectedItems/SelectedFolders always report empty,
// which is enough to exercise the Change Subscription Manager's
// library-identity and on-disk-mtime pollers end-to-end even though the
// selection pollers never fire against it.
type FSHost struct {
	lib      *library.Library
	onCreate func(hostapi.Manifest)
}

// NewFSHost returns a Host view of the library rooted at root.
func NewFSHost(root string) *FSHost {
	return &FSHost{lib: library.Open(root)}
}

func (h *FSHost) LibraryIdentity() (hostapi.LibraryIdentity, error) {
	return hostapi.LibraryIdentity{Path: h.lib.Root, Name: filepath.Base(h.lib.Root)}, nil
}

func (h *FSHost) HomeDir() (string, error) {
	return os.UserHomeDir()
}

func (h *FSHost) SelectedItems() ([]hostapi.ItemRecord, error)     { return nil, nil }
func (h *FSHost) SelectedFolders() ([]hostapi.FolderRecord, error) { return nil, nil }

func (h *FSHost) AllItems() ([]hostapi.ItemRecord, error) {
	ids, err := h.lib.ListItemIDs()
	if err != nil {
		return nil, err
	}
	items := make([]hostapi.ItemRecord, 0, len(ids))
	for _, id := range ids {
		meta, err := h.lib.ReadItem(id)
		if err != nil {
			continue
		}
		items = append(items, &fsItemRecord{meta: meta})
	}
	return items, nil
}

func (h *FSHost) AllFolders() ([]hostapi.FolderRecord, error) {
	nodes, err := h.lib.ListFolders()
	if err != nil {
		return nil, err
	}
	return wrapFolderNodes(nodes), nil
}

func (h *FSHost) ItemByID(id string) (hostapi.ItemRecord, bool, error) {
	meta, err := h.lib.ReadItem(id)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return &fsItemRecord{meta: meta}, true, nil
}

func (h *FSHost) FolderByID(id string) (hostapi.FolderRecord, bool, error) {
	node, ok, err := h.lib.GetFolder(id)
	if err != nil || !ok {
		return nil, ok, err
	}
	return wrapFolderNode(node), true, nil
}

// OnCreate registers the plugin-lifecycle callback. FireOnCreate invokes
// it, standing in for the host's own lifecycle dispatch.
func (h *FSHost) OnCreate(cb func(hostapi.Manifest)) { h.onCreate = cb }

// FireOnCreate simulates the host delivering its "on create" hook, used by
// the CLI's root command to establish the process-wide plugin id before
// any config or HTTP operation (spec.md §9).
func (h *FSHost) FireOnCreate(manifest hostapi.Manifest) {
	if h.onCreate != nil {
		h.onCreate(manifest)
	}
}

// fsItemRecord adapts library.ItemMetadata to hostapi.ItemRecord.
type fsItemRecord struct {
	meta *library.ItemMetadata
}

func (r *fsItemRecord) ID() string         { return r.meta.ID }
func (r *fsItemRecord) Name() string       { return r.meta.Name }
func (r *fsItemRecord) Ext() string        { return r.meta.Ext }
func (r *fsItemRecord) URL() string        { return r.meta.URL }
func (r *fsItemRecord) Annotation() string { return r.meta.Annotation }
func (r *fsItemRecord) Width() int         { return 0 }
func (r *fsItemRecord) Height() int        { return 0 }
func (r *fsItemRecord) Size() int64        { return r.meta.Size }
func (r *fsItemRecord) Star() (int, bool) {
	if r.meta.Star == nil {
		return 0, false
	}
	return *r.meta.Star, true
}
func (r *fsItemRecord) ImportedAt() int64 {
	if r.meta.BTime != 0 {
		return r.meta.BTime
	}
	return r.meta.MTime
}
func (r *fsItemRecord) ModifiedAt() int64 {
	if r.meta.LastModified != 0 {
		return r.meta.LastModified
	}
	return r.meta.ModificationTime
}
func (r *fsItemRecord) Tags() []string    { return r.meta.Tags }
func (r *fsItemRecord) Folders() []string { return r.meta.Folders }
func (r *fsItemRecord) IsDeleted() bool   { return r.meta.IsDeleted }

// fsFolderRecord adapts a library.Node (and its nested children) to
// hostapi.FolderRecord.
type fsFolderRecord struct {
	node     library.Node
	children []hostapi.FolderRecord
}

func wrapFolderNode(node library.Node) *fsFolderRecord {
	childNodes := node.Children()
	children := make([]hostapi.FolderRecord, len(childNodes))
	for i, c := range childNodes {
		children[i] = wrapFolderNode(c)
	}
	return &fsFolderRecord{node: node, children: children}
}

func wrapFolderNodes(nodes []library.Node) []hostapi.FolderRecord {
	out := make([]hostapi.FolderRecord, len(nodes))
	for i, n := range nodes {
		out[i] = wrapFolderNode(n)
	}
	return out
}

func (r *fsFolderRecord) stringField(key string) string {
	if v, ok := r.node[key].(string); ok {
		return v
	}
	return ""
}

func (r *fsFolderRecord) int64Field(key string) int64 {
	switch v := r.node[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	default:
		return 0
	}
}

func (r *fsFolderRecord) ID() string {
	id, _ := r.node.ID()
	return id
}
func (r *fsFolderRecord) Name() string        { return r.stringField("name") }
func (r *fsFolderRecord) Description() string { return r.stringField("description") }
func (r *fsFolderRecord) IconName() string    { return r.stringField("iconName") }
func (r *fsFolderRecord) IconColor() string   { return r.stringField("iconColor") }
func (r *fsFolderRecord) CreatedAt() int64    { return r.int64Field("createdAt") }
func (r *fsFolderRecord) ParentID() (string, bool) {
	id := r.stringField("parentId")
	return id, id != ""
}
func (r *fsFolderRecord) Children() []hostapi.FolderRecord { return r.children }
