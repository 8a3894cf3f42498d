// Package snapshot implements the Record Extractor (spec.md §4.A).
//
// THE HOST exposes item and folder fields only through accessor methods,
// never through enumerable struct fields. Any attempt to structurally copy
// or range over such a record silently yields an empty value, so every
// field this package projects is named explicitly — never via reflection
// or a generic struct-copy helper.
package snapshot

import "github.com/eaglecooler/core/internal/hostapi"

// NoStar is the distinguished "absent" value for ItemSnapshot.Star.
const NoStar = -1

// ItemSnapshot is an immutable, serializable projection of a host item.
type ItemSnapshot struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Ext        string   `json:"ext"`
	URL        string   `json:"url"`
	Annotation string   `json:"annotation"`
	Width      int      `json:"width"`
	Height     int      `json:"height"`
	Size       int64    `json:"size"`
	Star       int      `json:"star"` // NoStar when absent
	ImportedAt int64    `json:"importedAt"`
	ModifiedAt int64    `json:"modifiedAt"`
	Tags       []string `json:"tags"`
	Folders    []string `json:"folders"`
	IsDeleted  bool     `json:"isDeleted"`
}

// FolderSnapshot is an immutable, serializable projection of a host folder.
//
// Children is preserved as-is (shallow); recursively extracting the full
// subtree is the caller's responsibility (see ExtractFolderTree).
type FolderSnapshot struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	IconName    string              `json:"iconName"`
	IconColor   string              `json:"iconColor"`
	CreatedAt   int64               `json:"createdAt"`
	ParentID    *string             `json:"parentId"`
	Children    []hostapi.FolderRecord `json:"-"`
}

// LibraryState is the empty-on-failure snapshot of host library identity.
type LibraryState struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

// ExtractItem projects a live host item record into a snapshot. It is pure:
// re-extracting the result of a prior extraction is a no-op (ItemSnapshot
// carries no host-owned references).
//
// Accessor failures are not possible here by interface contract (ItemRecord's
// methods don't return errors); a record assumed live whose accessors panic
// is a caller bug, not something this function guards against.
func ExtractItem(record hostapi.ItemRecord) ItemSnapshot {
	star := NoStar
	if rating, ok := record.Star(); ok {
		star = rating
	}

	tags := record.Tags()
	if tags == nil {
		tags = []string{}
	}
	folders := record.Folders()
	if folders == nil {
		folders = []string{}
	}

	return ItemSnapshot{
		ID:         record.ID(),
		Name:       record.Name(),
		Ext:        record.Ext(),
		URL:        record.URL(),
		Annotation: record.Annotation(),
		Width:      record.Width(),
		Height:     record.Height(),
		Size:       record.Size(),
		Star:       star,
		ImportedAt: record.ImportedAt(),
		ModifiedAt: record.ModifiedAt(),
		Tags:       tags,
		Folders:    folders,
		IsDeleted:  record.IsDeleted(),
	}
}

// ExtractItems extracts a sequence of item records, preserving order.
func ExtractItems(records []hostapi.ItemRecord) []ItemSnapshot {
	out := make([]ItemSnapshot, len(records))
	for i, r := range records {
		out[i] = ExtractItem(r)
	}
	return out
}

// ExtractFolder projects a live host folder record into a snapshot. The
// nested Children reference is kept shallow — it still holds live host
// records, not snapshots.
func ExtractFolder(record hostapi.FolderRecord) FolderSnapshot {
	var parentID *string
	if id, ok := record.ParentID(); ok {
		idCopy := id
		parentID = &idCopy
	}

	return FolderSnapshot{
		ID:          record.ID(),
		Name:        record.Name(),
		Description: record.Description(),
		IconName:    record.IconName(),
		IconColor:   record.IconColor(),
		CreatedAt:   record.CreatedAt(),
		ParentID:    parentID,
		Children:    record.Children(),
	}
}

// ExtractFolders extracts a sequence of folder records, preserving order.
func ExtractFolders(records []hostapi.FolderRecord) []FolderSnapshot {
	out := make([]FolderSnapshot, len(records))
	for i, r := range records {
		out[i] = ExtractFolder(r)
	}
	return out
}

// FolderTreeSnapshot is what ExtractFolderTree returns: a folder record and
// all of its descendants, with the shallow Children []hostapi.FolderRecord
// replaced by a plain, serializable tree in ChildTrees. This is the "deep extraction"
// spec.md §4.A leaves to the caller.
type FolderTreeSnapshot struct {
	FolderSnapshot
	ChildTrees []FolderTreeSnapshot `json:"children"`
}

// ExtractFolderTree deep-extracts a folder and its descendants.
func ExtractFolderTree(record hostapi.FolderRecord) FolderTreeSnapshot {
	shallow := ExtractFolder(record)
	children := shallow.Children
	shallow.Children = nil

	tree := FolderTreeSnapshot{FolderSnapshot: shallow}
	for _, c := range children {
		tree.ChildTrees = append(tree.ChildTrees, ExtractFolderTree(c))
	}
	return tree
}

// ExtractLibraryState extracts {path, name} from the host, mapping any
// failure (missing or inaccessible host context) to the empty snapshot
// rather than propagating an error — per spec.md §4.A error semantics.
func ExtractLibraryState(host hostapi.Host) LibraryState {
	if host == nil {
		return LibraryState{}
	}
	identity, err := host.LibraryIdentity()
	if err != nil {
		return LibraryState{}
	}
	return LibraryState{Path: identity.Path, Name: identity.Name}
}
