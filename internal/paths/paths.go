// Package paths provides canonical helpers for deriving the on-disk layout
// of a library root and the user-home config directory.
//
// It centralizes path derivation so that the Bare Library I/O layer, the
// Scoped Config Store, and the CLI all agree on where files live without
// duplicating join logic.
package paths

import "path/filepath"

// Library-root-relative file and directory names.
const (
	LibraryMetadataFile = "metadata.json"
	TagsFile            = "tags.json"
	MtimeFile           = "mtime.json"
	ImagesDir           = "images"
	LibraryUUIDFile     = "cooler-uuid.json"
	itemInfoSuffix      = ".info"
)

// LibraryMetadataPath returns the path to the library document.
func LibraryMetadataPath(libraryRoot string) string {
	return filepath.Join(libraryRoot, LibraryMetadataFile)
}

// TagsPath returns the path to the tags index file.
func TagsPath(libraryRoot string) string {
	return filepath.Join(libraryRoot, TagsFile)
}

// MtimePath returns the path to the mtime index file.
func MtimePath(libraryRoot string) string {
	return filepath.Join(libraryRoot, MtimeFile)
}

// ImagesPath returns the path to the images directory.
func ImagesPath(libraryRoot string) string {
	return filepath.Join(libraryRoot, ImagesDir)
}

// ItemDir returns the per-item directory ("images/{id}.info").
func ItemDir(libraryRoot, id string) string {
	return filepath.Join(ImagesPath(libraryRoot), id+itemInfoSuffix)
}

// ItemMetadataPath returns the per-item metadata.json path.
func ItemMetadataPath(libraryRoot, id string) string {
	return filepath.Join(ItemDir(libraryRoot, id), LibraryMetadataFile)
}

// ItemURLFilePath returns the default ".url" companion path for an item.
// Callers that already know an existing companion filename (which may not
// match "{id}.url") should use that name instead; this is only the default
// used when creating a new companion file.
func ItemURLFilePath(libraryRoot, id string) string {
	return filepath.Join(ItemDir(libraryRoot, id), id+".url")
}

// LibraryUUIDPath returns the path to the library's persisted UUID file.
func LibraryUUIDPath(libraryRoot string) string {
	return filepath.Join(libraryRoot, LibraryUUIDFile)
}

// ItemIDFromInfoDirName strips the ".info" suffix from a directory name
// under images/, returning ("", false) if the name doesn't carry it.
func ItemIDFromInfoDirName(name string) (string, bool) {
	if len(name) <= len(itemInfoSuffix) {
		return "", false
	}
	suffixStart := len(name) - len(itemInfoSuffix)
	if name[suffixStart:] != itemInfoSuffix {
		return "", false
	}
	return name[:suffixStart], true
}

// Config file kinds understood by the Scoped Config Store (§4.D).
const (
	ConfigKindGlobal          = "global"
	ConfigKindGlobalPerPlugin = "globalPerPlugin"
	ConfigKindPlugin          = "plugin"
	ConfigKindLibrary         = "library"
)

// configDirName is the fixed subdirectory under the home directory holding
// every well-known config JSON file.
const configDirName = ".eaglecooler/config"

// ConfigDir returns "{home}/.eaglecooler/config".
func ConfigDir(home string) string {
	return filepath.Join(home, filepath.FromSlash(configDirName))
}

// ConfigFilePath returns the path to one of the four well-known config
// files, given its kind (one of the ConfigKind* constants).
func ConfigFilePath(home, kind string) string {
	return filepath.Join(ConfigDir(home), kind+".json")
}
