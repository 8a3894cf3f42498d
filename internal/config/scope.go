package config

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/eaglecooler/core/internal/paths"
)

// Kind is the storage-type tag of a scope descriptor.
type Kind string

const (
	KindGlobal  Kind = "global"
	KindPlugin  Kind = "plugin"
	KindLibrary Kind = "library"
)

// Scope is the tuple of options determining which file and section key a
// configuration instance uses (spec.md §4.D).
type Scope struct {
	Kind Kind

	// ThisPluginOnly is meaningful for KindGlobal and KindLibrary; ignored
	// for KindPlugin (which is always per-plugin).
	ThisPluginOnly bool

	// UseLibraryName and UseLibraryUUID are meaningful only for
	// KindLibrary and are mutually exclusive in spec.md's table; if both
	// are set, UseLibraryUUID takes precedence.
	UseLibraryName bool
	UseLibraryUUID bool

	// LibraryRoot is the library's on-disk root; required for KindLibrary.
	// It doubles as the input to UseLibraryUUID (the UUID file lives at
	// {LibraryRoot}/cooler-uuid.json).
	LibraryRoot string

	// LibraryName is the host-reported library name; required for
	// KindLibrary when UseLibraryName is set.
	LibraryName string
}

// sectionKey is the first 16 lowercase hex characters of SHA-256 over s.
func sectionKey(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:16]
}

// resolve returns the config file kind and the section key ("" meaning
// "operate at the document root") for this scope, given the process-wide
// plugin id. It may perform I/O: UseLibraryUUID scopes read-or-create the
// library's UUID file.
func (s Scope) resolve(pluginID string) (fileKind string, key string, err error) {
	switch s.Kind {
	case KindGlobal:
		if s.ThisPluginOnly {
			return paths.ConfigKindGlobalPerPlugin, sectionKey(pluginID), nil
		}
		return paths.ConfigKindGlobal, "", nil

	case KindPlugin:
		return paths.ConfigKindPlugin, sectionKey(pluginID), nil

	case KindLibrary:
		var keySource string
		switch {
		case s.UseLibraryUUID:
			id, uuidErr := libraryUUID(s.LibraryRoot)
			if uuidErr != nil {
				return "", "", uuidErr
			}
			keySource = id
		case s.UseLibraryName:
			keySource = s.LibraryName
		default:
			keySource = s.LibraryRoot
		}
		if s.ThisPluginOnly {
			keySource += pluginID
		}
		return paths.ConfigKindLibrary, sectionKey(keySource), nil

	default:
		return paths.ConfigKindGlobal, "", nil
	}
}
