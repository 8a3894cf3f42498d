// Package config implements the Scoped Config Store (spec.md §4.D): a
// key/value interface over one of four well-known JSON files under the
// user's home directory, logically partitioned by a 16-hex-char SHA-256
// section key derived from a scope descriptor.
package config

import (
	"sync"

	"github.com/eaglecooler/core/internal/hostapi"
)

// unknownPluginID is the literal fallback per spec.md §4.D when a plugin
// manifest carries neither an id nor a name.
const unknownPluginID = "unknown-plugin"

var (
	pluginMu   sync.RWMutex
	pluginID   string
	pluginSeen bool
)

// InitPlugin establishes the process-wide plugin identity once, per
// spec.md §9 "Process-wide state": exactly one call per process, before
// any config or HTTP operation; thereafter the identity is read, never
// written. Calling it again overwrites the cached value — callers are
// responsible for the "exactly once" discipline; this function does not
// enforce it, matching the teacher's config loaders which don't guard
// against repeated Load calls either.
func InitPlugin(manifest hostapi.Manifest) string {
	id := manifest.ID
	if id == "" {
		id = manifest.Name
	}
	if id == "" {
		id = unknownPluginID
	}

	pluginMu.Lock()
	pluginID = id
	pluginSeen = true
	pluginMu.Unlock()

	return id
}

// PluginID returns the process-wide plugin identity, or the literal
// "unknown-plugin" fallback if InitPlugin has not yet run.
func PluginID() string {
	pluginMu.RLock()
	defer pluginMu.RUnlock()
	if !pluginSeen {
		return unknownPluginID
	}
	return pluginID
}
