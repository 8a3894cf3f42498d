package toolconfig

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/eaglecooler/core/internal/atomicfile"
)

// StateVersion is the current state file schema version.
const StateVersion = 1

// State represents mutable machine-local runtime state for eaglecoolctl:
// the last library root the CLI was pointed at and the plugin id resolved
// from the last-loaded manifest, mirroring the teacher's active-vault
// state file for a tool with a single addressed root instead of a named
// vault registry.
type State struct {
	Version        int    `toml:"version"`
	ActiveLibrary  string `toml:"active_library,omitempty"`
	CachedPluginID string `toml:"cached_plugin_id,omitempty"`
}

// ResolveStatePath resolves the state.toml path with precedence:
//  1. explicitStatePath flag
//  2. sibling state.toml next to config.toml
func ResolveStatePath(explicitStatePath, configPath string) string {
	if strings.TrimSpace(explicitStatePath) != "" {
		return explicitStatePath
	}

	resolvedConfigPath := configPath
	if strings.TrimSpace(resolvedConfigPath) == "" {
		resolvedConfigPath = DefaultPath()
	}
	return filepath.Join(filepath.Dir(resolvedConfigPath), "state.toml")
}

// LoadState loads state.toml from a specific path.
// Returns a default state when the file does not exist.
func LoadState(path string) (*State, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("state path is required")
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &State{Version: StateVersion}, nil
	}

	var state State
	if _, err := toml.DecodeFile(path, &state); err != nil {
		return nil, fmt.Errorf("failed to parse state %s: %w", path, err)
	}

	if state.Version == 0 {
		state.Version = StateVersion
	}
	state.ActiveLibrary = strings.TrimSpace(state.ActiveLibrary)
	state.CachedPluginID = strings.TrimSpace(state.CachedPluginID)

	return &state, nil
}

// SaveState writes state.toml atomically.
func SaveState(path string, state *State) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("state path is required")
	}
	if state == nil {
		state = &State{}
	}

	normalized := *state
	if normalized.Version == 0 {
		normalized.Version = StateVersion
	}
	normalized.ActiveLibrary = strings.TrimSpace(normalized.ActiveLibrary)
	normalized.CachedPluginID = strings.TrimSpace(normalized.CachedPluginID)

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(normalized); err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	if err := atomicfile.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write state %s: %w", path, err)
	}

	return nil
}
