// Package toolconfig holds the eaglecoolctl demo CLI's own preferences —
// default host URL, cached plugin id, output theme — stored in a TOML
// file under the OS config directory. This is deliberately distinct from
// the library's Scoped Config Store (internal/config, spec.md §4.D),
// which is mandated JSON and namespaced by scope descriptor; toolconfig
// is ordinary CLI-tool bookkeeping, grounded on the teacher's own
// internal/config.go (BurntSushi/toml, DefaultPath/LoadFrom/CreateDefault
// shape) verbatim in idiom.
package toolconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents eaglecoolctl's persisted preferences.
type Config struct {
	// DefaultHostURL is the host's localhost control-plane base URL used
	// when --host is not passed on the command line.
	DefaultHostURL string `toml:"default_host_url"`

	// DefaultLibraryPath is the library root used when --library is not
	// passed on the command line.
	DefaultLibraryPath string `toml:"default_library_path"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for CLI output.
	// Supported values are ANSI color codes ("0" to "255") or hex colors ("#RRGGBB").
	Accent string `toml:"accent"`

	// CodeTheme names a Glamour/Chroma theme. It is stored and reloaded with
	// the config; the CLI's markdown rendering (`item show`) does not read it.
	CodeTheme string `toml:"code_theme"`
}

// Load loads the configuration from the default location.
// Returns a default config if the file doesn't exist.
func Load() (*Config, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &Config{}, nil
	}

	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// DefaultPath returns the default config file path.
// Checks ~/.config/eaglecoolctl/config.toml first (XDG style), then falls
// back to the OS-specific user config location.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "eaglecoolctl", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "eaglecoolctl", "config.toml")
	}

	return filepath.Join(".", "config.toml")
}

// XDGPath returns the XDG-style config path (~/.config/eaglecoolctl/config.toml).
func XDGPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "eaglecoolctl", "config.toml"), nil
}

// CreateDefault creates a default config file if it doesn't exist.
func CreateDefault() (string, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); err == nil {
		return configPath, nil
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	defaultConfig := `# eaglecoolctl configuration
# See SPEC_FULL.md for the library this CLI exercises.

# Host control-plane base URL (defaults to http://localhost:41595 if unset).
# default_host_url = "http://localhost:41595"

# Library root used when --library is not passed.
# default_library_path = "/path/to/library.library"

# Optional UI accent color for headers/links in terminal output.
# Supports ANSI color codes (0-255) or hex (#RRGGBB).
# [ui]
# accent = "39"
# code_theme = "monokai"
`

	if err := os.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return configPath, nil
}
