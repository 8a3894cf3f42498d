package toolconfig

import (
	"path/filepath"
	"testing"
)

func TestResolveStatePath(t *testing.T) {
	configPath := "/tmp/eaglecoolctl/config.toml"

	t.Run("explicit state path wins", func(t *testing.T) {
		got := ResolveStatePath("/tmp/custom/state.toml", configPath)
		if got != "/tmp/custom/state.toml" {
			t.Fatalf("expected explicit state path, got %q", got)
		}
	})

	t.Run("fallback sibling state.toml", func(t *testing.T) {
		got := ResolveStatePath("", "/Users/me/.config/eaglecoolctl/config.toml")
		want := "/Users/me/.config/eaglecoolctl/state.toml"
		if got != want {
			t.Fatalf("expected %q, got %q", want, got)
		}
	})
}

func TestLoadStateMissingReturnsDefault(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "state.toml")

	state, err := LoadState(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.Version != StateVersion {
		t.Fatalf("expected version %d, got %d", StateVersion, state.Version)
	}
	if state.ActiveLibrary != "" {
		t.Fatalf("expected empty active library, got %q", state.ActiveLibrary)
	}
}

func TestSaveStateRoundTrip(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "state.toml")

	err := SaveState(path, &State{
		ActiveLibrary:  "/tmp/my.library",
		CachedPluginID: "com.example.plugin",
	})
	if err != nil {
		t.Fatalf("save state: %v", err)
	}

	loaded, err := LoadState(path)
	if err != nil {
		t.Fatalf("load state: %v", err)
	}
	if loaded.Version != StateVersion {
		t.Fatalf("expected version %d, got %d", StateVersion, loaded.Version)
	}
	if loaded.ActiveLibrary != "/tmp/my.library" {
		t.Fatalf("expected active_library round-trip, got %q", loaded.ActiveLibrary)
	}
	if loaded.CachedPluginID != "com.example.plugin" {
		t.Fatalf("expected cached_plugin_id round-trip, got %q", loaded.CachedPluginID)
	}
}
