package toolconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadProfilesMissingFileReturnsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eaglecoolctl.yaml")

	profiles, err := LoadProfiles(path)
	if err != nil {
		t.Fatalf("LoadProfiles: %v", err)
	}
	if len(profiles) != 0 {
		t.Fatalf("expected no profiles, got %+v", profiles)
	}
}

func TestLoadProfilesParsesNamedEntries(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "eaglecoolctl.yaml")
	doc := `
profiles:
  work:
    library_path: /mnt/work.library
    host_url: http://localhost:41595
  home:
    library_path: /mnt/home.library
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write profiles: %v", err)
	}

	profiles, err := LoadProfiles(path)
	if err != nil {
		t.Fatalf("LoadProfiles: %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(profiles))
	}
	work, ok := profiles["work"]
	if !ok {
		t.Fatal("expected \"work\" profile")
	}
	if work.LibraryPath != "/mnt/work.library" || work.HostURL != "http://localhost:41595" {
		t.Errorf("unexpected work profile: %+v", work)
	}
	if profiles["home"].HostURL != "" {
		t.Errorf("expected home profile to have no host_url, got %q", profiles["home"].HostURL)
	}
}

func TestProfilesPathSiblingsConfigFile(t *testing.T) {
	got := ProfilesPath("/home/user/.config/eaglecoolctl/config.toml")
	want := "/home/user/.config/eaglecoolctl/eaglecoolctl.yaml"
	if got != want {
		t.Errorf("ProfilesPath = %q, want %q", got, want)
	}
}
