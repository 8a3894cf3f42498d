package paths

import (
	"path/filepath"
	"testing"
)

func TestLibraryPaths(t *testing.T) {
	root := filepath.FromSlash("/libs/Demo.library")

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"metadata", LibraryMetadataPath(root), filepath.Join(root, "metadata.json")},
		{"tags", TagsPath(root), filepath.Join(root, "tags.json")},
		{"mtime", MtimePath(root), filepath.Join(root, "mtime.json")},
		{"images", ImagesPath(root), filepath.Join(root, "images")},
		{"itemDir", ItemDir(root, "abc"), filepath.Join(root, "images", "abc.info")},
		{"itemMetadata", ItemMetadataPath(root, "abc"), filepath.Join(root, "images", "abc.info", "metadata.json")},
		{"itemURL", ItemURLFilePath(root, "abc"), filepath.Join(root, "images", "abc.info", "abc.url")},
		{"uuid", LibraryUUIDPath(root), filepath.Join(root, "cooler-uuid.json")},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.want {
				t.Fatalf("got %q, want %q", tc.got, tc.want)
			}
		})
	}
}

func TestItemIDFromInfoDirName(t *testing.T) {
	tests := []struct {
		in     string
		wantID string
		wantOK bool
	}{
		{"abc123.info", "abc123", true},
		{".info", "", false},
		{"abc123", "", false},
		{"abc123.infox", "", false},
	}
	for _, tc := range tests {
		id, ok := ItemIDFromInfoDirName(tc.in)
		if ok != tc.wantOK || id != tc.wantID {
			t.Fatalf("ItemIDFromInfoDirName(%q) = (%q, %v), want (%q, %v)", tc.in, id, ok, tc.wantID, tc.wantOK)
		}
	}
}

func TestConfigPaths(t *testing.T) {
	home := filepath.FromSlash("/home/user")
	dir := ConfigDir(home)
	if dir != filepath.Join(home, ".eaglecooler", "config") {
		t.Fatalf("unexpected config dir: %q", dir)
	}
	for _, kind := range []string{ConfigKindGlobal, ConfigKindGlobalPerPlugin, ConfigKindPlugin, ConfigKindLibrary} {
		got := ConfigFilePath(home, kind)
		want := filepath.Join(dir, kind+".json")
		if got != want {
			t.Fatalf("ConfigFilePath(%q) = %q, want %q", kind, got, want)
		}
	}
}
