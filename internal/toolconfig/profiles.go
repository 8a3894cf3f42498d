package toolconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Profile is one named library/host pairing from eaglecoolctl.yaml — a
// convenience for operators who juggle several libraries and don't want to
// repeat --library/--host on every invocation.
type Profile struct {
	LibraryPath string `yaml:"library_path"`
	HostURL     string `yaml:"host_url"`
}

// profilesDocument is eaglecoolctl.yaml's top-level shape.
type profilesDocument struct {
	Profiles map[string]Profile `yaml:"profiles"`
}

// ProfilesPath returns eaglecoolctl.yaml's path, sibling to configPath.
func ProfilesPath(configPath string) string {
	return filepath.Join(filepath.Dir(configPath), "eaglecoolctl.yaml")
}

// LoadProfiles reads the named profiles from path. A missing file yields an
// empty map, not an error — profiles are opt-in.
func LoadProfiles(path string) (map[string]Profile, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return map[string]Profile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read profiles %s: %w", path, err)
	}

	var doc profilesDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse profiles %s: %w", path, err)
	}
	if doc.Profiles == nil {
		doc.Profiles = map[string]Profile{}
	}
	return doc.Profiles, nil
}
