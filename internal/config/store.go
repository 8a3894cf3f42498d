package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/eaglecooler/core/internal/atomicfile"
	"github.com/eaglecooler/core/internal/paths"
)

// Store is a key/value interface over one scope of one well-known config
// file. It carries no in-memory cache: every operation re-reads the whole
// file from disk and, for mutations, writes the whole file back — per
// spec.md §4.D, writers must not preserve unknown sibling sections "by
// accident only," they must explicitly re-read before each update.
type Store struct {
	homeDir string
	scope   Scope
}

// New returns a Store rooted at homeDir for the given scope.
func New(homeDir string, scope Scope) *Store {
	return &Store{homeDir: homeDir, scope: scope}
}

func (s *Store) filePath() (string, string, error) {
	kind, key, err := s.scope.resolve(PluginID())
	if err != nil {
		return "", "", err
	}
	return paths.ConfigFilePath(s.homeDir, kind), key, nil
}

// loadDocument never errors: a missing or unparsable file is treated as an
// empty document (spec.md §7).
func loadDocument(path string) map[string]interface{} {
	data, err := os.ReadFile(path)
	if err != nil {
		return map[string]interface{}{}
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil || doc == nil {
		return map[string]interface{}{}
	}
	return doc
}

func writeDocument(path string, doc map[string]interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return atomicfile.WriteFile(path, data, 0o644)
}

// sectionOf returns the section map. For a root-scoped store (key == "")
// this is the document itself, so mutating it in place mutates the
// document; for a keyed scope it's a (possibly fresh) sub-object that the
// caller must write back into doc[key] after mutating.
func sectionOf(doc map[string]interface{}, key string) map[string]interface{} {
	if key == "" {
		return doc
	}
	raw, ok := doc[key]
	if !ok {
		return map[string]interface{}{}
	}
	section, ok := raw.(map[string]interface{})
	if !ok {
		return map[string]interface{}{}
	}
	return section
}

// Get reads a single key from this scope's section.
func (s *Store) Get(key string) (interface{}, bool, error) {
	path, sectKey, err := s.filePath()
	if err != nil {
		return nil, false, err
	}
	section := sectionOf(loadDocument(path), sectKey)
	v, ok := section[key]
	return v, ok, nil
}

// GetOrDefault reads key, returning def if absent.
func (s *Store) GetOrDefault(key string, def interface{}) (interface{}, error) {
	v, ok, err := s.Get(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return def, nil
	}
	return v, nil
}

// Has reports whether key is present in this scope's section.
func (s *Store) Has(key string) (bool, error) {
	_, ok, err := s.Get(key)
	return ok, err
}

// Set writes a single key into this scope's section.
func (s *Store) Set(key string, value interface{}) error {
	return s.SetMany(map[string]interface{}{key: value})
}

// SetMany writes multiple keys into this scope's section in a single
// read-modify-write cycle.
func (s *Store) SetMany(patch map[string]interface{}) error {
	path, sectKey, err := s.filePath()
	if err != nil {
		return err
	}
	doc := loadDocument(path)
	section := sectionOf(doc, sectKey)
	for k, v := range patch {
		section[k] = v
	}
	if sectKey != "" {
		doc[sectKey] = section
	}
	return writeDocument(path, doc)
}

// Remove deletes key from this scope's section, reporting whether it
// existed beforehand.
func (s *Store) Remove(key string) (bool, error) {
	path, sectKey, err := s.filePath()
	if err != nil {
		return false, err
	}
	doc := loadDocument(path)
	section := sectionOf(doc, sectKey)
	_, existed := section[key]
	if existed {
		delete(section, key)
	}
	if sectKey != "" {
		doc[sectKey] = section
	}
	if err := writeDocument(path, doc); err != nil {
		return false, err
	}
	return existed, nil
}

// Clear empties this scope's section only, leaving sibling sections (and,
// for a keyed scope, the rest of the document) untouched.
func (s *Store) Clear() error {
	path, sectKey, err := s.filePath()
	if err != nil {
		return err
	}
	doc := loadDocument(path)
	if sectKey == "" {
		doc = map[string]interface{}{}
	} else {
		delete(doc, sectKey)
	}
	return writeDocument(path, doc)
}

// Keys returns every key currently set in this scope's section.
func (s *Store) Keys() ([]string, error) {
	path, sectKey, err := s.filePath()
	if err != nil {
		return nil, err
	}
	section := sectionOf(loadDocument(path), sectKey)
	keys := make([]string, 0, len(section))
	for k := range section {
		keys = append(keys, k)
	}
	return keys, nil
}

// GetAll returns a copy of this scope's entire section.
func (s *Store) GetAll() (map[string]interface{}, error) {
	path, sectKey, err := s.filePath()
	if err != nil {
		return nil, err
	}
	section := sectionOf(loadDocument(path), sectKey)
	out := make(map[string]interface{}, len(section))
	for k, v := range section {
		out[k] = v
	}
	return out, nil
}
