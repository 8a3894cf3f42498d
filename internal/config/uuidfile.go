package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/eaglecooler/core/internal/atomicfile"
	"github.com/eaglecooler/core/internal/paths"
)

type uuidDocument struct {
	UUID string `json:"uuid"`
}

// libraryUUID reads {libraryRoot}/cooler-uuid.json, generating and
// persisting a version-4 UUID on first access. It is never deleted by the
// core; renaming the library folder preserves the same identity as long as
// the file travels with it (spec.md §8 scenario 5).
func libraryUUID(libraryRoot string) (string, error) {
	path := paths.LibraryUUIDPath(libraryRoot)

	if data, err := os.ReadFile(path); err == nil {
		var doc uuidDocument
		if json.Unmarshal(data, &doc) == nil && doc.UUID != "" {
			return doc.UUID, nil
		}
	}

	id := uuid.New().String()
	payload, err := json.MarshalIndent(uuidDocument{UUID: id}, "", "  ")
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := atomicfile.WriteFile(path, payload, 0o644); err != nil {
		return "", err
	}
	return id, nil
}
