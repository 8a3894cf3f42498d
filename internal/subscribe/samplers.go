package subscribe

import (
	"os"

	"github.com/eaglecooler/core/internal/paths"
	"github.com/eaglecooler/core/internal/snapshot"
)

func (m *Manager) sampleIdentity() (interface{}, interface{}, error) {
	id, err := m.host.LibraryIdentity()
	if err != nil {
		return nil, nil, err
	}
	return id.Path, LibraryIdentitySnapshot{Path: id.Path, Name: id.Name}, nil
}

func (m *Manager) sampleItemSelection() (interface{}, interface{}, error) {
	items, err := m.host.SelectedItems()
	if err != nil {
		return nil, nil, err
	}
	snaps := snapshot.ExtractItems(items)
	ids := make([]string, len(snaps))
	for i, s := range snaps {
		ids[i] = s.ID
	}
	return ids, snaps, nil
}

func (m *Manager) sampleFolderSelection() (interface{}, interface{}, error) {
	folders, err := m.host.SelectedFolders()
	if err != nil {
		return nil, nil, err
	}
	snaps := snapshot.ExtractFolders(folders)
	ids := make([]string, len(snaps))
	for i, s := range snaps {
		ids[i] = s.ID
	}
	return ids, snaps, nil
}

func (m *Manager) sampleLibraryConfigMtime() (interface{}, interface{}, error) {
	id, err := m.host.LibraryIdentity()
	if err != nil {
		return nil, nil, err
	}
	info, err := os.Stat(paths.LibraryMetadataPath(id.Path))
	if err != nil {
		return nil, nil, err
	}
	ms := info.ModTime().UnixMilli()
	return ms, MtimeSnapshot{Mtime: ms}, nil
}

func (m *Manager) sampleLibraryFolderStructureMtime() (interface{}, interface{}, error) {
	id, err := m.host.LibraryIdentity()
	if err != nil {
		return nil, nil, err
	}
	info, err := os.Stat(id.Path)
	if err != nil {
		return nil, nil, err
	}
	ms := info.ModTime().UnixMilli()
	return ms, MtimeSnapshot{Mtime: ms}, nil
}
