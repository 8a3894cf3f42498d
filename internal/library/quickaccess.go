package library

// ListQuickAccess returns the current flat quick-access list.
func (l *Library) ListQuickAccess() ([]QuickAccessEntry, error) {
	doc, err := l.ReadMetadata()
	if err != nil {
		return nil, err
	}
	return doc.QuickAccess, nil
}

// AddQuickAccess appends an entry, skipping if an identical (type, id)
// entry is already present.
func (l *Library) AddQuickAccess(entry QuickAccessEntry) (*Document, error) {
	return l.UpdateMetadata(func(d *Document) error {
		for _, e := range d.QuickAccess {
			if e.Type == entry.Type && e.ID == entry.ID {
				return nil
			}
		}
		d.QuickAccess = append(d.QuickAccess, entry)
		return nil
	})
}

// RemoveQuickAccess deletes the entry matching (entryType, id).
func (l *Library) RemoveQuickAccess(entryType, id string) (*Document, error) {
	return l.UpdateMetadata(func(d *Document) error {
		out := make([]QuickAccessEntry, 0, len(d.QuickAccess))
		for _, e := range d.QuickAccess {
			if e.Type == entryType && e.ID == id {
				continue
			}
			out = append(out, e)
		}
		d.QuickAccess = out
		return nil
	})
}
