package library

import "fmt"

// ListTagGroups returns the current flat tag-group list.
func (l *Library) ListTagGroups() ([]TagGroup, error) {
	doc, err := l.ReadMetadata()
	if err != nil {
		return nil, err
	}
	return doc.TagGroups, nil
}

// AddTagGroup appends a tag group to the list.
func (l *Library) AddTagGroup(group TagGroup) (*Document, error) {
	return l.UpdateMetadata(func(d *Document) error {
		d.TagGroups = append(d.TagGroups, group)
		return nil
	})
}

// UpdateTagGroup replaces the tag group with the given id.
func (l *Library) UpdateTagGroup(id string, group TagGroup) (*Document, error) {
	return l.UpdateMetadata(func(d *Document) error {
		for i := range d.TagGroups {
			if d.TagGroups[i].ID == id {
				group.ID = id
				d.TagGroups[i] = group
				return nil
			}
		}
		return fmt.Errorf("library: tag group not found: %s", id)
	})
}

// RemoveTagGroup deletes the tag group with the given id.
func (l *Library) RemoveTagGroup(id string) (*Document, error) {
	return l.UpdateMetadata(func(d *Document) error {
		out := make([]TagGroup, 0, len(d.TagGroups))
		for _, g := range d.TagGroups {
			if g.ID != id {
				out = append(out, g)
			}
		}
		d.TagGroups = out
		return nil
	})
}
