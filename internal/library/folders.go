package library

// ListFolders returns the current folder forest.
func (l *Library) ListFolders() ([]Node, error) {
	doc, err := l.ReadMetadata()
	if err != nil {
		return nil, err
	}
	return ListTree(doc.Folders), nil
}

// GetFolder returns the folder node with the given id, if any.
func (l *Library) GetFolder(id string) (Node, bool, error) {
	doc, err := l.ReadMetadata()
	if err != nil {
		return nil, false, err
	}
	node, ok := GetByID(doc.Folders, id)
	return node, ok, nil
}

// AddFolder appends node to the root, or to the children of parentID.
func (l *Library) AddFolder(node Node, parentID string) (*Document, error) {
	return l.addToForest(func(d *Document) *[]Node { return &d.Folders }, node, parentID)
}

// UpdateFolder shallow-merges patch into the folder identified by id.
func (l *Library) UpdateFolder(id string, patch map[string]interface{}) (*Document, error) {
	return l.updateInForest(func(d *Document) *[]Node { return &d.Folders }, id, patch)
}

// RemoveFolder removes the folder identified by id, wherever it sits in
// the forest.
func (l *Library) RemoveFolder(id string) (*Document, error) {
	return l.removeFromForest(func(d *Document) *[]Node { return &d.Folders }, id)
}

// ListSmartFolders returns the current smart-folder forest.
func (l *Library) ListSmartFolders() ([]Node, error) {
	doc, err := l.ReadMetadata()
	if err != nil {
		return nil, err
	}
	return ListTree(doc.SmartFolders), nil
}

// GetSmartFolder returns the smart-folder node with the given id, if any.
func (l *Library) GetSmartFolder(id string) (Node, bool, error) {
	doc, err := l.ReadMetadata()
	if err != nil {
		return nil, false, err
	}
	node, ok := GetByID(doc.SmartFolders, id)
	return node, ok, nil
}

// AddSmartFolder appends node to the root, or to the children of parentID.
func (l *Library) AddSmartFolder(node Node, parentID string) (*Document, error) {
	return l.addToForest(func(d *Document) *[]Node { return &d.SmartFolders }, node, parentID)
}

// UpdateSmartFolder shallow-merges patch into the smart folder identified
// by id.
func (l *Library) UpdateSmartFolder(id string, patch map[string]interface{}) (*Document, error) {
	return l.updateInForest(func(d *Document) *[]Node { return &d.SmartFolders }, id, patch)
}

// RemoveSmartFolder removes the smart folder identified by id.
func (l *Library) RemoveSmartFolder(id string) (*Document, error) {
	return l.removeFromForest(func(d *Document) *[]Node { return &d.SmartFolders }, id)
}
