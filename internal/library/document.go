// Package library implements Bare Library I/O (spec.md §4.C): a
// direct, file-backed view of the host's on-disk library, structured in
// three layers — a core layer (path derivation, JSON read/write), a
// per-entity layer (folders, smart folders, tag groups, quick access)
// operating on the library document, and an items layer operating on
// per-item metadata plus two derived indexes.
package library

import "encoding/json"

// Node is a forest node (folder or smart-folder). It is represented as a
// raw JSON object rather than a fixed struct because spec.md's mutation
// protocol is defined in terms of generic shallow merge ("update(id, patch)
// shallow-merges patch into the located node") and arbitrary sibling
// fields the host may carry must round-trip untouched.
type Node map[string]interface{}

const childrenKey = "children"

// ID returns the node's "id" field, if present and a string.
func (n Node) ID() (string, bool) {
	v, ok := n["id"]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Children returns the node's nested children, decoded from the "children"
// field. A node with no children field returns nil.
func (n Node) Children() []Node {
	raw, ok := n[childrenKey]
	if !ok {
		return nil
	}
	arr, ok := raw.([]interface{})
	if !ok {
		return nil
	}
	out := make([]Node, 0, len(arr))
	for _, e := range arr {
		if m, ok := e.(map[string]interface{}); ok {
			out = append(out, Node(m))
		}
	}
	return out
}

// setChildren stores children back onto the node in place.
func (n Node) setChildren(children []Node) {
	arr := make([]interface{}, len(children))
	for i, c := range children {
		arr[i] = map[string]interface{}(c)
	}
	n[childrenKey] = arr
}

// QuickAccessEntry is a flat quick-access list entry, keyed by (type, id).
type QuickAccessEntry struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// TagGroup is a flat tag-group list entry.
type TagGroup struct {
	ID    string   `json:"id,omitempty"`
	Name  string   `json:"name"`
	Color string   `json:"color,omitempty"`
	Tags  []string `json:"tags,omitempty"`
}

// Document is the library document: a single JSON object describing the
// folder forest, smart-folder forest, quick-access list, tag-group list, a
// modification timestamp, and an application version (spec.md §3).
type Document struct {
	Folders            []Node             `json:"folders"`
	SmartFolders       []Node             `json:"smartFolders"`
	QuickAccess        []QuickAccessEntry `json:"quickAccess"`
	TagGroups          []TagGroup         `json:"tagGroups"`
	ModificationTime   int64              `json:"modificationTime"`
	ApplicationVersion string             `json:"applicationVersion"`
}

// deepClone round-trips through JSON to guarantee no structural sharing
// with the original — this is the "clone" half of clone-mutate-replace
// (spec.md §4.C) and the invariant spec.md §8 tests for directly.
func deepClone(doc *Document) (*Document, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var clone Document
	if err := json.Unmarshal(data, &clone); err != nil {
		return nil, err
	}
	return &clone, nil
}
