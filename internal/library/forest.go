package library

import "fmt"

// ListTree returns the forest as stored — folders and smart folders expose
// it identically (spec.md §4.C: "the same forest-mutation protocol applies
// to both, identically").
func ListTree(forest []Node) []Node {
	return forest
}

// GetByID depth-first searches the forest for a node with the given id.
func GetByID(forest []Node, id string) (Node, bool) {
	for _, n := range forest {
		if nid, ok := n.ID(); ok && nid == id {
			return n, true
		}
		if found, ok := GetByID(n.Children(), id); ok {
			return found, true
		}
	}
	return nil, false
}

// Add appends node to the forest. An empty parentID appends at the root;
// otherwise node is appended to the children of the node identified by
// parentID, which must already exist in the forest.
func Add(forest []Node, node Node, parentID string) ([]Node, error) {
	if parentID == "" {
		return append(forest, node), nil
	}
	parent, ok := GetByID(forest, parentID)
	if !ok {
		return forest, fmt.Errorf("library: parent folder not found: %s", parentID)
	}
	parent.setChildren(append(parent.Children(), node))
	return forest, nil
}

// Update shallow-merges patch into the node identified by id, wherever it
// sits in the forest.
func Update(forest []Node, id string, patch map[string]interface{}) error {
	node, ok := GetByID(forest, id)
	if !ok {
		return fmt.Errorf("library: folder not found: %s", id)
	}
	for k, v := range patch {
		node[k] = v
	}
	return nil
}

// Remove rebuilds the forest with the node identified by id filtered out at
// every level, recursing into children of nodes that survive.
func Remove(forest []Node, id string) []Node {
	out := make([]Node, 0, len(forest))
	for _, n := range forest {
		if nid, ok := n.ID(); ok && nid == id {
			continue
		}
		if children := n.Children(); children != nil {
			n.setChildren(Remove(children, id))
		}
		out = append(out, n)
	}
	return out
}
