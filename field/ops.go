package field

import (
	"slices"

	nt "grille/entity"
)

// Move moves the named node to newIndex within the group that holds it.
// It never moves a node into another group. An index past either end is
// clamped to the first or last position. Move reports whether the node was
// found.
func (tree *Tree) Move(newIndex int, name string) bool {
	idx, ok := tree.byName[name]
	if !ok || tree.nodes[idx].parent < 0 {
		return false
	}

	parent := &tree.nodes[tree.nodes[idx].parent]
	oldIndex := slices.Index(parent.children, idx)
	if oldIndex < 0 {
		return false
	}

	newIndex = min(max(newIndex, 0), len(parent.children)-1)
	children := slices.Delete(parent.children, oldIndex, oldIndex+1)
	parent.children = slices.Insert(children, newIndex, idx)
	return true
}

// Resize sets the width of the named node. A group only records the width;
// its children keep theirs.
func (tree *Tree) Resize(name string, width int) bool {
	idx, ok := tree.byName[name]
	if !ok {
		return false
	}

	// Todo: distribute a group width over its visible children
	tree.nodes[idx].Width = width
	return true
}

// SetHidden shows or hides the named node.
func (tree *Tree) SetHidden(name string, hidden bool) bool {
	idx, ok := tree.byName[name]
	if !ok || idx == 0 {
		return false
	}

	tree.nodes[idx].Hidden = hidden
	return true
}

// Annotate marks each leaf with its current sort direction and filter.
// A leaf missing from sorts falls back to its declared direction.
func (tree *Tree) Annotate(sorts []nt.Sort, filters map[string]any) {

	for i := range tree.nodes {
		node := &tree.nodes[i]
		if node.Kind != Leaf {
			continue
		}

		node.SortDirection = node.declSort
		for _, srt := range sorts {
			if srt.Field == node.Name {
				node.SortDirection = srt.Direction
				break
			}
		}

		node.Filter = filters[node.Name]
	}
}
