// Package field models the column tree: leaf columns nested into named groups.
//
// Nodes live in an arena addressed by index and are looked up by name, which
// is unique across the whole tree. Mutation is limited to Move, Resize,
// SetHidden and Annotate; everything else reads.
package field

import (
	"slices"

	"github.com/pkg/errors"

	nt "grille/entity"
)

// Node is one column (Leaf) or column group (Group).
// Nodes handed out by a Tree are copies; changing them does not change the tree.
type Node struct {
	Kind          Kind
	Name          string
	Header        string
	Width         int // zero means auto
	Hidden        bool
	Sortable      bool
	Filterable    bool
	SortDirection nt.SortDirection
	Filter        any
	Format        string

	declSort nt.SortDirection
	parent   int
	children []int
}

// Label returns the header text, falling back to the name.
func (node Node) Label() string {
	if node.Header != "" {
		return node.Header
	}
	return node.Name
}

// IsLeaf reports whether the node is a leaf column.
func (node Node) IsLeaf() bool {
	return node.Kind == Leaf
}

// View is read access to a tree, for components that render or hit-test the
// columns but must leave mutation to the owner.
type View interface {
	Root() Node
	Find(name string) (Node, bool)
	Parent(name string) (Node, bool)
	Index(parent, name string) int
	Children(name string) []Node
	Visible(name string) bool
	Fields() []Node
	FieldCount(name string) int
	LevelCount(name string) int
}

var _ View = (*Tree)(nil)

// Tree is the column tree.
type Tree struct {
	nodes  []Node
	byName map[string]int
}

// Build creates a tree from declared columns, applying defaults to leaves and
// order, width and visibility from a previously captured display, if any.
//
// Display entries that match no declared column are ignored and declared
// columns missing from the display follow in declaration order.
// Empty, reserved or duplicate names are an error.
func Build(defs []Def, defaults Defaults, display *nt.FieldDisplay) (tree *Tree, err error) {

	tree = &Tree{
		nodes: []Node{{
			Kind:   Group,
			Name:   RootName,
			parent: -1,
		}},
		byName: map[string]int{RootName: 0},
	}
	if display != nil {
		tree.nodes[0].Width = display.Width
	}

	err = tree.add(0, defs, defaults, display)
	if err != nil {
		tree = nil
	}
	return
}

// Root returns the root group.
func (tree *Tree) Root() Node {
	return tree.nodes[0]
}

// Find returns the node with the given name; RootName finds the root.
func (tree *Tree) Find(name string) (node Node, ok bool) {
	idx, ok := tree.byName[name]
	if !ok {
		return
	}
	return tree.nodes[idx], true
}

// Parent returns the group directly containing the named node.
func (tree *Tree) Parent(name string) (parent Node, ok bool) {
	idx, ok := tree.byName[name]
	if !ok || tree.nodes[idx].parent < 0 {
		return Node{}, false
	}
	return tree.nodes[tree.nodes[idx].parent], true
}

// Index returns the position of name among the direct children of parent,
// or -1 when it is not a direct child.
func (tree *Tree) Index(parent, name string) int {
	pIdx, ok := tree.byName[parent]
	if !ok {
		return -1
	}
	idx, ok := tree.byName[name]
	if !ok {
		return -1
	}
	return slices.Index(tree.nodes[pIdx].children, idx)
}

// Children returns the direct children of the named node in order, hidden
// ones included.
func (tree *Tree) Children(name string) (children []Node) {
	idx, ok := tree.byName[name]
	if !ok {
		return
	}
	for _, child := range tree.nodes[idx].children {
		children = append(children, tree.nodes[child])
	}
	return
}

// Visible reports whether the named node shows: it is not hidden and, for a
// group, at least one child shows.
func (tree *Tree) Visible(name string) bool {
	idx, ok := tree.byName[name]
	if !ok {
		return false
	}
	return tree.visible(idx)
}

// Fields returns the visible leaves in pre-order.
func (tree *Tree) Fields() (fields []Node) {
	return tree.fields(0, []Node{})
}

// FieldCount returns the number of columns the named node spans: 1 for a
// leaf, the sum over visible children for a group, and never less than 1.
func (tree *Tree) FieldCount(name string) int {
	idx, ok := tree.byName[name]
	if !ok {
		return 0
	}
	return tree.fieldCount(idx)
}

// LevelCount returns the number of header rows the named node needs:
// 0 for a leaf, 1 plus the deepest visible child group for a group.
func (tree *Tree) LevelCount(name string) int {
	idx, ok := tree.byName[name]
	if !ok {
		return 0
	}
	return tree.levelCount(idx)
}

// Display captures the tree shape for persistence. Sort and filter
// annotations are not part of it.
func (tree *Tree) Display() nt.FieldDisplay {
	return tree.display(0)
}

// unexported

func (tree *Tree) add(parent int, defs []Def, defaults Defaults, display *nt.FieldDisplay) (err error) {

	built := make([]int, 0, len(defs))
	for _, def := range defs {
		switch {
		case def.Name == "":
			return errors.Errorf("field with header %q has no name", def.Header)
		case def.Name == RootName:
			return errors.Errorf("field name %q is reserved", RootName)
		}
		if _, dup := tree.byName[def.Name]; dup {
			return errors.Errorf("duplicate field name %q", def.Name)
		}

		saved, _ := display.Child(def.Name)
		idx := tree.push(parent, def, defaults, saved)
		built = append(built, idx)

		if def.Kind() == Group {
			err = tree.add(idx, def.Children, defaults, saved)
			if err != nil {
				return
			}
		}
	}

	tree.nodes[parent].children = tree.order(built, display)
	return
}

func (tree *Tree) push(parent int, def Def, defaults Defaults, saved *nt.FieldDisplay) int {

	node := Node{
		Kind:          def.Kind(),
		Name:          def.Name,
		Header:        def.Header,
		Width:         def.Width,
		Hidden:        def.Hidden,
		Sortable:      defaults.Sortable,
		Filterable:    defaults.Filterable,
		SortDirection: def.Sort,
		Format:        def.Format,
		declSort:      def.Sort,
		parent:        parent,
	}
	if def.Sortable != nil {
		node.Sortable = *def.Sortable
	}
	if def.Filterable != nil {
		node.Filterable = *def.Filterable
	}
	if saved != nil {
		node.Hidden = saved.Hidden
		if saved.Width != 0 {
			node.Width = saved.Width
		}
	}

	tree.nodes = append(tree.nodes, node)
	idx := len(tree.nodes) - 1
	tree.byName[def.Name] = idx
	return idx
}

// order arranges built children as the display lists them, then any the
// display does not mention in declaration order.
func (tree *Tree) order(built []int, display *nt.FieldDisplay) []int {

	if display == nil || len(display.Children) == 0 {
		return built
	}

	ordered := make([]int, 0, len(built))
	placed := map[int]bool{}
	for _, saved := range display.Children {
		idx, ok := tree.byName[saved.Name]
		if !ok || placed[idx] || !slices.Contains(built, idx) {
			continue
		}
		ordered = append(ordered, idx)
		placed[idx] = true
	}
	for _, idx := range built {
		if !placed[idx] {
			ordered = append(ordered, idx)
		}
	}
	return ordered
}

func (tree *Tree) visible(idx int) bool {
	node := tree.nodes[idx]
	if node.Hidden {
		return false
	}

	switch node.Kind {
	case Leaf:
		return true
	case Group:
		return slices.ContainsFunc(node.children, tree.visible)
	}
	return false
}

func (tree *Tree) fields(idx int, fields []Node) []Node {
	node := tree.nodes[idx]
	if node.Hidden {
		return fields
	}

	switch node.Kind {
	case Leaf:
		fields = append(fields, node)
	case Group:
		for _, child := range node.children {
			fields = tree.fields(child, fields)
		}
	}
	return fields
}

func (tree *Tree) fieldCount(idx int) int {
	node := tree.nodes[idx]

	switch node.Kind {
	case Leaf:
		return 1
	case Group:
		count := 0
		for _, child := range node.children {
			if tree.visible(child) {
				count += tree.fieldCount(child)
			}
		}
		return max(count, 1)
	}
	return 0
}

func (tree *Tree) levelCount(idx int) int {
	node := tree.nodes[idx]

	switch node.Kind {
	case Leaf:
		return 0
	case Group:
		levels := 0
		for _, child := range node.children {
			if tree.visible(child) && tree.nodes[child].Kind == Group {
				levels = max(levels, tree.levelCount(child))
			}
		}
		return levels + 1
	}
	return 0
}

func (tree *Tree) display(idx int) nt.FieldDisplay {
	node := tree.nodes[idx]

	display := nt.FieldDisplay{
		Name:   node.Name,
		Width:  node.Width,
		Hidden: node.Hidden,
	}
	if node.Kind == Group {
		display.Children = make([]nt.FieldDisplay, 0, len(node.children))
		for _, child := range node.children {
			display.Children = append(display.Children, tree.display(child))
		}
	}
	return display
}
