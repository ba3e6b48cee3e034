package field

import (
	nt "grille/entity"
)

// RootName names the tree root; no declared field may use it.
const RootName = "_root_"

// Kind tags a node as a leaf column or a group of columns.
type Kind int

const (
	Leaf Kind = iota
	Group
)

func (k Kind) String() string {
	switch k {
	case Leaf:
		return "leaf"
	case Group:
		return "group"
	}
	return "unknown"
}

// Defaults apply to every declared leaf that leaves the flag unset.
type Defaults struct {
	Sortable   bool `yaml:"sortable"`
	Filterable bool `yaml:"filterable"`
}

// Def declares a column, or a group of columns when it has children or
// Group is set.
type Def struct {
	Name       string           `yaml:"name"`
	Header     string           `yaml:"header,omitempty"`
	Width      int              `yaml:"width,omitempty"`
	Sortable   *bool            `yaml:"sortable,omitempty"`
	Filterable *bool            `yaml:"filterable,omitempty"`
	Sort       nt.SortDirection `yaml:"sort,omitempty"`
	Hidden     bool             `yaml:"hidden,omitempty"`
	Format     string           `yaml:"format,omitempty"`
	Group      bool             `yaml:"group,omitempty"`
	Children   []Def            `yaml:"children,omitempty"`
}

// Kind returns the node kind the definition builds.
func (def Def) Kind() Kind {
	if def.Group || len(def.Children) > 0 {
		return Group
	}
	return Leaf
}

// Column declares a leaf.
func Column(name, header string) Def {
	return Def{Name: name, Header: header}
}

// Set declares a group.
func Set(name, header string, children ...Def) Def {
	return Def{Name: name, Header: header, Group: true, Children: children}
}

// Flag returns a pointer for the optional boolean settings of a Def.
func Flag(b bool) *bool {
	return &b
}
