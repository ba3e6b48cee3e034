package entity

// FieldDisplay is the persisted shape of one node of the column tree.
// A group carries its children in display order; a leaf has none.
type FieldDisplay struct {
	Name     string         `yaml:"name" json:"name"`
	Width    int            `yaml:"width,omitempty" json:"width,omitempty"`
	Hidden   bool           `yaml:"hidden,omitempty" json:"hidden,omitempty"`
	Children []FieldDisplay `yaml:"children,omitempty" json:"children,omitempty"`
}

// Child returns the child display entry with the given name.
func (fd *FieldDisplay) Child(name string) (child *FieldDisplay, ok bool) {
	if fd == nil {
		return
	}
	for i := range fd.Children {
		if fd.Children[i].Name == name {
			return &fd.Children[i], true
		}
	}
	return
}

// Clone returns a deep copy.
func (fd *FieldDisplay) Clone() *FieldDisplay {
	if fd == nil {
		return nil
	}

	clone := FieldDisplay{
		Name:   fd.Name,
		Width:  fd.Width,
		Hidden: fd.Hidden,
	}
	if fd.Children != nil {
		clone.Children = make([]FieldDisplay, len(fd.Children))
		for i := range fd.Children {
			clone.Children[i] = *fd.Children[i].Clone()
		}
	}
	return &clone
}
