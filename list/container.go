// Package list owns the canonical list state and the live column tree.
//
// Sort clicks, filter edits, resizes, moves and visibility toggles all come
// through a Container, which applies them and reports the whole new state
// through a single callback.
package list

import (
	"reflect"

	"github.com/pkg/errors"

	nt "grille/entity"
	"grille/field"
)

// OnChanged receives every new list state, what kind of change produced it,
// and the field it concerned.
type OnChanged func(state nt.ListState, change nt.ChangeType, fieldName string)

// Config is the host side of a Container.
type Config struct {
	Defs      []field.Def    `yaml:"columns"`
	Defaults  field.Defaults `yaml:"defaults"`
	OnChanged OnChanged      `yaml:"-"`
}

// Container holds the list state and the tree built from it.
type Container struct {
	defs      []field.Def
	defaults  field.Defaults
	state     nt.ListState
	tree      *field.Tree
	onChanged OnChanged
}

// New builds a container from declared columns and a list state, which may
// be the zero value.
func (cfg *Config) New(state nt.ListState) (ctr *Container, err error) {

	ctr = &Container{
		defs:      cfg.Defs,
		defaults:  cfg.Defaults,
		state:     state.Clone(),
		onChanged: cfg.OnChanged,
	}

	err = ctr.rebuild()
	if err != nil {
		ctr = nil
	}
	return
}

// Tree returns read access to the current column tree.
func (ctr *Container) Tree() field.View {
	return ctr.tree
}

// State returns a copy of the current list state.
func (ctr *Container) State() nt.ListState {
	return ctr.state.Clone()
}

// Update takes new declared columns and list state from the host. The tree
// is rebuilt when the columns or the field layout differ from what the
// container has; otherwise only sort and filter marks are refreshed.
// Update reports whether it rebuilt.
func (ctr *Container) Update(defs []field.Def, state nt.ListState) (rebuilt bool, err error) {

	state = state.Clone()
	rebuild := !reflect.DeepEqual(defs, ctr.defs) || !reflect.DeepEqual(state.Fields, ctr.state.Fields)

	prevDefs, prevState := ctr.defs, ctr.state
	ctr.defs = defs
	ctr.state = state

	if !rebuild {
		ctr.tree.Annotate(ctr.state.Sorts, ctr.state.Filters)
		return
	}

	err = ctr.rebuild()
	if err != nil {
		ctr.defs, ctr.state = prevDefs, prevState
		return
	}
	return true, nil
}

// SortSelection makes field the first sort, dropping any earlier sort on it.
func (ctr *Container) SortSelection(direction nt.SortDirection, fieldName string) {

	sorts := make([]nt.Sort, 0, len(ctr.state.Sorts)+1)
	sorts = append(sorts, nt.Sort{Field: fieldName, Direction: direction})
	for _, srt := range ctr.state.Sorts {
		if srt.Field != fieldName {
			sorts = append(sorts, srt)
		}
	}

	state := ctr.state.Clone()
	state.Sorts = sorts
	ctr.commit(state, nt.SortsChange, fieldName)
}

// FilterChanged sets the filter for a field; an empty value removes it.
func (ctr *Container) FilterChanged(filter any, fieldName string) {

	state := ctr.state.Clone()
	if nt.IsEmptyFilter(filter) {
		delete(state.Filters, fieldName)
	} else {
		state.Filters[fieldName] = filter
	}
	ctr.commit(state, nt.FiltersChange, fieldName)
}

// WidthChanged resizes a field. An unchanged width is not a change.
func (ctr *Container) WidthChanged(width int, fieldName string) {
	node, ok := ctr.tree.Find(fieldName)
	if !ok || node.Width == width {
		return
	}
	if !ctr.tree.Resize(fieldName, width) {
		return
	}
	ctr.commitFields(fieldName)
}

// WidthsChanged resizes several fields as one change.
func (ctr *Container) WidthsChanged(updates []nt.WidthUpdate) {

	changed := false
	for _, update := range updates {
		node, ok := ctr.tree.Find(update.Field)
		if !ok || node.Width == update.Width {
			continue
		}
		ctr.tree.Resize(update.Field, update.Width)
		changed = true
	}
	if !changed {
		return
	}
	ctr.commitFields("")
}

// Move moves a field to newIndex within its group.
func (ctr *Container) Move(newIndex int, fieldName string) {
	if !ctr.tree.Move(newIndex, fieldName) {
		return
	}
	ctr.commitFields(fieldName)
}

// HiddenChanged shows or hides a field or group.
func (ctr *Container) HiddenChanged(hidden bool, fieldName string) {
	if !ctr.tree.SetHidden(fieldName, hidden) {
		return
	}
	ctr.commitFields(fieldName)
}

// unexported

func (ctr *Container) rebuild() (err error) {

	tree, err := field.Build(ctr.defs, ctr.defaults, ctr.state.Fields)
	if err != nil {
		err = errors.Wrapf(err, "failed to build column tree")
		return
	}

	tree.Annotate(ctr.state.Sorts, ctr.state.Filters)
	ctr.tree = tree
	return
}

// commitFields snapshots the tree right after a mutation.
func (ctr *Container) commitFields(fieldName string) {

	display := ctr.tree.Display()
	state := ctr.state.Clone()
	state.Fields = &display
	ctr.commit(state, nt.FieldsChange, fieldName)
}

func (ctr *Container) commit(state nt.ListState, change nt.ChangeType, fieldName string) {

	ctr.state = state
	if nt.IsDataChange(change) {
		ctr.tree.Annotate(ctr.state.Sorts, ctr.state.Filters)
	}

	if ctr.onChanged != nil {
		ctr.onChanged(ctr.state.Clone(), change, fieldName)
	}
}
