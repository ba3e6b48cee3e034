package entity

import (
	"maps"
	"slices"
)

// SortDirection is the direction of a column sort; empty means unsorted.
type SortDirection string

const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"
)

// Sort represents a sort directive for one field.
type Sort struct {
	Field     string        `yaml:"field" json:"fieldName"`
	Direction SortDirection `yaml:"direction" json:"direction"`
}

// Desc reports whether the sort is descending.
func (srt Sort) Desc() bool {
	return srt.Direction == Desc
}

// ChangeType classifies a list state change.
type ChangeType string

const (
	SortsChange   ChangeType = "sorts"
	FiltersChange ChangeType = "filters"
	FieldsChange  ChangeType = "fields"
)

// IsDataChange reports whether the change affects which rows are shown, or
// their order, as opposed to how the same rows are laid out.
func IsDataChange(change ChangeType) bool {
	return change == SortsChange || change == FiltersChange
}

// ListState is the canonical state exchanged with the host.
// Sorts are in priority order, most recent first.
// Filters never hold empty values; an absent key means no filter.
// Fields is nil until the column layout has been changed or persisted.
type ListState struct {
	Sorts   []Sort         `yaml:"sorts" json:"sorts"`
	Filters map[string]any `yaml:"filters" json:"filters"`
	Fields  *FieldDisplay  `yaml:"fields,omitempty" json:"fields,omitempty"`
}

// Normalize fills in defaults for a zero or partial list state.
func (ls ListState) Normalize() ListState {
	if ls.Sorts == nil {
		ls.Sorts = []Sort{}
	}
	if ls.Filters == nil {
		ls.Filters = map[string]any{}
	}
	return ls
}

// Clone returns a copy sharing nothing mutable with the original.
// Filter values are treated as opaque and copied shallowly.
func (ls ListState) Clone() ListState {
	return ListState{
		Sorts:   slices.Clone(ls.Sorts),
		Filters: maps.Clone(ls.Filters),
		Fields:  ls.Fields.Clone(),
	}.Normalize()
}

// SortFor returns the sort entry for a field.
func (ls ListState) SortFor(field string) (srt Sort, ok bool) {
	for _, srt = range ls.Sorts {
		if srt.Field == field {
			return srt, true
		}
	}
	return Sort{}, false
}

// IsEmptyFilter reports whether a filter value means "no filter".
func IsEmptyFilter(value any) bool {
	switch val := value.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case *string:
		return val == nil || *val == ""
	}
	return false
}

// WidthUpdate is a measured width for one field.
type WidthUpdate struct {
	Field string
	Width int
}
