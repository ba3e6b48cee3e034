package entity

import (
	"maps"
	"slices"
)

// FilterOp represents a filter operation type.
type FilterOp int

const (
	// Logical operators
	And FilterOp = iota
	Or
	Not

	// Comparison operators
	Eq       // ==
	Ne       // !=
	Gt       // >
	Gte      // >=
	Lt       // <
	Lte      // <=
	Contains // substring match
	Match    // regex match
)

// Filter represents a composable filter for row queries.
// Filters can be simple comparisons or complex logical combinations.
type Filter struct {
	Op       FilterOp // Operation type
	Field    string   // Field name for comparison (empty for logical ops)
	Value    any      // Comparison value (nil for logical ops)
	Enabled  bool     // Whether this filter is active
	Children []Filter // Child filters for logical ops
}

// FilterFromState builds a filter tree from list state filters.
// Each entry becomes an enabled Contains match, and-ed together in field name
// order so the resulting tree is stable across calls.
func FilterFromState(filters map[string]any) Filter {

	names := slices.Sorted(maps.Keys(filters))

	children := []Filter{}
	for _, name := range names {
		value := filters[name]
		if IsEmptyFilter(value) {
			continue
		}
		children = append(children, Filter{
			Op:      Contains,
			Field:   name,
			Value:   value,
			Enabled: true,
		})
	}

	return Filter{
		Op:       And,
		Enabled:  true,
		Children: children,
	}
}
