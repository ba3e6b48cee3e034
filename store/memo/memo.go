// Package memo is an in-memory row source.
package memo

import (
	"cmp"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/pkg/errors"

	nt "grille/entity"
)

// Memo holds rows and a filtered, sorted view over them.
type Memo struct {
	rows []nt.RowData
	view []int
}

// New creates a memo over rows, shown unfiltered in the given order.
func New(rows []nt.RowData) *Memo {

	memo := &Memo{rows: rows}
	memo.view = memo.all()
	return memo
}

// SetView filters and sorts the rows.
// Sorts are applied in priority order, first sort first.
func (memo *Memo) SetView(filter nt.Filter, sorts []nt.Sort) (err error) {

	view := []int{}
	for i, row := range memo.rows {
		var keep bool
		keep, err = match(filter, row)
		if err != nil {
			return
		}
		if keep {
			view = append(view, i)
		}
	}

	slices.SortStableFunc(view, func(a, b int) int {
		for _, srt := range sorts {
			order := compare(memo.rows[a].Value(srt.Field), memo.rows[b].Value(srt.Field))
			if srt.Desc() {
				order = -order
			}
			if order != 0 {
				return order
			}
		}
		return 0
	})

	memo.view = view
	return
}

// Count returns the number of rows in view.
func (memo *Memo) Count() (int, error) {
	return len(memo.view), nil
}

// Page returns up to size rows in view starting at offset.
func (memo *Memo) Page(offset, size int) (rows []nt.RowData, err error) {

	if offset < 0 || size < 0 {
		err = errors.Errorf("bad page offset %d size %d", offset, size)
		return
	}

	rows = []nt.RowData{}
	end := min(offset+size, len(memo.view))
	for i := offset; i < end; i++ {
		rows = append(rows, memo.rows[memo.view[i]])
	}
	return
}

// unexported

func (memo *Memo) all() []int {
	view := make([]int, len(memo.rows))
	for i := range view {
		view[i] = i
	}
	return view
}

func match(filter nt.Filter, row nt.RowData) (ok bool, err error) {

	switch filter.Op {
	case nt.And:
		for _, child := range active(filter.Children) {
			ok, err = match(child, row)
			if err != nil || !ok {
				return
			}
		}
		return true, nil
	case nt.Or:
		children := active(filter.Children)
		if len(children) == 0 {
			return true, nil
		}
		for _, child := range children {
			ok, err = match(child, row)
			if err != nil || ok {
				return
			}
		}
		return false, nil
	case nt.Not:
		children := active(filter.Children)
		if len(children) == 0 {
			return true, nil
		}
		ok, err = match(children[0], row)
		return !ok && err == nil, err
	}

	value := row.Value(filter.Field)
	want := nt.Value{Raw: filter.Value}

	switch filter.Op {
	case nt.Eq:
		ok = compare(value, want) == 0
	case nt.Ne:
		ok = compare(value, want) != 0
	case nt.Gt:
		ok = compare(value, want) > 0
	case nt.Gte:
		ok = compare(value, want) >= 0
	case nt.Lt:
		ok = compare(value, want) < 0
	case nt.Lte:
		ok = compare(value, want) <= 0
	case nt.Contains:
		ok = strings.Contains(strings.ToLower(value.String()), strings.ToLower(filterText(filter.Value)))
	case nt.Match:
		var rx *regexp.Regexp
		rx, err = regexp.Compile(filterText(filter.Value))
		if err != nil {
			err = errors.Wrapf(err, "bad pattern for %s", filter.Field)
			return
		}
		ok = rx.MatchString(value.String())
	default:
		err = errors.Errorf("unknown filter op %d", filter.Op)
	}
	return
}

func active(filters []nt.Filter) (enabled []nt.Filter) {
	for _, filter := range filters {
		if filter.Enabled {
			enabled = append(enabled, filter)
		}
	}
	return
}

func filterText(value any) string {
	if str, ok := value.(*string); ok && str != nil {
		return *str
	}
	return fmt.Sprintf("%v", value)
}

// compare orders numbers and times by value and everything else as text.
// Empty values sort first.
func compare(a, b nt.Value) int {

	switch {
	case a.Raw == nil && b.Raw == nil:
		return 0
	case a.Raw == nil:
		return -1
	case b.Raw == nil:
		return 1
	}

	if x, ok := number(a.Raw); ok {
		if y, ok := number(b.Raw); ok {
			return cmp.Compare(x, y)
		}
	}

	if x, ok := a.Raw.(time.Time); ok {
		if y, ok := b.Raw.(time.Time); ok {
			return x.Compare(y)
		}
	}

	return cmp.Compare(a.String(), b.String())
}

func number(raw any) (float64, bool) {
	switch val := raw.(type) {
	case int:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case float32:
		return float64(val), true
	case float64:
		return val, true
	}
	return 0, false
}
