package memo

import (
	"testing"

	nt "grille/entity"
	"grille/field"
)

func ids(t *testing.T, memo *Memo) (got []string) {
	t.Helper()

	rows, err := memo.Page(0, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, row := range rows {
		got = append(got, row.Id)
	}
	return
}

func same(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestPage(t *testing.T) {
	memo := New(DemoRows(10))

	count, _ := memo.Count()
	if count != 10 {
		t.Errorf("expected 10 rows, got %d", count)
	}

	tests := []struct {
		offset, size int
		expect       int
	}{
		{0, 4, 4},
		{8, 4, 2},
		{10, 4, 0},
		{20, 4, 0},
	}
	for _, tc := range tests {
		rows, err := memo.Page(tc.offset, tc.size)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(rows) != tc.expect {
			t.Errorf("page %d/%d: expected %d rows, got %d", tc.offset, tc.size, tc.expect, len(rows))
		}
	}

	if _, err := memo.Page(-1, 4); err == nil {
		t.Errorf("expected error for negative offset")
	}
}

func TestSetView(t *testing.T) {
	tests := []struct {
		name   string
		filter nt.Filter
		sorts  []nt.Sort
		expect []string
	}{
		{
			name:   "contains ignores case",
			filter: nt.FilterFromState(map[string]any{"host": "ALP"}),
			expect: []string{"1", "5"},
		},
		{
			name:   "empty filter keeps all",
			filter: nt.FilterFromState(map[string]any{"host": ""}),
			expect: []string{"1", "2", "3", "4", "5", "6", "7", "8"},
		},
		{
			name:   "sorts in priority order",
			filter: nt.FilterFromState(nil),
			sorts: []nt.Sort{
				{Field: "host", Direction: nt.Desc},
				{Field: "id", Direction: nt.Desc},
			},
			expect: []string{"8", "4", "7", "3", "6", "2", "5", "1"},
		},
		{
			name: "numbers compare by value",
			filter: nt.Filter{Op: nt.And, Enabled: true, Children: []nt.Filter{
				{Op: nt.Gte, Field: "id", Value: 7, Enabled: true},
			}},
			sorts:  []nt.Sort{{Field: "id", Direction: nt.Asc}},
			expect: []string{"7", "8"},
		},
		{
			name: "or and not",
			filter: nt.Filter{Op: nt.Or, Enabled: true, Children: []nt.Filter{
				{Op: nt.Eq, Field: "host", Value: "bravo", Enabled: true},
				{Op: nt.Not, Enabled: true, Children: []nt.Filter{
					{Op: nt.Lt, Field: "id", Value: 8, Enabled: true},
				}},
			}},
			expect: []string{"2", "6", "8"},
		},
		{
			name: "disabled children are skipped",
			filter: nt.Filter{Op: nt.And, Enabled: true, Children: []nt.Filter{
				{Op: nt.Eq, Field: "host", Value: "bravo", Enabled: false},
				{Op: nt.Match, Field: "level", Value: "^err", Enabled: true},
			}},
			expect: []string{"2", "6"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			memo := New(DemoRows(8))
			err := memo.SetView(tc.filter, tc.sorts)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			got := ids(t, memo)
			if !same(got, tc.expect) {
				t.Errorf("expected %v, got %v", tc.expect, got)
			}
		})
	}
}

func TestSetViewBadPattern(t *testing.T) {
	memo := New(DemoRows(3))

	err := memo.SetView(nt.Filter{Op: nt.And, Enabled: true, Children: []nt.Filter{
		{Op: nt.Match, Field: "msg", Value: "(", Enabled: true},
	}}, nil)
	if err == nil {
		t.Errorf("expected error for bad pattern")
	}

	count, _ := memo.Count()
	if count != 3 {
		t.Errorf("failed view should leave the old one, got %d rows", count)
	}
}

func TestDemoColumns(t *testing.T) {
	tree, err := field.Build(DemoColumns(), field.Defaults{Sortable: true}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	row := DemoRows(1)[0]
	for _, node := range tree.Fields() {
		if _, ok := row.Values[node.Name]; !ok {
			t.Errorf("demo rows have no value for %s", node.Name)
		}
	}
}
