package header

import (
	"testing"

	nt "grille/entity"
	"grille/field"
	"grille/layout"
)

func sampleTree(t *testing.T) *field.Tree {
	t.Helper()

	tree, err := field.Build([]field.Def{
		field.Set("group1", "Group 1",
			field.Column("col1", "Col 1"),
			field.Set("subGroup1", "Sub Group 1",
				field.Column("col2", "Col 2"),
				field.Column("col3", "Col 3"),
			),
		),
		field.Set("group2", "Group 2",
			field.Set("subGroup2", "Sub Group 2",
				field.Column("col4", "Col 4"),
			),
			field.Column("col5", "Col 5"),
		),
	}, field.Defaults{Sortable: true}, nil)
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}
	return tree
}

func newController(t *testing.T, tree *field.Tree) Controller {
	t.Helper()
	return New(tree, Measure(layout.Levels(tree), 0, false))
}

func cellOf(t *testing.T, ctl Controller, name string) Placed {
	t.Helper()

	placed, ok := ctl.geom.Cell(name)
	if !ok {
		t.Fatalf("no cell for %s", name)
	}
	return placed
}

func TestMeasure(t *testing.T) {
	tree := sampleTree(t)
	tree.Resize("col3", 10)
	geom := Measure(layout.Levels(tree), 2, false)

	if geom.Height() != 3 {
		t.Errorf("expected 3 header lines, got %d", geom.Height())
	}

	expect := map[string]Placed{
		"group1": {X: 0, Y: 2, W: 26, H: 1},
		"col1":   {X: 0, Y: 3, W: 7, H: 2},
		"col3":   {X: 16, Y: 4, W: 10, H: 1},
		"col5":   {X: 35, Y: 3, W: 7, H: 2},
	}
	for name, want := range expect {
		got, ok := geom.Cell(name)
		if !ok {
			t.Fatalf("missing %s", name)
		}
		if got.X != want.X || got.Y != want.Y || got.W != want.W || got.H != want.H {
			t.Errorf("%s: expected %d,%d %dx%d got %d,%d %dx%d",
				name, want.X, want.Y, want.W, want.H, got.X, got.Y, got.W, got.H)
		}
	}

	if geom.Width != 42 {
		t.Errorf("expected total width 42, got %d", geom.Width)
	}

	group2, _ := geom.Cell("group2")
	if !group2.Chooser {
		t.Errorf("chooser belongs on the last cell of the first row")
	}
}

func TestCellAtAndHandleAt(t *testing.T) {
	ctl := newController(t, sampleTree(t))
	col1 := cellOf(t, ctl, "col1")

	if got, ok := ctl.geom.CellAt(col1.X, col1.Y+1); !ok || got.Node.Name != "col1" {
		t.Errorf("second line of col1 should hit col1, got %q", got.Node.Name)
	}
	if _, ok := ctl.geom.CellAt(col1.X+col1.W, col1.Y); ok {
		t.Errorf("separator is not part of a cell")
	}
	if got, ok := ctl.geom.HandleAt(col1.X+col1.W, col1.Y+1); !ok || got.Node.Name != "col1" {
		t.Errorf("expected col1 handle, got %q", got.Node.Name)
	}

	col5 := cellOf(t, ctl, "col5")
	if _, ok := ctl.geom.HandleAt(col5.X+col5.W, col5.Y); ok {
		t.Errorf("last column has no handle")
	}
}

func TestResizeDrag(t *testing.T) {
	ctl := newController(t, sampleTree(t))
	col2 := cellOf(t, ctl, "col2")
	handle := col2.X + col2.W

	act := ctl.Press(Pointer{X: handle, Y: col2.Y, Button: Primary})
	if act.Kind != NoAction {
		t.Errorf("press should not ask for anything, got %+v", act)
	}
	if name, ok := ctl.Resizing(); !ok || name != "col2" {
		t.Fatalf("expected col2 resize session, got %q %v", name, ok)
	}

	steps := []struct {
		x      int
		expect int
	}{
		{handle + 3, col2.W + 3},
		{handle + 1, col2.W + 1},
		{handle - 2, col2.W - 2},
		{handle - 100, MinWidth},
	}
	for _, step := range steps {
		act = ctl.Motion(Pointer{X: step.x, Y: col2.Y + 5})
		if act.Kind != ResizeAction || act.Field != "col2" || act.Width != step.expect {
			t.Errorf("motion to %d: expected width %d, got %+v", step.x, step.expect, act)
		}
	}

	act = ctl.Release(Pointer{X: handle, Y: col2.Y})
	if act.Kind != NoAction {
		t.Errorf("release should not ask for anything, got %+v", act)
	}
	if _, ok := ctl.Resizing(); ok {
		t.Errorf("session should end on release")
	}
	if act = ctl.Motion(Pointer{X: handle + 4, Y: col2.Y}); act.Kind != NoAction {
		t.Errorf("motion after release should do nothing, got %+v", act)
	}
}

func TestResizeStartsFromExplicitWidth(t *testing.T) {
	tree := sampleTree(t)
	tree.Resize("col1", 12)
	ctl := newController(t, tree)
	col1 := cellOf(t, ctl, "col1")

	ctl.Press(Pointer{X: col1.X + col1.W, Y: col1.Y, Button: Primary})
	act := ctl.Motion(Pointer{X: col1.X + col1.W + 2, Y: col1.Y})
	if act.Width != 14 {
		t.Errorf("expected 14, got %d", act.Width)
	}
}

func TestSecondaryButtonIgnored(t *testing.T) {
	ctl := newController(t, sampleTree(t))
	col2 := cellOf(t, ctl, "col2")

	for _, button := range []Button{Secondary, Auxiliary, OtherButton} {
		act := ctl.Press(Pointer{X: col2.X + col2.W, Y: col2.Y, Button: button})
		if act.Kind != NoAction {
			t.Errorf("button %d: expected no action, got %+v", button, act)
		}
		if _, ok := ctl.Resizing(); ok {
			t.Errorf("button %d started a resize", button)
		}
		if _, ok := ctl.Dragging(); ok {
			t.Errorf("button %d started a drag", button)
		}
	}
}

func TestReorderDrag(t *testing.T) {
	tree := sampleTree(t)
	ctl := newController(t, tree)
	col2 := cellOf(t, ctl, "col2")
	col3 := cellOf(t, ctl, "col3")
	col4 := cellOf(t, ctl, "col4")

	ctl.Press(Pointer{X: col3.X, Y: col3.Y, Button: Primary})
	if row, ok := ctl.Dragging(); !ok || row != col3.Row {
		t.Fatalf("expected drag on row %d, got %d %v", col3.Row, row, ok)
	}

	moves := []struct {
		name   string
		x, y   int
		expect string
	}{
		{"over self", col3.X + 1, col3.Y, ""},
		{"over sibling", col2.X + 1, col2.Y, "col2"},
		{"over other group", col4.X, col4.Y, ""},
		{"over separator", col2.X + col2.W, col2.Y, ""},
		{"back to sibling", col2.X, col2.Y, "col2"},
	}
	for _, mv := range moves {
		ctl.Motion(Pointer{X: mv.x, Y: mv.y})
		if got := ctl.Hover(); got != mv.expect {
			t.Errorf("%s: expected hover %q, got %q", mv.name, mv.expect, got)
		}
	}

	act := ctl.Release(Pointer{X: col2.X, Y: col2.Y})
	if act.Kind != MoveAction || act.Field != "col3" || act.Index != 0 {
		t.Errorf("expected move of col3 to 0, got %+v", act)
	}
	if _, ok := ctl.Dragging(); ok || ctl.Hover() != "" || ctl.Dragged() != "" {
		t.Errorf("drag state should clear on release")
	}
}

func TestReorderGroups(t *testing.T) {
	ctl := newController(t, sampleTree(t))
	group1 := cellOf(t, ctl, "group1")
	group2 := cellOf(t, ctl, "group2")

	ctl.Press(Pointer{X: group2.X, Y: group2.Y, Button: Primary})
	act := ctl.Release(Pointer{X: group1.X + 3, Y: group1.Y})
	if act.Kind != MoveAction || act.Field != "group2" || act.Index != 0 {
		t.Errorf("expected move of group2 to 0, got %+v", act)
	}
}

func TestReorderWithoutTarget(t *testing.T) {
	ctl := newController(t, sampleTree(t))
	col2 := cellOf(t, ctl, "col2")
	col4 := cellOf(t, ctl, "col4")

	ctl.Press(Pointer{X: col2.X, Y: col2.Y, Button: Primary})
	ctl.Motion(Pointer{X: col4.X, Y: col4.Y})

	act := ctl.Release(Pointer{X: col4.X, Y: col4.Y})
	if act.Kind != NoAction {
		t.Errorf("drop outside the group should do nothing, got %+v", act)
	}
	if _, ok := ctl.Dragging(); ok {
		t.Errorf("drag state should clear")
	}
}

func TestCancel(t *testing.T) {
	ctl := newController(t, sampleTree(t))
	col2 := cellOf(t, ctl, "col2")
	col3 := cellOf(t, ctl, "col3")

	ctl.Press(Pointer{X: col2.X, Y: col2.Y, Button: Primary})
	ctl.Motion(Pointer{X: col3.X, Y: col3.Y})
	if ctl.Hover() != "col3" {
		t.Fatalf("expected hover on col3")
	}

	ctl.Cancel()
	if _, ok := ctl.Dragging(); ok || ctl.Hover() != "" {
		t.Errorf("cancel should clear drag state")
	}
	if act := ctl.Release(Pointer{X: col3.X, Y: col3.Y}); act.Kind != NoAction {
		t.Errorf("release after cancel should do nothing, got %+v", act)
	}

	// a lost release is dropped by the next press
	ctl.Press(Pointer{X: col2.X, Y: col2.Y, Button: Primary})
	ctl.Motion(Pointer{X: col3.X, Y: col3.Y})
	ctl.Press(Pointer{X: col2.X, Y: col2.Y, Button: Secondary})
	if ctl.Hover() != "" {
		t.Errorf("new press should drop the stale session")
	}

	ctl.Press(Pointer{X: col2.X, Y: col2.Y, Button: Primary})
	ctl.SetTree(sampleTree(t))
	if _, ok := ctl.Dragging(); ok {
		t.Errorf("a new tree should end the drag")
	}
}

func TestSortClick(t *testing.T) {
	tree := sampleTree(t)
	ctl := newController(t, tree)
	col2 := cellOf(t, ctl, "col2")
	indicator := col2.X + col2.W - 1

	act := ctl.Press(Pointer{X: indicator, Y: col2.Y, Button: Primary})
	if act.Kind != SortAction || act.Field != "col2" || act.Direction != nt.Asc {
		t.Errorf("expected asc sort on col2, got %+v", act)
	}
	if _, ok := ctl.Dragging(); ok {
		t.Errorf("sort click should not start a drag")
	}

	tree.Annotate([]nt.Sort{{Field: "col2", Direction: nt.Asc}}, nil)
	ctl.SetGeometry(Measure(layout.Levels(tree), 0, false))

	act = ctl.Press(Pointer{X: indicator, Y: col2.Y, Button: Primary})
	if act.Direction != nt.Desc {
		t.Errorf("second click should sort desc, got %+v", act)
	}
}

func TestSettle(t *testing.T) {
	tree := sampleTree(t)
	tree.Resize("col1", 9)
	ctl := newController(t, tree)

	first := ctl.Touch()
	second := ctl.Touch()

	if _, ok := ctl.Settle(first); ok {
		t.Errorf("a superseded tag must not fire")
	}

	updates, ok := ctl.Settle(second)
	if !ok {
		t.Fatalf("latest tag should fire")
	}
	if len(updates) != 5 {
		t.Fatalf("expected 5 leaf widths, got %v", updates)
	}
	for _, update := range updates {
		want := 7
		if update.Field == "col1" {
			want = 9
		}
		if update.Width != want {
			t.Errorf("%s: expected %d, got %d", update.Field, want, update.Width)
		}
	}

	if _, ok := ctl.Settle(second); ok {
		t.Errorf("a tag fires once")
	}

	third := ctl.Touch()
	if _, ok := ctl.Settle(third); !ok {
		t.Errorf("a new burst should fire again")
	}
}
