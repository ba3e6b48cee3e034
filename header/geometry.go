package header

import (
	"github.com/mattn/go-runewidth"

	"grille/field"
	"grille/layout"
)

const (
	// MinWidth is the narrowest a column can be dragged.
	MinWidth = 1
	// MinAutoWidth is the narrowest an auto-sized column renders.
	MinAutoWidth = 4
	// indicatorWidth leaves room for the sort indicator after a label.
	indicatorWidth = 2
)

// Placed is a header cell with its position on screen. Cells are one line
// per header row and grid columns are separated by a single character, which
// is also the resize handle of the cell to its left.
type Placed struct {
	layout.Cell
	X, Y      int
	W, H      int
	Resizable bool
	Chooser   bool
}

// Geometry places header rows on screen.
type Geometry struct {
	Rows    [][]layout.Cell
	Columns []int
	Cells   []Placed
	Top     int
	Width   int
}

// ColumnWidth returns the rendered width of a leaf: its own width when set,
// otherwise enough for its label and sort indicator.
func ColumnWidth(node field.Node) int {
	if node.Width > 0 {
		return node.Width
	}
	return AutoWidth(node)
}

// AutoWidth measures the label of a node.
func AutoWidth(node field.Node) int {
	return max(runewidth.StringWidth(node.Label())+indicatorWidth, MinAutoWidth)
}

// Measure places rows with the first header row at top.
func Measure(rows [][]layout.Cell, top int, fixed bool) Geometry {

	count := layout.ColumnCount(rows)
	geom := Geometry{
		Rows:    rows,
		Columns: make([]int, count),
		Top:     top,
	}

	for _, cell := range layout.Flatten(rows) {
		if cell.Node.IsLeaf() {
			geom.Columns[cell.Col] = ColumnWidth(cell.Node)
		}
	}

	offsets := make([]int, count+1)
	for i, width := range geom.Columns {
		offsets[i+1] = offsets[i] + width + 1
	}
	geom.Width = max(offsets[count]-1, 0)

	chooser, hasChooser := layout.ChooserCell(rows)
	for r, row := range rows {
		for i, cell := range row {
			geom.Cells = append(geom.Cells, Placed{
				Cell:      cell,
				X:         offsets[cell.Col],
				Y:         top + cell.Row,
				W:         offsets[cell.Col+cell.ColSpan] - offsets[cell.Col] - 1,
				H:         cell.RowSpan,
				Resizable: layout.Resizable(rows, cell, fixed),
				Chooser:   hasChooser && r == 0 && i == chooser,
			})
		}
	}
	return geom
}

// Height returns the number of screen lines the header rows take.
func (geom Geometry) Height() int {
	return len(geom.Rows)
}

// CellAt returns the cell under a screen position.
func (geom Geometry) CellAt(x, y int) (Placed, bool) {
	for _, placed := range geom.Cells {
		if placed.contains(x, y) {
			return placed, true
		}
	}
	return Placed{}, false
}

// HandleAt returns the cell whose resize handle is at a screen position.
func (geom Geometry) HandleAt(x, y int) (Placed, bool) {
	for _, placed := range geom.Cells {
		if placed.Resizable && x == placed.X+placed.W && y >= placed.Y && y < placed.Y+placed.H {
			return placed, true
		}
	}
	return Placed{}, false
}

// Cell returns the placed cell for a node.
func (geom Geometry) Cell(name string) (Placed, bool) {
	for _, placed := range geom.Cells {
		if placed.Node.Name == name {
			return placed, true
		}
	}
	return Placed{}, false
}

// Indicator reports whether a position is on the sort indicator of a
// sortable leaf: the last character on its first line.
func (placed Placed) Indicator(x, y int) bool {
	return placed.Node.IsLeaf() && placed.Node.Sortable && y == placed.Y && x == placed.X+placed.W-1
}

func (placed Placed) contains(x, y int) bool {
	return x >= placed.X && x < placed.X+placed.W && y >= placed.Y && y < placed.Y+placed.H
}
