// Package layout turns a column tree into header rows of spanning cells.
package layout

import (
	"grille/field"
)

// Cell is one header cell. Col is the first grid column the cell covers.
type Cell struct {
	Node    field.Node
	Group   string
	Row     int
	Col     int
	RowSpan int
	ColSpan int
}

// Levels lays out the visible nodes of the tree, one slice of cells per
// header row, left to right. A group takes one row and spans its visible
// leaves; a leaf spans every row from its own down to the last.
// A tree with nothing visible has no rows.
func Levels(tree field.View) [][]Cell {
	levels := tree.LevelCount(field.RootName)
	return fill(tree, field.RootName, 0, 0, levels, nil)
}

// ColumnCount returns the number of grid columns the rows cover.
func ColumnCount(rows [][]Cell) (count int) {
	if len(rows) == 0 {
		return
	}
	for _, cell := range rows[0] {
		count += cell.ColSpan
	}
	return
}

// ChooserCell returns the index of the first-row cell ending at the last
// grid column, where the column chooser goes.
func ChooserCell(rows [][]Cell) (idx int, ok bool) {
	colCount := ColumnCount(rows)
	if colCount == 0 {
		return
	}

	sum := 0
	for i, cell := range rows[0] {
		sum += cell.ColSpan
		if sum == colCount {
			return i, true
		}
	}
	return
}

// Resizable reports whether a cell gets a resize handle: every cell when
// widths are fixed, otherwise cells reaching the bottom row except the one
// in the last grid column.
func Resizable(rows [][]Cell, cell Cell, fixed bool) bool {
	if fixed {
		return true
	}

	lastRow := cell.Row+cell.RowSpan == len(rows)
	lastCol := cell.Col+cell.ColSpan == ColumnCount(rows)
	return lastRow && !lastCol
}

// AllWidthsSet reports whether every leaf cell has an explicit width.
// Group widths follow from their leaves.
func AllWidthsSet(rows [][]Cell) bool {
	for _, cell := range Flatten(rows) {
		if cell.Node.IsLeaf() && cell.Node.Width == 0 {
			return false
		}
	}
	return true
}

// Flatten returns the cells of all rows in order.
func Flatten(rows [][]Cell) (cells []Cell) {
	for _, row := range rows {
		cells = append(cells, row...)
	}
	return
}

// unexported

// fill places the visible children of group starting at row and col, rows
// being the number of header rows left from row down.
func fill(tree field.View, group string, row, col, rows int, out [][]Cell) [][]Cell {

	for _, child := range tree.Children(group) {
		if !tree.Visible(child.Name) {
			continue
		}
		for len(out) <= row {
			out = append(out, []Cell{})
		}

		cell := Cell{
			Node:  child,
			Group: group,
			Row:   row,
			Col:   col,
		}

		switch child.Kind {
		case field.Group:
			cell.RowSpan = 1
			cell.ColSpan = tree.FieldCount(child.Name)
			out[row] = append(out[row], cell)
			out = fill(tree, child.Name, row+1, col, rows-1, out)
		case field.Leaf:
			cell.RowSpan = max(rows, 1)
			cell.ColSpan = 1
			out[row] = append(out[row], cell)
		}
		col += cell.ColSpan
	}
	return out
}
