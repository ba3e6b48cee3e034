package grille

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	nt "grille/entity"
	"grille/field"
	"grille/header"
	"grille/style"
)

const (
	separator    = "│"
	handle       = "┃"
	chooserGlyph = "≡"
	ruleGlyph    = "─"
	emptyLabel   = "no columns shown"
)

var indicators = map[nt.SortDirection]string{
	nt.Asc:  "▲",
	nt.Desc: "▼",
	"":      "·",
}

// renderHeader renders one line per header row. Cells spanning several rows
// carry their label on their first line.
func (m Model) renderHeader() []string {

	if m.emptyHeader {
		label := fit(emptyLabel, max(m.Width-1, 0))
		return []string{style.MutedStyle.Render(label) + style.HeaderStyle.Render(chooserGlyph)}
	}

	geom := m.ctl.Geometry()
	resizing, _ := m.ctl.Resizing()

	lines := make([]string, geom.Height())
	for line := range lines {
		y := geom.Top + line
		cells := cellsOn(geom, y)

		var sb strings.Builder
		x := 0
		for _, placed := range cells {
			sb.WriteString(strings.Repeat(" ", max(placed.X-x, 0)))
			sb.WriteString(m.cellStyle(placed).Render(cellText(placed, y)))
			x = placed.X + placed.W

			if x < geom.Width {
				switch {
				case placed.Node.Name == resizing:
					sb.WriteString(style.ResizingStyle.Render(handle))
				default:
					sb.WriteString(style.RuleStyle.Render(separator))
				}
				x++
			}

			if placed.Chooser && y == placed.Y {
				sb.WriteString(style.HeaderStyle.Render(chooserGlyph))
				x++
			}
		}
		lines[line] = sb.String()
	}
	return lines
}

func (m Model) renderRule() string {
	width := m.ctl.Geometry().Width
	if m.emptyHeader {
		width = m.Width
	}
	return style.RuleStyle.Render(strings.Repeat(ruleGlyph, max(width, 0)))
}

func (m Model) renderBody() (lines []string) {
	for i, row := range m.rows {
		lines = append(lines, m.renderRow(row, m.offset+i == m.selected, false))
	}
	return
}

// renderRow renders the visible leaf values of a row in header order.
func (m Model) renderRow(row nt.RowData, selected, pinned bool) string {

	geom := m.ctl.Geometry()
	rowStyle := style.RowStyle(selected, row.Props.Muted, row.Props.Marked)
	if pinned {
		rowStyle = style.PinnedStyle
	}

	var sb strings.Builder
	for i, node := range m.container.Tree().Fields() {
		if i >= len(geom.Columns) {
			break
		}
		if i > 0 {
			sb.WriteString(rowStyle.Render(" "))
		}

		cellStyle := rowStyle
		if selected && i == m.column {
			cellStyle = style.HlCellStyle
		}
		text := fit(row.Value(node.Name).Format(node.Format), geom.Columns[i])
		sb.WriteString(cellStyle.Render(text))
	}
	return sb.String()
}

func (m Model) renderChooser() (lines []string) {
	for i, entry := range chooserEntries(m.container.Tree()) {
		box := "[x]"
		if entry.node.Hidden {
			box = "[ ]"
		}
		text := fmt.Sprintf("%s%s %s", strings.Repeat("  ", entry.depth), box, entry.node.Label())

		lineStyle := style.UnStyle
		if i == m.chooser {
			lineStyle = style.HlRowStyle
		}
		lines = append(lines, lineStyle.Render(text))
	}
	return
}

func (m Model) cellStyle(placed header.Placed) lipgloss.Style {

	name := placed.Node.Name
	selected, _ := m.selectedField()
	dragRow, dragging := m.ctl.Dragging()

	switch {
	case name == m.ctl.Dragged():
		return style.MovingStyle
	case name == m.ctl.Hover():
		return style.HoverStyle
	case dragging && placed.Row == dragRow:
		return style.DragRowStyle
	case placed.Node.SortDirection != "":
		return style.SortedStyle
	case !nt.IsEmptyFilter(placed.Node.Filter):
		return style.FilteredStyle
	case placed.Node.IsLeaf() && name == selected.Name:
		return style.HlCellStyle
	}
	return style.HeaderStyle
}

type chooserEntry struct {
	node  field.Node
	depth int
}

// chooserEntries lists every node under the root in header order, hidden
// ones included.
func chooserEntries(tree field.View) []chooserEntry {
	return appendEntries(tree, field.RootName, 0, nil)
}

func appendEntries(tree field.View, name string, depth int, entries []chooserEntry) []chooserEntry {
	for _, child := range tree.Children(name) {
		entries = append(entries, chooserEntry{node: child, depth: depth})
		if !child.IsLeaf() {
			entries = appendEntries(tree, child.Name, depth+1, entries)
		}
	}
	return entries
}

// cellsOn returns the cells covering screen line y, left to right.
func cellsOn(geom header.Geometry, y int) (cells []header.Placed) {
	for _, placed := range geom.Cells {
		if y >= placed.Y && y < placed.Y+placed.H {
			cells = append(cells, placed)
		}
	}
	slices.SortFunc(cells, func(a, b header.Placed) int {
		return cmp.Compare(a.X, b.X)
	})
	return
}

// cellText is the label of a cell on its first line, with the sort indicator
// in the last position of a sortable leaf, and blank below.
func cellText(placed header.Placed, y int) string {

	if y != placed.Y {
		return strings.Repeat(" ", placed.W)
	}

	node := placed.Node
	if !node.IsLeaf() || !node.Sortable || placed.W < 2 {
		return fit(node.Label(), placed.W)
	}
	return fit(node.Label(), placed.W-1) + indicators[node.SortDirection]
}

// fit truncates or pads text to exactly width cells.
func fit(text string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.FillRight(runewidth.Truncate(text, width, "…"), width)
}

func filterText(filter any) string {
	if nt.IsEmptyFilter(filter) {
		return ""
	}
	if str, ok := filter.(*string); ok {
		return *str
	}
	return fmt.Sprintf("%v", filter)
}
