package grille

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"grille/style"
)

// RenderFooter renders a footer with metadata about the grid.
func RenderFooter(current, total int, title string, width int) string {

	left := fmt.Sprintf("%d/%d", current, total)
	right := title

	padding := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return style.FooterStyle.Render(left + strings.Repeat(" ", padding) + right)
}

// renderFooter renders the input or key hints line and the status line.
func (m Model) renderFooter() string {

	var top string
	switch m.mode {
	case FilterMode:
		top = m.filterInput.View()
	case ChooserMode:
		top = style.MutedStyle.Render(strings.Join(m.keys.hints(m.keys.toggle, m.keys.chooser, m.keys.cancel), "  "))
	default:
		top = style.MutedStyle.Render(strings.Join(m.keys.hints(m.keys.sort, m.keys.filter, m.keys.hide, m.keys.chooser, m.keys.quit), "  "))
	}

	bottom := RenderFooter(min(m.selected+1, m.total), m.total, m.Title, m.Width)
	if m.errorString != "" {
		bottom = style.ErrorStyle.Render(m.errorString)
	}

	return lipgloss.JoinVertical(lipgloss.Left, top, bottom)
}
