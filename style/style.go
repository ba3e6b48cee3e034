package style

import (
	"charm.land/lipgloss/v2"
)

var (
	BackgroundColor = lipgloss.Color("234")                                 // Dark warm grey
	RuleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("240")) // Subtle warm grey separators
	HeaderStyle     = lipgloss.NewStyle().Bold(true)
	SortedStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("180")) // Sand, sorted column
	FilteredStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	HoverStyle      = lipgloss.NewStyle().Background(lipgloss.Color("24"))             // Drop target
	MovingStyle     = lipgloss.NewStyle().Bold(true).Background(lipgloss.Color("58"))  // Cell being dragged
	DragRowStyle    = lipgloss.NewStyle().Bold(true).Background(lipgloss.Color("236")) // Header row of a reorder drag
	ResizingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("180"))
	HlRowStyle      = lipgloss.NewStyle().Background(lipgloss.Color("235")) // Very subtle warm grey row
	HlCellStyle     = lipgloss.NewStyle().Background(lipgloss.Color("237")) // Slightly warmer cell
	PinnedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(BackgroundColor)
	MarkedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("167")) // Muted red
	MutedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("246")) // Warm muted grey text
	FooterStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	ErrorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("167"))
	UnStyle         = lipgloss.NewStyle()
)

// RowStyle picks the style for a body row.
func RowStyle(selected, muted, marked bool) lipgloss.Style {
	switch {
	case selected:
		return HlRowStyle
	case marked:
		return MarkedStyle
	case muted:
		return MutedStyle
	}
	return UnStyle
}
