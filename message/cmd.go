package message

import tea "charm.land/bubbletea/v2"

// ErrorCmd returns a command delivering an error
func ErrorCmd(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Err: err}
	}
}

// GetPageCmd returns a command to request a page of data
func GetPageCmd(offset, size int) tea.Cmd {
	return func() tea.Msg {
		return GetPageMsg{
			Offset: offset,
			Size:   size,
		}
	}
}

// WidthsSetCmd returns a command announcing all widths are set
func WidthsSetCmd() tea.Cmd {
	return func() tea.Msg {
		return WidthsSetMsg{}
	}
}
