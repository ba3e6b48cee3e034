package grille

import (
	"sync"
	"time"

	tea "charm.land/bubbletea/v2"

	nt "grille/entity"
	"grille/message"
)

// fetcher serializes access to the source for page commands, which run off
// the update loop.
type fetcher struct {
	mu      sync.Mutex
	source  nt.Source
	gen     int
	viewSet bool
}

func (ft *fetcher) page(gen int, filter nt.Filter, sorts []nt.Sort, offset, size int) (rows []nt.RowData, count int, err error) {

	ft.mu.Lock()
	defer ft.mu.Unlock()

	if !ft.viewSet || gen != ft.gen {
		err = ft.source.SetView(filter, sorts)
		if err != nil {
			return
		}
		ft.gen, ft.viewSet = gen, true
	}

	count, err = ft.source.Count()
	if err != nil {
		return
	}

	rows, err = ft.source.Page(offset, size)
	return
}

// getPage gets a page of rows from the source for the current list state
func (m Model) getPage(offset, size int) tea.Cmd {

	state := m.container.State()
	filter := nt.FilterFromState(state.Filters)
	gen := m.gen
	ft := m.fetch

	return func() tea.Msg {

		rows, count, err := ft.page(gen, filter, state.Sorts, offset, size)
		if err != nil {
			return message.ErrorMsg{Err: err}
		}

		return pageMsg{
			gen:    gen,
			offset: offset,
			rows:   rows,
			count:  count,
		}
	}
}

// settleCmd checks back after the quiet period following a resize
func settleCmd(tag int, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return settleMsg{tag: tag}
	})
}
