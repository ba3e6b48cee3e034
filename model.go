package grille

import (
	"context"
	"time"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	nt "grille/entity"
	"grille/field"
	"grille/header"
	"grille/layout"
	"grille/list"
	"grille/message"
)

const (
	footerHeight = 2
	ruleHeight   = 1
)

// Model is the bubbletea model for the grid.
type Model struct {
	fetch     *fetcher
	container *list.Container
	changes   *changeLog
	ctl       header.Controller

	fixed        bool
	settleDelay  time.Duration
	emptyHeader  bool
	allWidthsSet bool

	// Pinned rows show under the header and do not scroll.
	Pinned []nt.RowData
	// Title shows in the footer.
	Title string

	rows     []nt.RowData
	gen      int
	offset   int
	selected int
	total    int
	column   int

	mode        Mode
	filterInput textinput.Model
	filterField string
	chooser     int

	keys        keyMap
	ctx         context.Context
	logger      nt.Logger
	errorString string

	Width  int
	Height int
}

func (m Model) Init() tea.Cmd {
	if m.allWidthsSet {
		return message.WidthsSetCmd()
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {

	switch msg := msg.(type) {

	case pageMsg:
		if msg.gen != m.gen || msg.offset != m.offset {
			return m, nil // stale
		}
		m.rows = msg.rows
		m.total = msg.count
		m.selected = max(min(m.selected, m.total-1), 0)
		return m, nil

	case message.GetPageMsg:
		return m, m.getPage(msg.Offset, msg.Size)

	case message.ErrorMsg:
		m.logger.Error(m.ctx, "error msg", msg.Err)
		m.errorString = msg.Err.Error()
		return m, nil

	case message.WidthsSetMsg:
		m.logger.Info(m.ctx, "all column widths set")
		return m, nil

	case settleMsg:
		updates, ok := m.ctl.Settle(msg.tag)
		if !ok {
			return m, nil
		}
		m.container.WidthsChanged(updates)
		cmd := m.flush()
		return m, cmd

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, message.GetPageCmd(m.offset, m.pageSize())

	case tea.MouseClickMsg:
		return m.press(msg.X, msg.Y, button(msg.Button))

	case tea.MouseMotionMsg:
		act := m.ctl.Motion(header.Pointer{X: msg.X, Y: msg.Y})
		cmd := m.apply(act)
		return m, cmd

	case tea.MouseReleaseMsg:
		act := m.ctl.Release(header.Pointer{X: msg.X, Y: msg.Y})
		cmd := m.apply(act)
		return m, cmd

	case tea.KeyPressMsg:
		m.errorString = ""

		switch m.mode {
		case FilterMode:
			return m.updateFilter(msg)
		case ChooserMode:
			return m.updateChooser(msg)
		}
		return m.updateTable(msg)
	}

	if m.mode == FilterMode {
		var cmd tea.Cmd
		m.filterInput, cmd = m.filterInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) View() tea.View {
	if m.Width == 0 {
		return tea.NewView("Loading...")
	}

	screen := []string{}
	screen = append(screen, m.renderHeader()...)
	screen = append(screen, m.renderRule())
	for _, row := range m.Pinned {
		screen = append(screen, m.renderRow(row, false, true))
	}

	switch m.mode {
	case ChooserMode:
		screen = append(screen, m.renderChooser()...)
	default:
		screen = append(screen, m.renderBody()...)
	}

	height := max(m.Height-footerHeight, 0)
	for len(screen) < height {
		screen = append(screen, "")
	}
	screen = screen[:height]

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinVertical(lipgloss.Left, screen...),
		m.renderFooter(),
	)

	view := tea.NewView(content)
	view.AltScreen = true
	view.MouseMode = tea.MouseModeCellMotion
	return view
}

// SetProps takes new declared columns and list state from the host.
func (m Model) SetProps(defs []field.Def, state nt.ListState) (Model, tea.Cmd) {

	rebuilt, err := m.container.Update(defs, state)
	if err != nil {
		return m, message.ErrorCmd(err)
	}
	if rebuilt {
		m.ctl.SetTree(m.container.Tree())
	}

	m.gen++
	m.offset, m.selected = 0, 0
	relayout := m.relayout()
	cmd := tea.Batch(relayout, m.getPage(m.offset, m.pageSize()))
	return m, cmd
}

// State returns the current list state.
func (m Model) State() nt.ListState {
	return m.container.State()
}

// unexported

func (m Model) headerHeight() int {
	if m.emptyHeader {
		return 1
	}
	return m.ctl.Geometry().Height()
}

func (m Model) bodyTop() int {
	return m.headerHeight() + ruleHeight + len(m.Pinned)
}

func (m Model) pageSize() int {
	return max(m.Height-m.bodyTop()-footerHeight, 0)
}

// chooserAt returns where the column chooser affordance is drawn.
func (m Model) chooserAt() (x, y int) {
	if m.emptyHeader {
		return max(m.Width-1, 0), 0
	}
	return m.ctl.Geometry().Width, 0
}

// selectedField returns the visible leaf under the column cursor.
func (m Model) selectedField() (node field.Node, ok bool) {
	fields := m.container.Tree().Fields()
	if len(fields) == 0 {
		return
	}
	return fields[min(m.column, len(fields)-1)], true
}

// relayout measures the header after any change to the tree.
func (m *Model) relayout() (cmd tea.Cmd) {

	rows := layout.Levels(m.container.Tree())
	m.emptyHeader = len(rows) == 0
	m.ctl.SetGeometry(header.Measure(rows, 0, m.fixed))

	fields := m.container.Tree().Fields()
	m.column = max(min(m.column, len(fields)-1), 0)

	set := !m.emptyHeader && layout.AllWidthsSet(rows)
	if set && !m.allWidthsSet {
		cmd = message.WidthsSetCmd()
	}
	m.allWidthsSet = set
	return
}

// flush handles the list state changes made while processing a message.
func (m *Model) flush() tea.Cmd {

	changes := m.changes.drain()
	if len(changes) == 0 {
		return nil
	}

	data := false
	for _, chg := range changes {
		ctx := m.logger.WithFields(m.ctx, "change", string(chg.kind), "field", chg.field)
		m.logger.Info(ctx, "list state changed")
		data = data || nt.IsDataChange(chg.kind)
	}

	cmds := []tea.Cmd{m.relayout()}
	if data {
		m.gen++
		m.offset, m.selected = 0, 0
		cmds = append(cmds, m.getPage(m.offset, m.pageSize()))
	}
	return tea.Batch(cmds...)
}

// apply hands a header action to the list container.
func (m *Model) apply(act header.Action) tea.Cmd {

	var settle tea.Cmd
	switch act.Kind {
	case header.ResizeAction:
		m.container.WidthChanged(act.Width, act.Field)
		settle = settleCmd(m.ctl.Touch(), m.settleDelay)
	case header.MoveAction:
		m.container.Move(act.Index, act.Field)
	case header.SortAction:
		m.container.SortSelection(act.Direction, act.Field)
	default:
		return nil
	}
	return tea.Batch(m.flush(), settle)
}

func (m Model) press(x, y int, btn header.Button) (tea.Model, tea.Cmd) {

	cx, cy := m.chooserAt()
	if x == cx && y == cy && btn == header.Primary {
		m.ctl.Cancel()
		return m.toggleChooser()
	}

	if y < m.headerHeight() {
		act := m.ctl.Press(header.Pointer{X: x, Y: y, Button: btn})
		cmd := m.apply(act)
		return m, cmd
	}
	m.ctl.Cancel()

	idx := y - m.bodyTop()
	if m.mode != TableMode || idx < 0 || idx >= len(m.rows) {
		return m, nil
	}
	m.selected = m.offset + idx

	geom := m.ctl.Geometry()
	left := 0
	for i, width := range geom.Columns {
		if x >= left && x < left+width {
			m.column = i
			break
		}
		left += width + 1
	}
	return m, nil
}

func (m Model) toggleChooser() (tea.Model, tea.Cmd) {
	if m.mode == ChooserMode {
		m.mode = TableMode
		return m, nil
	}
	m.mode = ChooserMode
	m.chooser = 0
	return m, nil
}

func (m Model) updateTable(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {

	pageSize := m.pageSize()

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.cancel):
		m.ctl.Cancel()
		return m, nil

	case key.Matches(msg, m.keys.up):
		m.selected--
	case key.Matches(msg, m.keys.down):
		m.selected++
	case key.Matches(msg, m.keys.pageUp):
		m.selected -= pageSize
	case key.Matches(msg, m.keys.pageDown):
		m.selected += pageSize
	case key.Matches(msg, m.keys.top):
		m.selected = 0
	case key.Matches(msg, m.keys.bottom):
		m.selected = m.total - 1

	case key.Matches(msg, m.keys.left):
		m.column = max(m.column-1, 0)
		return m, nil
	case key.Matches(msg, m.keys.right):
		m.column = min(m.column+1, max(len(m.container.Tree().Fields())-1, 0))
		return m, nil

	case key.Matches(msg, m.keys.sort):
		node, ok := m.selectedField()
		if !ok || !node.Sortable {
			return m, nil
		}
		direction := nt.Asc
		if node.SortDirection == nt.Asc {
			direction = nt.Desc
		}
		m.container.SortSelection(direction, node.Name)
		cmd := m.flush()
		return m, cmd

	case key.Matches(msg, m.keys.filter):
		node, ok := m.selectedField()
		if !ok || !node.Filterable {
			return m, nil
		}
		m.mode = FilterMode
		m.filterField = node.Name
		m.filterInput.Prompt = node.Label() + ": "
		m.filterInput.SetValue(filterText(node.Filter))
		cmd := m.filterInput.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.hide):
		node, ok := m.selectedField()
		if !ok {
			return m, nil
		}
		m.container.HiddenChanged(true, node.Name)
		cmd := m.flush()
		return m, cmd

	case key.Matches(msg, m.keys.chooser):
		return m.toggleChooser()

	default:
		return m, nil
	}

	m.selected = max(min(m.selected, m.total-1), 0)
	cmd := m.scroll(pageSize)
	return m, cmd
}

// scroll keeps the selected row on the page, requesting a new page when the
// page moves.
func (m *Model) scroll(pageSize int) tea.Cmd {

	old := m.offset
	if m.selected < m.offset {
		m.offset = m.selected
	} else if m.selected >= m.offset+pageSize {
		m.offset = max(m.selected-pageSize+1, 0)
	}

	if m.offset == old {
		return nil
	}
	return message.GetPageCmd(m.offset, pageSize)
}

func (m Model) updateFilter(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {

	switch {
	case key.Matches(msg, m.keys.apply):
		m.mode = TableMode
		m.filterInput.Blur()
		m.container.FilterChanged(m.filterInput.Value(), m.filterField)
		cmd := m.flush()
		return m, cmd

	case key.Matches(msg, m.keys.cancel):
		m.mode = TableMode
		m.filterInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	return m, cmd
}

func (m Model) updateChooser(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {

	entries := chooserEntries(m.container.Tree())

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.cancel), key.Matches(msg, m.keys.chooser):
		m.mode = TableMode

	case key.Matches(msg, m.keys.up):
		m.chooser = max(m.chooser-1, 0)

	case key.Matches(msg, m.keys.down):
		m.chooser = min(m.chooser+1, max(len(entries)-1, 0))

	case key.Matches(msg, m.keys.toggle):
		if m.chooser >= len(entries) {
			return m, nil
		}
		node := entries[m.chooser].node
		m.container.HiddenChanged(!node.Hidden, node.Name)
		cmd := m.flush()
		return m, cmd
	}
	return m, nil
}

func button(btn tea.MouseButton) header.Button {
	switch btn {
	case tea.MouseLeft:
		return header.Primary
	case tea.MouseRight:
		return header.Secondary
	case tea.MouseMiddle:
		return header.Auxiliary
	}
	return header.OtherButton
}

// HeaderRows returns the current header layout.
func (m Model) HeaderRows() [][]layout.Cell {
	return m.ctl.Geometry().Rows
}
