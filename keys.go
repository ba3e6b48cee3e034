package grille

import "charm.land/bubbles/v2/key"

type keyMap struct {
	quit     key.Binding
	cancel   key.Binding
	apply    key.Binding
	up       key.Binding
	down     key.Binding
	pageUp   key.Binding
	pageDown key.Binding
	top      key.Binding
	bottom   key.Binding
	left     key.Binding
	right    key.Binding
	sort     key.Binding
	filter   key.Binding
	hide     key.Binding
	chooser  key.Binding
	toggle   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		apply:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
		up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		pageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
		pageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdown", "page down")),
		top:      key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		bottom:   key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "column left")),
		right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "column right")),
		sort:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		filter:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		hide:     key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "hide")),
		chooser:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "columns")),
		toggle:   key.NewBinding(key.WithKeys("space", "enter"), key.WithHelp("space", "show/hide")),
	}
}

// hints is the short help shown in the footer
func (km keyMap) hints(bindings ...key.Binding) (hints []string) {
	for _, binding := range bindings {
		help := binding.Help()
		hints = append(hints, help.Key+" "+help.Desc)
	}
	return
}
