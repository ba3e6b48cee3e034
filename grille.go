// Package grille is a terminal data grid with a nested column header.
//
// Columns nest into groups; header cells can be dragged to reorder within
// their group, dragged at their right edge to resize, and clicked on their
// indicator to sort. Every change is reported to the host as a whole new list
// state.
package grille

import (
	"context"
	"time"

	"charm.land/bubbles/v2/textinput"

	nt "grille/entity"
	"grille/field"
	"grille/header"
	"grille/list"
)

// Config is the grid's part of the app config.
type Config struct {
	Columns     []field.Def    `yaml:"columns"`
	Defaults    field.Defaults `yaml:"defaults"`
	FixedWidth  bool           `yaml:"fixed_width"`
	MinWidth    int            `yaml:"min_width"`
	SettleDelay time.Duration  `yaml:"settle_delay"`
}

// New creates a grid model over source, starting from state.
// onChanged may be nil.
func (cfg *Config) New(ctx context.Context, source nt.Source, state nt.ListState, lgr nt.Logger, onChanged list.OnChanged) (model Model, err error) {

	changes := &changeLog{}
	lcfg := &list.Config{
		Defs:     cfg.Columns,
		Defaults: cfg.Defaults,
		OnChanged: func(state nt.ListState, change nt.ChangeType, fieldName string) {
			changes.add(change, fieldName)
			if onChanged != nil {
				onChanged(state, change, fieldName)
			}
		},
	}

	container, err := lcfg.New(state)
	if err != nil {
		return
	}

	delay := cfg.SettleDelay
	if delay <= 0 {
		delay = header.SettleDelay
	}

	filterInput := textinput.New()
	filterInput.Prompt = "filter: "
	filterInput.CharLimit = 120

	model = Model{
		fetch:       &fetcher{source: source},
		container:   container,
		changes:     changes,
		fixed:       cfg.FixedWidth,
		settleDelay: delay,
		ctx:         ctx,
		logger:      lgr,
		keys:        newKeyMap(),
		filterInput: filterInput,
	}

	model.ctl = header.New(container.Tree(), header.Geometry{})
	if cfg.MinWidth > 0 {
		model.ctl.MinWidth = cfg.MinWidth
	}
	model.relayout()
	return
}
