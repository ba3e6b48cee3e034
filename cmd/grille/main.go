package main

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/clarktrimble/sabot"
	"github.com/pkg/errors"

	"grille"
	nt "grille/entity"
	"grille/field"
	"grille/htmlhead"
	"grille/store/duck"
	"grille/store/memo"
	"grille/util"
)

const (
	cfgPath  = "grille.yaml"
	demoRows = 500
)

//go:embed sample.yaml
var sample []byte

type Config struct {
	Source       string         `yaml:"source"`
	LogPath      string         `yaml:"log_path"`
	StatePath    string         `yaml:"state_path"`
	TheadPath    string         `yaml:"thead_path"`
	MaxLogLength int            `yaml:"max_log_length"`
	Title        string         `yaml:"title"`
	Grid         *grille.Config `yaml:"grid"`
}

func main() {

	err := run()
	if err != nil {
		fmt.Printf("Error: %+v\n", err)
		os.Exit(1)
	}
}

func run() (err error) {

	err = util.SampleConfig(sample, cfgPath, 0644)
	if err != nil {
		return
	}

	cfg := &Config{Grid: &grille.Config{}}
	err = util.LoadConfig(cfg, cfgPath)
	if err != nil {
		return
	}
	if len(os.Args) > 1 {
		cfg.Source = os.Args[1]
	}

	logFile := util.OpenLog(cfg.LogPath, 0644)
	defer util.CloseLog(logFile)

	lgr := &sabot.Sabot{Writer: logFile, MaxLen: cfg.MaxLogLength}
	ctx := lgr.WithFields(context.Background(), "app", "grille")

	source, title, closer, err := openSource(ctx, cfg, lgr)
	if err != nil {
		return
	}
	defer closer()

	state, err := util.LoadState(cfg.StatePath)
	if err != nil {
		return
	}

	model, err := cfg.Grid.New(ctx, source, state, lgr, func(state nt.ListState, change nt.ChangeType, name string) {
		err := util.SaveState(state, cfg.StatePath, 0644)
		if err != nil {
			lgr.Error(ctx, "failed to save list state", err)
		}
	})
	if err != nil {
		return
	}
	model.Title = title

	lgr.Info(ctx, "starting", "source", title)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		err = errors.Wrapf(err, "failed to run grid")
		return
	}

	grid, ok := final.(grille.Model)
	if !ok || cfg.TheadPath == "" {
		return
	}
	err = writeThead(cfg.TheadPath, grid)
	return
}

// openSource loads the configured file into duckdb, or makes demo rows when
// there is none. Columns not configured are taken from the data.
func openSource(ctx context.Context, cfg *Config, lgr nt.Logger) (source nt.Source, title string, closer func(), err error) {

	if cfg.Source == "" {
		if len(cfg.Grid.Columns) == 0 {
			cfg.Grid.Columns = memo.DemoColumns()
		}
		return memo.New(memo.DemoRows(demoRows)), "demo", func() {}, nil
	}

	dk, err := duck.New(lgr)
	if err != nil {
		return
	}

	err = dk.Load(ctx, cfg.Source)
	if err != nil {
		dk.Close()
		return
	}

	if len(cfg.Grid.Columns) == 0 {
		var columns []duck.Column
		columns, err = dk.Columns()
		if err != nil {
			dk.Close()
			return
		}
		for _, column := range columns {
			cfg.Grid.Columns = append(cfg.Grid.Columns, field.Column(column.Name, ""))
		}
	}

	title = cfg.Source
	if cfg.Title != "" {
		title = cfg.Title
	}
	return dk, title, dk.Close, nil
}

func writeThead(path string, grid grille.Model) (err error) {

	rdr, err := htmlhead.New()
	if err != nil {
		return
	}

	file, err := os.Create(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to create %s", path)
		return
	}
	defer file.Close()

	err = rdr.Render(file, grid.HeaderRows())
	return
}
