package util

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	nt "grille/entity"
)

func TestStateRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yaml")

	state, err := LoadState(path)
	if err != nil {
		t.Fatalf("missing file should not fail: %v", err)
	}
	if len(state.Sorts) != 0 || len(state.Filters) != 0 || state.Fields != nil {
		t.Errorf("expected empty state, got %+v", state)
	}

	state = nt.ListState{
		Sorts:   []nt.Sort{{Field: "ts", Direction: nt.Desc}},
		Filters: map[string]any{"host": "alpha"},
		Fields: &nt.FieldDisplay{
			Name: "_root_",
			Children: []nt.FieldDisplay{
				{Name: "event", Hidden: true, Children: []nt.FieldDisplay{{Name: "ts", Width: 12}}},
				{Name: "id"},
			},
		},
	}

	err = SaveState(state, path, 0644)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err = os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file should be gone")
	}

	loaded, err := LoadState(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(loaded, state) {
		t.Errorf("expected %+v, got %+v", state, loaded)
	}
}

func TestLoadStateBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yaml")
	err := os.WriteFile(path, []byte("sorts: [oops"), 0644)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = LoadState(path)
	if err == nil {
		t.Errorf("expected error for bad yaml")
	}
}

func TestSampleConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grille.yaml")

	err := SampleConfig([]byte("first: 1\n"), path, 0644)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err = SampleConfig([]byte("second: 2\n"), path, 0644)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg := map[string]int{}
	err = LoadConfig(&cfg, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg["first"] != 1 || cfg["second"] != 0 {
		t.Errorf("sample should not overwrite, got %v", cfg)
	}
}
