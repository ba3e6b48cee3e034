// Package util is a grab bag for stuff that needs to go elsewhere.
package util

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	nt "grille/entity"
)

func OpenLog(path string, mode os.FileMode) (file io.Writer) {

	var err error
	file, err = os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, mode)
	if err != nil {
		fmt.Printf("warning: %s\n", err.Error())
		file = io.Discard
	}

	return
}

func CloseLog(file io.Writer) {

	actually, ok := file.(*os.File)
	if ok {
		actually.Close()
	}
}

func LoadConfig(cfg any, path string) (err error) {

	data, err := os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read from %s", path)
		return
	}

	err = yaml.Unmarshal(data, cfg)
	err = errors.Wrapf(err, "failed to unmarshal")
	return
}

func WriteConfig(cfg any, path string, mode os.FileMode) (err error) {

	data, err := yaml.Marshal(cfg)
	if err != nil {
		err = errors.Wrapf(err, "failed to marshal")
		return
	}

	err = os.WriteFile(path, data, mode)
	err = errors.Wrapf(err, "failed to write to %s", path)
	return
}

func SampleConfig(data []byte, path string, mode os.FileMode) (err error) {

	_, err = os.Stat(path)
	if err == nil {
		return // already have a cfg
	}

	err = os.WriteFile(path, data, mode)
	err = errors.Wrapf(err, "failed to write to %s", path)
	return
}

// LoadState reads a list state saved by SaveState.
// A missing file gives the empty state.
func LoadState(path string) (state nt.ListState, err error) {

	_, err = os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return nt.ListState{}.Normalize(), nil
	}

	err = LoadConfig(&state, path)
	state = state.Normalize()
	return
}

// SaveState writes a list state, replacing the file in one step.
func SaveState(state nt.ListState, path string, mode os.FileMode) (err error) {

	tmp := path + ".tmp"
	err = WriteConfig(state, tmp, mode)
	if err != nil {
		return
	}

	err = os.Rename(tmp, path)
	err = errors.Wrapf(err, "failed to replace %s", path)
	return
}
