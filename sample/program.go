package sample

import (
	"fmt"
	"os"
	"path/filepath"
)

// Program is one sample program: a single test case for the harness.
type Program struct {
	Path     string
	Name     string
	Expected Expectations
}

// Load reads the whole sample file at path and extracts its expected results. The file is closed
// before Load returns.
func Load(path string) (Program, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return Program{}, err
	}
	defer func() { _ = f.Close() }()

	expected, err := ParseExpectations(f)
	if err != nil {
		return Program{}, fmt.Errorf("error reading %q: %w", path, err)
	}
	return Program{Path: path, Name: filepath.Base(path), Expected: expected}, nil
}

// List returns the paths of the sample files directly inside dir, sorted by name.
// Subdirectories are not descended into and are not returned.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot list sample directory: %w", err)
	}
	var ret []string
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		if e.IsDir() {
			continue
		}
		if e.Type()&os.ModeSymlink != 0 {
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				continue
			}
		}
		ret = append(ret, path)
	}
	return ret, nil
}
