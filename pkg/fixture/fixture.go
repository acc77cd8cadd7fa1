// Copyright: This file is part of smvkit, released under https://github.com/LouvainVerificationLab/smvkit/blob/main/LICENSE

package fixture

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/LouvainVerificationLab/smvkit/pkg/unique"
)

// Fixture is one SMV file under management.
type Fixture struct {
	Name   string  `json:"name"`
	Path   string  `json:"path"`
	Group  string  `json:"group,omitempty"`
	Expect Outcome `json:"expect"`
	Notes  string  `json:"notes,omitempty"`
}

// Load discovers fixtures in the given files and directories.
// Directories are searched recursively for .smv files, results are sorted
// by path and de-duplicated. Fixtures loaded this way are expected to be valid.
func Load(paths ...string) ([]Fixture, error) {
	var fixtures []Fixture
	seen := unique.Set[string]{}
	for _, p := range paths {
		found, err := discover(p)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			if seen.Has(f) {
				continue
			}
			seen.Add(f)
			fixtures = append(fixtures, Fixture{Name: fixtureName(f), Path: f, Expect: OutcomeValid})
		}
	}
	return uniqueNames(fixtures), nil
}

// discover returns the sorted .smv files under path, or path itself if it is a file.
func discover(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(p), ".smv") {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func fixtureName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// uniqueNames disambiguates duplicate fixture names by prefixing the
// parent directory, then by numbering. Order is preserved.
func uniqueNames(fixtures []Fixture) []Fixture {
	taken := map[string]bool{}
	for i := range fixtures {
		f := &fixtures[i]
		if taken[f.Name] {
			if dir := filepath.Base(filepath.Dir(f.Path)); dir != "." && dir != string(filepath.Separator) {
				f.Name = dir + "-" + f.Name
			}
			for n := 2; taken[f.Name]; n++ {
				f.Name = fmt.Sprintf("%v-%v", fixtureName(f.Path), n)
			}
		}
		taken[f.Name] = true
	}
	return fixtures
}

func sortedKeys(m Manifests) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
