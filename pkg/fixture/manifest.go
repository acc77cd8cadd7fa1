// Copyright: This file is part of smvkit, released under https://github.com/LouvainVerificationLab/smvkit/blob/main/LICENSE

// Package fixture manages sets of SMV fixture files for test-suite maintenance.
// Fixtures are discovered directly from the filesystem or described by YAML
// manifests that record the expected validation outcome of each group.
package fixture

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"sigs.k8s.io/yaml"

	"github.com/LouvainVerificationLab/smvkit/internal/pkg/logging"
)

var log = logging.Log()

// Outcome is the expected or actual validation result of a fixture.
type Outcome string

const (
	// OutcomeValid means the fixture parses and analysis reports no errors.
	OutcomeValid Outcome = "valid"
	// OutcomeInvalid means parsing or analysis must report at least one error.
	OutcomeInvalid Outcome = "invalid"
)

// Manifest describes a set of fixture groups.
type Manifest struct {
	// More is a list of additional manifests to load.
	// Relative paths are relative to the location of the manifest containing them.
	More []string `json:"more,omitempty"`
	// Groups of fixture files sharing an expected outcome.
	Groups []Group `json:"groups,omitempty"`
}

// Group is a named set of fixture files with a common expected outcome.
type Group struct {
	Name string `json:"name"`
	// Expect is the expected validation outcome, "valid" if absent.
	Expect Outcome `json:"expect,omitempty"`
	Notes  string  `json:"notes,omitempty"`
	// Files and directories, relative to the manifest location.
	Files []string `json:"files"`
}

// Manifests is a map of manifests by their source file/url.
type Manifests map[string]*Manifest

// LoadManifest loads a manifest from a file or URL.
//
// If the manifest has a More section, also loads all referenced manifests.
// Relative paths in More are relative to the location of the file containing them.
func LoadManifest(fileOrURL string) (Manifests, error) {
	manifests := Manifests{}
	return manifests, loadManifest(fileOrURL, manifests)
}

func loadManifest(source string, manifests Manifests) error {
	if _, ok := manifests[source]; ok {
		return nil // Already loaded
	}
	log.V(2).Info("Loading manifest", "manifest", source)
	b, err := readFileOrURL(source)
	if err != nil {
		return fmt.Errorf("%v: %w", source, err)
	}
	m := &Manifest{}
	if err := yaml.UnmarshalStrict(b, m); err != nil {
		return fmt.Errorf("%v: %w", source, err)
	}
	for i, g := range m.Groups {
		switch g.Expect {
		case "", OutcomeValid, OutcomeInvalid:
		default:
			return fmt.Errorf("%v: group %q: invalid expect: %q", source, g.Name, g.Expect)
		}
		if g.Name == "" {
			return fmt.Errorf("%v: group %v has no name", source, i)
		}
	}
	manifests[source] = m
	for _, s := range m.More {
		if err := loadManifest(resolve(source, s), manifests); err != nil {
			return err
		}
	}
	return nil
}

// Fixtures resolves all groups of all manifests into a sorted fixture list.
// File entries are resolved relative to the manifest that names them,
// directories are searched recursively for .smv files.
func (manifests Manifests) Fixtures() ([]Fixture, error) {
	var fixtures []Fixture
	for _, source := range sortedKeys(manifests) {
		for _, g := range manifests[source].Groups {
			expect := g.Expect
			if expect == "" {
				expect = OutcomeValid
			}
			for _, f := range g.Files {
				paths, err := discover(resolve(source, f))
				if err != nil {
					return nil, fmt.Errorf("%v: group %q: %w", source, g.Name, err)
				}
				for _, p := range paths {
					fixtures = append(fixtures, Fixture{
						Name:   fixtureName(p),
						Path:   p,
						Group:  g.Name,
						Expect: expect,
						Notes:  g.Notes,
					})
				}
			}
		}
	}
	return uniqueNames(fixtures), nil
}

func readFileOrURL(source string) ([]byte, error) {
	u, err := url.Parse(source)
	if err != nil {
		return nil, err
	}
	if u.IsAbs() {
		resp, err := http.Get(u.String())
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != 200 {
			return nil, fmt.Errorf("%v", http.StatusText(resp.StatusCode))
		}
		return b, nil
	}
	return os.ReadFile(u.Path)
}

func resolve(base, ref string) string {
	if filepath.IsAbs(ref) {
		return ref
	}
	if r, err := url.Parse(ref); err == nil {
		if r.IsAbs() {
			return ref
		}
		if b, err := url.Parse(base); err == nil && b.IsAbs() {
			return b.ResolveReference(r).String()
		}
	}
	return filepath.Join(filepath.Dir(base), ref)
}
