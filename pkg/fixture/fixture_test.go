// Copyright: This file is part of smvkit, released under https://github.com/LouvainVerificationLab/smvkit/blob/main/LICENSE

package fixture_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LouvainVerificationLab/smvkit/pkg/fixture"
)

const validSMV = `
MODULE main
VAR
    b : boolean;
ASSIGN
    init(b) := FALSE;
    next(b) := !b;
`

const invalidSMV = `
MODULE main
VAR
    b : boolean;
ASSIGN
    init(c) := FALSE;
    next(b) := !b;
`

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func names(fixtures []fixture.Fixture) []string {
	var ns []string
	for _, f := range fixtures {
		ns = append(ns, f.Name)
	}
	return ns
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "b.smv", validSMV)
	write(t, dir, "sub/a.smv", validSMV)
	write(t, dir, "sub/notes.txt", "not a fixture")
	one := write(t, dir, "one.smv", validSMV)

	fixtures, err := fixture.Load(dir, one) // one.smv given twice, once via dir
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "one", "a"}, names(fixtures))
	for _, f := range fixtures {
		assert.Equal(t, fixture.OutcomeValid, f.Expect)
	}
}

func TestLoad_DuplicateNames(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "x/clock.smv", validSMV)
	write(t, dir, "y/clock.smv", validSMV)

	fixtures, err := fixture.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"clock", "y-clock"}, names(fixtures))
}

func TestLoad_MissingPath(t *testing.T) {
	_, err := fixture.Load(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestManifest(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "good/flip.smv", validSMV)
	write(t, dir, "bad/dangling.smv", invalidSMV)
	write(t, dir, "bad/extra.yaml", `
groups:
  - name: broken
    expect: invalid
    notes: analysis must reject these
    files: [dangling.smv]
`)
	main := write(t, dir, "fixtures.yaml", `
more:
  - bad/extra.yaml
groups:
  - name: good
    files: [good]
`)

	manifests, err := fixture.LoadManifest(main)
	require.NoError(t, err)
	require.Len(t, manifests, 2)

	fixtures, err := manifests.Fixtures()
	require.NoError(t, err)
	require.Equal(t, []string{"dangling", "flip"}, names(fixtures))
	assert.Equal(t, fixture.Fixture{
		Name:   "dangling",
		Path:   filepath.Join(dir, "bad", "dangling.smv"),
		Group:  "broken",
		Expect: fixture.OutcomeInvalid,
		Notes:  "analysis must reject these",
	}, fixtures[0])
	assert.Equal(t, fixture.OutcomeValid, fixtures[1].Expect)
}

func TestManifest_Errors(t *testing.T) {
	dir := t.TempDir()
	for _, x := range []struct{ name, yaml, want string }{
		{"bad-expect", "groups:\n  - name: g\n    expect: maybe\n    files: [a.smv]\n", "invalid expect"},
		{"no-name", "groups:\n  - files: [a.smv]\n", "has no name"},
		{"missing-include", "more: [nowhere.yaml]\n", "nowhere.yaml"},
	} {
		t.Run(x.name, func(t *testing.T) {
			path := write(t, dir, x.name+".yaml", x.yaml)
			_, err := fixture.LoadManifest(path)
			require.Error(t, err)
			assert.ErrorContains(t, err, x.want)
		})
	}
}

func TestVerify(t *testing.T) {
	dir := t.TempDir()
	good := write(t, dir, "good.smv", validSMV)
	bad := write(t, dir, "bad.smv", invalidSMV)
	garbled := write(t, dir, "garbled.smv", "MODULE ???")

	r := fixture.Verify(fixture.Fixture{Name: "good", Path: good, Expect: fixture.OutcomeValid})
	assert.True(t, r.Pass())
	assert.Equal(t, fixture.OutcomeValid, r.Outcome)
	assert.NotNil(t, r.Model())
	assert.NotNil(t, r.Stats())

	r = fixture.Verify(fixture.Fixture{Name: "bad", Path: bad, Expect: fixture.OutcomeInvalid})
	assert.True(t, r.Pass(), "analysis errors expected: %v", r.Diagnostics)
	assert.True(t, r.Diagnostics.HasErrors())

	r = fixture.Verify(fixture.Fixture{Name: "garbled", Path: garbled, Expect: fixture.OutcomeValid})
	assert.False(t, r.Pass())
	assert.Error(t, r.Err)
	assert.Nil(t, r.Model())
	assert.Contains(t, r.String(), "FAIL (want valid, got invalid)")
}

func TestVerifyAll(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "good.smv", validSMV)
	write(t, dir, "bad.smv", invalidSMV)

	fixtures, err := fixture.Load(dir)
	require.NoError(t, err)
	results := fixture.VerifyAll(fixtures)
	require.Len(t, results, 2)
	failures := results.Failures()
	require.Len(t, failures, 1)
	assert.Equal(t, "bad", failures[0].Name)
	assert.Contains(t, results.String(), "2 fixtures, 1 failed")
}
