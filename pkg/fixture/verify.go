// Copyright: This file is part of smvkit, released under https://github.com/LouvainVerificationLab/smvkit/blob/main/LICENSE

package fixture

import (
	"fmt"
	"strings"

	"github.com/LouvainVerificationLab/smvkit/pkg/analysis"
	"github.com/LouvainVerificationLab/smvkit/pkg/smv"
	"github.com/LouvainVerificationLab/smvkit/pkg/smv/parser"
)

// Result of verifying one fixture against its expected outcome.
type Result struct {
	Fixture
	// Outcome is the actual validation outcome.
	Outcome Outcome `json:"outcome"`
	// Err is set when the fixture could not be read or parsed.
	Err error `json:"-"`
	// Error is the message of Err, for serialized results.
	Error       string               `json:"error,omitempty"`
	Diagnostics analysis.Diagnostics `json:"diagnostics,omitempty"`

	model *smv.Model
}

// Pass reports whether the actual outcome matched the expectation.
func (r *Result) Pass() bool { return r.Outcome == r.Expect }

// Model returns the parsed model, nil if parsing failed.
func (r *Result) Model() *smv.Model { return r.model }

// Stats returns declaration statistics for the fixture, nil if parsing failed.
func (r *Result) Stats() *analysis.Stats {
	if r.model == nil {
		return nil
	}
	return analysis.NewStats(r.model)
}

func (r *Result) String() string {
	status := "pass"
	if !r.Pass() {
		status = fmt.Sprintf("FAIL (want %v, got %v)", r.Expect, r.Outcome)
	}
	return fmt.Sprintf("%v: %v", r.Name, status)
}

// Verify parses and analyzes a fixture and compares the result with its
// expected outcome. A fixture is invalid if it fails to parse or if
// analysis reports at least one error; warnings alone keep it valid.
func Verify(f Fixture) *Result {
	r := &Result{Fixture: f, Outcome: OutcomeValid}
	if r.Expect == "" {
		r.Expect = OutcomeValid
	}
	model, err := parser.ParseFile(f.Path)
	if err != nil {
		r.Err = err
		r.Error = err.Error()
		r.Outcome = OutcomeInvalid
		return r
	}
	r.model = model
	r.Diagnostics = analysis.Analyze(model).Diagnostics
	if r.Diagnostics.HasErrors() {
		r.Outcome = OutcomeInvalid
	}
	return r
}

// Results of verifying a fixture list.
type Results []*Result

// VerifyAll verifies each fixture in turn.
func VerifyAll(fixtures []Fixture) Results {
	results := make(Results, 0, len(fixtures))
	for _, f := range fixtures {
		log.V(1).Info("Verifying fixture", "name", f.Name, "path", f.Path)
		results = append(results, Verify(f))
	}
	return results
}

// Failures returns the results that did not match their expectation.
func (rs Results) Failures() Results {
	var failed Results
	for _, r := range rs {
		if !r.Pass() {
			failed = append(failed, r)
		}
	}
	return failed
}

func (rs Results) String() string {
	w := &strings.Builder{}
	for _, r := range rs {
		fmt.Fprintln(w, r)
	}
	fmt.Fprintf(w, "%v fixtures, %v failed\n", len(rs), len(rs.Failures()))
	return w.String()
}
