// Copyright: This file is part of smvkit, released under https://github.com/LouvainVerificationLab/smvkit/blob/main/LICENSE

package rest

import (
	"encoding/json"

	"github.com/LouvainVerificationLab/smvkit/pkg/analysis"
	"github.com/LouvainVerificationLab/smvkit/pkg/fixture"
)

// Array is a slice that serializes to JSON as '[]' not 'null' for a nil value.
type Array[T any] []T

func (a Array[T]) MarshalJSON() ([]byte, error) {
	if a == nil {
		return json.Marshal([]T{})
	}
	return json.Marshal([]T(a))
}

// FixtureStatus is a fixture with its verification status.
type FixtureStatus struct {
	fixture.Fixture
	// Outcome is the actual validation outcome.
	Outcome fixture.Outcome `json:"outcome"`
	// Pass is true when Outcome matches the expected outcome.
	Pass bool `json:"pass"`
}

// FixtureDetail adds source text and diagnostics to a fixture status.
type FixtureDetail struct {
	FixtureStatus
	Source      string                     `json:"source"`
	Error       string                     `json:"error,omitempty"`
	Diagnostics Array[analysis.Diagnostic] `json:"diagnostics"`
}

// ValidateResponse reports validation of a posted SMV source.
type ValidateResponse struct {
	Valid       bool                       `json:"valid"`
	Error       string                     `json:"error,omitempty"`
	Diagnostics Array[analysis.Diagnostic] `json:"diagnostics"`
}

// NNFResponse carries a formula rewritten in negation normal form.
type NNFResponse struct {
	Formula string        `json:"formula"`
	NNF     string        `json:"nnf"`
	Atoms   Array[string] `json:"atoms"`
}
