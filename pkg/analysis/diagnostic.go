// Copyright: This file is part of smvkit, released under https://github.com/LouvainVerificationLab/smvkit/blob/main/LICENSE

// Package analysis resolves symbols and statically validates parsed models:
// duplicate declarations, unknown identifiers, finite-domain type errors,
// assignment-rule violations and circular next-state dependencies.
//
// Analysis never enumerates states; everything here is arithmetic and graph
// structure over the declarations themselves.
package analysis

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/LouvainVerificationLab/smvkit/pkg/smv"
)

// Severity of a diagnostic.
type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}
	return "error"
}

func (s Severity) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }

func (s *Severity) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return err
	}
	switch name {
	case "warning":
		*s = Warning
	case "error":
		*s = Error
	default:
		return fmt.Errorf("invalid severity: %q", name)
	}
	return nil
}

// Diagnostic codes. Codes are stable identifiers for suppression and testing;
// messages are for humans.
const (
	CodeDupModule      = "dup-module"
	CodeDupSymbol      = "dup-symbol"
	CodeUnknownIdent   = "unknown-ident"
	CodeUnknownModule  = "unknown-module"
	CodeArity          = "arity"
	CodeType           = "type"
	CodeTemporal       = "temporal"
	CodeAssignDup      = "assign-dup"
	CodeAssignInput    = "assign-input"
	CodeAssignUnknown  = "assign-unknown"
	CodeAssignConflict = "assign-conflict"
	CodeCircular       = "circular"
	CodeUnusedDefine   = "unused-define"
	CodeUnusedVar      = "unused-var"
	CodeUnreachedValue = "unreached-value"
	CodeEmptyTrans     = "empty-trans"
)

// Diagnostic is one finding at a source position.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Pos      smv.Pos  `json:"pos"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%v: %v[%v]: %v", d.Pos, d.Severity, d.Code, d.Message)
}

// Diagnostics is a position-sorted list of findings.
type Diagnostics []Diagnostic

func (ds Diagnostics) String() string {
	lines := make([]string, len(ds))
	for i, d := range ds {
		lines[i] = d.String()
	}
	return strings.Join(lines, "\n")
}

// HasErrors reports whether any diagnostic has Error severity.
func (ds Diagnostics) HasErrors() bool {
	for _, d := range ds {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Errors returns only the Error-severity diagnostics.
func (ds Diagnostics) Errors() Diagnostics {
	var out Diagnostics
	for _, d := range ds {
		if d.Severity == Error {
			out = append(out, d)
		}
	}
	return out
}

func (ds Diagnostics) sort() {
	sort.SliceStable(ds, func(i, j int) bool {
		a, b := ds[i].Pos, ds[j].Pos
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Col < b.Col
	})
}

func (ds *Diagnostics) errorf(pos smv.Pos, code, format string, args ...any) {
	*ds = append(*ds, Diagnostic{Severity: Error, Pos: pos, Code: code, Message: fmt.Sprintf(format, args...)})
}

func (ds *Diagnostics) warnf(pos smv.Pos, code, format string, args ...any) {
	*ds = append(*ds, Diagnostic{Severity: Warning, Pos: pos, Code: code, Message: fmt.Sprintf(format, args...)})
}
