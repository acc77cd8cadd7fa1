// Copyright: This file is part of smvkit, released under https://github.com/LouvainVerificationLab/smvkit/blob/main/LICENSE

package analysis

import (
	"math/big"

	"github.com/LouvainVerificationLab/smvkit/pkg/smv"
)

// ModuleStats counts the declarations of one module.
type ModuleStats struct {
	Name       string         `json:"name"`
	StateVars  int            `json:"stateVars"`
	InputVars  int            `json:"inputVars"`
	FrozenVars int            `json:"frozenVars"`
	Defines    int            `json:"defines"`
	Instances  int            `json:"instances"`
	Fairness   int            `json:"fairness"`
	Specs      int            `json:"specs"`
	Domains    map[string]int `json:"domains,omitempty"` // variable name -> domain size
	// StateSpace is the product of the state-variable domain sizes, an
	// upper bound computed from declarations alone. Decimal string, since
	// it overflows int64 quickly.
	StateSpace string `json:"stateSpace"`
}

// Stats of a whole model.
type Stats struct {
	File    string        `json:"file,omitempty"`
	Modules []ModuleStats `json:"modules"`
}

// DomainSize returns the number of values in a declared domain, 0 when it is
// not a finite data domain (module instances).
func DomainSize(t smv.TypeExpr) int {
	switch t := t.(type) {
	case *smv.BoolType:
		return 2
	case *smv.EnumType:
		return len(t.Values)
	case *smv.RangeType:
		return t.Hi - t.Lo + 1
	}
	return 0
}

// NewStats computes declaration statistics for a parsed model.
func NewStats(model *smv.Model) *Stats {
	st := &Stats{File: model.File}
	for _, m := range model.Modules {
		st.Modules = append(st.Modules, moduleStats(m))
	}
	return st
}

func moduleStats(m *smv.ModuleDecl) ModuleStats {
	ms := ModuleStats{Name: m.Name, Domains: map[string]int{}}
	space := big.NewInt(1)
	for _, s := range m.Sections {
		switch s := s.(type) {
		case *smv.VarSection:
			for _, d := range s.Decls {
				if _, ok := d.Type.(*smv.InstanceType); ok {
					ms.Instances++
					continue
				}
				size := DomainSize(d.Type)
				ms.Domains[d.Name] = size
				switch s.Kind {
				case smv.VarInput:
					ms.InputVars++
				case smv.VarFrozen:
					ms.FrozenVars++
					space.Mul(space, big.NewInt(int64(size)))
				default:
					ms.StateVars++
					space.Mul(space, big.NewInt(int64(size)))
				}
			}
		case *smv.DefineSection:
			ms.Defines += len(s.Decls)
		case *smv.FairnessSection:
			ms.Fairness++
		case *smv.SpecSection:
			ms.Specs++
		}
	}
	ms.StateSpace = space.String()
	return ms
}
