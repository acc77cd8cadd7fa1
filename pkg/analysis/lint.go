// Copyright: This file is part of smvkit, released under https://github.com/LouvainVerificationLab/smvkit/blob/main/LICENSE

package analysis

import (
	"github.com/LouvainVerificationLab/smvkit/pkg/smv"
)

// lint emits Warning-severity diagnostics after the error checks ran. Lint
// findings never make a model invalid.
func (a *moduleAnalyzer) lint() {
	for _, name := range a.scope.Names() {
		sym := a.scope.Symbols[name]
		if a.checker.used[name] {
			continue
		}
		switch sym.Kind {
		case SymDefine:
			a.diags.warnf(sym.Pos, CodeUnusedDefine,
				"define %v is never used in module %v", name, a.module.Name)
		case SymState, SymInput, SymFrozen:
			a.diags.warnf(sym.Pos, CodeUnusedVar,
				"%v %v is never read in module %v", sym.Kind, name, a.module.Name)
		}
	}

	a.lintUnreachedValues()

	for _, s := range a.module.Sections {
		if cs, ok := s.(*smv.ConstraintSection); ok && cs.Kind == smv.ConstraintTrans {
			if b, ok := cs.Expr.(*smv.BoolLit); ok && b.Value {
				a.diags.warnf(cs.KwPos, CodeEmptyTrans,
					"TRANS TRUE constrains nothing")
			}
		}
	}
}

// lintUnreachedValues warns when a symbolic value of an assigned enum
// variable never appears on any of its assignment right-hand sides: no run
// of the model can produce it.
func (a *moduleAnalyzer) lintUnreachedValues() {
	for _, name := range a.scope.Names() {
		sym := a.scope.Symbols[name]
		enum, ok := sym.Type.(*smv.EnumType)
		if !ok || sym.Kind != SymState {
			continue
		}
		var rhss []smv.Expr
		for _, kind := range []smv.AssignKind{smv.AssignCurrent, smv.AssignInit, smv.AssignNext} {
			if asg, ok := a.assigned[kind][name]; ok {
				rhss = append(rhss, asg.Rhs)
			}
		}
		if len(rhss) == 0 {
			continue // unconstrained or TRANS-constrained, anything is possible
		}
		produced := map[string]bool{}
		for _, rhs := range rhss {
			smv.Walk(rhs, func(n smv.Node) bool {
				if id, ok := n.(*smv.Ident); ok {
					produced[id.Name] = true
				}
				return true
			})
		}
		// self-reference keeps whatever the variable already holds
		if produced[name] {
			continue
		}
		for _, v := range enum.Values {
			if !v.IsNumber() && !produced[v.Name] {
				a.diags.warnf(sym.Pos, CodeUnreachedValue,
					"value %v of %v is never produced by its assignments", v.Name, name)
			}
		}
	}
}
