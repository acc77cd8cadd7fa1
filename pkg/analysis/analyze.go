// Copyright: This file is part of smvkit, released under https://github.com/LouvainVerificationLab/smvkit/blob/main/LICENSE

package analysis

import (
	"github.com/LouvainVerificationLab/smvkit/pkg/smv"
)

// ModuleInfo is the analysis output for one module.
type ModuleInfo struct {
	Scope *Scope
	Deps  *DepGraph
}

// Result of analyzing one model.
type Result struct {
	Model       *smv.Model
	Modules     map[string]*ModuleInfo
	Diagnostics Diagnostics
}

// Analyze resolves and validates a parsed model. The returned result always
// carries the symbol tables and dependency graphs that could be built;
// callers decide what Error-severity diagnostics mean for them.
func Analyze(model *smv.Model) *Result {
	r := &Result{Model: model, Modules: map[string]*ModuleInfo{}}

	// module table, catching duplicates
	byName := map[string]*smv.ModuleDecl{}
	for _, m := range model.Modules {
		if prev, ok := byName[m.Name]; ok {
			r.Diagnostics.errorf(m.NamePos, CodeDupModule,
				"module %v redeclared, previous declaration at %v", m.Name, prev.NamePos)
			continue
		}
		byName[m.Name] = m
	}

	for _, m := range model.Modules {
		if byName[m.Name] != m {
			continue // duplicate, already reported
		}
		a := &moduleAnalyzer{
			module:  m,
			modules: byName,
			diags:   &r.Diagnostics,
		}
		r.Modules[m.Name] = a.run()
	}

	r.Diagnostics.sort()
	return r
}

type moduleAnalyzer struct {
	module  *smv.ModuleDecl
	modules map[string]*smv.ModuleDecl
	diags   *Diagnostics

	scope   *Scope
	checker *checker
	deps    *depBuilder

	// per-phase assignment bookkeeping
	assigned map[smv.AssignKind]map[string]*smv.Assign
}

func (a *moduleAnalyzer) run() *ModuleInfo {
	a.scope = buildScope(a.module, a.diags)
	a.checker = newChecker(a.scope, a.diags)
	a.deps = &depBuilder{graph: newDepGraph(a.module.Name), scope: a.scope}
	a.assigned = map[smv.AssignKind]map[string]*smv.Assign{
		smv.AssignCurrent: {}, smv.AssignInit: {}, smv.AssignNext: {},
	}

	a.checkInstantiations()
	for _, s := range a.module.Sections {
		a.section(s)
	}
	a.checkAssignConflicts()
	for _, cycle := range a.deps.graph.Cycles() {
		a.diags.errorf(a.cyclePos(cycle), CodeCircular,
			"circular assignment dependency in module %v: %v",
			a.module.Name, joinCycle(cycle))
	}
	a.lint()

	return &ModuleInfo{Scope: a.scope, Deps: a.deps.graph}
}

// checkInstantiations validates module-instance declarations against the
// module table.
func (a *moduleAnalyzer) checkInstantiations() {
	for _, sym := range a.scope.Symbols {
		inst, ok := sym.Type.(*smv.InstanceType)
		if !ok {
			continue
		}
		decl, ok := a.modules[inst.Module]
		if !ok {
			a.diags.errorf(inst.NamePos, CodeUnknownModule,
				"unknown module %v instantiated as %v", inst.Module, sym.Name)
			continue
		}
		if len(inst.Args) != len(decl.Params) {
			a.diags.errorf(inst.NamePos, CodeArity,
				"module %v takes %v parameter(s), instance %v passes %v",
				inst.Module, len(decl.Params), sym.Name, len(inst.Args))
		}
		for _, arg := range inst.Args {
			a.checker.check(arg, exprContext{where: "module instantiation"})
		}
	}
}

func (a *moduleAnalyzer) section(s smv.Section) {
	switch s := s.(type) {
	case *smv.VarSection, *smv.ConstantsSection, *smv.IsaSection:
		// declarations handled by buildScope; ISA resolution happens in
		// the flattener

	case *smv.DefineSection:
		for _, d := range s.Decls {
			if sym := a.scope.Symbols[d.Name]; sym != nil && sym.Kind == SymDefine {
				a.checker.defineValue(sym)
				a.deps.define(sym)
			}
		}

	case *smv.AssignSection:
		for _, asg := range s.Assigns {
			a.assign(asg)
		}

	case *smv.ConstraintSection:
		ctx := exprContext{where: s.Kind.String(), allowNext: s.Kind == smv.ConstraintTrans}
		v := a.checker.check(s.Expr, ctx)
		a.checker.want(s.Expr.Pos(), v, vBool, s.Kind.String()+" constraint")

	case *smv.FairnessSection:
		ctx := exprContext{where: s.Keyword}
		v := a.checker.check(s.Expr, ctx)
		a.checker.want(s.Expr.Pos(), v, vBool, s.Keyword+" constraint")
		if s.Second != nil {
			v := a.checker.check(s.Second, ctx)
			a.checker.want(s.Second.Pos(), v, vBool, s.Keyword+" constraint")
		}

	case *smv.SpecSection:
		ctx := exprContext{where: s.Keyword, temporal: s.Kind != smv.SpecInvar}
		v := a.checker.check(s.Expr, ctx)
		a.checker.want(s.Expr.Pos(), v, vBool, s.Keyword+" assertion")
	}
}

func (a *moduleAnalyzer) assign(asg *smv.Assign) {
	sym := a.scope.Lookup(asg.Name)
	switch {
	case sym == nil:
		a.diags.errorf(asg.LhsPos, CodeAssignUnknown,
			"assignment to undeclared variable %v in module %v", asg.Name, a.module.Name)
	case sym.Kind == SymInput:
		a.diags.errorf(asg.LhsPos, CodeAssignInput,
			"input variable %v cannot be assigned", asg.Name)
	case sym.Kind != SymState && sym.Kind != SymFrozen:
		a.diags.errorf(asg.LhsPos, CodeAssignUnknown,
			"%v is a %v, only state variables can be assigned", asg.Name, sym.Kind)
	}

	if prev, ok := a.assigned[asg.Kind][asg.Name]; ok {
		a.diags.errorf(asg.LhsPos, CodeAssignDup,
			"%v assigned twice in the same phase, previous assignment at %v",
			asg.Name, prev.LhsPos)
	} else {
		a.assigned[asg.Kind][asg.Name] = asg
	}
	if asg.Kind == smv.AssignCurrent {
		for _, k := range []smv.AssignKind{smv.AssignInit, smv.AssignNext} {
			if prev, ok := a.assigned[k][asg.Name]; ok {
				a.diags.errorf(asg.LhsPos, CodeAssignDup,
					"%v has both a current-state and a phased assignment (see %v)",
					asg.Name, prev.LhsPos)
			}
		}
	} else if prev, ok := a.assigned[smv.AssignCurrent][asg.Name]; ok {
		a.diags.errorf(asg.LhsPos, CodeAssignDup,
			"%v has both a current-state and a phased assignment (see %v)",
			asg.Name, prev.LhsPos)
	}

	ctx := exprContext{where: "ASSIGN", allowNext: asg.Kind == smv.AssignNext}
	v := a.checker.check(asg.Rhs, ctx)
	if sym != nil && sym.Type != nil {
		a.checkDomain(asg, sym, v)
	}
	a.deps.assign(asg)
}

// checkDomain validates an assignment right-hand side against the declared
// domain of the variable.
func (a *moduleAnalyzer) checkDomain(asg *smv.Assign, sym *Symbol, got value) {
	want := declaredValue(sym.Type)
	rhs := got
	if rhs.kind == vSet {
		// non-deterministic choice: the element type must fit
		rhs = value{kind: vUnknown, syms: got.syms}
		if len(got.syms) > 0 {
			rhs.kind = vSym
		}
	}
	if !compatible(want, rhs) {
		a.diags.errorf(asg.Rhs.Pos(), CodeType,
			"assignment to %v : %v has incompatible type %v", asg.Name, sym.Type, rhs.kind)
		return
	}
	// symbolic literals must belong to the declared domain
	if enum, ok := sym.Type.(*smv.EnumType); ok && len(rhs.syms) > 0 {
		domain := map[string]bool{}
		for _, v := range enum.Values {
			if !v.IsNumber() {
				domain[v.Name] = true
			}
		}
		for _, s := range rhs.syms {
			if !domain[s] {
				a.diags.errorf(asg.Rhs.Pos(), CodeType,
					"value %v is not in the domain of %v : %v", s, asg.Name, sym.Type)
			}
		}
	}
}

// checkAssignConflicts flags variables constrained both by ASSIGN and by a
// raw INIT/TRANS constraint.
func (a *moduleAnalyzer) checkAssignConflicts() {
	for _, s := range a.module.Sections {
		cs, ok := s.(*smv.ConstraintSection)
		if !ok {
			continue
		}
		current, next := referenced(cs.Expr)
		switch cs.Kind {
		case smv.ConstraintInit:
			for _, name := range current {
				if asg, ok := a.assigned[smv.AssignInit][name]; ok {
					a.diags.warnf(cs.KwPos, CodeAssignConflict,
						"%v is constrained by both init(%v) at %v and this INIT section",
						name, name, asg.LhsPos)
				}
			}
		case smv.ConstraintTrans:
			for _, name := range next {
				if asg, ok := a.assigned[smv.AssignNext][name]; ok {
					a.diags.warnf(cs.KwPos, CodeAssignConflict,
						"%v is constrained by both next(%v) at %v and this TRANS section",
						name, name, asg.LhsPos)
				}
			}
		}
	}
}

func (a *moduleAnalyzer) cyclePos(cycle []string) smv.Pos {
	if sym := a.scope.Symbols[cycle[0]]; sym != nil {
		return sym.Pos
	}
	return a.module.NamePos
}
