// Copyright: This file is part of smvkit, released under https://github.com/LouvainVerificationLab/smvkit/blob/main/LICENSE

// Package flatten rewrites a multi-module model into a single synthetic main
// module: parameters are substituted by their instantiation arguments, the
// symbols of each instance get a dotted prefix, and ISA inclusions are
// inlined. The rewrite is purely syntactic.
package flatten

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/LouvainVerificationLab/smvkit/pkg/smv"
)

// Flatten returns a new single-module model equivalent to model. It fails on
// a missing main module, recursive instantiation, unknown instantiated
// modules and parameter arity mismatches; run analysis first for full
// diagnostics.
func Flatten(model *smv.Model) (*smv.Model, error) {
	byName := map[string]*smv.ModuleDecl{}
	for _, m := range model.Modules {
		byName[m.Name] = m
	}
	main, ok := byName[smv.MainModule]
	if !ok {
		return nil, fmt.Errorf("flatten %v: no %v module", model.File, smv.MainModule)
	}
	if cycle := instanceCycle(model, byName); cycle != nil {
		return nil, fmt.Errorf("flatten %v: recursive module instantiation: %v",
			model.File, cycle)
	}

	f := &flattener{modules: byName}
	if err := f.module(main, "", nil); err != nil {
		return nil, fmt.Errorf("flatten %v: %w", model.File, err)
	}
	return &smv.Model{File: model.File, Modules: []*smv.ModuleDecl{f.build(main)}}, nil
}

// instanceCycle returns a cycle in the module instantiation/ISA graph, nil
// if it is a DAG.
func instanceCycle(model *smv.Model, byName map[string]*smv.ModuleDecl) []string {
	g := simple.NewDirectedGraph()
	ids := map[string]int64{}
	names := map[int64]string{}
	node := func(name string) int64 {
		if id, ok := ids[name]; ok {
			return id
		}
		n := g.NewNode()
		g.AddNode(n)
		ids[name] = n.ID()
		names[n.ID()] = name
		return n.ID()
	}
	edge := func(from, to string) {
		if from == to {
			return
		}
		f, t := node(from), node(to)
		if g.Edge(f, t) == nil {
			g.SetEdge(g.NewEdge(g.Node(f), g.Node(t)))
		}
	}
	var selfRef string
	for _, m := range model.Modules {
		for _, s := range m.Sections {
			switch s := s.(type) {
			case *smv.VarSection:
				for _, d := range s.Decls {
					if inst, ok := d.Type.(*smv.InstanceType); ok {
						if inst.Module == m.Name {
							selfRef = m.Name
						}
						edge(m.Name, inst.Module)
					}
				}
			case *smv.IsaSection:
				if s.Name == m.Name {
					selfRef = m.Name
				}
				edge(m.Name, s.Name)
			}
		}
	}
	if selfRef != "" {
		return []string{selfRef}
	}
	if _, err := topo.Sort(g); err != nil {
		if u, ok := err.(topo.Unorderable); ok && len(u) > 0 {
			cycle := make([]string, len(u[0]))
			for i, n := range u[0] {
				cycle[i] = names[n.ID()]
			}
			sort.Strings(cycle)
			return cycle
		}
	}
	return nil
}

// flattener accumulates the sections of the synthetic main module.
type flattener struct {
	modules map[string]*smv.ModuleDecl

	vars     map[smv.VarKind][]*smv.VarDecl
	defines  []*smv.DefineDecl
	consts   []string
	assigns  []*smv.Assign
	trailing []smv.Section // constraints, fairness, specs in input order
}

// module flattens one module instance. prefix is "" for main itself or
// "path." for an instance; subst maps the module's parameters to expressions
// in the flat namespace.
func (f *flattener) module(m *smv.ModuleDecl, prefix string, subst map[string]smv.Expr) error {
	if f.vars == nil {
		f.vars = map[smv.VarKind][]*smv.VarDecl{}
	}
	locals := localNames(m)
	ren := &renamer{prefix: prefix, locals: locals, subst: subst}

	for _, s := range m.Sections {
		if err := f.section(s, prefix, ren); err != nil {
			return err
		}
	}
	return nil
}

func (f *flattener) section(s smv.Section, prefix string, ren *renamer) error {
	switch s := s.(type) {
	case *smv.VarSection:
		for _, d := range s.Decls {
			inst, ok := d.Type.(*smv.InstanceType)
			if !ok {
				f.vars[s.Kind] = append(f.vars[s.Kind], &smv.VarDecl{
					Doc: d.Doc, NamePos: d.NamePos, Name: prefix + d.Name, Type: d.Type,
				})
				continue
			}
			child, ok := f.modules[inst.Module]
			if !ok {
				return fmt.Errorf("%v: unknown module %v instantiated as %v%v",
					inst.NamePos, inst.Module, prefix, d.Name)
			}
			if len(inst.Args) != len(child.Params) {
				return fmt.Errorf("%v: module %v takes %v parameter(s), instance %v%v passes %v",
					inst.NamePos, inst.Module, len(child.Params), prefix, d.Name, len(inst.Args))
			}
			childSubst := map[string]smv.Expr{}
			for i, p := range child.Params {
				arg, err := ren.expr(inst.Args[i])
				if err != nil {
					return err
				}
				childSubst[p] = arg
			}
			if err := f.module(child, prefix+d.Name+".", childSubst); err != nil {
				return err
			}
		}

	case *smv.DefineSection:
		for _, d := range s.Decls {
			body, err := ren.expr(d.Body)
			if err != nil {
				return err
			}
			f.defines = append(f.defines, &smv.DefineDecl{
				Doc: d.Doc, NamePos: d.NamePos, Name: prefix + d.Name, Body: body,
			})
		}

	case *smv.ConstantsSection:
		f.consts = append(f.consts, s.Names...)

	case *smv.AssignSection:
		for _, a := range s.Assigns {
			rhs, err := ren.expr(a.Rhs)
			if err != nil {
				return err
			}
			f.assigns = append(f.assigns, &smv.Assign{
				Doc: a.Doc, LhsPos: a.LhsPos, Kind: a.Kind, Name: prefix + a.Name, Rhs: rhs,
			})
		}

	case *smv.ConstraintSection:
		e, err := ren.expr(s.Expr)
		if err != nil {
			return err
		}
		f.trailing = append(f.trailing, &smv.ConstraintSection{
			Doc: s.Doc, KwPos: s.KwPos, Kind: s.Kind, Expr: e,
		})

	case *smv.FairnessSection:
		e, err := ren.expr(s.Expr)
		if err != nil {
			return err
		}
		out := &smv.FairnessSection{
			Doc: s.Doc, KwPos: s.KwPos, Kind: s.Kind, Keyword: s.Keyword, Expr: e,
		}
		if s.Second != nil {
			if out.Second, err = ren.expr(s.Second); err != nil {
				return err
			}
		}
		f.trailing = append(f.trailing, out)

	case *smv.SpecSection:
		e, err := ren.expr(s.Expr)
		if err != nil {
			return err
		}
		f.trailing = append(f.trailing, &smv.SpecSection{
			Doc: s.Doc, KwPos: s.KwPos, Kind: s.Kind, Keyword: s.Keyword, Expr: e,
		})

	case *smv.IsaSection:
		inc, ok := f.modules[s.Name]
		if !ok {
			return fmt.Errorf("%v: ISA of unknown module %v", s.KwPos, s.Name)
		}
		// textual inclusion into the same namespace
		incRen := &renamer{prefix: ren.prefix, locals: localNames(inc), subst: nil}
		for k := range ren.locals {
			incRen.locals[k] = true
		}
		for _, is := range inc.Sections {
			if err := f.section(is, ren.prefix, incRen); err != nil {
				return err
			}
		}
	}
	return nil
}

// build assembles the collected declarations into one module.
func (f *flattener) build(main *smv.ModuleDecl) *smv.ModuleDecl {
	out := &smv.ModuleDecl{Doc: main.Doc, NamePos: main.NamePos, Name: smv.MainModule}
	for _, kind := range []smv.VarKind{smv.VarState, smv.VarInput, smv.VarFrozen} {
		if decls := f.vars[kind]; len(decls) > 0 {
			out.Sections = append(out.Sections, &smv.VarSection{Kind: kind, Decls: decls})
		}
	}
	if len(f.consts) > 0 {
		out.Sections = append(out.Sections, &smv.ConstantsSection{Names: f.consts})
	}
	if len(f.defines) > 0 {
		out.Sections = append(out.Sections, &smv.DefineSection{Decls: f.defines})
	}
	if len(f.assigns) > 0 {
		out.Sections = append(out.Sections, &smv.AssignSection{Assigns: f.assigns})
	}
	out.Sections = append(out.Sections, f.trailing...)
	return out
}

// localNames collects the names a module declares, the ones a dotted prefix
// applies to. Symbolic constants and enum values stay unprefixed.
func localNames(m *smv.ModuleDecl) map[string]bool {
	names := map[string]bool{}
	for _, s := range m.Sections {
		switch s := s.(type) {
		case *smv.VarSection:
			for _, d := range s.Decls {
				names[d.Name] = true
			}
		case *smv.DefineSection:
			for _, d := range s.Decls {
				names[d.Name] = true
			}
		}
	}
	return names
}
