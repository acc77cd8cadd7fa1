// Copyright: This file is part of smvkit, released under https://github.com/LouvainVerificationLab/smvkit/blob/main/LICENSE

package flatten

import (
	"fmt"

	"github.com/LouvainVerificationLab/smvkit/pkg/smv"
)

// renamer rewrites expressions of one module instance into the flat
// namespace: locally declared names get the instance prefix, parameters are
// replaced by their argument expressions, everything else (enum values,
// symbolic constants) passes through.
type renamer struct {
	prefix string
	locals map[string]bool
	subst  map[string]smv.Expr
}

func (r *renamer) ident(e *smv.Ident) (smv.Expr, error) {
	head, rest := splitDot(e.Name)
	if arg, ok := r.subst[head]; ok {
		if rest == "" {
			return arg, nil
		}
		// p.field is only meaningful when the argument names an instance
		if id, ok := arg.(*smv.Ident); ok {
			return &smv.Ident{NamePos: e.NamePos, Name: id.Name + "." + rest}, nil
		}
		return nil, fmt.Errorf("%v: %v: parameter %v is not an instance, cannot access %v",
			e.NamePos, e.Name, head, rest)
	}
	if r.locals[head] {
		return &smv.Ident{NamePos: e.NamePos, Name: r.prefix + e.Name}, nil
	}
	return e, nil
}

// expr returns a rewritten copy of e; subtrees without renamed identifiers
// are shared.
func (r *renamer) expr(e smv.Expr) (smv.Expr, error) {
	switch e := e.(type) {
	case *smv.Ident:
		return r.ident(e)

	case *smv.Number, *smv.BoolLit:
		return e, nil

	case *smv.SetExpr:
		elems, changed, err := r.exprs(e.Elems)
		if err != nil || !changed {
			return e, err
		}
		return &smv.SetExpr{Lbrace: e.Lbrace, Elems: elems}, nil

	case *smv.Unary:
		x, err := r.expr(e.X)
		if err != nil || x == e.X {
			return e, err
		}
		return &smv.Unary{OpPos: e.OpPos, Op: e.Op, X: x}, nil

	case *smv.Binary:
		x, err := r.expr(e.X)
		if err != nil {
			return nil, err
		}
		y, err := r.expr(e.Y)
		if err != nil {
			return nil, err
		}
		if x == e.X && y == e.Y {
			return e, nil
		}
		return &smv.Binary{OpPos: e.OpPos, Op: e.Op, X: x, Y: y}, nil

	case *smv.Ternary:
		cond, err := r.expr(e.Cond)
		if err != nil {
			return nil, err
		}
		then, err := r.expr(e.Then)
		if err != nil {
			return nil, err
		}
		els, err := r.expr(e.Else)
		if err != nil {
			return nil, err
		}
		if cond == e.Cond && then == e.Then && els == e.Else {
			return e, nil
		}
		return &smv.Ternary{Cond: cond, Then: then, Else: els}, nil

	case *smv.NextExpr:
		x, err := r.expr(e.X)
		if err != nil || x == e.X {
			return e, err
		}
		return &smv.NextExpr{KwPos: e.KwPos, X: x}, nil

	case *smv.CaseExpr:
		arms := make([]smv.CaseArm, len(e.Arms))
		changed := false
		for i, arm := range e.Arms {
			cond, err := r.expr(arm.Cond)
			if err != nil {
				return nil, err
			}
			val, err := r.expr(arm.Value)
			if err != nil {
				return nil, err
			}
			changed = changed || cond != arm.Cond || val != arm.Value
			arms[i] = smv.CaseArm{Cond: cond, Value: val}
		}
		if !changed {
			return e, nil
		}
		return &smv.CaseExpr{KwPos: e.KwPos, Arms: arms}, nil
	}
	return e, nil
}

func (r *renamer) exprs(es []smv.Expr) (out []smv.Expr, changed bool, err error) {
	out = make([]smv.Expr, len(es))
	for i, e := range es {
		if out[i], err = r.expr(e); err != nil {
			return nil, false, err
		}
		changed = changed || out[i] != e
	}
	return out, changed, nil
}

func splitDot(name string) (head, rest string) {
	for i := 0; i < len(name); i++ {
		if name[i] == '.' {
			return name[:i], name[i+1:]
		}
	}
	return name, ""
}
