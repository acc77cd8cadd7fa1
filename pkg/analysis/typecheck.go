// Copyright: This file is part of smvkit, released under https://github.com/LouvainVerificationLab/smvkit/blob/main/LICENSE

package analysis

import (
	"github.com/LouvainVerificationLab/smvkit/pkg/smv"
)

// valueKind is the coarse type of an expression over finite domains.
type valueKind int

const (
	vUnknown valueKind = iota // unresolved, suppresses follow-on errors
	vBool
	vInt // range variables and integer arithmetic
	vSym // symbolic enum values
	vSet // set literal {a, b, c} or union expression
)

var valueKindNames = map[valueKind]string{
	vUnknown: "unknown", vBool: "boolean", vInt: "integer",
	vSym: "symbolic", vSet: "set",
}

func (k valueKind) String() string { return valueKindNames[k] }

// value is the inferred type of an expression. syms lists the possible
// symbolic values when known, nil meaning unconstrained.
type value struct {
	kind valueKind
	syms []string
}

func compatible(a, b value) bool {
	if a.kind == vUnknown || b.kind == vUnknown {
		return true
	}
	if a.kind == vSet || b.kind == vSet {
		return true // membership and union checked at the operator
	}
	return a.kind == b.kind
}

func merge(a, b value) value {
	if a.kind == vUnknown {
		return b
	}
	if b.kind == vUnknown {
		return a
	}
	if a.kind != b.kind {
		return value{kind: vUnknown}
	}
	if a.kind == vSym {
		return value{kind: vSym, syms: append(append([]string{}, a.syms...), b.syms...)}
	}
	return value{kind: a.kind}
}

// declaredValue maps a variable's declared domain to a value.
func declaredValue(t smv.TypeExpr) value {
	switch t := t.(type) {
	case *smv.BoolType:
		return value{kind: vBool}
	case *smv.RangeType:
		return value{kind: vInt}
	case *smv.EnumType:
		var syms []string
		numeric := false
		for _, v := range t.Values {
			if v.IsNumber() {
				numeric = true
			} else {
				syms = append(syms, v.Name)
			}
		}
		if len(syms) == 0 {
			return value{kind: vInt}
		}
		if numeric {
			return value{kind: vUnknown, syms: syms} // mixed domain, accept both
		}
		return value{kind: vSym, syms: syms}
	}
	return value{kind: vUnknown}
}

// checker type-checks expressions of one module scope and records symbol
// usage for the lint pass.
type checker struct {
	scope *Scope
	diags *Diagnostics
	used  map[string]bool
	// define bodies are checked once and memoized; expanding stops
	// self-reference recursion (the cycle itself is reported by the
	// dependency graph)
	defVals    map[string]value
	defHasNext map[string]bool
	expanding  map[string]bool
}

func newChecker(scope *Scope, diags *Diagnostics) *checker {
	return &checker{
		scope: scope, diags: diags, used: map[string]bool{},
		defVals: map[string]value{}, defHasNext: map[string]bool{},
		expanding: map[string]bool{},
	}
}

// defineValue type-checks a define body once, in a permissive context, and
// memoizes the result. Whether next() may actually appear is decided at each
// reference site.
func (c *checker) defineValue(sym *Symbol) value {
	if v, ok := c.defVals[sym.Name]; ok {
		return v
	}
	if c.expanding[sym.Name] {
		return value{kind: vUnknown}
	}
	c.expanding[sym.Name] = true
	v := c.check(sym.Body, exprContext{where: "DEFINE " + sym.Name, allowNext: true})
	delete(c.expanding, sym.Name)
	hasNext := false
	smv.Walk(sym.Body, func(n smv.Node) bool {
		if _, ok := n.(*smv.NextExpr); ok {
			hasNext = true
			return false
		}
		return true
	})
	c.defVals[sym.Name] = v
	c.defHasNext[sym.Name] = hasNext
	return v
}

// exprContext says what an expression may contain where it appears.
type exprContext struct {
	where     string // section name for messages
	allowNext bool   // next() permitted (TRANS, next-assignments)
	temporal  bool   // CTL/LTL operators permitted (spec sections)
	inNext    bool
}

// check infers the type of e, appending diagnostics for violations. Unknown
// is returned after an error so one mistake reports once.
func (c *checker) check(e smv.Expr, ctx exprContext) value {
	switch e := e.(type) {
	case *smv.Number:
		return value{kind: vInt}
	case *smv.BoolLit:
		return value{kind: vBool}

	case *smv.Ident:
		return c.checkIdent(e, ctx)

	case *smv.SetExpr:
		var elem value
		for _, x := range e.Elems {
			elem = merge(elem, c.check(x, ctx))
		}
		return value{kind: vSet, syms: elem.syms}

	case *smv.NextExpr:
		if !ctx.allowNext {
			c.diags.errorf(e.Pos(), CodeType, "next() is not allowed in %v", ctx.where)
		} else if ctx.inNext {
			c.diags.errorf(e.Pos(), CodeType, "nested next() is not allowed")
		}
		inner := ctx
		inner.inNext = true
		return c.check(e.X, inner)

	case *smv.Unary:
		v := c.check(e.X, ctx)
		switch e.Op {
		case smv.OpNot:
			c.want(e.X.Pos(), v, vBool, "operand of !")
			return value{kind: vBool}
		case smv.OpNeg:
			c.want(e.X.Pos(), v, vInt, "operand of unary -")
			return value{kind: vInt}
		default: // temporal
			if !ctx.temporal {
				c.diags.errorf(e.Pos(), CodeTemporal,
					"temporal operator %v is not allowed in %v", e.Op, ctx.where)
			}
			c.want(e.X.Pos(), v, vBool, "operand of "+e.Op.String())
			return value{kind: vBool}
		}

	case *smv.Binary:
		return c.checkBinary(e, ctx)

	case *smv.Ternary:
		c.want(e.Cond.Pos(), c.check(e.Cond, ctx), vBool, "condition of ?:")
		a := c.check(e.Then, ctx)
		b := c.check(e.Else, ctx)
		if !compatible(a, b) {
			c.diags.errorf(e.Pos(), CodeType,
				"branches of ?: have incompatible types %v and %v", a.kind, b.kind)
			return value{kind: vUnknown}
		}
		return merge(a, b)

	case *smv.CaseExpr:
		var out value
		for _, arm := range e.Arms {
			c.want(arm.Cond.Pos(), c.check(arm.Cond, ctx), vBool, "case condition")
			v := c.check(arm.Value, ctx)
			if !compatible(out, v) {
				c.diags.errorf(arm.Value.Pos(), CodeType,
					"case branches have incompatible types %v and %v", out.kind, v.kind)
				return value{kind: vUnknown}
			}
			out = merge(out, v)
		}
		return out
	}
	return value{kind: vUnknown}
}

func (c *checker) checkIdent(e *smv.Ident, ctx exprContext) value {
	name := e.Name
	if sym := c.scope.Lookup(name); sym != nil {
		c.used[sym.Name] = true
		switch sym.Kind {
		case SymState, SymInput, SymFrozen:
			return declaredValue(sym.Type)
		case SymDefine:
			v := c.defineValue(sym)
			if c.defHasNext[sym.Name] && !ctx.allowNext {
				c.diags.errorf(e.Pos(), CodeType,
					"define %v contains next() and cannot be used in %v", sym.Name, ctx.where)
			} else if c.defHasNext[sym.Name] && ctx.inNext {
				c.diags.errorf(e.Pos(), CodeType,
					"define %v contains next() and cannot be used inside next()", sym.Name)
			}
			return v
		case SymConstant, SymParam:
			return value{kind: vUnknown}
		case SymInstance:
			if name == sym.Name {
				c.diags.errorf(e.Pos(), CodeType,
					"module instance %v used as a value", name)
			}
			return value{kind: vUnknown} // cross-module typing happens after flattening
		}
	}
	if c.scope.IsEnumValue(name) {
		return value{kind: vSym, syms: []string{name}}
	}
	c.diags.errorf(e.Pos(), CodeUnknownIdent,
		"undeclared identifier %v in module %v", name, c.scope.Module.Name)
	return value{kind: vUnknown}
}

func (c *checker) checkBinary(e *smv.Binary, ctx exprContext) value {
	l := c.check(e.X, ctx)
	r := c.check(e.Y, ctx)
	switch e.Op {
	case smv.OpPlus, smv.OpMinus, smv.OpTimes, smv.OpDiv, smv.OpMod,
		smv.OpLShift, smv.OpRShift:
		c.want(e.X.Pos(), l, vInt, "operand of "+e.Op.String())
		c.want(e.Y.Pos(), r, vInt, "operand of "+e.Op.String())
		return value{kind: vInt}

	case smv.OpEq, smv.OpNe:
		if !compatible(l, r) {
			c.diags.errorf(e.Pos(), CodeType,
				"%v compares incompatible types %v and %v", e.Op, l.kind, r.kind)
		}
		return value{kind: vBool}

	case smv.OpLt, smv.OpGt, smv.OpLe, smv.OpGe:
		c.want(e.X.Pos(), l, vInt, "operand of "+e.Op.String())
		c.want(e.Y.Pos(), r, vInt, "operand of "+e.Op.String())
		return value{kind: vBool}

	case smv.OpIn:
		if r.kind != vSet && r.kind != vUnknown && !compatible(l, r) {
			c.diags.errorf(e.Pos(), CodeType,
				"right operand of in has type %v, want a set or compatible domain", r.kind)
		}
		return value{kind: vBool}

	case smv.OpUnion:
		return value{kind: vSet, syms: append(append([]string{}, l.syms...), r.syms...)}

	case smv.OpAnd, smv.OpOr, smv.OpXor, smv.OpXnor, smv.OpImplies, smv.OpIff:
		c.want(e.X.Pos(), l, vBool, "operand of "+e.Op.String())
		c.want(e.Y.Pos(), r, vBool, "operand of "+e.Op.String())
		return value{kind: vBool}

	default: // temporal U, V, EU, AU
		if !ctx.temporal {
			c.diags.errorf(e.Pos(), CodeTemporal,
				"temporal operator %v is not allowed in %v", e.Op, ctx.where)
		}
		c.want(e.X.Pos(), l, vBool, "operand of "+e.Op.String())
		c.want(e.Y.Pos(), r, vBool, "operand of "+e.Op.String())
		return value{kind: vBool}
	}
}

func (c *checker) want(pos smv.Pos, got value, kind valueKind, what string) {
	if got.kind != vUnknown && got.kind != kind {
		c.diags.errorf(pos, CodeType, "%v has type %v, want %v", what, got.kind, kind)
	}
}
