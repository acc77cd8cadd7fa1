// Copyright: This file is part of smvkit, released under https://github.com/LouvainVerificationLab/smvkit/blob/main/LICENSE

// Package ltl is a standalone toolkit for linear temporal logic formulas in
// an ASCII syntax: `[]` globally, `<>` eventually, `()` next, `U` until, `W`
// weak until, and the propositional connectives `! & | ^ => <=>`.
//
// Relational and arithmetic subexpressions are not decomposed: `a + b <= c`
// parses into one opaque Proposition atom. The temporal and propositional
// structure is what this package manipulates; atoms are payload text.
package ltl

import (
	"strings"

	"github.com/LouvainVerificationLab/smvkit/pkg/unique"
)

// Formula is an LTL syntax tree.
type Formula interface {
	// NNF returns the formula in negation normal form. With negated set,
	// it returns the NNF of the negation. In the result, Not appears only
	// directly above atoms.
	NNF(negated bool) Formula

	String() string

	prec() int
}

// Render precedence, loosest first. All binary connectives chain
// left-associatively.
const (
	precW = 1 + iota
	precU
	precImply
	precEquiv
	precXor
	precOr
	precAnd
	precUnary
	precAtom
)

// Constant is TRUE or FALSE.
type Constant struct {
	Text string
}

// True and False are the constant formulas.
var (
	True  = &Constant{Text: "TRUE"}
	False = &Constant{Text: "FALSE"}
)

func (c *Constant) String() string { return c.Text }
func (c *Constant) prec() int      { return precAtom }

func (c *Constant) NNF(negated bool) Formula {
	if !negated {
		return c
	}
	if c.Text == "TRUE" {
		return False
	}
	return True
}

// Proposition is an opaque atom: a variable name or a flattened relational
// or arithmetic expression such as `(a) + (b) <= (c)`.
type Proposition struct {
	Text string
}

func (p *Proposition) String() string { return p.Text }
func (p *Proposition) prec() int      { return precAtom }

func (p *Proposition) NNF(negated bool) Formula {
	if !negated {
		return p
	}
	return &Not{X: p}
}

// Not is negation.
type Not struct {
	X Formula
}

func (f *Not) String() string { return "!" + paren(f.X, precUnary) }
func (f *Not) prec() int      { return precUnary }

func (f *Not) NNF(negated bool) Formula {
	// double negation cancels
	return f.X.NNF(!negated)
}

// And is conjunction.
type And struct {
	L, R Formula
}

func (f *And) String() string { return binary(f.L, "&", f.R, precAnd) }
func (f *And) prec() int      { return precAnd }

func (f *And) NNF(negated bool) Formula {
	if !negated {
		return &And{L: f.L.NNF(false), R: f.R.NNF(false)}
	}
	return &Or{L: f.L.NNF(true), R: f.R.NNF(true)}
}

// Or is disjunction.
type Or struct {
	L, R Formula
}

func (f *Or) String() string { return binary(f.L, "|", f.R, precOr) }
func (f *Or) prec() int      { return precOr }

func (f *Or) NNF(negated bool) Formula {
	if !negated {
		return &Or{L: f.L.NNF(false), R: f.R.NNF(false)}
	}
	return &And{L: f.L.NNF(true), R: f.R.NNF(true)}
}

// Xor is exclusive disjunction.
type Xor struct {
	L, R Formula
}

func (f *Xor) String() string { return binary(f.L, "^", f.R, precXor) }
func (f *Xor) prec() int      { return precXor }

func (f *Xor) NNF(negated bool) Formula {
	if !negated {
		return &Xor{L: f.L.NNF(false), R: f.R.NNF(false)}
	}
	// p ^ q <=> (p | q) & !(p & q)
	rewrite := &And{
		L: &Or{L: f.L, R: f.R},
		R: &Not{X: &And{L: f.L, R: f.R}},
	}
	return rewrite.NNF(negated)
}

// Imply is implication.
type Imply struct {
	L, R Formula
}

func (f *Imply) String() string { return binary(f.L, "=>", f.R, precImply) }
func (f *Imply) prec() int      { return precImply }

func (f *Imply) NNF(negated bool) Formula {
	or := &Or{L: &Not{X: f.L}, R: f.R}
	return or.NNF(negated)
}

// Equiv is logical equivalence.
type Equiv struct {
	L, R Formula
}

func (f *Equiv) String() string { return binary(f.L, "<=>", f.R, precEquiv) }
func (f *Equiv) prec() int      { return precEquiv }

func (f *Equiv) NNF(negated bool) Formula {
	and := &And{
		L: &Imply{L: f.L, R: f.R},
		R: &Imply{L: f.R, R: f.L},
	}
	return and.NNF(negated)
}

// Until is the strong until: the right side must eventually hold.
type Until struct {
	L, R Formula
}

func (f *Until) String() string { return binary(f.L, "U", f.R, precU) }
func (f *Until) prec() int      { return precU }

func (f *Until) NNF(negated bool) Formula {
	if !negated {
		return &Until{L: f.L.NNF(false), R: f.R.NNF(false)}
	}
	// pseudo duality: !(p U q) = (!q) W (!p & !q)
	phi := f.L.NNF(true)
	psi := f.R.NNF(true)
	return &WeakUntil{L: psi, R: &And{L: phi, R: psi}}
}

// WeakUntil is the weak until: the right side may never hold if the left
// side holds forever.
type WeakUntil struct {
	L, R Formula
}

func (f *WeakUntil) String() string { return binary(f.L, "W", f.R, precW) }
func (f *WeakUntil) prec() int      { return precW }

func (f *WeakUntil) NNF(negated bool) Formula {
	if !negated {
		return &WeakUntil{L: f.L.NNF(false), R: f.R.NNF(false)}
	}
	// pseudo duality: !(p W q) = (!q) U (!p & !q)
	phi := f.L.NNF(true)
	psi := f.R.NNF(true)
	return &Until{L: psi, R: &And{L: phi, R: psi}}
}

// Globally is [] p.
type Globally struct {
	X Formula
}

func (f *Globally) String() string { return "[]" + paren(f.X, precUnary) }
func (f *Globally) prec() int      { return precUnary }

func (f *Globally) NNF(negated bool) Formula {
	if !negated {
		return &Globally{X: f.X.NNF(false)}
	}
	return &Eventually{X: f.X.NNF(true)}
}

// Eventually is <> p.
type Eventually struct {
	X Formula
}

func (f *Eventually) String() string { return "<>" + paren(f.X, precUnary) }
func (f *Eventually) prec() int      { return precUnary }

func (f *Eventually) NNF(negated bool) Formula {
	if !negated {
		return &Eventually{X: f.X.NNF(false)}
	}
	return &Globally{X: f.X.NNF(true)}
}

// Next is () p. It is self-dual under negation.
type Next struct {
	X Formula
}

func (f *Next) String() string { return "()" + paren(f.X, precUnary) }
func (f *Next) prec() int      { return precUnary }

func (f *Next) NNF(negated bool) Formula {
	return &Next{X: f.X.NNF(negated)}
}

// Atoms returns the distinct proposition texts of f in first-appearance
// order. Constants are not atoms.
func Atoms(f Formula) []string {
	atoms := unique.NewList[string]()
	var walk func(Formula)
	walk = func(f Formula) {
		switch f := f.(type) {
		case *Proposition:
			atoms.Add(f.Text)
		case *Not:
			walk(f.X)
		case *Globally:
			walk(f.X)
		case *Eventually:
			walk(f.X)
		case *Next:
			walk(f.X)
		case *And:
			walk(f.L)
			walk(f.R)
		case *Or:
			walk(f.L)
			walk(f.R)
		case *Xor:
			walk(f.L)
			walk(f.R)
		case *Imply:
			walk(f.L)
			walk(f.R)
		case *Equiv:
			walk(f.L)
			walk(f.R)
		case *Until:
			walk(f.L)
			walk(f.R)
		case *WeakUntil:
			walk(f.L)
			walk(f.R)
		}
	}
	walk(f)
	return atoms.List
}

// binary renders a left-associative infix form with minimal parentheses.
func binary(l Formula, op string, r Formula, prec int) string {
	b := &strings.Builder{}
	b.WriteString(paren(l, prec))
	b.WriteString(" " + op + " ")
	b.WriteString(paren(r, prec+1))
	return b.String()
}

func paren(f Formula, min int) string {
	s := f.String()
	if f.prec() < min {
		return "(" + s + ")"
	}
	return s
}
