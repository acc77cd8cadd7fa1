// Copyright: This file is part of smvkit, released under https://github.com/LouvainVerificationLab/smvkit/blob/main/LICENSE

package smv

import (
	"fmt"
	"strings"
)

// ExprString renders an expression in canonical concrete syntax with minimal
// parentheses. Two expressions with equal ExprString parse to equal trees.
func ExprString(e Expr) string {
	b := &strings.Builder{}
	writeExpr(b, e, 0)
	return b.String()
}

// writeExpr writes e, parenthesizing it if its top operator binds looser
// than the surrounding precedence.
func writeExpr(b *strings.Builder, e Expr, outer int) {
	switch e := e.(type) {
	case *Ident:
		b.WriteString(e.Name)
	case *Number:
		fmt.Fprintf(b, "%d", e.Value)
	case *BoolLit:
		if e.Value {
			b.WriteString("TRUE")
		} else {
			b.WriteString("FALSE")
		}
	case *SetExpr:
		b.WriteByte('{')
		for i, el := range e.Elems {
			if i > 0 {
				b.WriteString(", ")
			}
			writeExpr(b, el, 0)
		}
		b.WriteByte('}')
	case *NextExpr:
		b.WriteString("next(")
		writeExpr(b, e.X, 0)
		b.WriteByte(')')
	case *Unary:
		paren := outer > PrecUnary
		if paren {
			b.WriteByte('(')
		}
		b.WriteString(e.Op.String())
		if e.Op.Temporal() {
			b.WriteByte(' ')
		}
		writeExpr(b, e.X, PrecUnary)
		if paren {
			b.WriteByte(')')
		}
	case *Binary:
		switch e.Op {
		case OpEU, OpAU:
			b.WriteString(e.Op.String()[:1]) // E or A
			b.WriteString(" [")
			writeExpr(b, e.X, 0)
			b.WriteString(" U ")
			writeExpr(b, e.Y, 0)
			b.WriteString("]")
			return
		}
		prec := e.Op.Precedence()
		paren := outer > prec
		if paren {
			b.WriteByte('(')
		}
		lp, rp := prec, prec+1
		if e.Op.RightAssoc() {
			lp, rp = prec+1, prec
		}
		writeExpr(b, e.X, lp)
		fmt.Fprintf(b, " %v ", e.Op)
		writeExpr(b, e.Y, rp)
		if paren {
			b.WriteByte(')')
		}
	case *Ternary:
		paren := outer > PrecTernary
		if paren {
			b.WriteByte('(')
		}
		writeExpr(b, e.Cond, PrecTernary+1)
		b.WriteString(" ? ")
		writeExpr(b, e.Then, PrecTernary+1)
		b.WriteString(" : ")
		writeExpr(b, e.Else, PrecTernary)
		if paren {
			b.WriteByte(')')
		}
	case *CaseExpr:
		b.WriteString("case ")
		for _, arm := range e.Arms {
			writeExpr(b, arm.Cond, 0)
			b.WriteString(" : ")
			writeExpr(b, arm.Value, 0)
			b.WriteString("; ")
		}
		b.WriteString("esac")
	default:
		fmt.Fprintf(b, "%v", e)
	}
}
