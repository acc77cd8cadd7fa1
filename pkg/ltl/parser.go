// Copyright: This file is part of smvkit, released under https://github.com/LouvainVerificationLab/smvkit/blob/main/LICENSE

package ltl

import (
	"fmt"
	"strings"
)

// Parse reads a formula from the start of text. Trailing input that cannot
// extend the formula is ignored, matching the permissive behavior of the
// historical ASCII grammar this package implements.
func Parse(text string) (Formula, error) {
	p := &parser{src: text}
	f, err := p.formula(0)
	if err != nil {
		return nil, fmt.Errorf("parse LTL %q: %w", text, err)
	}
	return f, nil
}

type parser struct {
	src string
	pos int
}

// Binary connective levels, loosest first. All chain left-associatively.
var binaryLevels = []string{"W", "U", "=>", "<=>", "^", "|", "&"}

func (p *parser) formula(level int) (Formula, error) {
	if level == len(binaryLevels) {
		return p.unary()
	}
	left, err := p.formula(level + 1)
	if err != nil {
		return nil, err
	}
	op := binaryLevels[level]
	for p.acceptOp(op) {
		right, err := p.formula(level + 1)
		if err != nil {
			return nil, err
		}
		left = makeBinary(op, left, right)
	}
	return left, nil
}

func makeBinary(op string, l, r Formula) Formula {
	switch op {
	case "W":
		return &WeakUntil{L: l, R: r}
	case "U":
		return &Until{L: l, R: r}
	case "=>":
		return &Imply{L: l, R: r}
	case "<=>":
		return &Equiv{L: l, R: r}
	case "^":
		return &Xor{L: l, R: r}
	case "|":
		return &Or{L: l, R: r}
	}
	return &And{L: l, R: r}
}

func (p *parser) unary() (Formula, error) {
	p.skipSpace()
	switch {
	case p.acceptOp("!"):
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &Not{X: x}, nil
	case p.accept("[]"):
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &Globally{X: x}, nil
	case p.accept("<>"):
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &Eventually{X: x}, nil
	case p.accept("()"):
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &Next{X: x}, nil
	}
	return p.comparison()
}

// Arithmetic and relational expressions collapse into opaque Proposition
// atoms: each operand is wrapped in parentheses and the operator chain is
// kept flat, `a + b * c` becoming `(a) + ((b) * (c))`.

func (p *parser) comparison() (Formula, error) {
	return p.chain(p.shift, "<=", "<", ">=", ">", "=", "!=")
}

func (p *parser) shift() (Formula, error) {
	return p.chain(p.additive, "<<", ">>")
}

func (p *parser) additive() (Formula, error) {
	return p.chain(p.multiplicative, "+", "-")
}

func (p *parser) multiplicative() (Formula, error) {
	return p.chain(p.negation, "*", "/", "mod")
}

func (p *parser) negation() (Formula, error) {
	p.skipSpace()
	if p.acceptOp("-") {
		x, err := p.negation()
		if err != nil {
			return nil, err
		}
		text, err := p.atomText(x)
		if err != nil {
			return nil, err
		}
		return &Proposition{Text: "- " + text}, nil
	}
	return p.primary()
}

// chain parses a flat left-associative operator chain at one precedence
// level, flattening it into a single Proposition.
func (p *parser) chain(next func() (Formula, error), ops ...string) (Formula, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	var parts []string
	for {
		op := p.acceptAnyOp(ops)
		if op == "" {
			break
		}
		if parts == nil {
			text, err := p.atomText(left)
			if err != nil {
				return nil, err
			}
			parts = []string{text}
		}
		right, err := next()
		if err != nil {
			return nil, err
		}
		text, err := p.atomText(right)
		if err != nil {
			return nil, err
		}
		parts = append(parts, op, text)
	}
	if parts == nil {
		return left, nil
	}
	return &Proposition{Text: strings.Join(parts, " ")}, nil
}

// atomText renders a formula as a parenthesized arithmetic operand. Only
// atoms qualify; temporal or logical structure cannot sit under arithmetic.
func (p *parser) atomText(f Formula) (string, error) {
	switch f := f.(type) {
	case *Constant:
		return "(" + f.Text + ")", nil
	case *Proposition:
		return "(" + f.Text + ")", nil
	}
	return "", fmt.Errorf("offset %v: arithmetic over a temporal or logical subformula", p.pos)
}

func (p *parser) primary() (Formula, error) {
	p.skipSpace()
	if p.accept("(") {
		f, err := p.formula(0)
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if !p.accept(")") {
			return nil, fmt.Errorf("offset %v: missing )", p.pos)
		}
		return f, nil
	}
	name := p.scanAtom()
	if name == "" {
		return nil, fmt.Errorf("offset %v: expected a formula", p.pos)
	}
	if name == "TRUE" {
		return True, nil
	}
	if name == "FALSE" {
		return False, nil
	}
	if isNumber(name) {
		return &Constant{Text: name}, nil
	}
	return &Proposition{Text: name}, nil
}

func isNumber(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}

func isAtomStart(c byte) bool {
	return c == '_' || c == '@' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func isAtomPart(c byte) bool { return isAtomStart(c) || c == '.' }

func (p *parser) scanAtom() string {
	start := p.pos
	if p.pos < len(p.src) && isAtomStart(p.src[p.pos]) {
		for p.pos < len(p.src) && isAtomPart(p.src[p.pos]) {
			p.pos++
		}
	}
	return p.src[start:p.pos]
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t' || p.src[p.pos] == '\n' || p.src[p.pos] == '\r') {
		p.pos++
	}
}

// accept consumes s if the input starts with it.
func (p *parser) accept(s string) bool {
	if strings.HasPrefix(p.src[p.pos:], s) {
		p.pos += len(s)
		return true
	}
	return false
}

// acceptOp consumes op if it appears next and is not the prefix of a longer
// operator or word: `<` is refused before `<=`, `<<` and `<>`; `U` is
// refused before `Until_done`.
func (p *parser) acceptOp(op string) bool {
	p.skipSpace()
	rest := p.src[p.pos:]
	if !strings.HasPrefix(rest, op) {
		return false
	}
	tail := rest[len(op):]
	if isWord(op) {
		if tail != "" && isAtomPart(tail[0]) {
			return false
		}
	} else if tail != "" && extendsOp(op, tail[0]) {
		return false
	}
	p.pos += len(op)
	return true
}

func (p *parser) acceptAnyOp(ops []string) string {
	for _, op := range ops {
		if p.acceptOp(op) {
			return op
		}
	}
	return ""
}

func isWord(op string) bool {
	c := op[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// extendsOp reports whether c after op would form a different operator.
func extendsOp(op string, c byte) bool {
	switch op {
	case "<":
		return c == '=' || c == '<' || c == '>'
	case "<=":
		return c == '>' // <=>
	case ">":
		return c == '=' || c == '>'
	case "=":
		return c == '>' // =>
	case "!":
		return c == '=' // !=
	case "-":
		return false
	}
	return false
}
