// Copyright: This file is part of smvkit, released under https://github.com/LouvainVerificationLab/smvkit/blob/main/LICENSE

// Package parser parses SMV model-description source into the syntax tree of
// [github.com/LouvainVerificationLab/smvkit/pkg/smv].
//
// Expressions are parsed by precedence climbing. The operator ordering
// follows the NuSMV grammar; the LTL binary operators U and V sit between the
// relational operators and "&". CTL and LTL operator names (EX, AG, U, ...)
// are contextual: they are operators inside temporal assertion sections and
// ordinary identifiers everywhere else.
package parser

import (
	"fmt"
	"os"
	"strconv"

	"github.com/LouvainVerificationLab/smvkit/pkg/smv"
	"github.com/LouvainVerificationLab/smvkit/pkg/smv/scanner"
)

// ParseFile reads and parses one .smv file.
func ParseFile(path string) (*smv.Model, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(path, string(b))
}

// Parse parses SMV source text. file is used in positions and may be empty.
func Parse(file, src string) (model *smv.Model, err error) {
	p := newParser(file, src)
	defer p.recover(&err)
	model = p.parseModel()
	return model, nil
}

// ParseExpr parses a single expression with temporal operators enabled.
func ParseExpr(src string) (e smv.Expr, err error) {
	p := newParser("", src)
	defer p.recover(&err)
	e = p.parseExpr(0, true)
	p.expectEOF()
	return e, nil
}

type parser struct {
	scan     *scanner.Scanner
	tok      scanner.Token  // current token
	ahead    *scanner.Token // one-token lookahead, if peeked
	comments []string       // comments seen since the last declaration
}

func newParser(file, src string) *parser {
	p := &parser{scan: scanner.New(file, src)}
	p.next()
	return p
}

// parseError carries a parse failure through panic; recover() unwraps it.
type parseError struct{ err error }

func (p *parser) recover(err *error) {
	if r := recover(); r != nil {
		pe, ok := r.(parseError)
		if !ok {
			panic(r)
		}
		*err = pe.err
	}
}

func (p *parser) errorf(pos smv.Pos, format string, args ...any) {
	panic(parseError{fmt.Errorf("%v: %w", pos, fmt.Errorf(format, args...))})
}

func (p *parser) next() {
	for {
		var t scanner.Token
		if p.ahead != nil {
			t, p.ahead = *p.ahead, nil
		} else {
			t = p.scan.Next()
		}
		if t.Kind == scanner.Comment {
			p.comments = append(p.comments, t.Text)
			continue
		}
		if t.Kind == scanner.Illegal {
			p.errorf(t.Pos, "illegal character %q", t.Text)
		}
		p.tok = t
		return
	}
}

// peek returns the token after the current one, skipping comments.
func (p *parser) peek() scanner.Token {
	if p.ahead == nil {
		for {
			t := p.scan.Next()
			if t.Kind == scanner.Comment {
				p.comments = append(p.comments, t.Text)
				continue
			}
			p.ahead = &t
			break
		}
	}
	return *p.ahead
}

// takeDoc returns comments accumulated before the current declaration.
func (p *parser) takeDoc() []string {
	doc := p.comments
	p.comments = nil
	return doc
}

func (p *parser) expect(kind scanner.Kind) scanner.Token {
	if p.tok.Kind != kind {
		p.errorf(p.tok.Pos, "unexpected %v, expected %v", p.describe(), kind)
	}
	t := p.tok
	p.next()
	return t
}

func (p *parser) expectKeyword(kw string) scanner.Token {
	if !p.tok.Is(kw) {
		p.errorf(p.tok.Pos, "unexpected %v, expected %q", p.describe(), kw)
	}
	t := p.tok
	p.next()
	return t
}

func (p *parser) expectEOF() {
	if p.tok.Kind != scanner.EOF {
		p.errorf(p.tok.Pos, "unexpected %v after expression", p.describe())
	}
}

func (p *parser) describe() string {
	switch p.tok.Kind {
	case scanner.EOF:
		return "end of input"
	case scanner.Ident, scanner.Keyword, scanner.Number:
		return fmt.Sprintf("%q", p.tok.Text)
	}
	return p.tok.Kind.String()
}

// accept consumes the current token if it has the given kind.
func (p *parser) accept(kind scanner.Kind) bool {
	if p.tok.Kind == kind {
		p.next()
		return true
	}
	return false
}

func (p *parser) parseModel() *smv.Model {
	m := &smv.Model{File: p.tok.Pos.File}
	for p.tok.Kind != scanner.EOF {
		m.Modules = append(m.Modules, p.parseModule())
	}
	return m
}

func (p *parser) parseModule() *smv.ModuleDecl {
	doc := p.takeDoc()
	p.expectKeyword("MODULE")
	name := p.expect(scanner.Ident)
	d := &smv.ModuleDecl{Doc: doc, NamePos: name.Pos, Name: name.Text}
	if p.accept(scanner.LParen) {
		for {
			d.Params = append(d.Params, p.expect(scanner.Ident).Text)
			if !p.accept(scanner.Comma) {
				break
			}
		}
		p.expect(scanner.RParen)
	}
	for s := p.parseSection(); s != nil; s = p.parseSection() {
		d.Sections = append(d.Sections, s)
	}
	return d
}

// parseSection parses the next module section, or returns nil at the end of
// the module body.
func (p *parser) parseSection() smv.Section {
	if p.tok.Kind != scanner.Keyword {
		if p.tok.Kind == scanner.EOF {
			return nil
		}
		p.errorf(p.tok.Pos, "unexpected %v, expected a module section", p.describe())
	}
	kw := p.tok
	switch kw.Text {
	case "MODULE":
		return nil
	case "VAR":
		return p.parseVarSection(smv.VarState)
	case "IVAR":
		return p.parseVarSection(smv.VarInput)
	case "FROZENVAR":
		return p.parseVarSection(smv.VarFrozen)
	case "DEFINE":
		return p.parseDefineSection()
	case "CONSTANTS":
		return p.parseConstantsSection()
	case "ASSIGN":
		return p.parseAssignSection()
	case "INIT":
		return p.parseConstraintSection(smv.ConstraintInit)
	case "TRANS":
		return p.parseConstraintSection(smv.ConstraintTrans)
	case "INVAR":
		return p.parseConstraintSection(smv.ConstraintInvar)
	case "FAIRNESS", "JUSTICE":
		doc := p.takeDoc()
		p.next()
		s := &smv.FairnessSection{Doc: doc, KwPos: kw.Pos, Kind: smv.FairnessJustice, Keyword: kw.Text}
		s.Expr = p.parseExpr(0, false)
		p.accept(scanner.Semi)
		return s
	case "COMPASSION":
		doc := p.takeDoc()
		p.next()
		s := &smv.FairnessSection{Doc: doc, KwPos: kw.Pos, Kind: smv.FairnessCompassion, Keyword: kw.Text}
		p.expect(scanner.LParen)
		s.Expr = p.parseExpr(0, false)
		p.expect(scanner.Comma)
		s.Second = p.parseExpr(0, false)
		p.expect(scanner.RParen)
		p.accept(scanner.Semi)
		return s
	case "SPEC", "CTLSPEC":
		return p.parseSpecSection(kw, smv.SpecCTL, true)
	case "LTLSPEC":
		return p.parseSpecSection(kw, smv.SpecLTL, true)
	case "INVARSPEC":
		return p.parseSpecSection(kw, smv.SpecInvar, false)
	case "ISA":
		p.next()
		name := p.expect(scanner.Ident)
		p.accept(scanner.Semi)
		return &smv.IsaSection{KwPos: kw.Pos, Name: name.Text}
	}
	p.errorf(kw.Pos, "unexpected %q, expected a module section", kw.Text)
	return nil
}

func (p *parser) parseVarSection(kind smv.VarKind) *smv.VarSection {
	s := &smv.VarSection{KwPos: p.tok.Pos, Kind: kind}
	p.next()
	for p.tok.Kind == scanner.Ident {
		doc := p.takeDoc()
		name := p.expect(scanner.Ident)
		p.expect(scanner.Colon)
		typ := p.parseType()
		p.expect(scanner.Semi)
		s.Decls = append(s.Decls, &smv.VarDecl{Doc: doc, NamePos: name.Pos, Name: name.Text, Type: typ})
	}
	return s
}

func (p *parser) parseType() smv.TypeExpr {
	tok := p.tok
	switch {
	case tok.Is("boolean"):
		p.next()
		return &smv.BoolType{KwPos: tok.Pos}

	case tok.Kind == scanner.LBrace:
		p.next()
		t := &smv.EnumType{Lbrace: tok.Pos}
		for {
			t.Values = append(t.Values, p.parseEnumValue())
			if !p.accept(scanner.Comma) {
				break
			}
		}
		p.expect(scanner.RBrace)
		return t

	case tok.Kind == scanner.Number || tok.Kind == scanner.Minus:
		lo := p.parseInt()
		p.expect(scanner.DotDot)
		hi := p.parseInt()
		return &smv.RangeType{LoPos: tok.Pos, Lo: lo, Hi: hi}

	case tok.Kind == scanner.Ident:
		p.next()
		t := &smv.InstanceType{NamePos: tok.Pos, Module: tok.Text}
		if p.accept(scanner.LParen) {
			for {
				t.Args = append(t.Args, p.parseExpr(0, false))
				if !p.accept(scanner.Comma) {
					break
				}
			}
			p.expect(scanner.RParen)
		}
		return t
	}
	p.errorf(tok.Pos, "unexpected %v, expected a type", p.describe())
	return nil
}

func (p *parser) parseEnumValue() smv.EnumValue {
	tok := p.tok
	switch tok.Kind {
	case scanner.Ident:
		p.next()
		return smv.EnumValue{ValuePos: tok.Pos, Name: tok.Text}
	case scanner.Number, scanner.Minus:
		return smv.EnumValue{ValuePos: tok.Pos, Number: p.parseInt()}
	}
	p.errorf(tok.Pos, "unexpected %v, expected an enum value", p.describe())
	return smv.EnumValue{}
}

func (p *parser) parseInt() int {
	neg := p.accept(scanner.Minus)
	tok := p.expect(scanner.Number)
	n, err := strconv.Atoi(tok.Text)
	if err != nil {
		p.errorf(tok.Pos, "invalid number %q", tok.Text)
	}
	if neg {
		return -n
	}
	return n
}

func (p *parser) parseDefineSection() *smv.DefineSection {
	s := &smv.DefineSection{KwPos: p.tok.Pos}
	p.next()
	for p.tok.Kind == scanner.Ident {
		doc := p.takeDoc()
		name := p.expect(scanner.Ident)
		p.expect(scanner.Define)
		body := p.parseExpr(0, false)
		p.expect(scanner.Semi)
		s.Decls = append(s.Decls, &smv.DefineDecl{Doc: doc, NamePos: name.Pos, Name: name.Text, Body: body})
	}
	return s
}

func (p *parser) parseConstantsSection() *smv.ConstantsSection {
	s := &smv.ConstantsSection{KwPos: p.tok.Pos}
	p.next()
	for {
		s.Names = append(s.Names, p.expect(scanner.Ident).Text)
		if !p.accept(scanner.Comma) {
			break
		}
	}
	p.expect(scanner.Semi)
	return s
}

func (p *parser) parseAssignSection() *smv.AssignSection {
	s := &smv.AssignSection{KwPos: p.tok.Pos}
	p.next()
	for {
		var a *smv.Assign
		switch {
		case (p.tok.Is("init") || p.tok.Is("next")) && p.peek().Kind == scanner.LParen:
			doc := p.takeDoc()
			kw := p.tok
			kind := smv.AssignInit
			if kw.Text == "next" {
				kind = smv.AssignNext
			}
			p.next()
			p.expect(scanner.LParen)
			name := p.expect(scanner.Ident)
			p.expect(scanner.RParen)
			a = &smv.Assign{Doc: doc, LhsPos: kw.Pos, Kind: kind, Name: name.Text}
		case p.tok.Kind == scanner.Ident:
			doc := p.takeDoc()
			name := p.expect(scanner.Ident)
			a = &smv.Assign{Doc: doc, LhsPos: name.Pos, Kind: smv.AssignCurrent, Name: name.Text}
		default:
			return s
		}
		p.expect(scanner.Define)
		a.Rhs = p.parseExpr(0, false)
		p.expect(scanner.Semi)
		s.Assigns = append(s.Assigns, a)
	}
}

func (p *parser) parseConstraintSection(kind smv.ConstraintKind) *smv.ConstraintSection {
	doc := p.takeDoc()
	s := &smv.ConstraintSection{Doc: doc, KwPos: p.tok.Pos, Kind: kind}
	p.next()
	s.Expr = p.parseExpr(0, false)
	p.accept(scanner.Semi)
	return s
}

func (p *parser) parseSpecSection(kw scanner.Token, kind smv.SpecKind, temporal bool) *smv.SpecSection {
	doc := p.takeDoc()
	p.next()
	s := &smv.SpecSection{Doc: doc, KwPos: kw.Pos, Kind: kind, Keyword: kw.Text}
	s.Expr = p.parseExpr(0, temporal)
	p.accept(scanner.Semi)
	return s
}

// temporalUnary maps contextual CTL/LTL unary operator names.
var temporalUnary = map[string]smv.Op{
	"EX": smv.OpEX, "AX": smv.OpAX, "EF": smv.OpEF,
	"AF": smv.OpAF, "EG": smv.OpEG, "AG": smv.OpAG,
	"X": smv.OpX, "F": smv.OpF, "G": smv.OpG,
}

// binaryOp returns the operator for the current token, or opInvalid (zero).
func (p *parser) binaryOp(temporal bool) smv.Op {
	switch p.tok.Kind {
	case scanner.Star:
		return smv.OpTimes
	case scanner.Slash:
		return smv.OpDiv
	case scanner.Plus:
		return smv.OpPlus
	case scanner.Minus:
		return smv.OpMinus
	case scanner.Shl:
		return smv.OpLShift
	case scanner.Shr:
		return smv.OpRShift
	case scanner.Eq:
		return smv.OpEq
	case scanner.Neq:
		return smv.OpNe
	case scanner.Lt:
		return smv.OpLt
	case scanner.Gt:
		return smv.OpGt
	case scanner.Le:
		return smv.OpLe
	case scanner.Ge:
		return smv.OpGe
	case scanner.And:
		return smv.OpAnd
	case scanner.Or:
		return smv.OpOr
	case scanner.Arrow:
		return smv.OpImplies
	case scanner.DArrow:
		return smv.OpIff
	case scanner.Keyword:
		switch p.tok.Text {
		case "mod":
			return smv.OpMod
		case "union":
			return smv.OpUnion
		case "in":
			return smv.OpIn
		case "xor":
			return smv.OpXor
		case "xnor":
			return smv.OpXnor
		}
	case scanner.Ident:
		if temporal {
			switch p.tok.Text {
			case "U":
				return smv.OpU
			case "V":
				return smv.OpV
			}
		}
	}
	return 0
}

// parseExpr parses an expression whose binary operators all bind at least as
// tightly as minPrec.
func (p *parser) parseExpr(minPrec int, temporal bool) smv.Expr {
	lhs := p.parseUnary(temporal)
	for {
		if p.tok.Kind == scanner.Quest && smv.PrecTernary >= minPrec {
			p.next()
			then := p.parseExpr(smv.PrecTernary+1, temporal)
			p.expect(scanner.Colon)
			els := p.parseExpr(smv.PrecTernary, temporal)
			lhs = &smv.Ternary{Cond: lhs, Then: then, Else: els}
			continue
		}
		op := p.binaryOp(temporal)
		if op == 0 || op.Precedence() < minPrec {
			return lhs
		}
		opPos := p.tok.Pos
		p.next()
		next := op.Precedence() + 1
		if op.RightAssoc() {
			next = op.Precedence()
		}
		rhs := p.parseExpr(next, temporal)
		lhs = &smv.Binary{OpPos: opPos, Op: op, X: lhs, Y: rhs}
	}
}

func (p *parser) parseUnary(temporal bool) smv.Expr {
	tok := p.tok
	switch tok.Kind {
	case scanner.Not:
		p.next()
		return &smv.Unary{OpPos: tok.Pos, Op: smv.OpNot, X: p.parseUnary(temporal)}
	case scanner.Minus:
		p.next()
		return &smv.Unary{OpPos: tok.Pos, Op: smv.OpNeg, X: p.parseUnary(temporal)}
	case scanner.Ident:
		if temporal {
			if op, ok := temporalUnary[tok.Text]; ok {
				p.next()
				return &smv.Unary{OpPos: tok.Pos, Op: op, X: p.parseUnary(temporal)}
			}
			if (tok.Text == "E" || tok.Text == "A") && p.peek().Kind == scanner.LBrack {
				op := smv.OpEU
				if tok.Text == "A" {
					op = smv.OpAU
				}
				p.next()
				p.expect(scanner.LBrack)
				x := p.parseExpr(0, temporal)
				if p.tok.Kind != scanner.Ident || p.tok.Text != "U" {
					p.errorf(p.tok.Pos, "unexpected %v, expected %q", p.describe(), "U")
				}
				p.next()
				y := p.parseExpr(0, temporal)
				p.expect(scanner.RBrack)
				return &smv.Binary{OpPos: tok.Pos, Op: op, X: x, Y: y}
			}
		}
	}
	return p.parsePrimary(temporal)
}

func (p *parser) parsePrimary(temporal bool) smv.Expr {
	tok := p.tok
	switch tok.Kind {
	case scanner.LParen:
		p.next()
		e := p.parseExpr(0, temporal)
		p.expect(scanner.RParen)
		return e

	case scanner.LBrace:
		p.next()
		e := &smv.SetExpr{Lbrace: tok.Pos}
		for {
			e.Elems = append(e.Elems, p.parseExpr(0, temporal))
			if !p.accept(scanner.Comma) {
				break
			}
		}
		p.expect(scanner.RBrace)
		return e

	case scanner.Number:
		p.next()
		n, err := strconv.Atoi(tok.Text)
		if err != nil {
			p.errorf(tok.Pos, "invalid number %q", tok.Text)
		}
		return &smv.Number{ValuePos: tok.Pos, Value: n}

	case scanner.Ident:
		p.next()
		return &smv.Ident{NamePos: tok.Pos, Name: tok.Text}

	case scanner.Keyword:
		switch tok.Text {
		case "TRUE", "FALSE":
			p.next()
			return &smv.BoolLit{ValuePos: tok.Pos, Value: tok.Text == "TRUE"}
		case "next":
			p.next()
			p.expect(scanner.LParen)
			e := &smv.NextExpr{KwPos: tok.Pos, X: p.parseExpr(0, false)}
			p.expect(scanner.RParen)
			return e
		case "case":
			p.next()
			e := &smv.CaseExpr{KwPos: tok.Pos}
			for !p.tok.Is("esac") {
				cond := p.parseExpr(0, temporal)
				p.expect(scanner.Colon)
				value := p.parseExpr(0, temporal)
				p.expect(scanner.Semi)
				e.Arms = append(e.Arms, smv.CaseArm{Cond: cond, Value: value})
			}
			p.expectKeyword("esac")
			if len(e.Arms) == 0 {
				p.errorf(tok.Pos, "empty case expression")
			}
			return e
		case "self":
			p.next()
			return &smv.Ident{NamePos: tok.Pos, Name: "self"}
		}
	}
	p.errorf(tok.Pos, "unexpected %v, expected an expression", p.describe())
	return nil
}
