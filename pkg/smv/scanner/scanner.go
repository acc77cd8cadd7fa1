// Copyright: This file is part of smvkit, released under https://github.com/LouvainVerificationLab/smvkit/blob/main/LICENSE

// Package scanner tokenizes SMV model-description source text.
package scanner

import (
	"strings"

	"github.com/LouvainVerificationLab/smvkit/pkg/smv"
)

// Kind classifies a token.
type Kind int

const (
	EOF Kind = iota
	Illegal
	Comment // -- to end of line, text without the leading dashes

	Ident   // possibly dotted: p1.waiting
	Number  // integer literal
	Keyword // reserved word, Text holds the exact spelling

	LParen // (
	RParen // )
	LBrace // {
	RBrace // }
	LBrack // [
	RBrack // ]
	Semi   // ;
	Colon  // :
	Comma  // ,
	Quest  // ?
	Define // :=
	DotDot // ..
	Not    // !
	And    // &
	Or     // |
	Arrow  // ->
	DArrow // <->
	Eq     // =
	Neq    // !=
	Lt     // <
	Gt     // >
	Le     // <=
	Ge     // >=
	Shl    // <<
	Shr    // >>
	Plus   // +
	Minus  // -
	Star   // *
	Slash  // /
)

var kindNames = map[Kind]string{
	EOF: "end of input", Illegal: "illegal character", Comment: "comment",
	Ident: "identifier", Number: "number", Keyword: "keyword",
	LParen: `"("`, RParen: `")"`, LBrace: `"{"`, RBrace: `"}"`,
	LBrack: `"["`, RBrack: `"]"`, Semi: `";"`, Colon: `":"`, Comma: `","`,
	Quest: `"?"`, Define: `":="`, DotDot: `".."`, Not: `"!"`, And: `"&"`,
	Or: `"|"`, Arrow: `"->"`, DArrow: `"<->"`, Eq: `"="`, Neq: `"!="`,
	Lt: `"<"`, Gt: `">"`, Le: `"<="`, Ge: `">="`, Shl: `"<<"`, Shr: `">>"`,
	Plus: `"+"`, Minus: `"-"`, Star: `"*"`, Slash: `"/"`,
}

func (k Kind) String() string { return kindNames[k] }

// Token is one lexical token with its source position.
type Token struct {
	Kind Kind
	Text string
	Pos  smv.Pos
}

// Is reports whether the token is the given keyword.
func (t Token) Is(keyword string) bool { return t.Kind == Keyword && t.Text == keyword }

// Keywords reserved by the model-description format. Temporal operator names
// (EX, AG, U, ...) are contextual and scan as identifiers.
var keywords = map[string]bool{
	"MODULE": true, "VAR": true, "IVAR": true, "FROZENVAR": true,
	"DEFINE": true, "CONSTANTS": true, "ASSIGN": true,
	"INIT": true, "TRANS": true, "INVAR": true,
	"FAIRNESS": true, "JUSTICE": true, "COMPASSION": true,
	"SPEC": true, "CTLSPEC": true, "LTLSPEC": true, "INVARSPEC": true,
	"ISA": true,
	"case": true, "esac": true, "next": true, "init": true, "self": true,
	"boolean": true, "mod": true, "union": true, "in": true,
	"xor": true, "xnor": true, "TRUE": true, "FALSE": true,
}

// Scanner tokenizes one source text.
type Scanner struct {
	src       string
	file      string
	off       int
	line, col int
}

// New returns a Scanner over src. file is used in token positions and may be
// empty for in-memory sources.
func New(file, src string) *Scanner {
	return &Scanner{src: src, file: file, line: 1, col: 1}
}

func (s *Scanner) pos() smv.Pos { return smv.Pos{File: s.file, Line: s.line, Col: s.col} }

func (s *Scanner) peek() byte {
	if s.off >= len(s.src) {
		return 0
	}
	return s.src[s.off]
}

func (s *Scanner) peekAt(n int) byte {
	if s.off+n >= len(s.src) {
		return 0
	}
	return s.src[s.off+n]
}

func (s *Scanner) advance() byte {
	c := s.src[s.off]
	s.off++
	if c == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return c
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\r' || c == '\n' }

func isIdentStart(c byte) bool {
	return c == '_' || c == '@' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool { return isIdentStart(c) || isDigit(c) }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// Next returns the next token, including Comment tokens. At end of input it
// returns EOF forever.
func (s *Scanner) Next() Token {
	for s.off < len(s.src) && isSpace(s.peek()) {
		s.advance()
	}
	pos := s.pos()
	if s.off >= len(s.src) {
		return Token{Kind: EOF, Pos: pos}
	}

	c := s.peek()
	switch {
	case c == '-' && s.peekAt(1) == '-':
		s.advance()
		s.advance()
		start := s.off
		for s.off < len(s.src) && s.peek() != '\n' {
			s.advance()
		}
		return Token{Kind: Comment, Text: strings.TrimSpace(s.src[start:s.off]), Pos: pos}

	case isIdentStart(c):
		kind, text := s.scanIdent()
		return Token{Kind: kind, Text: text, Pos: pos}

	case isDigit(c):
		start := s.off
		for s.off < len(s.src) && isDigit(s.peek()) {
			s.advance()
		}
		return Token{Kind: Number, Text: s.src[start:s.off], Pos: pos}
	}

	start := s.off
	s.advance()
	two := func(k Kind) Token {
		s.advance()
		return Token{Kind: k, Text: s.src[start:s.off], Pos: pos}
	}
	one := func(k Kind) Token { return Token{Kind: k, Text: s.src[start:s.off], Pos: pos} }

	switch c {
	case '(':
		return one(LParen)
	case ')':
		return one(RParen)
	case '{':
		return one(LBrace)
	case '}':
		return one(RBrace)
	case '[':
		return one(LBrack)
	case ']':
		return one(RBrack)
	case ';':
		return one(Semi)
	case ',':
		return one(Comma)
	case '?':
		return one(Quest)
	case '+':
		return one(Plus)
	case '*':
		return one(Star)
	case '/':
		return one(Slash)
	case '&':
		return one(And)
	case '|':
		return one(Or)
	case '=':
		return one(Eq)
	case ':':
		if s.peek() == '=' {
			return two(Define)
		}
		return one(Colon)
	case '.':
		if s.peek() == '.' {
			return two(DotDot)
		}
	case '!':
		if s.peek() == '=' {
			return two(Neq)
		}
		return one(Not)
	case '-':
		if s.peek() == '>' {
			return two(Arrow)
		}
		return one(Minus)
	case '<':
		switch s.peek() {
		case '=':
			return two(Le)
		case '<':
			return two(Shl)
		case '-':
			if s.peekAt(1) == '>' {
				s.advance()
				return two(DArrow)
			}
		}
		return one(Lt)
	case '>':
		switch s.peek() {
		case '=':
			return two(Ge)
		case '>':
			return two(Shr)
		}
		return one(Gt)
	}
	return Token{Kind: Illegal, Text: s.src[start:s.off], Pos: pos}
}

// scanIdent consumes an identifier, following dots when they join name
// segments (instance.variable paths). Returns Ident or Keyword with the text.
func (s *Scanner) scanIdent() (Kind, string) {
	start := s.off
	for s.off < len(s.src) && isIdentPart(s.peek()) {
		s.advance()
	}
	for s.peek() == '.' && isIdentStart(s.peekAt(1)) {
		s.advance() // .
		for s.off < len(s.src) && isIdentPart(s.peek()) {
			s.advance()
		}
	}
	text := s.src[start:s.off]
	if keywords[text] {
		return Keyword, text
	}
	return Ident, text
}
