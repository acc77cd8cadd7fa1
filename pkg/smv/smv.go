// Copyright: This file is part of smvkit, released under https://github.com/LouvainVerificationLab/smvkit/blob/main/LICENSE

// Package smv defines the syntax tree for the SMV model-description format:
// modules with finite-domain state variables, initial conditions, transition
// relations, fairness constraints and temporal-logic assertions.
//
// The package holds only declarative syntax. Parsing lives in
// [github.com/LouvainVerificationLab/smvkit/pkg/smv/parser], formatting in
// [github.com/LouvainVerificationLab/smvkit/pkg/smv/printer], and static
// validation in [github.com/LouvainVerificationLab/smvkit/pkg/analysis].
package smv

import "fmt"

// MainModule is the name of the entry module every complete model must declare.
const MainModule = "main"

// Pos is a source position. The zero Pos is invalid.
type Pos struct {
	File      string
	Line, Col int
}

func (p Pos) IsValid() bool { return p.Line > 0 }

func (p Pos) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Col)
	}
	return fmt.Sprintf("%v:%d:%d", p.File, p.Line, p.Col)
}

// Node is implemented by every syntax-tree node.
type Node interface {
	Pos() Pos
}

// Model is one parsed SMV source file: an ordered list of module declarations.
type Model struct {
	File    string
	Modules []*ModuleDecl
}

func (m *Model) Pos() Pos {
	if len(m.Modules) > 0 {
		return m.Modules[0].Pos()
	}
	return Pos{File: m.File}
}

// Main returns the main module, or nil if the model doesn't declare one.
func (m *Model) Main() *ModuleDecl { return m.Module(MainModule) }

// Module returns the named module declaration, or nil.
func (m *Model) Module(name string) *ModuleDecl {
	for _, d := range m.Modules {
		if d.Name == name {
			return d
		}
	}
	return nil
}

// ModuleDecl is a MODULE declaration with optional formal parameters.
type ModuleDecl struct {
	Doc      []string // -- comments preceding the declaration
	NamePos  Pos
	Name     string
	Params   []string
	Sections []Section
}

func (d *ModuleDecl) Pos() Pos { return d.NamePos }

// Section is one section of a module body: variable declarations, defines,
// assignments, constraints, fairness declarations or specifications.
type Section interface {
	Node
	section()
}

// VarKind distinguishes the three variable declaration sections.
type VarKind int

const (
	VarState  VarKind = iota // VAR
	VarInput                 // IVAR
	VarFrozen                // FROZENVAR
)

func (k VarKind) String() string {
	switch k {
	case VarInput:
		return "IVAR"
	case VarFrozen:
		return "FROZENVAR"
	}
	return "VAR"
}

// VarSection declares variables of one kind.
type VarSection struct {
	KwPos Pos
	Kind  VarKind
	Decls []*VarDecl
}

func (s *VarSection) Pos() Pos { return s.KwPos }
func (*VarSection) section()   {}

// VarDecl declares one variable with its domain type.
type VarDecl struct {
	Doc     []string
	NamePos Pos
	Name    string
	Type    TypeExpr
}

func (d *VarDecl) Pos() Pos { return d.NamePos }

// DefineSection holds DEFINE declarations (macro-like named expressions).
type DefineSection struct {
	KwPos Pos
	Decls []*DefineDecl
}

func (s *DefineSection) Pos() Pos { return s.KwPos }
func (*DefineSection) section()   {}

type DefineDecl struct {
	Doc     []string
	NamePos Pos
	Name    string
	Body    Expr
}

func (d *DefineDecl) Pos() Pos { return d.NamePos }

// ConstantsSection declares symbolic constants (CONSTANTS a, b, c;).
type ConstantsSection struct {
	KwPos Pos
	Names []string
}

func (s *ConstantsSection) Pos() Pos { return s.KwPos }
func (*ConstantsSection) section()   {}

// AssignKind distinguishes the three assignment forms of an ASSIGN section.
type AssignKind int

const (
	AssignCurrent AssignKind = iota // x := e (invariant assignment)
	AssignInit                      // init(x) := e
	AssignNext                      // next(x) := e
)

func (k AssignKind) String() string {
	switch k {
	case AssignInit:
		return "init"
	case AssignNext:
		return "next"
	}
	return "current"
}

// AssignSection holds ASSIGN declarations.
type AssignSection struct {
	KwPos   Pos
	Assigns []*Assign
}

func (s *AssignSection) Pos() Pos { return s.KwPos }
func (*AssignSection) section()   {}

// Assign is one assignment: init(x) := e, next(x) := e or x := e.
type Assign struct {
	Doc    []string
	LhsPos Pos
	Kind   AssignKind
	Name   string
	Rhs    Expr
}

func (a *Assign) Pos() Pos { return a.LhsPos }

// ConstraintKind distinguishes the declarative constraint sections.
type ConstraintKind int

const (
	ConstraintInit  ConstraintKind = iota // INIT: initial condition
	ConstraintTrans                       // TRANS: transition relation
	ConstraintInvar                       // INVAR: state invariant
)

func (k ConstraintKind) String() string {
	switch k {
	case ConstraintTrans:
		return "TRANS"
	case ConstraintInvar:
		return "INVAR"
	}
	return "INIT"
}

// ConstraintSection is an INIT, TRANS or INVAR constraint.
type ConstraintSection struct {
	Doc   []string
	KwPos Pos
	Kind  ConstraintKind
	Expr  Expr
}

func (s *ConstraintSection) Pos() Pos { return s.KwPos }
func (*ConstraintSection) section()   {}

// FairnessKind distinguishes fairness declarations.
type FairnessKind int

const (
	FairnessJustice    FairnessKind = iota // JUSTICE (FAIRNESS is a synonym)
	FairnessCompassion                     // COMPASSION (p, q)
)

// FairnessSection declares a fairness constraint: a condition that must hold
// infinitely often along accepted execution paths. Compassion constraints
// carry a second expression (strong fairness pair).
type FairnessSection struct {
	Doc     []string
	KwPos   Pos
	Kind    FairnessKind
	Keyword string // FAIRNESS, JUSTICE or COMPASSION as written
	Expr    Expr
	Second  Expr // compassion only
}

func (s *FairnessSection) Pos() Pos { return s.KwPos }
func (*FairnessSection) section()   {}

// SpecKind distinguishes temporal-logic assertion sections.
type SpecKind int

const (
	SpecCTL   SpecKind = iota // CTLSPEC (SPEC is a synonym)
	SpecLTL                   // LTLSPEC
	SpecInvar                 // INVARSPEC
)

func (k SpecKind) String() string {
	switch k {
	case SpecLTL:
		return "LTLSPEC"
	case SpecInvar:
		return "INVARSPEC"
	}
	return "CTLSPEC"
}

// SpecSection is a temporal-logic assertion to be checked by an external
// verification tool.
type SpecSection struct {
	Doc     []string
	KwPos   Pos
	Kind    SpecKind
	Keyword string // SPEC, CTLSPEC, LTLSPEC or INVARSPEC as written
	Expr    Expr
}

func (s *SpecSection) Pos() Pos { return s.KwPos }
func (*SpecSection) section()   {}

// IsaSection textually includes the body of another module (ISA name).
type IsaSection struct {
	KwPos Pos
	Name  string
}

func (s *IsaSection) Pos() Pos { return s.KwPos }
func (*IsaSection) section()   {}
