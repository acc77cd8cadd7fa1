// Copyright: This file is part of smvkit, released under https://github.com/LouvainVerificationLab/smvkit/blob/main/LICENSE

package smv

// Expr is an SMV expression node.
type Expr interface {
	Node
	expr()
}

// Op enumerates expression operators, both propositional operators and the
// temporal operators used in CTL and LTL assertions.
type Op int

const (
	opInvalid Op = iota

	// unary
	OpNot // !
	OpNeg // - (unary minus)

	// arithmetic
	OpTimes  // *
	OpDiv    // /
	OpMod    // mod
	OpPlus   // +
	OpMinus  // -
	OpLShift // <<
	OpRShift // >>

	// sets
	OpUnion // union
	OpIn    // in

	// relational
	OpEq // =
	OpNe // !=
	OpLt // <
	OpGt // >
	OpLe // <=
	OpGe // >=

	// propositional
	OpAnd     // &
	OpOr      // |
	OpXor     // xor
	OpXnor    // xnor
	OpImplies // ->
	OpIff     // <->

	// CTL
	OpEX
	OpAX
	OpEF
	OpAF
	OpEG
	OpAG
	OpEU // E[x U y]
	OpAU // A[x U y]

	// LTL
	OpX
	OpF
	OpG
	OpU // x U y
	OpV // x V y (release)
)

var opStrings = map[Op]string{
	OpNot: "!", OpNeg: "-",
	OpTimes: "*", OpDiv: "/", OpMod: "mod", OpPlus: "+", OpMinus: "-",
	OpLShift: "<<", OpRShift: ">>",
	OpUnion: "union", OpIn: "in",
	OpEq: "=", OpNe: "!=", OpLt: "<", OpGt: ">", OpLe: "<=", OpGe: ">=",
	OpAnd: "&", OpOr: "|", OpXor: "xor", OpXnor: "xnor",
	OpImplies: "->", OpIff: "<->",
	OpEX: "EX", OpAX: "AX", OpEF: "EF", OpAF: "AF", OpEG: "EG", OpAG: "AG",
	OpEU: "EU", OpAU: "AU",
	OpX: "X", OpF: "F", OpG: "G", OpU: "U", OpV: "V",
}

func (op Op) String() string { return opStrings[op] }

// Binding powers for binary operators, tightest first. Mirrors the NuSMV
// grammar ordering; the U/V level is documented in the parser.
const (
	PrecImplies = 1 + iota
	PrecIff
	PrecTernary
	PrecOr
	PrecAnd
	PrecUntil
	PrecRelational
	PrecIn
	PrecUnion
	PrecShift
	PrecAdditive
	PrecMultiplicative
	PrecUnary
)

// Precedence returns the binding power of a binary operator, higher binds
// tighter. Unary operators all bind at PrecUnary.
func (op Op) Precedence() int {
	switch op {
	case OpTimes, OpDiv, OpMod:
		return PrecMultiplicative
	case OpPlus, OpMinus:
		return PrecAdditive
	case OpLShift, OpRShift:
		return PrecShift
	case OpUnion:
		return PrecUnion
	case OpIn:
		return PrecIn
	case OpEq, OpNe, OpLt, OpGt, OpLe, OpGe:
		return PrecRelational
	case OpU, OpV:
		return PrecUntil
	case OpAnd:
		return PrecAnd
	case OpOr, OpXor, OpXnor:
		return PrecOr
	case OpIff:
		return PrecIff
	case OpImplies:
		return PrecImplies
	}
	return PrecUnary
}

// RightAssoc reports whether a binary operator associates to the right.
func (op Op) RightAssoc() bool { return op == OpImplies }

// Temporal reports whether op is a CTL or LTL operator.
func (op Op) Temporal() bool { return op >= OpEX }

// Ident is a (possibly dotted) reference to a variable, DEFINE, symbolic
// constant or enum value. Resolution happens in the analysis package.
type Ident struct {
	NamePos Pos
	Name    string
}

func (e *Ident) Pos() Pos { return e.NamePos }
func (*Ident) expr()      {}

// Number is an integer literal.
type Number struct {
	ValuePos Pos
	Value    int
}

func (e *Number) Pos() Pos { return e.ValuePos }
func (*Number) expr()      {}

// BoolLit is TRUE or FALSE.
type BoolLit struct {
	ValuePos Pos
	Value    bool
}

func (e *BoolLit) Pos() Pos { return e.ValuePos }
func (*BoolLit) expr()      {}

// SetExpr is a set literal {e1, e2, ...}, a non-deterministic choice when used
// as an assignment right-hand side.
type SetExpr struct {
	Lbrace Pos
	Elems  []Expr
}

func (e *SetExpr) Pos() Pos { return e.Lbrace }
func (*SetExpr) expr()      {}

// Unary is a prefix operation: !, unary -, or a unary temporal operator.
type Unary struct {
	OpPos Pos
	Op    Op
	X     Expr
}

func (e *Unary) Pos() Pos { return e.OpPos }
func (*Unary) expr()      {}

// Binary is an infix operation. CTL until forms E[x U y] and A[x U y] are
// Binary nodes with OpEU/OpAU.
type Binary struct {
	OpPos Pos
	Op    Op
	X, Y  Expr
}

func (e *Binary) Pos() Pos { return e.X.Pos() }
func (*Binary) expr()      {}

// Ternary is cond ? then : else.
type Ternary struct {
	Cond, Then, Else Expr
}

func (e *Ternary) Pos() Pos { return e.Cond.Pos() }
func (*Ternary) expr()      {}

// NextExpr is next(x): the value of x in the next state.
type NextExpr struct {
	KwPos Pos
	X     Expr
}

func (e *NextExpr) Pos() Pos { return e.KwPos }
func (*NextExpr) expr()      {}

// CaseArm is one branch of a case expression.
type CaseArm struct {
	Cond  Expr
	Value Expr
}

// CaseExpr is case c1 : v1; ... esac. Arms are tried in order; the last arm
// conventionally has condition TRUE.
type CaseExpr struct {
	KwPos Pos
	Arms  []CaseArm
}

func (e *CaseExpr) Pos() Pos { return e.KwPos }
func (*CaseExpr) expr()      {}
