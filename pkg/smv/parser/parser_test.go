// Copyright: This file is part of smvkit, released under https://github.com/LouvainVerificationLab/smvkit/blob/main/LICENSE

package parser

import (
	"testing"

	"github.com/LouvainVerificationLab/smvkit/pkg/smv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_MinimalModel(t *testing.T) {
	m, err := Parse("", `
MODULE main
    VAR state: {s1, s2};
    INIT state = s1
    TRANS next(state) = s2
`)
	require.NoError(t, err)
	require.Len(t, m.Modules, 1)
	main := m.Main()
	require.NotNil(t, main)
	require.Len(t, main.Sections, 3)

	vars := main.Sections[0].(*smv.VarSection)
	assert.Equal(t, smv.VarState, vars.Kind)
	require.Len(t, vars.Decls, 1)
	assert.Equal(t, "state", vars.Decls[0].Name)
	assert.Equal(t, "{s1, s2}", vars.Decls[0].Type.String())

	init := main.Sections[1].(*smv.ConstraintSection)
	assert.Equal(t, smv.ConstraintInit, init.Kind)
	assert.Equal(t, "state = s1", smv.ExprString(init.Expr))

	trans := main.Sections[2].(*smv.ConstraintSection)
	assert.Equal(t, smv.ConstraintTrans, trans.Kind)
	assert.Equal(t, "next(state) = s2", smv.ExprString(trans.Expr))
}

func TestParse_InputsAndTernary(t *testing.T) {
	m, err := Parse("", `
MODULE main
    VAR state: {s1, s2};
    IVAR run: boolean;
    INIT state = s1
    TRANS next(state) = (run ? s2 : state)
`)
	require.NoError(t, err)
	ivar := m.Main().Sections[1].(*smv.VarSection)
	assert.Equal(t, smv.VarInput, ivar.Kind)
	assert.Equal(t, "boolean", ivar.Decls[0].Type.String())

	trans := m.Main().Sections[3].(*smv.ConstraintSection)
	assert.Equal(t, "next(state) = (run ? s2 : state)", smv.ExprString(trans.Expr))
}

func TestParse_CaseTransition(t *testing.T) {
	m, err := Parse("", `
MODULE main
    VAR state: {s1, s2};
    IVAR transition : {time, knowledge};
    INIT state = s1
    TRANS case transition = time : next(state) = s2;
               transition = knowledge : next(state) = state;
          esac
`)
	require.NoError(t, err)
	trans := m.Main().Sections[3].(*smv.ConstraintSection)
	c := trans.Expr.(*smv.CaseExpr)
	require.Len(t, c.Arms, 2)
	assert.Equal(t, "transition = time", smv.ExprString(c.Arms[0].Cond))
	assert.Equal(t, "next(state) = s2", smv.ExprString(c.Arms[0].Value))
}

func TestParse_AssignForms(t *testing.T) {
	m, err := Parse("", `
MODULE main
    VAR x : 0..7;
    VAR b : boolean;
    ASSIGN
        init(x) := 0;
        next(x) := (x + 1) mod 8;
        b := x = 0;
`)
	require.NoError(t, err)
	s := m.Main().Sections[2].(*smv.AssignSection)
	require.Len(t, s.Assigns, 3)
	assert.Equal(t, smv.AssignInit, s.Assigns[0].Kind)
	assert.Equal(t, smv.AssignNext, s.Assigns[1].Kind)
	assert.Equal(t, smv.AssignCurrent, s.Assigns[2].Kind)
	assert.Equal(t, "(x + 1) mod 8", smv.ExprString(s.Assigns[1].Rhs))
	assert.Equal(t, "0..7", m.Main().Sections[0].(*smv.VarSection).Decls[0].Type.String())
}

func TestParse_Instances(t *testing.T) {
	m, err := Parse("", `
MODULE counter(tick)
    VAR n : 0..3;
    ASSIGN
        init(n) := 0;
        next(n) := tick ? (n + 1) mod 4 : n;

MODULE main
    VAR tick : boolean;
    VAR c1 : counter(tick);
    VAR c2 : counter(!tick);
    SPEC AG (c1.n <= 3)
`)
	require.NoError(t, err)
	require.Len(t, m.Modules, 2)
	inst := m.Main().Sections[1].(*smv.VarSection).Decls[0].Type.(*smv.InstanceType)
	assert.Equal(t, "counter", inst.Module)
	require.Len(t, inst.Args, 1)
	assert.Equal(t, "tick", smv.ExprString(inst.Args[0]))
}

func TestParse_SpecSections(t *testing.T) {
	m, err := Parse("", `
MODULE main
    VAR req : boolean;
    VAR busy : boolean;
    FAIRNESS !busy
    JUSTICE req
    COMPASSION (req, busy)
    SPEC AG (req -> AF busy)
    CTLSPEC EF busy
    LTLSPEC G (req -> F busy)
    INVARSPEC !req | busy
`)
	require.NoError(t, err)
	secs := m.Main().Sections
	require.Len(t, secs, 9)

	fair := secs[2].(*smv.FairnessSection)
	assert.Equal(t, smv.FairnessJustice, fair.Kind)
	assert.Equal(t, "FAIRNESS", fair.Keyword)

	comp := secs[4].(*smv.FairnessSection)
	assert.Equal(t, smv.FairnessCompassion, comp.Kind)
	assert.Equal(t, "busy", smv.ExprString(comp.Second))

	spec := secs[5].(*smv.SpecSection)
	assert.Equal(t, smv.SpecCTL, spec.Kind)
	assert.Equal(t, "AG (req -> AF busy)", smv.ExprString(spec.Expr))

	ltl := secs[7].(*smv.SpecSection)
	assert.Equal(t, smv.SpecLTL, ltl.Kind)
	assert.Equal(t, "G (req -> F busy)", smv.ExprString(ltl.Expr))
}

func TestParse_CTLUntil(t *testing.T) {
	e, err := ParseExpr("E [ req U busy ]")
	require.NoError(t, err)
	b := e.(*smv.Binary)
	assert.Equal(t, smv.OpEU, b.Op)
	assert.Equal(t, "E [req U busy]", smv.ExprString(e))

	e, err = ParseExpr("A [ TRUE U done ]")
	require.NoError(t, err)
	assert.Equal(t, smv.OpAU, e.(*smv.Binary).Op)
}

func TestParse_TemporalNamesAreContextual(t *testing.T) {
	// In plain (non-spec) expressions, U, F and G are ordinary identifiers.
	m, err := Parse("", `
MODULE main
    VAR F : boolean;
    VAR G : boolean;
    TRANS next(F) = G
`)
	require.NoError(t, err)
	trans := m.Main().Sections[2].(*smv.ConstraintSection)
	assert.Equal(t, "next(F) = G", smv.ExprString(trans.Expr))
}

func TestParseExpr_Precedence(t *testing.T) {
	for _, x := range []struct {
		in, want string
	}{
		{"a & b | c", "a & b | c"},
		{"a | b & c", "a | b & c"},
		{"(a | b) & c", "(a | b) & c"},
		{"a -> b -> c", "a -> b -> c"},          // right associative
		{"(a -> b) -> c", "(a -> b) -> c"},      // explicit left grouping kept
		{"!a & b", "!a & b"},
		{"!(a & b)", "!(a & b)"},
		{"a + b * c = d", "a + b * c = d"},
		{"(a + b) * c", "(a + b) * c"},
		{"a <-> b -> c", "(a <-> b) -> c"},      // <-> binds tighter than ->
		{"x in {1, 2, 3}", "x in {1, 2, 3}"},
		{"a union b in c", "a union b in c"},
		{"c ? a : b", "c ? a : b"},
		{"c1 ? a : c2 ? b : d", "c1 ? a : c2 ? b : d"}, // right associative chain
		{"(c1 ? a : b) ? c : d", "(c1 ? a : b) ? c : d"},
		{"AG (a -> AF b)", "AG (a -> AF b)"},
		{"G (a -> F b)", "G (a -> F b)"},
		{"a U b | c", "a U b | c"},              // U binds tighter than |
		{"a U (b | c)", "a U (b | c)"},
		{"x = 1 U y = 2", "x = 1 U y = 2"},      // relational binds tighter than U
	} {
		t.Run(x.in, func(t *testing.T) {
			e, err := ParseExpr(x.in)
			require.NoError(t, err)
			assert.Equal(t, x.want, smv.ExprString(e))

			// Canonical form must be a fixed point.
			e2, err := ParseExpr(smv.ExprString(e))
			require.NoError(t, err)
			assert.Equal(t, smv.ExprString(e), smv.ExprString(e2))
		})
	}
}

func TestParse_Errors(t *testing.T) {
	for _, x := range []struct {
		name, src, want string
	}{
		{"no module", "VAR x : boolean;", `expected "MODULE"`},
		{"bad type", "MODULE main\n VAR x : ;", "expected a type"},
		{"unterminated case", "MODULE main\n TRANS case a : b;", "expected an expression"},
		{"missing semi", "MODULE main\n VAR x : boolean", `expected ";"`},
		{"illegal rune", "MODULE main\n VAR x# : boolean;", "illegal character"},
	} {
		t.Run(x.name, func(t *testing.T) {
			_, err := Parse("", x.src)
			require.Error(t, err)
			assert.Contains(t, err.Error(), x.want)
		})
	}
}

func TestParse_ErrorPositions(t *testing.T) {
	_, err := Parse("two.smv", "MODULE main\n    VAR x : ;\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "two.smv:2:13")
}

func TestParse_DocComments(t *testing.T) {
	m, err := Parse("", `
-- A two-boolean automaton.
MODULE main
    VAR
        -- the request line
        req : boolean;
        ack : boolean;
`)
	require.NoError(t, err)
	assert.Equal(t, []string{"A two-boolean automaton."}, m.Main().Doc)
	vars := m.Main().Sections[0].(*smv.VarSection)
	assert.Equal(t, []string{"the request line"}, vars.Decls[0].Doc)
	assert.Empty(t, vars.Decls[1].Doc)
}
