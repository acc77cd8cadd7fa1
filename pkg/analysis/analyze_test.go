// Copyright: This file is part of smvkit, released under https://github.com/LouvainVerificationLab/smvkit/blob/main/LICENSE

package analysis_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LouvainVerificationLab/smvkit/pkg/analysis"
	"github.com/LouvainVerificationLab/smvkit/pkg/smv/parser"
)

func analyze(t *testing.T, src string) *analysis.Result {
	t.Helper()
	m, err := parser.Parse("test.smv", src)
	require.NoError(t, err)
	return analysis.Analyze(m)
}

func codes(ds analysis.Diagnostics) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.Code
	}
	return out
}

func TestAnalyze_CleanModel(t *testing.T) {
	r := analyze(t, `
MODULE main
  VAR
    state : {ready, busy};
    n : 0..7;
  IVAR
    go : boolean;
  DEFINE
    full := n = 7;
  ASSIGN
    init(state) := ready;
    next(state) := case
      state = ready & go : busy;
      state = busy & full : ready;
      TRUE : state;
    esac;
    init(n) := 0;
    next(n) := state = busy & !full ? n + 1 : n;
  FAIRNESS state = ready
  CTLSPEC AG (state = busy -> AF state = ready)
`)
	assert.Empty(t, r.Diagnostics, r.Diagnostics.String())
	require.Contains(t, r.Modules, "main")
	sc := r.Modules["main"].Scope
	assert.Equal(t, []string{"full", "go", "n", "state"}, sc.Names())
	assert.True(t, sc.IsEnumValue("busy"))
	assert.Nil(t, sc.Lookup("nothere"))
	assert.NotNil(t, sc.Lookup("state"))
}

func TestAnalyze_Duplicates(t *testing.T) {
	r := analyze(t, `
MODULE main
  VAR v : boolean;
  VAR v : 0..1;
MODULE main
  VAR w : boolean;
`)
	assert.ElementsMatch(t, []string{analysis.CodeDupSymbol, analysis.CodeDupModule, analysis.CodeUnusedVar}, codes(r.Diagnostics))
	assert.True(t, r.Diagnostics.HasErrors())
}

func TestAnalyze_UnknownIdent(t *testing.T) {
	r := analyze(t, `
MODULE main
  VAR v : boolean;
  TRANS next(v) = w
`)
	require.True(t, r.Diagnostics.HasErrors())
	errs := r.Diagnostics.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, analysis.CodeUnknownIdent, errs[0].Code)
	assert.Contains(t, errs[0].Message, "w")
}

func TestAnalyze_Instantiation(t *testing.T) {
	r := analyze(t, `
MODULE counter(run)
  VAR n : 0..3;
  ASSIGN
    next(n) := run ? n + 1 : n;
MODULE main
  VAR
    ok : counter(TRUE);
    bad1 : counter(TRUE, FALSE);
    bad2 : missing(TRUE);
  INVARSPEC ok.n <= 3 & bad1.n >= 0 & bad2.n >= 0
`)
	errs := r.Diagnostics.Errors()
	assert.ElementsMatch(t, []string{analysis.CodeArity, analysis.CodeUnknownModule}, codes(errs))
}

func TestAnalyze_TypeErrors(t *testing.T) {
	for _, x := range []struct {
		name, src, code, part string
	}{
		{"bool plus int", "MODULE main\n VAR v : boolean;\n INVARSPEC v + 1 > 0", analysis.CodeType, "operand of +"},
		{"enum vs int", "MODULE main\n VAR s : {a, b};\n INVARSPEC s = 3", analysis.CodeType, "incompatible"},
		{"case branch mix", "MODULE main\n VAR v : boolean; n : 0..3;\n ASSIGN next(n) := case v : 1; TRUE : b; esac;", analysis.CodeUnknownIdent, "b"},
		{"spec not boolean", "MODULE main\n VAR n : 0..3;\n CTLSPEC AG n", analysis.CodeType, "operand of AG"},
		{"rhs outside domain", "MODULE main\n VAR s : {a, b}; t : {c};\n ASSIGN init(s) := c;\n INVARSPEC s = a & t = c", analysis.CodeType, "not in the domain"},
		{"assign bool to range", "MODULE main\n VAR n : 0..3;\n ASSIGN init(n) := TRUE;\n INVARSPEC n >= 0", analysis.CodeType, "incompatible"},
	} {
		t.Run(x.name, func(t *testing.T) {
			r := analyze(t, x.src)
			errs := r.Diagnostics.Errors()
			require.NotEmpty(t, errs, "expected an error diagnostic")
			found := false
			for _, d := range errs {
				if d.Code == x.code && strings.Contains(d.Message, x.part) {
					found = true
				}
			}
			assert.True(t, found, "want %v with %q, got:\n%v", x.code, x.part, errs.String())
		})
	}
}

func TestAnalyze_NextPlacement(t *testing.T) {
	// next() is fine in TRANS, an error in INIT and INVAR
	r := analyze(t, `
MODULE main
  VAR v : boolean;
  TRANS next(v) = !v
  INIT next(v)
`)
	errs := r.Diagnostics.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, analysis.CodeType, errs[0].Code)
	assert.Contains(t, errs[0].Message, "INIT")

	r = analyze(t, `
MODULE main
  VAR v : boolean;
  TRANS next(next(v))
`)
	require.True(t, r.Diagnostics.HasErrors())
	assert.Contains(t, r.Diagnostics.Errors()[0].Message, "nested next()")
}

func TestAnalyze_AssignRules(t *testing.T) {
	r := analyze(t, `
MODULE main
  VAR v : boolean;
  IVAR go : boolean;
  ASSIGN
    init(v) := TRUE;
    init(v) := FALSE;
    next(go) := TRUE;
    init(w) := TRUE;
    next(v) := v & go;
`)
	errs := r.Diagnostics.Errors()
	assert.ElementsMatch(t,
		[]string{analysis.CodeAssignDup, analysis.CodeAssignInput, analysis.CodeAssignUnknown},
		codes(errs))
}

func TestAnalyze_AssignTransConflict(t *testing.T) {
	r := analyze(t, `
MODULE main
  VAR v : boolean;
  ASSIGN next(v) := !v;
  TRANS next(v) = v
`)
	assert.False(t, r.Diagnostics.HasErrors())
	require.Len(t, r.Diagnostics, 1)
	d := r.Diagnostics[0]
	assert.Equal(t, analysis.Warning, d.Severity)
	assert.Equal(t, analysis.CodeAssignConflict, d.Code)
}

func TestAnalyze_CircularDependencies(t *testing.T) {
	// mutually dependent current-state assignments
	r := analyze(t, `
MODULE main
  VAR a : boolean; b : boolean;
  ASSIGN
    a := b;
    b := a;
  INVARSPEC a = b
`)
	errs := r.Diagnostics.Errors()
	require.NotEmpty(t, errs)
	assert.Equal(t, analysis.CodeCircular, errs[0].Code)
	assert.Contains(t, errs[0].Message, "a <-> b")

	// next-on-next cycle
	r = analyze(t, `
MODULE main
  VAR a : boolean; b : boolean;
  ASSIGN
    next(a) := next(b);
    next(b) := next(a);
  INVARSPEC a = b
`)
	require.True(t, r.Diagnostics.HasErrors())
	assert.Equal(t, analysis.CodeCircular, r.Diagnostics.Errors()[0].Code)

	// current references between next assignments are fine
	r = analyze(t, `
MODULE main
  VAR a : boolean; b : boolean;
  ASSIGN
    next(a) := b;
    next(b) := a;
  INVARSPEC a | !a
`)
	assert.False(t, r.Diagnostics.HasErrors(), r.Diagnostics.String())
}

func TestAnalyze_DefineCycle(t *testing.T) {
	r := analyze(t, `
MODULE main
  VAR v : boolean;
  DEFINE d := d & v;
  INVARSPEC d
`)
	require.True(t, r.Diagnostics.HasErrors())
	assert.Equal(t, analysis.CodeCircular, r.Diagnostics.Errors()[0].Code)
	assert.Contains(t, r.Diagnostics.Errors()[0].Message, "d depends on itself")
}

func TestAnalyze_Lint(t *testing.T) {
	r := analyze(t, `
MODULE main
  VAR
    v : boolean;
    unused : boolean;
    s : {a, b, c};
  DEFINE dead := v;
  ASSIGN
    init(s) := a;
    next(s) := v ? b : a;
  TRANS TRUE
  INVARSPEC v | s = a
`)
	assert.False(t, r.Diagnostics.HasErrors(), r.Diagnostics.String())
	got := codes(r.Diagnostics)
	assert.ElementsMatch(t, []string{
		analysis.CodeUnusedDefine, // dead
		analysis.CodeUnusedVar,    // unused
		analysis.CodeUnreachedValue, // c never assigned to s
		analysis.CodeEmptyTrans,
	}, got, r.Diagnostics.String())
}

func TestDepGraph_DOT(t *testing.T) {
	r := analyze(t, `
MODULE main
  VAR v : boolean; w : boolean; u : boolean;
  DEFINE d := v & w;
  ASSIGN
    u := d;
    next(v) := d;
  INVARSPEC u | d
`)
	assert.False(t, r.Diagnostics.HasErrors(), r.Diagnostics.String())
	g := r.Modules["main"].Deps
	require.NotNil(t, g.NodeFor("u"))
	require.NotNil(t, g.NodeFor("d"))
	out, err := g.DOT()
	require.NoError(t, err)
	s := string(out)
	assert.Contains(t, s, `"main"`)
	assert.Contains(t, s, "d -> v")
	assert.Contains(t, s, "d -> w")
	assert.Contains(t, s, "u -> d")
	// d reads current state, so next(v) := d is not a next-dependency
	assert.NotContains(t, s, "v -> d")
}

func TestDepGraph_DefineWithNext(t *testing.T) {
	// a define that expands to next() does carry the dependency through
	r := analyze(t, `
MODULE main
  VAR a : boolean; b : boolean;
  DEFINE flip := !next(b);
  ASSIGN
    next(a) := flip;
    next(b) := next(a);
  INVARSPEC a | b
`)
	require.True(t, r.Diagnostics.HasErrors())
	errs := r.Diagnostics.Errors()
	assert.Equal(t, analysis.CodeCircular, errs[0].Code)
}

func TestStats(t *testing.T) {
	m, err := parser.Parse("test.smv", `
MODULE main
  VAR
    v : boolean;
    s : {a, b, c};
    n : 0..9;
  IVAR go : boolean;
  DEFINE d := v;
  LTLSPEC G (v -> F !v)
  FAIRNESS v
`)
	require.NoError(t, err)
	st := analysis.NewStats(m)
	require.Len(t, st.Modules, 1)
	ms := st.Modules[0]
	assert.Equal(t, 3, ms.StateVars)
	assert.Equal(t, 1, ms.InputVars)
	assert.Equal(t, 1, ms.Defines)
	assert.Equal(t, 1, ms.Specs)
	assert.Equal(t, 1, ms.Fairness)
	assert.Equal(t, 2, ms.Domains["v"])
	assert.Equal(t, 3, ms.Domains["s"])
	assert.Equal(t, 10, ms.Domains["n"])
	assert.Equal(t, "60", ms.StateSpace) // 2 * 3 * 10
}
