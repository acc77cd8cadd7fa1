// Copyright: This file is part of smvkit, released under https://github.com/LouvainVerificationLab/smvkit/blob/main/LICENSE

package ltl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LouvainVerificationLab/smvkit/pkg/ltl"
)

func parse(t *testing.T, src string) ltl.Formula {
	t.Helper()
	f, err := ltl.Parse(src)
	require.NoError(t, err)
	return f
}

func TestParse_Atoms(t *testing.T) {
	for _, x := range []struct {
		src  string
		want ltl.Formula
	}{
		{"phi", &ltl.Proposition{Text: "phi"}},
		{"p1.waiting", &ltl.Proposition{Text: "p1.waiting"}},
		{"p1@waiting", &ltl.Proposition{Text: "p1@waiting"}},
		{"TRUE", ltl.True},
		{"FALSE", ltl.False},
		{"1256", &ltl.Constant{Text: "1256"}},
		// names that merely contain the constant words stay propositions
		{"@TRUE", &ltl.Proposition{Text: "@TRUE"}},
		{"TRUE@", &ltl.Proposition{Text: "TRUE@"}},
		{"TRUE.", &ltl.Proposition{Text: "TRUE."}},
		{"FALSE.", &ltl.Proposition{Text: "FALSE."}},
	} {
		t.Run(x.src, func(t *testing.T) {
			assert.Equal(t, x.want, parse(t, x.src))
		})
	}
}

func TestParse_TrailingInputIgnored(t *testing.T) {
	// everything from the first unparseable character on is discarded
	assert.Equal(t, &ltl.Proposition{Text: "p1"}, parse(t, "p1~waiting"))
	assert.Equal(t, &ltl.Proposition{Text: "a"}, parse(t, "a <> b"))
}

func TestParse_FlattenedArithmetic(t *testing.T) {
	// relational and arithmetic structure collapses into one opaque atom
	for _, x := range []struct{ src, text string }{
		{"-12", "- (12)"},
		{"-a", "- (a)"},
		{"-( 6 * 8)", "- ((6) * (8))"},
		{"6 * 8", "(6) * (8)"},
		{"a * b * c", "(a) * (b) * (c)"},
		{"a + b * c", "(a) + ((b) * (c))"},
		{"a * b - c", "((a) * (b)) - (c)"},
		{"a / b / c", "(a) / (b) / (c)"},
		{"a mod b mod c", "(a) mod (b) mod (c)"},
		{"a + b mod c", "(a) + ((b) mod (c))"},
		{"-6 + 8", "(- (6)) + (8)"},
		{"a + b - c - d + b + a - c", "(a) + (b) - (c) - (d) + (b) + (a) - (c)"},
		{"a + b << c", "((a) + (b)) << (c)"},
		{"a << b << c >> d", "(a) << (b) << (c) >> (d)"},
		{"a << b <= c", "((a) << (b)) <= (c)"},
		{"6 != 8", "(6) != (8)"},
		{"a < b < c", "(a) < (b) < (c)"},
		{"a != b < c >= d", "(a) != (b) < (c) >= (d)"},
		{"(a + b) << 4 >= c - 6", "(((a) + (b)) << (4)) >= ((c) - (6))"},
	} {
		t.Run(x.src, func(t *testing.T) {
			assert.Equal(t, &ltl.Proposition{Text: x.text}, parse(t, x.src))
		})
	}
}

func TestParse_Connectives(t *testing.T) {
	a := &ltl.Proposition{Text: "a"}
	b := &ltl.Proposition{Text: "b"}
	phi := &ltl.Proposition{Text: "phi"}
	psi := &ltl.Proposition{Text: "psi"}
	chi := &ltl.Proposition{Text: "chi"}
	for _, x := range []struct {
		src  string
		want ltl.Formula
	}{
		{"! phi", &ltl.Not{X: phi}},
		{"!!!phi", &ltl.Not{X: &ltl.Not{X: &ltl.Not{X: phi}}}},
		{"!TRUE", &ltl.Not{X: ltl.True}},
		{"!(a | b)", &ltl.Not{X: &ltl.Or{L: a, R: b}}},
		{"![]a", &ltl.Not{X: &ltl.Globally{X: a}}},
		{"[]a", &ltl.Globally{X: a}},
		{"<>b", &ltl.Eventually{X: b}},
		{"()a", &ltl.Next{X: a}},
		{"phi&psi", &ltl.And{L: phi, R: psi}},
		// binary connectives chain to the left
		{"phi & psi & chi", &ltl.And{L: &ltl.And{L: phi, R: psi}, R: chi}},
		{"phi | psi | chi", &ltl.Or{L: &ltl.Or{L: phi, R: psi}, R: chi}},
		{"phi ^ psi ^ chi", &ltl.Xor{L: &ltl.Xor{L: phi, R: psi}, R: chi}},
		{"phi => psi => chi", &ltl.Imply{L: &ltl.Imply{L: phi, R: psi}, R: chi}},
		{"phi <=> psi", &ltl.Equiv{L: phi, R: psi}},
		{"phi U psi", &ltl.Until{L: phi, R: psi}},
		{"phi W psi", &ltl.WeakUntil{L: phi, R: psi}},
		{"(a | b) & x", &ltl.And{L: &ltl.Or{L: a, R: b}, R: &ltl.Proposition{Text: "x"}}},
		{"[]a & <>b", &ltl.And{L: &ltl.Globally{X: a}, R: &ltl.Eventually{X: b}}},
		// precedence: & binds tighter than |, | tighter than ^, U tighter than W
		{"a | phi & psi", &ltl.Or{L: a, R: &ltl.And{L: phi, R: psi}}},
		{"a ^ phi | psi", &ltl.Xor{L: a, R: &ltl.Or{L: phi, R: psi}}},
		{"phi <=> psi => chi", &ltl.Imply{L: &ltl.Equiv{L: phi, R: psi}, R: chi}},
		{"a U b W phi U psi", &ltl.WeakUntil{L: &ltl.Until{L: a, R: b}, R: &ltl.Until{L: phi, R: psi}}},
		{"[]( sent => <> received )", &ltl.Globally{X: &ltl.Imply{
			L: &ltl.Proposition{Text: "sent"},
			R: &ltl.Eventually{X: &ltl.Proposition{Text: "received"}},
		}}},
	} {
		t.Run(x.src, func(t *testing.T) {
			assert.Equal(t, x.want, parse(t, x.src))
		})
	}
}

func TestParse_Errors(t *testing.T) {
	for _, src := range []string{"", "  ", "&", "(a", "!(", "a + []b"} {
		t.Run("_"+src, func(t *testing.T) {
			_, err := ltl.Parse(src)
			assert.Error(t, err)
		})
	}
}

func TestString_MinimalParens(t *testing.T) {
	for _, x := range []struct{ src, want string }{
		{"phi & psi & chi", "phi & psi & chi"},
		{"a | phi & psi", "a | phi & psi"},
		{"(a | b) & x", "(a | b) & x"},
		{"![]a", "![]a"},
		{"!(a | b)", "!(a | b)"},
		{"[]( sent => <> received )", "[](sent => <>received)"},
		{"a U b W c", "a U b W c"},
		{"a + b <= c", "((a) + (b)) <= (c)"},
	} {
		t.Run(x.src, func(t *testing.T) {
			assert.Equal(t, x.want, parse(t, x.src).String())
		})
	}
}

func TestString_Reparse(t *testing.T) {
	for _, src := range []string{
		"[](a => <>b)",
		"!(a U b) ^ c <=> d",
		"()a W (b | !c)",
		"a = b U c > d",
	} {
		t.Run(src, func(t *testing.T) {
			f := parse(t, src)
			again := parse(t, f.String())
			assert.Equal(t, f, again)
		})
	}
}

func TestNNF(t *testing.T) {
	for _, x := range []struct{ src, plain, negated string }{
		{"TRUE", "TRUE", "FALSE"},
		{"a", "a", "!a"},
		{"!a", "!a", "a"},
		{"!!a", "a", "!a"},
		{"a & b", "a & b", "!a | !b"},
		{"a | b", "a | b", "!a & !b"},
		{"a => b", "!a | b", "a & !b"},
		{"a <=> b", "(!a | b) & (!b | a)", "a & !b | b & !a"},
		{"a ^ b", "a ^ b", "!a & !b | a & b"},
		{"[]a", "[]a", "<>!a"},
		{"<>a", "<>a", "[]!a"},
		{"()a", "()a", "()!a"},
		{"![]<>a", "<>[]!a", "[]<>a"},
		// pseudo duality: !(p U q) = (!q) W (!p & !q)
		{"a U b", "a U b", "!b W !a & !b"},
		{"a W b", "a W b", "!b U !a & !b"},
	} {
		t.Run(x.src, func(t *testing.T) {
			f := parse(t, x.src)
			assert.Equal(t, x.plain, f.NNF(false).String())
			assert.Equal(t, x.negated, f.NNF(true).String())
		})
	}
}

// NNF output must be stable: running it twice changes nothing.
func TestNNF_Idempotent(t *testing.T) {
	for _, src := range []string{
		"!(a U b)",
		"!(a <=> []b)",
		"!<>(a ^ ()b)",
		"!(sent => <>received)",
	} {
		t.Run(src, func(t *testing.T) {
			once := parse(t, src).NNF(false)
			twice := once.NNF(false)
			assert.Equal(t, once, twice)
		})
	}
}

func TestAtoms(t *testing.T) {
	f := parse(t, "[](a => b U a) & <>(c + d > 0) & TRUE")
	assert.Equal(t, []string{"a", "b", "((c) + (d)) > (0)"}, ltl.Atoms(f))
}
