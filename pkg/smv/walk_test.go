// Copyright: This file is part of smvkit, released under https://github.com/LouvainVerificationLab/smvkit/blob/main/LICENSE

package smv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LouvainVerificationLab/smvkit/pkg/smv"
	"github.com/LouvainVerificationLab/smvkit/pkg/smv/parser"
)

func TestWalk_CollectsIdentifiers(t *testing.T) {
	e, err := parser.ParseExpr("case a & b : next(c); TRUE : d ? e : {f, g}; esac")
	require.NoError(t, err)
	var names []string
	smv.Walk(e, func(n smv.Node) bool {
		if id, ok := n.(*smv.Ident); ok {
			names = append(names, id.Name)
		}
		return true
	})
	assert.ElementsMatch(t, []string{"a", "b", "c", "d", "e", "f", "g"}, names)
}

func TestWalk_Prune(t *testing.T) {
	e, err := parser.ParseExpr("next(a) & b")
	require.NoError(t, err)
	var names []string
	smv.Walk(e, func(n smv.Node) bool {
		switch n := n.(type) {
		case *smv.NextExpr:
			return false // do not descend into next()
		case *smv.Ident:
			names = append(names, n.Name)
		}
		return true
	})
	assert.Equal(t, []string{"b"}, names)
}

func TestOp_Helpers(t *testing.T) {
	assert.True(t, smv.OpImplies.RightAssoc())
	assert.False(t, smv.OpAnd.RightAssoc())
	assert.True(t, smv.OpAG.Temporal())
	assert.True(t, smv.OpU.Temporal())
	assert.False(t, smv.OpPlus.Temporal())
	assert.Less(t, smv.OpImplies.Precedence(), smv.OpOr.Precedence())
	assert.Less(t, smv.OpOr.Precedence(), smv.OpAnd.Precedence())
	assert.Less(t, smv.OpEq.Precedence(), smv.OpPlus.Precedence())
	assert.Less(t, smv.OpPlus.Precedence(), smv.OpTimes.Precedence())
}
