// Copyright: This file is part of smvkit, released under https://github.com/LouvainVerificationLab/smvkit/blob/main/LICENSE

package unique_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/LouvainVerificationLab/smvkit/pkg/unique"
)

func TestList(t *testing.T) {
	l := unique.NewList("a", "b", "a", "c")
	assert.Equal(t, []string{"a", "b", "c"}, l.List)
	assert.False(t, l.Add("b"))
	assert.True(t, l.Add("d"))
	assert.Equal(t, []string{"a", "b", "c", "d"}, l.List)
	assert.True(t, l.Has("c"))
	assert.False(t, l.Has("z"))
}

func TestSet(t *testing.T) {
	s := unique.NewSet(1, 2, 2, 3)
	assert.True(t, s.Has(2))
	s.Remove(2)
	assert.False(t, s.Has(2))
	s.Add(4)
	assert.True(t, s.Has(4))
}
