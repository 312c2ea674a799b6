package irprint

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestPrecedence(t *testing.T) {
	order := [][]string{{"or"}, {"and"}, {"<", ">", "<=", ">=", "=="}, {"+", "-"}, {"*", "/"}}
	last := 0
	for _, level := range order {
		p, ok := Precedence(level[0])
		assert.True(t, ok)
		assert.Greater(t, p, last)
		for _, op := range level {
			po, ok := Precedence(op)
			assert.True(t, ok, op)
			assert.Equal(t, p, po, op)
		}
		assert.Less(t, p, USubPrecedence)
		last = p
	}

	_, ok := Precedence("%")
	assert.False(t, ok)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "Reduce", Reduce.String())
	assert.Equal(t, "Range", Range.String())
	assert.Equal(t, "Invalid", Invalid.String())
	assert.Equal(t, "Kind(?)", Kind(99).String())
}
