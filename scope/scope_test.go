package scope

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestBindFresh(t *testing.T) {
	s := New()
	assert.Equal(t, "x", s.Bind("x"))
	assert.Equal(t, "y", s.Bind("y"))

	d, ok := s.Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, "x", d)

	_, ok = s.Lookup("z")
	assert.False(t, ok)
}

func TestBindChain(t *testing.T) {
	s := New()
	names := []string{s.Bind("x"), s.Bind("x"), s.Bind("x")}
	assert.Equal(t, []string{"x", "x_1", "x_2"}, names)

	d, _ := s.Lookup("x")
	assert.Equal(t, "x_2", d)
}

func TestPopRestores(t *testing.T) {
	s := New()
	s.Bind("i")

	s.Push()
	assert.Equal(t, "i_1", s.Bind("i"))
	s.Push()
	assert.Equal(t, "i_2", s.Bind("i"))
	s.Pop()
	d, _ := s.Lookup("i")
	assert.Equal(t, "i_1", d)
	s.Pop()

	d, _ = s.Lookup("i")
	assert.Equal(t, "i", d)

	// a sibling scope starts again from the outer binding
	s.Push()
	assert.Equal(t, "i_1", s.Bind("i"))
	s.Pop()
	assert.Equal(t, 1, s.Depth())
}

func TestInnerOnlyName(t *testing.T) {
	s := New()
	s.Push()
	assert.Equal(t, "t", s.Bind("t"))
	s.Pop()
	_, ok := s.Lookup("t")
	assert.False(t, ok)
}

func TestDisplayNamesUnique(t *testing.T) {
	s := New()
	assert.Equal(t, "x", s.Bind("x"))
	assert.Equal(t, "x_1", s.Bind("x"))
	// the raw name x_1 must not collide with the display name of x
	assert.Equal(t, "x_1_1", s.Bind("x_1"))
	// and x must skip a display name already in use
	s.Bind("x_2")
	assert.Equal(t, "x_3", s.Bind("x"))

	seen := map[string]bool{}
	for _, raw := range []string{"x", "x_1", "x_2"} {
		d, ok := s.Lookup(raw)
		assert.True(t, ok)
		assert.False(t, seen[d], d)
		seen[d] = true
	}
}

func TestPopRoot(t *testing.T) {
	s := New()
	assert.Panics(t, func() { s.Pop() })
}
