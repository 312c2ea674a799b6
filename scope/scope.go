// Package scope implements the name environment used while printing a tree.
// Every raw identifier is mapped to the display name which is written to
// the output. If a name is bound again while it is still visible, a new
// display name is created by appending a counter, so shadowed names stay
// distinguishable in the printed text.
package scope

import (
	"strconv"

	"github.com/hneemann/irprint/listMap"
)

type binding struct {
	display string
	// n is the number of rebinds which lead to display
	n int
}

type frame struct {
	names listMap.ListMap[string, binding]
	// taken maps every display name created in this frame to its raw name
	taken listMap.ListMap[string, string]
}

// Stack is a stack of frames. The zero value is not usable, use New.
type Stack struct {
	frames []*frame
}

// New creates a stack containing the root frame
func New() *Stack {
	return &Stack{frames: []*frame{{}}}
}

// Push opens a new empty frame
func (s *Stack) Push() {
	s.frames = append(s.frames, &frame{})
}

// Pop discards the innermost frame together with all bindings created in it.
func (s *Stack) Pop() {
	if len(s.frames) <= 1 {
		panic("pop of root frame")
	}
	s.frames[len(s.frames)-1] = nil
	s.frames = s.frames[:len(s.frames)-1]
}

// Depth returns the number of live frames, the root frame included
func (s *Stack) Depth() int {
	return len(s.frames)
}

// Lookup returns the display name the raw name is currently bound to.
func (s *Stack) Lookup(raw string) (string, bool) {
	if b, ok := s.lookup(raw); ok {
		return b.display, true
	}
	return "", false
}

func (s *Stack) lookup(raw string) (binding, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if b, ok := s.frames[i].names.Get(raw); ok {
			return b, true
		}
	}
	return binding{}, false
}

// Bind creates a new display name for the raw name and records it in the
// innermost frame. A name which is not visible is bound to itself, a visible
// one gets the next free counter suffix: x, x_1, x_2, ...
func (s *Stack) Bind(raw string) string {
	b := binding{display: raw}
	if old, ok := s.lookup(raw); ok {
		b = next(raw, old.n)
	}
	for s.takenByOther(b.display, raw) {
		b = next(raw, b.n)
	}

	top := s.frames[len(s.frames)-1]
	top.names = top.names.Append(raw, b)
	top.taken = top.taken.Append(b.display, raw)
	return b.display
}

func next(raw string, n int) binding {
	n++
	return binding{display: raw + "_" + strconv.Itoa(n), n: n}
}

func (s *Stack) takenByOther(display, raw string) bool {
	for _, f := range s.frames {
		if owner, ok := f.taken.Get(display); ok && owner != raw {
			return true
		}
	}
	return false
}
