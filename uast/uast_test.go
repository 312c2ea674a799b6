package uast

import (
	"testing"

	"github.com/hneemann/irprint"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	tests := []struct {
		name string
		node interface{ String() string }
		want string
	}{
		{"expr", Op("*", Op("+", Var("a"), Num(1)), Var("b")), "(a + 1) * b"},
		{"read", Var("A", Var("i"), Var("j")), "A[i, j]"},
		{"neg", Neg(Var("a")), "-a"},
		{"range", Par(Num(0), Var("n")), "par(0, n)"},
		{"arg", &FnArg{Name: "A", Type: Tensor("R", Var("n")), Effect: Out}, "A: R[n] @ OUT"},
		{"pass", &Pass{}, "pass"},
		{"assign", &Assign{Name: "x", Rhs: Num(3)}, "x = 3"},
		{"reduce", &Reduce{Name: "x", Idx: []Expr{Var("i")}, Rhs: Num(3)}, "x[i] += 3"},
		{"alloc", &Alloc{Name: "t", Type: Scalar("R")}, "t: R"},
		{"if", &If{Cond: Var("c"), Body: []Stmt{&Pass{}}}, "if c:\n    pass"},
		{"for", &ForAll{Iter: "i", Cond: Par(Num(0), Var("n"))}, "for i in par(0, n):\n    pass"},
		{"proc", &Proc{Name: "p", Body: []Stmt{&Pass{}}}, "def p():\n    pass"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.node.String())
		})
	}
}

func TestEffect(t *testing.T) {
	assert.Equal(t, "IN", In.String())
	assert.Equal(t, "OUT", Out.String())
	assert.Equal(t, "INOUT", InOut.String())
	assert.Equal(t, "?", Effect(7).String())
}

type unknownExpr struct {
	exprNode
}

func (u *unknownExpr) String() string { return "?" }

func TestUnknownExpr(t *testing.T) {
	_, err := NewPrinter().Expr(Op("+", Var("a"), &unknownExpr{}))
	assert.True(t, errors.Is(err, irprint.ErrUnrecognized))
	assert.Contains(t, err.Error(), "expression *uast.unknownExpr")
	assert.Panics(t, func() {
		_ = Neg(&unknownExpr{}).String()
	})
}
