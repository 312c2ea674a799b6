package loopir

import (
	"bytes"
	"testing"

	"github.com/hneemann/irprint"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	idx = Scalar(Index)
	f32 = Scalar(F32)
)

func TestSym(t *testing.T) {
	a := NewSym("a")
	b := NewSym("a")
	assert.NotEqual(t, a, b)
	assert.Equal(t, "a", a.Key())
	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.String(), b.String())
	assert.Equal(t, "a_", a.String()[:2])
}

func axpy() *Proc {
	n := NewSym("n")
	alpha := NewSym("alpha")
	x := NewSym("x")
	y := NewSym("y")
	i := NewSym("i")
	rn := NewRead(Scalar(Size), n)
	return &Proc{
		Name:  "axpy",
		Sizes: []Sym{n},
		Args: []*FnArg{
			{Name: alpha, Type: f32, Effect: In},
			{Name: x, Type: Tensor(F32, rn), Effect: In},
			{Name: y, Type: Tensor(F32, rn), Effect: InOut},
		},
		Preds: []Expr{NewBinOp(Scalar(Bool), ">", rn, NewConst(idx, 0))},
		Body: []Stmt{
			&ForAll{Iter: i, Hi: rn, Body: []Stmt{
				&Reduce{Name: y, Idx: []Expr{NewRead(idx, i)},
					Rhs: NewBinOp(f32, "*", NewRead(f32, alpha), NewRead(f32, x, NewRead(idx, i)))},
			}},
		},
	}
}

func TestProc(t *testing.T) {
	assert.Equal(t,
		"def axpy(n: size, alpha: f32 @ IN, x: f32[n] @ IN, y: f32[n] @ INOUT):\n"+
			"    assert n > 0\n"+
			"    for i in par(0, n):\n"+
			"        y[i] += alpha * x[i]", axpy().String())
}

func TestShadowedSyms(t *testing.T) {
	n := NewSym("n")
	i1 := NewSym("i")
	i2 := NewSym("i")
	tmp := NewSym("tmp")
	rn := NewRead(Scalar(Size), n)
	body := []Stmt{
		&ForAll{Iter: i1, Hi: rn, Body: []Stmt{
			&ForAll{Iter: i2, Hi: NewRead(idx, i1), Body: []Stmt{
				&Alloc{Name: tmp, Type: f32},
				&Assign{Name: tmp, Rhs: NewUSub(NewBinOp(idx, "-", NewRead(idx, i2), NewConst(idx, 1)))},
			}},
		}},
	}
	str, err := NewPrinter().Stmts(body)
	require.NoError(t, err)
	assert.Equal(t,
		"for i in par(0, "+n.String()+"):\n"+
			"    for i_1 in par(0, i):\n"+
			"        tmp: f32\n"+
			"        tmp_1 = -(i_1 - 1)", str)
}

func TestFreeSym(t *testing.T) {
	x := NewSym("x")
	e := NewBinOp(f32, "+", NewRead(f32, x), NewConst(f32, 1.5))
	assert.Equal(t, x.String()+" + 1.5", e.String())
	assert.Equal(t, f32, e.Type())
}

func TestIfStmt(t *testing.T) {
	c := NewSym("c")
	s := &If{
		Cond:   NewBinOp(Scalar(Bool), "==", NewRead(idx, c), NewConst(idx, 0)),
		Body:   []Stmt{&Pass{}},
		Orelse: []Stmt{&Pass{}},
	}
	str, err := NewPrinter().Stmt(s)
	require.NoError(t, err)
	assert.Equal(t, "if "+c.String()+" == 0:\n    pass\nelse:\n    pass", str)
}

func TestArgString(t *testing.T) {
	a := &FnArg{Name: NewSym("A"), Type: Tensor(R, NewConst(idx, 4), NewConst(idx, 4)), Effect: Out}
	assert.Equal(t, "A: R[4, 4] @ OUT", a.String())
}

type unknownStmt struct {
	stmtNode
}

func (u *unknownStmt) String() string { return "?" }

func TestUnknownStmt(t *testing.T) {
	_, err := NewPrinter().Stmt(&unknownStmt{})
	assert.True(t, errors.Is(err, irprint.ErrUnrecognized))
	assert.Contains(t, err.Error(), "*loopir.unknownStmt")
	assert.Panics(t, func() {
		_ = (&ForAll{Iter: NewSym("i"), Hi: NewConst(idx, 1), Body: []Stmt{&unknownStmt{}}}).String()
	})
}

func TestTree(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPrinter().Tree(&buf, axpy()))
	assert.Contains(t, buf.String(), "1: assert n > 0")
	assert.Contains(t, buf.String(), "2: for i in par(0,n)")
	assert.Contains(t, buf.String(), "1: y[i] += alpha * x[i]")
}
