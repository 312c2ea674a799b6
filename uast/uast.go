// Package uast contains the surface form of a procedure as it is
// created by the front end. All nodes can be printed by calling String.
package uast

import (
	"github.com/hneemann/irprint"
)

// Ident is an identifier of the surface form
type Ident string

func (i Ident) Key() string {
	return string(i)
}

func (i Ident) String() string {
	return string(i)
}

// Effect describes how a procedure uses an argument
type Effect int

const (
	In Effect = iota
	Out
	InOut
)

func (e Effect) String() string {
	switch e {
	case In:
		return "IN"
	case Out:
		return "OUT"
	case InOut:
		return "INOUT"
	default:
		return "?"
	}
}

// Type is a scalar type like R or size, or a tensor type like R[n, m]
type Type struct {
	Base string
	Dims []Expr
}

type Proc struct {
	// Name may be empty for anonymous procedures
	Name  string
	Sizes []Ident
	Args  []*FnArg
	Preds []Expr
	Body  []Stmt
}

func (p *Proc) String() string {
	return irprint.Must(printer.Proc(p))
}

type FnArg struct {
	Name   Ident
	Type   Type
	Effect Effect
}

func (a *FnArg) String() string {
	return irprint.Must(printer.Arg(a))
}

// Stmt is a statement
type Stmt interface {
	String() string
	stmt()
}

type stmtNode struct{}

func (stmtNode) stmt() {}

type Pass struct {
	stmtNode
}

// Assign writes Rhs to Name or, if Idx is given, to an element of Name
type Assign struct {
	stmtNode
	Name Ident
	Idx  []Expr
	Rhs  Expr
}

// Reduce adds Rhs to Name or, if Idx is given, to an element of Name
type Reduce struct {
	stmtNode
	Name Ident
	Idx  []Expr
	Rhs  Expr
}

type Alloc struct {
	stmtNode
	Name Ident
	Type Type
}

type If struct {
	stmtNode
	Cond   Expr
	Body   []Stmt
	Orelse []Stmt
}

// ForAll iterates Iter over the range given by Cond, usually a ParRange
type ForAll struct {
	stmtNode
	Iter Ident
	Cond Expr
	Body []Stmt
}

func (s *Pass) String() string   { return stmtString(s) }
func (s *Assign) String() string { return stmtString(s) }
func (s *Reduce) String() string { return stmtString(s) }
func (s *Alloc) String() string  { return stmtString(s) }
func (s *If) String() string     { return stmtString(s) }
func (s *ForAll) String() string { return stmtString(s) }

func stmtString(s Stmt) string {
	return irprint.Must(printer.Stmt(s))
}

// Expr is an expression
type Expr interface {
	String() string
	expr()
}

type exprNode struct{}

func (exprNode) expr() {}

type Read struct {
	exprNode
	Name Ident
	Idx  []Expr
}

type Const struct {
	exprNode
	Val any
}

type BinOp struct {
	exprNode
	Op  string
	Lhs Expr
	Rhs Expr
}

// USub is the unary minus
type USub struct {
	exprNode
	Arg Expr
}

// ParRange is the parallel range from Lo to Hi
type ParRange struct {
	exprNode
	Lo Expr
	Hi Expr
}

func (e *Read) String() string     { return exprString(e) }
func (e *Const) String() string    { return exprString(e) }
func (e *BinOp) String() string    { return exprString(e) }
func (e *USub) String() string     { return exprString(e) }
func (e *ParRange) String() string { return exprString(e) }

func exprString(e Expr) string {
	return irprint.Must(printer.Expr(e))
}
