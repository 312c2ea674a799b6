// Package loopir contains the lowered form of a procedure.
// Identifiers are resolved to symbols and every expression carries its type.
// All nodes can be printed by calling String.
package loopir

import (
	"strconv"
	"sync/atomic"

	"github.com/hneemann/irprint"
)

var symCounter atomic.Int64

// Sym is a resolved identifier. Two symbols with the same name are
// different variables.
type Sym struct {
	name string
	id   int64
}

// NewSym creates a new unique symbol
func NewSym(name string) Sym {
	return Sym{name: name, id: symCounter.Add(1)}
}

func (s Sym) Name() string {
	return s.name
}

func (s Sym) ID() int64 {
	return s.id
}

// Key returns the name, so symbols sharing a name are renamed when printed
func (s Sym) Key() string {
	return s.name
}

// String returns the name and the id of the symbol
func (s Sym) String() string {
	return s.name + "_" + strconv.FormatInt(s.id, 10)
}

// Type is the type of a value
type Type struct {
	Base Prim
	// Dims is empty for scalars
	Dims []Expr
}

type Prim string

const (
	R     Prim = "R"
	F32   Prim = "f32"
	F64   Prim = "f64"
	I8    Prim = "i8"
	I32   Prim = "i32"
	Bool  Prim = "bool"
	Int   Prim = "int"
	Index Prim = "index"
	Size  Prim = "size"
)

func Scalar(p Prim) Type {
	return Type{Base: p}
}

func Tensor(p Prim, dims ...Expr) Type {
	return Type{Base: p, Dims: dims}
}

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

type Proc struct {
	Name  string
	Sizes []Sym
	Args  []*FnArg
	Preds []Expr
	Body  []Stmt
}

func (p *Proc) String() string {
	return irprint.Must(printer.Proc(p))
}

type FnArg struct {
	Name   Sym
	Type   Type
	Effect Effect
}

func (a *FnArg) String() string {
	return irprint.Must(printer.Arg(a))
}

type Stmt interface {
	String() string
	stmt()
}

type stmtNode struct{}

func (stmtNode) stmt() {}

type Pass struct {
	stmtNode
}

type Assign struct {
	stmtNode
	Name Sym
	Idx  []Expr
	Rhs  Expr
}

type Reduce struct {
	stmtNode
	Name Sym
	Idx  []Expr
	Rhs  Expr
}

type Alloc struct {
	stmtNode
	Name Sym
	Type Type
}

type If struct {
	stmtNode
	Cond   Expr
	Body   []Stmt
	Orelse []Stmt
}

// ForAll iterates Iter from zero to Hi
type ForAll struct {
	stmtNode
	Iter Sym
	Hi   Expr
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

type Expr interface {
	String() string
	// Type returns the type of the expression
	Type() Type
	expr()
}

type exprNode struct {
	typ Type
}

func (exprNode) expr() {}

func (e exprNode) Type() Type {
	return e.typ
}

type Read struct {
	exprNode
	Name Sym
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

type USub struct {
	exprNode
	Arg Expr
}

func NewRead(typ Type, name Sym, idx ...Expr) *Read {
	return &Read{exprNode: exprNode{typ}, Name: name, Idx: idx}
}

func NewConst(typ Type, val any) *Const {
	return &Const{exprNode: exprNode{typ}, Val: val}
}

func NewBinOp(typ Type, op string, lhs, rhs Expr) *BinOp {
	return &BinOp{exprNode: exprNode{typ}, Op: op, Lhs: lhs, Rhs: rhs}
}

// NewUSub creates a unary minus, the type is the type of the operand
func NewUSub(arg Expr) *USub {
	return &USub{exprNode: exprNode{arg.Type()}, Arg: arg}
}

func (e *Read) String() string  { return exprString(e) }
func (e *Const) String() string { return exprString(e) }
func (e *BinOp) String() string { return exprString(e) }
func (e *USub) String() string  { return exprString(e) }

func exprString(e Expr) string {
	return irprint.Must(printer.Expr(e))
}
