package irprint

// Name is an identifier as it is stored in a tree.
type Name interface {
	// Key is the text bindings of the name are matched on
	Key() string
	// String returns the text used if the name is not bound in any scope
	String() string
}

// Kind is the tag of a statement or expression variant
type Kind int

const (
	// Invalid is returned by a Shape for nodes it does not know
	Invalid Kind = iota
	Pass
	Assign
	Reduce
	Alloc
	If
	For
	Read
	Const
	BinOp
	USub
	Range
)

var kindNames = [...]string{"Invalid", "Pass", "Assign", "Reduce", "Alloc", "If", "For", "Read", "Const", "BinOp", "USub", "Range"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(?)"
	}
	return kindNames[k]
}

// ProcView is the printers view of a procedure
type ProcView[A, S, E any] struct {
	// Name is the procedure name, may be empty
	Name  string
	Sizes []Name
	Args  []A
	// Preds are the preconditions of the procedure
	Preds []E
	Body  []S
}

// TypeView describes a type like R or R[n, m]
type TypeView[E any] struct {
	Base string
	Dims []E
}

type ArgView[E any] struct {
	Name   Name
	Type   TypeView[E]
	Effect string
}

// StmtView is the printers view of a statement.
// Only the fields belonging to Kind are used.
type StmtView[S, E any] struct {
	Kind Kind
	// Name is the target of Assign, Reduce and Alloc and the iteration variable of For
	Name Name
	// Idx are the target indices of Assign and Reduce
	Idx []E
	Rhs E
	// Type is the type of Alloc
	Type TypeView[E]
	// Cond is the condition of If and the range of For
	Cond   E
	Body   []S
	Orelse []S
}

// ExprView is the printers view of an expression.
// Only the fields belonging to Kind are used.
type ExprView[E any] struct {
	Kind Kind
	// Name and Idx are used by Read
	Name Name
	Idx  []E
	// Value is the literal of Const
	Value any
	// Op, Lhs and Rhs are used by BinOp
	Op       string
	Lhs, Rhs E
	// Arg is the operand of USub
	Arg E
	// Lo and Hi are the bounds of Range
	Lo, Hi E
}

// Shape gives the printer access to one family of tree nodes.
// P is the procedure type, A the argument type, S the statement
// type and E the expression type.
type Shape[P, A, S, E any] interface {
	Proc(P) ProcView[A, S, E]
	Arg(A) ArgView[E]
	// Stmt returns a view with the Kind Invalid for unknown statements
	Stmt(S) StmtView[S, E]
	// Expr returns a view with the Kind Invalid for unknown expressions
	Expr(E) ExprView[E]
}
