package uast

// The functions in this file are shorthands to build trees in code.

// Var reads a variable or, if indices are given, an element of a buffer
func Var(name string, idx ...Expr) *Read {
	return &Read{Name: Ident(name), Idx: idx}
}

func Num(v any) *Const {
	return &Const{Val: v}
}

func Op(op string, lhs, rhs Expr) *BinOp {
	return &BinOp{Op: op, Lhs: lhs, Rhs: rhs}
}

func Neg(e Expr) *USub {
	return &USub{Arg: e}
}

func Par(lo, hi Expr) *ParRange {
	return &ParRange{Lo: lo, Hi: hi}
}

func Scalar(base string) Type {
	return Type{Base: base}
}

func Tensor(base string, dims ...Expr) Type {
	return Type{Base: base, Dims: dims}
}
