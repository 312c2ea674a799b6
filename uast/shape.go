package uast

import "github.com/hneemann/irprint"

var printer = NewPrinter()

// NewPrinter creates a printer for the surface form.
// The String methods of the nodes use a printer with the default settings.
func NewPrinter() *irprint.Printer[*Proc, *FnArg, Stmt, Expr] {
	return irprint.New[*Proc, *FnArg, Stmt, Expr](shape{})
}

type shape struct{}

func (shape) Proc(p *Proc) irprint.ProcView[*FnArg, Stmt, Expr] {
	sizes := make([]irprint.Name, len(p.Sizes))
	for i, s := range p.Sizes {
		sizes[i] = s
	}
	return irprint.ProcView[*FnArg, Stmt, Expr]{
		Name:  p.Name,
		Sizes: sizes,
		Args:  p.Args,
		Preds: p.Preds,
		Body:  p.Body,
	}
}

func (shape) Arg(a *FnArg) irprint.ArgView[Expr] {
	return irprint.ArgView[Expr]{
		Name:   a.Name,
		Type:   typeView(a.Type),
		Effect: a.Effect.String(),
	}
}

func typeView(t Type) irprint.TypeView[Expr] {
	return irprint.TypeView[Expr]{Base: t.Base, Dims: t.Dims}
}

func (shape) Stmt(s Stmt) irprint.StmtView[Stmt, Expr] {
	switch s := s.(type) {
	case *Pass:
		return irprint.StmtView[Stmt, Expr]{Kind: irprint.Pass}
	case *Assign:
		return irprint.StmtView[Stmt, Expr]{Kind: irprint.Assign, Name: s.Name, Idx: s.Idx, Rhs: s.Rhs}
	case *Reduce:
		return irprint.StmtView[Stmt, Expr]{Kind: irprint.Reduce, Name: s.Name, Idx: s.Idx, Rhs: s.Rhs}
	case *Alloc:
		return irprint.StmtView[Stmt, Expr]{Kind: irprint.Alloc, Name: s.Name, Type: typeView(s.Type)}
	case *If:
		return irprint.StmtView[Stmt, Expr]{Kind: irprint.If, Cond: s.Cond, Body: s.Body, Orelse: s.Orelse}
	case *ForAll:
		return irprint.StmtView[Stmt, Expr]{Kind: irprint.For, Name: s.Iter, Cond: s.Cond, Body: s.Body}
	default:
		return irprint.StmtView[Stmt, Expr]{}
	}
}

func (shape) Expr(e Expr) irprint.ExprView[Expr] {
	switch e := e.(type) {
	case *Read:
		return irprint.ExprView[Expr]{Kind: irprint.Read, Name: e.Name, Idx: e.Idx}
	case *Const:
		return irprint.ExprView[Expr]{Kind: irprint.Const, Value: e.Val}
	case *BinOp:
		return irprint.ExprView[Expr]{Kind: irprint.BinOp, Op: e.Op, Lhs: e.Lhs, Rhs: e.Rhs}
	case *USub:
		return irprint.ExprView[Expr]{Kind: irprint.USub, Arg: e.Arg}
	case *ParRange:
		return irprint.ExprView[Expr]{Kind: irprint.Range, Lo: e.Lo, Hi: e.Hi}
	default:
		return irprint.ExprView[Expr]{}
	}
}
