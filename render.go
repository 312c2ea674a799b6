package irprint

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hneemann/irprint/scope"
	"github.com/pkg/errors"
)

const indentUnit = "  "

// sink receives the rendered statements. A block is opened by its header
// and contains all lines up to the matching close.
type sink interface {
	line(text string)
	open(header string)
	close()
}

// lines is the sink used to create program text
type lines struct {
	indent int
	list   []string
}

func (l *lines) line(text string) {
	l.list = append(l.list, strings.Repeat(indentUnit, l.indent)+text)
}

func (l *lines) open(header string) {
	l.line(header + ":")
	l.indent++
}

func (l *lines) close() {
	l.indent--
}

func (l *lines) text() string {
	return strings.Join(l.list, "\n")
}

// render holds the state of a single print call.
type render[P, A, S, E any] struct {
	shape  Shape[P, A, S, E]
	scopes *scope.Stack
	out    sink
}

func newRender[P, A, S, E any](shape Shape[P, A, S, E], out sink) *render[P, A, S, E] {
	return &render[P, A, S, E]{shape: shape, scopes: scope.New(), out: out}
}

// name returns the display name of a name which is not (re)defined.
func (r *render[P, A, S, E]) name(n Name) string {
	if d, ok := r.scopes.Lookup(n.Key()); ok {
		return d
	}
	return n.String()
}

func (r *render[P, A, S, E]) bind(n Name) string {
	return r.scopes.Bind(n.Key())
}

func procName(name string) string {
	if name == "" {
		return "_anon_"
	}
	return name
}

func (r *render[P, A, S, E]) proc(p P) {
	v := r.shape.Proc(p)
	var args []string
	for _, sz := range v.Sizes {
		args = append(args, r.bind(sz)+" : size")
	}
	for _, a := range v.Args {
		args = append(args, r.arg(a))
	}
	header := "def " + procName(v.Name) + "(" + strings.Join(args, ",") + ")"
	r.block(func() string { return header }, v.Preds, v.Body)
}

func (r *render[P, A, S, E]) arg(a A) string {
	v := r.shape.Arg(a)
	name := r.bind(v.Name)
	effect := v.Effect
	if effect == "" {
		effect = placeholder
	}
	return name + " : " + r.typ(v.Type) + " @ " + effect
}

// placeholder is printed for a missing type or effect
const placeholder = "?"

func (r *render[P, A, S, E]) typ(t TypeView[E]) string {
	base := t.Base
	if base == "" {
		base = placeholder
	}
	if len(t.Dims) == 0 {
		return base
	}
	return base + "[" + r.exprList(t.Dims) + "]"
}

func (r *render[P, A, S, E]) stmts(body []S) {
	for _, s := range body {
		r.stmt(s)
	}
}

// block renders a nested block in a new scope frame. The header is created
// after the frame is opened, so names bound by it are local to the block.
// The asserts are the preconditions of a procedure. An empty block is
// printed as pass.
func (r *render[P, A, S, E]) block(header func() string, asserts []E, body []S) {
	r.scopes.Push()
	r.out.open(header())
	for _, a := range asserts {
		r.out.line("assert " + r.expr(a, 0))
	}
	if len(asserts) == 0 && len(body) == 0 {
		r.out.line("pass")
	}
	r.stmts(body)
	r.out.close()
	r.scopes.Pop()
}

func (r *render[P, A, S, E]) stmt(s S) {
	v := r.shape.Stmt(s)
	switch v.Kind {
	case Pass:
		r.out.line("pass")
	case Assign, Reduce:
		op := "="
		if v.Kind == Reduce {
			op = "+="
		}
		rhs := r.expr(v.Rhs, 0)
		r.out.line(r.target(v) + " " + op + " " + rhs)
	case Alloc:
		typ := r.typ(v.Type)
		r.out.line(r.bind(v.Name) + " : " + typ)
	case If:
		cond := r.expr(v.Cond, 0)
		r.block(func() string { return "if " + cond }, nil, v.Body)
		if len(v.Orelse) > 0 {
			r.block(func() string { return "else" }, nil, v.Orelse)
		}
	case For:
		rng := r.expr(v.Cond, 0)
		// the loop variable is only visible inside the loop
		r.block(func() string { return "for " + r.bind(v.Name) + " in " + rng }, nil, v.Body)
	default:
		panic(unrecognized("statement", s))
	}
}

// target returns the left hand side of an Assign or Reduce.
// Indexed targets write to an existing buffer, all others define a new value.
func (r *render[P, A, S, E]) target(v StmtView[S, E]) string {
	if len(v.Idx) > 0 {
		return r.name(v.Name) + "[" + r.exprList(v.Idx) + "]"
	}
	return r.bind(v.Name)
}

func (r *render[P, A, S, E]) exprList(list []E) string {
	str := make([]string, len(list))
	for i, e := range list {
		str[i] = r.expr(e, 0)
	}
	return strings.Join(str, ",")
}

// expr renders an expression. The parameter prec is the precedence of the
// surrounding operation, if the expression binds weaker it is put in parentheses.
func (r *render[P, A, S, E]) expr(e E, prec int) string {
	v := r.shape.Expr(e)
	switch v.Kind {
	case Read:
		if len(v.Idx) > 0 {
			return r.name(v.Name) + "[" + r.exprList(v.Idx) + "]"
		}
		return r.name(v.Name)
	case Const:
		return literal(v.Value)
	case BinOp:
		p, ok := Precedence(v.Op)
		if !ok {
			panic(errors.Wrapf(ErrUnrecognized, "operator %q", v.Op))
		}
		// operators are left associative, so a tie on the right needs parentheses
		s := r.expr(v.Lhs, p) + " " + v.Op + " " + r.expr(v.Rhs, p+1)
		if p < prec {
			s = "(" + s + ")"
		}
		return s
	case USub:
		return "-" + r.expr(v.Arg, USubPrecedence)
	case Range:
		return "par(" + r.expr(v.Lo, 0) + "," + r.expr(v.Hi, 0) + ")"
	default:
		panic(unrecognized("expression", e))
	}
}

// literal formats a constant. Floats always show a decimal point or an
// exponent, strings are quoted.
func literal(v any) string {
	switch v := v.(type) {
	case float64:
		return formatFloat(v, 64)
	case float32:
		return formatFloat(float64(v), 32)
	case string:
		return strconv.Quote(v)
	default:
		return fmt.Sprint(v)
	}
}

func formatFloat(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	var s string
	if abs := math.Abs(f); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		s = strconv.FormatFloat(f, 'e', -1, bits)
	} else {
		s = strconv.FormatFloat(f, 'f', -1, bits)
	}
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
