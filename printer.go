// Package irprint prints program trees as readable text.
// The printer is generic over the tree shape, a Shape implementation
// gives the printer access to the nodes of a concrete tree.
// Names which shadow an outer name of the same text are renamed
// by appending a counter, operators are parenthesized only where
// the precedence requires it.
package irprint

import (
	"log/slog"

	"github.com/hneemann/irprint/format"
	"github.com/pkg/errors"
)

// Formatter is used to normalize the printed text.
// The bool is false if the formatter does not accept the given text.
type Formatter interface {
	Format(raw string) (string, bool)
}

type FormatterFunc func(raw string) (string, bool)

func (f FormatterFunc) Format(raw string) (string, bool) {
	return f(raw)
}

// Identity is a formatter which accepts every text and does not change it.
var Identity Formatter = FormatterFunc(func(raw string) (string, bool) {
	return raw, true
})

// Printer prints the nodes of a tree shape.
// A Printer can be used concurrently, all state of a print
// call is created by the call itself.
type Printer[P, A, S, E any] struct {
	shape     Shape[P, A, S, E]
	formatter Formatter
	logger    *slog.Logger
}

// New creates a new printer which uses the default formatter
func New[P, A, S, E any](shape Shape[P, A, S, E]) *Printer[P, A, S, E] {
	return &Printer[P, A, S, E]{
		shape:     shape,
		formatter: format.Default,
		logger:    slog.New(slog.DiscardHandler),
	}
}

// SetFormatter sets the formatter which is applied to the printed text
func (p *Printer[P, A, S, E]) SetFormatter(formatter Formatter) *Printer[P, A, S, E] {
	p.formatter = formatter
	return p
}

// SetLogger sets the logger. Rejected texts are logged at error level.
func (p *Printer[P, A, S, E]) SetLogger(logger *slog.Logger) *Printer[P, A, S, E] {
	p.logger = logger
	return p
}

// Proc prints a procedure including its signature
func (p *Printer[P, A, S, E]) Proc(proc P) (string, error) {
	return p.print("procedure", func(r *render[P, A, S, E]) {
		r.proc(proc)
	})
}

// Arg prints a single argument declaration
func (p *Printer[P, A, S, E]) Arg(a A) (string, error) {
	return p.print("argument", func(r *render[P, A, S, E]) {
		r.out.line(r.arg(a))
	})
}

// Stmt prints a single statement
func (p *Printer[P, A, S, E]) Stmt(s S) (string, error) {
	return p.Stmts([]S{s})
}

// Stmts prints a list of statements sharing one scope
func (p *Printer[P, A, S, E]) Stmts(s []S) (string, error) {
	return p.print("statement", func(r *render[P, A, S, E]) {
		r.stmts(s)
	})
}

// Expr prints an expression
func (p *Printer[P, A, S, E]) Expr(e E) (string, error) {
	return p.print("expression", func(r *render[P, A, S, E]) {
		r.out.line(r.expr(e, 0))
	})
}

func (p *Printer[P, A, S, E]) print(what string, fill func(r *render[P, A, S, E])) (str string, err error) {
	defer func() {
		rec := recover()
		if rec != nil {
			err = toError(rec)
			str = ""
		}
	}()

	out := &lines{}
	fill(newRender(p.shape, out))
	raw := out.text()

	formatted, ok := p.formatter.Format(raw)
	if !ok {
		p.logger.Error("formatter rejected printed text", "node", what, "text", raw)
		return "", errors.Wrapf(ErrFormatterRejected, "printing %s", what)
	}
	p.logger.Debug("printed", "node", what, "lines", len(out.list))
	return formatted, nil
}
