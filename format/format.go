// Package format normalizes the text created by the printer.
// Every line is split into tokens which are written back in the same
// order with a canonical spacing, and the indentation of nested blocks
// is replaced by a fixed number of spaces per level.
package format

import (
	"fmt"
	"strconv"
	"strings"
)

// Line is a line number in the formatted text
type Line int

type errorWithLine struct {
	message string
	line    Line
	cause   error
}

func (e errorWithLine) Error() string {
	m := e.message
	if e.line > 0 {
		m += " in line " + strconv.Itoa(int(e.line))
	}
	if e.cause != nil {
		m += ": " + e.cause.Error()
	}
	return m
}

func (e errorWithLine) Unwrap() error {
	return e.cause
}

func (l Line) Errorf(m string, a ...any) error {
	return errorWithLine{
		message: fmt.Sprintf(m, a...),
		line:    l,
	}
}

func (l Line) EnhanceErrorf(cause error, m string, a ...any) error {
	return errorWithLine{
		message: fmt.Sprintf(m, a...),
		line:    l,
		cause:   cause,
	}
}

// Formatter formats printed program text
type Formatter struct {
	width int
}

// Default indents by four spaces
var Default = New(4)

// New creates a formatter which indents every block by width spaces
func New(width int) *Formatter {
	if width < 1 {
		width = 1
	}
	return &Formatter{width: width}
}

// Format formats the given text. If the text is not accepted, the
// text is returned unchanged together with false.
func (f *Formatter) Format(raw string) (string, bool) {
	str, err := f.Reformat(raw)
	if err != nil {
		return raw, false
	}
	return str, true
}

// Reformat formats the given text. The error describes why a text is not accepted.
func (f *Formatter) Reformat(raw string) (string, error) {
	var out []string
	levels := []int{0}
	expectBlock := false
	var line Line
	for i, text := range strings.Split(raw, "\n") {
		line = Line(i + 1)
		if strings.TrimSpace(text) == "" {
			continue
		}
		body := strings.TrimLeft(text, " ")
		if strings.HasPrefix(body, "\t") {
			return "", line.Errorf("tab in indentation")
		}
		ind := len(text) - len(body)
		if expectBlock {
			if ind <= levels[len(levels)-1] {
				return "", line.Errorf("expected an indented block")
			}
			levels = append(levels, ind)
			expectBlock = false
		} else {
			for len(levels) > 1 && ind < levels[len(levels)-1] {
				levels = levels[:len(levels)-1]
			}
			if ind != levels[len(levels)-1] {
				return "", line.Errorf("unexpected indentation")
			}
		}

		formatted, opens, err := layout(body)
		if err != nil {
			return "", line.EnhanceErrorf(err, "invalid text")
		}
		out = append(out, strings.Repeat(" ", (len(levels)-1)*f.width)+formatted)
		expectBlock = opens
	}
	if expectBlock {
		return "", line.Errorf("expected an indented block")
	}
	return strings.Join(out, "\n"), nil
}

var closing = map[tokenType]tokenType{
	tClose:        tOpen,
	tCloseBracket: tOpenBracket,
}

// layout writes the tokens of a single line. The bool is true if
// the line is the header of a block.
func layout(body string) (string, bool, error) {
	tok := newTokenizer(body)
	var b strings.Builder
	var open []token
	var prev token
	prevUnary := false
	first := true
	for {
		t := tok.next()
		switch t.typ {
		case tEol:
			if len(open) > 0 {
				return "", false, fmt.Errorf("unclosed %v", open[len(open)-1])
			}
			return b.String(), !first && prev.typ == tColon, nil
		case tInvalid:
			return "", false, fmt.Errorf("invalid character %v", t)
		case tOpen, tOpenBracket:
			open = append(open, t)
		case tClose, tCloseBracket:
			if len(open) == 0 || open[len(open)-1].typ != closing[t.typ] {
				return "", false, fmt.Errorf("unbalanced %v", t)
			}
			open = open[:len(open)-1]
		}

		unary := t.typ == tOperate && t.image == "-" && (first || startsOperand(prev))
		if !first && spaceBetween(prev, prevUnary, t) {
			b.WriteByte(' ')
		}
		b.WriteString(t.image)
		prev, prevUnary, first = t, unary, false
	}
}

// startsOperand returns true if an operand is expected after the given token
func startsOperand(prev token) bool {
	switch prev.typ {
	case tOpen, tOpenBracket, tComma, tColon, tOperate, tKeyword:
		return true
	}
	return false
}

func spaceBetween(prev token, prevUnary bool, t token) bool {
	switch t.typ {
	case tComma, tColon, tClose, tCloseBracket:
		return false
	}
	if prevUnary {
		return false
	}
	switch prev.typ {
	case tOpen, tOpenBracket:
		return false
	case tComma, tColon:
		return true
	}
	if t.typ == tOpen || t.typ == tOpenBracket {
		// calls and index expressions
		return !(prev.typ == tIdent || prev.typ == tClose || prev.typ == tCloseBracket)
	}
	return true
}
