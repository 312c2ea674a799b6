package format

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenType int

const (
	tIdent tokenType = iota
	tKeyword
	tNumber
	tOperate
	tOpen
	tClose
	tOpenBracket
	tCloseBracket
	tComma
	tColon
	tString
	tEol
	tInvalid
)

type token struct {
	typ   tokenType
	image string
}

func (t token) String() string {
	return fmt.Sprintf("'%v'", t.image)
}

var keywords = map[string]bool{
	"def":    true,
	"if":     true,
	"else":   true,
	"for":    true,
	"in":     true,
	"pass":   true,
	"assert": true,
	"and":    true,
	"or":     true,
	"not":    true,
}

// operators sorted by length, the longest match wins
var operators = []string{"+=", "-=", "*=", "/=", "<=", ">=", "==", "!=", "+", "-", "*", "/", "<", ">", "=", "@"}

// matcher returns true if the rune can continue the current token
type matcher func(r rune) bool

func simpleNumber(r rune) (matcher, bool) {
	if unicode.IsDigit(r) {
		var last rune
		return func(r rune) bool {
			ok := unicode.IsDigit(r) || r == '.' || r == 'e' || (last == 'e' && r == '-') || (last == 'e' && r == '+')
			last = r
			return ok
		}, true
	} else {
		return nil, false
	}
}

func simpleIdentifier(r rune) (matcher, bool) {
	if unicode.IsLetter(r) || r == '_' {
		return func(r rune) bool {
			return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
		}, true
	} else {
		return nil, false
	}
}

// tokenizer splits a single line of printed text into tokens
type tokenizer struct {
	str     string
	isToken bool
	tok     token
}

func newTokenizer(line string) *tokenizer {
	return &tokenizer{str: line}
}

func (t *tokenizer) peek() token {
	if !t.isToken {
		t.tok = t.scan()
		t.isToken = true
	}
	return t.tok
}

func (t *tokenizer) next() token {
	tok := t.peek()
	t.isToken = false
	return tok
}

func (t *tokenizer) scan() token {
	t.str = strings.TrimLeft(t.str, " ")
	if len(t.str) == 0 {
		return token{tEol, ""}
	}
	c, size := utf8.DecodeRuneInString(t.str)
	switch c {
	case '(':
		return t.single(tOpen, size)
	case ')':
		return t.single(tClose, size)
	case '[':
		return t.single(tOpenBracket, size)
	case ']':
		return t.single(tCloseBracket, size)
	case ',':
		return t.single(tComma, size)
	case ':':
		return t.single(tColon, size)
	case '?':
		// placeholder for a missing type or effect
		return t.single(tIdent, size)
	case '"':
		return t.quoted()
	}
	if m, ok := simpleNumber(c); ok {
		return token{tNumber, t.read(m)}
	}
	if m, ok := simpleIdentifier(c); ok {
		image := t.read(m)
		if keywords[image] {
			return token{tKeyword, image}
		}
		return token{tIdent, image}
	}
	for _, op := range operators {
		if strings.HasPrefix(t.str, op) {
			t.str = t.str[len(op):]
			return token{tOperate, op}
		}
	}
	return t.single(tInvalid, size)
}

func (t *tokenizer) single(typ tokenType, size int) token {
	image := t.str[:size]
	t.str = t.str[size:]
	return token{typ, image}
}

func (t *tokenizer) read(valid matcher) string {
	l := 0
	for l < len(t.str) {
		c, size := utf8.DecodeRuneInString(t.str[l:])
		if !valid(c) {
			break
		}
		l += size
	}
	image := t.str[:l]
	t.str = t.str[l:]
	return image
}

// quoted reads a string literal. A literal without closing quote is invalid.
func (t *tokenizer) quoted() token {
	escaped := false
	for i, c := range t.str[1:] {
		switch {
		case escaped:
			escaped = false
		case c == '\\':
			escaped = true
		case c == '"':
			image := t.str[:i+2]
			t.str = t.str[i+2:]
			return token{tString, image}
		}
	}
	return t.single(tInvalid, 1)
}
