package format

import (
	"github.com/stretchr/testify/assert"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"ident", "a", "a"},
		{"binop", "a+b*c", "a + b * c"},
		{"unary", "-a + b", "-a + b"},
		{"unary paren", "-(a + b)", "-(a + b)"},
		{"double neg", "a - --b", "a - --b"},
		{"index", "a[i,j + 1]", "a[i, j + 1]"},
		{"assign", "x = a[i]", "x = a[i]"},
		{"reduce", "x += -1", "x += -1"},
		{"alloc", "t : R[n,m]", "t: R[n, m]"},
		{"range", "par(0,n)", "par(0, n)"},
		{"keyword paren", "if (a or b) and c:\n  pass", "if (a or b) and c:\n    pass"},
		{"signature", "def f(n : size,A : R[n] @ IN):\n  pass", "def f(n: size, A: R[n] @ IN):\n    pass"},
		{"assert", "assert n>0", "assert n > 0"},
		{"placeholder type", "t : ?", "t: ?"},
		{"placeholder effect", "x : R[n] @ ?", "x: R[n] @ ?"},
		{"string", `s = "it's"+"a:b"`, `s = "it's" + "a:b"`},
		{"float", "x = -1.5e-05*2.0", "x = -1.5e-05 * 2.0"},
		{"blank lines", "a\n\n  \nb", "a\nb"},
		{"nested",
			"for i in par(0,n):\n  if i < 2:\n    x = i\n  else:\n    pass\ny = 1",
			"for i in par(0, n):\n    if i < 2:\n        x = i\n    else:\n        pass\ny = 1"},
		{"dedent two levels",
			"if a:\n  if b:\n    pass\nx = 1",
			"if a:\n    if b:\n        pass\nx = 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Default.Format(tt.raw)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatWidth(t *testing.T) {
	got, ok := New(2).Format("if a:\n      x = 1")
	assert.True(t, ok)
	assert.Equal(t, "if a:\n  x = 1", got)
}

func TestFormatRejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		err  string
	}{
		{"invalid char", "a $ b", "invalid text in line 1: invalid character '$'"},
		{"unclosed", "a[i", "invalid text in line 1: unclosed '['"},
		{"unbalanced", "x = 1\na)", "invalid text in line 2: unbalanced ')'"},
		{"mismatch", "a[i)", "invalid text in line 1: unbalanced ')'"},
		{"no block", "if a:\nx = 1", "expected an indented block in line 2"},
		{"no block at end", "x = 1\nif a:", "expected an indented block in line 2"},
		{"unexpected indent", "x = 1\n  y = 2", "unexpected indentation in line 2"},
		{"bad dedent", "if a:\n    x = 1\n  y = 2", "unexpected indentation in line 3"},
		{"tab", "if a:\n\tx = 1", "tab in indentation in line 2"},
		{"unterminated string", `s = "a`, "invalid text in line 1: invalid character '\"'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Default.Format(tt.raw)
			assert.False(t, ok)
			assert.Equal(t, tt.raw, got)

			_, err := Default.Reformat(tt.raw)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.err)
		})
	}
}

func tokens(t *testing.T, text string) []string {
	var list []string
	for _, line := range strings.Split(text, "\n") {
		tok := newTokenizer(line)
		for to := tok.next(); to.typ != tEol; to = tok.next() {
			assert.NotEqual(t, tInvalid, to.typ)
			list = append(list, to.image)
		}
	}
	return list
}

func TestFormatKeepsTokenOrder(t *testing.T) {
	raw := "def gemm(n : size,A : R[n,n] @ IN,C : R[n,n] @ OUT):\n" +
		"  for i in par(0,n):\n" +
		"    for j in par(0,n):\n" +
		"      C[i,j] += A[i,j]*-A[j,i] - (A[i,i] - A[j,j])"
	got, ok := Default.Format(raw)
	assert.True(t, ok)
	assert.Equal(t, tokens(t, raw), tokens(t, got))
}
