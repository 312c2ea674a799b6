// Package treefile reads surface form trees from YAML documents.
//
// A procedure is a mapping with the keys proc, sizes, args, preds and body:
//
//	proc: axpy
//	sizes: [n]
//	args:
//	  - {name: x, type: "R[n]", effect: in}
//	  - {name: y, type: "R[n]", effect: inout}
//	body:
//	  - for: i
//	    in: {par: [0, n]}
//	    do:
//	      - reduce: y
//	        idx: [i]
//	        rhs: {read: x, idx: [i]}
//
// Statements are mappings identified by one of the keys pass, assign, reduce,
// alloc, if or for. Expressions are identifiers, numbers or mappings identified
// by one of the keys read, const, binop, neg or par. A binary operation can
// also be written with the operator as the only key, {"+": [a, b]}. The
// operators * and - must be quoted in this form.
package treefile

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/hneemann/irprint"
	"github.com/hneemann/irprint/uast"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Decode reads a procedure
func Decode(data []byte) (proc *uast.Proc, err error) {
	defer recoverError(&err, "error decoding procedure")
	return decodeProc(document(data)), nil
}

// DecodeStmts reads a list of statements
func DecodeStmts(data []byte) (stmts []uast.Stmt, err error) {
	defer recoverError(&err, "error decoding statements")
	return decodeStmts(document(data)), nil
}

// DecodeExpr reads a single expression
func DecodeExpr(data []byte) (expr uast.Expr, err error) {
	defer recoverError(&err, "error decoding expression")
	return decodeExpr(document(data)), nil
}

func recoverError(err *error, message string) {
	rec := recover()
	if rec != nil {
		if e, ok := rec.(error); ok {
			*err = errors.WithMessage(e, message)
		} else {
			*err = errors.Errorf("%s: %v", message, rec)
		}
	}
}

func document(data []byte) *yaml.Node {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		panic(err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		panic(errors.New("empty document"))
	}
	return doc.Content[0]
}

func errorf(n *yaml.Node, m string, a ...any) error {
	return errors.Errorf("%s in line %d", fmt.Sprintf(m, a...), n.Line)
}

// unknown creates an error for an unknown word, adding the most similar candidate
func unknown(n *yaml.Node, what, word string, candidates []string) error {
	if s := suggest(word, candidates); s != "" {
		return errorf(n, "unknown %s %q, did you mean %q?", what, word, s)
	}
	return errorf(n, "unknown %s %q", what, word)
}

func suggest(word string, candidates []string) string {
	ranks := fuzzy.RankFindFold(word, candidates)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}
	best := ""
	bestDist := 3
	for _, c := range candidates {
		if d := fuzzy.LevenshteinDistance(strings.ToLower(word), c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

type fields struct {
	node   *yaml.Node
	keys   []string
	keyPos map[string]*yaml.Node
	values map[string]*yaml.Node
}

func fieldsOf(n *yaml.Node, what string) fields {
	if n.Kind != yaml.MappingNode {
		panic(errorf(n, "%s must be a mapping", what))
	}
	f := fields{node: n, keyPos: map[string]*yaml.Node{}, values: map[string]*yaml.Node{}}
	for i := 0; i+1 < len(n.Content); i += 2 {
		k := n.Content[i]
		if _, ok := f.values[k.Value]; ok {
			panic(errorf(k, "duplicate key %q", k.Value))
		}
		f.keys = append(f.keys, k.Value)
		f.keyPos[k.Value] = k
		f.values[k.Value] = n.Content[i+1]
	}
	return f
}

func (f fields) get(key string) (*yaml.Node, bool) {
	v, ok := f.values[key]
	return v, ok
}

func (f fields) require(key string) *yaml.Node {
	if v, ok := f.values[key]; ok {
		return v
	}
	panic(errorf(f.node, "key %q is missing", key))
}

// kind returns the key which identifies the kind of the mapping.
// Exactly one key of kinds is allowed.
func (f fields) kind(what string, kinds []string) string {
	found := ""
	for _, k := range f.keys {
		for _, kind := range kinds {
			if k == kind {
				if found != "" {
					panic(errorf(f.keyPos[k], "%s has two kinds: %q and %q", what, found, k))
				}
				found = k
			}
		}
	}
	if found == "" {
		if len(f.keys) == 0 {
			panic(errorf(f.node, "empty %s", what))
		}
		panic(unknown(f.keyPos[f.keys[0]], what, f.keys[0], kinds))
	}
	return found
}

// only checks that no keys other than the given ones are used
func (f fields) only(what string, allowed ...string) {
	for _, k := range f.keys {
		ok := false
		for _, a := range allowed {
			if k == a {
				ok = true
				break
			}
		}
		if !ok {
			panic(unknown(f.keyPos[k], what+" key", k, allowed))
		}
	}
}

func sequence(n *yaml.Node, what string) []*yaml.Node {
	if n.Kind == yaml.ScalarNode && n.Tag == "!!null" {
		return nil
	}
	if n.Kind != yaml.SequenceNode {
		panic(errorf(n, "%s must be a list", what))
	}
	return n.Content
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if !(unicode.IsLetter(r) || r == '_' || (i > 0 && unicode.IsDigit(r))) {
			return false
		}
	}
	return true
}

func ident(n *yaml.Node, what string) uast.Ident {
	if n.Kind != yaml.ScalarNode || !isIdent(n.Value) {
		panic(errorf(n, "%s must be an identifier", what))
	}
	return uast.Ident(n.Value)
}

func decodeProc(n *yaml.Node) *uast.Proc {
	f := fieldsOf(n, "procedure")
	f.only("procedure", "proc", "sizes", "args", "preds", "body")
	p := &uast.Proc{}
	if name, ok := f.get("proc"); ok && name.Tag != "!!null" {
		p.Name = string(ident(name, "procedure name"))
	}
	if sizes, ok := f.get("sizes"); ok {
		for _, s := range sequence(sizes, "sizes") {
			p.Sizes = append(p.Sizes, ident(s, "size"))
		}
	}
	if args, ok := f.get("args"); ok {
		for _, a := range sequence(args, "args") {
			p.Args = append(p.Args, decodeArg(a))
		}
	}
	if preds, ok := f.get("preds"); ok {
		p.Preds = decodeExprList(preds, "preds")
	}
	if body, ok := f.get("body"); ok {
		p.Body = decodeStmts(body)
	}
	return p
}

var effects = map[string]uast.Effect{
	"in":    uast.In,
	"out":   uast.Out,
	"inout": uast.InOut,
}

func decodeArg(n *yaml.Node) *uast.FnArg {
	f := fieldsOf(n, "argument")
	f.only("argument", "name", "type", "effect")
	a := &uast.FnArg{
		Name: ident(f.require("name"), "argument name"),
		Type: decodeType(f.require("type")),
	}
	if e, ok := f.get("effect"); ok {
		effect, ok := effects[strings.ToLower(e.Value)]
		if !ok {
			panic(unknown(e, "effect", e.Value, []string{"in", "out", "inout"}))
		}
		a.Effect = effect
	}
	return a
}

// decodeType reads types like R, size or R[n, 4]
func decodeType(n *yaml.Node) uast.Type {
	if n.Kind != yaml.ScalarNode {
		panic(errorf(n, "type must be a string"))
	}
	str := strings.TrimSpace(n.Value)
	base, rest, isTensor := strings.Cut(str, "[")
	base = strings.TrimSpace(base)
	if !isIdent(base) {
		panic(errorf(n, "invalid type %q", str))
	}
	if !isTensor {
		return uast.Scalar(base)
	}
	dimStr, ok := strings.CutSuffix(rest, "]")
	if !ok {
		panic(errorf(n, "invalid type %q", str))
	}
	var dims []uast.Expr
	for _, d := range strings.Split(dimStr, ",") {
		d = strings.TrimSpace(d)
		if v, err := strconv.ParseInt(d, 10, 64); err == nil {
			dims = append(dims, uast.Num(v))
		} else if isIdent(d) {
			dims = append(dims, uast.Var(d))
		} else {
			panic(errorf(n, "invalid dimension %q in type %q", d, str))
		}
	}
	return uast.Tensor(base, dims...)
}

var stmtKinds = []string{"pass", "assign", "reduce", "alloc", "if", "for"}

func decodeStmts(n *yaml.Node) []uast.Stmt {
	var list []uast.Stmt
	for _, s := range sequence(n, "statements") {
		list = append(list, decodeStmt(s))
	}
	return list
}

func decodeStmt(n *yaml.Node) uast.Stmt {
	if n.Kind == yaml.ScalarNode {
		if n.Value == "pass" {
			return &uast.Pass{}
		}
		panic(unknown(n, "statement", n.Value, stmtKinds))
	}
	f := fieldsOf(n, "statement")
	switch kind := f.kind("statement", stmtKinds); kind {
	case "pass":
		f.only("pass", "pass")
		return &uast.Pass{}
	case "assign", "reduce":
		f.only(kind, kind, "idx", "rhs")
		name := ident(f.require(kind), "target")
		var idx []uast.Expr
		if i, ok := f.get("idx"); ok {
			idx = decodeExprList(i, "idx")
		}
		rhs := decodeExpr(f.require("rhs"))
		if kind == "assign" {
			return &uast.Assign{Name: name, Idx: idx, Rhs: rhs}
		}
		return &uast.Reduce{Name: name, Idx: idx, Rhs: rhs}
	case "alloc":
		f.only(kind, "alloc", "type")
		return &uast.Alloc{
			Name: ident(f.require("alloc"), "allocated name"),
			Type: decodeType(f.require("type")),
		}
	case "if":
		f.only(kind, "if", "then", "else")
		s := &uast.If{Cond: decodeExpr(f.require("if"))}
		if t, ok := f.get("then"); ok {
			s.Body = decodeStmts(t)
		}
		if e, ok := f.get("else"); ok {
			s.Orelse = decodeStmts(e)
		}
		return s
	default:
		f.only(kind, "for", "in", "do")
		s := &uast.ForAll{
			Iter: ident(f.require("for"), "loop variable"),
			Cond: decodeExpr(f.require("in")),
		}
		if d, ok := f.get("do"); ok {
			s.Body = decodeStmts(d)
		}
		return s
	}
}

var exprKinds = []string{"read", "const", "binop", "neg", "par"}

var operators = []string{"or", "and", "<", ">", "<=", ">=", "==", "+", "-", "*", "/"}

func isOperator(op string) bool {
	_, ok := irprint.Precedence(op)
	return ok
}

func decodeExprList(n *yaml.Node, what string) []uast.Expr {
	var list []uast.Expr
	for _, e := range sequence(n, what) {
		list = append(list, decodeExpr(e))
	}
	return list
}

func decodeExpr(n *yaml.Node) uast.Expr {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag == "!!str" {
			return uast.Var(string(ident(n, "variable")))
		}
		return uast.Num(constant(n))
	case yaml.MappingNode:
		f := fieldsOf(n, "expression")
		if len(f.keys) == 1 && isOperator(f.keys[0]) {
			op := f.keys[0]
			operands := sequence(f.values[op], "operands")
			if len(operands) != 2 {
				panic(errorf(n, "operator %q requires two operands", op))
			}
			return uast.Op(op, decodeExpr(operands[0]), decodeExpr(operands[1]))
		}
		switch kind := f.kind("expression", exprKinds); kind {
		case "read":
			f.only(kind, "read", "idx")
			var idx []uast.Expr
			if i, ok := f.get("idx"); ok {
				idx = decodeExprList(i, "idx")
			}
			return uast.Var(string(ident(f.values["read"], "variable")), idx...)
		case "const":
			f.only(kind, "const")
			return uast.Num(constant(f.values["const"]))
		case "binop":
			f.only(kind, "binop", "lhs", "rhs")
			opNode := f.values["binop"]
			if !isOperator(opNode.Value) {
				panic(unknown(opNode, "operator", opNode.Value, operators))
			}
			return uast.Op(opNode.Value, decodeExpr(f.require("lhs")), decodeExpr(f.require("rhs")))
		case "neg":
			f.only(kind, "neg")
			return uast.Neg(decodeExpr(f.values["neg"]))
		default:
			f.only(kind, "par")
			bounds := sequence(f.values["par"], "par")
			if len(bounds) != 2 {
				panic(errorf(n, "par requires two bounds"))
			}
			return uast.Par(decodeExpr(bounds[0]), decodeExpr(bounds[1]))
		}
	default:
		panic(errorf(n, "expression expected"))
	}
}

func constant(n *yaml.Node) any {
	if n.Kind == yaml.ScalarNode {
		switch n.Tag {
		case "!!int":
			if v, err := strconv.ParseInt(n.Value, 0, 64); err == nil {
				return v
			}
		case "!!float":
			if v, err := strconv.ParseFloat(n.Value, 64); err == nil {
				return v
			}
		case "!!bool":
			if v, err := strconv.ParseBool(n.Value); err == nil {
				return v
			}
		}
	}
	panic(errorf(n, "invalid constant %q", n.Value))
}
