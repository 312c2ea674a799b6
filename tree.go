package irprint

import (
	"io"
	"strconv"

	"github.com/ddddddO/gtree"
)

// Tree writes the structure of a procedure as a tree diagram.
// Every block of the printed text becomes a node, the statements
// of the block are its children.
func (p *Printer[P, A, S, E]) Tree(w io.Writer, proc P) (err error) {
	defer func() {
		rec := recover()
		if rec != nil {
			err = toError(rec)
		}
	}()

	out := &nodes{}
	newRender(p.shape, out).proc(proc)
	return gtree.OutputProgrammably(w, out.root)
}

// nodes is the sink used to create a tree. The children are numbered
// because gtree merges siblings with equal text.
type nodes struct {
	root  *gtree.Node
	stack []*gtree.Node
	count []int
}

func (n *nodes) add(text string) *gtree.Node {
	if n.root == nil {
		n.root = gtree.NewRoot(text)
		return n.root
	}
	top := len(n.stack) - 1
	n.count[top]++
	return n.stack[top].Add(strconv.Itoa(n.count[top]) + ": " + text)
}

func (n *nodes) line(text string) {
	n.add(text)
}

func (n *nodes) open(header string) {
	n.stack = append(n.stack, n.add(header))
	n.count = append(n.count, 0)
}

func (n *nodes) close() {
	n.stack = n.stack[:len(n.stack)-1]
	n.count = n.count[:len(n.count)-1]
}
