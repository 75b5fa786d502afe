package parser

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/dhamidi/orgcst/org/buffer"
)

// Tree is a parsed document: the root node plus the buffer its spans index.
type Tree struct {
	Buf  *buffer.Buffer
	Root *Node
}

// Text returns the source text covered by n.
func (t *Tree) Text(n *Node) string {
	return t.Buf.Text(n.Span)
}

// Walk calls visit once per node in document order, depth first.
func (t *Tree) Walk(visit func(n *Node, depth int)) {
	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		visit(n, depth)
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	walk(t.Root, 0)
}

// Inspect walks the tree in document order; returning false from f skips
// the children of the current node.
func (t *Tree) Inspect(f func(n *Node) bool) {
	var inspect func(n *Node)
	inspect = func(n *Node) {
		if !f(n) {
			return
		}
		for _, c := range n.Children {
			inspect(c)
		}
	}
	inspect(t.Root)
}

// Leaves returns every childless node in document order. Zero-width nodes,
// such as the cell between "||", cover no text and are skipped.
func (t *Tree) Leaves() []*Node {
	var leaves []*Node
	t.Walk(func(n *Node, _ int) {
		if n.IsLeaf() && n != t.Root && !n.Span.Empty() {
			leaves = append(leaves, n)
		}
	})
	return leaves
}

// CheckCoverage verifies that the leaf spans, concatenated in order,
// reproduce the buffer with no gaps and no overlaps.
func (t *Tree) CheckCoverage() error {
	off := 0
	for _, leaf := range t.Leaves() {
		if leaf.Span.Start != off {
			return fmt.Errorf("%s leaf at %d: expected offset %d", leaf.Kind, leaf.Span.Start, off)
		}
		off = leaf.Span.End
	}
	if off != t.Buf.Len() {
		return fmt.Errorf("leaves end at %d, buffer has %d bytes", off, t.Buf.Len())
	}
	return nil
}

// Headlines returns every headline in document order.
func (t *Tree) Headlines() []*Node {
	var result []*Node
	t.Inspect(func(n *Node) bool {
		if n.Kind == KindHeadline {
			result = append(result, n)
		}
		return n.Kind == KindDocument || n.Kind == KindHeadline
	})
	return result
}

// Title returns the title text of a headline without its keyword, priority
// and tags.
func (t *Tree) Title(h *Node) string {
	if p, ok := h.Props.(*HeadlineProps); ok {
		return p.RawValue
	}
	return strings.TrimSpace(t.Text(h))
}

// Equal reports whether a and b are structurally identical: same kinds,
// properties, affiliated keywords and shape, and the same text in Text and
// Raw leaves and in atomic objects. Spans and Token text are ignored, and
// Blank leaves compare by the number of lines they cover.
func Equal(a, b *Tree) bool {
	return Diff(a, b) == ""
}

// Diff returns a description of the first structural difference between a
// and b, or the empty string when they are equal.
func Diff(a, b *Tree) string {
	return diffNode(a, a.Root, b, b.Root, a.Root.Kind.String())
}

func diffNode(ta *Tree, a *Node, tb *Tree, b *Node, path string) string {
	if a.Kind != b.Kind {
		return fmt.Sprintf("%s: kind %s != %s", path, a.Kind, b.Kind)
	}
	if !reflect.DeepEqual(a.Props, b.Props) {
		return fmt.Sprintf("%s: props %+v != %+v", path, a.Props, b.Props)
	}
	if len(a.Affiliated) != len(b.Affiliated) || (len(a.Affiliated) > 0 && !reflect.DeepEqual(a.Affiliated, b.Affiliated)) {
		return fmt.Sprintf("%s: affiliated %v != %v", path, a.Affiliated, b.Affiliated)
	}
	switch {
	case a.Kind == KindBlank:
		if la, lb := BlankLines(ta.Text(a)), BlankLines(tb.Text(b)); la != lb {
			return fmt.Sprintf("%s: %d blank lines != %d", path, la, lb)
		}
		return ""
	case a.IsLeaf() && b.IsLeaf() && hasLeafText(a.Kind):
		if ta.Text(a) != tb.Text(b) {
			return fmt.Sprintf("%s: text %q != %q", path, ta.Text(a), tb.Text(b))
		}
		return ""
	}
	ca, cb := structural(a.Children), structural(b.Children)
	if len(ca) != len(cb) {
		return fmt.Sprintf("%s: %d children != %d", path, len(ca), len(cb))
	}
	for i := range ca {
		if d := diffNode(ta, ca[i], tb, cb[i], fmt.Sprintf("%s/%d:%s", path, i, ca[i].Kind)); d != "" {
			return d
		}
	}
	return ""
}

// hasLeafText reports whether the text of a childless node of kind k is
// content rather than syntax.
func hasLeafText(k Kind) bool {
	return k == KindText || k == KindRaw || (k.Category() == CategoryObject && k != KindTableCell)
}

func structural(children []*Node) []*Node {
	result := make([]*Node, 0, len(children))
	for _, c := range children {
		if c.Kind != KindToken {
			result = append(result, c)
		}
	}
	return result
}

// BlankLines counts the lines covered by a run of blank lines.
func BlankLines(text string) int {
	n := strings.Count(text, "\n")
	if text != "" && !strings.HasSuffix(text, "\n") {
		n++
	}
	return n
}
