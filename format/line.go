package format

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dhamidi/orgcst/org/parser"
)

// LineEncoder writes one tab separated line per node: the kind indented by
// depth, the start and end positions, the properties and, for leaves, the
// quoted text.
type LineEncoder struct {
	w    io.Writer
	tree *parser.Tree
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(tree *parser.Tree) error {
	e.tree = tree
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	e.tree.Walk(func(n *parser.Node, depth int) {
		start, end := e.tree.Buf.Position(n.Span.Start), e.tree.Buf.Position(n.Span.End)
		fmt.Fprintf(&sb, "%s%s\t%d:%d\t%d:%d\t%s",
			strings.Repeat("  ", depth),
			n.Kind,
			start.Line, start.Column,
			end.Line, end.Column,
			fieldsStr(n),
		)
		if n.IsLeaf() && n != e.tree.Root {
			fmt.Fprintf(&sb, "\t%q", e.tree.Text(n))
		}
		sb.WriteString("\n")
	})
	return []byte(sb.String()), nil
}

func fieldsStr(n *parser.Node) string {
	fields := n.Fields()
	var parts []string
	for _, a := range n.Affiliated {
		parts = append(parts, fmt.Sprintf("#+%s=%q", a.Key, a.Value))
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		switch v := fields[k].(type) {
		case string:
			parts = append(parts, fmt.Sprintf("%s=%q", k, v))
		case []string:
			parts = append(parts, k+"="+strings.Join(v, ","))
		case map[string]int:
			parts = append(parts, k+"="+timePointStr(v))
		default:
			parts = append(parts, fmt.Sprintf("%s=%v", k, v))
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}

func timePointStr(tp map[string]int) string {
	s := fmt.Sprintf("%04d-%02d-%02d", tp["year"], tp["month"], tp["day"])
	if h, ok := tp["hour"]; ok {
		s += fmt.Sprintf("T%02d:%02d", h, tp["minute"])
	}
	return s
}
