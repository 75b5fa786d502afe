package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/orgcst/org/parser"
)

type ASTJSONEncoder struct {
	w    io.Writer
	tree *parser.Tree
}

func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w}
}

func (e *ASTJSONEncoder) Encode(tree *parser.Tree) error {
	e.tree = tree
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *ASTJSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(nodeToAST(e.tree, e.tree.Root), "", "  ")
}

// astNode mirrors a parser.Node with resolved positions. It is shared by
// the JSON and YAML encoders.
type astNode struct {
	Kind       string          `json:"kind" yaml:"kind"`
	Span       astSpan         `json:"span" yaml:"span"`
	Props      map[string]any  `json:"props,omitempty" yaml:"props,omitempty"`
	Affiliated []astAffiliated `json:"affiliated,omitempty" yaml:"affiliated,omitempty"`
	Text       string          `json:"text,omitempty" yaml:"text,omitempty"`
	Children   []*astNode      `json:"children,omitempty" yaml:"children,omitempty"`
}

type astSpan struct {
	Start astPosition `json:"start" yaml:"start"`
	End   astPosition `json:"end" yaml:"end"`
}

type astPosition struct {
	Offset int `json:"offset" yaml:"offset"`
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

type astAffiliated struct {
	Key    string `json:"key" yaml:"key"`
	Option string `json:"option,omitempty" yaml:"option,omitempty"`
	Value  string `json:"value" yaml:"value"`
}

func nodeToAST(tree *parser.Tree, n *parser.Node) *astNode {
	start, end := tree.Buf.Position(n.Span.Start), tree.Buf.Position(n.Span.End)
	an := &astNode{
		Kind: n.Kind.String(),
		Span: astSpan{
			Start: astPosition{Offset: start.Offset, Line: start.Line, Column: start.Column},
			End:   astPosition{Offset: end.Offset, Line: end.Line, Column: end.Column},
		},
		Props: n.Fields(),
	}

	for _, a := range n.Affiliated {
		an.Affiliated = append(an.Affiliated, astAffiliated{Key: a.Key, Option: a.Option, Value: a.Value})
	}

	if n.IsLeaf() && n != tree.Root {
		an.Text = tree.Text(n)
	}

	if len(n.Children) > 0 {
		an.Children = make([]*astNode, len(n.Children))
		for i, child := range n.Children {
			an.Children[i] = nodeToAST(tree, child)
		}
	}

	return an
}
