package format

import (
	"errors"
	"fmt"

	"github.com/dhamidi/orgcst/org/buffer"
	"github.com/dhamidi/orgcst/org/parser"
)

// ErrMalformedTree is returned when a tree handed to the serializer breaks
// the structural rules every parsed tree satisfies.
var ErrMalformedTree = errors.New("malformed tree")

type TreeError struct {
	Kind   parser.Kind
	Span   buffer.Span
	Reason string
}

func (e *TreeError) Error() string {
	return fmt.Sprintf("%v: %s [%d,%d): %s", ErrMalformedTree, e.Kind, e.Span.Start, e.Span.End, e.Reason)
}

func (e *TreeError) Unwrap() error {
	return ErrMalformedTree
}

// Validate checks that tree can be serialized: the root is a document
// spanning the whole buffer, children are contiguous and inside their
// parent, and every node carries the properties its kind requires.
func Validate(tree *parser.Tree) error {
	if tree == nil || tree.Buf == nil || tree.Root == nil {
		return fmt.Errorf("%w: tree has no buffer or root", ErrMalformedTree)
	}
	root := tree.Root
	if root.Kind != parser.KindDocument {
		return malformed(root, "root is not a document")
	}
	if root.Span != (buffer.Span{Start: 0, End: tree.Buf.Len()}) {
		return malformed(root, fmt.Sprintf("root does not span the buffer of %d bytes", tree.Buf.Len()))
	}
	return validateNode(tree, root)
}

func validateNode(tree *parser.Tree, n *parser.Node) error {
	if tree == nil || tree.Buf == nil {
		return fmt.Errorf("%w: tree has no buffer", ErrMalformedTree)
	}
	if n == nil {
		return fmt.Errorf("%w: nil node", ErrMalformedTree)
	}
	if n.Span.Start < 0 || n.Span.End > tree.Buf.Len() || n.Span.Start > n.Span.End {
		return malformed(n, fmt.Sprintf("span outside buffer of %d bytes", tree.Buf.Len()))
	}
	if err := checkShape(n); err != nil {
		return err
	}
	if err := checkProps(n); err != nil {
		return err
	}
	off := n.Span.Start
	for _, c := range n.Children {
		if c == nil {
			return malformed(n, "nil child")
		}
		if c.Span.Start != off {
			return malformed(c, fmt.Sprintf("child starts at %d, expected %d", c.Span.Start, off))
		}
		if err := validateNode(tree, c); err != nil {
			return err
		}
		off = c.Span.End
	}
	if len(n.Children) > 0 && off != n.Span.End {
		return malformed(n, fmt.Sprintf("children end at %d", off))
	}
	return nil
}

func checkShape(n *parser.Node) error {
	switch n.Kind {
	case parser.KindToken, parser.KindBlank, parser.KindText, parser.KindRaw:
		if len(n.Children) > 0 {
			return malformed(n, "leaf has children")
		}
		return nil
	case parser.KindDocument, parser.KindTableCell:
		return nil
	}
	if n.Kind.IsElement() && len(n.Children) == 0 {
		return malformed(n, "element has no children")
	}
	if len(n.Affiliated) > 0 && (len(n.Children) == 0 || n.Children[0].Kind != parser.KindToken) {
		return malformed(n, "affiliated keywords without their token")
	}
	return nil
}

func checkProps(n *parser.Node) error {
	var ok bool
	switch n.Kind {
	case parser.KindHeadline:
		p, is := n.Props.(*parser.HeadlineProps)
		ok = is && p.Level > 0
	case parser.KindItem:
		p, is := n.Props.(*parser.ItemProps)
		ok = is && p.Bullet != ""
	case parser.KindKeyword:
		p, is := n.Props.(*parser.KeywordProps)
		ok = is && p.Key != ""
	case parser.KindBabelCall:
		_, ok = n.Props.(*parser.BabelCallProps)
	case parser.KindNodeProperty:
		p, is := n.Props.(*parser.NodePropertyProps)
		ok = is && p.Key != ""
	case parser.KindDrawer, parser.KindPropertyDrawer:
		p, is := n.Props.(*parser.DrawerProps)
		ok = is && (p.Name != "" || n.Kind == parser.KindPropertyDrawer) && hasOpening(n)
	case parser.KindCenterBlock, parser.KindQuoteBlock, parser.KindSpecialBlock, parser.KindDynamicBlock,
		parser.KindSrcBlock, parser.KindExampleBlock, parser.KindExportBlock, parser.KindCommentBlock,
		parser.KindVerseBlock:
		p, is := n.Props.(*parser.BlockProps)
		ok = is && (p.Type != "" || n.Kind == parser.KindDynamicBlock) && hasOpening(n)
	case parser.KindTable:
		_, ok = n.Props.(*parser.TableProps)
	case parser.KindTableRow:
		_, ok = n.Props.(*parser.TableRowProps)
	default:
		return nil
	}
	if !ok {
		return malformed(n, fmt.Sprintf("missing or invalid properties %T", n.Props))
	}
	return nil
}

// hasOpening reports whether a block or drawer starts with its delimiter
// token after any affiliated keyword lines.
func hasOpening(n *parser.Node) bool {
	i := 0
	if len(n.Affiliated) > 0 {
		i = 1
	}
	return i < len(n.Children) && n.Children[i].Kind == parser.KindToken
}

func malformed(n *parser.Node, reason string) error {
	return &TreeError{Kind: n.Kind, Span: n.Span, Reason: reason}
}
