package format

import (
	"bytes"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/dhamidi/orgcst/org/parser"
)

// tagColumn is the column at which aligned headline tags end.
const tagColumn = 77

// OrgPrinter writes a syntax tree back as canonical Org text.
type OrgPrinter struct {
	w    io.Writer
	tree *parser.Tree
	out  bytes.Buffer
}

func NewOrgPrinter(w io.Writer) *OrgPrinter {
	return &OrgPrinter{w: w}
}

// Print validates tree and writes its canonical form.
func (p *OrgPrinter) Print(tree *parser.Tree) error {
	if err := Validate(tree); err != nil {
		return err
	}
	return p.print(tree, tree.Root)
}

// PrintNode writes the canonical form of the subtree rooted at n.
func (p *OrgPrinter) PrintNode(tree *parser.Tree, n *parser.Node) error {
	if err := validateNode(tree, n); err != nil {
		return err
	}
	return p.print(tree, n)
}

func (p *OrgPrinter) print(tree *parser.Tree, n *parser.Node) error {
	p.tree = tree
	p.out.Reset()
	p.printNode(n)
	_, err := p.w.Write(p.out.Bytes())
	return err
}

// Serialize returns the canonical Org text of tree. Parsing the result
// yields a tree equal to tree.
func Serialize(tree *parser.Tree) ([]byte, error) {
	var buf bytes.Buffer
	if err := NewOrgPrinter(&buf).Print(tree); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SerializeNode returns the canonical text of a single subtree.
func SerializeNode(tree *parser.Tree, n *parser.Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := NewOrgPrinter(&buf).PrintNode(tree, n); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (p *OrgPrinter) printNode(n *parser.Node) {
	switch n.Kind {
	case parser.KindHeadline:
		p.printHeadline(n)
	case parser.KindItem:
		p.printItem(n)
	case parser.KindKeyword:
		p.printAffiliated(n)
		p.printKeyword(n)
	case parser.KindBabelCall:
		p.printAffiliated(n)
		p.printBabelCall(n)
	case parser.KindCenterBlock, parser.KindQuoteBlock, parser.KindSpecialBlock, parser.KindDynamicBlock,
		parser.KindSrcBlock, parser.KindExampleBlock, parser.KindExportBlock, parser.KindCommentBlock,
		parser.KindVerseBlock:
		p.printAffiliated(n)
		p.printBlock(n)
	case parser.KindDrawer, parser.KindPropertyDrawer:
		p.printAffiliated(n)
		p.printDrawer(n)
	case parser.KindNodeProperty:
		p.printNodeProperty(n)
	case parser.KindTable:
		p.printAffiliated(n)
		p.printTable(n)
	case parser.KindBlank:
		p.write(strings.Repeat("\n", parser.BlankLines(p.tree.Text(n))))
	default:
		p.printAffiliated(n)
		p.printGenericNode(n)
	}
}

// printGenericNode prints leaves verbatim and everything else as the
// concatenation of its children.
func (p *OrgPrinter) printGenericNode(n *parser.Node) {
	if n.IsLeaf() {
		p.write(p.tree.Text(n))
		return
	}
	for _, c := range p.body(n) {
		p.printNode(c)
	}
}

func (p *OrgPrinter) printChildren(children []*parser.Node) {
	for _, c := range children {
		p.printNode(c)
	}
}

// body drops the leading token that holds the affiliated keyword lines of
// n, which printAffiliated has already written.
func (p *OrgPrinter) body(n *parser.Node) []*parser.Node {
	if len(n.Affiliated) > 0 && len(n.Children) > 0 && n.Children[0].Kind == parser.KindToken {
		return n.Children[1:]
	}
	return n.Children
}

func (p *OrgPrinter) printAffiliated(n *parser.Node) {
	if len(n.Affiliated) == 0 {
		return
	}
	first := p.tree.Buf.LineAt(n.Span.Start)
	for i, a := range n.Affiliated {
		p.write(p.indentOf(first + i))
		p.write("#+" + strings.ToLower(a.Key))
		if a.Option != "" {
			p.write("[" + a.Option + "]")
		}
		p.write(":")
		if a.Value != "" {
			p.write(" " + a.Value)
		}
		p.write("\n")
	}
}

func (p *OrgPrinter) printHeadline(n *parser.Node) {
	props := n.Props.(*parser.HeadlineProps)

	var parts []string
	if props.TodoKeyword != "" {
		parts = append(parts, props.TodoKeyword)
	}
	if props.Priority != 0 {
		parts = append(parts, "[#"+string(props.Priority)+"]")
	}
	if props.Commented {
		parts = append(parts, "COMMENT")
	}
	if props.RawValue != "" {
		parts = append(parts, props.RawValue)
	}

	line := strings.Repeat("*", props.Level) + " " + strings.Join(parts, " ")
	if len(props.Tags) > 0 {
		tags := ":" + strings.Join(props.Tags, ":") + ":"
		switch {
		case len(parts) == 0:
			line += tags
		case props.TagsAligned:
			pad := tagColumn - runewidth.StringWidth(line) - runewidth.StringWidth(tags)
			if pad < 2 {
				pad = 2
			}
			line += strings.Repeat(" ", pad) + tags
		default:
			line += " " + tags
		}
	}
	p.write(line + "\n")
	p.printChildren(sectionChildren(n))
}

// sectionChildren returns the children of a headline or item that follow
// its first line: elements and blank lines.
func sectionChildren(n *parser.Node) []*parser.Node {
	for i, c := range n.Children {
		if c.Kind.IsElement() || c.Kind == parser.KindBlank {
			return n.Children[i:]
		}
	}
	return nil
}

func (p *OrgPrinter) printItem(n *parser.Node) {
	props := n.Props.(*parser.ItemProps)
	line := p.tree.Buf.LineAt(n.Span.Start)

	p.write(p.indentOf(line) + props.Bullet)
	if props.Counter != "" {
		p.write(" [@" + props.Counter + "]")
	}
	switch props.Checkbox {
	case "on":
		p.write(" [X]")
	case "off":
		p.write(" [ ]")
	case "trans":
		p.write(" [-]")
	}
	if props.Tag != "" {
		p.write(" " + props.Tag + " ::")
	}

	rest := sectionChildren(n)
	if len(rest) > 0 && rest[0].Span.Start < p.tree.Buf.Line(line).End {
		p.write(" ")
	} else {
		p.write("\n")
	}
	p.printChildren(rest)
}

func (p *OrgPrinter) printKeyword(n *parser.Node) {
	props := n.Props.(*parser.KeywordProps)
	p.write(p.indentOf(p.tree.Buf.LineAt(n.Span.Start)))
	p.write("#+" + strings.ToLower(props.Key))
	if props.Option != "" {
		p.write("[" + props.Option + "]")
	}
	p.write(":")
	if props.Value != "" {
		p.write(" " + props.Value)
	}
	p.write("\n")
}

func (p *OrgPrinter) printBabelCall(n *parser.Node) {
	props := n.Props.(*parser.BabelCallProps)
	p.write(p.indentOf(p.lineOf(n)) + "#+call:")
	if props.Call != "" {
		p.write(" " + props.Call)
	}
	p.write("\n")
}

// printBlock rewrites the delimiter lines of a block and keeps its body.
// The closing line is only written when the source had one.
func (p *OrgPrinter) printBlock(n *parser.Node) {
	props := n.Props.(*parser.BlockProps)
	children := p.body(n)
	open := children[0]

	p.write(p.indentOf(p.tree.Buf.LineAt(open.Span.Start)))
	if n.Kind == parser.KindDynamicBlock {
		p.write("#+begin:")
		if props.Type != "" {
			p.write(" " + props.Type)
		}
	} else {
		p.write("#+begin_" + props.Type)
	}
	if props.Parameters != "" {
		p.write(" " + props.Parameters)
	}
	p.write("\n")

	inner := children[1:]
	var end *parser.Node
	if !props.Unterminated && len(inner) > 0 {
		end = inner[len(inner)-1]
		inner = inner[:len(inner)-1]
	}
	p.printChildren(inner)

	if end != nil {
		p.write(p.indentOf(p.tree.Buf.LineAt(end.Span.Start)))
		if n.Kind == parser.KindDynamicBlock {
			p.write("#+end:\n")
		} else {
			p.write("#+end_" + props.Type + "\n")
		}
	}
}

func (p *OrgPrinter) printDrawer(n *parser.Node) {
	props := n.Props.(*parser.DrawerProps)
	children := p.body(n)
	open := children[0]

	name := props.Name
	if n.Kind == parser.KindPropertyDrawer {
		name = "PROPERTIES"
	}
	p.write(p.indentOf(p.tree.Buf.LineAt(open.Span.Start)) + ":" + name + ":\n")

	inner := children[1:]
	var end *parser.Node
	if !props.Unterminated && len(inner) > 0 {
		end = inner[len(inner)-1]
		inner = inner[:len(inner)-1]
	}
	p.printChildren(inner)

	if end != nil {
		p.write(p.indentOf(p.tree.Buf.LineAt(end.Span.Start)) + ":END:\n")
	}
}

func (p *OrgPrinter) printNodeProperty(n *parser.Node) {
	props := n.Props.(*parser.NodePropertyProps)
	p.write(p.indentOf(p.lineOf(n)) + ":" + props.Key)
	if props.Append {
		p.write("+")
	}
	p.write(":")
	if props.Value != "" {
		p.write(" " + props.Value)
	}
	p.write("\n")
}

func (p *OrgPrinter) lineOf(n *parser.Node) int {
	return p.tree.Buf.LineAt(n.Span.Start)
}

// indentOf returns the leading blanks of source line i.
func (p *OrgPrinter) indentOf(i int) string {
	c := p.tree.Buf.Content(i)
	line := p.tree.Buf.Slice(c.Start, c.End)
	n := 0
	for n < len(line) && (line[n] == ' ' || line[n] == '\t') {
		n++
	}
	return string(line[:n])
}

func (p *OrgPrinter) write(s string) {
	p.out.WriteString(s)
}
