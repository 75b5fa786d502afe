package parser

import (
	"fmt"
	"strings"

	"github.com/dhamidi/orgcst/org/buffer"
)

type Kind int

const (
	KindDocument Kind = iota

	// Greater elements
	KindHeadline
	KindSection
	KindPlainList
	KindItem
	KindDrawer
	KindPropertyDrawer
	KindCenterBlock
	KindQuoteBlock
	KindSpecialBlock
	KindDynamicBlock
	KindFootnoteDefinition
	KindTable

	// Lesser elements
	KindParagraph
	KindKeyword
	KindBabelCall
	KindComment
	KindFixedWidth
	KindHorizontalRule
	KindSrcBlock
	KindExampleBlock
	KindExportBlock
	KindCommentBlock
	KindVerseBlock
	KindLatexEnvironment
	KindNodeProperty
	KindPlanning
	KindClock
	KindDiarySexp
	KindTableRow

	// Objects
	KindBold
	KindItalic
	KindUnderline
	KindStrikeThrough
	KindCode
	KindVerbatim
	KindLink
	KindFootnoteReference
	KindTimestamp
	KindEntity
	KindLatexFragment
	KindMacro
	KindSubscript
	KindSuperscript
	KindInlineSrc
	KindInlineBabelCall
	KindExportSnippet
	KindStatisticsCookie
	KindTarget
	KindRadioTarget
	KindLineBreak
	KindTableCell

	// Leaves
	KindToken
	KindBlank
	KindText
	KindRaw

	kindCount
)

var kindNames = map[Kind]string{
	KindDocument:           "Document",
	KindHeadline:           "Headline",
	KindSection:            "Section",
	KindPlainList:          "PlainList",
	KindItem:               "Item",
	KindDrawer:             "Drawer",
	KindPropertyDrawer:     "PropertyDrawer",
	KindCenterBlock:        "CenterBlock",
	KindQuoteBlock:         "QuoteBlock",
	KindSpecialBlock:       "SpecialBlock",
	KindDynamicBlock:       "DynamicBlock",
	KindFootnoteDefinition: "FootnoteDefinition",
	KindTable:              "Table",
	KindParagraph:          "Paragraph",
	KindKeyword:            "Keyword",
	KindBabelCall:          "BabelCall",
	KindComment:            "Comment",
	KindFixedWidth:         "FixedWidth",
	KindHorizontalRule:     "HorizontalRule",
	KindSrcBlock:           "SrcBlock",
	KindExampleBlock:       "ExampleBlock",
	KindExportBlock:        "ExportBlock",
	KindCommentBlock:       "CommentBlock",
	KindVerseBlock:         "VerseBlock",
	KindLatexEnvironment:   "LatexEnvironment",
	KindNodeProperty:       "NodeProperty",
	KindPlanning:           "Planning",
	KindClock:              "Clock",
	KindDiarySexp:          "DiarySexp",
	KindTableRow:           "TableRow",
	KindBold:               "Bold",
	KindItalic:             "Italic",
	KindUnderline:          "Underline",
	KindStrikeThrough:      "StrikeThrough",
	KindCode:               "Code",
	KindVerbatim:           "Verbatim",
	KindLink:               "Link",
	KindFootnoteReference:  "FootnoteReference",
	KindTimestamp:          "Timestamp",
	KindEntity:             "Entity",
	KindLatexFragment:      "LatexFragment",
	KindMacro:              "Macro",
	KindSubscript:          "Subscript",
	KindSuperscript:        "Superscript",
	KindInlineSrc:          "InlineSrc",
	KindInlineBabelCall:    "InlineBabelCall",
	KindExportSnippet:      "ExportSnippet",
	KindStatisticsCookie:   "StatisticsCookie",
	KindTarget:             "Target",
	KindRadioTarget:        "RadioTarget",
	KindLineBreak:          "LineBreak",
	KindTableCell:          "TableCell",
	KindToken:              "Token",
	KindBlank:              "Blank",
	KindText:               "Text",
	KindRaw:                "Raw",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// KindFromString is the inverse of Kind.String.
func KindFromString(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// Category groups node kinds by their role in the tree.
type Category int

const (
	CategoryGreater Category = iota
	CategoryElement
	CategoryObject
	CategoryLeaf
)

func (c Category) String() string {
	switch c {
	case CategoryGreater:
		return "greater-element"
	case CategoryElement:
		return "element"
	case CategoryObject:
		return "object"
	default:
		return "leaf"
	}
}

func (k Kind) Category() Category {
	switch {
	case k <= KindTable:
		return CategoryGreater
	case k <= KindTableRow:
		return CategoryElement
	case k <= KindTableCell:
		return CategoryObject
	default:
		return CategoryLeaf
	}
}

// IsElement reports whether k is a greater or lesser element.
func (k Kind) IsElement() bool {
	c := k.Category()
	return c == CategoryGreater || c == CategoryElement
}

// IsObject reports whether k is an inline object, including the plain text
// leaf.
func (k Kind) IsObject() bool {
	return k.Category() == CategoryObject || k == KindText
}

// Node is a single CST node. Children spans are contiguous and ordered, and
// leaves (nodes without children) cover the whole source exactly once.
type Node struct {
	Kind       Kind
	Span       buffer.Span
	Children   []*Node
	Props      Properties
	Affiliated []AffiliatedKeyword
}

// AffiliatedKeyword is a metadata line such as #+NAME: bound to the element
// directly following it.
type AffiliatedKeyword struct {
	Key    string
	Option string
	Value  string
}

func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

func (n *Node) AddChild(child *Node) {
	if child == nil {
		return
	}
	n.Children = append(n.Children, child)
}

func (n *Node) FirstChildOfKind(kind Kind) *Node {
	for _, c := range n.Children {
		if c.Kind == kind {
			return c
		}
	}
	return nil
}

func (n *Node) ChildrenOfKind(kind Kind) []*Node {
	var result []*Node
	for _, c := range n.Children {
		if c.Kind == kind {
			result = append(result, c)
		}
	}
	return result
}

// Affiliation returns the value of the affiliated keyword key, if present.
func (n *Node) Affiliation(key string) (string, bool) {
	for _, a := range n.Affiliated {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

func (n *Node) String() string {
	return n.stringIndent(0)
}

func (n *Node) stringIndent(indent int) string {
	var sb strings.Builder
	prefix := strings.Repeat("  ", indent)
	sb.WriteString(prefix)
	sb.WriteString(n.Kind.String())
	fmt.Fprintf(&sb, " [%d,%d)", n.Span.Start, n.Span.End)
	for _, a := range n.Affiliated {
		fmt.Fprintf(&sb, " #+%s", a.Key)
	}
	sb.WriteString("\n")
	for _, child := range n.Children {
		sb.WriteString(child.stringIndent(indent + 1))
	}
	return sb.String()
}
