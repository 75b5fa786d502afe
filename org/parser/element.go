package parser

import (
	"bytes"
	"strings"

	"github.com/dhamidi/orgcst/org/buffer"
)

type parser struct {
	cfg   config
	buf   *buffer.Buffer
	src   []byte
	lines []Line
	todo  *TodoKeywords
	err   error
}

// unit is one line, or a partial first line, or a nested region, handed to
// the element parser.
type unit struct {
	kind LineKind
	span buffer.Span
	line int
	sub  *region
}

func (p *parser) units(items []regionItem) []unit {
	us := make([]unit, 0, len(items))
	for _, it := range items {
		if it.sub != nil {
			us = append(us, unit{sub: it.sub, line: -1})
			continue
		}
		us = append(us, unit{kind: it.kind, span: p.buf.Line(it.line), line: it.line})
	}
	return us
}

func (p *parser) build(r *region, depth int) *Node {
	switch r.kind {
	case KindHeadline:
		return p.headline(r, depth)
	case KindPlainList:
		return p.plainList(r, depth)
	case KindItem:
		return p.item(r, depth)
	case KindFootnoteDefinition:
		return p.footnoteDefinition(r, depth)
	case KindDrawer, KindPropertyDrawer:
		return p.drawer(r, depth)
	case KindCenterBlock, KindQuoteBlock, KindSpecialBlock, KindDynamicBlock:
		return p.greaterBlock(r, depth)
	case KindSrcBlock, KindExampleBlock, KindExportBlock, KindCommentBlock, KindVerseBlock:
		return p.verbatimBlock(r, depth)
	case KindLatexEnvironment:
		return p.latexEnvironment(r)
	case KindTable:
		return p.table(r, depth)
	}
	n := &Node{Kind: r.kind}
	n.Children = p.contents(p.units(r.items), depth)
	return finish(n)
}

// contents turns a run of units into lesser elements: paragraphs from
// consecutive text lines, grouped comments and fixed-width lines, single
// line elements, and nested greater elements. Affiliated keywords are
// attached last.
func (p *parser) contents(us []unit, depth int) []*Node {
	var nodes []*Node
	for i := 0; i < len(us); {
		u := us[i]
		if u.sub != nil {
			nodes = append(nodes, p.build(u.sub, depth+1))
			i++
			continue
		}
		j := i + 1
		switch u.kind {
		case LineBlank:
			j = runOf(us, i, LineBlank)
			nodes = append(nodes, p.leaf(KindBlank, u.span.Start, us[j-1].span.End))
		case LineComment, LineFixedWidth:
			j = runOf(us, i, u.kind)
			kind := KindComment
			if u.kind == LineFixedWidth {
				kind = KindFixedWidth
			}
			nodes = append(nodes, finish(&Node{
				Kind:     kind,
				Children: []*Node{p.leaf(KindRaw, u.span.Start, us[j-1].span.End)},
			}))
		case LineKeyword:
			nodes = append(nodes, p.keyword(u, depth))
		case LineBabelCall:
			nodes = append(nodes, p.babelCall(u))
		case LineHorizontalRule:
			nodes = append(nodes, finish(&Node{
				Kind:     KindHorizontalRule,
				Children: []*Node{p.leaf(KindToken, u.span.Start, u.span.End)},
			}))
		case LinePlanning:
			nodes = append(nodes, p.planning(u, depth))
		case LineClock:
			nodes = append(nodes, p.clock(u, depth))
		case LineDiarySexp:
			nodes = append(nodes, p.diarySexp(u))
		case LineNodeProperty:
			nodes = append(nodes, p.nodeProperty(u))
		default:
			j = runOf(us, i, LineText)
			if j == i {
				j = i + 1
			}
			nodes = append(nodes, p.paragraph(u.span.Start, us[j-1].span.End, depth))
		}
		i = j
	}
	return attachAffiliated(nodes)
}

// runOf returns the end of the run of line units of kind k starting at i.
func runOf(us []unit, i int, k LineKind) int {
	j := i
	for j < len(us) && us[j].sub == nil && us[j].kind == k {
		j++
	}
	return j
}

func (p *parser) paragraph(start, end, depth int) *Node {
	n := &Node{Kind: KindParagraph}
	n.Children = p.objects(start, end, standardSet, depth)
	return finish(n)
}

// parsedKeywords have values that hold inline markup.
var parsedKeywords = map[string]bool{
	"TITLE":   true,
	"AUTHOR":  true,
	"DATE":    true,
	"CAPTION": true,
}

func (p *parser) keyword(u unit, depth int) *Node {
	l := p.lines[u.line]
	c := p.buf.Content(u.line)
	nb, _ := indentation(p.src[c.Start:c.End])
	colon := c.Start + nb + 2 + len(l.Name)
	vs := skipSpaces(p.src, colon+1, c.End)
	ve := trimRight(p.src, vs, c.End)

	key, option := splitKeyOption(l.Name)
	props := &KeywordProps{Key: key, Option: option, Value: string(p.src[vs:ve])}
	n := &Node{Kind: KindKeyword, Props: props}
	n.AddChild(p.leaf(KindToken, u.span.Start, vs))
	if vs < ve {
		if parsedKeywords[key] {
			n.Children = append(n.Children, p.objects(vs, ve, titleSet, depth)...)
		} else {
			n.AddChild(p.leaf(KindRaw, vs, ve))
		}
	}
	n.AddChild(p.leaf(KindToken, ve, u.span.End))
	return finish(n)
}

func (p *parser) babelCall(u unit) *Node {
	c := p.buf.Content(u.line)
	nb, _ := indentation(p.src[c.Start:c.End])
	vs := skipSpaces(p.src, c.Start+nb+len("#+call:"), c.End)
	ve := trimRight(p.src, vs, c.End)
	n := &Node{Kind: KindBabelCall, Props: &BabelCallProps{Call: string(p.src[vs:ve])}}
	n.AddChild(p.leaf(KindToken, u.span.Start, vs))
	n.AddChild(p.leaf(KindRaw, vs, ve))
	n.AddChild(p.leaf(KindToken, ve, u.span.End))
	return finish(n)
}

var planningKeywords = []string{"SCHEDULED:", "DEADLINE:", "CLOSED:"}

func (p *parser) planning(u unit, depth int) *Node {
	c := p.buf.Content(u.line)
	nb, _ := indentation(p.src[c.Start:c.End])
	start := c.Start + nb
	end := trimRight(p.src, start, c.End)

	props := &PlanningProps{}
	n := &Node{Kind: KindPlanning, Props: props}
	n.AddChild(p.leaf(KindToken, u.span.Start, start))
	objs := p.objects(start, end, objTimestamp, depth)
	n.Children = append(n.Children, objs...)
	n.AddChild(p.leaf(KindToken, end, u.span.End))

	line := p.src[start:end]
	for _, kw := range planningKeywords {
		idx := bytes.Index(line, []byte(kw))
		if idx < 0 {
			continue
		}
		at := skipSpaces(p.src, start+idx+len(kw), end)
		for _, o := range objs {
			if o.Kind == KindTimestamp && o.Span.Start == at {
				raw := p.buf.Text(o.Span)
				switch kw {
				case "SCHEDULED:":
					props.Scheduled = raw
				case "DEADLINE:":
					props.Deadline = raw
				case "CLOSED:":
					props.Closed = raw
				}
			}
		}
	}
	return finish(n)
}

func (p *parser) clock(u unit, depth int) *Node {
	c := p.buf.Content(u.line)
	nb, _ := indentation(p.src[c.Start:c.End])
	vs := skipSpaces(p.src, c.Start+nb+len("CLOCK:"), c.End)
	ve := trimRight(p.src, vs, c.End)

	props := &ClockProps{Status: "running"}
	n := &Node{Kind: KindClock, Props: props}
	n.AddChild(p.leaf(KindToken, u.span.Start, vs))
	objs := p.objects(vs, ve, objTimestamp, depth)
	n.Children = append(n.Children, objs...)
	n.AddChild(p.leaf(KindToken, ve, u.span.End))

	for _, o := range objs {
		if o.Kind == KindTimestamp {
			props.Value = p.buf.Text(o.Span)
			break
		}
	}
	value := string(p.src[vs:ve])
	if idx := strings.Index(value, "=>"); idx >= 0 {
		props.Status = "closed"
		props.Duration = strings.TrimSpace(value[idx+2:])
	}
	return finish(n)
}

func (p *parser) diarySexp(u unit) *Node {
	c := p.buf.Content(u.line)
	end := trimRight(p.src, c.Start, c.End)
	n := &Node{Kind: KindDiarySexp, Props: &DiarySexpProps{Value: string(p.src[c.Start:end])}}
	n.AddChild(p.leaf(KindRaw, c.Start, end))
	n.AddChild(p.leaf(KindToken, end, u.span.End))
	return finish(n)
}

func (p *parser) nodeProperty(u unit) *Node {
	c := p.buf.Content(u.line)
	nb, _ := indentation(p.src[c.Start:c.End])
	start := c.Start + nb
	key, value, appendValue, _ := nodeProperty(p.src[start:c.End])

	colon := start + 1 + len(key)
	if appendValue {
		colon++
	}
	vs := skipSpaces(p.src, colon+1, c.End)
	ve := trimRight(p.src, vs, c.End)
	n := &Node{Kind: KindNodeProperty, Props: &NodePropertyProps{Key: key, Value: value, Append: appendValue}}
	n.AddChild(p.leaf(KindToken, u.span.Start, vs))
	n.AddChild(p.leaf(KindRaw, vs, ve))
	n.AddChild(p.leaf(KindToken, ve, u.span.End))
	return finish(n)
}

// leaf returns a childless node over [start, end), or nil when the range is
// empty.
func (p *parser) leaf(kind Kind, start, end int) *Node {
	if start >= end {
		return nil
	}
	return &Node{Kind: kind, Span: buffer.Span{Start: start, End: end}}
}

// finish drops nil children and sets the span from the first and last
// child.
func finish(n *Node) *Node {
	kept := n.Children[:0]
	for _, c := range n.Children {
		if c != nil {
			kept = append(kept, c)
		}
	}
	n.Children = kept
	if len(kept) > 0 {
		n.Span = buffer.Span{Start: kept[0].Span.Start, End: kept[len(kept)-1].Span.End}
	}
	return n
}

func skipSpaces(src []byte, i, end int) int {
	for i < end && isSpace(src[i]) {
		i++
	}
	return i
}

func trimRight(src []byte, start, end int) int {
	for end > start && isSpace(src[end-1]) {
		end--
	}
	return end
}
