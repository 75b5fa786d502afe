package parser

import "github.com/dhamidi/orgcst/org/buffer"

func (p *parser) table(r *region, depth int) *Node {
	props := &TableProps{}
	n := &Node{Kind: KindTable, Props: props}
	for _, it := range r.items {
		ln := p.buf.Line(it.line)
		switch it.kind {
		case LineTableRule:
			n.AddChild(finish(&Node{
				Kind:     KindTableRow,
				Props:    &TableRowProps{Rule: true},
				Children: []*Node{p.leaf(KindToken, ln.Start, ln.End)},
			}))
		case LineTableRow:
			n.AddChild(p.tableRow(it.line, depth))
		default:
			props.Tblfm = append(props.Tblfm, p.lines[it.line].Value)
			n.AddChild(p.leaf(KindToken, ln.Start, ln.End))
		}
	}
	return finish(n)
}

// tableRow splits a row into cells. The text after the last pipe is a cell
// only when it is not blank.
func (p *parser) tableRow(i, depth int) *Node {
	ln, c := p.buf.Line(i), p.buf.Content(i)
	nb, _ := indentation(p.src[c.Start:c.End])
	pipe := c.Start + nb

	n := &Node{Kind: KindTableRow, Props: &TableRowProps{}}
	n.AddChild(p.leaf(KindToken, ln.Start, pipe+1))
	cells, rest := SplitCells(p.src, pipe+1, c.End)
	for _, seg := range cells {
		n.AddChild(p.tableCell(seg, depth))
		n.AddChild(p.leaf(KindToken, seg.End, seg.End+1))
	}
	if !isBlank(p.src[rest.Start:rest.End]) {
		n.AddChild(p.tableCell(rest, depth))
		n.AddChild(p.leaf(KindToken, rest.End, ln.End))
	} else {
		n.AddChild(p.leaf(KindToken, rest.Start, ln.End))
	}
	return finish(n)
}

func (p *parser) tableCell(seg buffer.Span, depth int) *Node {
	cs := skipSpaces(p.src, seg.Start, seg.End)
	ce := trimRight(p.src, cs, seg.End)
	n := &Node{Kind: KindTableCell, Span: seg}
	n.AddChild(p.leaf(KindToken, seg.Start, cs))
	if cs < ce {
		n.Children = append(n.Children, p.objects(cs, ce, cellSet, depth)...)
	}
	n.AddChild(p.leaf(KindToken, ce, seg.End))
	return finish(n)
}

// SplitCells splits the part of a table row after its opening pipe into
// the segments that end in a separating pipe, plus the remainder after the
// last pipe. A pipe is not a separator when it is escaped with a backslash
// or sits inside an inline code or verbatim span on the same row.
func SplitCells(src []byte, start, end int) ([]buffer.Span, buffer.Span) {
	var cells []buffer.Span
	segStart := start
	for i := start; i < end; i++ {
		switch c := src[i]; c {
		case '\\':
			if i+1 < end && src[i+1] == '|' {
				i++
			}
		case '~', '=':
			if j := cellSpanEnd(src, i, segStart, end); j > 0 {
				i = j
			}
		case '|':
			cells = append(cells, buffer.Span{Start: segStart, End: i})
			segStart = i + 1
		}
	}
	return cells, buffer.Span{Start: segStart, End: end}
}

// cellSpanEnd applies the emphasis border rules to a code or verbatim
// marker at i and returns the index of its closing marker, or -1.
func cellSpanEnd(src []byte, i, segStart, end int) int {
	if i > segStart && !isPreByte(src[i-1]) {
		return -1
	}
	if i+1 >= end || isSpace(src[i+1]) || src[i+1] == '\n' {
		return -1
	}
	m := src[i]
	for j := i + 2; j < end; j++ {
		if src[j] != m || isSpace(src[j-1]) {
			continue
		}
		if j+1 == end || src[j+1] == '|' || isPostByte(src[j+1]) {
			return j
		}
	}
	return -1
}
