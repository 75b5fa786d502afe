package parser

import "github.com/dhamidi/orgcst/org/buffer"

func (p *parser) plainList(r *region, depth int) *Node {
	props := &PlainListProps{Type: "unordered", Indent: r.indent}
	n := &Node{Kind: KindPlainList, Props: props}
	n.Children = p.contents(p.units(r.items), depth)
	if first := n.FirstChildOfKind(KindItem); first != nil {
		ip := first.Props.(*ItemProps)
		switch {
		case isDigit(ip.Bullet[0]):
			props.Type = "ordered"
		case ip.Tag != "":
			props.Type = "descriptive"
		}
	}
	return finish(n)
}

// item splits the first line of an item into bullet, counter, checkbox and
// tag; the rest of that line starts the item's first paragraph.
func (p *parser) item(r *region, depth int) *Node {
	i := r.items[0].line
	ln, c := p.buf.Line(i), p.buf.Content(i)
	src := p.src

	props := &ItemProps{Bullet: r.open.Bullet, Indent: r.open.Indent}
	n := &Node{Kind: KindItem, Props: props}

	nb, _ := indentation(src[c.Start:c.End])
	pos := skipSpaces(src, c.Start+nb+len(props.Bullet), c.End)
	n.AddChild(p.leaf(KindToken, ln.Start, pos))

	advance := func(end int) {
		next := skipSpaces(src, end, c.End)
		n.AddChild(p.leaf(KindToken, pos, next))
		pos = next
	}

	if counter, size, ok := itemCounter(src, pos, c.End); ok {
		props.Counter = counter
		advance(pos + size)
	}
	if box, ok := itemCheckbox(src, pos, c.End); ok {
		props.Checkbox = box
		advance(pos + 3)
	}
	if isUnorderedBullet(props.Bullet) {
		if te, sep, ok := itemTag(src, pos, c.End); ok {
			props.Tag = string(src[pos:te])
			n.Children = append(n.Children, p.objects(pos, te, titleSet, depth)...)
			n.AddChild(p.leaf(KindToken, te, sep))
			pos = sep
		}
	}

	us := p.units(r.items[1:])
	if pos < c.End {
		first := unit{kind: LineText, span: buffer.Span{Start: pos, End: ln.End}, line: i}
		us = append([]unit{first}, us...)
	} else {
		n.AddChild(p.leaf(KindToken, pos, ln.End))
	}
	n.Children = append(n.Children, p.contents(us, depth)...)
	return finish(n)
}

func (p *parser) footnoteDefinition(r *region, depth int) *Node {
	i := r.items[0].line
	ln, c := p.buf.Line(i), p.buf.Content(i)

	n := &Node{Kind: KindFootnoteDefinition, Props: &FootnoteDefinitionProps{Label: r.open.Name}}
	_, labelEnd, _ := footnoteLabel(p.src[:c.End], c.Start)
	pos := skipSpaces(p.src, labelEnd, c.End)
	n.AddChild(p.leaf(KindToken, ln.Start, pos))

	us := p.units(r.items[1:])
	if pos < c.End {
		first := unit{kind: LineText, span: buffer.Span{Start: pos, End: ln.End}, line: i}
		us = append([]unit{first}, us...)
	} else {
		n.AddChild(p.leaf(KindToken, pos, ln.End))
	}
	n.Children = append(n.Children, p.contents(us, depth)...)
	return finish(n)
}

func isUnorderedBullet(b string) bool {
	return b == "-" || b == "+" || b == "*"
}

// itemCounter matches "[@N]" or "[@a]" followed by whitespace or end of
// line.
func itemCounter(src []byte, pos, end int) (string, int, bool) {
	if pos+4 > end || src[pos] != '[' || src[pos+1] != '@' {
		return "", 0, false
	}
	i := pos + 2
	switch {
	case isDigit(src[i]):
		for i < end && isDigit(src[i]) {
			i++
		}
	case isAlpha(src[i]):
		i++
	default:
		return "", 0, false
	}
	if i >= end || src[i] != ']' || (i+1 < end && !isSpace(src[i+1])) {
		return "", 0, false
	}
	return string(src[pos+2 : i]), i + 1 - pos, true
}

func itemCheckbox(src []byte, pos, end int) (string, bool) {
	if pos+3 > end || src[pos] != '[' || src[pos+2] != ']' {
		return "", false
	}
	if pos+3 < end && !isSpace(src[pos+3]) {
		return "", false
	}
	switch src[pos+1] {
	case ' ':
		return "off", true
	case 'X':
		return "on", true
	case '-':
		return "trans", true
	}
	return "", false
}

// itemTag finds the first " ::" separator of a descriptive item. It returns
// the end of the tag and the start of the content after the separator.
func itemTag(src []byte, pos, end int) (int, int, bool) {
	for k := pos + 1; k+1 < end; k++ {
		if src[k] != ':' || src[k+1] != ':' || !isSpace(src[k-1]) {
			continue
		}
		if k+2 < end && !isSpace(src[k+2]) {
			continue
		}
		te := trimRight(src, pos, k)
		if te == pos {
			return 0, 0, false
		}
		return te, skipSpaces(src, k+2, end), true
	}
	return 0, 0, false
}
