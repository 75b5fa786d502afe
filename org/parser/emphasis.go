package parser

var emphasisKinds = map[byte]struct {
	kind Kind
	bit  objectSet
}{
	'*': {KindBold, objBold},
	'/': {KindItalic, objItalic},
	'_': {KindUnderline, objUnderline},
	'+': {KindStrikeThrough, objStrike},
	'~': {KindCode, objCode},
	'=': {KindVerbatim, objVerbatim},
}

// emphasis matches MARKER BODY MARKER. The opening marker must follow a
// pre-character and the closing marker must precede a post-character;
// neither border of the body may be whitespace and the body spans at most
// two lines. The first valid closer wins.
func (p *parser) emphasis(r objRange, i int) *Node {
	m := p.src[i]
	ek := emphasisKinds[m]
	if r.set&ek.bit == 0 || !p.preOK(r, i) {
		return nil
	}
	cs := i + 1
	if cs >= r.end || isSpace(p.src[cs]) || p.src[cs] == '\n' || p.src[cs] == m {
		return nil
	}
	verbatim := ek.kind == KindCode || ek.kind == KindVerbatim
	newlines := 0
	for j := cs; j < r.end; j++ {
		c := p.src[j]
		switch {
		case c == '\n':
			newlines++
			if newlines > 1 {
				return nil
			}
			continue
		case c == '[' && !verbatim && j+1 < r.end && p.src[j+1] == '[':
			if n := p.bracketLink(r, j); n != nil {
				j = n.Span.End - 1
			}
			continue
		case c != m || j == cs:
			continue
		}
		if prev := p.src[j-1]; isSpace(prev) || prev == '\n' {
			continue
		}
		if !p.postOK(r, j+1) {
			continue
		}
		if verbatim {
			n := &Node{Kind: ek.kind, Props: &ValueProps{Value: string(p.src[cs:j])}}
			n.AddChild(p.leaf(KindToken, i, cs))
			n.AddChild(p.leaf(KindRaw, cs, j))
			n.AddChild(p.leaf(KindToken, j, j+1))
			return finish(n)
		}
		return p.wrap(ek.kind, nil, i, cs, j, j+1, r.set&^ek.bit, r.depth)
	}
	return nil
}
