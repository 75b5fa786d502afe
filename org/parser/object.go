package parser

import "github.com/dhamidi/orgcst/org/buffer"

// objectSet selects which inline constructs may appear in a container.
type objectSet uint32

const (
	objBold objectSet = 1 << iota
	objItalic
	objUnderline
	objStrike
	objCode
	objVerbatim
	objLink
	objFootnote
	objTimestamp
	objCookie
	objTarget
	objRadioTarget
	objSnippet
	objMacro
	objInlineSrc
	objInlineCall
	objEntity
	objLatex
	objLineBreak
	objScript
)

const (
	emphasisSet = objBold | objItalic | objUnderline | objStrike | objCode | objVerbatim
	minimalSet  = emphasisSet | objEntity | objLatex | objScript
	standardSet = minimalSet | objLink | objFootnote | objTimestamp | objCookie | objTarget |
		objRadioTarget | objSnippet | objMacro | objInlineSrc | objInlineCall | objLineBreak
	titleSet    = standardSet &^ objLineBreak
	linkDescSet = standardSet &^ (objLink | objFootnote | objRadioTarget | objTarget | objTimestamp | objLineBreak)
	cellSet     = standardSet &^ (objLineBreak | objInlineCall | objInlineSrc)
)

// objRange is the range an object recognizer works within.
type objRange struct {
	start, end int
	set        objectSet
	depth      int
}

type recognizer struct {
	bit     objectSet
	trigger func(c byte) bool
	match   func(p *parser, r objRange, i int) *Node
}

func is(chars string) func(byte) bool {
	return func(c byte) bool {
		for i := 0; i < len(chars); i++ {
			if chars[i] == c {
				return true
			}
		}
		return false
	}
}

// recognizers are tried in priority order. Among the matches that start at
// the same position the longest wins; ties go to the earlier recognizer.
var recognizers []recognizer

func init() {
	recognizers = []recognizer{
		{objLink, is("["), (*parser).bracketLink},
		{objLink, is("<"), (*parser).angleLink},
		{objLink, isAlpha, (*parser).plainLink},
		{objFootnote, is("["), (*parser).footnoteReference},
		{objTimestamp, is("<["), (*parser).timestamp},
		{objCookie, is("["), (*parser).statisticsCookie},
		{objRadioTarget, is("<"), (*parser).radioTarget},
		{objTarget, is("<"), (*parser).target},
		{objSnippet, is("@"), (*parser).exportSnippet},
		{objMacro, is("{"), (*parser).macro},
		{objInlineSrc, is("s"), (*parser).inlineSrc},
		{objInlineCall, is("c"), (*parser).inlineCall},
		{objLineBreak, is("\\"), (*parser).lineBreak},
		{objEntity, is("\\"), (*parser).entity},
		{objLatex, is("\\$"), (*parser).latexFragment},
		{objScript, is("_^"), (*parser).script},
		{emphasisSet, is("*/_+~="), (*parser).emphasis},
	}
}

// objects parses [start, end) into inline objects and plain text.
func (p *parser) objects(start, end int, set objectSet, depth int) []*Node {
	if start >= end {
		return nil
	}
	if depth > p.cfg.maxDepth {
		p.limit(depth, start)
		return []*Node{p.leaf(KindText, start, end)}
	}
	r := objRange{start: start, end: end, set: set, depth: depth}
	var nodes []*Node
	text := start
	for i := start; i < end; {
		n := p.objectAt(r, i)
		if n == nil {
			i++
			continue
		}
		if text < i {
			nodes = append(nodes, p.leaf(KindText, text, i))
		}
		nodes = append(nodes, n)
		i = n.Span.End
		text = i
	}
	if text < end {
		nodes = append(nodes, p.leaf(KindText, text, end))
	}
	return nodes
}

func (p *parser) objectAt(r objRange, i int) *Node {
	c := p.src[i]
	var best *Node
	for _, rec := range recognizers {
		if r.set&rec.bit == 0 || !rec.trigger(c) {
			continue
		}
		if n := rec.match(p, r, i); n != nil && (best == nil || n.Span.End > best.Span.End) {
			best = n
		}
	}
	return best
}

// limit records the first nesting-limit violation. Later ones are ignored.
func (p *parser) limit(depth, offset int) {
	if p.err == nil {
		p.err = &LimitError{File: p.cfg.file, Depth: p.cfg.maxDepth, Offset: offset}
		log.Debugf("nesting depth %d reached at byte %d", depth, offset)
	}
}

// atom returns a childless object node.
func atom(kind Kind, start, end int, props Properties) *Node {
	return &Node{Kind: kind, Span: buffer.Span{Start: start, End: end}, Props: props}
}

// wrap returns an object whose contents [cs, ce) are parsed with set,
// surrounded by opening and closing tokens.
func (p *parser) wrap(kind Kind, props Properties, start, cs, ce, end int, set objectSet, depth int) *Node {
	n := &Node{Kind: kind, Props: props}
	n.AddChild(p.leaf(KindToken, start, cs))
	n.Children = append(n.Children, p.objects(cs, ce, set, depth+1)...)
	n.AddChild(p.leaf(KindToken, ce, end))
	finish(n)
	n.Span = buffer.Span{Start: start, End: end}
	return n
}

// isPreByte reports whether c may precede an opening emphasis marker.
func isPreByte(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '-', '(', '{', '\'', '"':
		return true
	}
	return false
}

// isPostByte reports whether c may follow a closing emphasis marker.
func isPostByte(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '-', '.', ',', ':', '!', '?', ';', '\'', '"', ')', '}', '[', '\\':
		return true
	}
	return false
}

func (p *parser) preOK(r objRange, i int) bool {
	return i == r.start || isPreByte(p.src[i-1])
}

func (p *parser) postOK(r objRange, i int) bool {
	return i >= r.end || isPostByte(p.src[i])
}

// prevAlnum reports whether the byte before i in r is a letter or digit.
func (p *parser) prevAlnum(r objRange, i int) bool {
	return i > r.start && (isAlnum(p.src[i-1]) || p.src[i-1] >= 0x80)
}

// balanced returns the index just past the closer matching the opener at i,
// ignoring closers inside nested pairs, or -1. The search stops at end and,
// unless multiline is set, at a newline.
func balanced(src []byte, i, end int, open, close byte, multiline bool) int {
	level := 0
	for j := i; j < end; j++ {
		switch src[j] {
		case open:
			level++
		case close:
			level--
			if level == 0 {
				return j + 1
			}
		case '\n':
			if !multiline {
				return -1
			}
		}
	}
	return -1
}

func hasPrefixAt(src []byte, i, end int, prefix string) bool {
	return end-i >= len(prefix) && string(src[i:i+len(prefix)]) == prefix
}

func indexFrom(src []byte, i, end int, sub string) int {
	for j := i; j+len(sub) <= end; j++ {
		if string(src[j:j+len(sub)]) == sub {
			return j
		}
	}
	return -1
}
