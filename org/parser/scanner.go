package parser

import (
	"strings"

	"github.com/dhamidi/orgcst/org/buffer"
)

// region is a greater element under construction: its opening line plus the
// lines and nested regions it contains, in source order.
type region struct {
	kind   Kind
	open   Line
	indent int
	items  []regionItem
	closed bool
}

type regionItem struct {
	line int
	kind LineKind
	sub  *region
}

// scanner groups classified lines into nested regions with an explicit
// stack. It never looks at inline markup.
type scanner struct {
	buf     *buffer.Buffer
	cfg     *config
	stack   []*region
	pending []int

	lines  []Line
	states []LineState
	err    error
}

func newScanner(buf *buffer.Buffer, cfg *config) *scanner {
	return &scanner{buf: buf, cfg: cfg}
}

func (s *scanner) scan() (*region, error) {
	root := &region{kind: KindDocument}
	s.stack = []*region{root}

	var st LineState
	for i := 0; i < s.buf.LineCount(); i++ {
		c := s.buf.Content(i)
		l := Classify(s.buf.Slice(c.Start, c.End), st)
		s.lines = append(s.lines, l)
		s.states = append(s.states, st)

		l = s.place(i, l)
		if s.err != nil {
			return nil, s.err
		}
		st = Advance(st, l)
	}

	s.flushBlank()
	for len(s.stack) > 1 {
		s.pop()
	}
	return root, nil
}

func (s *scanner) top() *region {
	return s.stack[len(s.stack)-1]
}

// place files line i into the stack and returns the line as finally
// interpreted: unmatched closers come back as text.
func (s *scanner) place(i int, l Line) Line {
	if l.Kind == LineBlank {
		if s.top().kind == KindTable {
			s.pop()
		}
		s.pending = append(s.pending, i)
		if len(s.pending) >= 2 {
			s.endListsOnBlank()
		}
		return l
	}

	if t := s.top(); t.kind == KindTable && (!isTableLine(l) || l.Indent < t.indent) {
		s.pop()
	}

	switch l.Kind {
	case LineRaw:
		s.add(i, l.Kind)
		return l

	case LineHeadline:
		s.flushBlank()
		for {
			t := s.top()
			if t.kind == KindDocument || (t.kind == KindHeadline && t.open.Level < l.Level) {
				break
			}
			s.pop()
		}
		if s.push(KindHeadline, i, l) {
			s.add(i, l.Kind)
		}
		return l

	case LineItem:
		s.flushBlank()
		s.closeLists(l.Indent, true)
		s.ensureSection(i)
		if s.top().kind != KindPlainList && !s.push(KindPlainList, i, l) {
			return l
		}
		if s.push(KindItem, i, l) {
			s.add(i, l.Kind)
		}
		return l

	case LineFootnoteDefinition:
		s.flushBlank()
		for {
			k := s.top().kind
			if k != KindItem && k != KindPlainList && k != KindFootnoteDefinition {
				break
			}
			s.pop()
		}
		s.ensureSection(i)
		if s.push(KindFootnoteDefinition, i, l) {
			s.add(i, l.Kind)
		}
		return l
	}

	s.flushBlank()
	s.closeLists(l.Indent, false)

	switch l.Kind {
	case LineBlockEnd:
		if s.closeMatching(i, l, func(r *region) bool {
			return isBlockKind(r.kind) && r.kind != KindDynamicBlock && strings.EqualFold(r.open.Name, l.Name)
		}) {
			return l
		}
		l.Kind = LineText
	case LineDynamicEnd:
		if s.closeMatching(i, l, func(r *region) bool { return r.kind == KindDynamicBlock }) {
			return l
		}
		l.Kind = LineText
	case LineDrawerEnd:
		if s.closeMatching(i, l, func(r *region) bool {
			return r.kind == KindDrawer || r.kind == KindPropertyDrawer
		}) {
			return l
		}
		l.Kind = LineText
	case LineLatexEnd:
		if s.closeMatching(i, l, func(r *region) bool { return r.kind == KindLatexEnvironment }) {
			return l
		}
		l.Kind = LineText
	}

	s.ensureSection(i)

	var kind Kind
	switch l.Kind {
	case LineBlockBegin:
		kind = blockKind(l.Name)
	case LineDynamicBegin:
		kind = KindDynamicBlock
	case LineDrawerBegin:
		kind = KindDrawer
	case LinePropertyDrawerBegin:
		kind = KindPropertyDrawer
	case LineLatexBegin:
		kind = KindLatexEnvironment
	case LineTableRow, LineTableRule:
		if s.top().kind != KindTable && !s.push(KindTable, i, l) {
			return l
		}
		s.add(i, l.Kind)
		return l
	default:
		s.add(i, l.Kind)
		return l
	}
	if s.push(kind, i, l) {
		s.add(i, l.Kind)
	}
	return l
}

// closeLists pops the items and lists that a line at the given indentation
// cannot belong to. Lines continue an item only when indented deeper than
// its bullet; items at the list's column are siblings.
func (s *scanner) closeLists(indent int, item bool) {
	for {
		t := s.top()
		switch t.kind {
		case KindItem:
			if indent > t.indent {
				return
			}
			s.pop()
		case KindPlainList:
			if item && indent >= t.indent {
				return
			}
			s.pop()
		default:
			return
		}
	}
}

// endListsOnBlank ends every list (and then a footnote definition) directly
// on top of the stack after the second consecutive blank line.
func (s *scanner) endListsOnBlank() {
	k := s.top().kind
	if k != KindItem && k != KindPlainList && k != KindFootnoteDefinition {
		return
	}
	s.flushBlank()
	for k := s.top().kind; k == KindItem || k == KindPlainList; k = s.top().kind {
		s.pop()
	}
	if s.top().kind == KindFootnoteDefinition {
		s.pop()
	}
}

// closeMatching finds the innermost open region accepted by match, looking
// only through lists and tables, and closes it with line i.
func (s *scanner) closeMatching(i int, l Line, match func(*region) bool) bool {
	for j := len(s.stack) - 1; j > 0; j-- {
		r := s.stack[j]
		if match(r) {
			for len(s.stack)-1 > j {
				s.pop()
			}
			s.add(i, l.Kind)
			r.closed = true
			s.pop()
			return true
		}
		if r.kind != KindItem && r.kind != KindPlainList && r.kind != KindTable {
			break
		}
	}
	log.Debugf("line %d: %s without matching opener treated as text", i+1, l.Kind)
	return false
}

func (s *scanner) ensureSection(i int) {
	if k := s.top().kind; k == KindHeadline || k == KindDocument {
		s.push(KindSection, i, Line{})
	}
}

func (s *scanner) push(kind Kind, i int, l Line) bool {
	if len(s.stack) >= s.cfg.maxDepth {
		s.err = &LimitError{File: s.cfg.file, Depth: s.cfg.maxDepth, Offset: s.buf.Line(i).Start}
		return false
	}
	r := &region{kind: kind, open: l, indent: l.Indent}
	parent := s.top()
	parent.items = append(parent.items, regionItem{line: -1, sub: r})
	s.stack = append(s.stack, r)
	return true
}

func (s *scanner) pop() {
	r := s.top()
	s.stack = s.stack[:len(s.stack)-1]
	if !r.closed && needsCloser(r.kind) {
		log.Debugf("%s opened at line %d is unterminated, sealed at line %d", r.kind, r.items[0].line+1, s.lastLine(r)+1)
	}
}

func (s *scanner) add(i int, kind LineKind) {
	t := s.top()
	t.items = append(t.items, regionItem{line: i, kind: kind})
}

func (s *scanner) flushBlank() {
	for _, i := range s.pending {
		s.add(i, LineBlank)
	}
	s.pending = s.pending[:0]
}

func (s *scanner) lastLine(r *region) int {
	for len(r.items) > 0 {
		it := r.items[len(r.items)-1]
		if it.sub == nil {
			return it.line
		}
		r = it.sub
	}
	return 0
}

func isTableLine(l Line) bool {
	switch l.Kind {
	case LineTableRow, LineTableRule:
		return true
	case LineKeyword:
		return strings.EqualFold(l.Name, "TBLFM")
	}
	return false
}

func needsCloser(k Kind) bool {
	return isBlockKind(k) || k == KindDrawer || k == KindPropertyDrawer || k == KindLatexEnvironment
}

func isBlockKind(k Kind) bool {
	switch k {
	case KindCenterBlock, KindQuoteBlock, KindSpecialBlock, KindDynamicBlock,
		KindSrcBlock, KindExampleBlock, KindExportBlock, KindCommentBlock, KindVerseBlock:
		return true
	}
	return false
}

func isVerbatimBlockKind(k Kind) bool {
	switch k {
	case KindSrcBlock, KindExampleBlock, KindExportBlock, KindCommentBlock, KindVerseBlock:
		return true
	}
	return false
}

func blockKind(name string) Kind {
	switch name {
	case "src":
		return KindSrcBlock
	case "example":
		return KindExampleBlock
	case "export":
		return KindExportBlock
	case "comment":
		return KindCommentBlock
	case "verse":
		return KindVerseBlock
	case "center":
		return KindCenterBlock
	case "quote":
		return KindQuoteBlock
	}
	return KindSpecialBlock
}
