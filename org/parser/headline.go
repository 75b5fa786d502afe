package parser

import (
	"strings"
	"unicode/utf8"
)

// TodoKeywords is the set of headline keywords in effect for a document.
type TodoKeywords struct {
	Todo []string
	Done []string
}

func DefaultTodoKeywords() *TodoKeywords {
	return &TodoKeywords{Todo: []string{"TODO"}, Done: []string{"DONE"}}
}

// ParseTodoKeywords reads the values of #+TODO:, #+SEQ_TODO: and
// #+TYP_TODO: lines, e.g. "TODO NEXT(n) | DONE(d!) CANCELED". Without a
// "|" the last keyword of a line is the done state.
func ParseTodoKeywords(values []string) *TodoKeywords {
	k := &TodoKeywords{}
	for _, v := range values {
		var words []string
		split := -1
		for _, f := range strings.Fields(v) {
			if f == "|" {
				split = len(words)
				continue
			}
			if i := strings.IndexByte(f, '('); i > 0 {
				f = f[:i]
			}
			words = append(words, f)
		}
		if len(words) == 0 {
			continue
		}
		if split < 0 {
			split = len(words) - 1
		}
		k.Todo = append(k.Todo, words[:split]...)
		k.Done = append(k.Done, words[split:]...)
	}
	if len(k.Todo) == 0 && len(k.Done) == 0 {
		return DefaultTodoKeywords()
	}
	return k
}

func (k *TodoKeywords) lookup(word string) (string, bool) {
	for _, w := range k.Todo {
		if w == word {
			return "todo", true
		}
	}
	for _, w := range k.Done {
		if w == word {
			return "done", true
		}
	}
	return "", false
}

func todoKeywordsFromLines(lines []Line) *TodoKeywords {
	var values []string
	for _, l := range lines {
		if l.Kind != LineKeyword {
			continue
		}
		switch strings.ToUpper(l.Name) {
		case "TODO", "SEQ_TODO", "TYP_TODO":
			values = append(values, l.Value)
		}
	}
	return ParseTodoKeywords(values)
}

const (
	archiveTag      = "ARCHIVE"
	commentKeyword  = "COMMENT"
	footnoteSection = "Footnotes"
)

// headline splits "STARS KEYWORD PRIORITY COMMENT TITLE TAGS" into tokens
// and title objects, followed by the section and subheadlines.
func (p *parser) headline(r *region, depth int) *Node {
	i := r.items[0].line
	ln, c := p.buf.Line(i), p.buf.Content(i)
	src := p.src

	props := &HeadlineProps{Level: r.open.Level}
	n := &Node{Kind: KindHeadline, Props: props}

	pos := skipSpaces(src, c.Start+props.Level, c.End)
	gap := pos - (c.Start + props.Level)
	n.AddChild(p.leaf(KindToken, ln.Start, pos))
	filled := false

	advance := func(wordEnd int) {
		next := skipSpaces(src, wordEnd, c.End)
		n.AddChild(p.leaf(KindToken, pos, next))
		gap = next - wordEnd
		pos = next
		filled = true
	}

	if w := wordAt(src, pos, c.End); w != "" {
		if typ, ok := p.todo.lookup(w); ok {
			props.TodoKeyword = w
			props.TodoType = typ
			advance(pos + len(w))
		}
	}
	if prio, size, ok := priorityCookie(src, pos, c.End); ok {
		props.Priority = prio
		advance(pos + size)
	}
	if wordAt(src, pos, c.End) == commentKeyword {
		props.Commented = true
		advance(pos + len(commentKeyword))
	}

	titleEnd := trimRight(src, pos, c.End)
	tagGap := 0
	if ts, tags, ok := findTags(src, pos, c.End); ok {
		props.Tags = tags
		titleEnd = trimRight(src, pos, ts)
		tagGap = ts - titleEnd
		if titleEnd == pos {
			tagGap += gap
		}
	}
	if titleEnd > pos {
		props.RawValue = string(src[pos:titleEnd])
		n.Children = append(n.Children, p.objects(pos, titleEnd, titleSet, depth)...)
		filled = true
	}
	props.TagsAligned = props.Tags != nil && filled && tagGap >= 2
	n.AddChild(p.leaf(KindToken, titleEnd, ln.End))

	for _, t := range props.Tags {
		if t == archiveTag {
			props.Archived = true
		}
	}
	props.FootnoteSection = props.RawValue == footnoteSection

	n.Children = append(n.Children, p.contents(p.units(r.items[1:]), depth)...)
	return finish(n)
}

// HeadlineTitle returns the title objects of a headline: its children that
// are neither tokens nor elements.
func HeadlineTitle(h *Node) []*Node {
	var title []*Node
	for _, c := range h.Children {
		if c.Kind.IsElement() || c.Kind == KindBlank {
			break
		}
		if c.Kind != KindToken {
			title = append(title, c)
		}
	}
	return title
}

func wordAt(src []byte, pos, end int) string {
	i := pos
	for i < end && !isSpace(src[i]) {
		i++
	}
	return string(src[pos:i])
}

// priorityCookie matches "[#X]" followed by whitespace or end of line.
func priorityCookie(src []byte, pos, end int) (rune, int, bool) {
	if pos+4 > end || src[pos] != '[' || src[pos+1] != '#' {
		return 0, 0, false
	}
	r, size := utf8.DecodeRune(src[pos+2 : end])
	close := pos + 2 + size
	if r == utf8.RuneError || close >= end || src[close] != ']' {
		return 0, 0, false
	}
	if close+1 < end && !isSpace(src[close+1]) {
		return 0, 0, false
	}
	return r, close + 1 - pos, true
}

// findTags looks for ":tag1:tag2:" at the end of [pos, end), preceded by
// whitespace or starting at pos. It returns where the tag string begins.
func findTags(src []byte, pos, end int) (int, []string, bool) {
	e := trimRight(src, pos, end)
	if e-pos < 3 || src[e-1] != ':' {
		return 0, nil, false
	}
	s := e - 1
	for s > pos && isTagChar(src[s-1]) {
		s--
	}
	if src[s] != ':' || (s > pos && !isSpace(src[s-1])) {
		return 0, nil, false
	}
	var tags []string
	for _, t := range strings.Split(string(src[s+1:e-1]), ":") {
		if t != "" {
			tags = append(tags, t)
		}
	}
	if len(tags) == 0 {
		return 0, nil, false
	}
	return s, tags, true
}

func isTagChar(c byte) bool {
	return isAlnum(c) || c == '_' || c == '@' || c == '#' || c == '%' || c == ':' || c >= 0x80
}
