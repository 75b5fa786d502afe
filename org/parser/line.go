package parser

import (
	"bytes"
	"strings"
)

// LineKind is the tentative classification of a single source line.
type LineKind int

const (
	LineText LineKind = iota
	LineBlank
	LineRaw
	LineHeadline
	LineItem
	LineTableRow
	LineTableRule
	LineBlockBegin
	LineBlockEnd
	LineDynamicBegin
	LineDynamicEnd
	LineDrawerBegin
	LinePropertyDrawerBegin
	LineDrawerEnd
	LineNodeProperty
	LineKeyword
	LineBabelCall
	LineComment
	LineFixedWidth
	LineHorizontalRule
	LinePlanning
	LineClock
	LineDiarySexp
	LineFootnoteDefinition
	LineLatexBegin
	LineLatexEnd
)

var lineKindNames = map[LineKind]string{
	LineText:                "Text",
	LineBlank:               "Blank",
	LineRaw:                 "Raw",
	LineHeadline:            "Headline",
	LineItem:                "Item",
	LineTableRow:            "TableRow",
	LineTableRule:           "TableRule",
	LineBlockBegin:          "BlockBegin",
	LineBlockEnd:            "BlockEnd",
	LineDynamicBegin:        "DynamicBegin",
	LineDynamicEnd:          "DynamicEnd",
	LineDrawerBegin:         "DrawerBegin",
	LinePropertyDrawerBegin: "PropertyDrawerBegin",
	LineDrawerEnd:           "DrawerEnd",
	LineNodeProperty:        "NodeProperty",
	LineKeyword:             "Keyword",
	LineBabelCall:           "BabelCall",
	LineComment:             "Comment",
	LineFixedWidth:          "FixedWidth",
	LineHorizontalRule:      "HorizontalRule",
	LinePlanning:            "Planning",
	LineClock:               "Clock",
	LineDiarySexp:           "DiarySexp",
	LineFootnoteDefinition:  "FootnoteDefinition",
	LineLatexBegin:          "LatexBegin",
	LineLatexEnd:            "LatexEnd",
}

func (k LineKind) String() string {
	if name, ok := lineKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Line is the classifier's verdict for one line plus the fields it
// captured on the way.
type Line struct {
	Kind   LineKind
	Indent int    // display column of the first non-blank character
	Level  int    // headline stars
	Name   string // block type, drawer name, keyword key, environment, footnote label
	Value  string // keyword value or block parameters
	Bullet string // item bullet
}

// LineState is the running context the classifier needs. The scanner
// threads it through the document with Advance.
type LineState struct {
	Block         string // open verbatim block type
	Latex         string // open LaTeX environment
	Drawer        bool
	Properties    bool
	AfterHeadline bool // previous line was a headline or its planning line
	AfterPlanning bool
}

const tabWidth = 8

var verbatimBlocks = map[string]bool{
	"src":     true,
	"example": true,
	"export":  true,
	"comment": true,
	"verse":   true,
}

var standardBlocks = map[string]bool{
	"src":     true,
	"example": true,
	"export":  true,
	"comment": true,
	"verse":   true,
	"center":  true,
	"quote":   true,
}

// Classify inspects a single line, without its newline, in the given state.
// It never looks at any other line.
func Classify(line []byte, st LineState) Line {
	n, col := indentation(line)
	rest := line[n:]
	l := Line{Indent: col}

	if st.Block != "" {
		end := "#+end_" + st.Block
		if hasPrefixFold(rest, end) && atFieldEnd(rest, len(end)) {
			l.Kind = LineBlockEnd
			l.Name = st.Block
			return l
		}
		l.Kind = LineRaw
		return l
	}
	if st.Latex != "" {
		end := "\\end{" + st.Latex + "}"
		if bytes.HasPrefix(rest, []byte(end)) && isBlank(rest[len(end):]) {
			l.Kind = LineLatexEnd
			l.Name = st.Latex
			return l
		}
		l.Kind = LineRaw
		return l
	}

	if isBlank(rest) {
		l.Kind = LineBlank
		return l
	}
	if level := headlineLevel(line); level > 0 {
		l.Kind = LineHeadline
		l.Level = level
		return l
	}

	if st.Properties {
		switch {
		case isDrawerEnd(rest):
			l.Kind = LineDrawerEnd
		case isNodeProperty(rest):
			l.Kind = LineNodeProperty
		default:
			l.Kind = LineText
		}
		return l
	}
	if st.AfterHeadline && !st.AfterPlanning && isPlanning(rest) {
		l.Kind = LinePlanning
		return l
	}
	if st.AfterHeadline && hasPrefixFold(rest, ":properties:") && isBlank(rest[len(":properties:"):]) {
		l.Kind = LinePropertyDrawerBegin
		l.Name = "PROPERTIES"
		return l
	}

	switch rest[0] {
	case '#':
		if len(rest) == 1 || isSpace(rest[1]) {
			l.Kind = LineComment
			return l
		}
		if rest[1] == '+' {
			classifyHashPlus(rest[2:], &l)
			return l
		}
	case ':':
		if name, ok := drawerName(rest); ok {
			switch {
			case strings.EqualFold(name, "END"):
				if st.Drawer {
					l.Kind = LineDrawerEnd
				}
			case !st.Drawer:
				l.Kind = LineDrawerBegin
				l.Name = name
			}
			return l
		}
		if len(rest) == 1 || isSpace(rest[1]) {
			l.Kind = LineFixedWidth
			return l
		}
	case '|':
		l.Kind = LineTableRow
		if len(rest) > 1 && rest[1] == '-' {
			l.Kind = LineTableRule
		}
		return l
	case '%':
		if n == 0 && bytes.HasPrefix(rest, []byte("%%(")) {
			l.Kind = LineDiarySexp
			return l
		}
	case '\\':
		if name, ok := latexBegin(rest); ok {
			l.Kind = LineLatexBegin
			l.Name = name
			return l
		}
	case '[':
		if n == 0 {
			if label, end, ok := footnoteLabel(rest, 0); ok && end > 0 {
				l.Kind = LineFootnoteDefinition
				l.Name = label
				return l
			}
		}
	}

	if hasPrefixFold(rest, "clock:") {
		l.Kind = LineClock
		return l
	}
	if isHorizontalRule(rest) {
		l.Kind = LineHorizontalRule
		return l
	}
	if bullet, ok := itemBullet(rest, n > 0); ok {
		l.Kind = LineItem
		l.Bullet = bullet
		return l
	}
	return l
}

// classifyHashPlus handles lines starting with "#+".
func classifyHashPlus(body []byte, l *Line) {
	switch {
	case hasPrefixFold(body, "begin_"):
		name, params := splitField(body[len("begin_"):])
		if name == "" {
			return
		}
		l.Kind = LineBlockBegin
		l.Name = blockType(name)
		l.Value = params
	case hasPrefixFold(body, "end_"):
		name, _ := splitField(body[len("end_"):])
		if name == "" {
			return
		}
		l.Kind = LineBlockEnd
		l.Name = name
	case hasPrefixFold(body, "begin:"):
		name, args := splitField(trimSpace(body[len("begin:"):]))
		l.Kind = LineDynamicBegin
		l.Name = name
		l.Value = args
	case hasPrefixFold(body, "end:"):
		l.Kind = LineDynamicEnd
	case hasPrefixFold(body, "call:"):
		l.Kind = LineBabelCall
		l.Value = string(trimSpace(body[len("call:"):]))
	default:
		if key, value, ok := keyword(body); ok {
			l.Kind = LineKeyword
			l.Name = key
			l.Value = value
		}
	}
}

// Advance returns the state that follows a line classified as l.
func Advance(st LineState, l Line) LineState {
	next := st
	next.AfterHeadline = false
	next.AfterPlanning = false
	switch l.Kind {
	case LineHeadline:
		next.AfterHeadline = true
		next.Drawer = false
		next.Properties = false
	case LinePlanning:
		next.AfterHeadline = true
		next.AfterPlanning = true
	case LineBlockBegin:
		if verbatimBlocks[l.Name] {
			next.Block = l.Name
		}
	case LineBlockEnd:
		next.Block = ""
	case LineLatexBegin:
		next.Latex = l.Name
	case LineLatexEnd:
		next.Latex = ""
	case LineDrawerBegin:
		next.Drawer = true
	case LinePropertyDrawerBegin:
		next.Properties = true
	case LineDrawerEnd:
		next.Drawer = false
		next.Properties = false
	}
	return next
}

func blockType(name string) string {
	lower := strings.ToLower(name)
	if standardBlocks[lower] {
		return lower
	}
	return name
}

func headlineLevel(line []byte) int {
	n := 0
	for n < len(line) && line[n] == '*' {
		n++
	}
	if n == 0 || n >= len(line) || (line[n] != ' ' && line[n] != '\t') {
		return 0
	}
	return n
}

func isPlanning(rest []byte) bool {
	for _, kw := range []string{"SCHEDULED:", "DEADLINE:", "CLOSED:"} {
		if bytes.HasPrefix(rest, []byte(kw)) {
			return true
		}
	}
	return false
}

func isDrawerEnd(rest []byte) bool {
	return hasPrefixFold(rest, ":end:") && isBlank(rest[len(":end:"):])
}

// drawerName matches ":NAME:" followed by optional whitespace, where NAME
// consists of word characters, dashes and underscores.
func drawerName(rest []byte) (string, bool) {
	i := 1
	for i < len(rest) && isDrawerChar(rest[i]) {
		i++
	}
	if i == 1 || i >= len(rest) || rest[i] != ':' || !isBlank(rest[i+1:]) {
		return "", false
	}
	return string(rest[1:i]), true
}

func isDrawerChar(c byte) bool {
	return isAlnum(c) || c == '-' || c == '_' || c >= 0x80
}

// isNodeProperty matches ":KEY:" or ":KEY+:" optionally followed by a value.
func isNodeProperty(rest []byte) bool {
	_, _, _, ok := nodeProperty(rest)
	return ok
}

func nodeProperty(rest []byte) (key string, value string, appendValue bool, ok bool) {
	if len(rest) < 3 || rest[0] != ':' {
		return "", "", false, false
	}
	i := 1
	for i < len(rest) && rest[i] != ':' && !isSpace(rest[i]) {
		i++
	}
	if i == 1 || i >= len(rest) || rest[i] != ':' {
		return "", "", false, false
	}
	if i+1 < len(rest) && !isSpace(rest[i+1]) {
		return "", "", false, false
	}
	key = string(rest[1:i])
	if strings.HasSuffix(key, "+") && len(key) > 1 {
		key = key[:len(key)-1]
		appendValue = true
	}
	return key, string(trimSpace(rest[i+1:])), appendValue, true
}

func latexBegin(rest []byte) (string, bool) {
	const prefix = "\\begin{"
	if !bytes.HasPrefix(rest, []byte(prefix)) {
		return "", false
	}
	i := len(prefix)
	for i < len(rest) && (isAlnum(rest[i]) || rest[i] == '*') {
		i++
	}
	if i == len(prefix) || i >= len(rest) || rest[i] != '}' {
		return "", false
	}
	return string(rest[len(prefix):i]), true
}

func isHorizontalRule(rest []byte) bool {
	n := 0
	for n < len(rest) && rest[n] == '-' {
		n++
	}
	return n >= 5 && isBlank(rest[n:])
}

// itemBullet recognizes "-", "+", "1." and "1)" bullets, and "*" when the
// line is indented, followed by whitespace or end of line.
func itemBullet(rest []byte, indented bool) (string, bool) {
	n := 0
	switch {
	case rest[0] == '-' || rest[0] == '+':
		n = 1
	case rest[0] == '*' && indented:
		n = 1
	case isDigit(rest[0]):
		for n < len(rest) && isDigit(rest[n]) {
			n++
		}
		if n >= len(rest) || (rest[n] != '.' && rest[n] != ')') {
			return "", false
		}
		n++
	default:
		return "", false
	}
	if n < len(rest) && !isSpace(rest[n]) {
		return "", false
	}
	return string(rest[:n]), true
}

// keyword splits "KEY: value" (the text after "#+"). The key runs up to the
// first colon and may not contain whitespace.
func keyword(body []byte) (string, string, bool) {
	for i, c := range body {
		if c == ':' {
			if i == 0 {
				return "", "", false
			}
			return string(body[:i]), string(trimSpace(body[i+1:])), true
		}
		if isSpace(c) {
			return "", "", false
		}
	}
	return "", "", false
}

// footnoteLabel matches "[fn:LABEL" at off and reports the label and the
// offset just past it.
func footnoteLabel(s []byte, off int) (string, int, bool) {
	const prefix = "[fn:"
	if !bytes.HasPrefix(s[off:], []byte(prefix)) {
		return "", 0, false
	}
	i := off + len(prefix)
	start := i
	for i < len(s) && (isAlnum(s[i]) || s[i] == '-' || s[i] == '_') {
		i++
	}
	if i == start || i >= len(s) || s[i] != ']' {
		return "", 0, false
	}
	return string(s[start:i]), i + 1, true
}

// splitField returns the first whitespace-delimited field and the trimmed
// remainder.
func splitField(s []byte) (string, string) {
	i := 0
	for i < len(s) && !isSpace(s[i]) {
		i++
	}
	return string(s[:i]), string(trimSpace(s[i:]))
}

// indentation returns the number of leading blank bytes and the display
// column they reach.
func indentation(line []byte) (int, int) {
	n, col := 0, 0
	for n < len(line) {
		switch line[n] {
		case ' ':
			col++
		case '\t':
			col += tabWidth - col%tabWidth
		default:
			return n, col
		}
		n++
	}
	return n, col
}

func atFieldEnd(s []byte, i int) bool {
	return i >= len(s) || isSpace(s[i])
}

func hasPrefixFold(s []byte, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(string(s[:len(prefix)]), prefix)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r'
}

func isBlank(s []byte) bool {
	for _, c := range s {
		if !isSpace(c) {
			return false
		}
	}
	return true
}

func trimSpace(s []byte) []byte {
	return bytes.Trim(s, " \t\r")
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlnum(c byte) bool {
	return isAlpha(c) || isDigit(c)
}
