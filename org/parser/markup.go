package parser

import "strings"

// footnoteReference matches [fn:LABEL], [fn:LABEL:DEFINITION] and
// [fn::DEFINITION]. Inline definitions may contain balanced brackets.
func (p *parser) footnoteReference(r objRange, i int) *Node {
	src := p.src
	if !hasPrefixAt(src, i, r.end, "[fn:") {
		return nil
	}
	if label, end, ok := footnoteLabel(src[:r.end], i); ok {
		return atom(KindFootnoteReference, i, end, &FootnoteReferenceProps{Label: label, Type: "standard"})
	}
	j := i + len("[fn:")
	for j < r.end && (isAlnum(src[j]) || src[j] == '-' || src[j] == '_') {
		j++
	}
	if j >= r.end || src[j] != ':' {
		return nil
	}
	label := string(src[i+len("[fn:") : j])
	e := balanced(src, i, r.end, '[', ']', true)
	if e < 0 {
		return nil
	}
	return p.wrap(KindFootnoteReference, &FootnoteReferenceProps{Label: label, Type: "inline"},
		i, j+1, e-1, e, standardSet, r.depth)
}

// statisticsCookie matches [N/M] and [N%] with optional numbers.
func (p *parser) statisticsCookie(r objRange, i int) *Node {
	src := p.src
	j := i + 1
	for j < r.end && isDigit(src[j]) {
		j++
	}
	switch {
	case j < r.end && src[j] == '%':
		j++
	case j < r.end && src[j] == '/':
		j++
		for j < r.end && isDigit(src[j]) {
			j++
		}
	default:
		return nil
	}
	if j >= r.end || src[j] != ']' {
		return nil
	}
	return atom(KindStatisticsCookie, i, j+1, &ValueProps{Value: string(src[i : j+1])})
}

// targetBody returns the end of the text of a <<TARGET>> that starts at
// cs and is closed by closer, or -1. The text may not start or end with
// whitespace and may not contain angle brackets or newlines.
func (p *parser) targetBody(r objRange, cs int, closer string) int {
	src := p.src
	if cs >= r.end || isSpace(src[cs]) {
		return -1
	}
	for j := cs; j < r.end; j++ {
		switch src[j] {
		case '\n', '<':
			return -1
		case '>':
			if j == cs || isSpace(src[j-1]) || !hasPrefixAt(src, j, r.end, closer) {
				return -1
			}
			return j
		}
	}
	return -1
}

func (p *parser) target(r objRange, i int) *Node {
	if !hasPrefixAt(p.src, i, r.end, "<<") || hasPrefixAt(p.src, i, r.end, "<<<") {
		return nil
	}
	e := p.targetBody(r, i+2, ">>")
	if e < 0 {
		return nil
	}
	return atom(KindTarget, i, e+2, &ValueProps{Value: string(p.src[i+2 : e])})
}

func (p *parser) radioTarget(r objRange, i int) *Node {
	if !hasPrefixAt(p.src, i, r.end, "<<<") {
		return nil
	}
	e := p.targetBody(r, i+3, ">>>")
	if e < 0 {
		return nil
	}
	return p.wrap(KindRadioTarget, &ValueProps{Value: string(p.src[i+3 : e])}, i, i+3, e, e+3, minimalSet, r.depth)
}

// exportSnippet matches @@BACKEND:VALUE@@.
func (p *parser) exportSnippet(r objRange, i int) *Node {
	src := p.src
	if !hasPrefixAt(src, i, r.end, "@@") {
		return nil
	}
	j := i + 2
	for j < r.end && (isAlnum(src[j]) || src[j] == '-') {
		j++
	}
	if j == i+2 || j >= r.end || src[j] != ':' {
		return nil
	}
	e := indexFrom(src, j+1, r.end, "@@")
	if e < 0 {
		return nil
	}
	return atom(KindExportSnippet, i, e+2, &ExportSnippetProps{
		Backend: string(src[i+2 : j]),
		Value:   string(src[j+1 : e]),
	})
}

// macro matches {{{NAME}}} and {{{NAME(ARGS)}}}. Arguments are separated by
// commas; "\," is a literal comma.
func (p *parser) macro(r objRange, i int) *Node {
	src := p.src
	if !hasPrefixAt(src, i, r.end, "{{{") {
		return nil
	}
	j := i + 3
	if j >= r.end || !isAlpha(src[j]) {
		return nil
	}
	for j < r.end && (isAlnum(src[j]) || src[j] == '-' || src[j] == '_') {
		j++
	}
	name := string(src[i+3 : j])
	props := &MacroProps{Key: strings.ToLower(name)}
	switch {
	case hasPrefixAt(src, j, r.end, "}}}"):
		return atom(KindMacro, i, j+3, props)
	case j < r.end && src[j] == '(':
		e := indexFrom(src, j, r.end, ")}}}")
		if e < 0 {
			return nil
		}
		if args := string(src[j+1 : e]); args != "" {
			props.Args = macroArgs(args)
		}
		return atom(KindMacro, i, e+4, props)
	}
	return nil
}

func macroArgs(s string) []string {
	var args []string
	var cur strings.Builder
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '\\' && i+1 < len(s) && s[i+1] == ',':
			cur.WriteByte(',')
			i++
		case s[i] == ',':
			args = append(args, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(s[i])
		}
	}
	return append(args, strings.TrimSpace(cur.String()))
}

// inlineSrc matches src_LANG{BODY} and src_LANG[HEADERS]{BODY} on one line.
func (p *parser) inlineSrc(r objRange, i int) *Node {
	src := p.src
	if p.prevAlnum(r, i) || !hasPrefixAt(src, i, r.end, "src_") {
		return nil
	}
	j := i + len("src_")
	ls := j
	for j < r.end && !isSpace(src[j]) && src[j] != '\n' && src[j] != '[' && src[j] != '{' {
		j++
	}
	if j == ls || j >= r.end {
		return nil
	}
	props := &InlineSrcProps{Language: string(src[ls:j])}
	if src[j] == '[' {
		e := balanced(src, j, r.end, '[', ']', false)
		if e < 0 {
			return nil
		}
		props.Parameters = strings.TrimSpace(string(src[j+1 : e-1]))
		j = e
	}
	if j >= r.end || src[j] != '{' {
		return nil
	}
	e := balanced(src, j, r.end, '{', '}', false)
	if e < 0 {
		return nil
	}
	props.Value = string(src[j+1 : e-1])
	return atom(KindInlineSrc, i, e, props)
}

// inlineCall matches call_NAME(ARGS) with optional [HEADER] before and
// after the arguments.
func (p *parser) inlineCall(r objRange, i int) *Node {
	src := p.src
	if p.prevAlnum(r, i) || !hasPrefixAt(src, i, r.end, "call_") {
		return nil
	}
	j := i + len("call_")
	ns := j
	for j < r.end && !isSpace(src[j]) && src[j] != '\n' && src[j] != '[' && src[j] != '(' {
		j++
	}
	if j == ns || j >= r.end {
		return nil
	}
	props := &InlineBabelCallProps{Call: string(src[ns:j])}
	if src[j] == '[' {
		e := balanced(src, j, r.end, '[', ']', false)
		if e < 0 {
			return nil
		}
		props.InsideHeader = string(src[j+1 : e-1])
		j = e
	}
	if j >= r.end || src[j] != '(' {
		return nil
	}
	e := balanced(src, j, r.end, '(', ')', false)
	if e < 0 {
		return nil
	}
	props.Arguments = string(src[j+1 : e-1])
	j = e
	if j < r.end && src[j] == '[' {
		if e := balanced(src, j, r.end, '[', ']', false); e > 0 {
			props.EndHeader = string(src[j+1 : e-1])
			j = e
		}
	}
	return atom(KindInlineBabelCall, i, j, props)
}

// lineBreak matches "\\" followed only by whitespace up to the end of the
// line. The node includes the newline.
func (p *parser) lineBreak(r objRange, i int) *Node {
	src := p.src
	if !hasPrefixAt(src, i, r.end, `\\`) || (i > r.start && src[i-1] == '\\') {
		return nil
	}
	j := skipSpaces(src, i+2, r.end)
	switch {
	case j >= r.end:
		return atom(KindLineBreak, i, j, nil)
	case src[j] == '\n':
		return atom(KindLineBreak, i, j+1, nil)
	}
	return nil
}

// latexFragment matches \(..\), \[..\], $$..$$, $..$ and commands such as
// \command[opt]{arg} whose name is not an entity.
func (p *parser) latexFragment(r objRange, i int) *Node {
	src := p.src
	value := func(end int) *Node {
		return atom(KindLatexFragment, i, end, &ValueProps{Value: string(src[i:end])})
	}
	switch {
	case hasPrefixAt(src, i, r.end, `\(`):
		if e := indexFrom(src, i+2, r.end, `\)`); e >= 0 {
			return value(e + 2)
		}
		return nil
	case hasPrefixAt(src, i, r.end, `\[`):
		if e := indexFrom(src, i+2, r.end, `\]`); e >= 0 {
			return value(e + 2)
		}
		return nil
	case hasPrefixAt(src, i, r.end, "$$"):
		if e := indexFrom(src, i+2, r.end, "$$"); e > i+2 {
			return value(e + 2)
		}
		return nil
	case src[i] == '$':
		if e := p.inlineMath(r, i); e > 0 {
			return value(e)
		}
		return nil
	}

	j := i + 1
	for j < r.end && isAlpha(src[j]) {
		j++
	}
	if j == i+1 {
		return nil
	}
	if _, ok := entities[string(src[i+1:j])]; ok {
		return nil
	}
	if j < r.end && src[j] == '*' {
		j++
	}
	for j < r.end {
		var e int
		switch src[j] {
		case '[':
			e = groupEnd(src, j, r.end, ']', "[]{}\n")
		case '{':
			e = groupEnd(src, j, r.end, '}', "{}\n")
		default:
			e = -1
		}
		if e < 0 {
			break
		}
		j = e
	}
	return value(j)
}

// groupEnd returns the index after close for a group starting at i whose
// body contains none of the bytes in forbidden, or -1.
func groupEnd(src []byte, i, end int, close byte, forbidden string) int {
	for j := i + 1; j < end; j++ {
		if src[j] == close {
			return j + 1
		}
		if strings.IndexByte(forbidden, src[j]) >= 0 {
			return -1
		}
	}
	return -1
}

// inlineMath matches $x$ or $..$ where the opening dollar is not followed
// by whitespace or punctuation and the closing dollar is not preceded by
// whitespace and is followed by punctuation, whitespace or the end.
func (p *parser) inlineMath(r objRange, i int) int {
	src := p.src
	if i > r.start && src[i-1] == '$' {
		return -1
	}
	cs := i + 1
	if cs >= r.end || strings.IndexByte(" \t\r\n.,;$", src[cs]) >= 0 {
		return -1
	}
	newlines := 0
	for j := cs; j < r.end; j++ {
		switch src[j] {
		case '\n':
			newlines++
			if newlines > 1 {
				return -1
			}
		case '$':
			if j > cs && strings.IndexByte(" \t\r\n.,", src[j-1]) >= 0 {
				return -1
			}
			if j+1 < r.end && !isSpace(src[j+1]) && src[j+1] != '\n' && strings.IndexByte(".,?;:!'\")-", src[j+1]) < 0 {
				return -1
			}
			return j + 1
		}
	}
	return -1
}

// script matches _x and ^x after a non-blank character, in the forms
// _*, _{BALANCED} and _[+-]?SIGN-FREE-ALNUM.
func (p *parser) script(r objRange, i int) *Node {
	src := p.src
	if i == r.start || isSpace(src[i-1]) || src[i-1] == '\n' || i+1 >= r.end {
		return nil
	}
	kind := KindSubscript
	if src[i] == '^' {
		kind = KindSuperscript
	}
	cs := i + 1
	switch c := src[cs]; {
	case c == '*':
		return p.wrap(kind, &ScriptProps{}, i, cs, cs+1, cs+1, minimalSet, r.depth)
	case c == '{':
		e := balanced(src, cs, r.end, '{', '}', false)
		if e < 0 || e == cs+2 {
			return nil
		}
		return p.wrap(kind, &ScriptProps{Brackets: true}, i, cs+1, e-1, e, minimalSet, r.depth)
	}
	j := cs
	if src[j] == '+' || src[j] == '-' {
		j++
	}
	last := -1
	for j < r.end && (isAlnum(src[j]) || src[j] == ',' || src[j] == '.' || src[j] == '\\') {
		if isAlnum(src[j]) {
			last = j
		}
		j++
	}
	if last < 0 {
		return nil
	}
	return p.wrap(kind, &ScriptProps{}, i, cs, last+1, last+1, minimalSet, r.depth)
}
