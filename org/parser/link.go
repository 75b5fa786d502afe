package parser

import "strings"

// linkTypes are the URI schemes recognized in angle and plain links and as
// prefixes of bracket link targets.
var linkTypes = []string{
	"attachment", "bbdb", "docview", "doi", "elisp", "file", "file+emacs", "file+sys",
	"ftp", "gnus", "help", "http", "https", "id", "info", "irc", "mailto", "man",
	"mhe", "news", "rmail", "shell",
}

func isLinkType(s string) bool {
	for _, t := range linkTypes {
		if t == s {
			return true
		}
	}
	return false
}

// linkTarget splits a link target into its type and path.
func linkTarget(raw string) (typ, path string) {
	if i := strings.IndexByte(raw, ':'); i > 0 && isLinkType(raw[:i]) {
		return raw[:i], raw[i+1:]
	}
	switch {
	case strings.HasPrefix(raw, "/"), strings.HasPrefix(raw, "./"),
		strings.HasPrefix(raw, "../"), strings.HasPrefix(raw, "~/"):
		return "file", raw
	case strings.HasPrefix(raw, "#") && len(raw) > 1:
		return "custom-id", raw[1:]
	case strings.HasPrefix(raw, "(") && strings.HasSuffix(raw, ")") && len(raw) > 2:
		return "coderef", raw[1 : len(raw)-1]
	}
	return "fuzzy", raw
}

// bracketLink matches [[TARGET]] and [[TARGET][DESCRIPTION]].
func (p *parser) bracketLink(r objRange, i int) *Node {
	src := p.src
	if !hasPrefixAt(src, i, r.end, "[[") {
		return nil
	}
	ts := i + 2
	te := -1
	for j := ts; j < r.end; j++ {
		c := src[j]
		if c == '\\' && j+1 < r.end && (src[j+1] == ']' || src[j+1] == '[' || src[j+1] == '\\') {
			j++
			continue
		}
		if c == '[' || c == '\n' {
			return nil
		}
		if c == ']' {
			te = j
			break
		}
	}
	if te <= ts || te+1 >= r.end {
		return nil
	}
	raw := strings.TrimSpace(string(src[ts:te]))
	if raw == "" {
		return nil
	}
	typ, path := linkTarget(raw)
	props := &LinkProps{Format: "bracket", Type: typ, Path: path, RawLink: raw}
	switch src[te+1] {
	case ']':
		return atom(KindLink, i, te+2, props)
	case '[':
		ds := te + 2
		de := indexFrom(src, ds, r.end, "]]")
		if de <= ds {
			return nil
		}
		return p.wrap(KindLink, props, i, ds, de, de+2, linkDescSet, r.depth)
	}
	return nil
}

// angleLink matches <TYPE:PATH> on a single line.
func (p *parser) angleLink(r objRange, i int) *Node {
	src := p.src
	for j := i + 1; j < r.end; j++ {
		switch src[j] {
		case '\n', '<', ']', '[':
			return nil
		case '>':
			raw := string(src[i+1 : j])
			colon := strings.IndexByte(raw, ':')
			if colon <= 0 || colon == len(raw)-1 || !isLinkType(raw[:colon]) {
				return nil
			}
			return atom(KindLink, i, j+1, &LinkProps{Format: "angle", Type: raw[:colon], Path: raw[colon+1:], RawLink: raw})
		}
	}
	return nil
}

// plainLink matches TYPE:PATH at the start of a word. The path stops at
// whitespace or brackets and drops trailing punctuation.
func (p *parser) plainLink(r objRange, i int) *Node {
	src := p.src
	if p.prevAlnum(r, i) {
		return nil
	}
	j := i
	for j < r.end && (isAlnum(src[j]) || src[j] == '+') {
		j++
	}
	if j >= r.end || src[j] != ':' || !isLinkType(string(src[i:j])) {
		return nil
	}
	ps := j + 1
	k := ps
	for k < r.end {
		c := src[k]
		if isSpace(c) || c == '\n' || c == '[' || c == ']' || c == '<' || c == '>' || c == '(' || c == ')' {
			break
		}
		k++
	}
	for k > ps && strings.IndexByte(".,;:!?'\"", src[k-1]) >= 0 {
		k--
	}
	if k == ps {
		return nil
	}
	raw := string(src[i:k])
	return atom(KindLink, i, k, &LinkProps{Format: "plain", Type: string(src[i:j]), Path: string(src[ps:k]), RawLink: raw})
}
