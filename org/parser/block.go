package parser

import "strings"

// delimited splits a region's units into opening line, body and closing
// line. The closing line is nil for unterminated regions.
func (p *parser) delimited(r *region) (unit, []unit, *unit) {
	us := p.units(r.items)
	open, body := us[0], us[1:]
	if r.closed && len(body) > 0 {
		end := body[len(body)-1]
		return open, body[:len(body)-1], &end
	}
	return open, body, nil
}

func (p *parser) drawer(r *region, depth int) *Node {
	open, body, end := p.delimited(r)
	n := &Node{Kind: r.kind, Props: &DrawerProps{Name: r.open.Name, Unterminated: end == nil}}
	n.AddChild(p.leaf(KindToken, open.span.Start, open.span.End))
	n.Children = append(n.Children, p.contents(body, depth)...)
	if end != nil {
		n.AddChild(p.leaf(KindToken, end.span.Start, end.span.End))
	}
	return finish(n)
}

func (p *parser) greaterBlock(r *region, depth int) *Node {
	open, body, end := p.delimited(r)
	props := &BlockProps{Type: r.open.Name, Parameters: r.open.Value, Unterminated: end == nil}
	n := &Node{Kind: r.kind, Props: props}
	n.AddChild(p.leaf(KindToken, open.span.Start, open.span.End))
	n.Children = append(n.Children, p.contents(body, depth)...)
	if end != nil {
		n.AddChild(p.leaf(KindToken, end.span.Start, end.span.End))
	}
	return finish(n)
}

// verbatimBlock keeps the body of src, example, export and comment blocks
// as a single raw leaf. Verse blocks keep their lines but parse objects.
func (p *parser) verbatimBlock(r *region, depth int) *Node {
	open, body, end := p.delimited(r)
	props := blockProps(r.kind, r.open.Name, r.open.Value)
	props.Unterminated = end == nil
	n := &Node{Kind: r.kind, Props: props}
	n.AddChild(p.leaf(KindToken, open.span.Start, open.span.End))
	if len(body) > 0 {
		start, stop := body[0].span.Start, body[len(body)-1].span.End
		if r.kind == KindVerseBlock {
			n.Children = append(n.Children, p.objects(start, stop, standardSet, depth)...)
		} else {
			n.AddChild(p.leaf(KindRaw, start, stop))
		}
	}
	if end != nil {
		n.AddChild(p.leaf(KindToken, end.span.Start, end.span.End))
	}
	return finish(n)
}

func (p *parser) latexEnvironment(r *region) *Node {
	us := p.units(r.items)
	n := &Node{Kind: KindLatexEnvironment, Props: &LatexEnvironmentProps{Name: r.open.Name, Unterminated: !r.closed}}
	n.AddChild(p.leaf(KindRaw, us[0].span.Start, us[len(us)-1].span.End))
	return finish(n)
}

func blockProps(kind Kind, name, params string) *BlockProps {
	props := &BlockProps{Type: name, Parameters: params}
	switch kind {
	case KindSrcBlock:
		props.Language, props.Switches, props.Arguments = srcParameters(params)
	case KindExampleBlock:
		props.Switches = params
	case KindExportBlock:
		props.Backend, _ = splitField([]byte(params))
		props.Backend = strings.ToLower(props.Backend)
	}
	return props
}

// srcParameters splits "LANG SWITCHES :header args" as found after
// #+begin_src.
func srcParameters(params string) (lang, switches, args string) {
	rest := params
	if rest != "" && rest[0] != '-' && rest[0] != '+' && rest[0] != ':' {
		lang, rest = cutField(rest)
	}
	for rest != "" && rest[0] != ':' {
		var f string
		f, rest = cutField(rest)
		if switches != "" {
			switches += " "
		}
		switches += f
	}
	return lang, switches, rest
}

func cutField(s string) (string, string) {
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimLeft(s[i:], " \t")
}
