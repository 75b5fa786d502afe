package parser

import (
	"strings"

	"github.com/dhamidi/orgcst/org/buffer"
)

var affiliatedKeys = map[string]string{
	"CAPTION": "CAPTION",
	"HEADER":  "HEADER",
	"HEADERS": "HEADER",
	"NAME":    "NAME",
	"PLOT":    "PLOT",
	"RESULTS": "RESULTS",
	"DATA":    "NAME",
	"LABEL":   "NAME",
	"RESNAME": "NAME",
	"SOURCE":  "NAME",
	"SRCNAME": "NAME",
	"TBLNAME": "NAME",
	"RESULT":  "RESULTS",
}

var dualKeys = map[string]bool{
	"CAPTION": true,
	"RESULTS": true,
	"RESULT":  true,
}

// AffiliatedKey returns the canonical form of an affiliated keyword, or
// false when key is not one.
func AffiliatedKey(key string) (string, bool) {
	key = strings.ToUpper(key)
	if canonical, ok := affiliatedKeys[key]; ok {
		return canonical, true
	}
	if strings.HasPrefix(key, "ATTR_") && len(key) > len("ATTR_") {
		return key, true
	}
	return "", false
}

// splitKeyOption separates "CAPTION[short]" into key and option. Only dual
// keywords take an option.
func splitKeyOption(raw string) (string, string) {
	key := strings.ToUpper(raw)
	if i := strings.IndexByte(raw, '['); i > 0 && strings.HasSuffix(raw, "]") {
		if base := strings.ToUpper(raw[:i]); dualKeys[base] {
			return base, raw[i+1 : len(raw)-1]
		}
	}
	return key, ""
}

func attachable(k Kind) bool {
	switch k {
	case KindParagraph, KindPlainList, KindTable, KindDrawer, KindFootnoteDefinition,
		KindCenterBlock, KindQuoteBlock, KindSpecialBlock, KindDynamicBlock,
		KindSrcBlock, KindExampleBlock, KindExportBlock, KindCommentBlock, KindVerseBlock,
		KindLatexEnvironment, KindFixedWidth, KindHorizontalRule, KindBabelCall, KindDiarySexp:
		return true
	}
	return false
}

func isAffiliatedKeyword(n *Node) bool {
	if n.Kind != KindKeyword {
		return false
	}
	_, ok := AffiliatedKey(n.Props.(*KeywordProps).Key)
	return ok
}

// attachAffiliated folds each run of affiliated keywords into the element
// that directly follows it. Runs not followed by an attachable element stay
// standalone keywords.
func attachAffiliated(nodes []*Node) []*Node {
	out := nodes[:0]
	for i := 0; i < len(nodes); {
		if !isAffiliatedKeyword(nodes[i]) {
			out = append(out, nodes[i])
			i++
			continue
		}
		j := i
		for j < len(nodes) && isAffiliatedKeyword(nodes[j]) {
			j++
		}
		if j == len(nodes) || !attachable(nodes[j].Kind) {
			out = append(out, nodes[i:j]...)
			i = j
			continue
		}
		el := nodes[j]
		for _, kw := range nodes[i:j] {
			kp := kw.Props.(*KeywordProps)
			key, _ := AffiliatedKey(kp.Key)
			el.Affiliated = append(el.Affiliated, AffiliatedKeyword{Key: key, Option: kp.Option, Value: kp.Value})
		}
		tok := &Node{Kind: KindToken, Span: buffer.Span{Start: nodes[i].Span.Start, End: nodes[j-1].Span.End}}
		el.Children = append([]*Node{tok}, el.Children...)
		el.Span.Start = tok.Span.Start
		out = append(out, el)
		i = j + 1
	}
	return out
}
