package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// paragraphObjects parses src as a single paragraph and returns its
// children that are not plain text.
func paragraphObjects(t *testing.T, src string) (*Tree, []*Node) {
	t.Helper()
	tree := parse(t, src)
	paras := find(tree, KindParagraph)
	require.Len(t, paras, 1, "src %q", src)
	var objs []*Node
	for _, c := range paras[0].Children {
		if c.Kind != KindText {
			objs = append(objs, c)
		}
	}
	return tree, objs
}

func TestObjectRecognition(t *testing.T) {
	tests := []struct {
		src  string
		want []Kind
	}{
		{"a *b* c", []Kind{KindBold}},
		{"a*b* c", []Kind{}},
		{"*a*b", []Kind{}},
		{"x * a*", []Kind{}},
		{"/it/ and _u_ and +s+", []Kind{KindItalic, KindUnderline, KindStrikeThrough}},
		{"~code~ =verb=", []Kind{KindCode, KindVerbatim}},
		{"(*paren*)", []Kind{KindBold}},
		{"*two\nlines*", []Kind{KindBold}},
		{"*three\nlines\nhere*", []Kind{}},
		{"[[https://orgmode.org][Org]]", []Kind{KindLink}},
		{"<mailto:a@b.c>", []Kind{KindLink}},
		{"see https://go.dev.", []Kind{KindLink}},
		{"xhttps://no", []Kind{}},
		{"x[fn:1]", []Kind{KindFootnoteReference}},
		{"[fn::inline [nested] def]", []Kind{KindFootnoteReference}},
		{"<2024-03-01 Fri>", []Kind{KindTimestamp}},
		{"<2024-03-01 Fri]", []Kind{}},
		{"[1/3] [50%] [/]", []Kind{KindStatisticsCookie, KindStatisticsCookie, KindStatisticsCookie}},
		{"<<here>>", []Kind{KindTarget}},
		{"<< here>>", []Kind{}},
		{"<<<Radio>>>", []Kind{KindRadioTarget}},
		{"@@html:<b>@@", []Kind{KindExportSnippet}},
		{"{{{title}}}", []Kind{KindMacro}},
		{"src_go{x}", []Kind{KindInlineSrc}},
		{"call_f(1)", []Kind{KindInlineBabelCall}},
		{`\alpha`, []Kind{KindEntity}},
		{`\alphabet`, []Kind{KindLatexFragment}},
		{`\(x\)`, []Kind{KindLatexFragment}},
		{`\[x\]`, []Kind{KindLatexFragment}},
		{"$x$", []Kind{KindLatexFragment}},
		{"$$a + b$$", []Kind{KindLatexFragment}},
		{"costs $5 or $6", []Kind{}},
		{"a\\\\\nb", []Kind{KindLineBreak}},
		{"H_2", []Kind{KindSubscript}},
		{"x^{10}", []Kind{KindSuperscript}},
		{"a _b", []Kind{}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, objs := paragraphObjects(t, tt.src)
			assert.Equal(t, tt.want, kinds(objs))
		})
	}
}

func TestEmphasisContents(t *testing.T) {
	tree, objs := paragraphObjects(t, "*bold /italic/ text*")
	require.Len(t, objs, 1)
	bold := objs[0]
	assert.Equal(t, []Kind{KindToken, KindText, KindItalic, KindText, KindToken}, kinds(bold.Children))
	assert.Equal(t, "*bold /italic/ text*", tree.Text(bold))

	_, objs = paragraphObjects(t, "=a *b* c=")
	require.Len(t, objs, 1)
	assert.Equal(t, KindVerbatim, objs[0].Kind)
	assert.Equal(t, "a *b* c", objs[0].Props.(*ValueProps).Value)
}

func TestEmphasisSkipsLinks(t *testing.T) {
	_, objs := paragraphObjects(t, "*a [[l][b*]] c*")
	require.Len(t, objs, 1)
	assert.Equal(t, KindBold, objs[0].Kind)
	assert.NotNil(t, objs[0].FirstChildOfKind(KindLink))
}

func TestSameEmphasisDoesNotNest(t *testing.T) {
	_, objs := paragraphObjects(t, "*a *b* c*")
	require.Len(t, objs, 1)
	assert.Equal(t, KindBold, objs[0].Kind)
	assert.Nil(t, objs[0].FirstChildOfKind(KindBold))
}

func TestLinkProps(t *testing.T) {
	tests := []struct {
		src  string
		want LinkProps
	}{
		{"[[https://orgmode.org][Org]]", LinkProps{Format: "bracket", Type: "https", Path: "//orgmode.org", RawLink: "https://orgmode.org"}},
		{"[[file:notes.org]]", LinkProps{Format: "bracket", Type: "file", Path: "notes.org", RawLink: "file:notes.org"}},
		{"[[./img.png]]", LinkProps{Format: "bracket", Type: "file", Path: "./img.png", RawLink: "./img.png"}},
		{"[[#custom]]", LinkProps{Format: "bracket", Type: "custom-id", Path: "custom", RawLink: "#custom"}},
		{"[[(ref)]]", LinkProps{Format: "bracket", Type: "coderef", Path: "ref", RawLink: "(ref)"}},
		{"[[Some heading]]", LinkProps{Format: "bracket", Type: "fuzzy", Path: "Some heading", RawLink: "Some heading"}},
		{"<mailto:a@b.c>", LinkProps{Format: "angle", Type: "mailto", Path: "a@b.c", RawLink: "mailto:a@b.c"}},
		{"see https://go.dev.", LinkProps{Format: "plain", Type: "https", Path: "//go.dev", RawLink: "https://go.dev"}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, objs := paragraphObjects(t, tt.src)
			require.Len(t, objs, 1)
			assert.Equal(t, tt.want, *objs[0].Props.(*LinkProps))
		})
	}
}

func TestLinkDescription(t *testing.T) {
	_, objs := paragraphObjects(t, "[[https://orgmode.org][Org *mode* <2024-01-01 Mon>]]")
	require.Len(t, objs, 1)
	link := objs[0]
	assert.NotNil(t, link.FirstChildOfKind(KindBold))
	assert.Nil(t, link.FirstChildOfKind(KindTimestamp), "timestamps are not allowed in descriptions")
}

func TestTimestampProps(t *testing.T) {
	tests := []struct {
		src  string
		want TimestampProps
	}{
		{
			"<2024-03-01 Fri 10:00-11:30 +1w -2d>",
			TimestampProps{
				Type:     "active-range",
				RawValue: "<2024-03-01 Fri 10:00-11:30 +1w -2d>",
				Start:    TimePoint{Year: 2024, Month: 3, Day: 1, Hour: 10, Minute: 0, HasTime: true},
				End:      TimePoint{Year: 2024, Month: 3, Day: 1, Hour: 11, Minute: 30, HasTime: true},
				Repeater: "+1w",
				Warning:  "-2d",
			},
		},
		{
			"[2024-03-01 Fri]--[2024-03-02 Sat]",
			TimestampProps{
				Type:     "inactive-range",
				RawValue: "[2024-03-01 Fri]--[2024-03-02 Sat]",
				Start:    TimePoint{Year: 2024, Month: 3, Day: 1},
				End:      TimePoint{Year: 2024, Month: 3, Day: 2},
			},
		},
		{
			"<2024-01-01 .+1d>",
			TimestampProps{
				Type:     "active",
				RawValue: "<2024-01-01 .+1d>",
				Start:    TimePoint{Year: 2024, Month: 1, Day: 1},
				Repeater: ".+1d",
			},
		},
		{
			"<%%(diary-float t 4 2)>",
			TimestampProps{Type: "diary", RawValue: "<%%(diary-float t 4 2)>"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, objs := paragraphObjects(t, tt.src)
			require.Len(t, objs, 1)
			assert.Equal(t, tt.want, *objs[0].Props.(*TimestampProps))
		})
	}
}

func TestMarkupProps(t *testing.T) {
	_, objs := paragraphObjects(t, `{{{kbd(C-x\, b, y)}}} src_python[:exports both]{1+1} call_f[:x 1](a=2)[:results raw] @@latex:\LaTeX@@`)
	require.Equal(t, []Kind{KindMacro, KindInlineSrc, KindInlineBabelCall, KindExportSnippet}, kinds(objs))

	assert.Equal(t, MacroProps{Key: "kbd", Args: []string{"C-x, b", "y"}}, *objs[0].Props.(*MacroProps))
	assert.Equal(t, InlineSrcProps{Language: "python", Parameters: ":exports both", Value: "1+1"}, *objs[1].Props.(*InlineSrcProps))
	assert.Equal(t, InlineBabelCallProps{Call: "f", InsideHeader: ":x 1", Arguments: "a=2", EndHeader: ":results raw"},
		*objs[2].Props.(*InlineBabelCallProps))
	assert.Equal(t, ExportSnippetProps{Backend: "latex", Value: `\LaTeX`}, *objs[3].Props.(*ExportSnippetProps))
}

func TestEntityProps(t *testing.T) {
	_, objs := paragraphObjects(t, `\alpha \there4 \alpha{}x \alpha2`)
	require.Equal(t, []Kind{KindEntity, KindEntity, KindEntity, KindEntity}, kinds(objs))
	assert.Equal(t, EntityProps{Name: "alpha", Latex: `\alpha`, UTF8: "α"}, *objs[0].Props.(*EntityProps))
	assert.Equal(t, "there4", objs[1].Props.(*EntityProps).Name)
	assert.True(t, objs[2].Props.(*EntityProps).Brackets)
	assert.Equal(t, "alpha", objs[3].Props.(*EntityProps).Name)
}

func TestFootnoteReferenceProps(t *testing.T) {
	_, objs := paragraphObjects(t, "a[fn:1] b[fn:named:inline *def*] c[fn::anon]")
	require.Len(t, objs, 3)
	assert.Equal(t, FootnoteReferenceProps{Label: "1", Type: "standard"}, *objs[0].Props.(*FootnoteReferenceProps))
	assert.Equal(t, FootnoteReferenceProps{Label: "named", Type: "inline"}, *objs[1].Props.(*FootnoteReferenceProps))
	assert.NotNil(t, objs[1].FirstChildOfKind(KindBold))
	assert.Equal(t, FootnoteReferenceProps{Type: "inline"}, *objs[2].Props.(*FootnoteReferenceProps))
}

func TestTitleExcludesLineBreaks(t *testing.T) {
	tree := parse(t, "* Title \\\\\n")
	assert.Empty(t, find(tree, KindLineBreak))
}
