package format

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/orgcst/org/parser"
)

func mustParse(t *testing.T, src string) *parser.Tree {
	t.Helper()
	tree, err := parser.Parse([]byte(src))
	require.NoError(t, err)
	require.NoError(t, tree.CheckCoverage())
	return tree
}

func serialize(t *testing.T, src string) string {
	t.Helper()
	out, err := Serialize(mustParse(t, src))
	require.NoError(t, err)
	return string(out)
}

func TestSerialize(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"headline spacing", "*   TODO   [#A]  Title\n", "* TODO [#A] Title\n"},
		{"headline trailing whitespace", "** Title   \n", "** Title\n"},
		{"headline single space tags", "** DONE [#B] Fix  bug :x:\n", "** DONE [#B] Fix  bug :x:\n"},
		{"headline tags only", "*    :a:b:\n", "* :a:b:\n"},
		{"empty headline", "*\tCOMMENT\n", "* COMMENT\n"},
		{"item checkbox", "-   [X]   done\n", "- [X] done\n"},
		{"item counter", "1.  [@3]  three\n", "1. [@3] three\n"},
		{"item indentation kept", "  + a\n", "  + a\n"},
		{"descriptive item", "- term   ::   def\n", "- term :: def\n"},
		{"item without content", "- [ ]\n", "- [ ]\n"},
		{"nested item", "- a\n  -  b\n", "- a\n  - b\n"},
		{"keyword", "#+TITLE:   Hello  world  \n", "#+title: Hello  world\n"},
		{"keyword without value", "#+STARTUP:\n", "#+startup:\n"},
		{"babel call", "#+CALL:   f(x=1)\n", "#+call: f(x=1)\n"},
		{"affiliated keywords", "#+NAME: t\n#+CAPTION[s]: Long\n| a |\n", "#+name: t\n#+caption[s]: Long\n| a |\n"},
		{"affiliated key translated", "#+TBLNAME: t\n|a|\n", "#+name: t\n| a |\n"},
		{"src block", "#+BEGIN_SRC go -n :tangle x\nfmt.Println()\n  #+END_SRC\n", "#+begin_src go -n :tangle x\nfmt.Println()\n  #+end_src\n"},
		{"special block keeps case", "#+begin_Warning\nx\n#+end_WARNING\n", "#+begin_Warning\nx\n#+end_Warning\n"},
		{"unterminated block", "#+begin_quote\ntext\n", "#+begin_quote\ntext\n"},
		{"dynamic block", "#+BEGIN: clocktable :scope file\n#+END:\n", "#+begin: clocktable :scope file\n#+end:\n"},
		{"drawer", ":LOGBOOK:\nx\n:end:\n", ":LOGBOOK:\nx\n:END:\n"},
		{"property drawer", "* H\n:properties:\n:Foo+:   bar\n:end:\n", "* H\n:PROPERTIES:\n:Foo+: bar\n:END:\n"},
		{"blank lines", "a\n  \n\t\nb\n", "a\n\n\nb\n"},
		{"paragraph verbatim", "some *bold*  text\n", "some *bold*  text\n"},
		{"no final newline", "text", "text"},
		{"empty document", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, serialize(t, tt.src))
		})
	}
}

func TestSerializeAlignsTags(t *testing.T) {
	out := serialize(t, "*  TODO   Title   :a:b:\n")
	line := strings.TrimSuffix(out, "\n")
	assert.True(t, strings.HasPrefix(line, "* TODO Title  "), line)
	assert.True(t, strings.HasSuffix(line, " :a:b:"), line)
	assert.Len(t, line, tagColumn)

	long := "* " + strings.Repeat("x", 80) + "  :t:\n"
	assert.Equal(t, long, serialize(t, long))
}

func TestSerializeTables(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			"columns aligned",
			"|a|bb|\n|-\n|ccc|d\n",
			"| a   | bb |\n|-----+----|\n| ccc | d  |\n",
		},
		{
			"rows take first indentation",
			"  | a |\n    | b |\n",
			"  | a |\n  | b |\n",
		},
		{
			"formula kept",
			"| 1 |\n#+TBLFM: $1=1\n",
			"| 1 |\n#+TBLFM: $1=1\n",
		},
		{
			"display width",
			"|日本|x|\n|a|b|\n",
			"| 日本 | x |\n| a    | b |\n",
		},
		{
			"empty cells",
			"||x|\n",
			"|   | x |\n",
		},
		{
			"pipe inside code",
			"|~a|b~|c|\n",
			"| ~a|b~ | c |\n",
		},
		{
			"rule only",
			"|-\n",
			"|---|\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := serialize(t, tt.src)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, serialize(t, got), "alignment is not idempotent")
		})
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	docs := []string{
		"#+TITLE: Doc\n#+TODO: TODO NEXT | DONE\n\n* NEXT [#A] Heading :work:\nSCHEDULED: <2024-01-01 Mon>\n:PROPERTIES:\n:ID: 1\n:END:\n",
		"- a\n  - b\n\n    continued\n- [X] c\n\n\n* H\n",
		"#+NAME: tbl\n| a | b |\n|---+---|\n| 1 | 2 |\n#+TBLFM: $2=$1\n",
		"#+begin_quote\n- in quote\n#+begin_center\nnested\n#+end_center\n#+end_quote\n",
		"* A\n** B\n*** C\ntext [[https://x.org][link *b*]] <2024-02-03 Sat>\n",
		"[fn:1] A footnote.\n\n: fixed\n# comment\n-----\n",
		"#+begin_src\n* not a headline\n#+end_src\n",
	}
	for _, src := range docs {
		tree := mustParse(t, src)
		out, err := Serialize(tree)
		require.NoError(t, err)
		again := mustParse(t, string(out))
		assert.True(t, parser.Equal(tree, again), "%s\n%s", parser.Diff(tree, again), out)

		twice, err := Serialize(again)
		require.NoError(t, err)
		assert.Equal(t, string(out), string(twice))
	}
}

func TestSerializeNode(t *testing.T) {
	tree := mustParse(t, "* A\ntext\n*  B :x:\nmore\n")
	hs := tree.Headlines()
	require.Len(t, hs, 2)

	out, err := SerializeNode(tree, hs[1])
	require.NoError(t, err)
	assert.Equal(t, "* B :x:\nmore\n", string(out))
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(mustParse(t, "* A\n- b\n")))

	tests := []struct {
		name   string
		mutate func(tree *parser.Tree)
	}{
		{"root kind", func(tree *parser.Tree) { tree.Root.Kind = parser.KindSection }},
		{"root span", func(tree *parser.Tree) { tree.Root.Span.End-- }},
		{"missing props", func(tree *parser.Tree) { tree.Headlines()[0].Props = nil }},
		{"child gap", func(tree *parser.Tree) { tree.Headlines()[0].Children[0].Span.Start++ }},
		{"empty element", func(tree *parser.Tree) {
			tree.Inspect(func(n *parser.Node) bool {
				if n.Kind == parser.KindItem {
					n.Children = nil
				}
				return true
			})
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := mustParse(t, "* A\n- b\n")
			tt.mutate(tree)
			err := Validate(tree)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedTree), err.Error())

			_, err = Serialize(tree)
			assert.True(t, errors.Is(err, ErrMalformedTree))
		})
	}

	var te *TreeError
	tree := mustParse(t, "* A\n")
	tree.Headlines()[0].Props = &parser.HeadlineProps{}
	require.True(t, errors.As(Validate(tree), &te))
	assert.Equal(t, parser.KindHeadline, te.Kind)
	assert.Error(t, Validate(nil))
}
