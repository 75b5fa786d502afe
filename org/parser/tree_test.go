package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqual(t *testing.T) {
	tests := []struct {
		name  string
		a, b  string
		equal bool
	}{
		{"identical", "a *b*\n", "a *b*\n", true},
		{"token text is ignored", "*  Title\n", "* Title\n", true},
		{"table padding is ignored", "|a|b|\n", "| a | b |\n", true},
		{"text differs", "a *b*\n", "a *c*\n", false},
		{"blank lines are counted", "a\n\n\nb\n", "a\n\nb\n", false},
		{"bullet differs", "- a\n", "+ a\n", false},
		{"props differ", "* TODO a\n", "* DONE a\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := parse(t, tt.a), parse(t, tt.b)
			assert.Equal(t, tt.equal, Equal(a, b), Diff(a, b))
		})
	}
}

func TestBlankLines(t *testing.T) {
	assert.Equal(t, 0, BlankLines(""))
	assert.Equal(t, 1, BlankLines("\n"))
	assert.Equal(t, 2, BlankLines("\n  \n"))
	assert.Equal(t, 2, BlankLines("\n  "))
}

func TestWalkOrder(t *testing.T) {
	tree := parse(t, "* A\ntext\n** B\n")
	var got []Kind
	tree.Walk(func(n *Node, depth int) {
		if n.Kind.IsElement() || n.Kind == KindDocument {
			got = append(got, n.Kind)
		}
	})
	assert.Equal(t, []Kind{KindDocument, KindHeadline, KindSection, KindParagraph, KindHeadline}, got)
}

func TestInspectSkipsChildren(t *testing.T) {
	tree := parse(t, "* A\n** B\n")
	visited := 0
	tree.Inspect(func(n *Node) bool {
		visited++
		return n.Kind == KindDocument
	})
	assert.Equal(t, 2, visited)
}

func TestFields(t *testing.T) {
	tree := parse(t, "* TODO [#A] Title :x:\n")
	h := tree.Headlines()[0]
	fields := h.Fields()
	assert.Equal(t, 1, fields["level"])
	assert.Equal(t, "TODO", fields["todo-keyword"])
	assert.Equal(t, "A", fields["priority"])
	assert.Equal(t, []string{"x"}, fields["tags"])
	assert.NotContains(t, fields, "commented")

	tree = parse(t, "<2024-01-02 Tue 09:15>\n")
	ts := find(tree, KindTimestamp)
	require.Len(t, ts, 1)
	assert.Equal(t, map[string]int{"year": 2024, "month": 1, "day": 2, "hour": 9, "minute": 15}, ts[0].Fields()["start"])

	assert.Nil(t, tree.Root.Fields())
}

func TestKindNames(t *testing.T) {
	for k := KindDocument; k < kindCount; k++ {
		name := k.String()
		require.NotEqual(t, "Unknown", name, "kind %d", int(k))
		back, ok := KindFromString(name)
		require.True(t, ok, name)
		assert.Equal(t, k, back)
	}
	assert.Equal(t, "Unknown", Kind(-1).String())
}

func TestNodeString(t *testing.T) {
	tree := parse(t, "a\n")
	assert.Contains(t, tree.Root.String(), "Paragraph [0,2)")
}
