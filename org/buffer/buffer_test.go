package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLines(t *testing.T) {
	tests := []struct {
		src   string
		lines []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a\n", []string{"a\n"}},
		{"a\nb", []string{"a\n", "b"}},
		{"a\n\nb\n", []string{"a\n", "\n", "b\n"}},
	}

	for _, tt := range tests {
		b := New([]byte(tt.src))
		require.Equal(t, len(tt.lines), b.LineCount(), "src %q", tt.src)
		for i, want := range tt.lines {
			assert.Equal(t, want, b.Text(b.Line(i)), "src %q line %d", tt.src, i)
		}
	}
}

func TestContentStripsNewline(t *testing.T) {
	b := New([]byte("one\ntwo"))
	assert.Equal(t, "one", b.Text(b.Content(0)))
	assert.Equal(t, "two", b.Text(b.Content(1)))
}

func TestPosition(t *testing.T) {
	b := New([]byte("ab\nçd😀x\n"))

	pos := b.Position(0)
	assert.Equal(t, Position{Offset: 0, Line: 1, Column: 1, UTF16Column: 0}, pos)

	pos = b.Position(3)
	assert.Equal(t, 2, pos.Line)
	assert.Equal(t, 1, pos.Column)

	// "çd😀" is 2+1+4 bytes and 1+1+2 UTF-16 units.
	pos = b.Position(3 + 7)
	assert.Equal(t, 2, pos.Line)
	assert.Equal(t, 8, pos.Column)
	assert.Equal(t, 4, pos.UTF16Column)
}

func TestOffsetRoundTrip(t *testing.T) {
	b := New([]byte("ab\nçd😀x\n"))
	for _, off := range []int{0, 1, 3, 5, 6, 10} {
		pos := b.Position(off)
		assert.Equal(t, off, b.Offset(pos.Line-1, pos.UTF16Column), "offset %d", off)
	}
	assert.Equal(t, b.Len(), b.Offset(10, 0))
}

func TestSpan(t *testing.T) {
	s := Span{Start: 2, End: 5}
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Contains(2))
	assert.False(t, s.Contains(5))
	assert.True(t, s.Covers(Span{Start: 3, End: 5}))
	assert.False(t, s.Covers(Span{Start: 1, End: 3}))
	assert.True(t, Span{Start: 4, End: 4}.Empty())
}
