// Package buffer provides an immutable, line-indexed view over Org source
// text. Every other package addresses text through byte offset spans into a
// Buffer instead of copying substrings around.
package buffer

import (
	"sort"
	"unicode/utf8"
)

// Span is a half-open byte range [Start, End) into a Buffer.
type Span struct {
	Start int
	End   int
}

func (s Span) Len() int {
	return s.End - s.Start
}

func (s Span) Empty() bool {
	return s.End <= s.Start
}

// Contains reports whether off lies inside the span.
func (s Span) Contains(off int) bool {
	return off >= s.Start && off < s.End
}

// Covers reports whether o lies completely inside s.
func (s Span) Covers(o Span) bool {
	return o.Start >= s.Start && o.End <= s.End
}

// Position is a resolved location in the buffer. Line and Column are
// 1-based; Column counts bytes, UTF16Column counts UTF-16 code units
// (0-based) as language servers expect.
type Position struct {
	Offset      int
	Line        int
	Column      int
	UTF16Column int
}

type Buffer struct {
	src   []byte
	lines []int
}

func New(src []byte) *Buffer {
	b := &Buffer{src: src}
	if len(src) > 0 {
		b.lines = append(b.lines, 0)
	}
	for i, c := range src {
		if c == '\n' && i+1 < len(src) {
			b.lines = append(b.lines, i+1)
		}
	}
	return b
}

func (b *Buffer) Bytes() []byte {
	return b.src
}

func (b *Buffer) Len() int {
	return len(b.src)
}

func (b *Buffer) Slice(start, end int) []byte {
	return b.src[start:end]
}

func (b *Buffer) Text(s Span) string {
	return string(b.src[s.Start:s.End])
}

// LineCount returns the number of lines. A trailing newline does not start
// a new line.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Line returns the span of line i (0-based) including its newline, if any.
func (b *Buffer) Line(i int) Span {
	start := b.lines[i]
	end := len(b.src)
	if i+1 < len(b.lines) {
		end = b.lines[i+1]
	}
	return Span{Start: start, End: end}
}

// Content returns the span of line i without its trailing newline.
func (b *Buffer) Content(i int) Span {
	s := b.Line(i)
	if s.End > s.Start && b.src[s.End-1] == '\n' {
		s.End--
	}
	return s
}

// LineAt returns the 0-based line containing off. Offsets at or past the end
// map to the last line.
func (b *Buffer) LineAt(off int) int {
	if len(b.lines) == 0 {
		return 0
	}
	i := sort.Search(len(b.lines), func(i int) bool { return b.lines[i] > off })
	if i == 0 {
		return 0
	}
	return i - 1
}

func (b *Buffer) Position(off int) Position {
	if off > len(b.src) {
		off = len(b.src)
	}
	line := b.LineAt(off)
	start := 0
	if len(b.lines) > 0 {
		start = b.lines[line]
	}
	if off < start {
		start = off
	}
	return Position{
		Offset:      off,
		Line:        line + 1,
		Column:      off - start + 1,
		UTF16Column: utf16Len(b.src[start:off]),
	}
}

// Offset converts a 0-based line and UTF-16 column back into a byte offset,
// clamping to the end of the line.
func (b *Buffer) Offset(line, utf16Col int) int {
	if line >= len(b.lines) {
		return len(b.src)
	}
	content := b.Content(line)
	off := content.Start
	col := 0
	for off < content.End && col < utf16Col {
		r, size := utf8.DecodeRune(b.src[off:])
		if r >= 0x10000 {
			col += 2
		} else {
			col++
		}
		off += size
	}
	return off
}

func utf16Len(p []byte) int {
	n := 0
	for len(p) > 0 {
		r, size := utf8.DecodeRune(p)
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
		p = p[size:]
	}
	return n
}
