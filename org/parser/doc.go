// Package parser builds a lossless concrete syntax tree (CST) from Org
// markup.
//
// # Overview
//
// Org is line oriented but context sensitive: whether a line is a heading,
// a list item, a table row or prose depends on the open blocks and drawers
// around it and on indentation. Inline markup depends on the characters
// around its delimiters. The parser therefore works in three passes over an
// immutable [buffer.Buffer]:
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│  Classify   │────▶│   Scanner   │────▶│  Elements   │────▶│   Objects   │
//	│  (lines)    │     │  (regions)  │     │  (nodes)    │     │  (inline)   │
//	└─────────────┘     └─────────────┘     └─────────────┘     └─────────────┘
//
// [Classify] is a pure function of one line and a small [LineState]. The
// scanner groups classified lines into nested regions using an explicit
// stack. The element parser turns regions into element nodes and hands
// paragraph, title, cell and similar ranges to the object parser.
//
// # Tree
//
// Every byte of the input belongs to exactly one leaf:
//
//	KindToken  syntax such as stars, bullets, pipes and markers
//	KindBlank  runs of blank lines
//	KindText   plain inline text
//	KindRaw    uninterpreted content such as block bodies
//
// plus atomic objects such as timestamps and entities. Concatenating the
// leaf spans reproduces the input (see [Tree.CheckCoverage]). Attributes
// live in a per-kind [Properties] struct.
//
// # Errors
//
// Parsing never fails on malformed markup; unmatched delimiters degrade to
// text. The only errors are [ErrInvalidEncoding] and [ErrNestingLimit].
package parser
