package parser

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/orgcst/org/buffer"
)

var log = commonlog.GetLogger("orgcst.parser")

// Parse builds the syntax tree of an Org document. The only failures are
// input that is not valid UTF-8 and nesting deeper than the configured
// limit; every other input produces a tree.
func Parse(src []byte, opts ...Option) (*Tree, error) {
	cfg := newConfig(opts)
	buf := buffer.New(src)
	if off := invalidUTF8(src); off >= 0 {
		pos := buf.Position(off)
		return nil, &EncodingError{File: cfg.file, Offset: off, Line: pos.Line, Column: pos.Column}
	}

	s := newScanner(buf, &cfg)
	root, err := s.scan()
	if err != nil {
		return nil, err
	}

	p := &parser{
		cfg:   cfg,
		buf:   buf,
		src:   buf.Bytes(),
		lines: s.lines,
		todo:  todoKeywordsFromLines(s.lines),
	}
	doc := p.build(root, 0)
	if p.err != nil {
		return nil, p.err
	}
	doc.Span = buffer.Span{Start: 0, End: buf.Len()}
	log.Debugf("parsed %s: %d lines", displayFile(cfg.file), buf.LineCount())
	return &Tree{Buf: buf, Root: doc}, nil
}

func invalidUTF8(src []byte) int {
	for i := 0; i < len(src); {
		r, size := utf8.DecodeRune(src[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return -1
}

// Input is one document handed to ParseMany.
type Input struct {
	Name string
	Src  []byte
}

// Result pairs an input with its tree or its parse error.
type Result struct {
	Name string
	Tree *Tree
	Err  error
}

// ParseMany parses independent documents concurrently, at most
// WithWorkers(n) at a time. Parse failures are reported per document in
// the results; the returned error is only set when ctx is done first.
func ParseMany(ctx context.Context, inputs []Input, opts ...Option) ([]Result, error) {
	cfg := newConfig(opts)
	results := make([]Result, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.workers)
	for i, in := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			local := append([]Option{}, opts...)
			tree, err := Parse(in.Src, append(local, WithFile(in.Name))...)
			if err != nil {
				err = fmt.Errorf("parse %s: %w", displayFile(in.Name), err)
			}
			results[i] = Result{Name: in.Name, Tree: tree, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
