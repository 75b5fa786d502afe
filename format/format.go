package format

import (
	"encoding"
	"fmt"
	"io"

	"github.com/dhamidi/orgcst/org/parser"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(tree *parser.Tree) error
}

// orgEncoder adapts OrgPrinter to Encoder.
type orgEncoder struct {
	w    io.Writer
	tree *parser.Tree
}

func (e *orgEncoder) Encode(tree *parser.Tree) error {
	e.tree = tree
	return NewOrgPrinter(e.w).Print(tree)
}

func (e *orgEncoder) MarshalText() ([]byte, error) {
	return Serialize(e.tree)
}

// Names lists the formats accepted by NewEncoder.
var Names = []string{"json", "yaml", "tree", "outline", "org"}

// NewEncoder returns the encoder registered under name. styled only
// affects the outline format.
func NewEncoder(name string, w io.Writer, styled bool) (Encoder, error) {
	switch name {
	case "json":
		return NewASTJSONEncoder(w), nil
	case "yaml":
		return NewASTYAMLEncoder(w), nil
	case "tree":
		return NewLineEncoder(w), nil
	case "outline":
		return NewOutlineEncoder(w, styled), nil
	case "org":
		return &orgEncoder{w: w}, nil
	}
	return nil, fmt.Errorf("unknown format %q (want one of %v)", name, Names)
}
