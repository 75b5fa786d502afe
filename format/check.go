package format

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/dhamidi/orgcst/org/parser"
)

// ErrRoundTrip is returned by Check when re-parsing the canonical text
// does not reproduce the tree, or serializing twice changes the text.
var ErrRoundTrip = errors.New("round trip mismatch")

// Check verifies that the leaves of tree cover its source exactly and that
// the canonical text parses back into an equal tree. It returns the
// canonical text.
func Check(tree *parser.Tree, opts ...parser.Option) ([]byte, error) {
	if err := tree.CheckCoverage(); err != nil {
		return nil, fmt.Errorf("coverage: %w", err)
	}
	out, err := Serialize(tree)
	if err != nil {
		return nil, err
	}
	again, err := parser.Parse(out, opts...)
	if err != nil {
		return nil, fmt.Errorf("reparse: %w", err)
	}
	if d := parser.Diff(tree, again); d != "" {
		return out, fmt.Errorf("%w: %s", ErrRoundTrip, d)
	}
	twice, err := Serialize(again)
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(out, twice) {
		return out, fmt.Errorf("%w: canonical text changes when formatted again", ErrRoundTrip)
	}
	return out, nil
}
