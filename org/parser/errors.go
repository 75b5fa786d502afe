package parser

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidEncoding = errors.New("invalid UTF-8 input")
	ErrNestingLimit    = errors.New("nesting depth limit exceeded")
)

// EncodingError reports the first byte that is not valid UTF-8.
type EncodingError struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %v at byte %d", displayFile(e.File), e.Line, e.Column, ErrInvalidEncoding, e.Offset)
}

func (e *EncodingError) Unwrap() error {
	return ErrInvalidEncoding
}

// LimitError reports the offset at which nesting exceeded the configured
// depth.
type LimitError struct {
	File   string
	Depth  int
	Offset int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("%s: %v (max %d) at byte %d", displayFile(e.File), ErrNestingLimit, e.Depth, e.Offset)
}

func (e *LimitError) Unwrap() error {
	return ErrNestingLimit
}

func displayFile(file string) string {
	if file == "" {
		return "<input>"
	}
	return file
}
