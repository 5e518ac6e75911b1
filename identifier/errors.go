package identifier

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyInput      = errors.New("empty input")
	ErrExpectedLetters = errors.New("expected letters")
	ErrExpectedNumbers = errors.New("expected numbers")
	ErrInvalidLetters  = errors.New("invalid letters segment")
	ErrInvalidNumbers  = errors.New("invalid numbers segment")
	ErrEmptySegments   = errors.New("empty segments")
)

// ParseError reports why a raw string is not an identifier.
type ParseError struct {
	Input  string
	Offset int
	Err    error
}

func (e *ParseError) Error() string {
	if errors.Is(e.Err, ErrEmptyInput) {
		return fmt.Sprintf("parse identifier: %v", e.Err)
	}
	return fmt.Sprintf("parse identifier %q at offset %d: %v", e.Input, e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError reports a segment sequence that breaks the alternation or
// charset rules. It is always a caller bug.
type ValidationError struct {
	Index   int
	Segment Segment
	Err     error
}

func (e *ValidationError) Error() string {
	if errors.Is(e.Err, ErrEmptySegments) {
		return fmt.Sprintf("validate identifier: %v", e.Err)
	}
	return fmt.Sprintf("validate identifier: segment %d (%s %q): %v", e.Index, e.Segment.Kind, e.Segment.Value, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }
