// Package identifier implements Zettelkasten style note identifiers: strings
// of alternating letter and number runs, such as "a", "a1", "a1b" or "b12c3",
// where every run is one level of a tree.
package identifier

import (
	"errors"
	"strings"
)

// Kind is the character class of a segment.
type Kind int

const (
	Letters Kind = iota
	Numbers
)

func (k Kind) String() string {
	switch k {
	case Letters:
		return "letters"
	case Numbers:
		return "numbers"
	default:
		return "unknown"
	}
}

func (k Kind) opposite() Kind {
	if k == Letters {
		return Numbers
	}
	return Letters
}

// Segment is one run of letters or digits.
type Segment struct {
	Kind  Kind
	Value string
}

// L and N build segments without validation. New and Validate check them.
func L(value string) Segment { return Segment{Kind: Letters, Value: value} }
func N(value string) Segment { return Segment{Kind: Numbers, Value: value} }

// ID is a validated, immutable identifier. The zero value has no segments and
// stands for "no identifier", e.g. the parent of a root.
type ID struct {
	segments []Segment
	raw      string
}

// Parse scans raw left to right, alternating between a run of lowercase
// letters and a run of decimal digits, starting with letters.
func Parse(raw string) (ID, error) {
	if raw == "" {
		return ID{}, &ParseError{Input: raw, Err: ErrEmptyInput}
	}

	var segments []Segment
	expect := Letters
	pos := 0
	for pos < len(raw) {
		end := pos
		for end < len(raw) && inClass(expect, raw[end]) {
			end++
		}
		if end == pos {
			return ID{}, &ParseError{Input: raw, Offset: pos, Err: expectedErr(expect)}
		}
		segments = append(segments, Segment{Kind: expect, Value: raw[pos:end]})
		expect = expect.opposite()
		pos = end
	}

	if err := Validate(segments); err != nil {
		var verr *ValidationError
		if !errors.As(err, &verr) {
			return ID{}, err
		}
		offset := 0
		for _, s := range segments[:verr.Index] {
			offset += len(s.Value)
		}
		return ID{}, &ParseError{Input: raw, Offset: offset, Err: verr.Err}
	}
	return ID{segments: segments, raw: raw}, nil
}

// MustParse is Parse for literals known to be valid. It panics otherwise.
func MustParse(raw string) ID {
	id, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return id
}

// IsValid reports whether raw parses.
func IsValid(raw string) bool {
	_, err := Parse(raw)
	return err == nil
}

// Validate checks that segments are non-empty, alternate starting with
// letters and only use the charset of their kind.
func Validate(segments []Segment) error {
	if len(segments) == 0 {
		return &ValidationError{Err: ErrEmptySegments}
	}
	for i, s := range segments {
		want := Letters
		if i%2 == 1 {
			want = Numbers
		}
		if s.Kind != want || !validValue(want, s.Value) {
			return &ValidationError{Index: i, Segment: s, Err: invalidErr(want)}
		}
	}
	return nil
}

// New builds an ID from a caller supplied segment sequence.
func New(segments []Segment) (ID, error) {
	if err := Validate(segments); err != nil {
		return ID{}, err
	}
	own := make([]Segment, len(segments))
	copy(own, segments)
	return ID{segments: own, raw: join(own)}, nil
}

// MustNew is New for derived identifiers. A failure is a bug in the caller,
// so it panics.
func MustNew(segments []Segment) ID {
	id, err := New(segments)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns the canonical form: segment values concatenated in order.
func (id ID) String() string { return id.raw }

// Depth is the number of segments.
func (id ID) Depth() int { return len(id.segments) }

func (id ID) IsZero() bool { return len(id.segments) == 0 }

// Segments returns a copy of the segment sequence.
func (id ID) Segments() []Segment {
	out := make([]Segment, len(id.segments))
	copy(out, id.segments)
	return out
}

// Last returns the final segment. It panics on the zero ID.
func (id ID) Last() Segment { return id.segments[len(id.segments)-1] }

// Parent drops the last segment. Roots and the zero ID have no parent.
func (id ID) Parent() (ID, bool) {
	if len(id.segments) <= 1 {
		return ID{}, false
	}
	parent := id.segments[:len(id.segments)-1]
	return ID{segments: parent, raw: join(parent)}, true
}

// NextChild appends the smallest segment of the opposite kind: "1" after
// letters, "a" after numbers.
func (id ID) NextChild() ID {
	if id.IsZero() {
		return MustNew([]Segment{L("a")})
	}
	if id.Last().Kind == Letters {
		return id.Append(N("1"))
	}
	return id.Append(L("a"))
}

// NextSibling increments the last segment: "a3" becomes "a4", "a3c" becomes
// "a3d" and "z" becomes "aa".
func (id ID) NextSibling() (ID, error) {
	if id.IsZero() {
		return ID{}, &ValidationError{Err: ErrEmptySegments}
	}
	last := id.Last()
	switch last.Kind {
	case Numbers:
		last.Value = incrementDecimal(last.Value)
	default:
		n, err := DecodeLetters(last.Value)
		if err != nil {
			return ID{}, err
		}
		last.Value = EncodeLetters(n + 1)
	}
	return id.WithLast(last)
}

// Append returns a copy of id extended by s. It panics when s does not fit,
// since derived identifiers come from trusted code.
func (id ID) Append(s Segment) ID {
	segments := make([]Segment, 0, len(id.segments)+1)
	segments = append(segments, id.segments...)
	segments = append(segments, s)
	return MustNew(segments)
}

// WithLast returns a copy of id whose last segment is replaced by s.
func (id ID) WithLast(s Segment) (ID, error) {
	if id.IsZero() {
		return ID{}, &ValidationError{Err: ErrEmptySegments}
	}
	segments := id.Segments()
	segments[len(segments)-1] = s
	return New(segments)
}

// IsAncestorOf reports whether id is a strict segment prefix of other.
func (id ID) IsAncestorOf(other ID) bool {
	if id.IsZero() || len(id.segments) >= len(other.segments) {
		return false
	}
	for i, s := range id.segments {
		if other.segments[i] != s {
			return false
		}
	}
	return true
}

// Equal compares canonical forms. Note that Compare may report two distinct
// identifiers as equal when their number runs differ only in leading zeros.
func (id ID) Equal(other ID) bool { return id.raw == other.raw }

func join(segments []Segment) string {
	var sb strings.Builder
	for _, s := range segments {
		sb.WriteString(s.Value)
	}
	return sb.String()
}

func inClass(k Kind, c byte) bool {
	if k == Letters {
		return c >= 'a' && c <= 'z'
	}
	return c >= '0' && c <= '9'
}

func validValue(k Kind, v string) bool {
	if v == "" {
		return false
	}
	for i := 0; i < len(v); i++ {
		if !inClass(k, v[i]) {
			return false
		}
	}
	return true
}

func expectedErr(k Kind) error {
	if k == Letters {
		return ErrExpectedLetters
	}
	return ErrExpectedNumbers
}

func invalidErr(k Kind) error {
	if k == Letters {
		return ErrInvalidLetters
	}
	return ErrInvalidNumbers
}

// incrementDecimal adds one to a string of digits of any length.
func incrementDecimal(v string) string {
	b := []byte(v)
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] < '9' {
			b[i]++
			return string(b)
		}
		b[i] = '0'
	}
	return "1" + string(b)
}
