package identifier

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Valid(t *testing.T) {
	cases := []struct {
		raw      string
		segments []Segment
	}{
		{"a", []Segment{L("a")}},
		{"a1", []Segment{L("a"), N("1")}},
		{"a1b", []Segment{L("a"), N("1"), L("b")}},
		{"ab12cd345", []Segment{L("ab"), N("12"), L("cd"), N("345")}},
		{"z007", []Segment{L("z"), N("007")}},
	}

	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			id, err := Parse(tc.raw)
			require.NoError(t, err)
			assert.Equal(t, tc.segments, id.Segments())
			assert.Equal(t, len(tc.segments), id.Depth())
			assert.Equal(t, tc.raw, id.String())
		})
	}
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		raw    string
		want   error
		offset int
	}{
		{"", ErrEmptyInput, 0},
		{"1a", ErrExpectedLetters, 0},
		{"A", ErrExpectedLetters, 0},
		{"a-1", ErrExpectedNumbers, 1},
		{"aB", ErrExpectedNumbers, 1},
		{"a1.md", ErrExpectedLetters, 2},
		{"a1 b", ErrExpectedLetters, 2},
	}

	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			_, err := Parse(tc.raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tc.offset, perr.Offset)
			assert.False(t, IsValid(tc.raw))
		})
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate([]Segment{L("a"), N("1"), L("b")}))

	err := Validate(nil)
	assert.ErrorIs(t, err, ErrEmptySegments)

	err = Validate([]Segment{N("1")})
	assert.ErrorIs(t, err, ErrInvalidLetters)

	err = Validate([]Segment{L("a"), L("b")})
	assert.ErrorIs(t, err, ErrInvalidNumbers)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, 1, verr.Index)

	assert.ErrorIs(t, Validate([]Segment{L("a"), N("1x")}), ErrInvalidNumbers)
	assert.ErrorIs(t, Validate([]Segment{L("")}), ErrInvalidLetters)
	assert.ErrorIs(t, Validate([]Segment{L("Ab")}), ErrInvalidLetters)
}

func TestNew_CopiesInput(t *testing.T) {
	segments := []Segment{L("a"), N("1")}
	id, err := New(segments)
	require.NoError(t, err)

	segments[1] = N("9")
	assert.Equal(t, "a1", id.String())

	out := id.Segments()
	out[0] = L("z")
	assert.Equal(t, "a1", id.String())
}

func TestMustNew_PanicsOnInvalid(t *testing.T) {
	assert.Panics(t, func() { MustNew([]Segment{N("1")}) })
}

func TestRoundTrip(t *testing.T) {
	for _, raw := range []string{"a", "a1", "a1b", "abc123def4", "b10a2"} {
		id := MustParse(raw)
		again, err := Parse(id.String())
		require.NoError(t, err)
		assert.Equal(t, id, again)
	}
}

func TestParent(t *testing.T) {
	_, ok := MustParse("a").Parent()
	assert.False(t, ok)

	_, ok = ID{}.Parent()
	assert.False(t, ok)

	p, ok := MustParse("a1b").Parent()
	require.True(t, ok)
	assert.Equal(t, "a1", p.String())
	assert.Equal(t, -1, Compare(p, MustParse("a1b")))
}

func TestNextChild(t *testing.T) {
	for _, tc := range []struct{ in, want string }{
		{"a", "a1"},
		{"a1", "a1a"},
		{"b12c", "b12c1"},
	} {
		id := MustParse(tc.in)
		child := id.NextChild()
		assert.Equal(t, tc.want, child.String())
		assert.Equal(t, -1, Compare(id, child))

		parent, ok := child.Parent()
		require.True(t, ok)
		assert.True(t, parent.Equal(id))
	}

	assert.Equal(t, "a", ID{}.NextChild().String())
}

func TestNextSibling(t *testing.T) {
	for _, tc := range []struct{ in, want string }{
		{"a", "b"},
		{"z", "aa"},
		{"a9", "a10"},
		{"a09", "a10"},
		{"a1c", "a1d"},
	} {
		next, err := MustParse(tc.in).NextSibling()
		require.NoError(t, err)
		assert.Equal(t, tc.want, next.String())
	}

	_, err := ID{}.NextSibling()
	assert.ErrorIs(t, err, ErrEmptySegments)
}

func TestIsAncestorOf(t *testing.T) {
	a1 := MustParse("a1")
	assert.True(t, a1.IsAncestorOf(MustParse("a1b")))
	assert.True(t, a1.IsAncestorOf(MustParse("a1b2")))
	assert.False(t, a1.IsAncestorOf(MustParse("a10")))
	assert.False(t, a1.IsAncestorOf(a1))
	assert.False(t, ID{}.IsAncestorOf(a1))
}

func TestWithLast(t *testing.T) {
	id, err := MustParse("c1").WithLast(N("4"))
	require.NoError(t, err)
	assert.Equal(t, "c4", id.String())

	_, err = MustParse("c1").WithLast(L("b"))
	assert.ErrorIs(t, err, ErrInvalidNumbers)
}
