package identifier

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompare_Examples(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"a9", "a10", -1},
		{"a", "a1", -1},
		{"a1", "a", 1},
		{"a1", "a1", 0},
		{"a1b", "a2", -1},
		{"aa", "z", -1},
		{"a", "b", -1},
		{"a01", "a1", 0},
		{"a100", "a99", 1},
		{"a1z", "a1aa", 1},
	}

	for _, tc := range cases {
		t.Run(tc.a+"_"+tc.b, func(t *testing.T) {
			assert.Equal(t, tc.want, Compare(MustParse(tc.a), MustParse(tc.b)))
			assert.Equal(t, -tc.want, Compare(MustParse(tc.b), MustParse(tc.a)))
		})
	}
}

func TestCompare_LettersBeforeNumbers(t *testing.T) {
	// Valid identifiers never mix kinds at one position, so check the rule on
	// segments directly.
	assert.Equal(t, -1, compareSegment(L("b"), N("1")))
	assert.Equal(t, 1, compareSegment(N("1"), L("b")))
}

func TestCompare_TotalOrder(t *testing.T) {
	raws := []string{"a", "a1", "a1a", "a1b", "a2", "a10", "aa", "b", "b1", "b1a1", "z", "z9"}
	ids := make([]ID, len(raws))
	for i, r := range raws {
		ids[i] = MustParse(r)
	}

	for _, a := range ids {
		assert.Equal(t, 0, Compare(a, a))
		for _, b := range ids {
			assert.Equal(t, Compare(a, b), -Compare(b, a), "%s vs %s", a, b)
			for _, c := range ids {
				if Compare(a, b) < 0 && Compare(b, c) < 0 {
					assert.Equal(t, -1, Compare(a, c), "%s < %s < %s", a, b, c)
				}
			}
		}
	}

	shuffled := []ID{ids[7], ids[3], ids[11], ids[0], ids[5], ids[9], ids[1], ids[10], ids[2], ids[6], ids[4], ids[8]}
	sort.Slice(shuffled, func(i, j int) bool { return Less(shuffled[i], shuffled[j]) })
	got := make([]string, len(shuffled))
	for i, id := range shuffled {
		got[i] = id.String()
	}
	assert.Equal(t, []string{"a", "a1", "a1a", "a1b", "a2", "a10", "aa", "b", "b1", "b1a1", "z", "z9"}, got)
}

func TestCompare_LongNumbers(t *testing.T) {
	assert.Equal(t, -1, Compare(MustParse("a99999999999999999999"), MustParse("a100000000000000000000")))
}
