package identifier

import "strings"

// Compare orders identifiers segment by segment and returns -1, 0 or 1.
//
// A missing segment sorts before a present one, so "a" < "a1". Letters sort
// before numbers at the same position. Number runs compare as unsigned
// integers ("9" < "10"). Letter runs compare byte-wise, so "aa" < "z" even
// though EncodeLetters generates "z" before "aa".
func Compare(a, b ID) int {
	n := len(a.segments)
	if len(b.segments) > n {
		n = len(b.segments)
	}
	for i := 0; i < n; i++ {
		if i >= len(a.segments) {
			return -1
		}
		if i >= len(b.segments) {
			return 1
		}
		if c := compareSegment(a.segments[i], b.segments[i]); c != 0 {
			return c
		}
	}
	return 0
}

// Less reports whether a sorts before b.
func Less(a, b ID) bool { return Compare(a, b) < 0 }

func compareSegment(a, b Segment) int {
	if a.Kind != b.Kind {
		if a.Kind == Letters {
			return -1
		}
		return 1
	}
	if a.Kind == Numbers {
		return compareDecimal(a.Value, b.Value)
	}
	return strings.Compare(a.Value, b.Value)
}

// compareDecimal compares digit strings numerically without overflow.
func compareDecimal(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}
