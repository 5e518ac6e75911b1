package identifier

import "fmt"

// maxLetters bounds DecodeLetters so the result fits an int64.
const maxLetters = 13

// EncodeLetters maps a 0-based index to its bijective base-26 letter run,
// spreadsheet column style: 0 is "a", 25 is "z", 26 is "aa", 27 is "ab".
func EncodeLetters(index int) string {
	if index < 0 {
		panic(fmt.Sprintf("identifier: negative letter index %d", index))
	}
	var buf [maxLetters + 1]byte
	pos := len(buf)
	n := index + 1
	for n > 0 {
		n--
		pos--
		buf[pos] = byte('a' + n%26)
		n /= 26
	}
	return string(buf[pos:])
}

// DecodeLetters is the inverse of EncodeLetters.
func DecodeLetters(s string) (int, error) {
	if !validValue(Letters, s) {
		return 0, fmt.Errorf("decode %q: %w", s, ErrInvalidLetters)
	}
	if len(s) > maxLetters {
		return 0, fmt.Errorf("decode %q: letter run longer than %d", s, maxLetters)
	}
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*26 + int(s[i]-'a') + 1
	}
	return n - 1, nil
}
