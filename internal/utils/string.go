package utils

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSequenceLength is returned when a letter sequence is outside the allowed length range.
	ErrSequenceLength = errors.New("sequence length out of range")
	// ErrSequenceChars is returned when a letter sequence contains anything but ASCII letters.
	ErrSequenceChars = errors.New("sequence contains non-alphabetic characters")
)

// IsLower reports whether b is an ASCII lowercase letter.
func IsLower(b byte) bool {
	return b >= 'a' && b <= 'z'
}

// IsLowerWord checks that s is non-empty and made only of a-z.
func IsLowerWord(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !IsLower(s[i]) {
			return false
		}
	}
	return true
}

// NormalizeSequence trims and lowercases raw user input and checks it is a
// usable letter sequence: ASCII letters only, length within [minLen, maxLen].
func NormalizeSequence(raw string, minLen, maxLen int) (string, error) {
	seq := strings.ToLower(strings.TrimSpace(raw))
	for i := 0; i < len(seq); i++ {
		if !IsLower(seq[i]) {
			return "", fmt.Errorf("%w: %q at position %d", ErrSequenceChars, seq[i], i)
		}
	}
	if len(seq) < minLen || len(seq) > maxLen {
		return "", fmt.Errorf("%w: got %d, want %d to %d", ErrSequenceLength, len(seq), minLen, maxLen)
	}
	return seq, nil
}

// FormatWithCommas formats an integer with comma separators
func FormatWithCommas[T ~int | ~int64 | ~uint64](n T) string {
	str := fmt.Sprintf("%d", n)
	neg := strings.HasPrefix(str, "-")
	if neg {
		str = str[1:]
	}
	if len(str) <= 3 {
		if neg {
			return "-" + str
		}
		return str
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, char := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(char)
	}
	return b.String()
}
