package document

import (
	"strings"
	"unicode/utf8"
)

func lower(s string) string {
	return strings.ToLower(s)
}

// RuneLen counts characters rather than bytes. Length thresholds on titles,
// content and excerpts are all expressed in characters.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}

// Truncate returns the first n characters of s.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
