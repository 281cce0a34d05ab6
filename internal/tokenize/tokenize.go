// Package tokenize normalises free text into the term sequence shared by the
// vector space model and the keyword signals. It lower-cases input, splits it
// into word runs, keeps runs made only of ASCII letters, and drops stop-words
// and terms shorter than MinLength.
package tokenize

import (
	"strings"
	"unicode"
)

// MinLength is the shortest term kept.
const MinLength = 3

var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {},
	"on": {}, "at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {},
	"is": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {},
	"have": {}, "has": {}, "had": {}, "do": {}, "does": {}, "did": {},
	"will": {}, "would": {}, "could": {}, "should": {}, "may": {},
	"might": {}, "can": {}, "this": {}, "that": {}, "these": {}, "those": {},
	"i": {}, "you": {}, "he": {}, "she": {}, "it": {}, "we": {}, "they": {},
	"me": {}, "him": {}, "her": {}, "us": {}, "them": {}, "my": {},
	"your": {}, "his": {}, "its": {}, "our": {}, "their": {},
}

// IsStopWord reports whether term is in the fixed stop-word set.
func IsStopWord(term string) bool {
	_, ok := stopWords[term]
	return ok
}

// Tokenize returns the filtered terms of text in order of appearance.
// Numbers, punctuation and words containing digits or non-ASCII letters are
// dropped entirely.
func Tokenize(text string) []string {
	words := Words(text)
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if len(w) < MinLength {
			continue
		}
		if IsStopWord(w) {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}

// Words lower-cases text and returns every word run consisting solely of the
// letters a-z. A run is a maximal sequence of letters, digits, marks and
// underscores, so "abc123" and "café" yield nothing rather than a fragment.
func Words(text string) []string {
	runs := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !isWordRune(r)
	})
	words := runs[:0]
	for _, run := range runs {
		if isASCIILower(run) {
			words = append(words, run)
		}
	}
	return words
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

func isASCIILower(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return s != ""
}
