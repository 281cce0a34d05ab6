package tokenize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", []string{}},
		{"lowercases", "Revenue Growth", []string{"revenue", "growth"}},
		{"drops stop words", "the analysis of their data", []string{"analysis", "data"}},
		{"drops short terms", "AI is on go map", []string{"map"}},
		{"drops numbers", "2024 results 42", []string{"results"}},
		{"drops mixed runs", "abc123 covid19 plain", []string{"plain"}},
		{"drops non-ascii runs", "café résumé menu", []string{"menu"}},
		{"combining mark ends a run", "cafe\u0301 menu", []string{"cafe", "menu"}},
		{"superscript digit joins run", "area\u00b2 menu", []string{"menu"}},
		{"splits punctuation", "state-of-the-art, cutting-edge!", []string{"state", "art", "cutting", "edge"}},
		{"apostrophes split", "don't stop", []string{"don", "stop"}},
		{"underscore joins run", "snake_case word", []string{"word"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.in))
		})
	}
}

func TestTokenize_Deterministic(t *testing.T) {
	text := "Methodology: we sampled 300 patients across three clinical trials."
	first := Tokenize(text)
	for range 5 {
		assert.Equal(t, first, Tokenize(text))
	}
}

func TestWords_KeepsShortAndStopWords(t *testing.T) {
	assert.Equal(t, []string{"the", "ai", "is", "here"}, Words("The AI is here 99"))
}
