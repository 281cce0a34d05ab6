package rank

import (
	"regexp"
	"sort"
	"strings"

	"github.com/dgallion1/docrank/internal/document"
)

const (
	maxExcerptSentences = 5
	minSentenceLen      = 20
	maxExcerptLen       = 1000
	minExcerptLen       = 100
	fallbackExcerptLen  = 500
	ellipsis            = "..."
)

var sentenceSplit = regexp.MustCompile(`[.!?]+`)

type scoredSentence struct {
	text  string
	score int
}

// Excerpt condenses content to its most keyword-dense sentences. Keywords
// must already be lowercase. Short results fall back to the head of the
// raw content.
func Excerpt(content string, keywords []string) string {
	var sentences []scoredSentence
	for _, s := range sentenceSplit.Split(content, -1) {
		s = strings.TrimSpace(s)
		if document.RuneLen(s) <= minSentenceLen {
			continue
		}
		sentences = append(sentences, scoredSentence{
			text:  s,
			score: countContained(strings.ToLower(s), keywords),
		})
	}

	sort.SliceStable(sentences, func(i, j int) bool {
		return sentences[i].score > sentences[j].score
	})
	if len(sentences) > maxExcerptSentences {
		sentences = sentences[:maxExcerptSentences]
	}

	parts := make([]string, len(sentences))
	for i, s := range sentences {
		parts[i] = s.text
	}
	excerpt := strings.Join(parts, ". ")

	switch n := document.RuneLen(excerpt); {
	case n > maxExcerptLen:
		return document.Truncate(excerpt, maxExcerptLen) + ellipsis
	case n < minExcerptLen:
		if document.RuneLen(content) > fallbackExcerptLen {
			return document.Truncate(content, fallbackExcerptLen) + ellipsis
		}
		return content
	}
	return excerpt
}
