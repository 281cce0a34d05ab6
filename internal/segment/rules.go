package segment

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Rule reports whether a trimmed line opens a new section.
type Rule struct {
	Name  string
	Match func(line string) bool
}

// space matches every Unicode whitespace rune, including NBSP and the
// separator controls, not just RE2's ASCII \s.
const space = `\s\x{0B}\x{1C}-\x{1F}\x{85}\p{Z}`

// headerPatterns are anchored at the start of the line and matched
// case-insensitively, so the "capitalised" pattern accepts any line opening
// with three letters or spaces.
var headerPatterns = []struct {
	name string
	re   *regexp.Regexp
}{
	{"numbered", regexp.MustCompile(`(?i)^(\d+\.?[` + space + `]+[A-Z][^.!?]*(?:[.!?]|$))`)},
	{"capitalised", regexp.MustCompile(`(?i)^([A-Z][A-Z` + space + `]{2,}[^.!?]*(?:[.!?]|$))`)},
	{"academic", regexp.MustCompile(`(?i)^(Abstract|Introduction|Methodology|Results|Discussion|Conclusion|References)`)},
	{"business", regexp.MustCompile(`(?i)^(Executive Summary|Background|Analysis|Findings|Recommendations)`)},
	{"textbook", regexp.MustCompile(`(?i)^(Chapter \d+|Section \d+|Part \d+)`)},
}

// DefaultRules is the header classification chain: every regex pattern in
// order, then the structural heuristic.
var DefaultRules = buildDefaultRules()

func buildDefaultRules() []Rule {
	rules := make([]Rule, 0, len(headerPatterns)+1)
	for _, p := range headerPatterns {
		re := p.re
		rules = append(rules, Rule{Name: p.name, Match: re.MatchString})
	}
	return append(rules, Rule{Name: "structural", Match: looksLikeHeading})
}

// looksLikeHeading accepts short lines that start with an uppercase letter,
// do not end with a period and have fewer than 15 words.
func looksLikeHeading(line string) bool {
	if utf8.RuneCountInString(line) >= 100 {
		return false
	}
	first, _ := utf8.DecodeRuneInString(line)
	if !unicode.IsUpper(first) {
		return false
	}
	if strings.HasSuffix(line, ".") {
		return false
	}
	return len(strings.Fields(line)) < 15
}

// classify returns the name of the first rule matching line, or "" when the
// line is body text. Lines shorter than three characters are never headers.
func classify(rules []Rule, line string) string {
	if utf8.RuneCountInString(line) < 3 {
		return ""
	}
	for _, r := range rules {
		if r.Match(line) {
			return r.Name
		}
	}
	return ""
}
