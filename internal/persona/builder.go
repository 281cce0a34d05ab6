package persona

import (
	"regexp"
	"sort"
	"strings"

	"github.com/dgallion1/docrank/internal/tokenize"
)

const maxListItems = 5

type vocab struct {
	name  string
	words []string
}

var domainKeywords = []vocab{
	{"academic", []string{"research", "study", "literature", "methodology", "analysis", "academic", "scholar", "phd", "thesis", "publication"}},
	{"business", []string{"revenue", "profit", "market", "strategy", "investment", "analysis", "financial", "business", "commercial", "corporate"}},
	{"technical", []string{"algorithm", "implementation", "system", "performance", "optimization", "technical", "engineering", "development"}},
	{"educational", []string{"learning", "student", "exam", "study", "concept", "understanding", "knowledge", "curriculum", "course"}},
	{"medical", []string{"clinical", "patient", "treatment", "diagnosis", "medical", "health", "therapy", "disease"}},
	{"legal", []string{"law", "legal", "regulation", "compliance", "policy", "contract", "litigation"}},
	{"scientific", []string{"experiment", "hypothesis", "data", "observation", "scientific", "laboratory", "research"}},
}

var rolePatterns = []vocab{
	{"researcher", []string{"researcher", "scientist", "phd", "academic", "scholar"}},
	{"student", []string{"student", "undergraduate", "graduate", "learner"}},
	{"analyst", []string{"analyst", "analyzes", "analysis"}},
	{"manager", []string{"manager", "director", "executive", "lead"}},
	{"developer", []string{"developer", "engineer", "programmer", "architect"}},
	{"consultant", []string{"consultant", "advisor", "specialist"}},
	{"journalist", []string{"journalist", "reporter", "writer", "editor"}},
}

var levelIndicators = []vocab{
	{LevelBeginner, []string{"beginner", "new", "learning", "basic", "introductory", "freshman"}},
	{LevelIntermediate, []string{"intermediate", "moderate", "some experience", "undergraduate"}},
	{LevelAdvanced, []string{"advanced", "experienced", "senior", "graduate"}},
	{LevelExpert, []string{"expert", "phd", "professor", "specialist", "authority", "master"}},
}

var roleFillerWords = map[string]bool{
	"this": true, "that": true, "with": true, "from": true, "they": true, "have": true, "will": true,
}

var focusStopWords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "from": true, "this": true, "that": true,
	"have": true, "will": true, "can": true, "are": true, "was": true, "were": true,
}

var (
	subjectRe  = regexp.MustCompile(`\b(?:in|of|for)\s+([a-z\s]+?)(?:\s+(?:and|or|,|\.|$))`)
	compoundRe = regexp.MustCompile(`\b([a-z]+\s+[a-z]+)\b`)
	actionRes  = []*regexp.Regexp{
		regexp.MustCompile(`(analyze|review|summarize|identify|prepare|create|develop|assess|evaluate)`),
		regexp.MustCompile(`(find|extract|determine|compare|study|research|investigate)`),
		regexp.MustCompile(`(focus on|looking for|need to|should|must|want to)`),
	}
	objectivePhraseRe = regexp.MustCompile(`(?:analyze|review|summarize|identify|prepare|create|develop|assess|evaluate|find|extract|determine|compare|study|research|investigate)\s+([^.!?]+)`)
)

// Build derives a Profile from a persona description and a job description.
// The result is deterministic for identical input.
func Build(personaText, jobText string) Profile {
	combined := strings.ToLower(personaText + " " + jobText)
	return Profile{
		Role:           extractRole(personaText),
		ExpertiseAreas: extractExpertise(combined),
		FocusKeywords:  extractFocusKeywords(combined),
		DomainTags:     extractDomains(combined),
		JobObjectives:  extractObjectives(jobText),
		TechnicalLevel: extractLevel(personaText),
	}
}

func extractRole(personaText string) string {
	text := strings.ToLower(personaText)
	for _, r := range rolePatterns {
		for _, p := range r.words {
			if strings.Contains(text, p) {
				return r.name
			}
		}
	}
	for _, w := range tokenize.Words(text) {
		if len(w) > 3 && !roleFillerWords[w] {
			return w
		}
	}
	return "professional"
}

func extractExpertise(text string) []string {
	var areas []string
	for _, m := range subjectRe.FindAllStringSubmatch(text, -1) {
		subject := strings.TrimSpace(m[1])
		if len(subject) > 2 && len(strings.Fields(subject)) <= 4 {
			areas = append(areas, subject)
		}
	}
	for _, d := range domainKeywords {
		if containsAny(text, d.words) {
			areas = append(areas, d.name)
		}
	}
	return firstUnique(areas, maxListItems)
}

func extractFocusKeywords(text string) []string {
	set := make(map[string]bool)
	for _, w := range tokenize.Words(text) {
		if len(w) >= 3 && !focusStopWords[w] {
			set[w] = true
		}
	}
	for _, m := range compoundRe.FindAllStringSubmatch(text, -1) {
		if len(strings.Fields(m[1])) == 2 {
			set[m[1]] = true
		}
	}
	keywords := make([]string, 0, len(set))
	for k := range set {
		keywords = append(keywords, k)
	}
	sort.Strings(keywords)
	return keywords
}

// extractDomains keeps every domain with at least two keyword hits.
func extractDomains(text string) []string {
	var domains []string
	for _, d := range domainKeywords {
		hits := 0
		for _, w := range d.words {
			if strings.Contains(text, w) {
				hits++
			}
		}
		if hits >= 2 {
			domains = append(domains, d.name)
		}
	}
	return domains
}

func extractObjectives(jobText string) []string {
	text := strings.ToLower(jobText)
	var objectives []string
	for _, re := range actionRes {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			objectives = append(objectives, m[1])
		}
	}
	for _, m := range objectivePhraseRe.FindAllStringSubmatch(text, -1) {
		objectives = append(objectives, strings.TrimSpace(m[1]))
	}
	return firstUnique(objectives, maxListItems)
}

func extractLevel(personaText string) string {
	text := strings.ToLower(personaText)
	for _, l := range levelIndicators {
		if containsAny(text, l.words) {
			return l.name
		}
	}
	return LevelIntermediate
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

// firstUnique drops empty and repeated items, keeping first-seen order, and
// caps the result at n.
func firstUnique(items []string, n int) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, n)
	for _, it := range items {
		if it == "" || seen[it] {
			continue
		}
		seen[it] = true
		out = append(out, it)
		if len(out) == n {
			break
		}
	}
	return out
}
