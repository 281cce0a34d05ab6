package rank

import (
	"strings"

	"github.com/dgallion1/docrank/internal/document"
	"github.com/dgallion1/docrank/internal/persona"
	"github.com/dgallion1/docrank/internal/vectorspace"
)

// Signal names as they appear in score breakdowns.
const (
	SignalCosine     = "cosine_similarity"
	SignalKeyword    = "keyword_match"
	SignalDomain     = "domain_relevance"
	SignalImportance = "section_importance"
	SignalTechnical  = "technical_alignment"
	SignalJob        = "job_alignment"
)

// neutralScore is returned when the profile gives a signal nothing to judge.
const neutralScore = 0.5

// Input is everything a signal may look at for one section.
type Input struct {
	Section     document.Section
	Text        string // Lowercase title + " " + content
	Vector      vectorspace.Vector
	QueryVector vectorspace.Vector
	Query       *Query
}

// Signal is one weighted relevance heuristic.
type Signal struct {
	Name   string
	Weight float64
	Score  func(in *Input) float64
}

// DefaultSignals is the fixed fusion policy. Weights sum to 1.
var DefaultSignals = []Signal{
	{Name: SignalCosine, Weight: 0.25, Score: cosineSimilarity},
	{Name: SignalKeyword, Weight: 0.25, Score: keywordMatch},
	{Name: SignalDomain, Weight: 0.20, Score: domainRelevance},
	{Name: SignalImportance, Weight: 0.10, Score: sectionImportance},
	{Name: SignalTechnical, Weight: 0.10, Score: technicalAlignment},
	{Name: SignalJob, Weight: 0.10, Score: jobAlignment},
}

var domainIndicators = map[string][]string{
	"academic":    {"research", "study", "analysis", "methodology", "literature", "findings", "conclusion"},
	"business":    {"revenue", "profit", "market", "strategy", "financial", "investment", "business"},
	"technical":   {"algorithm", "implementation", "system", "performance", "technical", "method"},
	"educational": {"learning", "concept", "understanding", "knowledge", "study", "example"},
	"medical":     {"clinical", "patient", "treatment", "medical", "health", "therapy"},
	"legal":       {"law", "legal", "regulation", "policy", "compliance"},
	"scientific":  {"experiment", "hypothesis", "data", "observation", "scientific"},
}

var technicalIndicators = map[string][]string{
	persona.LevelBeginner:     {"basic", "introduction", "overview", "fundamentals", "simple"},
	persona.LevelIntermediate: {"analysis", "application", "implementation", "practical"},
	persona.LevelAdvanced:     {"complex", "sophisticated", "advanced", "detailed", "comprehensive"},
	persona.LevelExpert:       {"novel", "innovative", "cutting-edge", "state-of-the-art", "breakthrough"},
}

var importantSections = []string{
	"abstract", "summary", "introduction", "conclusion", "results", "findings",
	"methodology", "analysis", "discussion", "executive summary", "overview",
}

// cosineSimilarity is not clamped. Negative IDF weights can push it below
// zero; the fused score is clamped instead.
func cosineSimilarity(in *Input) float64 {
	return vectorspace.Cosine(in.Vector, in.QueryVector)
}

func keywordMatch(in *Input) float64 {
	keywords := in.Query.keywords
	return float64(countContained(in.Text, keywords)) / float64(max(len(keywords), 1))
}

// domainRelevance averages indicator coverage over every domain tag. Tags
// without an indicator list still count toward the denominator.
func domainRelevance(in *Input) float64 {
	tags := in.Query.Profile.DomainTags
	if len(tags) == 0 {
		return neutralScore
	}
	score := 0.0
	for _, tag := range tags {
		if indicators, ok := domainIndicators[tag]; ok {
			score += float64(countContained(in.Text, indicators)) / float64(len(indicators))
		}
	}
	return min(score/float64(len(tags)), 1.0)
}

func sectionImportance(in *Input) float64 {
	title := strings.ToLower(in.Section.Title)
	score := 0.5
	for _, s := range importantSections {
		if strings.Contains(title, s) {
			score += 0.3
			break
		}
	}
	if in.Section.PageNumber <= 3 {
		score += 0.1
	}
	n := document.RuneLen(in.Section.Content)
	if n < 100 {
		score -= 0.2
	}
	if n > 1000 {
		score += 0.1
	}
	return clamp(score)
}

func technicalAlignment(in *Input) float64 {
	indicators, ok := technicalIndicators[in.Query.Profile.TechnicalLevel]
	if !ok {
		return neutralScore
	}
	return min(float64(countContained(in.Text, indicators))/float64(len(indicators)), 1.0)
}

// jobAlignment averages, over all objectives, the fraction of each
// objective's tokens found in the section. Objectives with no tokens add
// nothing but still count toward the denominator.
func jobAlignment(in *Input) float64 {
	objectives := in.Query.objectives
	if len(objectives) == 0 {
		return neutralScore
	}
	total := 0.0
	for _, tokens := range objectives {
		if len(tokens) == 0 {
			continue
		}
		total += float64(countContained(in.Text, tokens)) / float64(len(tokens))
	}
	return min(total/float64(len(objectives)), 1.0)
}

// countContained counts the needles that occur as substrings of text.
func countContained(text string, needles []string) int {
	n := 0
	for _, k := range needles {
		if strings.Contains(text, k) {
			n++
		}
	}
	return n
}

func clamp(v float64) float64 {
	return max(0, min(v, 1))
}
