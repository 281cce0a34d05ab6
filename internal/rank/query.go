package rank

import (
	"sort"
	"strings"

	"github.com/dgallion1/docrank/internal/persona"
	"github.com/dgallion1/docrank/internal/tokenize"
)

// Query is a persona profile and job text prepared once per batch: the
// keyword sets and objective token lists every section is scored against.
type Query struct {
	Profile persona.Profile
	JobText string

	keywords        []string   // Focus keywords, expertise words and job tokens
	excerptKeywords []string   // Focus keywords and job tokens
	objectives      [][]string // Tokens of each job objective, duplicates kept
}

// NewQuery precomputes the keyword sets for profile and jobText.
func NewQuery(profile persona.Profile, jobText string) *Query {
	jobTokens := tokenize.Tokenize(jobText)

	var expertiseWords []string
	for _, area := range profile.ExpertiseAreas {
		expertiseWords = append(expertiseWords, strings.Fields(strings.ToLower(area))...)
	}

	objectives := make([][]string, len(profile.JobObjectives))
	for i, o := range profile.JobObjectives {
		objectives[i] = tokenize.Tokenize(o)
	}

	return &Query{
		Profile:         profile,
		JobText:         jobText,
		keywords:        union(profile.FocusKeywords, expertiseWords, jobTokens),
		excerptKeywords: union(lowerAll(profile.FocusKeywords), jobTokens),
		objectives:      objectives,
	}
}

// Text is the synthetic query document: role, job text, expertise areas,
// domain tags, job objectives and focus keywords, space-joined in that order.
func (q *Query) Text() string {
	parts := []string{q.Profile.Role, q.JobText}
	for _, group := range [][]string{
		q.Profile.ExpertiseAreas,
		q.Profile.DomainTags,
		q.Profile.JobObjectives,
		q.Profile.FocusKeywords,
	} {
		if len(group) > 0 {
			parts = append(parts, strings.Join(group, " "))
		}
	}
	return strings.Join(parts, " ")
}

// Keywords returns the sorted keyword set used by the keyword match signal.
func (q *Query) Keywords() []string {
	return q.keywords
}

func union(groups ...[]string) []string {
	set := make(map[string]struct{})
	for _, g := range groups {
		for _, k := range g {
			if k != "" {
				set[k] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}
