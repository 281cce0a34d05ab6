// Package rank scores sections against a persona profile and orders them.
package rank

import (
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/dgallion1/docrank/internal/document"
	"github.com/dgallion1/docrank/internal/persona"
	"github.com/dgallion1/docrank/internal/vectorspace"
)

// ScoredSection is a section with its fused score, dense rank and excerpt.
type ScoredSection struct {
	Section   document.Section
	Score     float64
	Rank      int
	Breakdown map[string]float64
	Excerpt   string
}

// Ranker fuses a fixed set of signals into one relevance score per section.
type Ranker struct {
	Signals []Signal
	// Workers bounds concurrent per-section scoring. Values below 2 score
	// sequentially.
	Workers int
}

// New returns a Ranker using DefaultSignals.
func New(workers int) *Ranker {
	return &Ranker{Signals: DefaultSignals, Workers: workers}
}

// Rank is shorthand for a sequential default Ranker.
func Rank(sections []document.Section, profile persona.Profile, jobText string) []ScoredSection {
	return New(1).Rank(sections, profile, jobText)
}

// Rank scores every section, sorts by score descending and assigns ranks
// 1..N. Equal scores keep input order. An empty input yields an empty,
// non-nil slice.
func (r *Ranker) Rank(sections []document.Section, profile persona.Profile, jobText string) []ScoredSection {
	out := make([]ScoredSection, len(sections))
	if len(sections) == 0 {
		return out
	}

	model := vectorspace.Build(sections)
	q := NewQuery(profile, jobText)
	qv := model.Space.TermFrequency(q.Text())

	score := func(i int) {
		s := sections[i]
		in := &Input{
			Section:     s,
			Text:        s.Text(),
			Vector:      model.Vectors[i],
			QueryVector: qv,
			Query:       q,
		}
		fused, breakdown := r.fuse(in)
		out[i] = ScoredSection{
			Section:   s,
			Score:     fused,
			Breakdown: breakdown,
			Excerpt:   Excerpt(s.Content, q.excerptKeywords),
		}
	}

	if r.Workers < 2 {
		for i := range sections {
			score(i)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(r.Workers)
		for i := range sections {
			g.Go(func() error {
				score(i)
				return nil
			})
		}
		_ = g.Wait()
	}

	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Score > out[b].Score
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// fuse computes the weighted sum of all signals, clamped to [0,1].
func (r *Ranker) fuse(in *Input) (float64, map[string]float64) {
	breakdown := make(map[string]float64, len(r.Signals))
	total := 0.0
	for _, sig := range r.Signals {
		v := sig.Score(in)
		breakdown[sig.Name] = v
		total += sig.Weight * v
	}
	return clamp(total), breakdown
}
