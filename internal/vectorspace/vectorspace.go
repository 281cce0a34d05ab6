// Package vectorspace builds the shared TF-IDF model over every section in a
// batch and projects persona queries into the same term space.
package vectorspace

import (
	"math"
	"sort"

	"github.com/dgallion1/docrank/internal/document"
	"github.com/dgallion1/docrank/internal/tokenize"
)

// Vector is a dense term-weight vector aligned to Space.Terms.
type Vector []float64

// Space is the batch vocabulary. It is read-only after Build returns and safe
// to share between goroutines.
type Space struct {
	Terms     []string       // Sorted, unique
	TermIndex map[string]int // Term -> position in Terms
	IDF       []float64      // Aligned to Terms
}

// Model is a Space plus one TF-IDF vector per input section, in input order.
type Model struct {
	Space   *Space
	Vectors []Vector
}

// Build tokenizes the content of every section, derives the sorted
// vocabulary and weights each section by TF × IDF where
// IDF = ln(N / (df + 1)). Terms present in every section get a negative
// weight; that is intended.
func Build(sections []document.Section) *Model {
	tokens := make([][]string, len(sections))
	counts := make([]map[string]int, len(sections))
	df := make(map[string]int)
	for i, s := range sections {
		tokens[i] = tokenize.Tokenize(s.Content)
		c := make(map[string]int, len(tokens[i]))
		for _, t := range tokens[i] {
			c[t]++
		}
		counts[i] = c
		for t := range c {
			df[t]++
		}
	}

	terms := make([]string, 0, len(df))
	for t := range df {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	space := &Space{
		Terms:     terms,
		TermIndex: make(map[string]int, len(terms)),
		IDF:       make([]float64, len(terms)),
	}
	n := float64(len(sections))
	for i, t := range terms {
		space.TermIndex[t] = i
		space.IDF[i] = math.Log(n / float64(df[t]+1))
	}

	vectors := make([]Vector, len(sections))
	for i := range sections {
		v := make(Vector, len(terms))
		total := len(tokens[i])
		if total > 0 {
			for t, c := range counts[i] {
				j := space.TermIndex[t]
				v[j] = float64(c) / float64(total) * space.IDF[j]
			}
		}
		vectors[i] = v
	}

	return &Model{Space: space, Vectors: vectors}
}

// TermFrequency tokenizes text and returns plain term frequencies over the
// space's vocabulary. Frequencies are relative to the full token count, so
// out-of-vocabulary tokens still dilute the in-vocabulary weights.
func (s *Space) TermFrequency(text string) Vector {
	v := make(Vector, len(s.Terms))
	tokens := tokenize.Tokenize(text)
	if len(tokens) == 0 {
		return v
	}
	counts := make(map[int]int)
	for _, t := range tokens {
		if j, ok := s.TermIndex[t]; ok {
			counts[j]++
		}
	}
	for j, c := range counts {
		v[j] = float64(c) / float64(len(tokens))
	}
	return v
}

// Norm is the Euclidean magnitude of v.
func (v Vector) Norm() float64 {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// IsZero reports whether every component of v is zero.
func (v Vector) IsZero() bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}

// Cosine returns the cosine similarity of a and b, or 0 when either has zero
// magnitude or the lengths differ.
func Cosine(a, b Vector) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	normA := a.Norm()
	normB := b.Norm()
	if normA == 0 || normB == 0 {
		return 0
	}
	dot := 0.0
	for i := range a {
		dot += a[i] * b[i]
	}
	return dot / (normA * normB)
}
