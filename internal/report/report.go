// Package report assembles ranked sections into the output document.
package report

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dgallion1/docrank/internal/document"
	"github.com/dgallion1/docrank/internal/rank"
)

// DefaultTopN is how many sections a report keeps when no limit is given.
const DefaultTopN = 5

// TimestampFormat is the layout of Metadata.ProcessingTimestamp.
const TimestampFormat = "2006-01-02T15:04:05.000000"

type Report struct {
	Metadata           Metadata             `json:"metadata"`
	ExtractedSections  []ExtractedSection   `json:"extracted_sections"`
	SubsectionAnalysis []SubsectionAnalysis `json:"subsection_analysis"`
}

type Metadata struct {
	InputDocuments      []string `json:"input_documents"`
	Persona             string   `json:"persona"`
	JobToBeDone         string   `json:"job_to_be_done"`
	ProcessingTimestamp string   `json:"processing_timestamp"`
}

type ExtractedSection struct {
	Document       string `json:"document"`
	SectionTitle   string `json:"section_title"`
	ImportanceRank int    `json:"importance_rank"`
	PageNumber     int    `json:"page_number"`
}

type SubsectionAnalysis struct {
	Document    string `json:"document"`
	RefinedText string `json:"refined_text"`
	PageNumber  int    `json:"page_number"`
}

// Build orders ranked by rank and keeps the first topN in both section
// lists. topN <= 0 means DefaultTopN. ranked is not modified.
func Build(docs []*document.Document, persona, job string, ranked []rank.ScoredSection, topN int, now time.Time) *Report {
	if topN <= 0 {
		topN = DefaultTopN
	}

	names := make([]string, 0, len(docs))
	for _, d := range docs {
		names = append(names, d.ID)
	}

	sorted := make([]rank.ScoredSection, len(ranked))
	copy(sorted, ranked)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rank < sorted[j].Rank
	})
	if len(sorted) > topN {
		sorted = sorted[:topN]
	}

	r := &Report{
		Metadata: Metadata{
			InputDocuments:      names,
			Persona:             persona,
			JobToBeDone:         job,
			ProcessingTimestamp: now.Format(TimestampFormat),
		},
		ExtractedSections:  make([]ExtractedSection, 0, len(sorted)),
		SubsectionAnalysis: make([]SubsectionAnalysis, 0, len(sorted)),
	}
	for _, s := range sorted {
		r.ExtractedSections = append(r.ExtractedSections, ExtractedSection{
			Document:       s.Section.DocumentID,
			SectionTitle:   s.Section.Title,
			ImportanceRank: s.Rank,
			PageNumber:     s.Section.PageNumber,
		})
		r.SubsectionAnalysis = append(r.SubsectionAnalysis, SubsectionAnalysis{
			Document:    s.Section.DocumentID,
			RefinedText: s.Excerpt,
			PageNumber:  s.Section.PageNumber,
		})
	}
	return r
}

// Validate checks the report has every required field populated.
func (r *Report) Validate() error {
	if r == nil {
		return errors.New("report is nil")
	}
	if r.Metadata.InputDocuments == nil {
		return errors.New("metadata.input_documents is missing")
	}
	if r.Metadata.ProcessingTimestamp == "" {
		return errors.New("metadata.processing_timestamp is missing")
	}
	if r.ExtractedSections == nil {
		return errors.New("extracted_sections is missing")
	}
	if r.SubsectionAnalysis == nil {
		return errors.New("subsection_analysis is missing")
	}
	if len(r.ExtractedSections) != len(r.SubsectionAnalysis) {
		return fmt.Errorf("extracted_sections has %d entries, subsection_analysis has %d",
			len(r.ExtractedSections), len(r.SubsectionAnalysis))
	}
	for i, s := range r.ExtractedSections {
		if s.Document == "" {
			return fmt.Errorf("extracted_sections[%d]: document is empty", i)
		}
		if s.ImportanceRank < 1 {
			return fmt.Errorf("extracted_sections[%d]: importance_rank %d < 1", i, s.ImportanceRank)
		}
		if i > 0 && s.ImportanceRank <= r.ExtractedSections[i-1].ImportanceRank {
			return fmt.Errorf("extracted_sections[%d]: importance_rank not increasing", i)
		}
	}
	return nil
}
