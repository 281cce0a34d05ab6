package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dgallion1/docrank/internal/document"
	"github.com/dgallion1/docrank/internal/parser"
	"github.com/dgallion1/docrank/internal/persona"
	"github.com/dgallion1/docrank/internal/rank"
	"github.com/dgallion1/docrank/internal/report"
	"github.com/dgallion1/docrank/internal/segment"
)

// Input is one uploaded document.
type Input struct {
	Filename string
	Data     []byte
}

// Options tunes a single analysis run. The zero value is usable.
type Options struct {
	MaxConcurrentParse int
	RankWorkers        int
	TopN               int
	Parser             parser.Options
	Log                *slog.Logger

	// OnStatus is called as the run moves between stages.
	OnStatus func(status JobStatus, phase string)
	// OnDocument is called once per input after parsing, with a nil error
	// on success. Calls may come from several goroutines at once.
	OnDocument func(filename string, sections int, err error)

	now func() time.Time
}

// Result is the outcome of one analysis run.
type Result struct {
	Report    *report.Report
	Profile   persona.Profile
	Ranked    []rank.ScoredSection
	Documents []*document.Document // Successfully parsed, in input order
	Sections  int
	Errors    []string // One entry per document that was skipped
	Timings   Timings
}

// Analyze parses every input, segments the parsed documents, ranks the
// pooled sections against the persona and job, and assembles the report.
// A document that fails to parse is recorded in Result.Errors and skipped.
// The only error returned is ctx's.
func Analyze(ctx context.Context, inputs []Input, personaText, jobText string, opts Options) (*Result, error) {
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	now := opts.now
	if now == nil {
		now = time.Now
	}
	status := func(s JobStatus, phase string) {
		if opts.OnStatus != nil {
			opts.OnStatus(s, phase)
		}
	}

	start := time.Now()
	res := &Result{}

	// Phase 1: Parse, bounded.
	status(StatusParsing, "parsing")
	docs := make([]*document.Document, len(inputs))
	errs := make([]error, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.MaxConcurrentParse, 1))
	for i, in := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			doc, err := parser.ParseFile(bytes.NewReader(in.Data), in.Filename, opts.Parser)
			if err != nil {
				errs[i] = err
				return nil
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res.Timings.Parse = time.Since(start)

	// Phase 2: Segment, in input order so ties rank stably.
	status(StatusSegmenting, "segmenting")
	segStart := time.Now()
	var sections []document.Section
	for i, in := range inputs {
		if errs[i] != nil {
			log.Warn("document skipped", "filename", in.Filename, "error", errs[i])
			res.Errors = append(res.Errors, fmt.Sprintf("%s: %s", in.Filename, errs[i]))
			if opts.OnDocument != nil {
				opts.OnDocument(in.Filename, 0, errs[i])
			}
			continue
		}
		secs := segment.Segment(docs[i].ID, docs[i].Pages)
		log.Debug("segmented document", "filename", in.Filename, "pages", len(docs[i].Pages), "sections", len(secs))
		if opts.OnDocument != nil {
			opts.OnDocument(in.Filename, len(secs), nil)
		}
		res.Documents = append(res.Documents, docs[i])
		sections = append(sections, secs...)
	}
	res.Sections = len(sections)
	res.Timings.Segment = time.Since(segStart)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Phase 3: Rank.
	status(StatusRanking, "ranking")
	rankStart := time.Now()
	res.Profile = persona.Build(personaText, jobText)
	res.Ranked = rank.New(opts.RankWorkers).Rank(sections, res.Profile, jobText)
	res.Timings.Rank = time.Since(rankStart)

	res.Report = report.Build(res.Documents, personaText, jobText, res.Ranked, opts.TopN, now())
	res.Timings.Total = time.Since(start)

	log.Info("analysis complete",
		"documents", len(res.Documents),
		"skipped", len(res.Errors),
		"sections", res.Sections,
		"duration_ms", res.Timings.Total.Milliseconds(),
	)
	return res, nil
}
