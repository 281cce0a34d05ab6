package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dgallion1/docrank/internal/config"
	"github.com/dgallion1/docrank/internal/metrics"
	"github.com/dgallion1/docrank/internal/parser"
)

// Worker runs queued analysis jobs.
type Worker struct {
	log     *slog.Logger
	metrics *metrics.Metrics
	stats   *LatencyStats
	opts    Options
}

func NewWorker(cfg config.Config, m *metrics.Metrics, stats *LatencyStats, log *slog.Logger) *Worker {
	return &Worker{
		log:     log,
		metrics: m,
		stats:   stats,
		opts: Options{
			MaxConcurrentParse: cfg.MaxConcurrentParse,
			RankWorkers:        cfg.RankWorkers,
			TopN:               cfg.TopN,
			Parser:             parser.Options{PDFFallbackPdftotext: cfg.PDFFallbackPdftotext},
		},
	}
}

// Process runs the full analysis for a job and records its final status.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID)

	opts := w.opts
	opts.Log = log
	if job.TopN > 0 {
		opts.TopN = job.TopN
	}
	opts.OnStatus = job.SetStatus
	opts.OnDocument = func(filename string, sections int, err error) {
		w.metrics.ObserveDocument(err == nil)
		if err != nil {
			job.AddError(fmt.Sprintf("%s: %s", filename, err))
			return
		}
		job.DocumentParsed(sections)
	}

	inputs := job.takeInputs()
	res, err := Analyze(ctx, inputs, job.Persona, job.JobToBeDone, opts)
	if err != nil {
		log.Error("analysis aborted", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, job.Snapshot().Phase)
		w.metrics.ObserveAnalysis(string(StatusFailed), 0)
		return
	}

	w.stats.Record(res.Timings)
	w.metrics.ObserveStage(StageParse, res.Timings.Parse)
	w.metrics.ObserveStage(StageSegment, res.Timings.Segment)
	w.metrics.ObserveStage(StageRank, res.Timings.Rank)
	w.metrics.ObserveStage(StageTotal, res.Timings.Total)

	var status JobStatus
	switch {
	case len(inputs) > 0 && len(res.Documents) == 0:
		status = StatusFailed
	case len(res.Errors) > 0:
		status = StatusPartial
	default:
		status = StatusCompleted
	}

	if status != StatusFailed {
		job.setResult(res)
	}
	job.SetStatus(status, "done")
	w.metrics.ObserveAnalysis(string(status), res.Sections)
	log.Info("job finished", "status", status, "sections", res.Sections, "errors", len(res.Errors))
}
