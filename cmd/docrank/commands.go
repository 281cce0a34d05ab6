package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dgallion1/docrank/internal/logging"
	"github.com/dgallion1/docrank/internal/manifest"
	"github.com/dgallion1/docrank/internal/parser"
	"github.com/dgallion1/docrank/internal/pipeline"
	"github.com/dgallion1/docrank/internal/report"
)

type analyzeFlags struct {
	documents string
	input     string
	persona   string
	job       string
	output    string
	top       int
	workers   int
	pdftotext bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:          "docrank",
		Short:        "docrank ranks document sections by relevance to a persona and task",
		SilenceUsage: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(newAnalyzeCmd(stdout, stderr, &logLevel))
	root.AddCommand(newValidateCmd(stdout))
	return root
}

func newAnalyzeCmd(stdout, stderr io.Writer, logLevel *string) *cobra.Command {
	var f analyzeFlags

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Rank the sections of a document batch and write the report",
		Example: `  docrank analyze --documents ./pdfs --persona "Investment analyst" --job "Analyze revenue trends"
  docrank analyze --input batch.yaml --output report.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logging.WithComponent(logging.New(stderr, *logLevel, "text"), "cli")

			paths, personaText, jobText, topN, err := resolveBatch(f)
			if err != nil {
				return err
			}

			inputs := make([]pipeline.Input, 0, len(paths))
			for _, p := range paths {
				data, err := os.ReadFile(p)
				if err != nil {
					return fmt.Errorf("read document: %w", err)
				}
				inputs = append(inputs, pipeline.Input{Filename: filepath.Base(p), Data: data})
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log.Info("analyzing", "documents", len(inputs), "persona", personaText, "job", jobText)
			res, err := pipeline.Analyze(ctx, inputs, personaText, jobText, pipeline.Options{
				MaxConcurrentParse: f.workers,
				RankWorkers:        f.workers,
				TopN:               topN,
				Parser:             parser.Options{PDFFallbackPdftotext: f.pdftotext},
				Log:                log,
			})
			if err != nil {
				return err
			}
			if len(res.Documents) == 0 {
				return errors.New("no documents could be parsed")
			}

			if err := writeReport(res.Report, f.output, stdout); err != nil {
				return err
			}
			log.Info("report written",
				"output", f.output,
				"sections", res.Sections,
				"skipped", len(res.Errors),
				"duration_ms", res.Timings.Total.Milliseconds(),
			)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.documents, "documents", "", "directory of documents to analyze")
	flags.StringVar(&f.input, "input", "", "batch manifest (YAML or JSON)")
	flags.StringVar(&f.persona, "persona", "", "persona description")
	flags.StringVar(&f.job, "job", "", "job-to-be-done description")
	flags.StringVarP(&f.output, "output", "o", "output.json", `report path, "-" for stdout`)
	flags.IntVar(&f.top, "top", 0, "sections to keep in the report (default 5)")
	flags.IntVar(&f.workers, "workers", runtime.NumCPU(), "concurrent parse and scoring workers")
	flags.BoolVar(&f.pdftotext, "pdftotext", true, "fall back to pdftotext for unreadable PDFs")
	cmd.MarkFlagsMutuallyExclusive("documents", "input")
	return cmd
}

// resolveBatch merges the manifest, if any, with flags. Flags win.
func resolveBatch(f analyzeFlags) (paths []string, personaText, jobText string, topN int, err error) {
	personaText, jobText, topN = f.persona, f.job, f.top

	switch {
	case f.input != "":
		m, err := manifest.Load(f.input)
		if err != nil {
			return nil, "", "", 0, err
		}
		paths = m.Paths()
		if personaText == "" {
			personaText = m.Persona.Role
		}
		if jobText == "" {
			jobText = m.JobToBeDone.Task
		}
		if topN == 0 {
			topN = m.TopN
		}
	case f.documents != "":
		paths, err = manifest.ScanDir(f.documents)
		if err != nil {
			return nil, "", "", 0, err
		}
	default:
		return nil, "", "", 0, errors.New("one of --documents or --input is required")
	}

	if personaText == "" {
		return nil, "", "", 0, errors.New("--persona is required")
	}
	if jobText == "" {
		return nil, "", "", 0, errors.New("--job is required")
	}
	return paths, personaText, jobText, topN, nil
}

func writeReport(r *report.Report, output string, stdout io.Writer) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	data = append(data, '\n')

	if output == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func newValidateCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "validate REPORT",
		Short: "Check that a report file has the required shape",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read report: %w", err)
			}
			var r report.Report
			if err := json.Unmarshal(data, &r); err != nil {
				return fmt.Errorf("decode report: %w", err)
			}
			if err := r.Validate(); err != nil {
				return fmt.Errorf("invalid report: %w", err)
			}
			fmt.Fprintf(stdout, "%s: ok (%d sections)\n", args[0], len(r.ExtractedSections))
			return nil
		},
	}
}
