package pipeline

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

const (
	testPersona = "Investment analyst"
	testJob     = "Analyze revenue trends in mobile banking and market positioning."
)

func testInputs() []Input {
	return []Input{
		{Filename: "annual.txt", Data: []byte(
			"EXECUTIVE SUMMARY\n" +
				"- revenue from mobile banking grew strongly this year across every region.\n" +
				"- market positioning improved against the three largest competitors.\n" +
				"APPENDIX\n" +
				"- tables of raw figures.")},
		{Filename: "recipes.txt", Data: []byte(
			"KITCHEN NOTES\n" +
				"- whisk the eggs with sugar until pale, then fold in the flour.")},
		{Filename: "payload.exe", Data: []byte("MZ")},
	}
}

func TestAnalyze_EndToEnd(t *testing.T) {
	var mu sync.Mutex
	var statuses []JobStatus
	docCalls := map[string]error{}

	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	res, err := Analyze(context.Background(), testInputs(), testPersona, testJob, Options{
		MaxConcurrentParse: 2,
		OnStatus: func(s JobStatus, _ string) {
			statuses = append(statuses, s)
		},
		OnDocument: func(name string, _ int, err error) {
			mu.Lock()
			defer mu.Unlock()
			docCalls[name] = err
		},
		now: func() time.Time { return fixed },
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Documents) != 2 {
		t.Fatalf("expected 2 parsed documents, got %d", len(res.Documents))
	}
	if res.Documents[0].ID != "annual.txt" || res.Documents[1].ID != "recipes.txt" {
		t.Errorf("expected input order preserved, got %q, %q", res.Documents[0].ID, res.Documents[1].ID)
	}
	if len(res.Errors) != 1 || !strings.HasPrefix(res.Errors[0], "payload.exe:") {
		t.Errorf("expected one error for payload.exe, got %v", res.Errors)
	}
	if res.Sections != 3 || len(res.Ranked) != 3 {
		t.Fatalf("expected 3 sections ranked, got %d/%d", res.Sections, len(res.Ranked))
	}
	if res.Ranked[0].Section.Title != "EXECUTIVE SUMMARY" {
		t.Errorf("expected executive summary first, got %q", res.Ranked[0].Section.Title)
	}

	want := []JobStatus{StatusParsing, StatusSegmenting, StatusRanking}
	if len(statuses) != len(want) {
		t.Fatalf("expected statuses %v, got %v", want, statuses)
	}
	for i := range want {
		if statuses[i] != want[i] {
			t.Errorf("status[%d]: expected %q, got %q", i, want[i], statuses[i])
		}
	}
	if len(docCalls) != 3 || docCalls["payload.exe"] == nil || docCalls["annual.txt"] != nil {
		t.Errorf("unexpected document callbacks %v", docCalls)
	}

	rep := res.Report
	if err := rep.Validate(); err != nil {
		t.Fatalf("invalid report: %v", err)
	}
	if rep.Metadata.ProcessingTimestamp != "2026-01-02T03:04:05.000000" {
		t.Errorf("unexpected timestamp %q", rep.Metadata.ProcessingTimestamp)
	}
	if len(rep.Metadata.InputDocuments) != 2 {
		t.Errorf("expected 2 input documents, got %v", rep.Metadata.InputDocuments)
	}
	if rep.Metadata.Persona != testPersona || rep.Metadata.JobToBeDone != testJob {
		t.Errorf("unexpected metadata %+v", rep.Metadata)
	}
	if len(rep.ExtractedSections) != 3 {
		t.Errorf("expected 3 extracted sections, got %d", len(rep.ExtractedSections))
	}
	if res.Profile.Role != "analyst" {
		t.Errorf("expected role analyst, got %q", res.Profile.Role)
	}
	if res.Timings.Total < res.Timings.Rank {
		t.Errorf("total %v shorter than rank stage %v", res.Timings.Total, res.Timings.Rank)
	}
}

func TestAnalyze_TopN(t *testing.T) {
	res, err := Analyze(context.Background(), testInputs(), testPersona, testJob, Options{TopN: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Report.ExtractedSections) != 1 {
		t.Errorf("expected 1 extracted section, got %d", len(res.Report.ExtractedSections))
	}
	if len(res.Ranked) != 3 {
		t.Errorf("expected full ranking kept, got %d", len(res.Ranked))
	}
}

func TestAnalyze_EmptyBatch(t *testing.T) {
	res, err := Analyze(context.Background(), nil, testPersona, testJob, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Ranked) != 0 {
		t.Errorf("expected no ranked sections, got %d", len(res.Ranked))
	}
	if err := res.Report.Validate(); err != nil {
		t.Errorf("invalid report: %v", err)
	}
}

func TestAnalyze_EmptyDocumentIsNotAnError(t *testing.T) {
	res, err := Analyze(context.Background(), []Input{{Filename: "blank.txt"}}, testPersona, testJob, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Errors) != 0 {
		t.Errorf("expected no errors, got %v", res.Errors)
	}
	if len(res.Documents) != 1 || res.Sections != 0 {
		t.Errorf("expected 1 document with 0 sections, got %d/%d", len(res.Documents), res.Sections)
	}
}

func TestAnalyze_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Analyze(ctx, testInputs(), testPersona, testJob, Options{}); err == nil {
		t.Error("expected error for cancelled context")
	}
}
