package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatalf("read scrape: %v", err)
	}
	return string(body)
}

func TestNewRegistersOnOwnRegistry(t *testing.T) {
	// Two instances must not collide.
	a := New()
	b := New()
	a.ObserveAnalysis("completed", 12)
	if out := scrape(t, a); !strings.Contains(out, `docrank_analyses_total{status="completed"} 1`) {
		t.Errorf("expected 1 completed analysis in scrape output")
	}
	if out := scrape(t, b); strings.Contains(out, "docrank_analyses_total{") {
		t.Errorf("expected independent registries")
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveStage("parse", time.Second)
	m.ObserveDocument(true)
	m.ObserveAnalysis("failed", 0)
	m.SetQueueDepth(3)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if rec.Code != 404 {
		t.Errorf("expected 404 from nil metrics handler, got %d", rec.Code)
	}
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := New()
	m.ObserveDocument(false)
	m.ObserveStage("rank", 20*time.Millisecond)
	m.SetQueueDepth(2)

	out := scrape(t, m)

	for _, want := range []string{
		`docrank_documents_parsed_total{result="error"} 1`,
		`docrank_stage_duration_seconds_count{stage="rank"} 1`,
		`docrank_queue_depth 2`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in scrape output", want)
		}
	}
}
