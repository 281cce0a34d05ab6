package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "DOCRANK_API_KEY", "WORKER_COUNT", "MAX_QUEUE_SIZE",
		"MAX_CONCURRENT_PARSE", "RANK_WORKERS", "MAX_UPLOAD_BYTES", "MAX_DOCUMENTS", "JOB_TTL",
		"PDF_FALLBACK_PDFTOTEXT", "TOP_N", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	if cfg.Port != "8090" {
		t.Errorf("expected port 8090, got %q", cfg.Port)
	}
	if cfg.WorkerCount != 4 || cfg.MaxQueueSize != 100 || cfg.MaxConcurrentParse != 4 || cfg.RankWorkers != 4 {
		t.Errorf("unexpected pool defaults: %+v", cfg)
	}
	if cfg.MaxUploadBytes != 52428800 {
		t.Errorf("expected 50MB upload limit, got %d", cfg.MaxUploadBytes)
	}
	if cfg.MaxDocuments != 50 {
		t.Errorf("expected 50 max documents, got %d", cfg.MaxDocuments)
	}
	if cfg.JobTTL != time.Hour {
		t.Errorf("expected 1h ttl, got %v", cfg.JobTTL)
	}
	if !cfg.PDFFallbackPdftotext {
		t.Error("expected pdftotext fallback enabled by default")
	}
	if cfg.TopN != 5 {
		t.Errorf("expected top n 5, got %d", cfg.TopN)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected log level info, got %q", cfg.LogLevel)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("WORKER_COUNT", "8")
	t.Setenv("RANK_WORKERS", "6")
	t.Setenv("JOB_TTL", "15m")
	t.Setenv("PDF_FALLBACK_PDFTOTEXT", "false")
	t.Setenv("TOP_N", "10")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()
	if cfg.Port != "9000" {
		t.Errorf("expected port 9000, got %q", cfg.Port)
	}
	if cfg.WorkerCount != 8 {
		t.Errorf("expected 8 workers, got %d", cfg.WorkerCount)
	}
	if cfg.RankWorkers != 6 {
		t.Errorf("expected 6 rank workers, got %d", cfg.RankWorkers)
	}
	if cfg.JobTTL != 15*time.Minute {
		t.Errorf("expected 15m ttl, got %v", cfg.JobTTL)
	}
	if cfg.PDFFallbackPdftotext {
		t.Error("expected pdftotext fallback disabled")
	}
	if cfg.TopN != 10 {
		t.Errorf("expected top n 10, got %d", cfg.TopN)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level debug, got %q", cfg.LogLevel)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("WORKER_COUNT", "-3")
	t.Setenv("MAX_QUEUE_SIZE", "lots")
	t.Setenv("JOB_TTL", "forever")
	t.Setenv("TOP_N", "0")
	t.Setenv("RANK_WORKERS", "0")

	cfg := Load()
	if cfg.WorkerCount != 4 {
		t.Errorf("expected negative worker count clamped to 4, got %d", cfg.WorkerCount)
	}
	if cfg.MaxQueueSize != 100 {
		t.Errorf("expected unparsable queue size to fall back to 100, got %d", cfg.MaxQueueSize)
	}
	if cfg.JobTTL != time.Hour {
		t.Errorf("expected unparsable ttl to fall back to 1h, got %v", cfg.JobTTL)
	}
	if cfg.TopN != 5 {
		t.Errorf("expected top n clamped to 5, got %d", cfg.TopN)
	}
	if cfg.RankWorkers != 4 {
		t.Errorf("expected rank workers clamped to 4, got %d", cfg.RankWorkers)
	}
}

func TestValidate(t *testing.T) {
	if err := (Config{}).Validate(); err == nil {
		t.Error("expected error without api key")
	}
	if err := (Config{APIKey: "k"}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
