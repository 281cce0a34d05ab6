package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dgallion1/docrank/internal/parser"
	"github.com/dgallion1/docrank/internal/pipeline"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	// Limit total request size: every document plus 1MB of form overhead.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes*int64(s.cfg.MaxDocuments)+1024*1024)

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	personaText := strings.TrimSpace(r.FormValue("persona"))
	if personaText == "" {
		jsonError(w, "persona is required", http.StatusBadRequest)
		return
	}
	jobText := strings.TrimSpace(r.FormValue("job"))
	if jobText == "" {
		jsonError(w, "job is required", http.StatusBadRequest)
		return
	}

	topN := s.cfg.TopN
	if v := r.FormValue("top_n"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			jsonError(w, "top_n must be a positive integer", http.StatusBadRequest)
			return
		}
		topN = n
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		jsonError(w, "at least one file is required", http.StatusBadRequest)
		return
	}
	if len(files) > s.cfg.MaxDocuments {
		jsonError(w, fmt.Sprintf("too many files: %d (max %d)", len(files), s.cfg.MaxDocuments), http.StatusBadRequest)
		return
	}

	inputs := make([]pipeline.Input, 0, len(files))
	for _, fh := range files {
		filename := sanitizeFilename(fh.Filename)
		if !parser.IsSupportedExtension(filename) {
			jsonError(w, fmt.Sprintf("unsupported file type: %s (%s)", filepath.Ext(filename), filename), http.StatusBadRequest)
			return
		}

		f, err := fh.Open()
		if err != nil {
			jsonError(w, "failed to open file: "+filename, http.StatusBadRequest)
			return
		}
		data, err := io.ReadAll(io.LimitReader(f, s.cfg.MaxUploadBytes+1))
		f.Close()
		if err != nil {
			jsonError(w, "failed to read file: "+filename, http.StatusInternalServerError)
			return
		}
		if int64(len(data)) > s.cfg.MaxUploadBytes {
			jsonError(w, fmt.Sprintf("file %s exceeds max size (%d bytes)", filename, s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
			return
		}
		inputs = append(inputs, pipeline.Input{Filename: filename, Data: data})
	}

	job := pipeline.NewJob(personaText, jobText, inputs, topN)
	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":     job.ID,
		"status":     pipeline.StatusQueued,
		"documents":  len(inputs),
		"poll_url":   fmt.Sprintf("/api/analyze/%s/status", job.ID),
		"result_url": fmt.Sprintf("/api/analyze/%s/result", job.ID),
	})
}

func (s *Server) handleAnalyzeStatus(w http.ResponseWriter, r *http.Request) {
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job.Snapshot())
}

// rankedEntry is one section of the full ranking, returned when the caller
// asks for scores.
type rankedEntry struct {
	Document     string             `json:"document"`
	SectionTitle string             `json:"section_title"`
	PageNumber   int                `json:"page_number"`
	Rank         int                `json:"importance_rank"`
	Score        float64            `json:"score"`
	Breakdown    map[string]float64 `json:"breakdown"`
}

func (s *Server) handleAnalyzeResult(w http.ResponseWriter, r *http.Request) {
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}

	snap := job.Snapshot()
	if !snap.Status.Finished() {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]any{
			"error":  "job still running",
			"status": snap.Status,
		})
		return
	}

	res := job.Result()
	if res == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]any{
			"error":  "job failed",
			"status": snap.Status,
			"errors": snap.Progress.Errors,
		})
		return
	}

	if r.URL.Query().Get("include_scores") != "true" {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(res.Report)
		return
	}

	ranked := make([]rankedEntry, len(res.Ranked))
	for i, sc := range res.Ranked {
		ranked[i] = rankedEntry{
			Document:     sc.Section.DocumentID,
			SectionTitle: sc.Section.Title,
			PageNumber:   sc.Section.PageNumber,
			Rank:         sc.Rank,
			Score:        sc.Score,
			Breakdown:    sc.Breakdown,
		}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"report":  res.Report,
		"profile": res.Profile,
		"ranked":  ranked,
	})
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	// Remove any path separators that might have survived.
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
