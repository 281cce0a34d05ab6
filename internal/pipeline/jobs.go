package pipeline

import (
	"sync"
	"time"
)

// JobStatus represents the state of an analysis job.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusParsing    JobStatus = "parsing"
	StatusSegmenting JobStatus = "segmenting"
	StatusRanking    JobStatus = "ranking"
	StatusCompleted  JobStatus = "completed"
	StatusPartial    JobStatus = "partial"
	StatusFailed     JobStatus = "failed"
)

// Finished reports whether s is a terminal status.
func (s JobStatus) Finished() bool {
	return s == StatusCompleted || s == StatusPartial || s == StatusFailed
}

// Job tracks the state of a single analysis request.
type Job struct {
	mu sync.Mutex

	ID string `json:"job_id"`

	Status JobStatus `json:"status"`
	Phase  string    `json:"phase"`

	Persona     string   `json:"persona"`
	JobToBeDone string   `json:"job_to_be_done"`
	Filenames   []string `json:"filenames"`
	TopN        int      `json:"top_n"`

	Progress Progress `json:"progress"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Internal: not serialized.
	inputs []Input
	result *Result
	errors []string
}

// Progress tracks processing progress.
type Progress struct {
	DocumentsTotal  int      `json:"documents_total"`
	DocumentsParsed int      `json:"documents_parsed"`
	Sections        int      `json:"sections"`
	Errors          []string `json:"errors"`
}

// NewJob creates a queued job for inputs.
func NewJob(personaText, jobText string, inputs []Input, topN int) *Job {
	now := time.Now()
	names := make([]string, len(inputs))
	for i, in := range inputs {
		names[i] = in.Filename
	}
	return &Job{
		ID:          NewJobID(),
		Status:      StatusQueued,
		Phase:       "queued",
		Persona:     personaText,
		JobToBeDone: jobText,
		Filenames:   names,
		TopN:        topN,
		Progress:    Progress{DocumentsTotal: len(inputs)},
		CreatedAt:   now,
		UpdatedAt:   now,
		inputs:      inputs,
	}
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Len returns the number of tracked jobs.
func (s *JobStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// Cleanup removes finished jobs idle for longer than the TTL.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		job.mu.Lock()
		expired := job.Status.Finished() && now.Sub(job.UpdatedAt) > s.ttl
		job.mu.Unlock()
		if expired {
			delete(s.jobs, id)
		}
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// DocumentParsed records one successfully segmented document.
func (j *Job) DocumentParsed(sections int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.DocumentsParsed++
	j.Progress.Sections += sections
	j.UpdatedAt = time.Now()
}

// takeInputs hands the uploaded bytes to the worker and drops the job's
// reference so they can be collected once the run ends.
func (j *Job) takeInputs() []Input {
	j.mu.Lock()
	defer j.mu.Unlock()
	in := j.inputs
	j.inputs = nil
	return in
}

func (j *Job) setResult(r *Result) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.result = r
	j.UpdatedAt = time.Now()
}

// Result returns the finished analysis, or nil while the job is running or
// when it failed.
func (j *Job) Result() *Result {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.result
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID          string    `json:"job_id"`
	Status      JobStatus `json:"status"`
	Phase       string    `json:"phase"`
	Persona     string    `json:"persona"`
	JobToBeDone string    `json:"job_to_be_done"`
	Filenames   []string  `json:"filenames"`
	TopN        int       `json:"top_n"`
	Progress    Progress  `json:"progress"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := make([]string, len(j.errors))
	copy(errs, j.errors)
	names := make([]string, len(j.Filenames))
	copy(names, j.Filenames)
	return JobSnapshot{
		ID:          j.ID,
		Status:      j.Status,
		Phase:       j.Phase,
		Persona:     j.Persona,
		JobToBeDone: j.JobToBeDone,
		Filenames:   names,
		TopN:        j.TopN,
		Progress: Progress{
			DocumentsTotal:  j.Progress.DocumentsTotal,
			DocumentsParsed: j.Progress.DocumentsParsed,
			Sections:        j.Progress.Sections,
			Errors:          errs,
		},
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}
}
