package pipeline

import (
	"sort"
	"testing"
	"time"
)

func TestNewJob(t *testing.T) {
	inputs := []Input{{Filename: "a.pdf"}, {Filename: "b.txt"}}
	job := NewJob("Analyst", "Review revenue", inputs, 3)

	if len(job.ID) != 26 {
		t.Errorf("expected 26-char ULID, got %q", job.ID)
	}
	snap := job.Snapshot()
	if snap.Status != StatusQueued {
		t.Errorf("expected status %q, got %q", StatusQueued, snap.Status)
	}
	if snap.Progress.DocumentsTotal != 2 {
		t.Errorf("expected 2 documents, got %d", snap.Progress.DocumentsTotal)
	}
	if len(snap.Filenames) != 2 || snap.Filenames[1] != "b.txt" {
		t.Errorf("unexpected filenames %v", snap.Filenames)
	}
	if snap.TopN != 3 {
		t.Errorf("expected top n 3, got %d", snap.TopN)
	}
}

func TestNewJobID_UniqueAndSorted(t *testing.T) {
	ids := make([]string, 100)
	seen := make(map[string]bool)
	for i := range ids {
		ids[i] = NewJobID()
		if seen[ids[i]] {
			t.Fatalf("duplicate id %q", ids[i])
		}
		seen[ids[i]] = true
	}
	if !sort.StringsAreSorted(ids) {
		t.Error("expected ids to sort in creation order")
	}
}

func TestJob_StateTransitions(t *testing.T) {
	job := &Job{
		ID:        "test-1",
		Status:    StatusQueued,
		Phase:     "queued",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	transitions := []struct {
		status JobStatus
		phase  string
	}{
		{StatusParsing, "parsing"},
		{StatusSegmenting, "segmenting"},
		{StatusRanking, "ranking"},
		{StatusCompleted, "done"},
	}

	for _, tr := range transitions {
		before := job.UpdatedAt
		// Small sleep to ensure time difference is detectable.
		time.Sleep(time.Millisecond)
		job.SetStatus(tr.status, tr.phase)

		if job.Status != tr.status {
			t.Errorf("expected status %q, got %q", tr.status, job.Status)
		}
		if job.Phase != tr.phase {
			t.Errorf("expected phase %q, got %q", tr.phase, job.Phase)
		}
		if !job.UpdatedAt.After(before) {
			t.Errorf("expected UpdatedAt to advance after SetStatus(%q)", tr.status)
		}
	}
}

func TestJobStatus_Finished(t *testing.T) {
	for _, s := range []JobStatus{StatusCompleted, StatusPartial, StatusFailed} {
		if !s.Finished() {
			t.Errorf("expected %q to be finished", s)
		}
	}
	for _, s := range []JobStatus{StatusQueued, StatusParsing, StatusSegmenting, StatusRanking} {
		if s.Finished() {
			t.Errorf("expected %q to be running", s)
		}
	}
}

func TestJob_AddError(t *testing.T) {
	job := &Job{ID: "err-test", UpdatedAt: time.Now()}
	job.AddError("a.pdf: broken")
	job.AddError("b.exe: unsupported")

	snap := job.Snapshot()
	if len(snap.Progress.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(snap.Progress.Errors))
	}
	if snap.Progress.Errors[0] != "a.pdf: broken" {
		t.Errorf("expected first error %q, got %q", "a.pdf: broken", snap.Progress.Errors[0])
	}
}

func TestJob_DocumentParsed(t *testing.T) {
	job := &Job{ID: "parsed-test", UpdatedAt: time.Now()}
	job.DocumentParsed(4)
	job.DocumentParsed(0)

	snap := job.Snapshot()
	if snap.Progress.DocumentsParsed != 2 {
		t.Errorf("expected 2 documents parsed, got %d", snap.Progress.DocumentsParsed)
	}
	if snap.Progress.Sections != 4 {
		t.Errorf("expected 4 sections, got %d", snap.Progress.Sections)
	}
}

func TestJob_TakeInputsReleases(t *testing.T) {
	job := NewJob("p", "j", []Input{{Filename: "a.txt", Data: []byte("x")}}, 0)
	if got := job.takeInputs(); len(got) != 1 {
		t.Fatalf("expected 1 input, got %d", len(got))
	}
	if got := job.takeInputs(); got != nil {
		t.Errorf("expected inputs released, got %v", got)
	}
}

func TestJob_SnapshotErrorsNotNil(t *testing.T) {
	// Snapshot should always return non-nil errors slice.
	job := &Job{ID: "snap-test", UpdatedAt: time.Now()}
	snap := job.Snapshot()
	if snap.Progress.Errors == nil {
		t.Error("expected non-nil errors slice in snapshot")
	}
	if len(snap.Progress.Errors) != 0 {
		t.Errorf("expected empty errors, got %d", len(snap.Progress.Errors))
	}
}

func TestJobStore_PutGet(t *testing.T) {
	store := NewJobStore(time.Hour)
	job := &Job{ID: "store-1", UpdatedAt: time.Now()}
	store.Put(job)

	got := store.Get("store-1")
	if got == nil {
		t.Fatal("expected to get job back")
	}
	if got.ID != "store-1" {
		t.Errorf("expected ID %q, got %q", "store-1", got.ID)
	}
}

func TestJobStore_GetMissing(t *testing.T) {
	store := NewJobStore(time.Hour)
	if store.Get("nonexistent") != nil {
		t.Error("expected nil for missing job")
	}
}

func TestJobStore_TTLCleanup(t *testing.T) {
	store := NewJobStore(50 * time.Millisecond)

	expired := &Job{ID: "old", Status: StatusCompleted, UpdatedAt: time.Now()}
	running := &Job{ID: "running", Status: StatusRanking, UpdatedAt: time.Now()}
	store.Put(expired)
	store.Put(running)

	// Wait for the TTL to pass.
	time.Sleep(100 * time.Millisecond)

	// Add a fresh job.
	fresh := &Job{ID: "new", Status: StatusCompleted, UpdatedAt: time.Now()}
	store.Put(fresh)

	store.Cleanup()

	if store.Get("old") != nil {
		t.Error("expected expired job to be cleaned up")
	}
	if store.Get("running") == nil {
		t.Error("expected running job to survive cleanup")
	}
	if store.Get("new") == nil {
		t.Error("expected fresh job to survive cleanup")
	}
	if store.Len() != 2 {
		t.Errorf("expected 2 jobs left, got %d", store.Len())
	}
}

func TestJobStore_CleanupEmpty(t *testing.T) {
	store := NewJobStore(time.Hour)
	// Should not panic on empty store.
	store.Cleanup()
}
