package job

import (
	"errors"
	"testing"
	"time"

	"github.com/newthinker/stratdeck/internal/core"
)

func TestStore_CreateAndGet(t *testing.T) {
	store := NewStore(100, time.Hour)

	job := store.Create("ingest")
	if job.ID == "" {
		t.Error("expected job ID")
	}
	if job.Status != StatusPending {
		t.Errorf("expected pending, got %s", job.Status)
	}

	retrieved, err := store.Get(job.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if retrieved.ID != job.ID {
		t.Error("IDs don't match")
	}
}

func TestStore_Update(t *testing.T) {
	store := NewStore(100, time.Hour)
	job := store.Create("ingest")

	err := store.Update(job.ID, func(j *Job) {
		j.Status = StatusComplete
		j.Result = map[string]int{"parsed": 3}
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	retrieved, _ := store.Get(job.ID)
	if retrieved.Status != StatusComplete {
		t.Errorf("expected complete, got %s", retrieved.Status)
	}
	if retrieved.Result == nil {
		t.Error("expected result")
	}
}

func TestStore_MaxSize(t *testing.T) {
	store := NewStore(2, time.Hour)

	job1 := store.Create("ingest")
	store.Create("ingest")
	store.Create("ingest") // evicts job1

	_, err := store.Get(job1.ID)
	if err == nil {
		t.Error("expected job1 to be evicted")
	}
}

func TestStore_NotFound(t *testing.T) {
	store := NewStore(100, time.Hour)

	_, err := store.Get("nonexistent")
	if !errors.Is(err, core.ErrJobNotFound) {
		t.Errorf("expected ErrJobNotFound, got %v", err)
	}
	if err := store.Update("nonexistent", func(*Job) {}); !errors.Is(err, core.ErrJobNotFound) {
		t.Errorf("expected ErrJobNotFound from Update, got %v", err)
	}
}

func TestStore_ListNewestFirst(t *testing.T) {
	store := NewStore(100, time.Hour)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	store.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	first := store.Create("ingest")
	second := store.Create("ingest")

	jobs := store.List()
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
	if jobs[0].ID != second.ID || jobs[1].ID != first.ID {
		t.Error("expected newest job first")
	}
}

func TestStore_PrunesFinishedJobs(t *testing.T) {
	store := NewStore(100, time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	done := store.Create("ingest")
	store.Update(done.ID, func(j *Job) { j.Status = StatusComplete })
	running := store.Create("ingest")
	store.Update(running.ID, func(j *Job) { j.Status = StatusRunning })

	now = now.Add(2 * time.Minute)
	store.Create("ingest")

	if _, err := store.Get(done.ID); err == nil {
		t.Error("expected finished job to be pruned")
	}
	if _, err := store.Get(running.ID); err != nil {
		t.Error("running jobs are never pruned")
	}
}
