package pipeline

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/dgallion1/doctext/internal/config"
	"github.com/dgallion1/doctext/internal/extract"
)

func testOrchestrator(t *testing.T, cfg config.Config) *Orchestrator {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewOrchestrator(cfg, extract.NewService(), log)
}

func waitTerminal(t *testing.T, o *Orchestrator, id string) JobSnapshot {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		snap := o.GetJob(id).Snapshot()
		if snap.Status == StatusCompleted || snap.Status == StatusFailed {
			return snap
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("job %s never reached a terminal state", id)
	return JobSnapshot{}
}

func TestOrchestrator_ProcessesTextJob(t *testing.T) {
	cfg := config.Config{WorkerCount: 1, MaxQueueSize: 4, JobTTL: time.Hour}
	o := testOrchestrator(t, cfg)
	o.Start(context.Background())
	defer o.Stop()

	job := &Job{ID: "t1", Filename: "doc.txt", Op: OpText, Status: StatusQueued}
	job.SetFileData([]byte("Hello\n7\nWorld\n"))
	if err := o.Submit(job); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	snap := waitTerminal(t, o, "t1")
	if snap.Status != StatusCompleted {
		t.Fatalf("status = %q, error = %q", snap.Status, snap.Error)
	}
	if snap.Result.Text != "Hello\nWorld\n" {
		t.Errorf("result text = %q", snap.Result.Text)
	}
}

func TestOrchestrator_ProcessesChunksJob(t *testing.T) {
	cfg := config.Config{WorkerCount: 2, MaxQueueSize: 4, JobTTL: time.Hour}
	o := testOrchestrator(t, cfg)
	o.Start(context.Background())
	defer o.Stop()

	job := &Job{
		ID: "c1", Filename: "doc.txt", Op: OpChunks, Status: StatusQueued,
		ChunkSize: 10, ChunkOverlap: 4,
	}
	job.SetFileData([]byte("AAAA BBBB CCCC DDDD\n"))
	if err := o.Submit(job); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	snap := waitTerminal(t, o, "c1")
	if snap.Status != StatusCompleted {
		t.Fatalf("status = %q, error = %q", snap.Status, snap.Error)
	}
	if len(snap.Result.Chunks) < 2 {
		t.Errorf("got %d chunks, want at least 2", len(snap.Result.Chunks))
	}
}

func TestOrchestrator_InvalidChunkConfigFailsJob(t *testing.T) {
	cfg := config.Config{WorkerCount: 1, MaxQueueSize: 4, JobTTL: time.Hour}
	o := testOrchestrator(t, cfg)
	o.Start(context.Background())
	defer o.Stop()

	job := &Job{
		ID: "c2", Filename: "doc.txt", Op: OpChunks, Status: StatusQueued,
		ChunkSize: 5, ChunkOverlap: 5,
	}
	job.SetFileData([]byte("some text\n"))
	if err := o.Submit(job); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	snap := waitTerminal(t, o, "c2")
	if snap.Status != StatusFailed {
		t.Fatalf("status = %q, want failed", snap.Status)
	}
	if snap.Error == "" {
		t.Error("failed job has no error message")
	}
}

func TestOrchestrator_FullQueueRejectsSubmit(t *testing.T) {
	// Workers never started, so the single queue slot stays occupied.
	cfg := config.Config{WorkerCount: 1, MaxQueueSize: 1, JobTTL: time.Hour}
	o := testOrchestrator(t, cfg)

	first := &Job{ID: "q1", Filename: "a.txt", Op: OpText, Status: StatusQueued}
	if err := o.Submit(first); err != nil {
		t.Fatalf("first Submit: %v", err)
	}

	second := &Job{ID: "q2", Filename: "b.txt", Op: OpText, Status: StatusQueued}
	if err := o.Submit(second); err == nil {
		t.Fatal("expected error submitting to a full queue")
	}
	if snap := second.Snapshot(); snap.Status != StatusFailed {
		t.Errorf("rejected job status = %q, want failed", snap.Status)
	}
	// The rejected job must still be visible to status polls.
	if o.GetJob("q2") == nil {
		t.Error("rejected job not found in store")
	}
}
