package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/dgallion1/doctext/internal/chunker"
	"github.com/dgallion1/doctext/internal/textproc"
)

// Operation selects which extraction a job runs.
type Operation string

const (
	OpText   Operation = "text"
	OpPages  Operation = "pages"
	OpChunks Operation = "chunks"
)

// ParseOperation validates a client-supplied operation name, defaulting to
// whole-document text.
func ParseOperation(s string) (Operation, error) {
	switch Operation(s) {
	case "", OpText:
		return OpText, nil
	case OpPages:
		return OpPages, nil
	case OpChunks:
		return OpChunks, nil
	}
	return "", fmt.Errorf("unknown operation: %q", s)
}

// JobStatus represents the state of a batch extraction job.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusProcessing JobStatus = "processing"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
)

// Result holds the output of one completed extraction, shaped by the
// job's operation.
type Result struct {
	Text   string          `json:"text,omitempty"`
	Pages  []textproc.Page `json:"pages,omitempty"`
	Chunks []chunker.Chunk `json:"chunks,omitempty"`
}

// Job tracks the state of a single queued extraction.
type Job struct {
	mu sync.Mutex

	ID       string    `json:"job_id"`
	Filename string    `json:"filename"`
	Op       Operation `json:"operation"`

	ChunkSize    int `json:"chunk_size,omitempty"`
	ChunkOverlap int `json:"chunk_overlap,omitempty"`

	Status    JobStatus `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Internal: not serialized.
	fileData []byte
	result   *Result
	errMsg   string
}

// SetFileData sets the raw document bytes to process. The worker clears
// them once a result exists.
func (j *Job) SetFileData(data []byte) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.fileData = data
}

// FileData returns the raw document bytes.
func (j *Job) FileData() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.fileData
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.UpdatedAt = time.Now()
}

// Complete records the extraction result and releases the input bytes.
func (j *Job) Complete(res *Result) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.result = res
	j.fileData = nil
	j.Status = StatusCompleted
	j.UpdatedAt = time.Now()
}

// Fail records a terminal failure and releases the input bytes.
func (j *Job) Fail(msg string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errMsg = msg
	j.fileData = nil
	j.Status = StatusFailed
	j.UpdatedAt = time.Now()
}

// JobSnapshot is a read-only, JSON-safe copy of job state. Result is only
// set once the job completed.
type JobSnapshot struct {
	ID       string    `json:"job_id"`
	Filename string    `json:"filename"`
	Op       Operation `json:"operation"`
	Status   JobStatus `json:"status"`
	Error    string    `json:"error,omitempty"`
	Result   *Result   `json:"result,omitempty"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	return JobSnapshot{
		ID:       j.ID,
		Filename: j.Filename,
		Op:       j.Op,
		Status:   j.Status,
		Error:    j.errMsg,
		Result:   j.result,
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

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		job.mu.Lock()
		expired := now.Sub(job.UpdatedAt) > s.ttl
		job.mu.Unlock()
		if expired {
			delete(s.jobs, id)
		}
	}
}

// ContentHashHex computes SHA-256 of content and returns the hex string.
// Used to derive stable job IDs from upload content and submit time.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
