package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/doctext/internal/config"
	"github.com/dgallion1/doctext/internal/extract"
)

// Orchestrator runs batch extraction jobs on a bounded worker pool.
type Orchestrator struct {
	jobs  *JobStore
	queue chan *Job
	svc   *extract.Service
	log   *slog.Logger
	cfg   config.Config

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOrchestrator creates the pipeline; call Start to launch workers.
func NewOrchestrator(cfg config.Config, svc *extract.Service, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		jobs:  NewJobStore(cfg.JobTTL),
		queue: make(chan *Job, cfg.MaxQueueSize),
		svc:   svc,
		log:   log,
		cfg:   cfg,
	}
}

// Start launches worker goroutines and the job store cleanup loop.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for i := 0; i < o.cfg.WorkerCount; i++ {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					o.process(job)
				}
			}
		}()
	}

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.jobs.Cleanup()
			}
		}
	}()
}

// Stop gracefully shuts down the pipeline.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	close(o.queue)
	o.wg.Wait()
}

// Submit queues a new job for processing. A full queue is reported back to
// the caller instead of blocking the request.
func (o *Orchestrator) Submit(job *Job) error {
	o.jobs.Put(job)
	select {
	case o.queue <- job:
		return nil
	default:
		job.Fail("queue full")
		return fmt.Errorf("extraction queue is full (max %d)", o.cfg.MaxQueueSize)
	}
}

// GetJob returns the job for the given ID, or nil.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// process runs one extraction to completion. The job's operation picks the
// pipeline; all three are synchronous and request-local.
func (o *Orchestrator) process(job *Job) {
	log := o.log.With("job_id", job.ID, "filename", job.Filename, "operation", job.Op)
	job.SetStatus(StatusProcessing)

	r := bytes.NewReader(job.FileData())
	var (
		res Result
		err error
	)
	switch job.Op {
	case OpPages:
		res.Pages, err = o.svc.PagesFrom(r, job.Filename)
	case OpChunks:
		res.Chunks, err = o.svc.ChunksFrom(r, job.Filename, job.ChunkSize, job.ChunkOverlap)
	default:
		res.Text, err = o.svc.TextFrom(r, job.Filename)
	}

	if err != nil {
		log.Error("extraction failed", "error", err)
		job.Fail(err.Error())
		return
	}

	job.Complete(&res)
	log.Info("extraction completed")
}
