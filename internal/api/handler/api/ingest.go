package api

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/newthinker/stratdeck/internal/api/job"
	"github.com/newthinker/stratdeck/internal/api/response"
	"github.com/newthinker/stratdeck/internal/core"
	"github.com/newthinker/stratdeck/internal/ingest"
	"go.uber.org/zap"
)

const jobTypeIngest = "ingest"

// Runner regenerates data.json from the stored reports.
type Runner interface {
	Run(ctx context.Context, opts ingest.Options) (ingest.Result, error)
}

// IngestHandler starts ingest runs in the background and reports on them.
// At most one run is in progress at a time.
type IngestHandler struct {
	runner  Runner
	jobs    *job.Store
	opts    ingest.Options
	timeout time.Duration
	logger  *zap.Logger

	running atomic.Bool
}

// NewIngestHandler creates a new ingest handler.
func NewIngestHandler(runner Runner, jobs *job.Store, opts ingest.Options, logger *zap.Logger) *IngestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IngestHandler{
		runner:  runner,
		jobs:    jobs,
		opts:    opts,
		timeout: 5 * time.Minute,
		logger:  logger,
	}
}

// Start queues an ingest run and answers 202 with the job.
func (h *IngestHandler) Start(w http.ResponseWriter, r *http.Request) {
	if !h.running.CompareAndSwap(false, true) {
		response.Error(w, http.StatusConflict, core.ErrIngestRunning)
		return
	}

	j := h.jobs.Create(jobTypeIngest)
	go h.run(j.ID)

	response.JSON(w, http.StatusAccepted, j)
}

// Get returns the job named by the {id} path value.
func (h *IngestHandler) Get(w http.ResponseWriter, r *http.Request) {
	j, err := h.jobs.Get(r.PathValue("id"))
	if err != nil {
		response.Error(w, http.StatusNotFound, err)
		return
	}
	response.JSON(w, http.StatusOK, j)
}

// List returns recent jobs, newest first.
func (h *IngestHandler) List(w http.ResponseWriter, r *http.Request) {
	jobs := h.jobs.List()
	response.JSON(w, http.StatusOK, map[string]any{
		"jobs":  jobs,
		"count": len(jobs),
	})
}

func (h *IngestHandler) run(id string) {
	defer h.running.Store(false)

	h.jobs.Update(id, func(j *job.Job) { j.Status = job.StatusRunning })

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	result, err := h.runner.Run(ctx, h.opts)
	if err != nil {
		h.logger.Error("ingest job failed", zap.String("job_id", id), zap.Error(err))
		h.jobs.Update(id, func(j *job.Job) {
			j.Status = job.StatusFailed
			j.Result = result
			j.Error = asCoreError(err)
		})
		return
	}

	h.logger.Info("ingest job complete",
		zap.String("job_id", id),
		zap.Int("parsed", result.Parsed),
		zap.Int("failed", result.Failed),
	)
	h.jobs.Update(id, func(j *job.Job) {
		j.Status = job.StatusComplete
		j.Result = result
	})
}

func asCoreError(err error) *core.Error {
	var coreErr *core.Error
	if errors.As(err, &coreErr) {
		return coreErr
	}
	return &core.Error{Code: "INGEST_FAILED", Message: "ingest run failed", Cause: err}
}
