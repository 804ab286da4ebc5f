// Package worker drives the notification delivery pipeline: it claims due
// jobs from the queue store, resolves recipients, fans out to the delivery
// adapters and applies the retry policy to failures.
package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/zlog"

	"github.com/opticstore/notify-queue/internal/delivery"
	"github.com/opticstore/notify-queue/internal/model"
	"github.com/opticstore/notify-queue/internal/render"
	"github.com/opticstore/notify-queue/internal/repository/queue"
)

// DefaultBatchSize bounds how many due jobs one cycle may process.
const DefaultBatchSize = 10

// Cycle-level job outcomes reported to the trigger caller.
const (
	ResultSent           = "sent"
	ResultRetryScheduled = "retry_scheduled"
	ResultFailed         = "failed"
)

type queueStore interface {
	GetDueJobs(ctx context.Context, limit int) ([]model.NotificationJob, error)
	ClaimJob(ctx context.Context, id uuid.UUID) error
	MarkSent(ctx context.Context, id uuid.UUID) error
	ScheduleRetry(ctx context.Context, id uuid.UUID, attempts int, nextRetryAt time.Time, reason string) error
	MarkFailed(ctx context.Context, id uuid.UUID, attempts int, reason string) error
}

type endpointStore interface {
	Delete(ctx context.Context, id uuid.UUID) error
}

type logStore interface {
	Append(ctx context.Context, entry model.DeliveryLog) error
}

type settingsGate interface {
	Get(ctx context.Context) (model.Settings, error)
}

type recipientResolver interface {
	Resolve(ctx context.Context, job model.NotificationJob, s model.Settings) ([]model.DeliveryEndpoint, error)
}

// JobResult is one job's terminal-for-this-cycle status.
type JobResult struct {
	ID     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}

// CycleResult summarizes one worker cycle.
type CycleResult struct {
	Processed []JobResult `json:"processed,omitempty"`
	Message   string      `json:"message,omitempty"`
}

// Worker owns all job state transitions. Adapters are selected per endpoint
// kind, so one job's fan-out may mix transports.
type Worker struct {
	jobs      queueStore
	endpoints endpointStore
	logs      logStore
	settings  settingsGate
	resolver  recipientResolver
	adapters  map[string]delivery.Adapter

	maxAttempts int
}

// NewWorker creates a worker over the given collaborators. A non-positive
// maxAttempts falls back to DefaultMaxAttempts.
func NewWorker(
	jobs queueStore,
	endpoints endpointStore,
	logs logStore,
	settings settingsGate,
	resolver recipientResolver,
	adapters map[string]delivery.Adapter,
	maxAttempts int,
) *Worker {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	return &Worker{
		jobs:        jobs,
		endpoints:   endpoints,
		logs:        logs,
		settings:    settings,
		resolver:    resolver,
		adapters:    adapters,
		maxAttempts: maxAttempts,
	}
}

// RunCycle runs one processing cycle to completion: consult the settings
// gate, claim up to batchSize due jobs and drive each of them into a
// well-defined state. Per-job failures never abort the batch; only a settings
// or batch-query failure, before anything is claimed, surfaces to the caller.
//
// Overlapping cycles are safe: the claim is a conditional update, so each job
// is won by exactly one caller and losers skip it.
func (w *Worker) RunCycle(ctx context.Context, batchSize int) (CycleResult, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	s, err := w.settings.Get(ctx)
	if err != nil {
		return CycleResult{}, fmt.Errorf("get settings: %w", err)
	}

	if !s.NotificationsEnabled {
		return CycleResult{Message: "notifications disabled"}, nil
	}

	jobs, err := w.jobs.GetDueJobs(ctx, batchSize)
	if err != nil {
		return CycleResult{}, fmt.Errorf("get due jobs: %w", err)
	}

	if len(jobs) == 0 {
		return CycleResult{Message: "no items"}, nil
	}

	var results []JobResult

	for _, job := range jobs {
		// A disabled channel leaves its jobs untouched in the queue.
		if !s.ChannelEnabled(job.Channel) {
			zlog.Logger.Printf("job %s: channel %s disabled, skipping", job.ID, job.Channel)
			continue
		}

		if err := w.jobs.ClaimJob(ctx, job.ID); err != nil {
			if errors.Is(err, queue.ErrAlreadyTaken) {
				zlog.Logger.Printf("job %s: claimed by another worker, skipping", job.ID)
				continue
			}

			zlog.Logger.Error().Err(err).Str("id", job.ID.String()).Msg("failed to claim job")
			continue
		}

		status := w.processJob(ctx, job, s)
		results = append(results, JobResult{ID: job.ID, Status: status})
	}

	return CycleResult{Processed: results}, nil
}

// processJob delivers one claimed job and records its new state. Every error
// path collapses into the retry policy; nothing propagates.
func (w *Worker) processJob(ctx context.Context, job model.NotificationJob, s model.Settings) string {
	endpoints, err := w.resolver.Resolve(ctx, job, s)
	if err != nil {
		return w.failJob(ctx, job, fmt.Sprintf("resolve recipients: %v", err))
	}

	if len(endpoints) == 0 {
		// Recoverable: a recipient may subscribe before the next attempt.
		return w.failJob(ctx, job, "no recipients")
	}

	msg, err := render.Render(job)
	if err != nil {
		return w.failJob(ctx, job, fmt.Sprintf("render message: %v", err))
	}

	outcomes := w.fanOut(ctx, endpoints, msg)

	allOK := true
	var reason string

	for i, out := range outcomes {
		ep := endpoints[i]

		if out.OK {
			w.appendLog(ctx, job.ID, ep.Address, model.LogSuccess, "delivered")
			continue
		}

		allOK = false
		detail := "send failed"
		if out.Err != nil {
			detail = out.Err.Error()
		}
		if reason == "" {
			reason = detail
		}

		w.appendLog(ctx, job.ID, ep.Address, model.LogFailure, detail)

		// Self-healing: a gone endpoint is pruned so later attempts skip it.
		// Synthesized endpoints have no row to delete.
		if out.Permanent && ep.ID != uuid.Nil {
			if err := w.endpoints.Delete(ctx, ep.ID); err != nil {
				zlog.Logger.Error().Err(err).Str("endpoint", ep.ID.String()).Msg("failed to delete dead endpoint")
			} else {
				zlog.Logger.Printf("job %s: deleted dead endpoint %s", job.ID, ep.ID)
			}
		}
	}

	if allOK {
		if err := w.jobs.MarkSent(ctx, job.ID); err != nil {
			zlog.Logger.Error().Err(err).Str("id", job.ID.String()).Msg("failed to mark job sent")
		}

		return ResultSent
	}

	return w.failJob(ctx, job, reason)
}

// fanOut sends the message to every endpoint concurrently and joins on all
// outcomes. The endpoints of one job form a single logical delivery unit, so
// the job waits for the slowest send.
func (w *Worker) fanOut(ctx context.Context, endpoints []model.DeliveryEndpoint, msg render.Message) []delivery.Outcome {
	outcomes := make([]delivery.Outcome, len(endpoints))

	var wg sync.WaitGroup
	wg.Add(len(endpoints))

	for i, ep := range endpoints {
		go func(i int, ep model.DeliveryEndpoint) {
			defer wg.Done()

			adapter, ok := w.adapters[ep.Kind]
			if !ok {
				outcomes[i] = delivery.Outcome{Err: fmt.Errorf("no adapter for endpoint kind %q", ep.Kind)}
				return
			}

			outcomes[i] = adapter.Send(ctx, ep, msg)
		}(i, ep)
	}

	wg.Wait()

	return outcomes
}

// failJob applies the retry policy after a failed attempt: either the job is
// rescheduled with backoff or, when attempts are exhausted, parked as failed.
func (w *Worker) failJob(ctx context.Context, job model.NotificationJob, reason string) string {
	attempts := job.Attempts + 1

	status, nextRetryAt := NextAttempt(attempts, w.maxAttempts, time.Now())
	if status == model.StatusFailed {
		if err := w.jobs.MarkFailed(ctx, job.ID, attempts, reason); err != nil {
			zlog.Logger.Error().Err(err).Str("id", job.ID.String()).Msg("failed to mark job failed")
		}

		zlog.Logger.Printf("job %s failed after %d attempts: %s", job.ID, attempts, reason)

		return ResultFailed
	}

	if err := w.jobs.ScheduleRetry(ctx, job.ID, attempts, nextRetryAt, reason); err != nil {
		zlog.Logger.Error().Err(err).Str("id", job.ID.String()).Msg("failed to schedule retry")
	}

	return ResultRetryScheduled
}

func (w *Worker) appendLog(ctx context.Context, jobID uuid.UUID, address, status, detail string) {
	entry := model.DeliveryLog{
		JobID:   jobID,
		Address: address,
		Status:  status,
		Detail:  detail,
	}

	if err := w.logs.Append(ctx, entry); err != nil {
		zlog.Logger.Error().Err(err).Str("id", jobID.String()).Msg("failed to append delivery log")
	}
}
