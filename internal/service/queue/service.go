package queue

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/opticstore/notify-queue/internal/model"
)

type jobRepository interface {
	CreateJob(context.Context, model.NotificationJob) (uuid.UUID, error)
	GetJobStatusByID(context.Context, uuid.UUID) (string, error)
	GetAllJobs(context.Context) ([]model.NotificationJob, error)
}

type cache interface {
	SetWithRetry(ctx context.Context, strategy retry.Strategy, key string, value interface{}) error
	GetWithRetry(ctx context.Context, strategy retry.Strategy, key string) (string, error)
}

type logRepository interface {
	ByJob(context.Context, uuid.UUID) ([]model.DeliveryLog, error)
}

// Service is the enqueue-side facade over the queue store: inserting jobs and
// answering status queries, with a Redis cache in front of the status lookups.
// All state transitions after the insert belong to the worker.
type Service struct {
	repo  jobRepository
	logs  logRepository
	cache cache
}

// NewService creates a queue service.
func NewService(repo jobRepository, logs logRepository, cache cache) *Service {
	return &Service{repo: repo, logs: logs, cache: cache}
}

// EnqueueJob inserts a new pending job. This is the sole way work enters the
// system; the worker picks the job up on its next cycle.
func (s *Service) EnqueueJob(ctx context.Context, strategy retry.Strategy, job model.NotificationJob) (uuid.UUID, error) {
	id, err := s.repo.CreateJob(ctx, job)
	if err != nil {
		return uuid.Nil, fmt.Errorf("create job: %w", err)
	}

	err = s.cache.SetWithRetry(ctx, strategy, id.String(), model.StatusPending)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to cache job status")
	}

	return id, nil
}

// GetJobStatusByID returns a job's current status, preferring the cache and
// falling back to the store on a miss.
func (s *Service) GetJobStatusByID(ctx context.Context, strategy retry.Strategy, id uuid.UUID) (string, error) {
	status, err := s.cache.GetWithRetry(ctx, strategy, id.String())
	if err != nil && !errors.Is(err, redis.Nil) {
		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to get job status from cache")
	}

	if err != nil {
		status, err = s.repo.GetJobStatusByID(ctx, id)
		if err != nil {
			return "", fmt.Errorf("get job status: %w", err)
		}

		err = s.cache.SetWithRetry(ctx, strategy, id.String(), status)
		if err != nil {
			zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to cache job status")
		}
	}

	return status, nil
}

// GetAllJobs returns every job in the queue, newest first.
func (s *Service) GetAllJobs(ctx context.Context) ([]model.NotificationJob, error) {
	jobs, err := s.repo.GetAllJobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("get all jobs: %w", err)
	}

	return jobs, nil
}

// GetDeliveryLog returns the per-endpoint attempt history of one job, oldest
// first.
func (s *Service) GetDeliveryLog(ctx context.Context, id uuid.UUID) ([]model.DeliveryLog, error) {
	entries, err := s.logs.ByJob(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get delivery log: %w", err)
	}

	return entries, nil
}
