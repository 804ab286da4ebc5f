package queue

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/dbpg"

	"github.com/opticstore/notify-queue/internal/model"
)

var (
	ErrJobNotFound  = errors.New("notification job not found")
	ErrNoJobsFound  = errors.New("no notification jobs found")
	ErrAlreadyTaken = errors.New("notification job already claimed")
)

// Repository provides access to the notification_jobs table.
type Repository struct {
	db *dbpg.DB
}

// NewRepository creates a new queue repository.
func NewRepository(db *dbpg.DB) *Repository {
	return &Repository{db: db}
}

// CreateJob inserts a new pending job into the queue and returns its ID.
// Attempts start at zero and next_retry_at at now, so the job is due
// immediately.
func (r *Repository) CreateJob(ctx context.Context, job model.NotificationJob) (uuid.UUID, error) {
	query := `
		INSERT INTO notification_jobs (
		    type, channel, recipient_user_id, recipient_phone, payload, status, next_retry_at
		) VALUES ($1, $2, $3, $4, $5, 'pending', now())
		RETURNING id;
    `

	err := r.db.QueryRowContext(
		ctx, query, job.Type, job.Channel, job.RecipientUserID, job.RecipientPhone, job.Payload,
	).Scan(&job.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create job: %w", err)
	}

	return job.ID, nil
}

// GetDueJobs returns up to limit pending jobs whose retry time has passed,
// oldest-created first.
func (r *Repository) GetDueJobs(ctx context.Context, limit int) ([]model.NotificationJob, error) {
	query := `
		SELECT id, type, channel, recipient_user_id, recipient_phone, payload,
		       status, attempts, COALESCE(last_error, ''), next_retry_at, created_at, updated_at
		FROM notification_jobs
		WHERE status = 'pending' AND next_retry_at <= now()
		ORDER BY created_at ASC
		LIMIT $1;
    `

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get due jobs: %w", err)
	}
	defer rows.Close()

	var jobs []model.NotificationJob
	for rows.Next() {
		var j model.NotificationJob
		if err := rows.Scan(
			&j.ID, &j.Type, &j.Channel, &j.RecipientUserID, &j.RecipientPhone, &j.Payload,
			&j.Status, &j.Attempts, &j.LastError, &j.NextRetryAt, &j.CreatedAt, &j.UpdatedAt,
		); err != nil {
			return nil, err
		}

		jobs = append(jobs, j)
	}

	return jobs, rows.Err()
}

// ClaimJob atomically transitions a job from pending to processing. The
// status guard in the WHERE clause makes the claim a compare-and-swap: when
// two workers race, only one sees an affected row and the loser gets
// ErrAlreadyTaken.
func (r *Repository) ClaimJob(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE notification_jobs
		SET status = 'processing', updated_at = now()
		WHERE id = $1 AND status = 'pending';
    `

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to claim job: %w", err)
	}

	rows, _ := res.RowsAffected()

	if rows == 0 {
		return ErrAlreadyTaken
	}

	return nil
}

// MarkSent finalizes a successfully delivered job and clears its last error.
func (r *Repository) MarkSent(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE notification_jobs
		SET status = 'sent', last_error = NULL, updated_at = now()
		WHERE id = $1 AND status = 'processing';
    `

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark job sent: %w", err)
	}

	rows, _ := res.RowsAffected()

	if rows == 0 {
		return ErrJobNotFound
	}

	return nil
}

// ScheduleRetry puts a failed job back into the pending state with an
// incremented attempt count and the next retry time computed by the policy.
func (r *Repository) ScheduleRetry(ctx context.Context, id uuid.UUID, attempts int, nextRetryAt time.Time, reason string) error {
	query := `
		UPDATE notification_jobs
		SET status = 'pending', attempts = $2, next_retry_at = $3, last_error = $4, updated_at = now()
		WHERE id = $1 AND status = 'processing';
    `

	res, err := r.db.ExecContext(ctx, query, id, attempts, nextRetryAt, reason)
	if err != nil {
		return fmt.Errorf("failed to schedule retry: %w", err)
	}

	rows, _ := res.RowsAffected()

	if rows == 0 {
		return ErrJobNotFound
	}

	return nil
}

// MarkFailed moves a job to the terminal failed state after its retries are
// exhausted.
func (r *Repository) MarkFailed(ctx context.Context, id uuid.UUID, attempts int, reason string) error {
	query := `
		UPDATE notification_jobs
		SET status = 'failed', attempts = $2, last_error = $3, updated_at = now()
		WHERE id = $1 AND status = 'processing';
    `

	res, err := r.db.ExecContext(ctx, query, id, attempts, reason)
	if err != nil {
		return fmt.Errorf("failed to mark job failed: %w", err)
	}

	rows, _ := res.RowsAffected()

	if rows == 0 {
		return ErrJobNotFound
	}

	return nil
}

// GetJobStatusByID retrieves the status of a job by its ID.
func (r *Repository) GetJobStatusByID(ctx context.Context, id uuid.UUID) (string, error) {
	query := `
		SELECT status
		FROM notification_jobs
		WHERE id = $1;
    `

	var status string
	err := r.db.QueryRowContext(ctx, query, id).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrJobNotFound
		}

		return "", fmt.Errorf("failed to get job status: %w", err)
	}

	return status, nil
}

// GetAllJobs retrieves all jobs ordered by creation time descending.
func (r *Repository) GetAllJobs(ctx context.Context) ([]model.NotificationJob, error) {
	query := `
		SELECT id, type, channel, recipient_user_id, recipient_phone, payload,
		       status, attempts, COALESCE(last_error, ''), next_retry_at, created_at, updated_at
		FROM notification_jobs
		ORDER BY created_at DESC;
    `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get all jobs: %w", err)
	}
	defer rows.Close()

	var jobs []model.NotificationJob
	for rows.Next() {
		var j model.NotificationJob
		if err := rows.Scan(
			&j.ID, &j.Type, &j.Channel, &j.RecipientUserID, &j.RecipientPhone, &j.Payload,
			&j.Status, &j.Attempts, &j.LastError, &j.NextRetryAt, &j.CreatedAt, &j.UpdatedAt,
		); err != nil {
			return nil, err
		}

		jobs = append(jobs, j)
	}

	if len(jobs) == 0 {
		return nil, ErrNoJobsFound
	}

	return jobs, nil
}
