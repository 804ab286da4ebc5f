package queue

import (
	"context"
	"database/sql"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/wb-go/wbf/dbpg"

	"github.com/opticstore/notify-queue/internal/model"
)

func setupMockDB(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open mock db: %v", err)
	}

	wrappedDB := &dbpg.DB{Master: db}
	repo := NewRepository(wrappedDB)

	return repo, mock
}

func TestCreateJob(t *testing.T) {
	repo, mock := setupMockDB(t)

	jobID := uuid.New()
	job := model.NotificationJob{
		Type:            model.TypeOrderNew,
		Channel:         model.ChannelPush,
		RecipientUserID: uuid.NullUUID{UUID: uuid.New(), Valid: true},
		Payload:         json.RawMessage(`{"order_id":"42"}`),
	}

	mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO notification_jobs (
		    type, channel, recipient_user_id, recipient_phone, payload, status, next_retry_at
		) VALUES ($1, $2, $3, $4, $5, 'pending', now())
		RETURNING id;
    `)).
		WithArgs(job.Type, job.Channel, job.RecipientUserID, job.RecipientPhone, []byte(job.Payload)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(jobID))

	id, err := repo.CreateJob(context.Background(), job)
	assert.NoError(t, err)
	assert.Equal(t, jobID, id)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimJob(t *testing.T) {
	repo, mock := setupMockDB(t)

	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(`
		UPDATE notification_jobs
		SET status = 'processing', updated_at = now()
		WHERE id = $1 AND status = 'pending';
    `)).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.ClaimJob(context.Background(), id)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())

	// Losing the race leaves zero affected rows.
	mock.ExpectExec(regexp.QuoteMeta(`
		UPDATE notification_jobs
		SET status = 'processing', updated_at = now()
		WHERE id = $1 AND status = 'pending';
    `)).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.ClaimJob(context.Background(), id)
	assert.ErrorIs(t, err, ErrAlreadyTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkSent(t *testing.T) {
	repo, mock := setupMockDB(t)

	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(`
		UPDATE notification_jobs
		SET status = 'sent', last_error = NULL, updated_at = now()
		WHERE id = $1 AND status = 'processing';
    `)).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.MarkSent(context.Background(), id)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())

	mock.ExpectExec(regexp.QuoteMeta(`
		UPDATE notification_jobs
		SET status = 'sent', last_error = NULL, updated_at = now()
		WHERE id = $1 AND status = 'processing';
    `)).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.MarkSent(context.Background(), id)
	assert.ErrorIs(t, err, ErrJobNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRetry(t *testing.T) {
	repo, mock := setupMockDB(t)

	id := uuid.New()
	nextRetryAt := time.Now().Add(2 * time.Minute)

	mock.ExpectExec(regexp.QuoteMeta(`
		UPDATE notification_jobs
		SET status = 'pending', attempts = $2, next_retry_at = $3, last_error = $4, updated_at = now()
		WHERE id = $1 AND status = 'processing';
    `)).
		WithArgs(id, 1, nextRetryAt, "no recipients").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.ScheduleRetry(context.Background(), id, 1, nextRetryAt, "no recipients")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkFailed(t *testing.T) {
	repo, mock := setupMockDB(t)

	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(`
		UPDATE notification_jobs
		SET status = 'failed', attempts = $2, last_error = $3, updated_at = now()
		WHERE id = $1 AND status = 'processing';
    `)).
		WithArgs(id, 5, "push endpoint gone: 410 Gone").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.MarkFailed(context.Background(), id, 5, "push endpoint gone: 410 Gone")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDueJobs(t *testing.T) {
	repo, mock := setupMockDB(t)

	now := time.Now()
	j1 := uuid.New()
	j2 := uuid.New()

	rows := sqlmock.NewRows([]string{
		"id", "type", "channel", "recipient_user_id", "recipient_phone", "payload",
		"status", "attempts", "last_error", "next_retry_at", "created_at", "updated_at",
	}).
		AddRow(j1, model.TypeOrderNew, model.ChannelPush, nil, "", []byte(`{}`), model.StatusPending, 0, "", now, now, now).
		AddRow(j2, model.TypeBookingNew, model.ChannelWhatsApp, nil, "+79990000000", []byte(`{}`), model.StatusPending, 2, "timeout", now, now, now)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, type, channel, recipient_user_id, recipient_phone, payload,
		       status, attempts, COALESCE(last_error, ''), next_retry_at, created_at, updated_at
		FROM notification_jobs
		WHERE status = 'pending' AND next_retry_at <= now()
		ORDER BY created_at ASC
		LIMIT $1;
    `)).
		WithArgs(10).
		WillReturnRows(rows)

	jobs, err := repo.GetDueJobs(context.Background(), 10)
	assert.NoError(t, err)
	assert.Len(t, jobs, 2)
	assert.Equal(t, j1, jobs[0].ID)
	assert.Equal(t, 2, jobs[1].Attempts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetJobStatusByID(t *testing.T) {
	repo, mock := setupMockDB(t)

	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT status
		FROM notification_jobs
		WHERE id = $1;
    `)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(model.StatusSent))

	status, err := repo.GetJobStatusByID(context.Background(), id)
	assert.NoError(t, err)
	assert.Equal(t, model.StatusSent, status)
	assert.NoError(t, mock.ExpectationsWereMet())

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT status
		FROM notification_jobs
		WHERE id = $1;
    `)).
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)

	status, err = repo.GetJobStatusByID(context.Background(), id)
	assert.ErrorIs(t, err, ErrJobNotFound)
	assert.Equal(t, "", status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAllJobs(t *testing.T) {
	repo, mock := setupMockDB(t)

	now := time.Now()

	rows := sqlmock.NewRows([]string{
		"id", "type", "channel", "recipient_user_id", "recipient_phone", "payload",
		"status", "attempts", "last_error", "next_retry_at", "created_at", "updated_at",
	}).
		AddRow(uuid.New(), model.TypeQuestionNew, model.ChannelPush, nil, "", []byte(`{}`), model.StatusSent, 1, "", now, now, now)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, type, channel, recipient_user_id, recipient_phone, payload,
		       status, attempts, COALESCE(last_error, ''), next_retry_at, created_at, updated_at
		FROM notification_jobs
		ORDER BY created_at DESC;
    `)).WillReturnRows(rows)

	list, err := repo.GetAllJobs(context.Background())
	assert.NoError(t, err)
	assert.Len(t, list, 1)
	assert.NoError(t, mock.ExpectationsWereMet())

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, type, channel, recipient_user_id, recipient_phone, payload,
		       status, attempts, COALESCE(last_error, ''), next_retry_at, created_at, updated_at
		FROM notification_jobs
		ORDER BY created_at DESC;
    `)).WillReturnRows(sqlmock.NewRows([]string{
		"id", "type", "channel", "recipient_user_id", "recipient_phone", "payload",
		"status", "attempts", "last_error", "next_retry_at", "created_at", "updated_at",
	}))

	_, err = repo.GetAllJobs(context.Background())
	assert.ErrorIs(t, err, ErrNoJobsFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
