package deliverylog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/dbpg"

	"github.com/opticstore/notify-queue/internal/model"
)

// Repository appends rows to the notification_log audit table. The table is
// write-once: nothing in this service ever updates or deletes a log row.
type Repository struct {
	db *dbpg.DB
}

// NewRepository creates a new delivery log repository.
func NewRepository(db *dbpg.DB) *Repository {
	return &Repository{db: db}
}

// Append writes one delivery attempt outcome.
func (r *Repository) Append(ctx context.Context, entry model.DeliveryLog) error {
	query := `
		INSERT INTO notification_log (job_id, address, status, detail)
		VALUES ($1, $2, $3, $4);
    `

	_, err := r.db.ExecContext(ctx, query, entry.JobID, entry.Address, entry.Status, entry.Detail)
	if err != nil {
		return fmt.Errorf("failed to append delivery log: %w", err)
	}

	return nil
}

// ByJob returns all attempt records for one job, oldest first.
func (r *Repository) ByJob(ctx context.Context, jobID uuid.UUID) ([]model.DeliveryLog, error) {
	query := `
		SELECT id, job_id, address, status, detail, created_at
		FROM notification_log
		WHERE job_id = $1
		ORDER BY created_at ASC;
    `

	rows, err := r.db.QueryContext(ctx, query, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to get delivery log: %w", err)
	}
	defer rows.Close()

	var entries []model.DeliveryLog
	for rows.Next() {
		var e model.DeliveryLog
		if err := rows.Scan(&e.ID, &e.JobID, &e.Address, &e.Status, &e.Detail, &e.CreatedAt); err != nil {
			return nil, err
		}

		entries = append(entries, e)
	}

	return entries, rows.Err()
}
