package model

import (
	"time"

	"github.com/google/uuid"
)

// Outcomes recorded in the audit log.
const (
	LogSuccess = "success"
	LogFailure = "failure"
)

// DeliveryLog is one append-only audit record of a single delivery attempt to
// a single endpoint. Rows are written once and never updated.
type DeliveryLog struct {
	ID        int64     `json:"id"`
	JobID     uuid.UUID `json:"job_id"`
	Address   string    `json:"address"` // recipient address the attempt targeted
	Status    string    `json:"status"`  // "success" or "failure"
	Detail    string    `json:"detail"`  // response summary or failure reason
	CreatedAt time.Time `json:"created_at"`
}
