package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Job statuses. Transitions are monotonic: pending -> processing -> sent|failed,
// or processing -> pending again when a retry is scheduled. A job that reached
// sent or failed is terminal and is never mutated again.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusSent       = "sent"
	StatusFailed     = "failed"
)

// Job types. The type selects the message template and the default recipient
// scope (a broadcast to admin subscriptions unless a specific user is set).
const (
	TypeOrderNew    = "order_new"
	TypeBookingNew  = "booking_new"
	TypeQuestionNew = "question_new"
	TypeGeneric     = "generic"
)

// Delivery channels a job can be routed through.
const (
	ChannelPush     = "push"
	ChannelWhatsApp = "whatsapp"
	ChannelEmail    = "email"
)

// NotificationJob represents one queued notification awaiting delivery.
type NotificationJob struct {
	ID              uuid.UUID       `json:"id"`                          // unique identifier, immutable
	Type            string          `json:"type"`                        // category, e.g. "order_new"
	Channel         string          `json:"channel"`                     // transport class, e.g. "push"
	RecipientUserID uuid.NullUUID   `json:"recipient_user_id,omitempty"` // specific-user target; unset means broadcast to admins
	RecipientPhone  string          `json:"recipient_phone,omitempty"`   // direct address override for chat jobs
	Payload         json.RawMessage `json:"payload"`                     // fields needed to render the message
	Status          string          `json:"status"`                      // current state, see status constants
	Attempts        int             `json:"attempts"`                    // delivery attempts made so far
	LastError       string          `json:"last_error,omitempty"`        // last failure reason, cleared on success
	NextRetryAt     time.Time       `json:"next_retry_at"`               // job must not be claimed before this time
	CreatedAt       time.Time       `json:"created_at"`                  // immutable creation timestamp
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Broadcast reports whether the job targets the admin pool rather than a
// specific user.
func (j NotificationJob) Broadcast() bool {
	return !j.RecipientUserID.Valid
}
