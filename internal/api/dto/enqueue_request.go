package dto

import "encoding/json"

// EnqueueRequest is the body of POST /api/queue. RecipientUserID and
// RecipientPhone are both optional; a request carrying neither enqueues a
// broadcast to the admin pool.
type EnqueueRequest struct {
	Type            string          `json:"type" validate:"required,oneof=order_new booking_new question_new generic"`
	Channel         string          `json:"channel" validate:"required,oneof=push whatsapp email"`
	RecipientUserID string          `json:"recipient_user_id" validate:"omitempty,uuid"`
	RecipientPhone  string          `json:"recipient_phone" validate:"omitempty,e164"`
	Payload         json.RawMessage `json:"payload" validate:"required"`
}
