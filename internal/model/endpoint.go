package model

import (
	"time"

	"github.com/google/uuid"
)

// Endpoint kinds mirror the delivery channels: each subscription row is
// addressable by exactly one transport.
const (
	EndpointPush     = "push"
	EndpointWhatsApp = "whatsapp"
	EndpointEmail    = "email"
)

// DeliveryEndpoint is one concrete destination for a recipient: a browser push
// subscription, a phone number, or an email address. Push rows carry the
// subscription URL in Address plus the client key pair; chat and email rows
// carry only Address.
//
// Endpoints resolved from settings (the admin contact address for broadcast
// chat jobs) are synthesized in memory and have a nil ID; the worker never
// deletes those.
type DeliveryEndpoint struct {
	ID        uuid.UUID     `json:"id"`
	UserID    uuid.NullUUID `json:"user_id,omitempty"` // owning user; unset for globally scoped rows
	Kind      string        `json:"kind"`
	Address   string        `json:"address"` // push endpoint URL, phone number, or email address
	P256dh    string        `json:"p256dh,omitempty"`
	Auth      string        `json:"auth,omitempty"`
	IsAdmin   bool          `json:"is_admin"` // included in broadcast resolution
	CreatedAt time.Time     `json:"created_at"`
}
