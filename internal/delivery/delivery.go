// Package delivery defines the transport capability the worker fans out to
// and its concrete adapters: web push, a WhatsApp-style chat gateway, and
// SMTP email. Adapters never leak transport errors as Go errors to abort the
// batch; every send collapses into an Outcome.
package delivery

import (
	"context"

	"github.com/opticstore/notify-queue/internal/model"
	"github.com/opticstore/notify-queue/internal/render"
)

// Outcome is the result of transmitting one message to one endpoint.
// Permanent means the endpoint itself is dead (the transport answered with a
// gone-class status) and its subscription row should be deleted; any other
// failure is transient and only affects retry scheduling.
type Outcome struct {
	OK        bool
	Permanent bool
	Err       error
}

// Adapter transmits one rendered message to one endpoint.
type Adapter interface {
	Send(ctx context.Context, ep model.DeliveryEndpoint, msg render.Message) Outcome
}
