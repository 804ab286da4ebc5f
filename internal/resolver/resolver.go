// Package resolver maps a job's addressing fields to the concrete set of
// delivery endpoints the worker fans out to.
package resolver

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/opticstore/notify-queue/internal/model"
)

type endpointStore interface {
	GetByUser(ctx context.Context, userID uuid.UUID, kind string) ([]model.DeliveryEndpoint, error)
	GetAdminScoped(ctx context.Context, kind string) ([]model.DeliveryEndpoint, error)
}

// Resolver resolves jobs against the subscription store and the settings
// singleton. An unresolved job yields an empty list, never an error; errors
// only surface when the store itself fails.
type Resolver struct {
	endpoints endpointStore
}

// New creates a resolver over the given subscription store.
func New(endpoints endpointStore) *Resolver {
	return &Resolver{endpoints: endpoints}
}

// Resolve returns the endpoints a job should be delivered to.
//
// Chat jobs carrying a phone number are self-addressed: the phone is the
// endpoint and no lookup happens. Broadcast chat and email jobs go to the
// admin contact address from settings. Everything else is resolved through
// the subscription store, filtered to admin-flagged rows for broadcasts.
func (r *Resolver) Resolve(ctx context.Context, job model.NotificationJob, s model.Settings) ([]model.DeliveryEndpoint, error) {
	switch job.Channel {
	case model.ChannelWhatsApp:
		if job.RecipientPhone != "" {
			return []model.DeliveryEndpoint{synthetic(model.EndpointWhatsApp, job.RecipientPhone)}, nil
		}

		if job.RecipientUserID.Valid {
			return r.endpoints.GetByUser(ctx, job.RecipientUserID.UUID, model.EndpointWhatsApp)
		}

		if s.AdminPhone == "" {
			return nil, nil
		}

		return []model.DeliveryEndpoint{synthetic(model.EndpointWhatsApp, s.AdminPhone)}, nil

	case model.ChannelEmail:
		if job.RecipientUserID.Valid {
			return r.endpoints.GetByUser(ctx, job.RecipientUserID.UUID, model.EndpointEmail)
		}

		if s.AdminEmail == "" {
			return nil, nil
		}

		return []model.DeliveryEndpoint{synthetic(model.EndpointEmail, s.AdminEmail)}, nil

	case model.ChannelPush:
		if job.RecipientUserID.Valid {
			return r.endpoints.GetByUser(ctx, job.RecipientUserID.UUID, model.EndpointPush)
		}

		return r.endpoints.GetAdminScoped(ctx, model.EndpointPush)

	default:
		return nil, fmt.Errorf("unknown channel %q", job.Channel)
	}
}

// synthetic builds an in-memory endpoint for addresses that do not live in
// the subscription table. The nil ID marks it as not deletable.
func synthetic(kind, address string) model.DeliveryEndpoint {
	return model.DeliveryEndpoint{
		Kind:    kind,
		Address: address,
	}
}
