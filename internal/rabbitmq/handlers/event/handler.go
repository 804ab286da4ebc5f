package event

import (
	"context"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/opticstore/notify-queue/internal/model"
	"github.com/opticstore/notify-queue/internal/rabbitmq/queue"
)

//go:generate mockgen -source=handler.go -destination=../../../mocks/rabbitmq/handlers/event/mock.go -package=mocks

type enqueuer interface {
	EnqueueJob(ctx context.Context, strategy retry.Strategy, job model.NotificationJob) (uuid.UUID, error)
}

// Handler converts storefront events into queued notification jobs, one per
// channel configured for the event type. It is an enqueue client of the
// pipeline: it only ever inserts pending rows.
type Handler struct {
	service enqueuer
}

func NewHandler(svc enqueuer) *Handler {
	return &Handler{
		service: svc,
	}
}

// channelsFor maps an event type to the channels its notification goes out
// on. Storefront events notify the shop admins on every channel they watch;
// anything unrecognized becomes a generic push.
func channelsFor(eventType string) []string {
	switch eventType {
	case model.TypeOrderNew, model.TypeBookingNew, model.TypeQuestionNew:
		return []string{model.ChannelPush, model.ChannelWhatsApp}
	default:
		return []string{model.ChannelPush}
	}
}

// HandleEvent enqueues one job per channel for the event. Enqueue failures
// are logged and dropped; the storefront event stream is not the place to
// retry, the queue itself is.
func (h *Handler) HandleEvent(ctx context.Context, msg queue.EventMessage, strategy retry.Strategy) {
	jobType := msg.Type
	switch jobType {
	case model.TypeOrderNew, model.TypeBookingNew, model.TypeQuestionNew:
	default:
		jobType = model.TypeGeneric
	}

	var userID uuid.NullUUID
	if msg.UserID != "" {
		parsed, err := uuid.Parse(msg.UserID)
		if err != nil {
			zlog.Logger.Warn().Err(err).Str("user_id", msg.UserID).Msg("event carries invalid user id, treating as broadcast")
		} else {
			userID = uuid.NullUUID{UUID: parsed, Valid: true}
		}
	}

	for _, channel := range channelsFor(jobType) {
		job := model.NotificationJob{
			Type:            jobType,
			Channel:         channel,
			RecipientUserID: userID,
			RecipientPhone:  msg.Phone,
			Payload:         msg.Payload,
			Status:          model.StatusPending,
		}

		id, err := h.service.EnqueueJob(ctx, strategy, job)
		if err != nil {
			zlog.Logger.Error().Err(err).Str("type", jobType).Str("channel", channel).Msg("failed to enqueue job for event")
			continue
		}

		zlog.Logger.Printf("event %s: enqueued job %s on %s", jobType, id, channel)
	}
}
