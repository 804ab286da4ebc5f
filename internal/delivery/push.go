package delivery

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"

	"github.com/opticstore/notify-queue/internal/model"
	"github.com/opticstore/notify-queue/internal/render"
)

// PushAdapter delivers messages to browser push subscriptions using VAPID
// authentication. The endpoint carries the subscription URL and the client
// key pair (p256dh + auth).
type PushAdapter struct {
	subscriber      string // contact address sent to the push service
	vapidPublicKey  string
	vapidPrivateKey string
	ttl             int
}

// NewPushAdapter creates a push adapter with the given VAPID credentials.
func NewPushAdapter(subscriber, publicKey, privateKey string, ttl int) *PushAdapter {
	return &PushAdapter{
		subscriber:      subscriber,
		vapidPublicKey:  publicKey,
		vapidPrivateKey: privateKey,
		ttl:             ttl,
	}
}

// Send pushes the message to one subscription. A 404 or 410 from the push
// service means the subscription is gone for good and is reported as a
// permanent failure so the worker can prune it.
func (a *PushAdapter) Send(ctx context.Context, ep model.DeliveryEndpoint, msg render.Message) Outcome {
	payload, err := json.Marshal(msg)
	if err != nil {
		return Outcome{Err: fmt.Errorf("marshal push payload: %w", err)}
	}

	sub := &webpush.Subscription{
		Endpoint: ep.Address,
		Keys: webpush.Keys{
			P256dh: ep.P256dh,
			Auth:   ep.Auth,
		},
	}

	resp, err := webpush.SendNotificationWithContext(ctx, payload, sub, &webpush.Options{
		Subscriber:      a.subscriber,
		VAPIDPublicKey:  a.vapidPublicKey,
		VAPIDPrivateKey: a.vapidPrivateKey,
		TTL:             a.ttl,
	})
	if err != nil {
		return Outcome{Err: fmt.Errorf("send push: %w", err)}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return Outcome{Permanent: true, Err: fmt.Errorf("push endpoint gone: %s", resp.Status)}
	case resp.StatusCode >= http.StatusBadRequest:
		return Outcome{Err: fmt.Errorf("push service error: %s", resp.Status)}
	}

	return Outcome{OK: true}
}
