// Package queue wires the storefront's domain event stream into the
// notification pipeline: events published by the shop backend are consumed
// here and turned into queued notification jobs.
package queue

import (
	"encoding/json"
	"fmt"

	"github.com/wb-go/wbf/rabbitmq"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"
)

const (
	ExchangeName = "storefront-events"
	QueueName    = "notify-events"
	RoutingKey   = "notifications"
)

// EventMessage is one domain event as published by the storefront. Payload is
// passed through to the job untouched; rendering happens at delivery time.
type EventMessage struct {
	Type    string          `json:"type"`
	UserID  string          `json:"user_id,omitempty"`
	Phone   string          `json:"phone,omitempty"`
	Payload json.RawMessage `json:"payload"`
}

// EventQueue consumes storefront events from RabbitMQ.
type EventQueue struct {
	Consumer *rabbitmq.Consumer
}

// NewEventQueue declares the events exchange and queue and binds a consumer.
func NewEventQueue(ch *rabbitmq.Channel) (*EventQueue, error) {
	exchange := rabbitmq.NewExchange(ExchangeName, "direct")
	if err := exchange.BindToChannel(ch); err != nil {
		return nil, fmt.Errorf("failed to bind to exchange: %w", err)
	}

	qm := rabbitmq.NewQueueManager(ch)

	q, err := qm.DeclareQueue(QueueName, rabbitmq.QueueConfig{Durable: true})
	if err != nil {
		return nil, fmt.Errorf("failed to declare events queue: %w", err)
	}

	if err := ch.QueueBind(q.Name, RoutingKey, exchange.Name(), false, nil); err != nil {
		return nil, fmt.Errorf("failed to bind the exchange to the events queue: %w", err)
	}

	cons := rabbitmq.NewConsumer(ch, rabbitmq.NewConsumerConfig(q.Name))

	return &EventQueue{Consumer: cons}, nil
}

// Consume decodes incoming events onto out until the underlying consumer
// stops.
func (q *EventQueue) Consume(out chan<- EventMessage, strategy retry.Strategy) error {
	msgChan := make(chan []byte)

	go func() {
		for m := range msgChan {
			var msg EventMessage
			if err := json.Unmarshal(m, &msg); err != nil {
				zlog.Logger.Error().Err(err).Msg("failed to unmarshal event")
				continue
			}

			out <- msg
		}
	}()

	return q.Consumer.ConsumeWithRetry(msgChan, strategy)
}
