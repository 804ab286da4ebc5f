// Package render turns a job's type and payload into the human-readable
// message handed to the delivery adapters. Template selection only, no
// business logic.
package render

import (
	"encoding/json"
	"fmt"

	"github.com/opticstore/notify-queue/internal/model"
)

// Message is the rendered notification content. Push adapters serialize both
// fields; chat and email adapters use Title as the subject line where the
// transport has one.
type Message struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type orderPayload struct {
	OrderID      string  `json:"order_id"`
	CustomerName string  `json:"customer_name"`
	Total        float64 `json:"total"`
}

type bookingPayload struct {
	Name    string `json:"name"`
	Date    string `json:"date"`
	Service string `json:"service"`
}

type questionPayload struct {
	Name     string `json:"name"`
	Question string `json:"question"`
}

type genericPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Render builds the outbound message for a job. An unparseable payload or an
// unknown job type is an error; the worker treats it like any other delivery
// failure.
func Render(job model.NotificationJob) (Message, error) {
	switch job.Type {
	case model.TypeOrderNew:
		var p orderPayload
		if err := json.Unmarshal(job.Payload, &p); err != nil {
			return Message{}, fmt.Errorf("unmarshal order payload: %w", err)
		}

		return Message{
			Title: "New order",
			Body:  fmt.Sprintf("New order #%s from %s, total %.2f", p.OrderID, p.CustomerName, p.Total),
		}, nil

	case model.TypeBookingNew:
		var p bookingPayload
		if err := json.Unmarshal(job.Payload, &p); err != nil {
			return Message{}, fmt.Errorf("unmarshal booking payload: %w", err)
		}

		body := fmt.Sprintf("New booking from %s on %s", p.Name, p.Date)
		if p.Service != "" {
			body = fmt.Sprintf("New booking from %s on %s: %s", p.Name, p.Date, p.Service)
		}

		return Message{Title: "New booking", Body: body}, nil

	case model.TypeQuestionNew:
		var p questionPayload
		if err := json.Unmarshal(job.Payload, &p); err != nil {
			return Message{}, fmt.Errorf("unmarshal question payload: %w", err)
		}

		return Message{
			Title: "New question",
			Body:  fmt.Sprintf("%s asks: %s", p.Name, p.Question),
		}, nil

	case model.TypeGeneric:
		var p genericPayload
		if err := json.Unmarshal(job.Payload, &p); err != nil {
			return Message{}, fmt.Errorf("unmarshal generic payload: %w", err)
		}

		if p.Title == "" && p.Body == "" {
			return Message{}, fmt.Errorf("generic payload carries no content")
		}

		return Message{Title: p.Title, Body: p.Body}, nil

	default:
		return Message{}, fmt.Errorf("unknown job type %q", job.Type)
	}
}
