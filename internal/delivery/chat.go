package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/opticstore/notify-queue/internal/model"
	"github.com/opticstore/notify-queue/internal/render"
)

// ChatAdapter delivers messages through a WhatsApp-style HTTP gateway. The
// endpoint address is the recipient phone number.
type ChatAdapter struct {
	apiURL string       // gateway send endpoint
	token  string       // gateway API token
	client *http.Client // HTTP client used to make requests
}

// NewChatAdapter creates a chat adapter for the given gateway.
func NewChatAdapter(apiURL, token string) *ChatAdapter {
	return &ChatAdapter{
		apiURL: apiURL,
		token:  token,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// sendMessageRequest represents the payload for the gateway send API.
type sendMessageRequest struct {
	Phone string `json:"phone"` // phone number to send message to
	Body  string `json:"body"`  // message text
}

// Send posts the message to the gateway. A 404 or 410 response means the
// gateway considers the number permanently unreachable.
func (a *ChatAdapter) Send(ctx context.Context, ep model.DeliveryEndpoint, msg render.Message) Outcome {
	reqBody := sendMessageRequest{
		Phone: ep.Address,
		Body:  msg.Body,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return Outcome{Err: fmt.Errorf("marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.apiURL, bytes.NewBuffer(body))
	if err != nil {
		return Outcome{Err: fmt.Errorf("build request: %w", err)}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.token)

	resp, err := a.client.Do(req)
	if err != nil {
		return Outcome{Err: fmt.Errorf("send request: %w", err)}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return Outcome{Permanent: true, Err: fmt.Errorf("chat recipient gone: %s", resp.Status)}
	case resp.StatusCode >= http.StatusBadRequest:
		return Outcome{Err: fmt.Errorf("chat gateway error: %s", resp.Status)}
	}

	return Outcome{OK: true}
}
