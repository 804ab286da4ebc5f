package render

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opticstore/notify-queue/internal/model"
)

func TestRender_Order(t *testing.T) {
	job := model.NotificationJob{
		Type:    model.TypeOrderNew,
		Payload: json.RawMessage(`{"order_id":"42","customer_name":"Anna","total":129.9}`),
	}

	msg, err := Render(job)
	require.NoError(t, err)

	assert.Equal(t, "New order", msg.Title)
	assert.Equal(t, "New order #42 from Anna, total 129.90", msg.Body)
}

func TestRender_Booking(t *testing.T) {
	job := model.NotificationJob{
		Type:    model.TypeBookingNew,
		Payload: json.RawMessage(`{"name":"Ivan","date":"2025-06-02","service":"eye exam"}`),
	}

	msg, err := Render(job)
	require.NoError(t, err)

	assert.Equal(t, "New booking", msg.Title)
	assert.Equal(t, "New booking from Ivan on 2025-06-02: eye exam", msg.Body)
}

func TestRender_BookingWithoutService(t *testing.T) {
	job := model.NotificationJob{
		Type:    model.TypeBookingNew,
		Payload: json.RawMessage(`{"name":"Ivan","date":"2025-06-02"}`),
	}

	msg, err := Render(job)
	require.NoError(t, err)
	assert.Equal(t, "New booking from Ivan on 2025-06-02", msg.Body)
}

func TestRender_Question(t *testing.T) {
	job := model.NotificationJob{
		Type:    model.TypeQuestionNew,
		Payload: json.RawMessage(`{"name":"Olga","question":"Do you fit progressive lenses?"}`),
	}

	msg, err := Render(job)
	require.NoError(t, err)

	assert.Equal(t, "New question", msg.Title)
	assert.Equal(t, "Olga asks: Do you fit progressive lenses?", msg.Body)
}

func TestRender_Generic(t *testing.T) {
	job := model.NotificationJob{
		Type:    model.TypeGeneric,
		Payload: json.RawMessage(`{"title":"Maintenance","body":"Store closed Sunday"}`),
	}

	msg, err := Render(job)
	require.NoError(t, err)
	assert.Equal(t, Message{Title: "Maintenance", Body: "Store closed Sunday"}, msg)
}

func TestRender_GenericEmptyPayload(t *testing.T) {
	job := model.NotificationJob{
		Type:    model.TypeGeneric,
		Payload: json.RawMessage(`{}`),
	}

	_, err := Render(job)
	assert.Error(t, err)
}

func TestRender_BadPayload(t *testing.T) {
	job := model.NotificationJob{
		Type:    model.TypeOrderNew,
		Payload: json.RawMessage(`not json`),
	}

	_, err := Render(job)
	assert.Error(t, err)
}

func TestRender_UnknownType(t *testing.T) {
	job := model.NotificationJob{
		Type:    "invoice_paid",
		Payload: json.RawMessage(`{}`),
	}

	_, err := Render(job)
	assert.Error(t, err)
}
