package resolver

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opticstore/notify-queue/internal/model"
)

type fakeEndpointStore struct {
	byUser map[uuid.UUID][]model.DeliveryEndpoint
	admin  []model.DeliveryEndpoint

	lastKind string
}

func (s *fakeEndpointStore) GetByUser(_ context.Context, userID uuid.UUID, kind string) ([]model.DeliveryEndpoint, error) {
	s.lastKind = kind

	return s.byUser[userID], nil
}

func (s *fakeEndpointStore) GetAdminScoped(_ context.Context, kind string) ([]model.DeliveryEndpoint, error) {
	s.lastKind = kind

	return s.admin, nil
}

func TestResolve_ChatWithPhoneIsSelfAddressed(t *testing.T) {
	r := New(&fakeEndpointStore{})

	job := model.NotificationJob{
		Channel:        model.ChannelWhatsApp,
		RecipientPhone: "+79990000000",
	}

	eps, err := r.Resolve(context.Background(), job, model.Settings{})
	require.NoError(t, err)
	require.Len(t, eps, 1)

	assert.Equal(t, model.EndpointWhatsApp, eps[0].Kind)
	assert.Equal(t, job.RecipientPhone, eps[0].Address)
	assert.Equal(t, uuid.Nil, eps[0].ID, "synthetic endpoints must not be deletable")
}

func TestResolve_ChatBroadcastUsesAdminPhone(t *testing.T) {
	r := New(&fakeEndpointStore{})

	job := model.NotificationJob{Channel: model.ChannelWhatsApp}
	s := model.Settings{AdminPhone: "+70000000000"}

	eps, err := r.Resolve(context.Background(), job, s)
	require.NoError(t, err)
	require.Len(t, eps, 1)
	assert.Equal(t, s.AdminPhone, eps[0].Address)
}

func TestResolve_ChatBroadcastWithoutAdminPhone(t *testing.T) {
	r := New(&fakeEndpointStore{})

	job := model.NotificationJob{Channel: model.ChannelWhatsApp}

	eps, err := r.Resolve(context.Background(), job, model.Settings{})
	require.NoError(t, err)
	assert.Empty(t, eps)
}

func TestResolve_ChatForUserHitsStore(t *testing.T) {
	userID := uuid.New()
	stored := model.DeliveryEndpoint{ID: uuid.New(), Kind: model.EndpointWhatsApp, Address: "+71110000000"}

	store := &fakeEndpointStore{byUser: map[uuid.UUID][]model.DeliveryEndpoint{userID: {stored}}}
	r := New(store)

	job := model.NotificationJob{
		Channel:         model.ChannelWhatsApp,
		RecipientUserID: uuid.NullUUID{UUID: userID, Valid: true},
	}

	eps, err := r.Resolve(context.Background(), job, model.Settings{})
	require.NoError(t, err)
	require.Len(t, eps, 1)
	assert.Equal(t, stored, eps[0])
	assert.Equal(t, model.EndpointWhatsApp, store.lastKind)
}

func TestResolve_PushForUser(t *testing.T) {
	userID := uuid.New()
	stored := model.DeliveryEndpoint{ID: uuid.New(), Kind: model.EndpointPush, Address: "https://push.example.com/abc"}

	store := &fakeEndpointStore{byUser: map[uuid.UUID][]model.DeliveryEndpoint{userID: {stored}}}
	r := New(store)

	job := model.NotificationJob{
		Channel:         model.ChannelPush,
		RecipientUserID: uuid.NullUUID{UUID: userID, Valid: true},
	}

	eps, err := r.Resolve(context.Background(), job, model.Settings{})
	require.NoError(t, err)
	require.Len(t, eps, 1)
	assert.Equal(t, stored, eps[0])
}

func TestResolve_PushBroadcastGoesToAdmins(t *testing.T) {
	admins := []model.DeliveryEndpoint{
		{ID: uuid.New(), Kind: model.EndpointPush, Address: "https://push.example.com/a", IsAdmin: true},
		{ID: uuid.New(), Kind: model.EndpointPush, Address: "https://push.example.com/b", IsAdmin: true},
	}

	store := &fakeEndpointStore{admin: admins}
	r := New(store)

	job := model.NotificationJob{Channel: model.ChannelPush}

	eps, err := r.Resolve(context.Background(), job, model.Settings{})
	require.NoError(t, err)
	assert.Equal(t, admins, eps)
	assert.Equal(t, model.EndpointPush, store.lastKind)
}

func TestResolve_EmailBroadcastUsesAdminEmail(t *testing.T) {
	r := New(&fakeEndpointStore{})

	job := model.NotificationJob{Channel: model.ChannelEmail}
	s := model.Settings{AdminEmail: "admin@opticstore.example"}

	eps, err := r.Resolve(context.Background(), job, s)
	require.NoError(t, err)
	require.Len(t, eps, 1)
	assert.Equal(t, s.AdminEmail, eps[0].Address)
	assert.Equal(t, model.EndpointEmail, eps[0].Kind)
}

func TestResolve_UnknownChannel(t *testing.T) {
	r := New(&fakeEndpointStore{})

	_, err := r.Resolve(context.Background(), model.NotificationJob{Channel: "fax"}, model.Settings{})
	assert.Error(t, err)
}
