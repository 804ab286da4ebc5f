package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/wb-go/wbf/dbpg"

	"github.com/opticstore/notify-queue/internal/model"
)

var ErrSettingsNotFound = errors.New("settings row not found")

// Repository reads the single-row settings table. The row is owned by the
// admin back-office; this service only consults it, once per worker cycle.
type Repository struct {
	db *dbpg.DB
}

// NewRepository creates a new settings repository.
func NewRepository(db *dbpg.DB) *Repository {
	return &Repository{db: db}
}

// Get fetches the current settings. A missing row is an error: the worker
// treats an unreachable settings gate as fatal for the cycle rather than
// guessing at defaults.
func (r *Repository) Get(ctx context.Context) (model.Settings, error) {
	query := `
		SELECT notifications_enabled, push_enabled, whatsapp_enabled, email_enabled,
		       COALESCE(admin_phone, ''), COALESCE(admin_email, '')
		FROM settings
		LIMIT 1;
    `

	var s model.Settings
	err := r.db.QueryRowContext(ctx, query).Scan(
		&s.NotificationsEnabled, &s.PushEnabled, &s.WhatsAppEnabled, &s.EmailEnabled,
		&s.AdminPhone, &s.AdminEmail,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Settings{}, ErrSettingsNotFound
		}

		return model.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}

	return s, nil
}
