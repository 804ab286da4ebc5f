package endpoint

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/dbpg"

	"github.com/opticstore/notify-queue/internal/model"
)

var ErrEndpointNotFound = errors.New("delivery endpoint not found")

// Repository provides access to the subscriptions table. Subscription rows
// are created by the opt-in flow outside this service; the worker only reads
// them and prunes rows that a transport reported as permanently gone.
type Repository struct {
	db *dbpg.DB
}

// NewRepository creates a new endpoint repository.
func NewRepository(db *dbpg.DB) *Repository {
	return &Repository{db: db}
}

// GetByUser returns all endpoints of the given kind owned by a user. An empty
// result is not an error: the user may simply have no subscribed devices.
func (r *Repository) GetByUser(ctx context.Context, userID uuid.UUID, kind string) ([]model.DeliveryEndpoint, error) {
	query := `
		SELECT id, user_id, kind, address, COALESCE(p256dh, ''), COALESCE(auth, ''), is_admin, created_at
		FROM subscriptions
		WHERE user_id = $1 AND kind = $2;
    `

	rows, err := r.db.QueryContext(ctx, query, userID, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to get endpoints by user: %w", err)
	}
	defer rows.Close()

	return scanEndpoints(rows)
}

// GetAdminScoped returns all admin-flagged endpoints of the given kind, the
// broadcast audience.
func (r *Repository) GetAdminScoped(ctx context.Context, kind string) ([]model.DeliveryEndpoint, error) {
	query := `
		SELECT id, user_id, kind, address, COALESCE(p256dh, ''), COALESCE(auth, ''), is_admin, created_at
		FROM subscriptions
		WHERE is_admin = TRUE AND kind = $1;
    `

	rows, err := r.db.QueryContext(ctx, query, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to get admin endpoints: %w", err)
	}
	defer rows.Close()

	return scanEndpoints(rows)
}

// Delete removes an endpoint whose transport reported it permanently invalid.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM subscriptions
		WHERE id = $1;
    `

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete endpoint: %w", err)
	}

	rows, _ := res.RowsAffected()

	if rows == 0 {
		return ErrEndpointNotFound
	}

	return nil
}

func scanEndpoints(rows *sql.Rows) ([]model.DeliveryEndpoint, error) {
	var endpoints []model.DeliveryEndpoint
	for rows.Next() {
		var ep model.DeliveryEndpoint
		if err := rows.Scan(
			&ep.ID, &ep.UserID, &ep.Kind, &ep.Address, &ep.P256dh, &ep.Auth, &ep.IsAdmin, &ep.CreatedAt,
		); err != nil {
			return nil, err
		}

		endpoints = append(endpoints, ep)
	}

	return endpoints, rows.Err()
}
