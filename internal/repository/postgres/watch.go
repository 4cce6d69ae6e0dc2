package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/inkwell-app/inkwell/internal/domain"
)

// WatchRepository handles watch subscription data access
type WatchRepository struct {
	db *DB
}

// NewWatchRepository creates a new watch repository
func NewWatchRepository(db *DB) *WatchRepository {
	return &WatchRepository{db: db}
}

// Upsert creates or refreshes a watch subscription. One row per
// (user, workspace, target type, target id).
func (r *WatchRepository) Upsert(ctx context.Context, watch *domain.Watch) error {
	query := `
		INSERT INTO watches (id, user_id, workspace_id, target_type, target_id, notify_in_app, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, workspace_id, target_type, target_id)
		DO UPDATE SET notify_in_app = $6
	`

	_, err := r.db.Pool.Exec(ctx, query,
		watch.ID,
		watch.UserID,
		watch.WorkspaceID,
		watch.TargetType,
		watch.TargetID,
		watch.NotifyInApp,
		watch.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert watch: %w", err)
	}

	return nil
}

// ListByTarget retrieves all watches for a target. Delivery-channel
// filtering happens in the fan-out service.
func (r *WatchRepository) ListByTarget(ctx context.Context, workspaceID uuid.UUID, targetType, targetID string) ([]domain.Watch, error) {
	query := `
		SELECT id, user_id, workspace_id, target_type, target_id, notify_in_app, created_at
		FROM watches
		WHERE workspace_id = $1 AND target_type = $2 AND target_id = $3
	`

	rows, err := r.db.Pool.Query(ctx, query, workspaceID, targetType, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to list watches: %w", err)
	}
	defer rows.Close()

	var watches []domain.Watch
	for rows.Next() {
		var watch domain.Watch
		if err := rows.Scan(
			&watch.ID,
			&watch.UserID,
			&watch.WorkspaceID,
			&watch.TargetType,
			&watch.TargetID,
			&watch.NotifyInApp,
			&watch.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan watch: %w", err)
		}
		watches = append(watches, watch)
	}

	return watches, nil
}

// Delete removes a watch subscription
func (r *WatchRepository) Delete(ctx context.Context, userID, workspaceID uuid.UUID, targetType, targetID string) error {
	query := `
		DELETE FROM watches
		WHERE user_id = $1 AND workspace_id = $2 AND target_type = $3 AND target_id = $4
	`

	_, err := r.db.Pool.Exec(ctx, query, userID, workspaceID, targetType, targetID)
	if err != nil {
		return fmt.Errorf("failed to delete watch: %w", err)
	}

	return nil
}
