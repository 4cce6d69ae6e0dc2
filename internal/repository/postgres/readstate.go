package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/inkwell-app/inkwell/internal/domain"
	"github.com/jackc/pgx/v5"
)

// ReadStateRepository handles per-user read-state bookmarks
type ReadStateRepository struct {
	db *DB
}

// NewReadStateRepository creates a new read-state repository
func NewReadStateRepository(db *DB) *ReadStateRepository {
	return &ReadStateRepository{db: db}
}

// Upsert writes the bookmark in one atomic statement keyed by the unique
// composite key. Two racing initial inserts cannot produce a duplicate row;
// the later writer wins unconditionally.
func (r *ReadStateRepository) Upsert(ctx context.Context, state *domain.ReadState) error {
	query := `
		INSERT INTO read_states (user_id, workspace_id, target_type, target_id, last_read_at, last_read_revision_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, workspace_id, target_type, target_id)
		DO UPDATE SET last_read_at = $5, last_read_revision_id = $6
	`

	_, err := r.db.Pool.Exec(ctx, query,
		state.UserID,
		state.WorkspaceID,
		state.TargetType,
		state.TargetID,
		state.LastReadAt,
		state.LastReadRevisionID,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert read state: %w", err)
	}

	return nil
}

// Get retrieves the bookmark for one target, nil if never marked
func (r *ReadStateRepository) Get(ctx context.Context, userID, workspaceID uuid.UUID, targetType, targetID string) (*domain.ReadState, error) {
	query := `
		SELECT user_id, workspace_id, target_type, target_id, last_read_at, last_read_revision_id
		FROM read_states
		WHERE user_id = $1 AND workspace_id = $2 AND target_type = $3 AND target_id = $4
	`

	var state domain.ReadState
	err := r.db.Pool.QueryRow(ctx, query, userID, workspaceID, targetType, targetID).Scan(
		&state.UserID,
		&state.WorkspaceID,
		&state.TargetType,
		&state.TargetID,
		&state.LastReadAt,
		&state.LastReadRevisionID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get read state: %w", err)
	}

	return &state, nil
}
