package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/inkwell-app/inkwell/internal/domain"
	"github.com/jackc/pgx/v5"
)

// AuditRepository handles the append-only audit trail. Rows are inserted and
// never updated or deleted.
type AuditRepository struct {
	db *DB
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *DB) *AuditRepository {
	return &AuditRepository{db: db}
}

const auditInsertQuery = `
	INSERT INTO audit_log (id, workspace_id, actor_user_id, action, target_type, target_id, meta, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

// Append inserts one audit entry
func (r *AuditRepository) Append(ctx context.Context, entry *domain.AuditLogEntry) error {
	_, err := r.db.Pool.Exec(ctx, auditInsertQuery,
		entry.ID,
		entry.WorkspaceID,
		entry.ActorUserID,
		entry.Action,
		entry.TargetType,
		entry.TargetID,
		entry.Meta.DatabaseValue(),
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}

	return nil
}

// AppendTx inserts one audit entry inside an existing transaction
func (r *AuditRepository) AppendTx(ctx context.Context, tx pgx.Tx, entry *domain.AuditLogEntry) error {
	_, err := tx.Exec(ctx, auditInsertQuery,
		entry.ID,
		entry.WorkspaceID,
		entry.ActorUserID,
		entry.Action,
		entry.TargetType,
		entry.TargetID,
		entry.Meta.DatabaseValue(),
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}

	return nil
}

// ListByWorkspace retrieves recent audit entries for a workspace, newest
// first. This is the admin read surface; the recording path never reads.
func (r *AuditRepository) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID, limit int) ([]domain.AuditLogEntry, error) {
	query := `
		SELECT id, workspace_id, actor_user_id, action, target_type, target_id, meta, created_at
		FROM audit_log
		WHERE workspace_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.Pool.Query(ctx, query, workspaceID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.AuditLogEntry
	for rows.Next() {
		var entry domain.AuditLogEntry
		var metaRaw []byte

		if err := rows.Scan(
			&entry.ID,
			&entry.WorkspaceID,
			&entry.ActorUserID,
			&entry.Action,
			&entry.TargetType,
			&entry.TargetID,
			&metaRaw,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}

		entry.Meta = domain.MetaFromColumn(metaRaw)
		entries = append(entries, entry)
	}

	return entries, nil
}
