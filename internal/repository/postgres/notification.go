package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/inkwell-app/inkwell/internal/domain"
	"github.com/jackc/pgx/v5"
)

// NotificationRepository handles notification data access
type NotificationRepository struct {
	db *DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// CreateBatch inserts all notifications in a single batched round trip.
// Fan-out to N recipients is one batch write, not N sequential writes.
func (r *NotificationRepository) CreateBatch(ctx context.Context, notifications []domain.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	query := `
		INSERT INTO notifications (id, user_id, workspace_id, type, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	batch := &pgx.Batch{}
	for i := range notifications {
		n := &notifications[i]
		batch.Queue(query, n.ID, n.UserID, n.WorkspaceID, n.Type, []byte(n.Payload), n.CreatedAt)
	}

	results := r.db.Pool.SendBatch(ctx, batch)
	defer results.Close()

	for range notifications {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to create notifications: %w", err)
		}
	}

	return nil
}

// ListByUser retrieves a user's notifications, optionally only unread,
// newest first
func (r *NotificationRepository) ListByUser(ctx context.Context, userID, workspaceID uuid.UUID, unreadOnly bool, limit int) ([]domain.Notification, error) {
	query := `
		SELECT id, user_id, workspace_id, type, payload, read_at, created_at
		FROM notifications
		WHERE user_id = $1 AND workspace_id = $2
		  AND ($3 = false OR read_at IS NULL)
		ORDER BY created_at DESC
		LIMIT $4
	`

	rows, err := r.db.Pool.Query(ctx, query, userID, workspaceID, unreadOnly, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(
			&n.ID,
			&n.UserID,
			&n.WorkspaceID,
			&n.Type,
			&n.Payload,
			&n.ReadAt,
			&n.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}

	return notifications, nil
}

// CountUnread counts a user's unread notifications in a workspace
func (r *NotificationRepository) CountUnread(ctx context.Context, userID, workspaceID uuid.UUID) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM notifications
		WHERE user_id = $1 AND workspace_id = $2 AND read_at IS NULL
	`

	var count int64
	if err := r.db.Pool.QueryRow(ctx, query, userID, workspaceID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return count, nil
}

// MarkRead sets read_at on a notification owned by userID. The ownership
// predicate makes a foreign id a silent no-op rather than an error, and the
// read_at IS NULL guard keeps a second call from moving the timestamp.
func (r *NotificationRepository) MarkRead(ctx context.Context, notificationID, userID uuid.UUID) error {
	query := `
		UPDATE notifications
		SET read_at = NOW()
		WHERE id = $1 AND user_id = $2 AND read_at IS NULL
	`

	_, err := r.db.Pool.Exec(ctx, query, notificationID, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	return nil
}

// MarkAllRead sets read_at on every unread notification owned by userID,
// optionally scoped to one workspace
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID, workspaceID *uuid.UUID) error {
	query := `
		UPDATE notifications
		SET read_at = NOW()
		WHERE user_id = $1 AND read_at IS NULL
		  AND ($2::uuid IS NULL OR workspace_id = $2)
	`

	_, err := r.db.Pool.Exec(ctx, query, userID, workspaceID)
	if err != nil {
		return fmt.Errorf("failed to mark all notifications read: %w", err)
	}

	return nil
}
