package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/inkwell-app/inkwell/internal/domain"
	"github.com/inkwell-app/inkwell/internal/schema"
)

// AuditStore is the append-only insert the recorder needs.
type AuditStore interface {
	Append(ctx context.Context, entry *domain.AuditLogEntry) error
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID, limit int) ([]domain.AuditLogEntry, error)
}

// AuditRecorder appends immutable action records. Write-only on the hot
// path; a storage failure is fatal for the current request and never retried
// here.
type AuditRecorder struct {
	store AuditStore
	authz *Authorizer
}

// NewAuditRecorder creates a new audit recorder
func NewAuditRecorder(store AuditStore, authz *Authorizer) *AuditRecorder {
	return &AuditRecorder{store: store, authz: authz}
}

// Record appends one audit entry and returns its id. Meta keeps its
// three-way state (absent, explicit null, value) through persistence.
func (r *AuditRecorder) Record(ctx context.Context, workspaceID, actorUserID uuid.UUID, action, targetType, targetID string, meta domain.Meta) (uuid.UUID, error) {
	if meta.Present() && !meta.Null() {
		if err := schema.ValidateAuditMeta(action, meta.Value()); err != nil {
			return uuid.Nil, fmt.Errorf("%v: %w", err, domain.ErrInvalidInput)
		}
	}

	entry := &domain.AuditLogEntry{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		ActorUserID: actorUserID,
		Action:      action,
		TargetType:  targetType,
		TargetID:    targetID,
		Meta:        meta,
		CreatedAt:   time.Now(),
	}

	if err := r.store.Append(ctx, entry); err != nil {
		return uuid.Nil, fmt.Errorf("failed to record audit entry: %w", err)
	}

	return entry.ID, nil
}

// List retrieves recent entries for a workspace. The admin read surface;
// recording itself never reads back.
func (r *AuditRecorder) List(ctx context.Context, workspaceID uuid.UUID, limit int) ([]domain.AuditLogEntry, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return r.store.ListByWorkspace(ctx, workspaceID, limit)
}

// ListForActor retrieves recent entries on behalf of a user. Only admins may
// read the audit log.
func (r *AuditRecorder) ListForActor(ctx context.Context, actorUserID, workspaceID uuid.UUID, limit int) ([]domain.AuditLogEntry, error) {
	if _, err := r.authz.Authorize(ctx, actorUserID, workspaceID, domain.RoleAdmin); err != nil {
		return nil, err
	}
	return r.List(ctx, workspaceID, limit)
}
