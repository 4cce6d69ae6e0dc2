package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/inkwell-app/inkwell/internal/domain"
)

// ReadStateStore is the upsert-by-unique-key the tracker needs.
type ReadStateStore interface {
	Upsert(ctx context.Context, state *domain.ReadState) error
	Get(ctx context.Context, userID, workspaceID uuid.UUID, targetType, targetID string) (*domain.ReadState, error)
}

// ReadStateService records, per user/workspace/target, the last-seen
// position. Last-writer-wins: two concurrent marks race and whichever
// completes last sticks, regardless of which carried the later revision.
type ReadStateService struct {
	store ReadStateStore
	authz *Authorizer
}

// NewReadStateService creates a new read-state service
func NewReadStateService(store ReadStateStore, authz *Authorizer) *ReadStateService {
	return &ReadStateService{store: store, authz: authz}
}

// MarkRead upserts the bookmark for one target. The storage upsert is a
// single atomic statement on the composite key, so racing initial inserts
// cannot produce duplicate rows.
func (s *ReadStateService) MarkRead(ctx context.Context, userID, workspaceID uuid.UUID, mark domain.ReadStateMark) error {
	if _, err := s.authz.Authorize(ctx, userID, workspaceID, domain.RoleViewer); err != nil {
		return err
	}

	state := &domain.ReadState{
		UserID:             userID,
		WorkspaceID:        workspaceID,
		TargetType:         mark.TargetType,
		TargetID:           mark.TargetID,
		LastReadAt:         time.Now(),
		LastReadRevisionID: mark.LastReadRevisionID,
	}

	if err := s.store.Upsert(ctx, state); err != nil {
		return fmt.Errorf("failed to mark read: %w", err)
	}

	return nil
}

// Get retrieves the bookmark for one target, nil if never marked.
func (s *ReadStateService) Get(ctx context.Context, userID, workspaceID uuid.UUID, targetType, targetID string) (*domain.ReadState, error) {
	if _, err := s.authz.Authorize(ctx, userID, workspaceID, domain.RoleViewer); err != nil {
		return nil, err
	}
	return s.store.Get(ctx, userID, workspaceID, targetType, targetID)
}
