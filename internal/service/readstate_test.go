package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/inkwell-app/inkwell/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newViewerAuthorizer(ctx context.Context, workspaceID, userID uuid.UUID) *Authorizer {
	store := new(MockWorkspaceStore)
	store.On("GetMember", ctx, workspaceID, userID).Return(memberWithRole(workspaceID, userID, domain.RoleViewer), nil)
	return NewAuthorizer(store)
}

func TestReadState_RemarkOverwrites(t *testing.T) {
	ctx := context.Background()
	workspaceID := uuid.New()
	userID := uuid.New()
	rev1 := uuid.New()
	rev2 := uuid.New()

	store := new(MockReadStateStore)
	var lastUpserted *domain.ReadState
	store.On("Upsert", ctx, mock.AnythingOfType("*domain.ReadState")).Run(func(args mock.Arguments) {
		lastUpserted = args.Get(1).(*domain.ReadState)
	}).Return(nil)

	svc := NewReadStateService(store, newViewerAuthorizer(ctx, workspaceID, userID))

	require.NoError(t, svc.MarkRead(ctx, userID, workspaceID, domain.ReadStateMark{
		TargetType:         "article",
		TargetID:           "a1",
		LastReadRevisionID: &rev1,
	}))
	require.NoError(t, svc.MarkRead(ctx, userID, workspaceID, domain.ReadStateMark{
		TargetType:         "article",
		TargetID:           "a1",
		LastReadRevisionID: &rev2,
	}))

	// Both calls target the same composite key; the second write carries the
	// second revision id. The storage upsert guarantees one row.
	store.AssertNumberOfCalls(t, "Upsert", 2)
	require.NotNil(t, lastUpserted)
	assert.Equal(t, userID, lastUpserted.UserID)
	assert.Equal(t, "article", lastUpserted.TargetType)
	assert.Equal(t, "a1", lastUpserted.TargetID)
	assert.Equal(t, &rev2, lastUpserted.LastReadRevisionID)
	assert.False(t, lastUpserted.LastReadAt.IsZero())
}

func TestReadState_RequiresMembership(t *testing.T) {
	ctx := context.Background()
	workspaceID := uuid.New()
	userID := uuid.New()

	members := new(MockWorkspaceStore)
	members.On("GetMember", ctx, workspaceID, userID).Return(nil, nil)

	store := new(MockReadStateStore)
	svc := NewReadStateService(store, NewAuthorizer(members))

	err := svc.MarkRead(ctx, userID, workspaceID, domain.ReadStateMark{TargetType: "article", TargetID: "a1"})
	assert.True(t, domain.IsForbidden(err))
	store.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}
