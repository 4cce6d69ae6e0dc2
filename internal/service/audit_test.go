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

func TestAuditRecorder_Record(t *testing.T) {
	ctx := context.Background()
	workspaceID := uuid.New()
	actorID := uuid.New()

	store := new(MockAuditStore)
	var appended *domain.AuditLogEntry
	store.On("Append", ctx, mock.AnythingOfType("*domain.AuditLogEntry")).Run(func(args mock.Arguments) {
		appended = args.Get(1).(*domain.AuditLogEntry)
	}).Return(nil)

	recorder := NewAuditRecorder(store, nil)

	meta, err := domain.MetaValue(map[string]string{"role": "editor"})
	require.NoError(t, err)

	id, err := recorder.Record(ctx, workspaceID, actorID, domain.ActionAddMember, domain.TargetMember, "u1", meta)
	require.NoError(t, err)

	require.NotNil(t, appended)
	assert.Equal(t, id, appended.ID)
	assert.Equal(t, workspaceID, appended.WorkspaceID)
	assert.Equal(t, actorID, appended.ActorUserID)
	assert.Equal(t, domain.ActionAddMember, appended.Action)
	assert.JSONEq(t, `{"role":"editor"}`, string(appended.Meta.Value()))
	assert.False(t, appended.CreatedAt.IsZero())
}

func TestAuditRecorder_RecordRejectsMalformedMeta(t *testing.T) {
	ctx := context.Background()

	store := new(MockAuditStore)
	recorder := NewAuditRecorder(store, nil)

	meta, err := domain.MetaValue(map[string]string{"role": "superuser"})
	require.NoError(t, err)

	_, err = recorder.Record(ctx, uuid.New(), uuid.New(), domain.ActionAddMember, domain.TargetMember, "u1", meta)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	store.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestAuditRecorder_ListClampsLimit(t *testing.T) {
	ctx := context.Background()
	workspaceID := uuid.New()

	store := new(MockAuditStore)
	store.On("ListByWorkspace", ctx, workspaceID, 100).Return([]domain.AuditLogEntry{}, nil)

	recorder := NewAuditRecorder(store, nil)

	_, err := recorder.List(ctx, workspaceID, 0)
	require.NoError(t, err)
	_, err = recorder.List(ctx, workspaceID, 10000)
	require.NoError(t, err)
	store.AssertNumberOfCalls(t, "ListByWorkspace", 2)
}
