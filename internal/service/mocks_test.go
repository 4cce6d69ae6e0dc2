package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/inkwell-app/inkwell/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

// MockWorkspaceStore mocks WorkspaceStore and MentionResolver
type MockWorkspaceStore struct {
	mock.Mock
}

func (m *MockWorkspaceStore) Create(ctx context.Context, workspace *domain.Workspace) error {
	args := m.Called(ctx, workspace)
	return args.Error(0)
}

func (m *MockWorkspaceStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Workspace, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workspace), args.Error(1)
}

func (m *MockWorkspaceStore) ListByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Workspace, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Workspace), args.Error(1)
}

func (m *MockWorkspaceStore) Update(ctx context.Context, id uuid.UUID, update *domain.WorkspaceUpdate) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}

func (m *MockWorkspaceStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWorkspaceStore) AddMember(ctx context.Context, member *domain.WorkspaceMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockWorkspaceStore) GetMember(ctx context.Context, workspaceID, userID uuid.UUID) (*domain.WorkspaceMember, error) {
	args := m.Called(ctx, workspaceID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkspaceMember), args.Error(1)
}

func (m *MockWorkspaceStore) ListMembers(ctx context.Context, workspaceID uuid.UUID) ([]domain.WorkspaceMember, error) {
	args := m.Called(ctx, workspaceID)
	return args.Get(0).([]domain.WorkspaceMember), args.Error(1)
}

func (m *MockWorkspaceStore) FindMembersByHandles(ctx context.Context, workspaceID uuid.UUID, handles []string) ([]uuid.UUID, error) {
	args := m.Called(ctx, workspaceID, handles)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockWorkspaceStore) RemoveMember(ctx context.Context, workspaceID, userID uuid.UUID) error {
	args := m.Called(ctx, workspaceID, userID)
	return args.Error(0)
}

// MockNotificationStore mocks NotificationStore
type MockNotificationStore struct {
	mock.Mock
}

func (m *MockNotificationStore) CreateBatch(ctx context.Context, notifications []domain.Notification) error {
	args := m.Called(ctx, notifications)
	return args.Error(0)
}

func (m *MockNotificationStore) ListByUser(ctx context.Context, userID, workspaceID uuid.UUID, unreadOnly bool, limit int) ([]domain.Notification, error) {
	args := m.Called(ctx, userID, workspaceID, unreadOnly, limit)
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *MockNotificationStore) CountUnread(ctx context.Context, userID, workspaceID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID, workspaceID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationStore) MarkRead(ctx context.Context, notificationID, userID uuid.UUID) error {
	args := m.Called(ctx, notificationID, userID)
	return args.Error(0)
}

func (m *MockNotificationStore) MarkAllRead(ctx context.Context, userID uuid.UUID, workspaceID *uuid.UUID) error {
	args := m.Called(ctx, userID, workspaceID)
	return args.Error(0)
}

// MockWatchStore mocks WatchStore
type MockWatchStore struct {
	mock.Mock
}

func (m *MockWatchStore) Upsert(ctx context.Context, watch *domain.Watch) error {
	args := m.Called(ctx, watch)
	return args.Error(0)
}

func (m *MockWatchStore) ListByTarget(ctx context.Context, workspaceID uuid.UUID, targetType, targetID string) ([]domain.Watch, error) {
	args := m.Called(ctx, workspaceID, targetType, targetID)
	return args.Get(0).([]domain.Watch), args.Error(1)
}

func (m *MockWatchStore) Delete(ctx context.Context, userID, workspaceID uuid.UUID, targetType, targetID string) error {
	args := m.Called(ctx, userID, workspaceID, targetType, targetID)
	return args.Error(0)
}

// MockAuditStore mocks AuditStore and AuditTxStore
type MockAuditStore struct {
	mock.Mock
}

func (m *MockAuditStore) Append(ctx context.Context, entry *domain.AuditLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditStore) AppendTx(ctx context.Context, tx pgx.Tx, entry *domain.AuditLogEntry) error {
	args := m.Called(ctx, tx, entry)
	return args.Error(0)
}

func (m *MockAuditStore) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID, limit int) ([]domain.AuditLogEntry, error) {
	args := m.Called(ctx, workspaceID, limit)
	return args.Get(0).([]domain.AuditLogEntry), args.Error(1)
}

// MockReadStateStore mocks ReadStateStore
type MockReadStateStore struct {
	mock.Mock
}

func (m *MockReadStateStore) Upsert(ctx context.Context, state *domain.ReadState) error {
	args := m.Called(ctx, state)
	return args.Error(0)
}

func (m *MockReadStateStore) Get(ctx context.Context, userID, workspaceID uuid.UUID, targetType, targetID string) (*domain.ReadState, error) {
	args := m.Called(ctx, userID, workspaceID, targetType, targetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReadState), args.Error(1)
}

// MockTxRunner runs the transaction body with a nil tx; the stores under it
// are mocks that ignore the tx handle.
type MockTxRunner struct {
	mock.Mock
}

func (m *MockTxRunner) InTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	args := m.Called(ctx)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(nil)
}

// MockRevisionStore mocks RevisionStore
type MockRevisionStore struct {
	mock.Mock
}

func (m *MockRevisionStore) GetRevision(ctx context.Context, workspaceID, revisionID uuid.UUID) (*domain.Revision, error) {
	args := m.Called(ctx, workspaceID, revisionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Revision), args.Error(1)
}

func (m *MockRevisionStore) GetRevisionTx(ctx context.Context, tx pgx.Tx, workspaceID, revisionID uuid.UUID) (*domain.Revision, error) {
	args := m.Called(ctx, tx, workspaceID, revisionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Revision), args.Error(1)
}

func (m *MockRevisionStore) UpdateRevisionStatusTx(ctx context.Context, tx pgx.Tx, workspaceID, revisionID uuid.UUID, status domain.RevisionStatus) error {
	args := m.Called(ctx, tx, workspaceID, revisionID, status)
	return args.Error(0)
}

// MockReviewStore mocks ReviewStore
type MockReviewStore struct {
	mock.Mock
}

func (m *MockReviewStore) CreateRequestTx(ctx context.Context, tx pgx.Tx, request *domain.ReviewRequest) error {
	args := m.Called(ctx, tx, request)
	return args.Error(0)
}

func (m *MockReviewStore) GetRequest(ctx context.Context, workspaceID, requestID uuid.UUID) (*domain.ReviewRequest, error) {
	args := m.Called(ctx, workspaceID, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReviewRequest), args.Error(1)
}

func (m *MockReviewStore) GetOpenRequestByRevisionTx(ctx context.Context, tx pgx.Tx, workspaceID, revisionID uuid.UUID) (*domain.ReviewRequest, error) {
	args := m.Called(ctx, tx, workspaceID, revisionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReviewRequest), args.Error(1)
}

func (m *MockReviewStore) CloseRequestTx(ctx context.Context, tx pgx.Tx, requestID uuid.UUID) error {
	args := m.Called(ctx, tx, requestID)
	return args.Error(0)
}

func (m *MockReviewStore) CreateAssignmentTx(ctx context.Context, tx pgx.Tx, assignment *domain.ReviewAssignment) error {
	args := m.Called(ctx, tx, assignment)
	return args.Error(0)
}

func (m *MockReviewStore) ListOpenRequests(ctx context.Context, workspaceID uuid.UUID) ([]domain.ReviewRequest, error) {
	args := m.Called(ctx, workspaceID)
	return args.Get(0).([]domain.ReviewRequest), args.Error(1)
}
