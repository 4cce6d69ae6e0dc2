package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/inkwell-app/inkwell/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNotifyWatchers_SkipsMutedWatchers(t *testing.T) {
	ctx := context.Background()
	workspaceID := uuid.New()
	u1, u2, u3 := uuid.New(), uuid.New(), uuid.New()

	watches := new(MockWatchStore)
	watches.On("ListByTarget", ctx, workspaceID, "article", "a1").Return([]domain.Watch{
		{UserID: u1, NotifyInApp: true},
		{UserID: u2, NotifyInApp: false},
		{UserID: u3, NotifyInApp: true},
	}, nil)

	store := new(MockNotificationStore)
	store.On("CreateBatch", ctx, mock.MatchedBy(func(ns []domain.Notification) bool {
		if len(ns) != 2 {
			return false
		}
		// One independent record per watcher, none for the muted one.
		seen := map[uuid.UUID]bool{}
		for _, n := range ns {
			if n.WorkspaceID != workspaceID || n.Type != "article_updated" {
				return false
			}
			seen[n.UserID] = true
		}
		return seen[u1] && seen[u3] && !seen[u2]
	})).Return(nil)

	svc := NewNotificationService(store, watches, new(MockWorkspaceStore), nil, nil)

	err := svc.NotifyWatchers(ctx, workspaceID, "article", "a1", "article_updated", []byte(`{}`))
	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestNotifyWatchers_NoWatchersIsNoOp(t *testing.T) {
	ctx := context.Background()
	workspaceID := uuid.New()

	watches := new(MockWatchStore)
	watches.On("ListByTarget", ctx, workspaceID, "article", "a1").Return([]domain.Watch{}, nil)

	store := new(MockNotificationStore)
	svc := NewNotificationService(store, watches, new(MockWorkspaceStore), nil, nil)

	err := svc.NotifyWatchers(ctx, workspaceID, "article", "a1", "article_updated", nil)
	require.NoError(t, err)
	store.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}

// memNotificationStore keeps notifications in a map and applies the same
// update condition as the SQL store: MarkRead touches a row only when the id
// matches, the caller owns it, and it is still unread.
type memNotificationStore struct {
	rows map[uuid.UUID]*domain.Notification
}

func newMemNotificationStore(rows ...domain.Notification) *memNotificationStore {
	s := &memNotificationStore{rows: make(map[uuid.UUID]*domain.Notification)}
	for i := range rows {
		row := rows[i]
		s.rows[row.ID] = &row
	}
	return s
}

func (s *memNotificationStore) CreateBatch(_ context.Context, notifications []domain.Notification) error {
	for i := range notifications {
		row := notifications[i]
		s.rows[row.ID] = &row
	}
	return nil
}

func (s *memNotificationStore) ListByUser(_ context.Context, userID, workspaceID uuid.UUID, unreadOnly bool, limit int) ([]domain.Notification, error) {
	var out []domain.Notification
	for _, row := range s.rows {
		if row.UserID != userID || row.WorkspaceID != workspaceID {
			continue
		}
		if unreadOnly && row.ReadAt != nil {
			continue
		}
		out = append(out, *row)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *memNotificationStore) CountUnread(_ context.Context, userID, workspaceID uuid.UUID) (int64, error) {
	var count int64
	for _, row := range s.rows {
		if row.UserID == userID && row.WorkspaceID == workspaceID && row.ReadAt == nil {
			count++
		}
	}
	return count, nil
}

func (s *memNotificationStore) MarkRead(_ context.Context, notificationID, userID uuid.UUID) error {
	row, ok := s.rows[notificationID]
	if !ok || row.UserID != userID || row.ReadAt != nil {
		return nil
	}
	now := time.Now()
	row.ReadAt = &now
	return nil
}

func (s *memNotificationStore) MarkAllRead(_ context.Context, userID uuid.UUID, workspaceID *uuid.UUID) error {
	now := time.Now()
	for _, row := range s.rows {
		if row.UserID != userID || row.ReadAt != nil {
			continue
		}
		if workspaceID != nil && row.WorkspaceID != *workspaceID {
			continue
		}
		row.ReadAt = &now
	}
	return nil
}

func TestMarkRead_ForeignNotificationIsSilentNoOp(t *testing.T) {
	ctx := context.Background()
	workspaceID := uuid.New()
	owner, intruder := uuid.New(), uuid.New()
	notificationID := uuid.New()

	store := newMemNotificationStore(domain.Notification{
		ID:          notificationID,
		UserID:      owner,
		WorkspaceID: workspaceID,
		Type:        "mention",
		CreatedAt:   time.Now(),
	})

	svc := NewNotificationService(store, new(MockWatchStore), new(MockWorkspaceStore), nil, nil)

	// Someone else's notification: no error, so callers cannot tell whether
	// the id exists, and the row is untouched.
	require.NoError(t, svc.MarkRead(ctx, notificationID, intruder, workspaceID))
	assert.Nil(t, store.rows[notificationID].ReadAt)

	count, err := svc.UnreadCount(ctx, owner, workspaceID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestMarkRead_SecondMarkKeepsFirstTimestamp(t *testing.T) {
	ctx := context.Background()
	workspaceID := uuid.New()
	userID := uuid.New()
	notificationID := uuid.New()

	store := newMemNotificationStore(domain.Notification{
		ID:          notificationID,
		UserID:      userID,
		WorkspaceID: workspaceID,
		Type:        "mention",
		CreatedAt:   time.Now(),
	})

	svc := NewNotificationService(store, new(MockWatchStore), new(MockWorkspaceStore), nil, nil)

	require.NoError(t, svc.MarkRead(ctx, notificationID, userID, workspaceID))
	first := store.rows[notificationID].ReadAt
	require.NotNil(t, first)

	require.NoError(t, svc.MarkRead(ctx, notificationID, userID, workspaceID))
	assert.Equal(t, first, store.rows[notificationID].ReadAt)
}

func TestMarkAllRead_PassesOptionalScope(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	workspaceID := uuid.New()

	store := new(MockNotificationStore)
	store.On("MarkAllRead", ctx, userID, &workspaceID).Return(nil)
	store.On("MarkAllRead", ctx, userID, (*uuid.UUID)(nil)).Return(nil)

	svc := NewNotificationService(store, new(MockWatchStore), new(MockWorkspaceStore), nil, nil)

	require.NoError(t, svc.MarkAllRead(ctx, userID, &workspaceID))
	require.NoError(t, svc.MarkAllRead(ctx, userID, nil))
	store.AssertExpectations(t)
}

// spyUnreadCache records which invalidation path the service took.
type spyUnreadCache struct {
	invalidated     []uuid.UUID // workspace ids
	invalidatedUser []uuid.UUID // user ids, all workspaces
}

func (c *spyUnreadCache) Get(_ context.Context, _, _ uuid.UUID) (int64, bool) { return 0, false }

func (c *spyUnreadCache) Set(_ context.Context, _, _ uuid.UUID, _ int64) error { return nil }

func (c *spyUnreadCache) Invalidate(_ context.Context, _, workspaceID uuid.UUID) error {
	c.invalidated = append(c.invalidated, workspaceID)
	return nil
}

func (c *spyUnreadCache) InvalidateUser(_ context.Context, userID uuid.UUID) error {
	c.invalidatedUser = append(c.invalidatedUser, userID)
	return nil
}

func TestMarkAllRead_InvalidatesCachePerScope(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	workspaceID := uuid.New()

	store := new(MockNotificationStore)
	store.On("MarkAllRead", ctx, userID, &workspaceID).Return(nil)
	store.On("MarkAllRead", ctx, userID, (*uuid.UUID)(nil)).Return(nil)

	cache := new(spyUnreadCache)
	svc := NewNotificationService(store, new(MockWatchStore), new(MockWorkspaceStore), cache, nil)

	require.NoError(t, svc.MarkAllRead(ctx, userID, &workspaceID))
	assert.Equal(t, []uuid.UUID{workspaceID}, cache.invalidated)
	assert.Empty(t, cache.invalidatedUser)

	// No workspace scope touches every workspace, so the whole user's
	// cached counts go.
	require.NoError(t, svc.MarkAllRead(ctx, userID, nil))
	assert.Equal(t, []uuid.UUID{userID}, cache.invalidatedUser)
	assert.Equal(t, []uuid.UUID{workspaceID}, cache.invalidated)
}

func TestUnreadCount_FallsBackToStore(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	workspaceID := uuid.New()

	store := new(MockNotificationStore)
	store.On("CountUnread", ctx, userID, workspaceID).Return(int64(7), nil)

	svc := NewNotificationService(store, new(MockWatchStore), new(MockWorkspaceStore), nil, nil)

	count, err := svc.UnreadCount(ctx, userID, workspaceID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
}
