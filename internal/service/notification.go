package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/inkwell-app/inkwell/internal/domain"
	"github.com/rs/zerolog/log"
)

// NotificationStore is the notification persistence the fan-out needs.
type NotificationStore interface {
	CreateBatch(ctx context.Context, notifications []domain.Notification) error
	ListByUser(ctx context.Context, userID, workspaceID uuid.UUID, unreadOnly bool, limit int) ([]domain.Notification, error)
	CountUnread(ctx context.Context, userID, workspaceID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, notificationID, userID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID, workspaceID *uuid.UUID) error
}

// WatchStore is the subscription lookup the fan-out needs.
type WatchStore interface {
	Upsert(ctx context.Context, watch *domain.Watch) error
	ListByTarget(ctx context.Context, workspaceID uuid.UUID, targetType, targetID string) ([]domain.Watch, error)
	Delete(ctx context.Context, userID, workspaceID uuid.UUID, targetType, targetID string) error
}

// UnreadCache caches unread counts; implementations may be best effort.
type UnreadCache interface {
	Get(ctx context.Context, userID, workspaceID uuid.UUID) (int64, bool)
	Set(ctx context.Context, userID, workspaceID uuid.UUID, count int64) error
	Invalidate(ctx context.Context, userID, workspaceID uuid.UUID) error
	InvalidateUser(ctx context.Context, userID uuid.UUID) error
}

// Publisher pushes created notifications to live subscribers.
type Publisher interface {
	Publish(ctx context.Context, notifications []domain.Notification) error
}

// NotificationService creates and manages in-app notifications: watcher
// fan-out, mention fan-out, direct notification, mark-read.
type NotificationService struct {
	store      NotificationStore
	watches    WatchStore
	resolver   MentionResolver
	cache      UnreadCache // optional
	pub        Publisher   // optional
	dispatcher *Dispatcher // optional
}

// NewNotificationService creates a new notification service. cache and pub
// may be nil.
func NewNotificationService(store NotificationStore, watches WatchStore, resolver MentionResolver, cache UnreadCache, pub Publisher) *NotificationService {
	return &NotificationService{
		store:    store,
		watches:  watches,
		resolver: resolver,
		cache:    cache,
		pub:      pub,
	}
}

// WithDispatcher moves the post-insert side effects (cache invalidation and
// live publish) onto the background dispatcher. Without one they run inline.
func (s *NotificationService) WithDispatcher(d *Dispatcher) *NotificationService {
	s.dispatcher = d
	return s
}

// createForUsers writes one notification row per recipient in a single
// batch, then invalidates unread caches and publishes to live subscribers.
// Each recipient gets an independent row; nothing is shared.
func (s *NotificationService) createForUsers(ctx context.Context, workspaceID uuid.UUID, userIDs []uuid.UUID, notifType string, payload json.RawMessage) error {
	if len(userIDs) == 0 {
		return nil
	}

	now := time.Now()
	notifications := make([]domain.Notification, 0, len(userIDs))
	for _, userID := range userIDs {
		notifications = append(notifications, domain.Notification{
			ID:          uuid.New(),
			UserID:      userID,
			WorkspaceID: workspaceID,
			Type:        notifType,
			Payload:     payload,
			CreatedAt:   now,
		})
	}

	if err := s.store.CreateBatch(ctx, notifications); err != nil {
		return fmt.Errorf("failed to create notifications: %w", err)
	}

	// The rows are durable; cache invalidation and live delivery can lag.
	if s.dispatcher != nil {
		s.dispatcher.Dispatch("notification fan-out", func(ctx context.Context) error {
			s.afterCreate(ctx, workspaceID, userIDs, notifications)
			return nil
		})
	} else {
		s.afterCreate(ctx, workspaceID, userIDs, notifications)
	}

	return nil
}

func (s *NotificationService) afterCreate(ctx context.Context, workspaceID uuid.UUID, userIDs []uuid.UUID, notifications []domain.Notification) {
	if s.cache != nil {
		for _, userID := range userIDs {
			if err := s.cache.Invalidate(ctx, userID, workspaceID); err != nil {
				log.Warn().Err(err).Msg("failed to invalidate unread cache")
			}
		}
	}

	if s.pub != nil {
		if err := s.pub.Publish(ctx, notifications); err != nil {
			log.Warn().Err(err).Msg("failed to publish notifications")
		}
	}
}

// NotifyWatchers creates one notification per in-app watcher of the target.
// No deduplication against the mention fan-out: a user who is both a watcher
// and a mentioned party receives two notifications.
func (s *NotificationService) NotifyWatchers(ctx context.Context, workspaceID uuid.UUID, targetType, targetID, notifType string, payload json.RawMessage) error {
	watches, err := s.watches.ListByTarget(ctx, workspaceID, targetType, targetID)
	if err != nil {
		return fmt.Errorf("failed to load watchers: %w", err)
	}

	userIDs := make([]uuid.UUID, 0, len(watches))
	for _, watch := range watches {
		if watch.NotifyInApp {
			userIDs = append(userIDs, watch.UserID)
		}
	}
	if len(userIDs) == 0 {
		return nil
	}

	return s.createForUsers(ctx, workspaceID, userIDs, notifType, payload)
}

// NotifyUser creates a single direct notification.
func (s *NotificationService) NotifyUser(ctx context.Context, workspaceID, userID uuid.UUID, notifType string, payload json.RawMessage) error {
	return s.createForUsers(ctx, workspaceID, []uuid.UUID{userID}, notifType, payload)
}

// Watch subscribes a user to a target.
func (s *NotificationService) Watch(ctx context.Context, userID, workspaceID uuid.UUID, input domain.WatchCreate) (*domain.Watch, error) {
	watch := &domain.Watch{
		ID:          uuid.New(),
		UserID:      userID,
		WorkspaceID: workspaceID,
		TargetType:  input.TargetType,
		TargetID:    input.TargetID,
		NotifyInApp: input.NotifyInApp,
		CreatedAt:   time.Now(),
	}

	if err := s.watches.Upsert(ctx, watch); err != nil {
		return nil, fmt.Errorf("failed to create watch: %w", err)
	}

	return watch, nil
}

// Unwatch removes a user's subscription to a target.
func (s *NotificationService) Unwatch(ctx context.Context, userID, workspaceID uuid.UUID, targetType, targetID string) error {
	return s.watches.Delete(ctx, userID, workspaceID, targetType, targetID)
}

// List retrieves a user's notifications in a workspace.
func (s *NotificationService) List(ctx context.Context, userID, workspaceID uuid.UUID, unreadOnly bool, limit int) ([]domain.Notification, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.store.ListByUser(ctx, userID, workspaceID, unreadOnly, limit)
}

// UnreadCount returns the user's unread count, served from cache when fresh.
func (s *NotificationService) UnreadCount(ctx context.Context, userID, workspaceID uuid.UUID) (int64, error) {
	if s.cache != nil {
		if count, ok := s.cache.Get(ctx, userID, workspaceID); ok {
			return count, nil
		}
	}

	count, err := s.store.CountUnread(ctx, userID, workspaceID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, userID, workspaceID, count); err != nil {
			log.Warn().Err(err).Msg("failed to cache unread count")
		}
	}

	return count, nil
}

// MarkRead sets read_at on a notification the user owns. A notification
// owned by someone else is a silent no-op, not an error, so callers cannot
// probe for existence. Marking twice keeps the first timestamp.
func (s *NotificationService) MarkRead(ctx context.Context, notificationID, userID, workspaceID uuid.UUID) error {
	if err := s.store.MarkRead(ctx, notificationID, userID); err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, userID, workspaceID); err != nil {
			log.Warn().Err(err).Msg("failed to invalidate unread cache")
		}
	}

	return nil
}

// MarkAllRead sets read_at on every unread notification the user owns,
// optionally scoped to one workspace.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID, workspaceID *uuid.UUID) error {
	if err := s.store.MarkAllRead(ctx, userID, workspaceID); err != nil {
		return err
	}

	if s.cache != nil {
		var err error
		if workspaceID != nil {
			err = s.cache.Invalidate(ctx, userID, *workspaceID)
		} else {
			err = s.cache.InvalidateUser(ctx, userID)
		}
		if err != nil {
			log.Warn().Err(err).Msg("failed to invalidate unread cache")
		}
	}

	return nil
}
