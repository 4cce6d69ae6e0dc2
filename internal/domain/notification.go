package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Notification types produced by the fan-out paths.
const (
	NotificationMention           = "mention"
	NotificationReviewAssigned    = "review_assigned"
	NotificationRevisionSubmitted = "revision_submitted"
	NotificationReviewResolved    = "review_resolved"
	NotificationMemberAdded       = "member_added"
)

// Notification is an in-app message addressed to exactly one user. Fan-out
// to N watchers produces N independent rows, never one shared record. The
// only mutation after creation is setting ReadAt.
type Notification struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"user_id"`
	WorkspaceID uuid.UUID       `json:"workspace_id"`
	Type        string          `json:"type"`
	Payload     json.RawMessage `json:"payload,omitempty"`
	ReadAt      *time.Time      `json:"read_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Watch subscribes a user to in-app notifications for one target. Created
// explicitly by the user or implicitly by workflow actions such as
// submitting a revision.
type Watch struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	WorkspaceID uuid.UUID `json:"workspace_id"`
	TargetType  string    `json:"target_type"`
	TargetID    string    `json:"target_id"`
	NotifyInApp bool      `json:"notify_in_app"`
	CreatedAt   time.Time `json:"created_at"`
}

// WatchCreate represents a watch subscription request.
type WatchCreate struct {
	TargetType  string `json:"target_type" validate:"required,max=64"`
	TargetID    string `json:"target_id" validate:"required,max=255"`
	NotifyInApp bool   `json:"notify_in_app"`
}
