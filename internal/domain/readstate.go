package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReadState is a per-user bookmark of the last-seen position on a target.
// At most one row exists per (user, workspace, target type, target id);
// re-marking overwrites, never appends.
type ReadState struct {
	UserID             uuid.UUID  `json:"user_id"`
	WorkspaceID        uuid.UUID  `json:"workspace_id"`
	TargetType         string     `json:"target_type"`
	TargetID           string     `json:"target_id"`
	LastReadAt         time.Time  `json:"last_read_at"`
	LastReadRevisionID *uuid.UUID `json:"last_read_revision_id,omitempty"`
}

// ReadStateMark represents a mark-read request.
type ReadStateMark struct {
	TargetType         string     `json:"target_type" validate:"required,max=64"`
	TargetID           string     `json:"target_id" validate:"required,max=255"`
	LastReadRevisionID *uuid.UUID `json:"last_read_revision_id,omitempty"`
}
