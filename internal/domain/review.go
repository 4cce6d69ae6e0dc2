package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReviewRequestStatus is the lifecycle state of a review request.
type ReviewRequestStatus string

const (
	ReviewRequestOpen   ReviewRequestStatus = "open"
	ReviewRequestClosed ReviewRequestStatus = "closed"
)

// ReviewRequest asks for review of a submitted revision. At most one open
// request exists per revision; closing happens when the revision is approved
// or rejected.
type ReviewRequest struct {
	ID            uuid.UUID           `json:"id"`
	WorkspaceID   uuid.UUID           `json:"workspace_id"`
	RevisionID    uuid.UUID           `json:"revision_id"`
	RequestedByID uuid.UUID           `json:"requested_by_id"`
	Status        ReviewRequestStatus `json:"status"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// ReviewAssignment attaches one reviewer to a review request. A request may
// carry many assignments.
type ReviewAssignment struct {
	ID              uuid.UUID `json:"id"`
	ReviewRequestID uuid.UUID `json:"review_request_id"`
	ReviewerID      uuid.UUID `json:"reviewer_id"`
	CreatedAt       time.Time `json:"created_at"`
}

// ReviewerAssign represents a reviewer assignment request.
type ReviewerAssign struct {
	ReviewerID uuid.UUID `json:"reviewer_id" validate:"required"`
}

// ReviewResolve represents an approve/reject decision on a revision.
type ReviewResolve struct {
	Note string `json:"note,omitempty" validate:"max=2000"`
}
