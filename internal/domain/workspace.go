package domain

import (
	"time"

	"github.com/google/uuid"
)

// Workspace is the tenant boundary. All roles, entities, and notifications
// are scoped to one workspace.
type Workspace struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WorkspaceCreate represents workspace creation data.
type WorkspaceCreate struct {
	Name string `json:"name" validate:"required,max=255"`
}

// WorkspaceUpdate represents workspace update data.
type WorkspaceUpdate struct {
	Name *string `json:"name,omitempty" validate:"omitempty,max=255"`
}
