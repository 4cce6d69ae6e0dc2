package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role is a workspace-scoped permission level, totally ordered.
type Role string

// Role constants, weakest first.
const (
	RoleViewer   Role = "viewer"
	RoleEditor   Role = "editor"
	RoleReviewer Role = "reviewer"
	RoleAdmin    Role = "admin"
)

// roleRanks defines the total order viewer < editor < reviewer < admin.
var roleRanks = map[Role]int{
	RoleViewer:   1,
	RoleEditor:   2,
	RoleReviewer: 3,
	RoleAdmin:    4,
}

// Rank returns the role's position in the total order, or 0 for an unknown role.
func (r Role) Rank() int {
	return roleRanks[r]
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return roleRanks[r] != 0
}

// AtLeast reports whether r grants everything min grants. Any permission
// granted to a role is granted to every higher-ranked role.
func (r Role) AtLeast(min Role) bool {
	return r.Rank() >= min.Rank()
}

// WorkspaceMember binds a user to a workspace with a role. Exactly one
// membership exists per (user, workspace) pair.
type WorkspaceMember struct {
	WorkspaceID uuid.UUID `json:"workspace_id"`
	UserID      uuid.UUID `json:"user_id"`
	Role        Role      `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

// MemberAdd represents a membership invite.
type MemberAdd struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
	Role   Role      `json:"role" validate:"required"`
}

// MemberRoleUpdate changes an existing member's role.
type MemberRoleUpdate struct {
	Role Role `json:"role" validate:"required"`
}
