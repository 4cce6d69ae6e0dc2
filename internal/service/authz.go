package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/inkwell-app/inkwell/internal/domain"
	"github.com/rs/zerolog/log"
)

// MembershipStore is the lookup the authorizer needs.
type MembershipStore interface {
	GetMember(ctx context.Context, workspaceID, userID uuid.UUID) (*domain.WorkspaceMember, error)
}

// Authorizer resolves an actor's role within a workspace and enforces a
// minimum-role requirement. Pure read, no side effects. Every mutating
// operation calls Authorize before touching storage.
type Authorizer struct {
	members MembershipStore
}

// NewAuthorizer creates a new authorizer
func NewAuthorizer(members MembershipStore) *Authorizer {
	return &Authorizer{members: members}
}

// Authorize looks up the actor's membership and checks it against minRole.
// Returns ErrNotAMember or ErrInsufficientRole; callers surface both as the
// same opaque forbidden outcome, the distinction is for logs only.
func (a *Authorizer) Authorize(ctx context.Context, actorUserID, workspaceID uuid.UUID, minRole domain.Role) (*domain.WorkspaceMember, error) {
	member, err := a.members.GetMember(ctx, workspaceID, actorUserID)
	if err != nil {
		// A storage failure here is never treated as a denial.
		return nil, fmt.Errorf("failed to look up membership: %v: %w", err, domain.ErrStorageUnavailable)
	}
	if member == nil {
		log.Debug().
			Str("actor", actorUserID.String()).
			Str("workspace", workspaceID.String()).
			Msg("authorization denied: no membership")
		return nil, domain.ErrNotAMember
	}

	if !member.Role.AtLeast(minRole) {
		log.Debug().
			Str("actor", actorUserID.String()).
			Str("workspace", workspaceID.String()).
			Str("role", string(member.Role)).
			Str("required", string(minRole)).
			Msg("authorization denied: insufficient role")
		return nil, domain.ErrInsufficientRole
	}

	return member, nil
}
