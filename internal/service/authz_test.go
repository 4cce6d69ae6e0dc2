package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/inkwell-app/inkwell/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memberWithRole(workspaceID, userID uuid.UUID, role domain.Role) *domain.WorkspaceMember {
	return &domain.WorkspaceMember{
		WorkspaceID: workspaceID,
		UserID:      userID,
		Role:        role,
	}
}

func TestAuthorizer_RoleOrder(t *testing.T) {
	ctx := context.Background()
	workspaceID := uuid.New()
	userID := uuid.New()

	roles := []domain.Role{domain.RoleViewer, domain.RoleEditor, domain.RoleReviewer, domain.RoleAdmin}

	// Any permission granted to a role is granted to every higher role.
	for _, required := range roles {
		for _, held := range roles {
			store := new(MockWorkspaceStore)
			store.On("GetMember", ctx, workspaceID, userID).Return(memberWithRole(workspaceID, userID, held), nil)

			authz := NewAuthorizer(store)
			member, err := authz.Authorize(ctx, userID, workspaceID, required)

			if held.Rank() >= required.Rank() {
				require.NoError(t, err, "role %s should satisfy minimum %s", held, required)
				assert.Equal(t, held, member.Role)
			} else {
				assert.ErrorIs(t, err, domain.ErrInsufficientRole, "role %s should not satisfy minimum %s", held, required)
			}
		}
	}
}

func TestAuthorizer_NotAMember(t *testing.T) {
	ctx := context.Background()
	workspaceID := uuid.New()
	userID := uuid.New()

	store := new(MockWorkspaceStore)
	store.On("GetMember", ctx, workspaceID, userID).Return(nil, nil)

	authz := NewAuthorizer(store)
	_, err := authz.Authorize(ctx, userID, workspaceID, domain.RoleViewer)

	assert.ErrorIs(t, err, domain.ErrNotAMember)
	assert.True(t, domain.IsForbidden(err))
}

func TestAuthorizer_BothFailuresAreForbidden(t *testing.T) {
	assert.True(t, domain.IsForbidden(domain.ErrNotAMember))
	assert.True(t, domain.IsForbidden(domain.ErrInsufficientRole))
	assert.False(t, domain.IsForbidden(domain.ErrNotFound))
	assert.False(t, domain.IsForbidden(domain.ErrInvalidInput))
}

func TestRole_Rank(t *testing.T) {
	assert.Less(t, domain.RoleViewer.Rank(), domain.RoleEditor.Rank())
	assert.Less(t, domain.RoleEditor.Rank(), domain.RoleReviewer.Rank())
	assert.Less(t, domain.RoleReviewer.Rank(), domain.RoleAdmin.Rank())
	assert.Zero(t, domain.Role("owner").Rank())
	assert.False(t, domain.Role("owner").Valid())
}
