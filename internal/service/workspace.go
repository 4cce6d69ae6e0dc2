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

// WorkspaceStore is the workspace and membership persistence the service
// needs.
type WorkspaceStore interface {
	MembershipStore
	Create(ctx context.Context, workspace *domain.Workspace) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Workspace, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Workspace, error)
	Update(ctx context.Context, id uuid.UUID, update *domain.WorkspaceUpdate) error
	Delete(ctx context.Context, id uuid.UUID) error
	AddMember(ctx context.Context, member *domain.WorkspaceMember) error
	ListMembers(ctx context.Context, workspaceID uuid.UUID) ([]domain.WorkspaceMember, error)
	RemoveMember(ctx context.Context, workspaceID, userID uuid.UUID) error
}

// WorkspaceService handles workspace and membership operations
type WorkspaceService struct {
	store         WorkspaceStore
	authz         *Authorizer
	audit         *AuditRecorder
	notifications *NotificationService
}

// NewWorkspaceService creates a new workspace service
func NewWorkspaceService(store WorkspaceStore, authz *Authorizer, audit *AuditRecorder, notifications *NotificationService) *WorkspaceService {
	return &WorkspaceService{
		store:         store,
		authz:         authz,
		audit:         audit,
		notifications: notifications,
	}
}

// Create creates a new workspace and adds the creator as admin
func (s *WorkspaceService) Create(ctx context.Context, userID uuid.UUID, input domain.WorkspaceCreate) (*domain.Workspace, error) {
	now := time.Now()
	workspace := &domain.Workspace{
		ID:        uuid.New(),
		Name:      input.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.Create(ctx, workspace); err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	member := &domain.WorkspaceMember{
		WorkspaceID: workspace.ID,
		UserID:      userID,
		Role:        domain.RoleAdmin,
		CreatedAt:   now,
	}

	if err := s.store.AddMember(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to add creator: %w", err)
	}

	return workspace, nil
}

// GetByID retrieves a workspace, members only
func (s *WorkspaceService) GetByID(ctx context.Context, userID, workspaceID uuid.UUID) (*domain.Workspace, error) {
	if _, err := s.authz.Authorize(ctx, userID, workspaceID, domain.RoleViewer); err != nil {
		return nil, err
	}

	workspace, err := s.store.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}
	if workspace == nil {
		return nil, fmt.Errorf("workspace %s: %w", workspaceID, domain.ErrNotFound)
	}

	return workspace, nil
}

// ListByUser retrieves all workspaces the user belongs to
func (s *WorkspaceService) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Workspace, error) {
	workspaces, err := s.store.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}
	return workspaces, nil
}

// Update updates a workspace, admin only
func (s *WorkspaceService) Update(ctx context.Context, userID, workspaceID uuid.UUID, input domain.WorkspaceUpdate) (*domain.Workspace, error) {
	if _, err := s.authz.Authorize(ctx, userID, workspaceID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	if err := s.store.Update(ctx, workspaceID, &input); err != nil {
		return nil, fmt.Errorf("failed to update workspace: %w", err)
	}

	return s.store.GetByID(ctx, workspaceID)
}

// Delete deletes a workspace, admin only
func (s *WorkspaceService) Delete(ctx context.Context, userID, workspaceID uuid.UUID) error {
	if _, err := s.authz.Authorize(ctx, userID, workspaceID, domain.RoleAdmin); err != nil {
		return err
	}
	return s.store.Delete(ctx, workspaceID)
}

// ListMembers retrieves workspace members, members only
func (s *WorkspaceService) ListMembers(ctx context.Context, userID, workspaceID uuid.UUID) ([]domain.WorkspaceMember, error) {
	if _, err := s.authz.Authorize(ctx, userID, workspaceID, domain.RoleViewer); err != nil {
		return nil, err
	}
	return s.store.ListMembers(ctx, workspaceID)
}

// AddMember invites a user into the workspace, admin only
func (s *WorkspaceService) AddMember(ctx context.Context, actorUserID, workspaceID uuid.UUID, input domain.MemberAdd) error {
	if _, err := s.authz.Authorize(ctx, actorUserID, workspaceID, domain.RoleAdmin); err != nil {
		return err
	}

	if !input.Role.Valid() {
		return fmt.Errorf("unknown role %q: %w", input.Role, domain.ErrInvalidInput)
	}

	member := &domain.WorkspaceMember{
		WorkspaceID: workspaceID,
		UserID:      input.UserID,
		Role:        input.Role,
		CreatedAt:   time.Now(),
	}

	if err := s.store.AddMember(ctx, member); err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}

	meta, _ := domain.MetaValue(map[string]string{"role": string(input.Role)})
	if _, err := s.audit.Record(ctx, workspaceID, actorUserID, domain.ActionAddMember, domain.TargetMember, input.UserID.String(), meta); err != nil {
		return err
	}

	payload, _ := json.Marshal(map[string]string{"workspace_id": workspaceID.String()})
	if err := s.notifications.NotifyUser(ctx, workspaceID, input.UserID, domain.NotificationMemberAdded, payload); err != nil {
		log.Warn().Err(err).Msg("failed to notify added member")
	}

	return nil
}

// ChangeMemberRole updates an existing member's role, admin only
func (s *WorkspaceService) ChangeMemberRole(ctx context.Context, actorUserID, workspaceID, userID uuid.UUID, role domain.Role) error {
	if _, err := s.authz.Authorize(ctx, actorUserID, workspaceID, domain.RoleAdmin); err != nil {
		return err
	}

	if !role.Valid() {
		return fmt.Errorf("unknown role %q: %w", role, domain.ErrInvalidInput)
	}

	member, err := s.store.GetMember(ctx, workspaceID, userID)
	if err != nil {
		return fmt.Errorf("failed to get member: %w", err)
	}
	if member == nil {
		return fmt.Errorf("member %s: %w", userID, domain.ErrNotFound)
	}

	member.Role = role
	if err := s.store.AddMember(ctx, member); err != nil {
		return fmt.Errorf("failed to change role: %w", err)
	}

	meta, _ := domain.MetaValue(map[string]string{"role": string(role)})
	_, err = s.audit.Record(ctx, workspaceID, actorUserID, domain.ActionChangeRole, domain.TargetMember, userID.String(), meta)
	return err
}

// RemoveMember removes a member from the workspace, admin only
func (s *WorkspaceService) RemoveMember(ctx context.Context, actorUserID, workspaceID, userID uuid.UUID) error {
	if _, err := s.authz.Authorize(ctx, actorUserID, workspaceID, domain.RoleAdmin); err != nil {
		return err
	}

	member, err := s.store.GetMember(ctx, workspaceID, userID)
	if err != nil {
		return fmt.Errorf("failed to get member: %w", err)
	}
	if member == nil {
		return fmt.Errorf("member %s: %w", userID, domain.ErrNotFound)
	}

	if err := s.store.RemoveMember(ctx, workspaceID, userID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	_, err = s.audit.Record(ctx, workspaceID, actorUserID, domain.ActionRemoveMember, domain.TargetMember, userID.String(), domain.MetaAbsent())
	return err
}
