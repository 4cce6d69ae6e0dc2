package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/inkwell-app/inkwell/internal/domain"
	"github.com/jackc/pgx/v5"
)

// WorkspaceRepository handles workspace and membership data access
type WorkspaceRepository struct {
	db *DB
}

// NewWorkspaceRepository creates a new workspace repository
func NewWorkspaceRepository(db *DB) *WorkspaceRepository {
	return &WorkspaceRepository{db: db}
}

// Create creates a new workspace
func (r *WorkspaceRepository) Create(ctx context.Context, workspace *domain.Workspace) error {
	query := `
		INSERT INTO workspaces (id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		workspace.ID,
		workspace.Name,
		workspace.CreatedAt,
		workspace.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create workspace: %w", err)
	}

	return nil
}

// GetByID retrieves a workspace by ID
func (r *WorkspaceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Workspace, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM workspaces
		WHERE id = $1
	`

	var workspace domain.Workspace
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&workspace.ID,
		&workspace.Name,
		&workspace.CreatedAt,
		&workspace.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}

	return &workspace, nil
}

// ListByUserID retrieves all workspaces a user is a member of
func (r *WorkspaceRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Workspace, error) {
	query := `
		SELECT w.id, w.name, w.created_at, w.updated_at
		FROM workspaces w
		INNER JOIN workspace_members wm ON w.id = wm.workspace_id
		WHERE wm.user_id = $1
		ORDER BY w.created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}
	defer rows.Close()

	var workspaces []domain.Workspace
	for rows.Next() {
		var workspace domain.Workspace
		if err := rows.Scan(
			&workspace.ID,
			&workspace.Name,
			&workspace.CreatedAt,
			&workspace.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan workspace: %w", err)
		}
		workspaces = append(workspaces, workspace)
	}

	return workspaces, nil
}

// Update updates a workspace
func (r *WorkspaceRepository) Update(ctx context.Context, id uuid.UUID, update *domain.WorkspaceUpdate) error {
	query := `
		UPDATE workspaces
		SET name = COALESCE($2, name),
		    updated_at = NOW()
		WHERE id = $1
	`

	_, err := r.db.Pool.Exec(ctx, query, id, update.Name)
	if err != nil {
		return fmt.Errorf("failed to update workspace: %w", err)
	}

	return nil
}

// Delete deletes a workspace
func (r *WorkspaceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM workspaces WHERE id = $1`

	_, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete workspace: %w", err)
	}

	return nil
}

// AddMember adds or updates a workspace member
func (r *WorkspaceRepository) AddMember(ctx context.Context, member *domain.WorkspaceMember) error {
	query := `
		INSERT INTO workspace_members (workspace_id, user_id, role, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (workspace_id, user_id) DO UPDATE SET role = $3
	`

	_, err := r.db.Pool.Exec(ctx, query,
		member.WorkspaceID,
		member.UserID,
		member.Role,
		member.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}

	return nil
}

// GetMember retrieves the unique membership row for (workspace, user)
func (r *WorkspaceRepository) GetMember(ctx context.Context, workspaceID, userID uuid.UUID) (*domain.WorkspaceMember, error) {
	query := `
		SELECT workspace_id, user_id, role, created_at
		FROM workspace_members
		WHERE workspace_id = $1 AND user_id = $2
	`

	var member domain.WorkspaceMember
	err := r.db.Pool.QueryRow(ctx, query, workspaceID, userID).Scan(
		&member.WorkspaceID,
		&member.UserID,
		&member.Role,
		&member.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	return &member, nil
}

// ListMembers retrieves all members of a workspace
func (r *WorkspaceRepository) ListMembers(ctx context.Context, workspaceID uuid.UUID) ([]domain.WorkspaceMember, error) {
	query := `
		SELECT workspace_id, user_id, role, created_at
		FROM workspace_members
		WHERE workspace_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Pool.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []domain.WorkspaceMember
	for rows.Next() {
		var member domain.WorkspaceMember
		if err := rows.Scan(
			&member.WorkspaceID,
			&member.UserID,
			&member.Role,
			&member.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, member)
	}

	return members, nil
}

// FindMembersByHandles resolves lowercase handles against the member's email
// local part or display name, case-insensitively. Handles never contain '@',
// so the email side matches everything before it. Callers must not pass an
// empty handle list; resolving zero handles is the caller's no-op, not a
// query.
func (r *WorkspaceRepository) FindMembersByHandles(ctx context.Context, workspaceID uuid.UUID, handles []string) ([]uuid.UUID, error) {
	if len(handles) == 0 {
		return nil, errors.New("no handles to resolve")
	}

	query := `
		SELECT DISTINCT wm.user_id
		FROM workspace_members wm
		INNER JOIN users u ON u.id = wm.user_id
		WHERE wm.workspace_id = $1
		  AND (lower(split_part(u.email, '@', 1)) = ANY($2) OR lower(u.display_name) = ANY($2))
	`

	rows, err := r.db.Pool.Query(ctx, query, workspaceID, handles)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve handles: %w", err)
	}
	defer rows.Close()

	var userIDs []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		userIDs = append(userIDs, id)
	}

	return userIDs, nil
}

// RemoveMember removes a member from a workspace
func (r *WorkspaceRepository) RemoveMember(ctx context.Context, workspaceID, userID uuid.UUID) error {
	query := `DELETE FROM workspace_members WHERE workspace_id = $1 AND user_id = $2`

	_, err := r.db.Pool.Exec(ctx, query, workspaceID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	return nil
}
