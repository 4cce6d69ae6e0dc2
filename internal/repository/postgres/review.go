package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/inkwell-app/inkwell/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ReviewRepository handles review request and assignment data access
type ReviewRepository struct {
	db *DB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// ErrOpenRequestExists is returned when a revision already has an open
// review request. Backed by a partial unique index on (revision_id) WHERE
// status = 'open'.
var ErrOpenRequestExists = errors.New("revision already has an open review request")

// CreateRequestTx inserts a review request inside an existing transaction
func (r *ReviewRepository) CreateRequestTx(ctx context.Context, tx pgx.Tx, request *domain.ReviewRequest) error {
	query := `
		INSERT INTO review_requests (id, workspace_id, revision_id, requested_by_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := tx.Exec(ctx, query,
		request.ID,
		request.WorkspaceID,
		request.RevisionID,
		request.RequestedByID,
		request.Status,
		request.CreatedAt,
		request.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrOpenRequestExists
		}
		return fmt.Errorf("failed to create review request: %w", err)
	}

	return nil
}

const reviewRequestSelect = `
	SELECT id, workspace_id, revision_id, requested_by_id, status, created_at, updated_at
	FROM review_requests
`

func scanReviewRequest(row pgx.Row) (*domain.ReviewRequest, error) {
	var request domain.ReviewRequest
	err := row.Scan(
		&request.ID,
		&request.WorkspaceID,
		&request.RevisionID,
		&request.RequestedByID,
		&request.Status,
		&request.CreatedAt,
		&request.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get review request: %w", err)
	}

	return &request, nil
}

// GetRequest retrieves a review request scoped to a workspace
func (r *ReviewRepository) GetRequest(ctx context.Context, workspaceID, requestID uuid.UUID) (*domain.ReviewRequest, error) {
	query := reviewRequestSelect + ` WHERE id = $1 AND workspace_id = $2`
	return scanReviewRequest(r.db.Pool.QueryRow(ctx, query, requestID, workspaceID))
}

// GetOpenRequestByRevisionTx retrieves the open request for a revision, if
// any, inside an existing transaction
func (r *ReviewRepository) GetOpenRequestByRevisionTx(ctx context.Context, tx pgx.Tx, workspaceID, revisionID uuid.UUID) (*domain.ReviewRequest, error) {
	query := reviewRequestSelect + ` WHERE workspace_id = $1 AND revision_id = $2 AND status = 'open'`
	return scanReviewRequest(tx.QueryRow(ctx, query, workspaceID, revisionID))
}

// ListOpenRequests retrieves open review requests in a workspace, oldest first
func (r *ReviewRepository) ListOpenRequests(ctx context.Context, workspaceID uuid.UUID) ([]domain.ReviewRequest, error) {
	query := reviewRequestSelect + ` WHERE workspace_id = $1 AND status = 'open' ORDER BY created_at`

	rows, err := r.db.Pool.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list review requests: %w", err)
	}
	defer rows.Close()

	var requests []domain.ReviewRequest
	for rows.Next() {
		var request domain.ReviewRequest
		if err := rows.Scan(
			&request.ID,
			&request.WorkspaceID,
			&request.RevisionID,
			&request.RequestedByID,
			&request.Status,
			&request.CreatedAt,
			&request.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan review request: %w", err)
		}
		requests = append(requests, request)
	}

	return requests, nil
}

// CloseRequestTx marks a review request closed inside an existing transaction
func (r *ReviewRepository) CloseRequestTx(ctx context.Context, tx pgx.Tx, requestID uuid.UUID) error {
	query := `
		UPDATE review_requests
		SET status = 'closed', updated_at = NOW()
		WHERE id = $1 AND status = 'open'
	`

	if _, err := tx.Exec(ctx, query, requestID); err != nil {
		return fmt.Errorf("failed to close review request: %w", err)
	}

	return nil
}

// CreateAssignmentTx inserts a reviewer assignment inside an existing
// transaction
func (r *ReviewRepository) CreateAssignmentTx(ctx context.Context, tx pgx.Tx, assignment *domain.ReviewAssignment) error {
	query := `
		INSERT INTO review_assignments (id, review_request_id, reviewer_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (review_request_id, reviewer_id) DO NOTHING
	`

	_, err := tx.Exec(ctx, query,
		assignment.ID,
		assignment.ReviewRequestID,
		assignment.ReviewerID,
		assignment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create review assignment: %w", err)
	}

	return nil
}

// ListAssignments retrieves the reviewers assigned to a request
func (r *ReviewRepository) ListAssignments(ctx context.Context, requestID uuid.UUID) ([]domain.ReviewAssignment, error) {
	query := `
		SELECT id, review_request_id, reviewer_id, created_at
		FROM review_assignments
		WHERE review_request_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Pool.Query(ctx, query, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to list review assignments: %w", err)
	}
	defer rows.Close()

	var assignments []domain.ReviewAssignment
	for rows.Next() {
		var assignment domain.ReviewAssignment
		if err := rows.Scan(
			&assignment.ID,
			&assignment.ReviewRequestID,
			&assignment.ReviewerID,
			&assignment.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan review assignment: %w", err)
		}
		assignments = append(assignments, assignment)
	}

	return assignments, nil
}
