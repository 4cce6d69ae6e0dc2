package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/inkwell-app/inkwell/internal/domain"
	"github.com/inkwell-app/inkwell/internal/repository/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// TxRunner runs a function inside a storage transaction.
type TxRunner interface {
	InTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}

// RevisionStore is the revision access the workflow needs.
type RevisionStore interface {
	GetRevision(ctx context.Context, workspaceID, revisionID uuid.UUID) (*domain.Revision, error)
	GetRevisionTx(ctx context.Context, tx pgx.Tx, workspaceID, revisionID uuid.UUID) (*domain.Revision, error)
	UpdateRevisionStatusTx(ctx context.Context, tx pgx.Tx, workspaceID, revisionID uuid.UUID, status domain.RevisionStatus) error
}

// ReviewStore is the review request/assignment access the workflow needs.
type ReviewStore interface {
	CreateRequestTx(ctx context.Context, tx pgx.Tx, request *domain.ReviewRequest) error
	GetRequest(ctx context.Context, workspaceID, requestID uuid.UUID) (*domain.ReviewRequest, error)
	GetOpenRequestByRevisionTx(ctx context.Context, tx pgx.Tx, workspaceID, revisionID uuid.UUID) (*domain.ReviewRequest, error)
	CloseRequestTx(ctx context.Context, tx pgx.Tx, requestID uuid.UUID) error
	CreateAssignmentTx(ctx context.Context, tx pgx.Tx, assignment *domain.ReviewAssignment) error
	ListOpenRequests(ctx context.Context, workspaceID uuid.UUID) ([]domain.ReviewRequest, error)
}

// AuditTxStore appends an audit entry inside an existing transaction.
type AuditTxStore interface {
	AppendTx(ctx context.Context, tx pgx.Tx, entry *domain.AuditLogEntry) error
}

// ReviewService is the state machine governing revision submission, reviewer
// assignment, and resolution. Authorization happens before any mutation; the
// mutation, the review-request row, and the audit entry commit in one
// transaction; notifications fan out after commit.
type ReviewService struct {
	tx            TxRunner
	revisions     RevisionStore
	reviews       ReviewStore
	auditTx       AuditTxStore
	authz         *Authorizer
	notifications *NotificationService
}

// NewReviewService creates a new review service
func NewReviewService(tx TxRunner, revisions RevisionStore, reviews ReviewStore, auditTx AuditTxStore, authz *Authorizer, notifications *NotificationService) *ReviewService {
	return &ReviewService{
		tx:            tx,
		revisions:     revisions,
		reviews:       reviews,
		auditTx:       auditTx,
		authz:         authz,
		notifications: notifications,
	}
}

// Submit moves a draft or rejected revision to submitted and opens a review
// request. Requires at least editor. The submitting author is implicitly
// subscribed to the revision, so the watcher fan-out after commit covers the
// author-visibility self-notification.
func (s *ReviewService) Submit(ctx context.Context, actorUserID, workspaceID, revisionID uuid.UUID) (*domain.ReviewRequest, error) {
	if _, err := s.authz.Authorize(ctx, actorUserID, workspaceID, domain.RoleEditor); err != nil {
		return nil, err
	}

	now := time.Now()
	request := &domain.ReviewRequest{
		ID:            uuid.New(),
		WorkspaceID:   workspaceID,
		RevisionID:    revisionID,
		RequestedByID: actorUserID,
		Status:        domain.ReviewRequestOpen,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err := s.tx.InTx(ctx, func(tx pgx.Tx) error {
		revision, err := s.revisions.GetRevisionTx(ctx, tx, workspaceID, revisionID)
		if err != nil {
			return err
		}
		if revision == nil {
			return fmt.Errorf("revision %s: %w", revisionID, domain.ErrNotFound)
		}
		if revision.Status != domain.RevisionDraft && revision.Status != domain.RevisionRejected {
			return fmt.Errorf("revision is %s: %w", revision.Status, domain.ErrInvalidInput)
		}

		if err := s.revisions.UpdateRevisionStatusTx(ctx, tx, workspaceID, revisionID, domain.RevisionSubmitted); err != nil {
			return err
		}

		if err := s.reviews.CreateRequestTx(ctx, tx, request); err != nil {
			return err
		}

		return s.auditTx.AppendTx(ctx, tx, &domain.AuditLogEntry{
			ID:          uuid.New(),
			WorkspaceID: workspaceID,
			ActorUserID: actorUserID,
			Action:      domain.ActionSubmitReview,
			TargetType:  domain.TargetRevision,
			TargetID:    revisionID.String(),
			Meta:        domain.MetaAbsent(),
			CreatedAt:   now,
		})
	})
	if err != nil {
		if errors.Is(err, postgres.ErrOpenRequestExists) {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
		}
		return nil, err
	}

	// Implicit watch: submitting subscribes the author to the revision.
	if _, err := s.notifications.Watch(ctx, actorUserID, workspaceID, domain.WatchCreate{
		TargetType:  domain.TargetRevision,
		TargetID:    revisionID.String(),
		NotifyInApp: true,
	}); err != nil {
		log.Warn().Err(err).Msg("failed to create implicit watch on submit")
	}

	payload, _ := json.Marshal(map[string]string{
		"revision_id":       revisionID.String(),
		"review_request_id": request.ID.String(),
	})
	if err := s.notifications.NotifyWatchers(ctx, workspaceID, domain.TargetRevision, revisionID.String(), domain.NotificationRevisionSubmitted, payload); err != nil {
		log.Warn().Err(err).Msg("failed to notify watchers on submit")
	}

	return request, nil
}

// AssignReviewer attaches a reviewer to an open review request. Requires
// admin: assignment is privileged, stricter than submission. Assignment and
// audit entry commit together; the reviewer notification follows commit.
func (s *ReviewService) AssignReviewer(ctx context.Context, actorUserID, workspaceID, requestID, reviewerID uuid.UUID) (*domain.ReviewAssignment, error) {
	if _, err := s.authz.Authorize(ctx, actorUserID, workspaceID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	request, err := s.reviews.GetRequest(ctx, workspaceID, requestID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, fmt.Errorf("review request %s: %w", requestID, domain.ErrNotFound)
	}
	if request.Status != domain.ReviewRequestOpen {
		return nil, fmt.Errorf("review request is closed: %w", domain.ErrInvalidInput)
	}

	now := time.Now()
	assignment := &domain.ReviewAssignment{
		ID:              uuid.New(),
		ReviewRequestID: requestID,
		ReviewerID:      reviewerID,
		CreatedAt:       now,
	}

	meta, err := domain.MetaValue(map[string]string{"reviewerId": reviewerID.String()})
	if err != nil {
		return nil, err
	}

	err = s.tx.InTx(ctx, func(tx pgx.Tx) error {
		if err := s.reviews.CreateAssignmentTx(ctx, tx, assignment); err != nil {
			return err
		}

		return s.auditTx.AppendTx(ctx, tx, &domain.AuditLogEntry{
			ID:          uuid.New(),
			WorkspaceID: workspaceID,
			ActorUserID: actorUserID,
			Action:      domain.ActionAssignReviewer,
			TargetType:  domain.TargetRevision,
			TargetID:    request.RevisionID.String(),
			Meta:        meta,
			CreatedAt:   now,
		})
	})
	if err != nil {
		return nil, err
	}

	payload, _ := json.Marshal(map[string]string{
		"revision_id":       request.RevisionID.String(),
		"review_request_id": requestID.String(),
	})
	if err := s.notifications.NotifyUser(ctx, workspaceID, reviewerID, domain.NotificationReviewAssigned, payload); err != nil {
		log.Warn().Err(err).Msg("failed to notify assigned reviewer")
	}

	return assignment, nil
}

// Resolve approves or rejects a submitted revision and closes its open
// review request. Requires at least reviewer. The requester is notified
// after commit.
func (s *ReviewService) Resolve(ctx context.Context, actorUserID, workspaceID, revisionID uuid.UUID, approve bool, note string) error {
	if _, err := s.authz.Authorize(ctx, actorUserID, workspaceID, domain.RoleReviewer); err != nil {
		return err
	}

	status := domain.RevisionRejected
	action := domain.ActionRejectReview
	if approve {
		status = domain.RevisionApproved
		action = domain.ActionApproveReview
	}

	meta := domain.MetaNull()
	if note != "" {
		var err error
		meta, err = domain.MetaValue(map[string]string{"note": note})
		if err != nil {
			return err
		}
	}

	var requestedBy *uuid.UUID
	now := time.Now()

	err := s.tx.InTx(ctx, func(tx pgx.Tx) error {
		revision, err := s.revisions.GetRevisionTx(ctx, tx, workspaceID, revisionID)
		if err != nil {
			return err
		}
		if revision == nil {
			return fmt.Errorf("revision %s: %w", revisionID, domain.ErrNotFound)
		}
		if revision.Status != domain.RevisionSubmitted {
			return fmt.Errorf("revision is %s: %w", revision.Status, domain.ErrInvalidInput)
		}

		if err := s.revisions.UpdateRevisionStatusTx(ctx, tx, workspaceID, revisionID, status); err != nil {
			return err
		}

		request, err := s.reviews.GetOpenRequestByRevisionTx(ctx, tx, workspaceID, revisionID)
		if err != nil {
			return err
		}
		if request != nil {
			if err := s.reviews.CloseRequestTx(ctx, tx, request.ID); err != nil {
				return err
			}
			requestedBy = &request.RequestedByID
		}

		return s.auditTx.AppendTx(ctx, tx, &domain.AuditLogEntry{
			ID:          uuid.New(),
			WorkspaceID: workspaceID,
			ActorUserID: actorUserID,
			Action:      action,
			TargetType:  domain.TargetRevision,
			TargetID:    revisionID.String(),
			Meta:        meta,
			CreatedAt:   now,
		})
	})
	if err != nil {
		return err
	}

	if requestedBy != nil {
		payload, _ := json.Marshal(map[string]string{
			"revision_id": revisionID.String(),
			"status":      string(status),
		})
		if err := s.notifications.NotifyUser(ctx, workspaceID, *requestedBy, domain.NotificationReviewResolved, payload); err != nil {
			log.Warn().Err(err).Msg("failed to notify requester of resolution")
		}
	}

	return nil
}

// ListOpenRequests retrieves open review requests in a workspace. Requires
// at least reviewer.
func (s *ReviewService) ListOpenRequests(ctx context.Context, actorUserID, workspaceID uuid.UUID) ([]domain.ReviewRequest, error) {
	if _, err := s.authz.Authorize(ctx, actorUserID, workspaceID, domain.RoleReviewer); err != nil {
		return nil, err
	}
	return s.reviews.ListOpenRequests(ctx, workspaceID)
}
