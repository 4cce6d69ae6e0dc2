package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/inkwell-app/inkwell/internal/api/response"
	"github.com/inkwell-app/inkwell/internal/domain"
	"github.com/inkwell-app/inkwell/internal/service"
)

// ReviewHandler handles the revision review workflow endpoints
type ReviewHandler struct {
	reviewService *service.ReviewService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviewService *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// Submit handles submitting a revision for review
func (h *ReviewHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, workspaceID, ok := actorAndWorkspace(w, r)
	if !ok {
		return
	}

	revisionID, err := uuid.Parse(chi.URLParam(r, "revisionID"))
	if err != nil {
		response.BadRequest(w, "invalid revision ID")
		return
	}

	request, err := h.reviewService.Submit(r.Context(), userID, workspaceID, revisionID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, request)
}

// Assign handles assigning a reviewer to an open review request
func (h *ReviewHandler) Assign(w http.ResponseWriter, r *http.Request) {
	userID, workspaceID, ok := actorAndWorkspace(w, r)
	if !ok {
		return
	}

	requestID, err := uuid.Parse(chi.URLParam(r, "requestID"))
	if err != nil {
		response.BadRequest(w, "invalid request ID")
		return
	}

	var input domain.ReviewerAssign
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	assignment, err := h.reviewService.AssignReviewer(r.Context(), userID, workspaceID, requestID, input.ReviewerID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, assignment)
}

// Approve handles approving a submitted revision
func (h *ReviewHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, true)
}

// Reject handles rejecting a submitted revision
func (h *ReviewHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, false)
}

func (h *ReviewHandler) resolve(w http.ResponseWriter, r *http.Request, approve bool) {
	userID, workspaceID, ok := actorAndWorkspace(w, r)
	if !ok {
		return
	}

	revisionID, err := uuid.Parse(chi.URLParam(r, "revisionID"))
	if err != nil {
		response.BadRequest(w, "invalid revision ID")
		return
	}

	// The note is optional; an empty body is the common case.
	var input domain.ReviewResolve
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			response.BadRequest(w, "invalid request body")
			return
		}
		if err := validate.Struct(input); err != nil {
			response.BadRequest(w, err.Error())
			return
		}
	}

	if err := h.reviewService.Resolve(r.Context(), userID, workspaceID, revisionID, approve, input.Note); err != nil {
		response.FromError(w, err)
		return
	}

	status := domain.RevisionApproved
	if !approve {
		status = domain.RevisionRejected
	}
	response.OK(w, map[string]any{
		"revision_id": revisionID,
		"status":      status,
	})
}

// ListOpen handles listing open review requests in a workspace
func (h *ReviewHandler) ListOpen(w http.ResponseWriter, r *http.Request) {
	userID, workspaceID, ok := actorAndWorkspace(w, r)
	if !ok {
		return
	}

	requests, err := h.reviewService.ListOpenRequests(r.Context(), userID, workspaceID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, requests)
}
