package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/inkwell-app/inkwell/internal/api/middleware"
	"github.com/inkwell-app/inkwell/internal/api/response"
	"github.com/inkwell-app/inkwell/internal/domain"
	"github.com/inkwell-app/inkwell/internal/service"
)

// WorkspaceHandler handles workspace and membership endpoints
type WorkspaceHandler struct {
	workspaceService *service.WorkspaceService
}

// NewWorkspaceHandler creates a new workspace handler
func NewWorkspaceHandler(workspaceService *service.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{workspaceService: workspaceService}
}

// Create handles workspace creation
func (h *WorkspaceHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var input domain.WorkspaceCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	workspace, err := h.workspaceService.Create(r.Context(), userID, input)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, workspace)
}

// List handles listing the user's workspaces
func (h *WorkspaceHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	workspaces, err := h.workspaceService.ListByUser(r.Context(), userID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, workspaces)
}

// Get handles getting a workspace by ID
func (h *WorkspaceHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, workspaceID, ok := actorAndWorkspace(w, r)
	if !ok {
		return
	}

	workspace, err := h.workspaceService.GetByID(r.Context(), userID, workspaceID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, workspace)
}

// Update handles updating a workspace
func (h *WorkspaceHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, workspaceID, ok := actorAndWorkspace(w, r)
	if !ok {
		return
	}

	var input domain.WorkspaceUpdate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	workspace, err := h.workspaceService.Update(r.Context(), userID, workspaceID, input)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, workspace)
}

// Delete handles deleting a workspace
func (h *WorkspaceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, workspaceID, ok := actorAndWorkspace(w, r)
	if !ok {
		return
	}

	if err := h.workspaceService.Delete(r.Context(), userID, workspaceID); err != nil {
		response.FromError(w, err)
		return
	}

	response.NoContent(w)
}

// ListMembers handles listing workspace members
func (h *WorkspaceHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	userID, workspaceID, ok := actorAndWorkspace(w, r)
	if !ok {
		return
	}

	members, err := h.workspaceService.ListMembers(r.Context(), userID, workspaceID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, members)
}

// AddMember handles adding a member to a workspace
func (h *WorkspaceHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	userID, workspaceID, ok := actorAndWorkspace(w, r)
	if !ok {
		return
	}

	var input domain.MemberAdd
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	if err := h.workspaceService.AddMember(r.Context(), userID, workspaceID, input); err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, map[string]any{
		"user_id": input.UserID,
		"role":    input.Role,
	})
}

// ChangeMemberRole handles changing a member's role
func (h *WorkspaceHandler) ChangeMemberRole(w http.ResponseWriter, r *http.Request) {
	userID, workspaceID, ok := actorAndWorkspace(w, r)
	if !ok {
		return
	}

	memberID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		response.BadRequest(w, "invalid user ID")
		return
	}

	var input domain.MemberRoleUpdate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	if err := h.workspaceService.ChangeMemberRole(r.Context(), userID, workspaceID, memberID, input.Role); err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, map[string]any{
		"user_id": memberID,
		"role":    input.Role,
	})
}

// RemoveMember handles removing a member from a workspace
func (h *WorkspaceHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	userID, workspaceID, ok := actorAndWorkspace(w, r)
	if !ok {
		return
	}

	memberID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		response.BadRequest(w, "invalid user ID")
		return
	}

	if err := h.workspaceService.RemoveMember(r.Context(), userID, workspaceID, memberID); err != nil {
		response.FromError(w, err)
		return
	}

	response.NoContent(w)
}

// actorAndWorkspace pulls the authenticated user and workspace IDs off the
// request context, writing the error response itself when either is missing.
func actorAndWorkspace(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return uuid.Nil, uuid.Nil, false
	}

	workspaceID, ok := middleware.GetWorkspaceID(r.Context())
	if !ok {
		response.BadRequest(w, "missing workspace ID")
		return uuid.Nil, uuid.Nil, false
	}

	return userID, workspaceID, true
}
