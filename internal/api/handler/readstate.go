package handler

import (
	"encoding/json"
	"net/http"

	"github.com/inkwell-app/inkwell/internal/api/response"
	"github.com/inkwell-app/inkwell/internal/domain"
	"github.com/inkwell-app/inkwell/internal/service"
)

// ReadStateHandler handles per-user read position endpoints
type ReadStateHandler struct {
	readStateService *service.ReadStateService
}

// NewReadStateHandler creates a new read state handler
func NewReadStateHandler(readStateService *service.ReadStateService) *ReadStateHandler {
	return &ReadStateHandler{readStateService: readStateService}
}

// Mark handles recording that the user has seen a target
func (h *ReadStateHandler) Mark(w http.ResponseWriter, r *http.Request) {
	userID, workspaceID, ok := actorAndWorkspace(w, r)
	if !ok {
		return
	}

	var input domain.ReadStateMark
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	if err := h.readStateService.MarkRead(r.Context(), userID, workspaceID, input); err != nil {
		response.FromError(w, err)
		return
	}

	response.NoContent(w)
}

// Get handles fetching the user's read state for a target
func (h *ReadStateHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, workspaceID, ok := actorAndWorkspace(w, r)
	if !ok {
		return
	}

	targetType := r.URL.Query().Get("target_type")
	targetID := r.URL.Query().Get("target_id")
	if targetType == "" || targetID == "" {
		response.BadRequest(w, "target_type and target_id are required")
		return
	}

	state, err := h.readStateService.Get(r.Context(), userID, workspaceID, targetType, targetID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	if state == nil {
		response.NotFound(w, "no read state for target")
		return
	}

	response.OK(w, state)
}
