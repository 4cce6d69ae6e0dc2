package handler

import (
	"encoding/json"
	"net/http"

	"github.com/inkwell-app/inkwell/internal/api/response"
	"github.com/inkwell-app/inkwell/internal/domain"
	"github.com/inkwell-app/inkwell/internal/service"
)

// WatchHandler handles watch subscription endpoints
type WatchHandler struct {
	notificationService *service.NotificationService
}

// NewWatchHandler creates a new watch handler
func NewWatchHandler(notificationService *service.NotificationService) *WatchHandler {
	return &WatchHandler{notificationService: notificationService}
}

// Subscribe handles creating or updating a watch on a target
func (h *WatchHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	userID, workspaceID, ok := actorAndWorkspace(w, r)
	if !ok {
		return
	}

	var input domain.WatchCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	watch, err := h.notificationService.Watch(r.Context(), userID, workspaceID, input)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, watch)
}

// Unsubscribe handles removing a watch from a target
func (h *WatchHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
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

	if err := h.notificationService.Unwatch(r.Context(), userID, workspaceID, targetType, targetID); err != nil {
		response.FromError(w, err)
		return
	}

	response.NoContent(w)
}
