package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/inkwell-app/inkwell/internal/api/response"
	"github.com/inkwell-app/inkwell/internal/service"
)

// NotificationHandler handles in-app notification endpoints
type NotificationHandler struct {
	notificationService *service.NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List handles listing the user's notifications in a workspace
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, workspaceID, ok := actorAndWorkspace(w, r)
	if !ok {
		return
	}

	unreadOnly := r.URL.Query().Get("unread") == "true"
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	notifications, err := h.notificationService.List(r.Context(), userID, workspaceID, unreadOnly, limit)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, notifications)
}

// UnreadCount handles the unread notification counter
func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	userID, workspaceID, ok := actorAndWorkspace(w, r)
	if !ok {
		return
	}

	count, err := h.notificationService.UnreadCount(r.Context(), userID, workspaceID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, map[string]any{"unread": count})
}

// MarkRead handles marking a single notification as read
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, workspaceID, ok := actorAndWorkspace(w, r)
	if !ok {
		return
	}

	notificationID, err := uuid.Parse(chi.URLParam(r, "notificationID"))
	if err != nil {
		response.BadRequest(w, "invalid notification ID")
		return
	}

	if err := h.notificationService.MarkRead(r.Context(), notificationID, userID, workspaceID); err != nil {
		response.FromError(w, err)
		return
	}

	response.NoContent(w)
}

// MarkAllRead handles marking all of the user's notifications as read.
// Scoped to the workspace in the URL.
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	userID, workspaceID, ok := actorAndWorkspace(w, r)
	if !ok {
		return
	}

	if err := h.notificationService.MarkAllRead(r.Context(), userID, &workspaceID); err != nil {
		response.FromError(w, err)
		return
	}

	response.NoContent(w)
}
