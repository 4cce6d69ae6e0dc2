package handler

import (
	"net/http"
	"strconv"

	"github.com/inkwell-app/inkwell/internal/api/response"
	"github.com/inkwell-app/inkwell/internal/service"
)

// AuditHandler handles the workspace audit log endpoints
type AuditHandler struct {
	recorder *service.AuditRecorder
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(recorder *service.AuditRecorder) *AuditHandler {
	return &AuditHandler{recorder: recorder}
}

// List handles listing recent audit entries. Admin only.
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, workspaceID, ok := actorAndWorkspace(w, r)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	entries, err := h.recorder.ListForActor(r.Context(), userID, workspaceID, limit)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, entries)
}
