package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/inkwell-app/inkwell/internal/api/handler"
	"github.com/inkwell-app/inkwell/internal/api/response"
	"github.com/inkwell-app/inkwell/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()

	handler.HealthCheck(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, true, resp["success"])

	data, ok := resp["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ok", data["status"])
}

func TestFromError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"not a member is opaque", domain.ErrNotAMember, http.StatusForbidden, "forbidden"},
		{"insufficient role is opaque", domain.ErrInsufficientRole, http.StatusForbidden, "forbidden"},
		{"not found", domain.ErrNotFound, http.StatusNotFound, "not found"},
		{"invalid input", domain.ErrInvalidInput, http.StatusBadRequest, "invalid input"},
		{"storage unavailable", domain.ErrStorageUnavailable, http.StatusServiceUnavailable, "storage unavailable"},
		{"anything else is opaque", assert.AnError, http.StatusInternalServerError, "internal error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			response.FromError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var resp map[string]any
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, false, resp["success"])
			assert.Equal(t, tt.wantError, resp["error"])
		})
	}
}
