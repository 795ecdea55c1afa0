package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"filedepot/internal/domain/services"
	"filedepot/internal/httputil"
)

// ChangeLogHandler handles change-log listing requests
type ChangeLogHandler struct {
	changeLogs services.ChangeLogService
	logger     *slog.Logger
}

// NewChangeLogHandler creates a new change-log handler
func NewChangeLogHandler(changeLogs services.ChangeLogService, logger *slog.Logger) *ChangeLogHandler {
	return &ChangeLogHandler{changeLogs: changeLogs, logger: logger}
}

// ListChangeLogs returns a project's audit rows, newest first
// GET /api/projects/{id}/changelog?limit=
func (h *ChangeLogHandler) ListChangeLogs(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")
	if projectID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Project ID is required")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			httputil.RespondError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = parsed
	}

	entries, err := h.changeLogs.ListChangeLogs(r.Context(), projectID, limit)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"project_id": projectID,
		"changes":    entries,
	})
}
