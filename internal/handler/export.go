package handler

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"filedepot/internal/domain/services"
	"filedepot/internal/httputil"
)

// ExportHandler handles project archive exports
type ExportHandler struct {
	exports services.ExportService
	logger  *slog.Logger
}

// NewExportHandler creates a new export handler
func NewExportHandler(exports services.ExportService, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{exports: exports, logger: logger}
}

// countingWriter tracks whether any archive byte has reached the response,
// which decides whether an export error can still change the status code.
type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

// ExportProject streams the whole project as a zip archive
// GET /api/projects/{id}/export
func (h *ExportHandler) ExportProject(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")
	if projectID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Project ID is required")
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", projectID+".zip"))

	cw := &countingWriter{w: w}
	if err := h.exports.ExportProject(r.Context(), projectID, cw); err != nil {
		if cw.n == 0 {
			// Nothing was streamed, so the response is still ours to shape.
			w.Header().Del("Content-Disposition")
			handleError(w, err)
			return
		}

		// Archive bytes are already out; the status code is fixed at 200
		// and all we can do is log the broken stream.
		h.logger.Error("project export failed mid-stream",
			"project_id", projectID,
			"bytes_written", cw.n,
			"error", err,
		)
	}
}
