package handler

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"filedepot/internal/domain/services"
	"filedepot/internal/httputil"
)

// FileHandler handles tree browsing and single-file downloads
type FileHandler struct {
	tree      services.TreeService
	downloads services.DownloadService
	logger    *slog.Logger
}

// NewFileHandler creates a new file handler
func NewFileHandler(tree services.TreeService, downloads services.DownloadService, logger *slog.Logger) *FileHandler {
	return &FileHandler{tree: tree, downloads: downloads, logger: logger}
}

// GetTree returns the nested directory/file tree for a project
// GET /api/projects/{id}/tree
func (h *FileHandler) GetTree(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")
	if projectID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Project ID is required")
		return
	}

	tree, err := h.tree.GetProjectTree(r.Context(), projectID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, tree)
}

// DownloadFile streams one file's content
// GET /api/files/{id}/download?project_id=
func (h *FileHandler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	fileID := r.PathValue("id")
	if fileID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "File ID is required")
		return
	}

	projectID := r.URL.Query().Get("project_id")
	if projectID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "project_id query parameter is required")
		return
	}

	node, blob, err := h.downloads.OpenFile(r.Context(), fileID, projectID)
	if err != nil {
		handleError(w, err)
		return
	}
	defer blob.Close()

	contentType := node.MimeType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", fmt.Sprintf("%d", node.Size))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", node.Name))

	if _, err := io.Copy(w, blob); err != nil {
		// Headers are already out; all we can do is log the broken stream.
		h.logger.Error("file download interrupted",
			"file_id", fileID,
			"project_id", projectID,
			"error", err,
		)
	}
}

// HealthCheck reports liveness
// GET /health
func (h *FileHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
