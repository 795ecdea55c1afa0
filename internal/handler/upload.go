package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"filedepot/internal/domain/services"
	"filedepot/internal/httputil"
)

// UploadHandler handles chunked upload HTTP requests
type UploadHandler struct {
	uploads services.UploadService
	logger  *slog.Logger
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploads services.UploadService, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{uploads: uploads, logger: logger}
}

// InitUpload opens a chunked upload session
// POST /api/projects/{id}/uploads
// Returns 201 with the upload ID, or 409 with the existing file when the
// target path is occupied and no replace mode was chosen.
func (h *UploadHandler) InitUpload(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")
	if projectID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Project ID is required")
		return
	}
	userID := httputil.GetUserID(r)

	var req services.InitUploadRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.uploads.InitUpload(r.Context(), projectID, userID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	if result.Duplicate {
		httputil.RespondJSON(w, http.StatusConflict, map[string]interface{}{
			"duplicate":     true,
			"existing_file": result.Existing,
		})
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, result)
}

// UploadChunk stores one chunk of an open session
// PUT /api/uploads/{id}/chunks/{index}
// The chunk bytes are the raw request body. Re-uploading an index is safe.
func (h *UploadHandler) UploadChunk(w http.ResponseWriter, r *http.Request) {
	uploadID := r.PathValue("id")
	if uploadID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Upload ID is required")
		return
	}

	chunkIndex, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Chunk index must be an integer")
		return
	}

	totalChunks, err := strconv.Atoi(r.URL.Query().Get("total_chunks"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "total_chunks query parameter is required")
		return
	}

	userID := httputil.GetUserID(r)

	progress, err := h.uploads.UploadChunk(r.Context(), uploadID, userID, chunkIndex, totalChunks, r.Body)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, progress)
}

// FinalizeUpload merges all chunks and creates the file node
// POST /api/uploads/{id}/complete
func (h *UploadHandler) FinalizeUpload(w http.ResponseWriter, r *http.Request) {
	uploadID := r.PathValue("id")
	if uploadID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Upload ID is required")
		return
	}

	var req struct {
		ProjectID string `json:"project_id"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ProjectID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Project ID is required")
		return
	}

	userID := httputil.GetUserID(r)

	node, err := h.uploads.FinalizeUpload(r.Context(), uploadID, req.ProjectID, userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, node)
}

// CancelUpload discards a session and its stored chunks
// DELETE /api/uploads/{id}
// Cancelling an unknown or already-finished upload returns 204.
func (h *UploadHandler) CancelUpload(w http.ResponseWriter, r *http.Request) {
	uploadID := r.PathValue("id")
	if uploadID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Upload ID is required")
		return
	}

	userID := httputil.GetUserID(r)

	if err := h.uploads.CancelUpload(r.Context(), uploadID, userID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CheckDuplicate reports whether a logical path is already occupied
// GET /api/projects/{id}/files/duplicate?path=
func (h *UploadHandler) CheckDuplicate(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")
	if projectID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Project ID is required")
		return
	}

	path := r.URL.Query().Get("path")
	if path == "" {
		httputil.RespondError(w, http.StatusBadRequest, "path query parameter is required")
		return
	}

	result, err := h.uploads.CheckDuplicate(r.Context(), projectID, path)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}
