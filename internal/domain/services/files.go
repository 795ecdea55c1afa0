package services

import (
	"context"
	"io"

	"filedepot/internal/domain/models"
)

// InitUploadRequest carries the metadata needed to open a chunked upload
// session.
type InitUploadRequest struct {
	FileName    string `json:"file_name"`
	FilePath    string `json:"file_path"`
	FileSize    int64  `json:"file_size"`
	TotalChunks int    `json:"total_chunks"`
	MimeType    string `json:"mime_type"`
	ReplaceMode string `json:"replace_mode"`
	Description string `json:"description"`
}

// InitUploadResult is either a fresh upload ID or a duplicate descriptor
// when the target path is occupied and no replace mode was supplied.
type InitUploadResult struct {
	UploadID  string           `json:"upload_id,omitempty"`
	Duplicate bool             `json:"duplicate,omitempty"`
	Existing  *models.FileNode `json:"existing_file,omitempty"`
}

// ChunkProgress reports receipt state after a chunk write.
type ChunkProgress struct {
	Received int  `json:"received"`
	Total    int  `json:"total"`
	Complete bool `json:"complete"`
}

// DuplicateCheckResult describes whether a logical path is occupied.
type DuplicateCheckResult struct {
	Exists   bool             `json:"exists"`
	Existing *models.FileNode `json:"existing_file,omitempty"`
}

// UploadService owns the chunked upload lifecycle: session creation, chunk
// receipt, merge-on-finalize, cancellation, and reclamation of abandoned
// sessions.
type UploadService interface {
	InitUpload(ctx context.Context, projectID, userID string, req *InitUploadRequest) (*InitUploadResult, error)
	UploadChunk(ctx context.Context, uploadID, userID string, chunkIndex, totalChunks int, chunk io.Reader) (*ChunkProgress, error)
	FinalizeUpload(ctx context.Context, uploadID, projectID, userID string) (*models.FileNode, error)
	CancelUpload(ctx context.Context, uploadID, userID string) error
	CheckDuplicate(ctx context.Context, projectID, filePath string) (*DuplicateCheckResult, error)
}

// Materializer turns a logical slash-separated path into a chain of
// directory nodes plus a leaf file name, creating missing directories
// idempotently.
type Materializer interface {
	// Materialize returns the resolved immediate parent ID for the leaf
	// (nil for root) and the sanitized leaf name.
	Materialize(ctx context.Context, projectID, logicalPath string) (*string, string, error)
}

// ExportService streams a project's files into a compressed archive.
type ExportService interface {
	// ExportProject walks the project tree and writes a zip archive to w
	// without buffering whole files in memory.
	ExportProject(ctx context.Context, projectID string, w io.Writer) error
}

// TreeService builds the nested directory/file tree for a project.
type TreeService interface {
	GetProjectTree(ctx context.Context, projectID string) (*models.ProjectTree, error)
}

// ChangeLogService records and lists file mutations.
type ChangeLogService interface {
	Record(ctx context.Context, projectID, changedByID, fileName, filePath, changeType, description string) error
	ListChangeLogs(ctx context.Context, projectID string, limit int) ([]models.FileChangeLog, error)
}

// DownloadService resolves a file node and opens its blob for streaming.
type DownloadService interface {
	OpenFile(ctx context.Context, fileID, projectID string) (*models.FileNode, io.ReadCloser, error)
}
