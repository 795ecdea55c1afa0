package repositories

import (
	"context"

	"filedepot/internal/domain/models"
)

// FileNodeRepository persists the virtual file tree.
type FileNodeRepository interface {
	// CreateFile inserts a file node. The node's ID and timestamps are
	// populated on return.
	CreateFile(ctx context.Context, node *models.FileNode) error

	// CreateDirectoryIfNotExists finds or atomically creates a directory
	// node identified by (projectID, parentID, name). Safe under
	// concurrent callers creating the same path.
	CreateDirectoryIfNotExists(ctx context.Context, projectID string, parentID *string, name string) (*models.FileNode, error)

	// GetByID retrieves a node by ID scoped to a project.
	GetByID(ctx context.Context, id, projectID string) (*models.FileNode, error)

	// FindFileByPath looks up a file node by its full logical path.
	// Returns (nil, nil) when no file occupies the path.
	FindFileByPath(ctx context.Context, projectID, path string) (*models.FileNode, error)

	// ListFilesByProject returns all file-type nodes for a project.
	ListFilesByProject(ctx context.Context, projectID string) ([]models.FileNode, error)

	// GetAllByProject returns every node (files and directories) for a
	// project as a flat list.
	GetAllByProject(ctx context.Context, projectID string) ([]models.FileNode, error)

	// Delete removes a node by ID scoped to a project.
	Delete(ctx context.Context, id, projectID string) error
}
