package models

import "time"

// Node types stored in the type column of file_nodes.
const (
	NodeTypeFile      = "file"
	NodeTypeDirectory = "directory"
)

// FileNode represents one entry (file or directory) in a project's virtual
// file tree, decoupled from its physical storage location.
//
// For files, Path holds the full logical path ("a/b/c.txt") and DiskPath the
// absolute location of the blob. Directories store their own segment name in
// Path and have no DiskPath.
type FileNode struct {
	ID        string    `json:"id" db:"id"`
	ProjectID string    `json:"project_id" db:"project_id"`
	ParentID  *string   `json:"parent_id" db:"parent_id"` // NULL = tree root
	Name      string    `json:"name" db:"name"`
	Type      string    `json:"type" db:"type"`
	Size      int64     `json:"size" db:"size"`
	MimeType  string    `json:"mime_type,omitempty" db:"mime_type"`
	DiskPath  string    `json:"-" db:"disk_path"` // never exposed to clients
	Path      string    `json:"path" db:"path"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// IsDir reports whether the node is a directory.
func (n *FileNode) IsDir() bool {
	return n.Type == NodeTypeDirectory
}
