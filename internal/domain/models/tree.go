package models

import "time"

// DirectoryTreeNode is one directory in the nested project tree, holding its
// child directories and files.
type DirectoryTreeNode struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	ParentID    *string              `json:"parent_id"`
	CreatedAt   time.Time            `json:"created_at"`
	Directories []*DirectoryTreeNode `json:"directories"`
	Files       []FileTreeNode       `json:"files"`
}

// FileTreeNode is the file metadata exposed in the tree view.
type FileTreeNode struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ParentID  *string   `json:"parent_id"`
	Path      string    `json:"path"`
	Size      int64     `json:"size"`
	MimeType  string    `json:"mime_type,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProjectTree is the root of a project's nested tree.
type ProjectTree struct {
	ProjectID   string               `json:"project_id"`
	Directories []*DirectoryTreeNode `json:"directories"`
	Files       []FileTreeNode       `json:"files"`
}
