package models

import "time"

// Change types recorded in the file change log.
const (
	ChangeTypeAdd     = "ADD"
	ChangeTypeReplace = "REPLACE"
	ChangeTypeUpdate  = "UPDATE"
)

// FileChangeLog is one append-only audit row. Rows are immutable once
// written and are created in the same step as the FileNode mutation they
// document.
type FileChangeLog struct {
	ID          string    `json:"id" db:"id"`
	ProjectID   string    `json:"project_id" db:"project_id"`
	ChangedByID string    `json:"changed_by_id" db:"changed_by_id"`
	FileName    string    `json:"file_name" db:"file_name"`
	FilePath    string    `json:"file_path" db:"file_path"`
	ChangeType  string    `json:"change_type" db:"change_type"`
	Description string    `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
