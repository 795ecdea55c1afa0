package repositories

import (
	"context"

	"filedepot/internal/domain/models"
)

// ChangeLogRepository persists the append-only audit trail.
type ChangeLogRepository interface {
	// Create appends one immutable change-log row. The row's ID and
	// CreatedAt are populated on return.
	Create(ctx context.Context, entry *models.FileChangeLog) error

	// ListByProject returns the most recent entries for a project,
	// newest first, capped at limit.
	ListByProject(ctx context.Context, projectID string, limit int) ([]models.FileChangeLog, error)
}
