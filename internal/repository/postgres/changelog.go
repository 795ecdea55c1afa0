package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"filedepot/internal/domain/models"
	"filedepot/internal/domain/repositories"
)

// PostgresChangeLogRepository implements the ChangeLogRepository interface
type PostgresChangeLogRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewChangeLogRepository creates a new change log repository
func NewChangeLogRepository(config *RepositoryConfig) repositories.ChangeLogRepository {
	return &PostgresChangeLogRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create appends one immutable change-log row
func (r *PostgresChangeLogRepository) Create(ctx context.Context, entry *models.FileChangeLog) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (project_id, changed_by_id, file_name, file_path, change_type, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, r.tables.ChangeLogs)

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		entry.ProjectID,
		entry.ChangedByID,
		entry.FileName,
		entry.FilePath,
		entry.ChangeType,
		entry.Description,
		time.Now(),
	).Scan(&entry.ID, &entry.CreatedAt)

	if err != nil {
		return fmt.Errorf("create change log: %w", err)
	}

	return nil
}

// ListByProject returns the most recent entries for a project, newest first
func (r *PostgresChangeLogRepository) ListByProject(ctx context.Context, projectID string, limit int) ([]models.FileChangeLog, error) {
	query := fmt.Sprintf(`
		SELECT id, project_id, changed_by_id, file_name, file_path, change_type, description, created_at
		FROM %s
		WHERE project_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, r.tables.ChangeLogs)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, projectID, limit)
	if err != nil {
		return nil, fmt.Errorf("list change logs: %w", err)
	}
	defer rows.Close()

	var entries []models.FileChangeLog
	for rows.Next() {
		var entry models.FileChangeLog
		err := rows.Scan(
			&entry.ID,
			&entry.ProjectID,
			&entry.ChangedByID,
			&entry.FileName,
			&entry.FilePath,
			&entry.ChangeType,
			&entry.Description,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan change log: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate change logs: %w", err)
	}

	return entries, nil
}
