package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"filedepot/internal/domain"
	"filedepot/internal/domain/models"
	"filedepot/internal/domain/repositories"
)

const fileNodeColumns = "id, project_id, parent_id, name, type, size, mime_type, disk_path, path, created_at, updated_at"

// PostgresFileNodeRepository implements the FileNodeRepository interface
type PostgresFileNodeRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewFileNodeRepository creates a new file node repository
func NewFileNodeRepository(config *RepositoryConfig) repositories.FileNodeRepository {
	return &PostgresFileNodeRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// CreateFile inserts a file node
func (r *PostgresFileNodeRepository) CreateFile(ctx context.Context, node *models.FileNode) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (project_id, parent_id, name, type, size, mime_type, disk_path, path, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`, r.tables.FileNodes)

	now := time.Now()
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		node.ProjectID,
		node.ParentID,
		node.Name,
		models.NodeTypeFile,
		node.Size,
		node.MimeType,
		node.DiskPath,
		node.Path,
		now,
		now,
	).Scan(&node.ID, &node.CreatedAt, &node.UpdatedAt)

	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("file '%s': %w", node.Path, domain.ErrConflict)
		}
		return fmt.Errorf("create file node: %w", err)
	}

	node.Type = models.NodeTypeFile
	return nil
}

// CreateDirectoryIfNotExists finds or creates a directory node.
// The insert relies on the unique index on (project_id, parent_id, name) for
// directory rows: when a concurrent caller wins the race, the resulting
// unique violation is resolved by re-fetching the winner's row.
func (r *PostgresFileNodeRepository) CreateDirectoryIfNotExists(ctx context.Context, projectID string, parentID *string, name string) (*models.FileNode, error) {
	existing, err := r.getDirectoryByNameAndParent(ctx, projectID, name, parentID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (project_id, parent_id, name, type, size, path, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 0, $5, $6, $7)
		RETURNING %s
	`, r.tables.FileNodes, fileNodeColumns)

	now := time.Now()
	var node models.FileNode
	err = GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		projectID,
		parentID,
		name,
		models.NodeTypeDirectory,
		name, // directories store their own segment name as path
		now,
		now,
	).Scan(scanTargets(&node)...)

	if err != nil {
		if isPgDuplicateError(err) {
			// Lost the race - fetch the row the concurrent caller created
			winner, fetchErr := r.getDirectoryByNameAndParent(ctx, projectID, name, parentID)
			if fetchErr != nil {
				return nil, fetchErr
			}
			if winner != nil {
				return winner, nil
			}
			return nil, fmt.Errorf("directory '%s': %w", name, domain.ErrConflict)
		}
		return nil, fmt.Errorf("create directory node: %w", err)
	}

	return &node, nil
}

// GetByID retrieves a node by ID scoped to a project
func (r *PostgresFileNodeRepository) GetByID(ctx context.Context, id, projectID string) (*models.FileNode, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND project_id = $2
	`, fileNodeColumns, r.tables.FileNodes)

	var node models.FileNode
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, id, projectID).Scan(scanTargets(&node)...)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("file node %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get file node: %w", err)
	}

	return &node, nil
}

// FindFileByPath looks up a file node by its full logical path.
// Returns (nil, nil) when no file occupies the path.
func (r *PostgresFileNodeRepository) FindFileByPath(ctx context.Context, projectID, path string) (*models.FileNode, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE project_id = $1 AND type = $2 AND path = $3
	`, fileNodeColumns, r.tables.FileNodes)

	var node models.FileNode
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, projectID, models.NodeTypeFile, path).Scan(scanTargets(&node)...)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, nil // not found, not an error
		}
		return nil, fmt.Errorf("find file by path: %w", err)
	}

	return &node, nil
}

// ListFilesByProject returns all file-type nodes for a project
func (r *PostgresFileNodeRepository) ListFilesByProject(ctx context.Context, projectID string) ([]models.FileNode, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE project_id = $1 AND type = $2
		ORDER BY path ASC
	`, fileNodeColumns, r.tables.FileNodes)

	return r.queryNodes(ctx, query, projectID, models.NodeTypeFile)
}

// GetAllByProject returns every node for a project as a flat list
func (r *PostgresFileNodeRepository) GetAllByProject(ctx context.Context, projectID string) ([]models.FileNode, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE project_id = $1
		ORDER BY created_at ASC
	`, fileNodeColumns, r.tables.FileNodes)

	return r.queryNodes(ctx, query, projectID)
}

// Delete removes a node by ID scoped to a project
func (r *PostgresFileNodeRepository) Delete(ctx context.Context, id, projectID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND project_id = $2
	`, r.tables.FileNodes)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id, projectID)
	if err != nil {
		if isPgForeignKeyError(err) {
			return fmt.Errorf("cannot delete node with children: %w", domain.ErrConflict)
		}
		return fmt.Errorf("delete file node: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("file node %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// getDirectoryByNameAndParent is a helper to find a directory by name and parent
func (r *PostgresFileNodeRepository) getDirectoryByNameAndParent(ctx context.Context, projectID string, name string, parentID *string) (*models.FileNode, error) {
	var query string
	var args []interface{}

	if parentID == nil {
		query = fmt.Sprintf(`
			SELECT %s
			FROM %s
			WHERE project_id = $1 AND type = $2 AND name = $3 AND parent_id IS NULL
		`, fileNodeColumns, r.tables.FileNodes)
		args = append(args, projectID, models.NodeTypeDirectory, name)
	} else {
		query = fmt.Sprintf(`
			SELECT %s
			FROM %s
			WHERE project_id = $1 AND type = $2 AND name = $3 AND parent_id = $4
		`, fileNodeColumns, r.tables.FileNodes)
		args = append(args, projectID, models.NodeTypeDirectory, name, *parentID)
	}

	var node models.FileNode
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, args...).Scan(scanTargets(&node)...)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, nil // not found, not an error
		}
		return nil, fmt.Errorf("get directory by name and parent: %w", err)
	}

	return &node, nil
}

func (r *PostgresFileNodeRepository) queryNodes(ctx context.Context, query string, args ...interface{}) ([]models.FileNode, error) {
	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list file nodes: %w", err)
	}
	defer rows.Close()

	var nodes []models.FileNode
	for rows.Next() {
		var node models.FileNode
		if err := rows.Scan(scanTargets(&node)...); err != nil {
			return nil, fmt.Errorf("scan file node: %w", err)
		}
		nodes = append(nodes, node)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate file nodes: %w", err)
	}

	return nodes, nil
}

// scanTargets returns scan destinations matching fileNodeColumns order
func scanTargets(node *models.FileNode) []interface{} {
	return []interface{}{
		&node.ID,
		&node.ProjectID,
		&node.ParentID,
		&node.Name,
		&node.Type,
		&node.Size,
		&node.MimeType,
		&node.DiskPath,
		&node.Path,
		&node.CreatedAt,
		&node.UpdatedAt,
	}
}
