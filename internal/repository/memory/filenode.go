// Package memory provides in-memory repository implementations backing
// service tests, mirroring the Postgres repositories' semantics including
// the directory uniqueness constraint on (project_id, parent_id, name).
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"filedepot/internal/domain"
	"filedepot/internal/domain/models"
	"filedepot/internal/domain/repositories"
)

// FileNodeRepository is a mutex-guarded in-memory FileNodeRepository.
type FileNodeRepository struct {
	mu    sync.Mutex
	nodes map[string]*models.FileNode
}

// NewFileNodeRepository creates an empty in-memory file node repository
func NewFileNodeRepository() *FileNodeRepository {
	return &FileNodeRepository{
		nodes: make(map[string]*models.FileNode),
	}
}

var _ repositories.FileNodeRepository = (*FileNodeRepository)(nil)

func (r *FileNodeRepository) CreateFile(ctx context.Context, node *models.FileNode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, n := range r.nodes {
		if n.ProjectID == node.ProjectID && n.Type == models.NodeTypeFile && n.Path == node.Path {
			return fmt.Errorf("file '%s': %w", node.Path, domain.ErrConflict)
		}
	}

	now := time.Now()
	node.ID = uuid.New().String()
	node.Type = models.NodeTypeFile
	node.CreatedAt = now
	node.UpdatedAt = now

	stored := *node
	r.nodes[node.ID] = &stored
	return nil
}

func (r *FileNodeRepository) CreateDirectoryIfNotExists(ctx context.Context, projectID string, parentID *string, name string) (*models.FileNode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, n := range r.nodes {
		if n.ProjectID == projectID && n.Type == models.NodeTypeDirectory && n.Name == name && sameParent(n.ParentID, parentID) {
			copied := *n
			return &copied, nil
		}
	}

	now := time.Now()
	node := &models.FileNode{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		ParentID:  parentID,
		Name:      name,
		Type:      models.NodeTypeDirectory,
		Path:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.nodes[node.ID] = node

	copied := *node
	return &copied, nil
}

func (r *FileNodeRepository) GetByID(ctx context.Context, id, projectID string) (*models.FileNode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	node, ok := r.nodes[id]
	if !ok || node.ProjectID != projectID {
		return nil, fmt.Errorf("file node %s: %w", id, domain.ErrNotFound)
	}

	copied := *node
	return &copied, nil
}

func (r *FileNodeRepository) FindFileByPath(ctx context.Context, projectID, path string) (*models.FileNode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, n := range r.nodes {
		if n.ProjectID == projectID && n.Type == models.NodeTypeFile && n.Path == path {
			copied := *n
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *FileNodeRepository) ListFilesByProject(ctx context.Context, projectID string) ([]models.FileNode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var files []models.FileNode
	for _, n := range r.nodes {
		if n.ProjectID == projectID && n.Type == models.NodeTypeFile {
			files = append(files, *n)
		}
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

func (r *FileNodeRepository) GetAllByProject(ctx context.Context, projectID string) ([]models.FileNode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var nodes []models.FileNode
	for _, n := range r.nodes {
		if n.ProjectID == projectID {
			nodes = append(nodes, *n)
		}
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].CreatedAt.Before(nodes[j].CreatedAt) })
	return nodes, nil
}

func (r *FileNodeRepository) Delete(ctx context.Context, id, projectID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	node, ok := r.nodes[id]
	if !ok || node.ProjectID != projectID {
		return fmt.Errorf("file node %s: %w", id, domain.ErrNotFound)
	}
	delete(r.nodes, id)
	return nil
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
