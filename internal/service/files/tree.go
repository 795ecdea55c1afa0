package files

import (
	"context"
	"log/slog"

	"filedepot/internal/domain/models"
	"filedepot/internal/domain/repositories"
	"filedepot/internal/domain/services"
)

type treeService struct {
	nodeRepo repositories.FileNodeRepository
	logger   *slog.Logger
}

// NewTreeService creates the tree-browsing service
func NewTreeService(nodeRepo repositories.FileNodeRepository, logger *slog.Logger) services.TreeService {
	return &treeService{nodeRepo: nodeRepo, logger: logger}
}

// GetProjectTree builds the nested directory/file tree for a project from
// the flat node list using a three-pass algorithm: create directory nodes,
// nest them under their parents, then attach files.
func (s *treeService) GetProjectTree(ctx context.Context, projectID string) (*models.ProjectTree, error) {
	nodes, err := s.nodeRepo.GetAllByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	// First pass: create all directory tree nodes
	dirMap := make(map[string]*models.DirectoryTreeNode)
	for i := range nodes {
		node := &nodes[i]
		if !node.IsDir() {
			continue
		}
		dirMap[node.ID] = &models.DirectoryTreeNode{
			ID:          node.ID,
			Name:        node.Name,
			ParentID:    node.ParentID,
			CreatedAt:   node.CreatedAt,
			Directories: []*models.DirectoryTreeNode{},
			Files:       []models.FileTreeNode{},
		}
	}

	tree := &models.ProjectTree{
		ProjectID:   projectID,
		Directories: []*models.DirectoryTreeNode{},
		Files:       []models.FileTreeNode{},
	}

	// Second pass: nest directories under their parents
	for i := range nodes {
		node := &nodes[i]
		if !node.IsDir() {
			continue
		}
		dirNode := dirMap[node.ID]
		if node.ParentID == nil {
			tree.Directories = append(tree.Directories, dirNode)
		} else if parent, ok := dirMap[*node.ParentID]; ok {
			parent.Directories = append(parent.Directories, dirNode)
		} else {
			// Orphaned parent reference - surface at the root rather
			// than dropping the subtree.
			s.logger.Warn("directory has unknown parent, attaching at root",
				"node_id", node.ID,
				"parent_id", *node.ParentID,
			)
			tree.Directories = append(tree.Directories, dirNode)
		}
	}

	// Third pass: attach files
	for i := range nodes {
		node := &nodes[i]
		if node.IsDir() {
			continue
		}
		fileNode := models.FileTreeNode{
			ID:        node.ID,
			Name:      node.Name,
			ParentID:  node.ParentID,
			Path:      node.Path,
			Size:      node.Size,
			MimeType:  node.MimeType,
			UpdatedAt: node.UpdatedAt,
		}
		if node.ParentID == nil {
			tree.Files = append(tree.Files, fileNode)
		} else if parent, ok := dirMap[*node.ParentID]; ok {
			parent.Files = append(parent.Files, fileNode)
		} else {
			tree.Files = append(tree.Files, fileNode)
		}
	}

	return tree, nil
}
