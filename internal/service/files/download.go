package files

import (
	"context"
	"fmt"
	"io"

	"filedepot/internal/domain"
	"filedepot/internal/domain/models"
	"filedepot/internal/domain/repositories"
	"filedepot/internal/domain/services"
	"filedepot/internal/storage"
)

type downloadService struct {
	nodeRepo repositories.FileNodeRepository
	store    *storage.DiskStore
}

// NewDownloadService creates the single-file download service
func NewDownloadService(nodeRepo repositories.FileNodeRepository, store *storage.DiskStore) services.DownloadService {
	return &downloadService{nodeRepo: nodeRepo, store: store}
}

// OpenFile resolves a file node and opens its blob for streaming. The caller
// owns the returned ReadCloser.
func (s *downloadService) OpenFile(ctx context.Context, fileID, projectID string) (*models.FileNode, io.ReadCloser, error) {
	node, err := s.nodeRepo.GetByID(ctx, fileID, projectID)
	if err != nil {
		return nil, nil, err
	}

	if node.IsDir() {
		return nil, nil, fmt.Errorf("'%s' is a directory: %w", node.Name, domain.ErrValidation)
	}

	blob, err := s.store.Open(node.DiskPath)
	if err != nil {
		return nil, nil, fmt.Errorf("file content for %s: %w", fileID, domain.ErrNotFound)
	}

	return node, blob, nil
}
