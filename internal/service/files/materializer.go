package files

import (
	"context"
	"fmt"

	"filedepot/internal/config"
	"filedepot/internal/domain"
	"filedepot/internal/domain/repositories"
	"filedepot/internal/domain/services"
)

type materializerService struct {
	nodeRepo  repositories.FileNodeRepository
	txManager repositories.TransactionManager
}

// NewMaterializer creates the service that resolves logical paths into
// directory node chains.
func NewMaterializer(
	nodeRepo repositories.FileNodeRepository,
	txManager repositories.TransactionManager,
) services.Materializer {
	return &materializerService{
		nodeRepo:  nodeRepo,
		txManager: txManager,
	}
}

// Materialize splits the logical path into a directory chain plus a leaf
// name and walks the chain from the tree root, creating missing directories
// idempotently. Each segment's find-or-create depends on the previous
// segment's resulting ID, so the walk is strictly sequential and runs inside
// one transaction.
func (s *materializerService) Materialize(ctx context.Context, projectID, logicalPath string) (*string, string, error) {
	normalized, err := NormalizeLogicalPath(logicalPath)
	if err != nil {
		return nil, "", err
	}

	dirs, leaf := SplitLogicalPath(normalized)
	if leaf == "" {
		return nil, "", fmt.Errorf("name is required and cannot be empty: %w", domain.ErrValidation)
	}
	if len(leaf) > config.MaxFileNameLength {
		return nil, "", fmt.Errorf("name exceeds maximum length of %d: %w", config.MaxFileNameLength, domain.ErrValidation)
	}

	var parentID *string
	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		var currentParentID *string

		for _, segment := range dirs {
			if len(segment) > config.MaxDirectoryNameLength {
				return fmt.Errorf("directory name '%s' exceeds maximum length of %d: %w",
					segment, config.MaxDirectoryNameLength, domain.ErrValidation)
			}

			dir, err := s.nodeRepo.CreateDirectoryIfNotExists(txCtx, projectID, currentParentID, segment)
			if err != nil {
				return fmt.Errorf("create/get directory '%s': %w", segment, err)
			}

			currentParentID = &dir.ID
		}

		parentID = currentParentID
		return nil
	})

	if err != nil {
		return nil, "", err
	}

	return parentID, leaf, nil
}
