package files

import (
	"context"
	"fmt"
	"log/slog"

	"filedepot/internal/domain"
	"filedepot/internal/domain/models"
	"filedepot/internal/domain/repositories"
	"filedepot/internal/domain/services"
)

const defaultChangeLogLimit = 50

type changeLogService struct {
	repo   repositories.ChangeLogRepository
	logger *slog.Logger
}

// NewChangeLogService creates the audit-trail recorder
func NewChangeLogService(repo repositories.ChangeLogRepository, logger *slog.Logger) services.ChangeLogService {
	return &changeLogService{repo: repo, logger: logger}
}

// Record appends one immutable audit row. It is invoked directly after the
// FileNode mutation it documents.
func (s *changeLogService) Record(ctx context.Context, projectID, changedByID, fileName, filePath, changeType, description string) error {
	switch changeType {
	case models.ChangeTypeAdd, models.ChangeTypeReplace, models.ChangeTypeUpdate:
	default:
		return fmt.Errorf("unknown change type '%s': %w", changeType, domain.ErrValidation)
	}

	entry := &models.FileChangeLog{
		ProjectID:   projectID,
		ChangedByID: changedByID,
		FileName:    fileName,
		FilePath:    filePath,
		ChangeType:  changeType,
		Description: description,
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return fmt.Errorf("record change log: %w", err)
	}

	s.logger.Info("change recorded",
		"project_id", projectID,
		"file_path", filePath,
		"change_type", changeType,
	)

	return nil
}

func (s *changeLogService) ListChangeLogs(ctx context.Context, projectID string, limit int) ([]models.FileChangeLog, error) {
	if limit <= 0 {
		limit = defaultChangeLogLimit
	}
	return s.repo.ListByProject(ctx, projectID, limit)
}
