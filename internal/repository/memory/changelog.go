package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"filedepot/internal/domain/models"
	"filedepot/internal/domain/repositories"
)

// ChangeLogRepository is a mutex-guarded in-memory ChangeLogRepository.
type ChangeLogRepository struct {
	mu      sync.Mutex
	entries []models.FileChangeLog
}

// NewChangeLogRepository creates an empty in-memory change log repository
func NewChangeLogRepository() *ChangeLogRepository {
	return &ChangeLogRepository{}
}

var _ repositories.ChangeLogRepository = (*ChangeLogRepository)(nil)

func (r *ChangeLogRepository) Create(ctx context.Context, entry *models.FileChangeLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry.ID = uuid.New().String()
	entry.CreatedAt = time.Now()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *ChangeLogRepository) ListByProject(ctx context.Context, projectID string, limit int) ([]models.FileChangeLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []models.FileChangeLog
	// entries are appended in order, walk backwards for newest first
	for i := len(r.entries) - 1; i >= 0 && len(result) < limit; i-- {
		if r.entries[i].ProjectID == projectID {
			result = append(result, r.entries[i])
		}
	}
	return result, nil
}
