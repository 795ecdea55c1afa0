package files

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"filedepot/internal/domain/repositories"
	"filedepot/internal/domain/services"
	"filedepot/internal/storage"
)

type exportService struct {
	nodeRepo repositories.FileNodeRepository
	store    *storage.DiskStore
	logger   *slog.Logger
}

// NewExportService creates the streaming archive exporter
func NewExportService(
	nodeRepo repositories.FileNodeRepository,
	store *storage.DiskStore,
	logger *slog.Logger,
) services.ExportService {
	return &exportService{
		nodeRepo: nodeRepo,
		store:    store,
		logger:   logger,
	}
}

// ExportProject streams every readable file blob of the project into a zip
// archive written to w. Blobs are copied straight from disk into the archive
// writer, so no file is materialized in memory. A node whose blob is missing
// is logged and skipped rather than failing the whole export.
func (s *exportService) ExportProject(ctx context.Context, projectID string, w io.Writer) error {
	nodes, err := s.nodeRepo.ListFilesByProject(ctx, projectID)
	if err != nil {
		return fmt.Errorf("list project files: %w", err)
	}

	zw := zip.NewWriter(w)

	// First-wins de-duplication: two nodes must not claim the same
	// internal archive path.
	seen := make(map[string]struct{})

	for _, node := range nodes {
		if err := ctx.Err(); err != nil {
			zw.Close()
			return err
		}

		archivePath := normalizeArchivePath(node.Path)
		if archivePath == "" {
			archivePath = storage.SanitizeFileName(node.Name)
		}

		if _, dup := seen[archivePath]; dup {
			s.logger.Warn("duplicate archive path skipped",
				"project_id", projectID,
				"node_id", node.ID,
				"path", archivePath,
			)
			continue
		}

		blob, err := s.store.Open(node.DiskPath)
		if err != nil {
			s.logger.Warn("blob missing, skipping export entry",
				"project_id", projectID,
				"node_id", node.ID,
				"disk_path", node.DiskPath,
				"error", err,
			)
			continue
		}

		entry, err := zw.Create(archivePath)
		if err != nil {
			blob.Close()
			zw.Close()
			return fmt.Errorf("create archive entry '%s': %w", archivePath, err)
		}

		if _, err := io.Copy(entry, blob); err != nil {
			blob.Close()
			zw.Close()
			return fmt.Errorf("stream blob into archive '%s': %w", archivePath, err)
		}
		blob.Close()

		seen[archivePath] = struct{}{}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("close archive: %w", err)
	}

	return nil
}

// normalizeArchivePath collapses backslashes to forward slashes, strips a
// single leading "./", and strips leading slashes.
func normalizeArchivePath(path string) string {
	path = strings.ReplaceAll(path, "\\", "/")
	path = strings.TrimPrefix(path, "./")
	path = strings.TrimLeft(path, "/")
	return path
}
