package files

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"filedepot/internal/domain"
	"filedepot/internal/domain/models"
	"filedepot/internal/repository/memory"
	"filedepot/internal/storage"
)

func TestOpenFileStreamsBlob(t *testing.T) {
	root := t.TempDir()
	store, err := storage.NewDiskStore(filepath.Join(root, "blobs"), filepath.Join(root, "chunks"))
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}
	repo := memory.NewFileNodeRepository()
	ctx := context.Background()

	diskPath := filepath.Join(root, "blob-1")
	if err := os.WriteFile(diskPath, []byte("payload"), 0o644); err != nil {
		t.Fatalf("write blob: %v", err)
	}
	node := &models.FileNode{
		ProjectID: "proj-1",
		Name:      "a.txt",
		Path:      "a.txt",
		Size:      7,
		MimeType:  "text/plain",
		DiskPath:  diskPath,
	}
	if err := repo.CreateFile(ctx, node); err != nil {
		t.Fatalf("seed node: %v", err)
	}

	svc := NewDownloadService(repo, store)
	got, blob, err := svc.OpenFile(ctx, node.ID, "proj-1")
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer blob.Close()

	if got.Name != "a.txt" || got.MimeType != "text/plain" {
		t.Errorf("node = %+v, want seeded metadata", got)
	}
	content, err := io.ReadAll(blob)
	if err != nil {
		t.Fatalf("read blob: %v", err)
	}
	if string(content) != "payload" {
		t.Errorf("content = %q, want %q", content, "payload")
	}
}

func TestOpenFileErrors(t *testing.T) {
	root := t.TempDir()
	store, err := storage.NewDiskStore(filepath.Join(root, "blobs"), filepath.Join(root, "chunks"))
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}
	repo := memory.NewFileNodeRepository()
	ctx := context.Background()
	svc := NewDownloadService(repo, store)

	if _, _, err := svc.OpenFile(ctx, "missing-id", "proj-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("unknown id error = %v, want ErrNotFound", err)
	}

	dir, err := repo.CreateDirectoryIfNotExists(ctx, "proj-1", nil, "docs")
	if err != nil {
		t.Fatalf("create directory: %v", err)
	}
	if _, _, err := svc.OpenFile(ctx, dir.ID, "proj-1"); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("directory error = %v, want ErrValidation", err)
	}

	orphan := &models.FileNode{
		ProjectID: "proj-1",
		Name:      "gone.txt",
		Path:      "gone.txt",
		DiskPath:  filepath.Join(root, "never-written"),
	}
	if err := repo.CreateFile(ctx, orphan); err != nil {
		t.Fatalf("seed node: %v", err)
	}
	if _, _, err := svc.OpenFile(ctx, orphan.ID, "proj-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("missing blob error = %v, want ErrNotFound", err)
	}
}
