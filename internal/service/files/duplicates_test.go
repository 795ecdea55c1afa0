package files

import (
	"context"
	"errors"
	"testing"

	"filedepot/internal/domain"
	"filedepot/internal/domain/models"
	"filedepot/internal/repository/memory"
)

func seedFile(t *testing.T, repo *memory.FileNodeRepository, projectID, path, name string) *models.FileNode {
	t.Helper()
	node := &models.FileNode{
		ProjectID: projectID,
		Name:      name,
		Path:      path,
		Size:      10,
	}
	if err := repo.CreateFile(context.Background(), node); err != nil {
		t.Fatalf("seed file %s: %v", path, err)
	}
	return node
}

func TestResolveNoExistingFile(t *testing.T) {
	resolver := NewDuplicateResolver(memory.NewFileNodeRepository())

	res, err := resolver.Resolve(context.Background(), "proj-1", "a/b/c.txt", models.ReplaceModeNone)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.FinalPath != "a/b/c.txt" || res.ChangeType != models.ChangeTypeAdd {
		t.Errorf("resolution = %+v, want unchanged path with ADD", res)
	}
}

func TestResolveUnsetModeSurfacesConflict(t *testing.T) {
	repo := memory.NewFileNodeRepository()
	existing := seedFile(t, repo, "proj-1", "a/b/c.txt", "c.txt")
	resolver := NewDuplicateResolver(repo)

	_, err := resolver.Resolve(context.Background(), "proj-1", "a/b/c.txt", models.ReplaceModeNone)
	if err == nil {
		t.Fatal("Resolve succeeded, want conflict")
	}

	var dup *domain.DuplicateFileError
	if !errors.As(err, &dup) {
		t.Fatalf("error = %v, want DuplicateFileError", err)
	}
	if dup.ExistingID != existing.ID || dup.ExistingPath != "a/b/c.txt" {
		t.Errorf("conflict descriptor = %+v, want existing node details", dup)
	}
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("DuplicateFileError should match ErrConflict")
	}
}

func TestResolveKeepBothProgression(t *testing.T) {
	repo := memory.NewFileNodeRepository()
	seedFile(t, repo, "proj-1", "a/b/c.txt", "c.txt")
	resolver := NewDuplicateResolver(repo)
	ctx := context.Background()

	res, err := resolver.Resolve(ctx, "proj-1", "a/b/c.txt", models.ReplaceModeKeepBoth)
	if err != nil {
		t.Fatalf("first keep-both: %v", err)
	}
	if res.FinalPath != "a/b/c (2).txt" || res.FinalName != "c (2).txt" {
		t.Errorf("first duplicate = (%q, %q), want 'a/b/c (2).txt'", res.FinalPath, res.FinalName)
	}
	if res.ChangeType != models.ChangeTypeAdd {
		t.Errorf("change type = %q, want ADD", res.ChangeType)
	}

	// Occupy the (2) slot, next resolution must pick (3).
	seedFile(t, repo, "proj-1", "a/b/c (2).txt", "c (2).txt")

	res, err = resolver.Resolve(ctx, "proj-1", "a/b/c.txt", models.ReplaceModeKeepBoth)
	if err != nil {
		t.Fatalf("second keep-both: %v", err)
	}
	if res.FinalPath != "a/b/c (3).txt" {
		t.Errorf("second duplicate = %q, want 'a/b/c (3).txt'", res.FinalPath)
	}
}

func TestResolveKeepBothRootLevelNoExtension(t *testing.T) {
	repo := memory.NewFileNodeRepository()
	seedFile(t, repo, "proj-1", "README", "README")
	resolver := NewDuplicateResolver(repo)

	res, err := resolver.Resolve(context.Background(), "proj-1", "README", models.ReplaceModeKeepBoth)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.FinalPath != "README (2)" {
		t.Errorf("FinalPath = %q, want 'README (2)'", res.FinalPath)
	}
}

func TestResolveReplaceDeletesExisting(t *testing.T) {
	repo := memory.NewFileNodeRepository()
	existing := seedFile(t, repo, "proj-1", "a/b/c.txt", "c.txt")
	resolver := NewDuplicateResolver(repo)
	ctx := context.Background()

	res, err := resolver.Resolve(ctx, "proj-1", "a/b/c.txt", models.ReplaceModeReplace)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.ChangeType != models.ChangeTypeReplace || res.FinalPath != "a/b/c.txt" {
		t.Errorf("resolution = %+v, want REPLACE at unchanged path", res)
	}
	if res.Replaced == nil || res.Replaced.ID != existing.ID {
		t.Errorf("Replaced = %+v, want the deleted node", res.Replaced)
	}

	if _, err := repo.GetByID(ctx, existing.ID, "proj-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("old node still resolvable after replace")
	}
}
