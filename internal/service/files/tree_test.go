package files

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"filedepot/internal/domain/models"
	"filedepot/internal/repository/memory"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGetProjectTreeNestsDirectoriesAndFiles(t *testing.T) {
	repo := memory.NewFileNodeRepository()
	ctx := context.Background()

	docs, err := repo.CreateDirectoryIfNotExists(ctx, "proj-1", nil, "docs")
	if err != nil {
		t.Fatalf("create docs: %v", err)
	}
	sub, err := repo.CreateDirectoryIfNotExists(ctx, "proj-1", &docs.ID, "sub")
	if err != nil {
		t.Fatalf("create sub: %v", err)
	}

	mustCreateFile := func(parentID *string, name, path string) {
		t.Helper()
		if err := repo.CreateFile(ctx, &models.FileNode{
			ProjectID: "proj-1",
			ParentID:  parentID,
			Name:      name,
			Path:      path,
		}); err != nil {
			t.Fatalf("create file %s: %v", path, err)
		}
	}
	mustCreateFile(nil, "root.md", "root.md")
	mustCreateFile(&docs.ID, "a.txt", "docs/a.txt")
	mustCreateFile(&sub.ID, "b.txt", "docs/sub/b.txt")

	tree, err := NewTreeService(repo, discardLogger()).GetProjectTree(ctx, "proj-1")
	if err != nil {
		t.Fatalf("GetProjectTree: %v", err)
	}

	if len(tree.Directories) != 1 || tree.Directories[0].Name != "docs" {
		t.Fatalf("root directories = %+v, want single 'docs'", tree.Directories)
	}
	if len(tree.Files) != 1 || tree.Files[0].Name != "root.md" {
		t.Errorf("root files = %+v, want single 'root.md'", tree.Files)
	}

	docsNode := tree.Directories[0]
	if len(docsNode.Files) != 1 || docsNode.Files[0].Name != "a.txt" {
		t.Errorf("docs files = %+v, want single 'a.txt'", docsNode.Files)
	}
	if len(docsNode.Directories) != 1 || docsNode.Directories[0].Name != "sub" {
		t.Fatalf("docs subdirectories = %+v, want single 'sub'", docsNode.Directories)
	}
	if files := docsNode.Directories[0].Files; len(files) != 1 || files[0].Name != "b.txt" {
		t.Errorf("sub files = %+v, want single 'b.txt'", files)
	}
}

func TestGetProjectTreeEmptyProject(t *testing.T) {
	tree, err := NewTreeService(memory.NewFileNodeRepository(), discardLogger()).GetProjectTree(context.Background(), "proj-none")
	if err != nil {
		t.Fatalf("GetProjectTree: %v", err)
	}
	if tree.Directories == nil || tree.Files == nil {
		t.Error("empty tree must use empty slices, not nil")
	}
	if len(tree.Directories) != 0 || len(tree.Files) != 0 {
		t.Errorf("tree = %+v, want empty", tree)
	}
}

func TestGetProjectTreeOrphanAttachesAtRoot(t *testing.T) {
	repo := memory.NewFileNodeRepository()
	ctx := context.Background()

	ghost := "no-such-directory"
	if err := repo.CreateFile(ctx, &models.FileNode{
		ProjectID: "proj-1",
		ParentID:  &ghost,
		Name:      "orphan.txt",
		Path:      "lost/orphan.txt",
	}); err != nil {
		t.Fatalf("create orphan: %v", err)
	}

	tree, err := NewTreeService(repo, discardLogger()).GetProjectTree(ctx, "proj-1")
	if err != nil {
		t.Fatalf("GetProjectTree: %v", err)
	}
	if len(tree.Files) != 1 || tree.Files[0].Name != "orphan.txt" {
		t.Errorf("root files = %+v, want the orphan surfaced at root", tree.Files)
	}
}
