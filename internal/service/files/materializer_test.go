package files

import (
	"context"
	"errors"
	"testing"

	"filedepot/internal/domain"
	"filedepot/internal/domain/models"
	"filedepot/internal/repository/memory"
)

func TestMaterializeCreatesDirectoryChain(t *testing.T) {
	nodeRepo := memory.NewFileNodeRepository()
	m := NewMaterializer(nodeRepo, memory.NewTransactionManager())
	ctx := context.Background()

	parentID, leaf, err := m.Materialize(ctx, "proj-1", "x/y/z.txt")
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	if leaf != "z.txt" {
		t.Errorf("leaf = %q, want %q", leaf, "z.txt")
	}
	if parentID == nil {
		t.Fatal("parentID is nil, want id of directory y")
	}

	parent, err := nodeRepo.GetByID(ctx, *parentID, "proj-1")
	if err != nil {
		t.Fatalf("GetByID(parent): %v", err)
	}
	if parent.Name != "y" || !parent.IsDir() {
		t.Errorf("parent = %+v, want directory named y", parent)
	}

	nodes, _ := nodeRepo.GetAllByProject(ctx, "proj-1")
	if got := countDirectories(nodes); got != 2 {
		t.Errorf("directory count = %d, want 2 (x and x/y)", got)
	}
}

func TestMaterializeIsIdempotent(t *testing.T) {
	nodeRepo := memory.NewFileNodeRepository()
	m := NewMaterializer(nodeRepo, memory.NewTransactionManager())
	ctx := context.Background()

	first, _, err := m.Materialize(ctx, "proj-1", "x/y/z.txt")
	if err != nil {
		t.Fatalf("first Materialize: %v", err)
	}
	second, _, err := m.Materialize(ctx, "proj-1", "x/y/z.txt")
	if err != nil {
		t.Fatalf("second Materialize: %v", err)
	}

	if *first != *second {
		t.Errorf("parent IDs differ across calls: %s vs %s", *first, *second)
	}

	nodes, _ := nodeRepo.GetAllByProject(ctx, "proj-1")
	if got := countDirectories(nodes); got != 2 {
		t.Errorf("directory count = %d after repeat, want 2", got)
	}
}

func TestMaterializeRootLevelFile(t *testing.T) {
	m := NewMaterializer(memory.NewFileNodeRepository(), memory.NewTransactionManager())

	parentID, leaf, err := m.Materialize(context.Background(), "proj-1", "readme.md")
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	if parentID != nil {
		t.Errorf("parentID = %v, want nil for root-level file", *parentID)
	}
	if leaf != "readme.md" {
		t.Errorf("leaf = %q, want %q", leaf, "readme.md")
	}
}

func TestMaterializeRejectsEmptyLeaf(t *testing.T) {
	m := NewMaterializer(memory.NewFileNodeRepository(), memory.NewTransactionManager())

	for _, path := range []string{"", "/", "././."} {
		if _, _, err := m.Materialize(context.Background(), "proj-1", path); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("Materialize(%q) error = %v, want ErrValidation", path, err)
		}
	}
}

func countDirectories(nodes []models.FileNode) int {
	count := 0
	for _, n := range nodes {
		if n.IsDir() {
			count++
		}
	}
	return count
}
