package files

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"filedepot/internal/domain"
	"filedepot/internal/domain/models"
	"filedepot/internal/repository/memory"
)

func TestRecordAndListChangeLogs(t *testing.T) {
	repo := memory.NewChangeLogRepository()
	svc := NewChangeLogService(repo, discardLogger())
	ctx := context.Background()

	if err := svc.Record(ctx, "proj-1", "user-1", "a.txt", "docs/a.txt", models.ChangeTypeAdd, "initial upload"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := svc.Record(ctx, "proj-1", "user-2", "a.txt", "docs/a.txt", models.ChangeTypeReplace, ""); err != nil {
		t.Fatalf("Record(replace): %v", err)
	}
	if err := svc.Record(ctx, "proj-other", "user-1", "x.txt", "x.txt", models.ChangeTypeAdd, ""); err != nil {
		t.Fatalf("Record(other project): %v", err)
	}

	entries, err := svc.ListChangeLogs(ctx, "proj-1", 0)
	if err != nil {
		t.Fatalf("ListChangeLogs: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}

	// Newest first.
	if entries[0].ChangeType != models.ChangeTypeReplace || entries[1].ChangeType != models.ChangeTypeAdd {
		t.Errorf("order = [%s, %s], want [REPLACE, ADD]", entries[0].ChangeType, entries[1].ChangeType)
	}
	if entries[1].Description != "initial upload" || entries[1].ChangedByID != "user-1" {
		t.Errorf("oldest entry = %+v, want user-1's initial upload", entries[1])
	}
}

func TestListChangeLogsHonorsLimit(t *testing.T) {
	repo := memory.NewChangeLogRepository()
	svc := NewChangeLogService(repo, discardLogger())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		name := fmt.Sprintf("f%d.txt", i)
		if err := svc.Record(ctx, "proj-1", "user-1", name, name, models.ChangeTypeAdd, ""); err != nil {
			t.Fatalf("Record(%d): %v", i, err)
		}
	}

	entries, err := svc.ListChangeLogs(ctx, "proj-1", 3)
	if err != nil {
		t.Fatalf("ListChangeLogs: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("entries = %d, want 3", len(entries))
	}
}

func TestRecordRejectsUnknownChangeType(t *testing.T) {
	svc := NewChangeLogService(memory.NewChangeLogRepository(), discardLogger())

	err := svc.Record(context.Background(), "proj-1", "user-1", "a.txt", "a.txt", "RENAMED", "")
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Record error = %v, want ErrValidation", err)
	}
}
