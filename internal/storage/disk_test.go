package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) *DiskStore {
	t.Helper()
	root := t.TempDir()
	store, err := NewDiskStore(filepath.Join(root, "blobs"), filepath.Join(root, "chunks"))
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}
	return store
}

func TestMergeChunksInOrder(t *testing.T) {
	store := newTestStore(t)

	dir, err := store.CreateChunkDir("user-1", "proj-1", "upload-1")
	if err != nil {
		t.Fatalf("CreateChunkDir: %v", err)
	}

	// Write chunks out of order; merge must still follow index order.
	parts := []string{"alpha-", "bravo-", "charlie"}
	for _, i := range []int{2, 0, 1} {
		if _, err := store.WriteChunk(dir, "upload-1", i, strings.NewReader(parts[i])); err != nil {
			t.Fatalf("WriteChunk(%d): %v", i, err)
		}
	}

	dest := store.BlobPath("user-1", "proj-1", "abc123", "out.txt")
	n, err := store.MergeChunks(dir, "upload-1", 3, dest)
	if err != nil {
		t.Fatalf("MergeChunks: %v", err)
	}

	want := "alpha-bravo-charlie"
	if n != int64(len(want)) {
		t.Errorf("merged size = %d, want %d", n, len(want))
	}

	got, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read merged blob: %v", err)
	}
	if !bytes.Equal(got, []byte(want)) {
		t.Errorf("merged content = %q, want %q", got, want)
	}
}

func TestMergeChunksMissingChunk(t *testing.T) {
	store := newTestStore(t)

	dir, err := store.CreateChunkDir("user-1", "proj-1", "upload-2")
	if err != nil {
		t.Fatalf("CreateChunkDir: %v", err)
	}

	// Only index 0 of 2 is present.
	if _, err := store.WriteChunk(dir, "upload-2", 0, strings.NewReader("data")); err != nil {
		t.Fatalf("WriteChunk: %v", err)
	}

	dest := store.BlobPath("user-1", "proj-1", "def456", "out.bin")
	if _, err := store.MergeChunks(dir, "upload-2", 2, dest); err == nil {
		t.Fatal("MergeChunks succeeded with a missing chunk")
	}

	// The partial destination must not survive a failed merge.
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Errorf("partial blob left on disk after failed merge")
	}
}

func TestWriteChunkOverwrite(t *testing.T) {
	store := newTestStore(t)

	dir, err := store.CreateChunkDir("user-1", "proj-1", "upload-3")
	if err != nil {
		t.Fatalf("CreateChunkDir: %v", err)
	}

	if _, err := store.WriteChunk(dir, "upload-3", 0, strings.NewReader("first")); err != nil {
		t.Fatalf("WriteChunk: %v", err)
	}
	if _, err := store.WriteChunk(dir, "upload-3", 0, strings.NewReader("second")); err != nil {
		t.Fatalf("WriteChunk retry: %v", err)
	}

	got, err := os.ReadFile(ChunkPath(dir, "upload-3", 0))
	if err != nil {
		t.Fatalf("read chunk: %v", err)
	}
	if string(got) != "second" {
		t.Errorf("chunk content = %q, want last write to win", got)
	}
}

func TestRemoveChunkDirIdempotent(t *testing.T) {
	store := newTestStore(t)

	dir, err := store.CreateChunkDir("user-1", "proj-1", "upload-4")
	if err != nil {
		t.Fatalf("CreateChunkDir: %v", err)
	}

	if err := store.RemoveChunkDir(dir); err != nil {
		t.Fatalf("RemoveChunkDir: %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("chunk dir still exists after removal")
	}

	// Second removal is a no-op, not an error.
	if err := store.RemoveChunkDir(dir); err != nil {
		t.Errorf("RemoveChunkDir on absent dir: %v", err)
	}
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain name", in: "report.pdf", want: "report.pdf"},
		{name: "forward slashes", in: "a/b/c.txt", want: "a-b-c.txt"},
		{name: "backslashes", in: "a\\b.txt", want: "a-b.txt"},
		{name: "traversal", in: "../../etc/passwd", want: "----etc-passwd"},
		{name: "empty", in: "  ", want: "unnamed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFileName(tt.in); got != tt.want {
				t.Errorf("SanitizeFileName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
