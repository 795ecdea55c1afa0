// Package storage owns the on-disk layout for upload scratch chunks and
// finalized blobs. Scratch chunks live under
// scratchRoot/userID/projectID/uploadID/<uploadID>_chunk_<index>; finalized
// blobs under storageRoot/userID/projectID/<uniqueSuffix>-<sanitizedName>.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DiskStore performs chunk and blob I/O against a local or networked
// filesystem.
type DiskStore struct {
	storageRoot string
	scratchRoot string
}

// NewDiskStore creates both root directories if absent.
func NewDiskStore(storageRoot, scratchRoot string) (*DiskStore, error) {
	absStorage, err := filepath.Abs(storageRoot)
	if err != nil {
		return nil, fmt.Errorf("resolve storage root: %w", err)
	}
	absScratch, err := filepath.Abs(scratchRoot)
	if err != nil {
		return nil, fmt.Errorf("resolve scratch root: %w", err)
	}

	if err := os.MkdirAll(absStorage, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	if err := os.MkdirAll(absScratch, 0o755); err != nil {
		return nil, fmt.Errorf("create scratch root: %w", err)
	}

	return &DiskStore{storageRoot: absStorage, scratchRoot: absScratch}, nil
}

// CreateChunkDir allocates the scratch directory exclusively owned by one
// upload session.
func (s *DiskStore) CreateChunkDir(userID, projectID, uploadID string) (string, error) {
	dir := filepath.Join(s.scratchRoot, userID, projectID, uploadID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create chunk directory: %w", err)
	}
	return dir, nil
}

// ChunkPath returns the scratch path for one chunk index.
func ChunkPath(chunkDir, uploadID string, index int) string {
	return filepath.Join(chunkDir, fmt.Sprintf("%s_chunk_%d", uploadID, index))
}

// WriteChunk durably persists one chunk's raw bytes. Re-writing the same
// index overwrites the previous blob, so chunk retries are idempotent.
func (s *DiskStore) WriteChunk(chunkDir, uploadID string, index int, r io.Reader) (int64, error) {
	path := ChunkPath(chunkDir, uploadID, index)

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create chunk file: %w", err)
	}

	n, err := io.Copy(f, r)
	if err != nil {
		f.Close()
		os.Remove(path)
		return 0, fmt.Errorf("write chunk %d: %w", index, err)
	}

	if err := f.Close(); err != nil {
		os.Remove(path)
		return 0, fmt.Errorf("close chunk file: %w", err)
	}

	return n, nil
}

// MergeChunks concatenates chunks in strict index order 0..totalChunks-1
// into destPath. A missing chunk or any I/O failure removes the partial
// destination before returning. Returns the merged byte count.
func (s *DiskStore) MergeChunks(chunkDir, uploadID string, totalChunks int, destPath string) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return 0, fmt.Errorf("create blob directory: %w", err)
	}

	dest, err := os.Create(destPath)
	if err != nil {
		return 0, fmt.Errorf("create destination blob: %w", err)
	}

	var total int64
	for i := 0; i < totalChunks; i++ {
		n, err := appendChunk(dest, ChunkPath(chunkDir, uploadID, i))
		if err != nil {
			dest.Close()
			os.Remove(destPath)
			return 0, fmt.Errorf("merge chunk %d: %w", i, err)
		}
		total += n
	}

	if err := dest.Close(); err != nil {
		os.Remove(destPath)
		return 0, fmt.Errorf("close destination blob: %w", err)
	}

	return total, nil
}

func appendChunk(dest *os.File, chunkPath string) (int64, error) {
	src, err := os.Open(chunkPath)
	if err != nil {
		return 0, err
	}
	defer src.Close()

	return io.Copy(dest, src)
}

// RemoveChunkDir deletes a session's scratch directory and everything in it.
// Removing an already-absent directory is not an error.
func (s *DiskStore) RemoveChunkDir(chunkDir string) error {
	if chunkDir == "" {
		return nil
	}
	if err := os.RemoveAll(chunkDir); err != nil {
		return fmt.Errorf("remove chunk directory: %w", err)
	}
	return nil
}

// BlobPath returns the destination path for a finalized blob. The project
// directory is shared across uploads; the unique suffix keeps concurrent
// writers from colliding on the final file name.
func (s *DiskStore) BlobPath(userID, projectID, uniqueSuffix, fileName string) string {
	return filepath.Join(s.storageRoot, userID, projectID,
		fmt.Sprintf("%s-%s", uniqueSuffix, SanitizeFileName(fileName)))
}

// Open opens a finalized blob for reading.
func (s *DiskStore) Open(diskPath string) (io.ReadCloser, error) {
	f, err := os.Open(diskPath)
	if err != nil {
		return nil, fmt.Errorf("open blob: %w", err)
	}
	return f, nil
}

// RemoveBlob deletes a finalized blob from disk.
func (s *DiskStore) RemoveBlob(diskPath string) error {
	if err := os.Remove(diskPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove blob: %w", err)
	}
	return nil
}

// SanitizeFileName strips path separators and traversal sequences so a
// client-supplied name cannot escape the project directory.
func SanitizeFileName(name string) string {
	name = strings.ReplaceAll(name, "\\", "-")
	name = strings.ReplaceAll(name, "/", "-")
	name = strings.ReplaceAll(name, "..", "-")
	name = strings.TrimSpace(name)
	if name == "" {
		name = "unnamed"
	}
	return name
}
