package files

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"filedepot/internal/domain"
	"filedepot/internal/domain/models"
	"filedepot/internal/domain/repositories"
	"filedepot/internal/domain/services"
	"filedepot/internal/mimetypes"
	"filedepot/internal/storage"
)

// UploadManager owns the chunked upload lifecycle: session creation, chunk
// receipt, merge-on-finalize, cancellation, and reclamation of abandoned
// sessions. Sessions live in process memory; they do not survive a restart
// and are invisible to other instances.
type UploadManager struct {
	sessions     *sessionStore
	store        *storage.DiskStore
	materializer services.Materializer
	resolver     *DuplicateResolver
	nodeRepo     repositories.FileNodeRepository
	changeLog    services.ChangeLogService
	txManager    repositories.TransactionManager
	mimeRegistry *mimetypes.Registry
	logger       *slog.Logger

	sessionTTL    time.Duration
	sweepInterval time.Duration
	stopSweep     chan struct{}
	sweepDone     chan struct{}
}

// NewUploadManager wires the upload session manager. Call Start to run the
// staleness sweep and Stop on shutdown.
func NewUploadManager(
	store *storage.DiskStore,
	materializer services.Materializer,
	resolver *DuplicateResolver,
	nodeRepo repositories.FileNodeRepository,
	changeLog services.ChangeLogService,
	txManager repositories.TransactionManager,
	mimeRegistry *mimetypes.Registry,
	sessionTTL time.Duration,
	sweepInterval time.Duration,
	logger *slog.Logger,
) *UploadManager {
	return &UploadManager{
		sessions:      newSessionStore(),
		store:         store,
		materializer:  materializer,
		resolver:      resolver,
		nodeRepo:      nodeRepo,
		changeLog:     changeLog,
		txManager:     txManager,
		mimeRegistry:  mimeRegistry,
		logger:        logger,
		sessionTTL:    sessionTTL,
		sweepInterval: sweepInterval,
	}
}

var _ services.UploadService = (*UploadManager)(nil)

// InitUpload opens a chunked upload session. When the normalized target path
// is already occupied and no replace mode was supplied, the duplicate
// descriptor is returned instead of a session so the initiator can choose.
func (m *UploadManager) InitUpload(ctx context.Context, projectID, userID string, req *services.InitUploadRequest) (*services.InitUploadResult, error) {
	if err := validateInitRequest(req); err != nil {
		return nil, err
	}

	logicalPath := req.FilePath
	if logicalPath == "" {
		logicalPath = req.FileName
	}
	normalized, err := NormalizeLogicalPath(logicalPath)
	if err != nil {
		return nil, err
	}
	if normalized == "" {
		return nil, fmt.Errorf("name is required and cannot be empty: %w", domain.ErrValidation)
	}

	existing, err := m.nodeRepo.FindFileByPath(ctx, projectID, normalized)
	if err != nil {
		return nil, err
	}
	if existing != nil && req.ReplaceMode == models.ReplaceModeNone {
		return &services.InitUploadResult{Duplicate: true, Existing: existing}, nil
	}

	uploadID := uuid.New().String()
	chunkDir, err := m.store.CreateChunkDir(userID, projectID, uploadID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	m.sessions.insert(&models.UploadSession{
		UploadID:    uploadID,
		UserID:      userID,
		ProjectID:   projectID,
		FileName:    req.FileName,
		FilePath:    normalized,
		FileSize:    req.FileSize,
		TotalChunks: req.TotalChunks,
		MimeType:    req.MimeType,
		ReplaceMode: req.ReplaceMode,
		Description: req.Description,
		Received:    make(map[int]struct{}),
		ChunkDir:    chunkDir,
		CreatedAt:   now,
		UpdatedAt:   now,
	})

	m.logger.Info("upload session created",
		"upload_id", uploadID,
		"project_id", projectID,
		"file_path", normalized,
		"total_chunks", req.TotalChunks,
	)

	return &services.InitUploadResult{UploadID: uploadID}, nil
}

// UploadChunk durably persists one chunk. Chunks may arrive in any order and
// re-uploading an index overwrites the stored blob, so retries are
// idempotent.
func (m *UploadManager) UploadChunk(ctx context.Context, uploadID, userID string, chunkIndex, totalChunks int, chunk io.Reader) (*services.ChunkProgress, error) {
	session, ok := m.sessions.snapshot(uploadID)
	if !ok {
		return nil, fmt.Errorf("upload session %s: %w", uploadID, domain.ErrNotFound)
	}
	if session.UserID != userID {
		return nil, fmt.Errorf("upload session %s belongs to another user: %w", uploadID, domain.ErrUnauthorized)
	}
	if totalChunks != session.TotalChunks {
		return nil, fmt.Errorf("total chunks mismatch (session declared %d, got %d): %w",
			session.TotalChunks, totalChunks, domain.ErrValidation)
	}
	if chunkIndex < 0 || chunkIndex >= session.TotalChunks {
		return nil, fmt.Errorf("chunk index %d out of range [0, %d): %w",
			chunkIndex, session.TotalChunks, domain.ErrValidation)
	}

	if _, err := m.store.WriteChunk(session.ChunkDir, uploadID, chunkIndex, chunk); err != nil {
		return nil, err
	}

	received, total, ok := m.sessions.markReceived(uploadID, chunkIndex)
	if !ok {
		// Session was cancelled or swept while the chunk was being
		// written; its scratch dir is gone or about to be.
		return nil, fmt.Errorf("upload session %s: %w", uploadID, domain.ErrNotFound)
	}

	return &services.ChunkProgress{
		Received: received,
		Total:    total,
		Complete: received == total,
	}, nil
}

// FinalizeUpload merges all chunks in index order into the destination blob,
// materializes the directory chain, applies the duplicate policy, and
// creates the FileNode and its audit row in one transaction. Any failure
// cleans up the scratch directory and removes the session before the error
// propagates, so nothing stays schedulable under the same uploadID.
func (m *UploadManager) FinalizeUpload(ctx context.Context, uploadID, projectID, userID string) (*models.FileNode, error) {
	session, ok := m.sessions.snapshot(uploadID)
	if !ok {
		return nil, fmt.Errorf("upload session %s: %w", uploadID, domain.ErrNotFound)
	}
	if session.UserID != userID {
		return nil, fmt.Errorf("upload session %s belongs to another user: %w", uploadID, domain.ErrUnauthorized)
	}
	if session.ProjectID != projectID {
		return nil, fmt.Errorf("upload session %s does not belong to project %s: %w", uploadID, projectID, domain.ErrValidation)
	}

	if !session.Complete() {
		// Missing chunks are not fatal to the session: the caller can
		// re-upload them and finalize again.
		return nil, fmt.Errorf("upload incomplete: %d of %d chunks received (missing %v): %w",
			len(session.Received), session.TotalChunks, session.MissingChunks(), domain.ErrValidation)
	}

	node, err := m.finalize(ctx, &session)
	if err != nil {
		m.cleanupSession(uploadID, session.ChunkDir)
		return nil, err
	}

	m.cleanupSession(uploadID, session.ChunkDir)
	m.logger.Info("upload finalized",
		"upload_id", uploadID,
		"project_id", projectID,
		"node_id", node.ID,
		"path", node.Path,
		"size", node.Size,
	)

	return node, nil
}

func (m *UploadManager) finalize(ctx context.Context, session *models.UploadSession) (*models.FileNode, error) {
	suffix := uuid.New().String()[:8]
	destPath := m.store.BlobPath(session.UserID, session.ProjectID, suffix, session.FileName)

	size, err := m.store.MergeChunks(session.ChunkDir, session.UploadID, session.TotalChunks, destPath)
	if err != nil {
		return nil, err
	}

	parentID, _, err := m.materializer.Materialize(ctx, session.ProjectID, session.FilePath)
	if err != nil {
		m.store.RemoveBlob(destPath)
		return nil, err
	}

	mimeType := session.MimeType
	if mimeType == "" {
		mimeType = m.mimeRegistry.ByFileName(session.FileName)
	}

	// Duplicate resolution, node creation, and the audit row commit or
	// roll back together.
	var node *models.FileNode
	err = m.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		resolution, err := m.resolver.Resolve(txCtx, session.ProjectID, session.FilePath, session.ReplaceMode)
		if err != nil {
			return err
		}

		node = &models.FileNode{
			ProjectID: session.ProjectID,
			ParentID:  parentID,
			Name:      resolution.FinalName,
			Size:      size,
			MimeType:  mimeType,
			DiskPath:  destPath,
			Path:      resolution.FinalPath,
		}
		if err := m.nodeRepo.CreateFile(txCtx, node); err != nil {
			return err
		}

		return m.changeLog.Record(txCtx,
			session.ProjectID,
			session.UserID,
			resolution.FinalName,
			resolution.FinalPath,
			resolution.ChangeType,
			session.Description,
		)
	})
	if err != nil {
		m.store.RemoveBlob(destPath)
		return nil, err
	}

	return node, nil
}

// CancelUpload removes the session and its scratch files. Cancelling an
// unknown or already-finished uploadID succeeds without effect.
func (m *UploadManager) CancelUpload(ctx context.Context, uploadID, userID string) error {
	session, ok := m.sessions.snapshot(uploadID)
	if !ok {
		return nil // already gone, treated as already-cancelled
	}
	if session.UserID != userID {
		return fmt.Errorf("upload session %s belongs to another user: %w", uploadID, domain.ErrUnauthorized)
	}

	m.cleanupSession(uploadID, session.ChunkDir)
	m.logger.Info("upload cancelled", "upload_id", uploadID, "project_id", session.ProjectID)
	return nil
}

// CheckDuplicate reports whether a file already occupies the normalized
// logical path.
func (m *UploadManager) CheckDuplicate(ctx context.Context, projectID, filePath string) (*services.DuplicateCheckResult, error) {
	normalized, err := NormalizeLogicalPath(filePath)
	if err != nil {
		return nil, err
	}
	if normalized == "" {
		return nil, fmt.Errorf("file path is required: %w", domain.ErrValidation)
	}

	existing, err := m.nodeRepo.FindFileByPath(ctx, projectID, normalized)
	if err != nil {
		return nil, err
	}

	return &services.DuplicateCheckResult{
		Exists:   existing != nil,
		Existing: existing,
	}, nil
}

func (m *UploadManager) cleanupSession(uploadID, chunkDir string) {
	m.sessions.remove(uploadID)
	if err := m.store.RemoveChunkDir(chunkDir); err != nil {
		m.logger.Error("failed to remove chunk directory",
			"upload_id", uploadID,
			"chunk_dir", chunkDir,
			"error", err,
		)
	}
}

// Start launches the background sweep that reclaims sessions whose last
// activity is older than the staleness threshold. It runs until Stop.
func (m *UploadManager) Start() {
	m.stopSweep = make(chan struct{})
	m.sweepDone = make(chan struct{})

	go func() {
		defer close(m.sweepDone)
		ticker := time.NewTicker(m.sweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				m.sweepOnce(time.Now())
			case <-m.stopSweep:
				return
			}
		}
	}()

	m.logger.Info("upload sweep started",
		"interval", m.sweepInterval,
		"session_ttl", m.sessionTTL,
	)
}

// Stop terminates the background sweep and waits for it to exit.
func (m *UploadManager) Stop() {
	if m.stopSweep == nil {
		return
	}
	close(m.stopSweep)
	<-m.sweepDone
	m.stopSweep = nil
}

// sweepOnce reclaims every stale session: same cleanup cancel would do.
func (m *UploadManager) sweepOnce(now time.Time) {
	stale := m.sessions.removeStale(now, m.sessionTTL)
	for _, session := range stale {
		if err := m.store.RemoveChunkDir(session.ChunkDir); err != nil {
			m.logger.Error("failed to remove stale chunk directory",
				"upload_id", session.UploadID,
				"chunk_dir", session.ChunkDir,
				"error", err,
			)
			continue
		}
		m.logger.Info("stale upload session reclaimed",
			"upload_id", session.UploadID,
			"project_id", session.ProjectID,
			"age", now.Sub(session.UpdatedAt),
		)
	}
}
