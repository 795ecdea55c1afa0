package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"filedepot/internal/auth"
	"filedepot/internal/config"
	"filedepot/internal/handler"
	"filedepot/internal/middleware"
	"filedepot/internal/mimetypes"
	"filedepot/internal/repository/postgres"
	"filedepot/internal/service/files"
	"filedepot/internal/storage"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// JWT verifier backed by the identity provider's JWKS endpoint
	jwtVerifier, err := auth.NewJWTVerifier(cfg.JWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", 25,
		"min_conns", 5,
	)

	// Create repositories
	tables := postgres.NewTableNames(cfg.TablePrefix)
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	nodeRepo := postgres.NewFileNodeRepository(repoConfig)
	changeLogRepo := postgres.NewChangeLogRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Blob and scratch storage on the local filesystem
	store, err := storage.NewDiskStore(cfg.StorageRoot, cfg.ScratchRoot)
	if err != nil {
		log.Fatalf("Failed to initialize disk store: %v", err)
	}
	logger.Info("disk store initialized",
		"storage_root", cfg.StorageRoot,
		"scratch_root", cfg.ScratchRoot,
	)

	mimeRegistry, err := mimetypes.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load MIME type registry: %v", err)
	}

	// Create services
	materializer := files.NewMaterializer(nodeRepo, txManager)
	resolver := files.NewDuplicateResolver(nodeRepo)
	changeLogService := files.NewChangeLogService(changeLogRepo, logger)
	treeService := files.NewTreeService(nodeRepo, logger)
	exportService := files.NewExportService(nodeRepo, store, logger)
	downloadService := files.NewDownloadService(nodeRepo, store)

	uploadManager := files.NewUploadManager(
		store,
		materializer,
		resolver,
		nodeRepo,
		changeLogService,
		txManager,
		mimeRegistry,
		cfg.SessionTTL,
		cfg.SweepInterval,
		logger,
	)
	uploadManager.Start()
	defer uploadManager.Stop()

	// Create handlers
	uploadHandler := handler.NewUploadHandler(uploadManager, logger)
	fileHandler := handler.NewFileHandler(treeService, downloadService, logger)
	exportHandler := handler.NewExportHandler(exportService, logger)
	changeLogHandler := handler.NewChangeLogHandler(changeLogService, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", fileHandler.HealthCheck)

	// Upload routes
	mux.HandleFunc("POST /api/projects/{id}/uploads", uploadHandler.InitUpload)
	mux.HandleFunc("PUT /api/uploads/{id}/chunks/{index}", uploadHandler.UploadChunk)
	mux.HandleFunc("POST /api/uploads/{id}/complete", uploadHandler.FinalizeUpload)
	mux.HandleFunc("DELETE /api/uploads/{id}", uploadHandler.CancelUpload)
	mux.HandleFunc("GET /api/projects/{id}/files/duplicate", uploadHandler.CheckDuplicate)

	// Browse and download routes
	mux.HandleFunc("GET /api/projects/{id}/tree", fileHandler.GetTree)
	mux.HandleFunc("GET /api/files/{id}/download", fileHandler.DownloadFile)

	// Export and audit routes
	mux.HandleFunc("GET /api/projects/{id}/export", exportHandler.ExportProject)
	mux.HandleFunc("GET /api/projects/{id}/changelog", changeLogHandler.ListChangeLogs)

	// Build middleware chain
	var httpHandler http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	httpHandler = middleware.Auth(jwtVerifier)(httpHandler)
	httpHandler = middleware.Recovery(logger)(httpHandler)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	httpHandler = corsHandler.Handler(httpHandler)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // Disabled to allow long-running archive downloads
		IdleTimeout:  60 * time.Second,
	}

	// Shut down cleanly on SIGINT/SIGTERM so in-flight uploads get their
	// responses and the sweeper exits.
	shutdownCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "port", cfg.Port)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	case <-shutdownCtx.Done():
		logger.Info("shutdown signal received")
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
		}
	}
}
