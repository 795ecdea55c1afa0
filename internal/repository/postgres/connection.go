package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"filedepot/internal/domain/repositories"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds dynamically prefixed table names
type TableNames struct {
	FileNodes  string
	ChangeLogs string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		FileNodes:  fmt.Sprintf("%sfile_nodes", prefix),
		ChangeLogs: fmt.Sprintf("%sfile_change_logs", prefix),
	}
}

// CreateConnectionPool creates a new pgx connection pool.
//
// Dynamic table prefixes (dev_, test_, prod_) are interpolated into SQL
// before it is sent to the database, so each environment gets its own
// prepared statements.
//
// When a transaction pooler (port 6543) is detected, the query execution
// mode falls back to cache_describe: it uses the extended protocol but
// caches statement descriptions instead of prepared statements, which
// poolers in transaction mode cannot track.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 5

	if config.ConnConfig.Port == 6543 && config.ConnConfig.DefaultQueryExecMode == pgx.QueryExecModeCacheStatement {
		config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheDescribe
		slog.Debug("auto-configured cache_describe mode for transaction pooler", "port", 6543)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	// Test connection
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// GetExecutor returns the appropriate query executor for the context.
// If a transaction is present in the context, it returns the transaction.
// Otherwise, it returns the provided pool. This enables repositories to
// automatically participate in transactions when they exist.
func GetExecutor(ctx context.Context, pool *pgxpool.Pool) repositories.DBTX {
	if tx := repositories.GetTx(ctx); tx != nil {
		return tx
	}
	return pool
}
