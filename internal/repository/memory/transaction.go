package memory

import (
	"context"

	"filedepot/internal/domain/repositories"
)

// TransactionManager runs the function directly; the in-memory repositories
// have no transactional semantics to coordinate.
type TransactionManager struct{}

// NewTransactionManager creates a pass-through transaction manager
func NewTransactionManager() repositories.TransactionManager {
	return &TransactionManager{}
}

func (tm *TransactionManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}
