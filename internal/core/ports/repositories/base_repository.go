package repositories

import "context"

// TransactionManager runs a unit of work inside one database transaction.
// Repositories called with the context passed to fn join that transaction.
type TransactionManager interface {
	// WithinTx commits when fn returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
