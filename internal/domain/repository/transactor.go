package repository

import "context"

// Transactor runs fn inside a single database transaction. Repositories
// called with the ctx passed to fn join that transaction. A nested call
// reuses the outer transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
