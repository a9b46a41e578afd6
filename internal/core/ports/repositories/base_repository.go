package repositories

import "context"

// TransactionManager runs fn inside a single unit of work. Repository calls made with
// the ctx handed to fn join that unit; if fn returns an error nothing it wrote is kept.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
