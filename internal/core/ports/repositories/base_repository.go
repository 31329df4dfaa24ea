package repositories

import "context"

// TransactionManager runs a unit of work against the record store.
//
// Repository calls made with the ctx passed to fn participate in the same unit
// of work. If fn returns an error every write made through that ctx is undone
// and the error is returned unchanged.
type TransactionManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
