package shared

import (
	"context"
)

// TransactionManager runs a function inside a storage transaction.
// Repository calls made with the ctx passed to fn join the transaction;
// an error from fn rolls everything back.
type TransactionManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Filter carries pagination and ordering for list queries. A zero
// Page or PageSize means the repository applies its defaults.
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Filters  map[string]interface{}
}
