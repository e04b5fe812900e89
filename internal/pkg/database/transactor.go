package database

import "context"

// Transactor runs fn inside a single database transaction. The transaction
// is carried by txCtx; repositories resolve it through their querier lookup,
// so every repository call made with txCtx joins the same transaction.
// A non-nil error from fn rolls the transaction back.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error
}

// Pinger reports whether the store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
