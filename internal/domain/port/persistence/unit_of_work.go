package persistence

import (
	"context"
)

// UnitOfWork coordinates one database transaction across repositories
type UnitOfWork interface {
	// Begin starts a new transaction and returns a transactional context
	Begin(ctx context.Context) (context.Context, error)

	// Commit commits the transaction in the given context
	Commit(ctx context.Context) error

	// Rollback rolls back the transaction in the given context.
	// Rolling back an already finished transaction is not an error.
	Rollback(ctx context.Context) error

	// GetUserRepository returns a user repository bound to the transaction in ctx,
	// or to the plain connection when ctx carries none
	GetUserRepository(ctx context.Context) UserRepository

	// GetLedgerRepository returns a ledger repository bound to the transaction in ctx
	GetLedgerRepository(ctx context.Context) CoinLedgerRepository
}
