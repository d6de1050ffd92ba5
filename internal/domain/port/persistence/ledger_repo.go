package persistence

import (
	"context"

	"github.com/google/uuid"

	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/entity"
)

// CoinLedgerRepository stores the append-only history of balance changes
type CoinLedgerRepository interface {
	// Append writes entries in one statement. Entries are never updated afterwards.
	Append(ctx context.Context, entries ...*entity.CoinLedgerEntry) error

	// ListByUser returns one page of a user's entries, newest first, and the total count
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.CoinLedgerEntry, int64, error)
}
