package messaging

import (
	"context"

	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/entity"
)

// CoinEventPublisher announces committed balance changes to other services.
// It is only called after commit; a failure never undoes the change.
type CoinEventPublisher interface {
	PublishLedgerEntries(ctx context.Context, entries []*entity.CoinLedgerEntry) error
	Close() error
}
