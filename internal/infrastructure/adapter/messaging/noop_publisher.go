package messaging

import (
	"context"

	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/entity"
)

// NoopPublisher drops events. Used when no NATS server is configured.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

func (NoopPublisher) PublishLedgerEntries(context.Context, []*entity.CoinLedgerEntry) error {
	return nil
}

func (NoopPublisher) Close() error { return nil }
