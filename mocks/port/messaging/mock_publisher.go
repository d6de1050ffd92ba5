package messaging

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/entity"
)

// MockCoinEventPublisher is a testify mock of messaging.CoinEventPublisher
type MockCoinEventPublisher struct {
	mock.Mock
}

func (m *MockCoinEventPublisher) PublishLedgerEntries(ctx context.Context, entries []*entity.CoinLedgerEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockCoinEventPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
