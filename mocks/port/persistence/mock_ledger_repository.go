package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/entity"
)

// MockCoinLedgerRepository is a testify mock of persistence.CoinLedgerRepository
type MockCoinLedgerRepository struct {
	mock.Mock
}

func (m *MockCoinLedgerRepository) Append(ctx context.Context, entries ...*entity.CoinLedgerEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockCoinLedgerRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.CoinLedgerEntry, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	entries, _ := args.Get(0).([]*entity.CoinLedgerEntry)
	return entries, args.Get(1).(int64), args.Error(2)
}
