package persistence

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/port/persistence"
)

// MockUnitOfWork is a testify mock of persistence.UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	args := m.Called(ctx)
	txCtx, _ := args.Get(0).(context.Context)
	return txCtx, args.Error(1)
}

func (m *MockUnitOfWork) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUnitOfWork) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUnitOfWork) GetUserRepository(ctx context.Context) persistence.UserRepository {
	repo, _ := m.Called(ctx).Get(0).(persistence.UserRepository)
	return repo
}

func (m *MockUnitOfWork) GetLedgerRepository(ctx context.Context) persistence.CoinLedgerRepository {
	repo, _ := m.Called(ctx).Get(0).(persistence.CoinLedgerRepository)
	return repo
}
