package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/entity"
)

// MockUserRepository is a testify mock of persistence.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) LockForUpdate(ctx context.Context, ids ...uuid.UUID) (map[uuid.UUID]*entity.User, error) {
	args := m.Called(ctx, ids)
	users, _ := args.Get(0).(map[uuid.UUID]*entity.User)
	return users, args.Error(1)
}

func (m *MockUserRepository) IncrementCoins(ctx context.Context, id uuid.UUID, amount int64) (int64, error) {
	args := m.Called(ctx, id, amount)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) DecrementCoinsIfSufficient(ctx context.Context, id uuid.UUID, amount int64) (int64, bool, error) {
	args := m.Called(ctx, id, amount)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func (m *MockUserRepository) SetCoins(ctx context.Context, id uuid.UUID, amount int64) error {
	args := m.Called(ctx, id, amount)
	return args.Error(0)
}
