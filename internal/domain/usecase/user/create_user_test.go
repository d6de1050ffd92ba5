package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/entity"
	errs "github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/error"
	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/port/usecase"
	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/infrastructure/adapter/logger"
	coremocks "github.com/kodirov8788/topish-digitalOcian-sub002/mocks/port/core"
	persistencemocks "github.com/kodirov8788/topish-digitalOcian-sub002/mocks/port/persistence"
)

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	fixedTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("should create user with default coins", func(t *testing.T) {
		// Arrange
		id := uuid.New()
		mockRepo := new(persistencemocks.MockUserRepository)
		mockTime := coremocks.NewMockTimeProvider(t)
		mockTime.EXPECT().Now().Return(fixedTime).Maybe()

		mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(user *entity.User) bool {
			return user.ID == id && user.Coins() == 50 && user.Role == entity.RoleEmployer
		})).Return(nil).Once()

		useCase := NewUserUseCase(mockRepo, mockTime, logger.NewNoopLogger(), entity.DefaultCoins)

		// Act
		user, err := useCase.CreateUser(ctx, usecase.CreateUserRequest{ID: id.String(), Role: "Employer"})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, id, user.ID)
		assert.Equal(t, int64(50), user.Coins())
		mockRepo.AssertExpectations(t)
	})

	t.Run("should honour explicit coins", func(t *testing.T) {
		mockRepo := new(persistencemocks.MockUserRepository)
		mockTime := coremocks.NewMockTimeProvider(t)
		mockTime.EXPECT().Now().Return(fixedTime).Maybe()
		mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		coins := int64(0)
		useCase := NewUserUseCase(mockRepo, mockTime, logger.NewNoopLogger(), entity.DefaultCoins)
		user, err := useCase.CreateUser(ctx, usecase.CreateUserRequest{Coins: &coins})

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.Equal(t, int64(0), user.Coins())
	})

	t.Run("should reject invalid id and role before touching the store", func(t *testing.T) {
		mockRepo := new(persistencemocks.MockUserRepository)
		useCase := NewUserUseCase(mockRepo, coremocks.NewMockTimeProvider(t), logger.NewNoopLogger(), entity.DefaultCoins)

		_, err := useCase.CreateUser(ctx, usecase.CreateUserRequest{ID: "not-a-uuid"})
		assert.ErrorIs(t, err, errs.ErrInvalidUserID)

		_, err = useCase.CreateUser(ctx, usecase.CreateUserRequest{Role: "Owner"})
		assert.ErrorIs(t, err, errs.ErrInvalidRole)

		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("should surface duplicate user", func(t *testing.T) {
		mockRepo := new(persistencemocks.MockUserRepository)
		mockTime := coremocks.NewMockTimeProvider(t)
		mockTime.EXPECT().Now().Return(fixedTime).Maybe()
		mockRepo.On("Create", mock.Anything, mock.Anything).Return(errs.ErrDuplicateUser).Once()

		useCase := NewUserUseCase(mockRepo, mockTime, logger.NewNoopLogger(), entity.DefaultCoins)
		_, err := useCase.CreateUser(ctx, usecase.CreateUserRequest{ID: uuid.NewString()})

		assert.ErrorIs(t, err, errs.ErrAlreadyExists)
	})
}

func TestEnsureUsers(t *testing.T) {
	ctx := context.Background()
	fixedTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("should create only missing users", func(t *testing.T) {
		existing, missing := uuid.New(), uuid.New()
		mockRepo := new(persistencemocks.MockUserRepository)
		mockTime := coremocks.NewMockTimeProvider(t)
		mockTime.EXPECT().Now().Return(fixedTime).Maybe()

		mockRepo.On("Exists", mock.Anything, existing).Return(true, nil).Once()
		mockRepo.On("Exists", mock.Anything, missing).Return(false, nil).Once()
		mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(user *entity.User) bool {
			return user.ID == missing && user.HasServerRole(entity.CapabilityAdmin)
		})).Return(nil).Once()

		useCase := NewUserUseCase(mockRepo, mockTime, logger.NewNoopLogger(), entity.DefaultCoins)
		created, err := useCase.EnsureUsers(ctx, []usecase.CreateUserRequest{
			{ID: existing.String()},
			{ID: missing.String(), Role: "Admin", ServerRoles: []string{"Admin"}},
		})

		require.NoError(t, err)
		assert.Equal(t, 1, created)
		mockRepo.AssertExpectations(t)
	})

	t.Run("should refuse seed entries without an id before touching the store", func(t *testing.T) {
		mockRepo := new(persistencemocks.MockUserRepository)

		useCase := NewUserUseCase(mockRepo, coremocks.NewMockTimeProvider(t), logger.NewNoopLogger(), entity.DefaultCoins)
		created, err := useCase.EnsureUsers(ctx, []usecase.CreateUserRequest{
			{ID: uuid.NewString(), Role: "Employer"},
			{Role: "Admin", ServerRoles: []string{"Admin"}},
		})

		assert.ErrorIs(t, err, errs.ErrInvalidUserID)
		assert.Equal(t, 0, created)
		mockRepo.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("should stop on store failure", func(t *testing.T) {
		id := uuid.New()
		mockRepo := new(persistencemocks.MockUserRepository)
		mockRepo.On("Exists", mock.Anything, id).Return(false, errors.New("connection refused")).Once()

		useCase := NewUserUseCase(mockRepo, coremocks.NewMockTimeProvider(t), logger.NewNoopLogger(), entity.DefaultCoins)
		created, err := useCase.EnsureUsers(ctx, []usecase.CreateUserRequest{{ID: id.String()}})

		assert.Error(t, err)
		assert.Equal(t, 0, created)
	})
}
