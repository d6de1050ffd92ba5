package user

import (
	"context"
	"errors"

	"github.com/google/uuid"

	errs "github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/error"
	coreport "github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/port/core"
	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/port/persistence"
	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/port/usecase"
)

var _ usecase.UserUseCase = (*UserUseCase)(nil)

// UserUseCase handles account bootstrap
type UserUseCase struct {
	userRepo     persistence.UserRepository
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	defaultCoins int64
}

// NewUserUseCase creates a new UserUseCase. defaultCoins is the balance given to accounts
// created without an explicit one.
func NewUserUseCase(
	userRepo persistence.UserRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	defaultCoins int64,
) *UserUseCase {
	return &UserUseCase{
		userRepo:     userRepo,
		timeProvider: timeProvider,
		logger:       logger,
		defaultCoins: defaultCoins,
	}
}

// UserExists checks if a user with the given ID exists
func (u *UserUseCase) UserExists(ctx context.Context, userID uuid.UUID) (bool, error) {
	exists, err := u.userRepo.Exists(ctx, userID)
	if err != nil && !errors.Is(err, errs.ErrUserNotFound) {
		return false, err
	}
	return exists, nil
}
