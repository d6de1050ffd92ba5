package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/entity"
)

// CreateUserRequest describes an account to create. A nil Coins uses the default balance,
// an empty ID generates one.
type CreateUserRequest struct {
	ID          string
	Role        string
	ServerRoles []string
	Coins       *int64
}

// UserUseCase defines methods for account bootstrap
type UserUseCase interface {
	CreateUser(ctx context.Context, req CreateUserRequest) (*entity.User, error)

	UserExists(ctx context.Context, userID uuid.UUID) (bool, error)

	// EnsureUsers creates the accounts that do not exist yet and returns how many were created
	EnsureUsers(ctx context.Context, reqs []CreateUserRequest) (int, error)
}
