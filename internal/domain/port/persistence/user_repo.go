package persistence

import (
	"context"

	"github.com/google/uuid"

	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/entity"
)

// UserRepository defines the store operations on account balances.
// Every balance-changing method is a single statement, so each one is atomic on its own row.
type UserRepository interface {
	// GetByID retrieves a user by ID
	//
	// Possible errors:
	// - ErrUserNotFound: If user with specified ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// Exists reports whether a user with the given ID is stored
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// Create stores a new user
	//
	// Possible errors:
	// - ErrDuplicateUser: If user with same ID already exists
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, user *entity.User) error

	// LockForUpdate takes row locks on the given users in ascending ID order and returns
	// the ones that exist. Missing IDs are absent from the map; that is not an error.
	// Must be called inside a unit of work.
	LockForUpdate(ctx context.Context, ids ...uuid.UUID) (map[uuid.UUID]*entity.User, error)

	// IncrementCoins adds amount to the balance and returns the new balance
	//
	// Possible errors:
	// - ErrUserNotFound: If user doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	IncrementCoins(ctx context.Context, id uuid.UUID, amount int64) (int64, error)

	// DecrementCoinsIfSufficient subtracts amount only when the balance covers it.
	// applied is false when no row matched: either the user is missing or the funds are short.
	DecrementCoinsIfSufficient(ctx context.Context, id uuid.UUID, amount int64) (newBalance int64, applied bool, err error)

	// SetCoins overwrites the balance
	//
	// Possible errors:
	// - ErrUserNotFound: If user doesn't exist
	// - ErrConstraintViolation: If amount is negative
	// - ErrDatabaseConnection: If database connection fails
	SetCoins(ctx context.Context, id uuid.UUID, amount int64) error
}
