package entity

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	errs "github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/error"
	coreport "github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/port/core"
)

// DefaultCoins is the balance of a freshly created account
const DefaultCoins int64 = 50

// User is the coin-relevant projection of a marketplace account
type User struct {
	ID          uuid.UUID
	Role        Role
	ServerRoles []string
	coins       int64 // never negative
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewUser creates a user holding the given number of coins. Balance changes go through
// the repository's atomic statements; the entity only carries the loaded value.
func NewUser(id uuid.UUID, role Role, serverRoles []string, coins int64, timeProvider coreport.TimeProvider) (*User, error) {
	if id == uuid.Nil {
		return nil, errs.ErrInvalidUserID
	}
	if coins < 0 {
		return nil, fmt.Errorf("%w: initial balance cannot be negative", errs.ErrInvalidAmount)
	}

	now := timeProvider.Now()
	return &User{
		ID:          id,
		Role:        role,
		ServerRoles: slices.Clone(serverRoles),
		coins:       coins,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// RestoreUser rebuilds a user from persisted state
func RestoreUser(id uuid.UUID, role Role, serverRoles []string, coins int64, createdAt, updatedAt time.Time) *User {
	return &User{
		ID:          id,
		Role:        role,
		ServerRoles: slices.Clone(serverRoles),
		coins:       coins,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// Coins returns the current balance
func (u *User) Coins() int64 {
	return u.coins
}

// HasServerRole reports whether the account carries the given capability tag
func (u *User) HasServerRole(tag string) bool {
	return slices.Contains(u.ServerRoles, tag)
}

// ParseUserID validates the textual form of an account id
func ParseUserID(raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, fmt.Errorf("%w: id is required", errs.ErrInvalidUserID)
	}
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w: %q", errs.ErrInvalidUserID, raw)
	}
	return id, nil
}
