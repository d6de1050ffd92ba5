package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/entity"
	errs "github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/error"
	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/port/usecase"
)

// CreateUser creates an account. The balance defaults to the configured default.
func (u *UserUseCase) CreateUser(ctx context.Context, req usecase.CreateUserRequest) (*entity.User, error) {
	id := uuid.New()
	if req.ID != "" {
		parsed, err := entity.ParseUserID(req.ID)
		if err != nil {
			return nil, err
		}
		id = parsed
	}

	role, err := entity.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}

	coins := u.defaultCoins
	if req.Coins != nil {
		coins = *req.Coins
	}

	user, err := entity.NewUser(id, role, req.ServerRoles, coins, u.timeProvider)
	if err != nil {
		return nil, err
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		if !errors.Is(err, errs.ErrDuplicateUser) {
			u.logger.Error("Failed to create user", map[string]any{
				"user_id": id.String(),
				"error":   err.Error(),
			})
		}
		return nil, err
	}

	u.logger.Info("User created", map[string]any{
		"user_id":      id.String(),
		"role":         string(role),
		"server_roles": user.ServerRoles,
		"coins":        coins,
	})

	return user, nil
}

// EnsureUsers creates every requested account that is not stored yet. Every request must
// carry an id, otherwise each start would add another account.
func (u *UserUseCase) EnsureUsers(ctx context.Context, reqs []usecase.CreateUserRequest) (int, error) {
	for i, req := range reqs {
		if _, err := entity.ParseUserID(req.ID); err != nil {
			return 0, fmt.Errorf("seed user #%d: %w", i+1, err)
		}
	}

	created := 0
	for _, req := range reqs {
		id, _ := entity.ParseUserID(req.ID)

		exists, err := u.UserExists(ctx, id)
		if err != nil {
			return created, err
		}
		if exists {
			u.logger.Debug("Seed user already exists", map[string]any{"user_id": id.String()})
			continue
		}

		if _, err := u.CreateUser(ctx, req); err != nil {
			// lost a race with another instance seeding the same account
			if errors.Is(err, errs.ErrDuplicateUser) {
				continue
			}
			return created, fmt.Errorf("seed user %q: %w", req.ID, err)
		}
		created++
	}

	u.logger.Info("Seed users created or verified", map[string]any{
		"requested": len(reqs),
		"created":   created,
	})
	return created, nil
}
