package coin

import (
	"context"

	"github.com/google/uuid"

	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/entity"
)

// GetBalance returns the balance of targetID. Reading another user's balance needs Admin.
func (s *Service) GetBalance(ctx context.Context, principal entity.Principal, targetID string) (*entity.BalanceResponse, error) {
	target, err := resolveTarget(principal, targetID)
	if err != nil {
		return nil, s.fail("get_balance", principal, uuid.Nil, 0, err)
	}
	if err := Authorize(principal, target, entity.CapabilityAdmin); err != nil {
		return nil, s.fail("get_balance", principal, target, 0, err)
	}

	user, err := s.uow.GetUserRepository(ctx).GetByID(ctx, target)
	if err != nil {
		return nil, s.fail("get_balance", principal, target, 0, err)
	}

	s.logger.Debug("User balance retrieved", map[string]any{
		"user_id": target.String(),
		"coins":   user.Coins(),
	})

	response := entity.UserToBalanceResponse(user)
	return &response, nil
}
