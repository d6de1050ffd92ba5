package coin

import (
	"context"

	"github.com/google/uuid"

	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/entity"
	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/port/usecase"
)

// AddCoins credits a user with an atomic increment. Admin only.
func (s *Service) AddCoins(ctx context.Context, principal entity.Principal, req usecase.AddCoinsRequest) (*entity.AddCoinsResult, error) {
	const operation = "add_coins"

	if err := RequireCapability(principal, entity.CapabilityAdmin); err != nil {
		return nil, s.fail(operation, principal, uuid.Nil, 0, err)
	}
	target, err := entity.ParseUserID(req.TargetID)
	if err != nil {
		return nil, s.fail(operation, principal, uuid.Nil, 0, err)
	}
	amount, err := entity.ParseCoinAmount(req.Amount)
	if err != nil {
		return nil, s.fail(operation, principal, target, 0, err)
	}
	reason, err := normalizeReason(req.Reason)
	if err != nil {
		return nil, s.fail(operation, principal, target, amount, err)
	}

	var (
		result *entity.AddCoinsResult
		entry  *entity.CoinLedgerEntry
	)
	err = s.withinTransaction(ctx, operation, func(txCtx context.Context) error {
		current, err := s.uow.GetUserRepository(txCtx).IncrementCoins(txCtx, target, amount)
		if err != nil {
			return err
		}

		change := entity.BalanceChange{UserID: target, PreviousCoins: current - amount, CurrentCoins: current}
		entry = entity.NewLedgerEntry(entity.LedgerKindAdd, target, principal.UserID,
			change.PreviousCoins, change.CurrentCoins, reason, s.timeProvider.Now())
		if err := s.uow.GetLedgerRepository(txCtx).Append(txCtx, entry); err != nil {
			return err
		}

		result = &entity.AddCoinsResult{BalanceChange: change, Added: amount}
		return nil
	})
	if err != nil {
		return nil, s.fail(operation, principal, target, amount, err)
	}

	s.logger.Info("Coins added", map[string]any{
		"actor_id":       principal.UserID.String(),
		"user_id":        target.String(),
		"amount":         amount,
		"previous_coins": result.PreviousCoins,
		"current_coins":  result.CurrentCoins,
		"reason":         reason,
	})
	s.publish(ctx, []*entity.CoinLedgerEntry{entry})

	return result, nil
}
