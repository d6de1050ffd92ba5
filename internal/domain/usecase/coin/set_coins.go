package coin

import (
	"context"

	"github.com/google/uuid"

	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/entity"
	errs "github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/error"
	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/port/usecase"
)

// SetCoins overwrites a balance. Admin only. The previous value is kept in the ledger.
func (s *Service) SetCoins(ctx context.Context, principal entity.Principal, req usecase.SetCoinsRequest) (*entity.SetCoinsResult, error) {
	const operation = "set_coins"

	if err := RequireCapability(principal, entity.CapabilityAdmin); err != nil {
		return nil, s.fail(operation, principal, uuid.Nil, 0, err)
	}
	target, err := entity.ParseUserID(req.TargetID)
	if err != nil {
		return nil, s.fail(operation, principal, uuid.Nil, 0, err)
	}
	amount, err := entity.ParseCoinBalance(req.Amount)
	if err != nil {
		return nil, s.fail(operation, principal, target, 0, err)
	}
	reason, err := normalizeReason(req.Reason)
	if err != nil {
		return nil, s.fail(operation, principal, target, amount, err)
	}

	var (
		result *entity.SetCoinsResult
		entry  *entity.CoinLedgerEntry
	)
	err = s.withinTransaction(ctx, operation, func(txCtx context.Context) error {
		users := s.uow.GetUserRepository(txCtx)

		locked, err := users.LockForUpdate(txCtx, target)
		if err != nil {
			return err
		}
		user, ok := locked[target]
		if !ok {
			return errs.ErrUserNotFound
		}

		if err := users.SetCoins(txCtx, target, amount); err != nil {
			return err
		}

		change := entity.BalanceChange{UserID: target, PreviousCoins: user.Coins(), CurrentCoins: amount}
		entry = entity.NewLedgerEntry(entity.LedgerKindSet, target, principal.UserID,
			change.PreviousCoins, change.CurrentCoins, reason, s.timeProvider.Now())
		if err := s.uow.GetLedgerRepository(txCtx).Append(txCtx, entry); err != nil {
			return err
		}

		result = &entity.SetCoinsResult{BalanceChange: change}
		return nil
	})
	if err != nil {
		return nil, s.fail(operation, principal, target, amount, err)
	}

	s.logger.Info("Coins set", map[string]any{
		"actor_id":       principal.UserID.String(),
		"user_id":        target.String(),
		"previous_coins": result.PreviousCoins,
		"current_coins":  result.CurrentCoins,
		"reason":         reason,
	})
	s.publish(ctx, []*entity.CoinLedgerEntry{entry})

	return result, nil
}
