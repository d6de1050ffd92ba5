package coin

import (
	"context"

	"github.com/google/uuid"

	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/entity"
	errs "github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/error"
	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/port/usecase"
)

// DeductCoins debits a user. Without a target the caller pays; debiting someone else needs Admin.
func (s *Service) DeductCoins(ctx context.Context, principal entity.Principal, req usecase.DeductCoinsRequest) (*entity.DeductCoinsResult, error) {
	const operation = "deduct_coins"

	target, err := resolveTarget(principal, req.TargetID)
	if err != nil {
		return nil, s.fail(operation, principal, uuid.Nil, 0, err)
	}
	if err := Authorize(principal, target, entity.CapabilityAdmin); err != nil {
		return nil, s.fail(operation, principal, target, 0, err)
	}
	amount, err := entity.ParseCoinAmount(req.Amount)
	if err != nil {
		return nil, s.fail(operation, principal, target, 0, err)
	}
	reason, err := normalizeReason(req.Reason)
	if err != nil {
		return nil, s.fail(operation, principal, target, amount, err)
	}

	return s.deduct(ctx, operation, principal, target, amount, reason)
}

// deduct applies a validated, authorized debit. The sufficiency check is part of the
// decrement statement itself, so two concurrent debits can never overdraw. A refusal is
// confirmed against the locked row before it is reported.
func (s *Service) deduct(ctx context.Context, operation string, principal entity.Principal, target uuid.UUID, amount int64, reason string) (*entity.DeductCoinsResult, error) {
	var (
		result *entity.DeductCoinsResult
		entry  *entity.CoinLedgerEntry
	)
	err := s.withinTransaction(ctx, operation, func(txCtx context.Context) error {
		users := s.uow.GetUserRepository(txCtx)

		current, applied, err := users.DecrementCoinsIfSufficient(txCtx, target, amount)
		if err != nil {
			return err
		}
		if !applied {
			// The row may have been credited after the refused statement; under the lock
			// the balance is stable until commit.
			locked, err := users.LockForUpdate(txCtx, target)
			if err != nil {
				return err
			}
			user, ok := locked[target]
			if !ok {
				return errs.ErrUserNotFound
			}
			if user.Coins() < amount {
				return errs.NewInsufficientFundsError(target, user.Coins(), amount)
			}
			if current, applied, err = users.DecrementCoinsIfSufficient(txCtx, target, amount); err != nil {
				return err
			}
			if !applied {
				return errs.NewInsufficientFundsError(target, user.Coins(), amount)
			}
		}

		change := entity.BalanceChange{UserID: target, PreviousCoins: current + amount, CurrentCoins: current}
		entry = entity.NewLedgerEntry(entity.LedgerKindDeduct, target, principal.UserID,
			change.PreviousCoins, change.CurrentCoins, reason, s.timeProvider.Now())
		if err := s.uow.GetLedgerRepository(txCtx).Append(txCtx, entry); err != nil {
			return err
		}

		result = &entity.DeductCoinsResult{BalanceChange: change, Deducted: amount}
		return nil
	})
	if err != nil {
		return nil, s.fail(operation, principal, target, amount, err)
	}

	s.logger.Info("Coins deducted", map[string]any{
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
