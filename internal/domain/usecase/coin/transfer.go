package coin

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/entity"
	errs "github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/error"
	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/port/usecase"
)

// Transfer moves coins from the caller to a recipient. Either both balances change or neither.
//
// Checks run in a fixed order, the first failure wins:
//  1. recipient id is well formed
//  2. recipient is not the caller
//  3. amount is a positive integer
//  4. sender exists
//  5. sender holds at least amount
//  6. recipient exists
//
// 1-3 need no store access and run before a transaction is opened. 4-6 run after both rows
// are locked, lower id first, so opposite transfers between the same pair cannot deadlock.
func (s *Service) Transfer(ctx context.Context, principal entity.Principal, req usecase.TransferRequest) (*entity.TransferResult, error) {
	const operation = "transfer"

	if err := requireAuthenticated(principal); err != nil {
		return nil, s.fail(operation, principal, uuid.Nil, 0, err)
	}
	sender := principal.UserID

	recipient, err := entity.ParseUserID(req.RecipientID)
	if err != nil {
		return nil, s.fail(operation, principal, uuid.Nil, 0, err)
	}
	if recipient == sender {
		return nil, s.fail(operation, principal, recipient, 0, errs.ErrSelfTransfer)
	}
	amount, err := entity.ParseCoinAmount(req.Amount)
	if err != nil {
		return nil, s.fail(operation, principal, recipient, 0, err)
	}
	message, err := normalizeReason(req.Message)
	if err != nil {
		return nil, s.fail(operation, principal, recipient, amount, err)
	}

	var (
		result  *entity.TransferResult
		entries []*entity.CoinLedgerEntry
	)
	err = s.withinTransaction(ctx, operation, func(txCtx context.Context) error {
		users := s.uow.GetUserRepository(txCtx)

		locked, err := users.LockForUpdate(txCtx, sender, recipient)
		if err != nil {
			return err
		}

		from, ok := locked[sender]
		if !ok {
			return fmt.Errorf("%w: sender %s", errs.ErrUserNotFound, sender)
		}
		if from.Coins() < amount {
			return errs.NewInsufficientFundsError(sender, from.Coins(), amount)
		}
		to, ok := locked[recipient]
		if !ok {
			return fmt.Errorf("%w: recipient %s", errs.ErrUserNotFound, recipient)
		}

		senderAfter, applied, err := users.DecrementCoinsIfSufficient(txCtx, sender, amount)
		if err != nil {
			return err
		}
		if !applied {
			return errs.NewInsufficientFundsError(sender, from.Coins(), amount)
		}
		recipientAfter, err := users.IncrementCoins(txCtx, recipient, amount)
		if err != nil {
			return err
		}

		result = &entity.TransferResult{
			From:    entity.BalanceChange{UserID: sender, PreviousCoins: from.Coins(), CurrentCoins: senderAfter},
			To:      entity.BalanceChange{UserID: recipient, PreviousCoins: to.Coins(), CurrentCoins: recipientAfter},
			Amount:  amount,
			Message: message,
		}

		out, in := entity.NewTransferEntries(result.From, result.To, message, s.timeProvider.Now())
		entries = []*entity.CoinLedgerEntry{out, in}
		return s.uow.GetLedgerRepository(txCtx).Append(txCtx, out, in)
	})
	if err != nil {
		return nil, s.fail(operation, principal, recipient, amount, err)
	}

	s.logger.Info("Coins transferred", map[string]any{
		"sender_id":       sender.String(),
		"recipient_id":    recipient.String(),
		"amount":          amount,
		"sender_coins":    result.From.CurrentCoins,
		"recipient_coins": result.To.CurrentCoins,
		"transfer_id":     entries[0].TransferID.String(),
		"has_message":     message != "",
	})
	s.publish(ctx, entries)

	return result, nil
}
