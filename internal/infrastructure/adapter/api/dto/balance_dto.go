package dto

import (
	"time"

	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/entity"
)

// BalanceResponse represents the API response for a user's balance
type BalanceResponse struct {
	UserID string `json:"userId"`
	Coins  int64  `json:"coins"`
}

// BalanceChangeResponse echoes one user's balance before and after a mutation
type BalanceChangeResponse struct {
	UserID        string `json:"userId"`
	PreviousCoins int64  `json:"previousCoins"`
	CurrentCoins  int64  `json:"currentCoins"`
}

type AddCoinsResponse struct {
	BalanceChangeResponse
	Added int64 `json:"added"`
}

type DeductCoinsResponse struct {
	BalanceChangeResponse
	Deducted int64 `json:"deducted"`
}

// TransferResponse echoes both parties of a transfer
type TransferResponse struct {
	From    BalanceChangeResponse `json:"from"`
	To      BalanceChangeResponse `json:"to"`
	Amount  int64                 `json:"amount"`
	Message string                `json:"message,omitempty"`
}

// LedgerEntryResponse is one row of a user's coin history
type LedgerEntryResponse struct {
	ID             string    `json:"id"`
	Kind           string    `json:"kind"`
	Delta          int64     `json:"delta"`
	BalanceBefore  int64     `json:"balanceBefore"`
	BalanceAfter   int64     `json:"balanceAfter"`
	ActorID        string    `json:"actorId"`
	CounterpartyID string    `json:"counterpartyId,omitempty"`
	TransferID     string    `json:"transferId,omitempty"`
	Reason         string    `json:"reason,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

func NewBalanceResponse(b *entity.BalanceResponse) BalanceResponse {
	return BalanceResponse{UserID: b.UserID.String(), Coins: b.Coins}
}

func NewBalanceChangeResponse(c entity.BalanceChange) BalanceChangeResponse {
	return BalanceChangeResponse{
		UserID:        c.UserID.String(),
		PreviousCoins: c.PreviousCoins,
		CurrentCoins:  c.CurrentCoins,
	}
}

func NewTransferResponse(r *entity.TransferResult) TransferResponse {
	return TransferResponse{
		From:    NewBalanceChangeResponse(r.From),
		To:      NewBalanceChangeResponse(r.To),
		Amount:  r.Amount,
		Message: r.Message,
	}
}

// NewLedgerEntryResponses converts a page of ledger entries, keeping their order
func NewLedgerEntryResponses(entries []*entity.CoinLedgerEntry) []LedgerEntryResponse {
	out := make([]LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		row := LedgerEntryResponse{
			ID:            e.ID.String(),
			Kind:          string(e.Kind),
			Delta:         e.Delta,
			BalanceBefore: e.BalanceBefore,
			BalanceAfter:  e.BalanceAfter,
			ActorID:       e.ActorID.String(),
			Reason:        e.Reason,
			CreatedAt:     e.CreatedAt,
		}
		if e.CounterpartyID != nil {
			row.CounterpartyID = e.CounterpartyID.String()
		}
		if e.TransferID != nil {
			row.TransferID = e.TransferID.String()
		}
		out = append(out, row)
	}
	return out
}
