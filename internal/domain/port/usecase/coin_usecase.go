package usecase

import (
	"context"

	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/entity"
)

// Amounts and ids arrive in their textual form and are validated by the use case,
// so every transport gets the same InvalidArgument semantics.

// AddCoinsRequest credits a user. Admin only.
type AddCoinsRequest struct {
	TargetID string
	Amount   string
	Reason   string
}

// DeductCoinsRequest debits a user. An empty TargetID means the caller.
type DeductCoinsRequest struct {
	TargetID string
	Amount   string
	Reason   string
}

// SetCoinsRequest overwrites a balance. Admin only.
type SetCoinsRequest struct {
	TargetID string
	Amount   string
	Reason   string
}

// TransferRequest moves coins from the caller to RecipientID
type TransferRequest struct {
	RecipientID string
	Amount      string
	Message     string
}

// HistoryRequest selects a page of a user's ledger. Zero Limit means the default page size.
type HistoryRequest struct {
	TargetID string
	Limit    int
	Offset   int
}

// CoinUseCase is the coin ledger surface consumed by transports
type CoinUseCase interface {
	// GetBalance returns the balance of targetID. Self or Admin.
	GetBalance(ctx context.Context, principal entity.Principal, targetID string) (*entity.BalanceResponse, error)

	AddCoins(ctx context.Context, principal entity.Principal, req AddCoinsRequest) (*entity.AddCoinsResult, error)

	DeductCoins(ctx context.Context, principal entity.Principal, req DeductCoinsRequest) (*entity.DeductCoinsResult, error)

	SetCoins(ctx context.Context, principal entity.Principal, req SetCoinsRequest) (*entity.SetCoinsResult, error)

	// Transfer moves coins between two users as one all-or-nothing change
	Transfer(ctx context.Context, principal entity.Principal, req TransferRequest) (*entity.TransferResult, error)

	// ChargeFeature debits the caller by the configured price of a paid feature
	ChargeFeature(ctx context.Context, principal entity.Principal, feature string) (*entity.DeductCoinsResult, error)

	History(ctx context.Context, principal entity.Principal, req HistoryRequest) (*entity.LedgerPage, error)
}
