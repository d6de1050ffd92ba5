package entity

import "github.com/google/uuid"

// BalanceResponse is the result of a balance read
type BalanceResponse struct {
	UserID uuid.UUID
	Coins  int64
}

// UserToBalanceResponse converts a User entity to a BalanceResponse
func UserToBalanceResponse(user *User) BalanceResponse {
	return BalanceResponse{UserID: user.ID, Coins: user.Coins()}
}

// BalanceChange echoes one user's balance on both sides of a committed mutation
type BalanceChange struct {
	UserID        uuid.UUID
	PreviousCoins int64
	CurrentCoins  int64
}

type AddCoinsResult struct {
	BalanceChange
	Added int64
}

type DeductCoinsResult struct {
	BalanceChange
	Deducted int64
}

type SetCoinsResult struct {
	BalanceChange
}

// TransferResult echoes both parties of a committed transfer
type TransferResult struct {
	From    BalanceChange
	To      BalanceChange
	Amount  int64
	Message string
}
