package entity

import (
	"time"

	"github.com/google/uuid"
)

// LedgerEntryKind names the operation that produced a ledger entry
type LedgerEntryKind string

const (
	LedgerKindAdd         LedgerEntryKind = "add"
	LedgerKindDeduct      LedgerEntryKind = "deduct"
	LedgerKindSet         LedgerEntryKind = "set"
	LedgerKindTransferOut LedgerEntryKind = "transfer_out"
	LedgerKindTransferIn  LedgerEntryKind = "transfer_in"
)

// CoinLedgerEntry is an append-only record of one committed balance change of one user.
// Replaying the entries of a user in order reproduces every balance it ever had.
type CoinLedgerEntry struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	ActorID        uuid.UUID
	CounterpartyID *uuid.UUID
	TransferID     *uuid.UUID
	Kind           LedgerEntryKind
	Delta          int64
	BalanceBefore  int64
	BalanceAfter   int64
	Reason         string
	CreatedAt      time.Time
}

// NewLedgerEntry records a change of userID's balance from before to after
func NewLedgerEntry(kind LedgerEntryKind, userID, actorID uuid.UUID, before, after int64, reason string, at time.Time) *CoinLedgerEntry {
	return &CoinLedgerEntry{
		ID:            uuid.New(),
		UserID:        userID,
		ActorID:       actorID,
		Kind:          kind,
		Delta:         after - before,
		BalanceBefore: before,
		BalanceAfter:  after,
		Reason:        reason,
		CreatedAt:     at,
	}
}

// NewTransferEntries returns the outgoing and incoming legs of one transfer
func NewTransferEntries(from, to BalanceChange, message string, at time.Time) (*CoinLedgerEntry, *CoinLedgerEntry) {
	transferID := uuid.New()
	senderID, recipientID := from.UserID, to.UserID

	out := NewLedgerEntry(LedgerKindTransferOut, from.UserID, from.UserID, from.PreviousCoins, from.CurrentCoins, message, at)
	out.CounterpartyID = &recipientID
	out.TransferID = &transferID

	in := NewLedgerEntry(LedgerKindTransferIn, to.UserID, from.UserID, to.PreviousCoins, to.CurrentCoins, message, at)
	in.CounterpartyID = &senderID
	in.TransferID = &transferID

	return out, in
}

// LedgerPage is one page of a user's ledger, newest first
type LedgerPage struct {
	Entries    []*CoinLedgerEntry
	TotalCount int64
	Limit      int
	Offset     int
}
