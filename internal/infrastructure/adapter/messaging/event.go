package messaging

import (
	"encoding/json"
	"time"

	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/entity"
)

// LedgerEvent is the wire form of one committed ledger entry
type LedgerEvent struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	ActorID        string    `json:"actorId"`
	CounterpartyID string    `json:"counterpartyId,omitempty"`
	TransferID     string    `json:"transferId,omitempty"`
	Kind           string    `json:"kind"`
	Delta          int64     `json:"delta"`
	BalanceBefore  int64     `json:"balanceBefore"`
	BalanceAfter   int64     `json:"balanceAfter"`
	Reason         string    `json:"reason,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// NewLedgerEvent converts a ledger entry to its wire form
func NewLedgerEvent(entry *entity.CoinLedgerEntry) LedgerEvent {
	event := LedgerEvent{
		ID:            entry.ID.String(),
		UserID:        entry.UserID.String(),
		ActorID:       entry.ActorID.String(),
		Kind:          string(entry.Kind),
		Delta:         entry.Delta,
		BalanceBefore: entry.BalanceBefore,
		BalanceAfter:  entry.BalanceAfter,
		Reason:        entry.Reason,
		CreatedAt:     entry.CreatedAt,
	}
	if entry.CounterpartyID != nil {
		event.CounterpartyID = entry.CounterpartyID.String()
	}
	if entry.TransferID != nil {
		event.TransferID = entry.TransferID.String()
	}
	return event
}

// Subject returns the subject an entry is published on, e.g. "coins.ledger.transfer_in"
func Subject(prefix string, entry *entity.CoinLedgerEntry) string {
	return prefix + "." + string(entry.Kind)
}

func encodeEntry(entry *entity.CoinLedgerEntry) ([]byte, error) {
	return json.Marshal(NewLedgerEvent(entry))
}
