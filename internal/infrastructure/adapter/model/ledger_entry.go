package model

import (
	"time"

	"github.com/google/uuid"
)

// CoinLedgerEntry represents the database model for ledger entries
type CoinLedgerEntry struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID  `gorm:"type:uuid;not null;index"`
	ActorID        uuid.UUID  `gorm:"type:uuid;not null"`
	CounterpartyID *uuid.UUID `gorm:"type:uuid"`
	TransferID     *uuid.UUID `gorm:"type:uuid"`
	Kind           string     `gorm:"type:varchar(20);not null"`
	Delta          int64      `gorm:"not null"`
	BalanceBefore  int64      `gorm:"not null"`
	BalanceAfter   int64      `gorm:"not null"`
	Reason         string     `gorm:"type:text;not null;default:''"`
	CreatedAt      time.Time  `gorm:"not null"`
}

// TableName specifies the table name for CoinLedgerEntry
func (CoinLedgerEntry) TableName() string {
	return "coin_ledger_entries"
}
