package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/entity"
	errs "github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/error"
	coreport "github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/port/core"
	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/port/persistence"
	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/infrastructure/adapter/model"
)

var _ persistence.CoinLedgerRepository = (*LedgerRepository)(nil)

// LedgerRepository implements CoinLedgerRepository using GORM
type LedgerRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewLedgerRepository creates a new LedgerRepository instance
func NewLedgerRepository(db *gorm.DB, logger coreport.Logger) *LedgerRepository {
	return &LedgerRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func entryToModel(e *entity.CoinLedgerEntry) model.CoinLedgerEntry {
	return model.CoinLedgerEntry{
		ID:             e.ID,
		UserID:         e.UserID,
		ActorID:        e.ActorID,
		CounterpartyID: e.CounterpartyID,
		TransferID:     e.TransferID,
		Kind:           string(e.Kind),
		Delta:          e.Delta,
		BalanceBefore:  e.BalanceBefore,
		BalanceAfter:   e.BalanceAfter,
		Reason:         e.Reason,
		CreatedAt:      e.CreatedAt,
	}
}

func modelToEntry(m *model.CoinLedgerEntry) *entity.CoinLedgerEntry {
	return &entity.CoinLedgerEntry{
		ID:             m.ID,
		UserID:         m.UserID,
		ActorID:        m.ActorID,
		CounterpartyID: m.CounterpartyID,
		TransferID:     m.TransferID,
		Kind:           entity.LedgerEntryKind(m.Kind),
		Delta:          m.Delta,
		BalanceBefore:  m.BalanceBefore,
		BalanceAfter:   m.BalanceAfter,
		Reason:         m.Reason,
		CreatedAt:      m.CreatedAt,
	}
}

// Append inserts the entries in one statement
func (r *LedgerRepository) Append(ctx context.Context, entries ...*entity.CoinLedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}

	rows := make([]model.CoinLedgerEntry, len(entries))
	for i, e := range entries {
		rows[i] = entryToModel(e)
	}

	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		r.logger.Error("Failed to append ledger entries", map[string]any{
			"user_id": entries[0].UserID.String(),
			"kind":    string(entries[0].Kind),
			"count":   len(entries),
			"error":   err.Error(),
		})
		if r.errorClassifier.IsConstraintError(err) {
			return fmt.Errorf("%w: %s", errs.ErrConstraintViolation, err.Error())
		}
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}
	return nil
}

// ListByUser returns one page of entries, newest first, with the total count
func (r *LedgerRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.CoinLedgerEntry, int64, error) {
	byUser := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&model.CoinLedgerEntry{}).Where("user_id = ?", userID)
	}

	var total int64
	if err := byUser().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}

	var rows []model.CoinLedgerEntry
	err := byUser().
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		r.logger.Error("Failed to list ledger entries", map[string]any{
			"user_id": userID.String(),
			"error":   err.Error(),
		})
		return nil, 0, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}

	entries := make([]*entity.CoinLedgerEntry, len(rows))
	for i := range rows {
		entries[i] = modelToEntry(&rows[i])
	}
	return entries, total, nil
}
