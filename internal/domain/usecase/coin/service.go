package coin

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/entity"
	errs "github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/error"
	coreport "github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/port/core"
	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/port/messaging"
	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/port/persistence"
	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/port/usecase"
)

var _ usecase.CoinUseCase = (*Service)(nil)

// Settings tune the coin operations
type Settings struct {
	// TransactionTimeout bounds every database transaction opened by a mutation
	TransactionTimeout time.Duration
	// FeatureCosts is the price list of paid features, keyed by lower-case feature name
	FeatureCosts       map[string]int64
	HistoryPageSize    int
	MaxHistoryPageSize int
}

// DefaultSettings returns the settings used when nothing is configured
func DefaultSettings() Settings {
	return Settings{
		TransactionTimeout: 5 * time.Second,
		FeatureCosts: map[string]int64{
			"company": 5,
			"office":  5,
		},
		HistoryPageSize:    20,
		MaxHistoryPageSize: 100,
	}
}

// Service implements the coin ledger operations on top of a unit of work.
// Every mutation runs in its own database transaction and appends ledger entries
// in the same transaction. Nothing is retried.
type Service struct {
	uow          persistence.UnitOfWork
	publisher    messaging.CoinEventPublisher
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	settings     Settings
}

// NewService creates a coin service. publisher may be nil.
func NewService(
	uow persistence.UnitOfWork,
	publisher messaging.CoinEventPublisher,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	settings Settings,
) *Service {
	defaults := DefaultSettings()
	if settings.TransactionTimeout <= 0 {
		settings.TransactionTimeout = defaults.TransactionTimeout
	}
	if settings.HistoryPageSize <= 0 {
		settings.HistoryPageSize = defaults.HistoryPageSize
	}
	if settings.MaxHistoryPageSize < settings.HistoryPageSize {
		settings.MaxHistoryPageSize = max(defaults.MaxHistoryPageSize, settings.HistoryPageSize)
	}
	if settings.FeatureCosts == nil {
		settings.FeatureCosts = defaults.FeatureCosts
	}

	return &Service{
		uow:          uow,
		publisher:    publisher,
		timeProvider: timeProvider,
		logger:       logger,
		settings:     settings,
	}
}

// withinTransaction runs fn in a database transaction bounded by the configured timeout.
// fn's error rolls the transaction back and is returned unchanged.
func (s *Service) withinTransaction(ctx context.Context, operation string, fn func(txCtx context.Context) error) error {
	ctx, cancel := s.timeProvider.WithTimeout(ctx, s.settings.TransactionTimeout)
	defer cancel()

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: begin %s: %v", errs.ErrDatabaseConnection, operation, err)
	}

	if err := fn(txCtx); err != nil {
		if rbErr := s.uow.Rollback(txCtx); rbErr != nil {
			s.logger.Error("Failed to roll back coin transaction", map[string]any{
				"operation": operation,
				"error":     rbErr.Error(),
			})
		}
		return err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return fmt.Errorf("%w: commit %s: %v", errs.ErrDatabaseConnection, operation, err)
	}
	return nil
}

// fail logs a refused or failed operation and wraps it with its context
func (s *Service) fail(operation string, principal entity.Principal, target uuid.UUID, amount int64, err error) error {
	opErr := errs.NewCoinOperationError(operation, principal.UserID, target, amount, err)
	fields := errs.LogFieldsOf(opErr)

	if errs.IsInternalError(err) {
		s.logger.Error("Coin operation failed", fields)
	} else {
		s.logger.Warn("Coin operation rejected", fields)
	}
	return opErr
}

// publish announces committed entries. Failures are logged only.
func (s *Service) publish(ctx context.Context, entries []*entity.CoinLedgerEntry) {
	if s.publisher == nil || len(entries) == 0 {
		return
	}
	if err := s.publisher.PublishLedgerEntries(ctx, entries); err != nil {
		s.logger.Warn("Failed to publish coin events", map[string]any{
			"entries": len(entries),
			"kind":    string(entries[0].Kind),
			"error":   err.Error(),
		})
	}
}
