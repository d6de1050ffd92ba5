package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/entity"
	errs "github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/error"
	coreport "github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/port/core"
	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/port/persistence"
	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/infrastructure/adapter/model"
)

var _ persistence.UserRepository = (*UserRepository)(nil)

// UserRepository implements UserRepository interface using GORM
type UserRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewUserRepository creates a new UserRepository instance
func NewUserRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *UserRepository {
	return &UserRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func modelToUser(m *model.User) *entity.User {
	return entity.RestoreUser(m.ID, entity.Role(m.Role), m.ServerRoles, m.Coins, m.CreatedAt, m.UpdatedAt)
}

// handleDatabaseError standardizes database error handling
func (r *UserRepository) handleDatabaseError(operation string, err error, userID uuid.UUID) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrUserNotFound
	}

	fields := map[string]any{
		"user_id": userID.String(),
		"error":   err.Error(),
	}

	switch r.errorClassifier.Classify(err) {
	case DuplicateKeyError:
		r.logger.Warn("Duplicate user operation", fields)
		return errs.ErrDuplicateUser
	case LockError:
		r.logger.Warn("User row is locked by another transaction", fields)
		return fmt.Errorf("%w: %s", errs.ErrConcurrentUpdate, err.Error())
	case ConstraintError:
		r.logger.Error(fmt.Sprintf("Constraint violated when %s", operation), fields)
		return fmt.Errorf("%w: %s", errs.ErrConstraintViolation, err.Error())
	case OutOfRangeError:
		r.logger.Warn(fmt.Sprintf("Balance out of range when %s", operation), fields)
		return errs.ErrBalanceOutOfRange
	default:
		r.logger.Error(fmt.Sprintf("Database error when %s", operation), fields)
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userModel model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&userModel).Error; err != nil {
		return nil, r.handleDatabaseError("getting user", err, id)
	}
	return modelToUser(&userModel), nil
}

// Exists reports whether the user row is present
func (r *UserRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Limit(1).Count(&count).Error
	if err != nil {
		return false, r.handleDatabaseError("checking user", err, id)
	}
	return count > 0, nil
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	userModel := model.User{
		ID:          user.ID,
		Role:        string(user.Role),
		ServerRoles: user.ServerRoles,
		Coins:       user.Coins(),
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
	if userModel.ServerRoles == nil {
		userModel.ServerRoles = []string{}
	}

	if err := r.db.WithContext(ctx).Create(&userModel).Error; err != nil {
		return r.handleDatabaseError("creating user", err, user.ID)
	}

	r.logger.Debug("User row inserted", map[string]any{
		"user_id": user.ID.String(),
		"coins":   user.Coins(),
	})
	return nil
}

// LockForUpdate takes FOR UPDATE locks one row at a time in ascending id order
func (r *UserRepository) LockForUpdate(ctx context.Context, ids ...uuid.UUID) (map[uuid.UUID]*entity.User, error) {
	ordered := slices.Clone(ids)
	slices.SortFunc(ordered, func(a, b uuid.UUID) int { return bytes.Compare(a[:], b[:]) })
	ordered = slices.Compact(ordered)

	locked := make(map[uuid.UUID]*entity.User, len(ordered))
	for _, id := range ordered {
		var userModel model.User
		err := r.db.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			Take(&userModel).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, r.handleDatabaseError("locking user", err, id)
		}
		locked[id] = modelToUser(&userModel)
	}
	return locked, nil
}

// IncrementCoins adds amount in a single UPDATE ... RETURNING statement.
// A sum that overflows bigint is reported as ErrBalanceOutOfRange.
func (r *UserRepository) IncrementCoins(ctx context.Context, id uuid.UUID, amount int64) (int64, error) {
	var userModel model.User
	result := r.db.WithContext(ctx).Model(&userModel).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "coins"}}}).
		Where("id = ?", id).
		Updates(map[string]any{
			"coins":      gorm.Expr("coins + ?", amount),
			"updated_at": r.timeProvider.Now(),
		})
	if result.Error != nil {
		return 0, r.handleDatabaseError("incrementing coins", result.Error, id)
	}
	if result.RowsAffected == 0 {
		return 0, errs.ErrUserNotFound
	}
	return userModel.Coins, nil
}

// DecrementCoinsIfSufficient subtracts amount only where coins >= amount
func (r *UserRepository) DecrementCoinsIfSufficient(ctx context.Context, id uuid.UUID, amount int64) (int64, bool, error) {
	var userModel model.User
	result := r.db.WithContext(ctx).Model(&userModel).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "coins"}}}).
		Where("id = ? AND coins >= ?", id, amount).
		Updates(map[string]any{
			"coins":      gorm.Expr("coins - ?", amount),
			"updated_at": r.timeProvider.Now(),
		})
	if result.Error != nil {
		return 0, false, r.handleDatabaseError("decrementing coins", result.Error, id)
	}
	if result.RowsAffected == 0 {
		return 0, false, nil
	}
	return userModel.Coins, true, nil
}

// SetCoins overwrites the balance
func (r *UserRepository) SetCoins(ctx context.Context, id uuid.UUID, amount int64) error {
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"coins":      amount,
			"updated_at": r.timeProvider.Now(),
		})
	if result.Error != nil {
		return r.handleDatabaseError("setting coins", result.Error, id)
	}
	if result.RowsAffected == 0 {
		return errs.ErrUserNotFound
	}
	return nil
}
