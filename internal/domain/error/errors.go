package error

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInvalidArgument   = 4000
	CodeInsufficientFunds = 4001
	CodeInvalidAmount     = 4002
	CodeInvalidUserID     = 4003
	CodeSelfTransfer      = 4004
	CodeUnknownFeature    = 4005
	CodeInvalidPagination = 4006
	CodeBalanceOutOfRange = 4007
	CodeUnauthorized      = 4010
	CodeForbidden         = 4030
	CodeNotFound          = 4040
	CodeUserNotFound      = 4041
	CodeAlreadyExists     = 4090

	// 5xxx - Server errors
	CodeInternalServer = 5000
)

// Taxonomy roots. Every error returned by the coin operations matches exactly one of these.
var (
	// ErrInvalidArgument is returned when the caller supplied malformed input
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnauthorized is returned when the caller is not authenticated
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when the caller lacks the capability for the operation
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound is returned when a referenced resource does not exist
	ErrNotFound = errors.New("resource not found")

	// ErrInsufficientFunds is returned when a debit would make a balance negative
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrAlreadyExists is returned when creating a resource that is already present
	ErrAlreadyExists = errors.New("already exists")

	// ErrInternal is returned for store failures and anything unexpected
	ErrInternal = errors.New("internal server error")
)

// Specific errors wrapping the roots above
var (
	ErrInvalidAmount      = fmt.Errorf("%w: invalid amount", ErrInvalidArgument)
	ErrInvalidUserID      = fmt.Errorf("%w: invalid user id", ErrInvalidArgument)
	ErrSelfTransfer       = fmt.Errorf("%w: cannot transfer to self", ErrInvalidArgument)
	ErrUnknownFeature     = fmt.Errorf("%w: unknown paid feature", ErrInvalidArgument)
	ErrInvalidPagination  = fmt.Errorf("%w: invalid pagination", ErrInvalidArgument)
	ErrInvalidRole        = fmt.Errorf("%w: invalid role", ErrInvalidArgument)
	ErrBalanceOutOfRange  = fmt.Errorf("%w: resulting balance out of range", ErrInvalidArgument)
	ErrMissingCredentials = fmt.Errorf("%w: missing bearer token", ErrUnauthorized)
	ErrInvalidToken       = fmt.Errorf("%w: invalid token", ErrUnauthorized)
	ErrAdminRequired      = fmt.Errorf("%w: admin capability required", ErrForbidden)
	ErrUserNotFound       = fmt.Errorf("%w: user not found", ErrNotFound)
	ErrDuplicateUser      = fmt.Errorf("%w: user already exists", ErrAlreadyExists)

	// ErrDatabaseConnection is returned when the store could not complete a statement
	ErrDatabaseConnection = fmt.Errorf("%w: database error", ErrInternal)

	// ErrConcurrentUpdate is returned on deadlocks and serialization failures. Not retried.
	ErrConcurrentUpdate = fmt.Errorf("%w: concurrent update conflict", ErrInternal)

	// ErrConstraintViolation is returned when a database constraint rejected a write
	ErrConstraintViolation = fmt.Errorf("%w: database constraint violation", ErrInternal)
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInsufficientFunds):
		return CodeInsufficientFunds
	case errors.Is(err, ErrInvalidAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrInvalidUserID):
		return CodeInvalidUserID
	case errors.Is(err, ErrSelfTransfer):
		return CodeSelfTransfer
	case errors.Is(err, ErrUnknownFeature):
		return CodeUnknownFeature
	case errors.Is(err, ErrInvalidPagination):
		return CodeInvalidPagination
	case errors.Is(err, ErrBalanceOutOfRange):
		return CodeBalanceOutOfRange
	case errors.Is(err, ErrInvalidArgument):
		return CodeInvalidArgument
	case errors.Is(err, ErrUnauthorized):
		return CodeUnauthorized
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	case errors.Is(err, ErrUserNotFound):
		return CodeUserNotFound
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrAlreadyExists):
		return CodeAlreadyExists
	default:
		return CodeInternalServer
	}
}

// InsufficientFundsError carries the balance that was available when a debit was refused
type InsufficientFundsError struct {
	UserID    uuid.UUID
	Available int64
	Requested int64
}

// Error implements the error interface
func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds for user %s: available %d, requested %d",
		e.UserID, e.Available, e.Requested)
}

// Is checks if the target error is an ErrInsufficientFunds
func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientFundsError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "insufficient_funds",
		"user_id":    e.UserID.String(),
		"available":  e.Available,
		"requested":  e.Requested,
		"error_code": CodeInsufficientFunds,
	}
}

// NewInsufficientFundsError creates a new detailed insufficient funds error
func NewInsufficientFundsError(userID uuid.UUID, available, requested int64) error {
	return &InsufficientFundsError{
		UserID:    userID,
		Available: available,
		Requested: requested,
	}
}

// AsInsufficientFunds extracts the detail of an insufficient funds error, if any
func AsInsufficientFunds(err error) (*InsufficientFundsError, bool) {
	var target *InsufficientFundsError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// CoinOperationError wraps a failed coin operation with the context needed in logs
type CoinOperationError struct {
	Operation string
	ActorID   uuid.UUID
	TargetID  uuid.UUID
	Amount    int64
	Err       error
}

// Error implements the error interface
func (e *CoinOperationError) Error() string {
	return fmt.Sprintf("%s failed (actor: %s, target: %s, amount: %d): %v",
		e.Operation, e.ActorID, e.TargetID, e.Amount, e.Err)
}

// Unwrap returns the underlying error
func (e *CoinOperationError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *CoinOperationError) LogFields() map[string]any {
	fields := map[string]any{
		"error_type": "coin_operation",
		"operation":  e.Operation,
		"actor_id":   e.ActorID.String(),
		"target_id":  e.TargetID.String(),
		"amount":     e.Amount,
		"error":      e.Err.Error(),
		"error_code": ErrorCode(e.Err),
	}
	if detail, ok := AsInsufficientFunds(e.Err); ok {
		fields["available"] = detail.Available
		fields["requested"] = detail.Requested
	}
	return fields
}

// NewCoinOperationError creates a detailed coin operation error
func NewCoinOperationError(operation string, actorID, targetID uuid.UUID, amount int64, err error) error {
	return &CoinOperationError{
		Operation: operation,
		ActorID:   actorID,
		TargetID:  targetID,
		Amount:    amount,
		Err:       err,
	}
}

// LogFieldsOf returns structured fields for err, using LogFields when the error provides them
func LogFieldsOf(err error) map[string]any {
	var withFields interface{ LogFields() map[string]any }
	if errors.As(err, &withFields) {
		return withFields.LogFields()
	}
	return map[string]any{
		"error":      err.Error(),
		"error_code": ErrorCode(err),
	}
}

// IsInternalError reports whether err should be surfaced as an internal failure
func IsInternalError(err error) bool {
	return ErrorCode(err) == CodeInternalServer
}
