package error

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
)

func TestTaxonomyRoots(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		root error
	}{
		{"InvalidAmount", ErrInvalidAmount, ErrInvalidArgument},
		{"InvalidUserID", ErrInvalidUserID, ErrInvalidArgument},
		{"SelfTransfer", ErrSelfTransfer, ErrInvalidArgument},
		{"UnknownFeature", ErrUnknownFeature, ErrInvalidArgument},
		{"BalanceOutOfRange", ErrBalanceOutOfRange, ErrInvalidArgument},
		{"InvalidToken", ErrInvalidToken, ErrUnauthorized},
		{"AdminRequired", ErrAdminRequired, ErrForbidden},
		{"UserNotFound", ErrUserNotFound, ErrNotFound},
		{"DuplicateUser", ErrDuplicateUser, ErrAlreadyExists},
		{"DatabaseConnection", ErrDatabaseConnection, ErrInternal},
		{"ConcurrentUpdate", ErrConcurrentUpdate, ErrInternal},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if !errors.Is(tc.err, tc.root) {
				t.Errorf("errors.Is(%v, %v) = false, want true", tc.err, tc.root)
			}
		})
	}
}

func TestErrorCode(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"InsufficientFunds", ErrInsufficientFunds, 4001},
		{"InvalidAmount", ErrInvalidAmount, 4002},
		{"InvalidUserID", ErrInvalidUserID, 4003},
		{"SelfTransfer", ErrSelfTransfer, 4004},
		{"BalanceOutOfRange", ErrBalanceOutOfRange, 4007},
		{"GenericInvalidArgument", ErrInvalidArgument, 4000},
		{"Unauthorized", ErrInvalidToken, 4010},
		{"Forbidden", ErrAdminRequired, 4030},
		{"UserNotFound", ErrUserNotFound, 4041},
		{"AlreadyExists", ErrDuplicateUser, 4090},
		{"DatabaseConnection", ErrDatabaseConnection, 5000},
		{"UnknownError", errors.New("unknown error"), 5000},
		{"WrappedError", fmt.Errorf("wrapped: %w", ErrInvalidUserID), 4003},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			code := ErrorCode(tc.err)
			if code != tc.expected {
				t.Errorf("ErrorCode(%v) = %d, want %d", tc.err, code, tc.expected)
			}
		})
	}
}

func TestInsufficientFundsError(t *testing.T) {
	userID := uuid.MustParse("00000000-0000-0000-0000-00000000000a")
	err := NewInsufficientFundsError(userID, 5, 10)

	if !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("errors.Is(err, ErrInsufficientFunds) = false, want true")
	}

	wrapped := fmt.Errorf("deduct: %w", err)
	detail, ok := AsInsufficientFunds(wrapped)
	if !ok {
		t.Fatalf("AsInsufficientFunds(wrapped) returned ok = false")
	}
	if detail.Available != 5 || detail.Requested != 10 {
		t.Errorf("detail = {%d, %d}, want {5, 10}", detail.Available, detail.Requested)
	}

	fields := detail.LogFields()
	if fields["user_id"] != userID.String() {
		t.Errorf("user_id field = %v, want %s", fields["user_id"], userID)
	}
	if ErrorCode(wrapped) != CodeInsufficientFunds {
		t.Errorf("ErrorCode(wrapped) = %d, want %d", ErrorCode(wrapped), CodeInsufficientFunds)
	}
}

func TestCoinOperationError(t *testing.T) {
	actor := uuid.New()
	target := uuid.New()
	err := NewCoinOperationError("deduct", actor, target, 10, NewInsufficientFundsError(target, 5, 10))

	if !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("errors.Is(err, ErrInsufficientFunds) = false, want true")
	}

	fields := LogFieldsOf(err)
	if fields["operation"] != "deduct" {
		t.Errorf("operation field = %v, want deduct", fields["operation"])
	}
	if fields["available"] != int64(5) {
		t.Errorf("available field = %v, want 5", fields["available"])
	}
}

func TestLogFieldsOfPlainError(t *testing.T) {
	fields := LogFieldsOf(ErrUserNotFound)
	if fields["error_code"] != CodeUserNotFound {
		t.Errorf("error_code = %v, want %d", fields["error_code"], CodeUserNotFound)
	}
	if !IsInternalError(ErrDatabaseConnection) {
		t.Errorf("IsInternalError(ErrDatabaseConnection) = false, want true")
	}
}
