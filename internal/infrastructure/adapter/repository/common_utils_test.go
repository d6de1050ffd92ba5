package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestErrorClassifier_Classify(t *testing.T) {
	classifier := NewErrorClassifier()

	testCases := []struct {
		name string
		err  error
		want ErrorType
	}{
		{"nil", nil, ""},
		{"unique violation", &pgconn.PgError{Code: "23505"}, DuplicateKeyError},
		{"wrapped unique violation", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), DuplicateKeyError},
		{"deadlock", &pgconn.PgError{Code: "40P01"}, LockError},
		{"serialization failure", &pgconn.PgError{Code: "40001"}, LockError},
		{"lock not available", &pgconn.PgError{Code: "55P03"}, LockError},
		{"check violation", &pgconn.PgError{Code: "23514"}, ConstraintError},
		{"foreign key violation", &pgconn.PgError{Code: "23503"}, ConstraintError},
		{"bigint overflow", &pgconn.PgError{Code: "22003", Message: "bigint out of range"}, OutOfRangeError},
		{"plain text overflow", errors.New("ERROR: bigint out of range"), OutOfRangeError},
		{"plain text duplicate", errors.New("ERROR: duplicate key value violates unique constraint"), DuplicateKeyError},
		{"plain text connection refused", errors.New("dial tcp: connection refused"), ConnectionError},
		{"unknown", errors.New("something odd"), ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, classifier.Classify(tc.err))
		})
	}
}
