package entity

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	errs "github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/error"
)

// Coins are whole units. Amounts arrive as text so that "1.5", "1e3" or "abc" are rejected
// instead of being silently coerced.

// ParseCoinAmount parses an amount for add, deduct and transfer. It must be a positive integer.
func ParseCoinAmount(raw string) (int64, error) {
	amount, err := parseWholeCoins(raw)
	if err != nil {
		return 0, err
	}
	if amount <= 0 {
		return 0, fmt.Errorf("%w: must be a positive integer, got %d", errs.ErrInvalidAmount, amount)
	}
	return amount, nil
}

// ParseCoinBalance parses the target of an absolute overwrite. Zero is allowed.
func ParseCoinBalance(raw string) (int64, error) {
	amount, err := parseWholeCoins(raw)
	if err != nil {
		return 0, err
	}
	if amount < 0 {
		return 0, fmt.Errorf("%w: must be a non-negative integer, got %d", errs.ErrInvalidAmount, amount)
	}
	return amount, nil
}

func parseWholeCoins(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%w: amount is required", errs.ErrInvalidAmount)
	}
	if strings.ContainsAny(raw, ".eE") {
		return 0, fmt.Errorf("%w: %q is not a whole number of coins", errs.ErrInvalidAmount, raw)
	}
	if raw[0] == '+' || raw[0] == '-' {
		return 0, fmt.Errorf("%w: %q must be written without a sign", errs.ErrInvalidAmount, raw)
	}

	amount, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("%w: %q is out of range", errs.ErrInvalidAmount, raw)
		}
		return 0, fmt.Errorf("%w: %q is not an integer", errs.ErrInvalidAmount, raw)
	}
	return amount, nil
}
