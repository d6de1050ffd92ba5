package coin

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/entity"
	errs "github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/error"
)

// maxReasonLength caps free text stored in the ledger
const maxReasonLength = 500

// resolveTarget parses an optional target id, defaulting to the caller
func resolveTarget(principal entity.Principal, raw string) (uuid.UUID, error) {
	if strings.TrimSpace(raw) == "" {
		if err := requireAuthenticated(principal); err != nil {
			return uuid.Nil, err
		}
		return principal.UserID, nil
	}
	return entity.ParseUserID(raw)
}

// normalizeReason trims free text and rejects anything too long to store
func normalizeReason(raw string) (string, error) {
	reason := strings.TrimSpace(raw)
	if utf8.RuneCountInString(reason) > maxReasonLength {
		return "", fmt.Errorf("%w: reason exceeds %d characters", errs.ErrInvalidArgument, maxReasonLength)
	}
	return reason, nil
}

// pageBounds applies the default and maximum page size
func (s *Service) pageBounds(limit, offset int) (int, int, error) {
	if limit < 0 {
		return 0, 0, fmt.Errorf("%w: limit must not be negative", errs.ErrInvalidPagination)
	}
	if offset < 0 {
		return 0, 0, fmt.Errorf("%w: offset must not be negative", errs.ErrInvalidPagination)
	}
	if limit == 0 {
		limit = s.settings.HistoryPageSize
	}
	if limit > s.settings.MaxHistoryPageSize {
		limit = s.settings.MaxHistoryPageSize
	}
	return limit, offset, nil
}
