package coin

import (
	"context"

	"github.com/google/uuid"

	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/entity"
	errs "github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/error"
	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/port/usecase"
)

// History returns a page of a user's ledger, newest first. Self or Admin.
func (s *Service) History(ctx context.Context, principal entity.Principal, req usecase.HistoryRequest) (*entity.LedgerPage, error) {
	const operation = "history"

	target, err := resolveTarget(principal, req.TargetID)
	if err != nil {
		return nil, s.fail(operation, principal, uuid.Nil, 0, err)
	}
	if err := Authorize(principal, target, entity.CapabilityAdmin); err != nil {
		return nil, s.fail(operation, principal, target, 0, err)
	}
	limit, offset, err := s.pageBounds(req.Limit, req.Offset)
	if err != nil {
		return nil, s.fail(operation, principal, target, 0, err)
	}

	exists, err := s.uow.GetUserRepository(ctx).Exists(ctx, target)
	if err != nil {
		return nil, s.fail(operation, principal, target, 0, err)
	}
	if !exists {
		return nil, s.fail(operation, principal, target, 0, errs.ErrUserNotFound)
	}

	entries, total, err := s.uow.GetLedgerRepository(ctx).ListByUser(ctx, target, limit, offset)
	if err != nil {
		return nil, s.fail(operation, principal, target, 0, err)
	}

	return &entity.LedgerPage{
		Entries:    entries,
		TotalCount: total,
		Limit:      limit,
		Offset:     offset,
	}, nil
}
