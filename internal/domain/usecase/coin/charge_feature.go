package coin

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/entity"
	errs "github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/error"
)

// ChargeFeature makes the caller pay for a paid marketplace feature, such as creating a
// company or an office. It is a self-service deduction at the configured price.
func (s *Service) ChargeFeature(ctx context.Context, principal entity.Principal, feature string) (*entity.DeductCoinsResult, error) {
	const operation = "charge_feature"

	if err := requireAuthenticated(principal); err != nil {
		return nil, s.fail(operation, principal, uuid.Nil, 0, err)
	}

	name := strings.ToLower(strings.TrimSpace(feature))
	cost, ok := s.settings.FeatureCosts[name]
	if !ok || cost <= 0 {
		return nil, s.fail(operation, principal, principal.UserID, 0, fmt.Errorf("%w: %q", errs.ErrUnknownFeature, feature))
	}

	return s.deduct(ctx, operation, principal, principal.UserID, cost, "feature:"+name)
}
