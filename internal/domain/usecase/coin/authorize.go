package coin

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/entity"
	errs "github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/error"
)

// Authorize permits a caller acting on its own account, or a caller holding capability.
// This is the only place where coin operations decide on access.
func Authorize(principal entity.Principal, target uuid.UUID, capability string) error {
	if err := requireAuthenticated(principal); err != nil {
		return err
	}
	if principal.IsSelf(target) || principal.HasCapability(capability) {
		return nil
	}
	return fmt.Errorf("%w: %s capability required to act on another user", errs.ErrForbidden, capability)
}

// RequireCapability permits only callers holding capability, whatever the target
func RequireCapability(principal entity.Principal, capability string) error {
	if err := requireAuthenticated(principal); err != nil {
		return err
	}
	if principal.HasCapability(capability) {
		return nil
	}
	if capability == entity.CapabilityAdmin {
		return errs.ErrAdminRequired
	}
	return fmt.Errorf("%w: %s capability required", errs.ErrForbidden, capability)
}

func requireAuthenticated(principal entity.Principal) error {
	if !principal.IsAuthenticated() {
		return errs.ErrUnauthorized
	}
	return nil
}
