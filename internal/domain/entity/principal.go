package entity

import (
	"slices"

	"github.com/google/uuid"
)

// Principal is the authenticated caller of an operation
type Principal struct {
	UserID      uuid.UUID
	ServerRoles []string
}

// HasCapability reports whether the caller carries the capability tag
func (p Principal) HasCapability(capability string) bool {
	return slices.Contains(p.ServerRoles, capability)
}

// IsSelf reports whether target is the caller's own account
func (p Principal) IsSelf(target uuid.UUID) bool {
	return p.UserID == target
}

// IsAdmin is shorthand for HasCapability(CapabilityAdmin)
func (p Principal) IsAdmin() bool {
	return p.HasCapability(CapabilityAdmin)
}

// IsAuthenticated reports whether the principal identifies an account
func (p Principal) IsAuthenticated() bool {
	return p.UserID != uuid.Nil
}
