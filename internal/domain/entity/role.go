package entity

import (
	"fmt"

	errs "github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/error"
)

// Role is the marketplace role of an account
type Role string

const (
	RoleJobSeeker Role = "JobSeeker"
	RoleEmployer  Role = "Employer"
	RoleService   Role = "Service"
	RoleAdmin     Role = "Admin"
)

// CapabilityAdmin is the server-role tag granting override authority over any balance.
const CapabilityAdmin = "Admin"

// ParseRole validates a role name. An empty value yields JobSeeker.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case "":
		return RoleJobSeeker, nil
	case RoleJobSeeker, RoleEmployer, RoleService, RoleAdmin:
		return Role(raw), nil
	default:
		return "", fmt.Errorf("%w: %q", errs.ErrInvalidRole, raw)
	}
}
