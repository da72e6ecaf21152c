package domain

import "github.com/google/uuid"

// Principal is the canonical representation of an authenticated operator.
// It is constructed once per successful credential verification or token
// decode and never mutated afterwards.
type Principal struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Roles []string  `json:"roles"`
}

// RoleAdmin is the privileged operator role.
const RoleAdmin = "admin"

// HasRole reports whether the principal carries the given role.
func (p *Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the principal carries the admin role.
func (p *Principal) IsAdmin() bool {
	return p.HasRole(RoleAdmin)
}
