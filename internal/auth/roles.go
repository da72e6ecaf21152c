package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/tritonops/admin-gateway/internal/domain"
)

// RequireRole ensures the principal carries at least one of the allowed
// roles. The gate itself is presence-only; these guards are opt-in per route.
func RequireRole(allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		}
		for _, role := range allowed {
			if principal.HasRole(role) {
				return c.Next()
			}
		}
		return fiber.NewError(http.StatusForbidden, "insufficient role")
	}
}

// RequireAdmin ensures the principal carries the admin role.
func RequireAdmin() fiber.Handler {
	return RequireRole(domain.RoleAdmin)
}
