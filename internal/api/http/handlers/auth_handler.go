package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/tritonops/admin-gateway/internal/api/dto"
	"github.com/tritonops/admin-gateway/internal/auth"
	apperrors "github.com/tritonops/admin-gateway/pkg/util"
)

// AuthHandler exposes the login/logout/whoami endpoints.
type AuthHandler struct {
	auth *auth.Service
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /api/auth.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Username == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "username and password required")
	}

	result, err := h.auth.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		// every failure class surfaces the same way; detail stays in logs
		return apperrors.NewUnauthorized("invalid credentials")
	}

	return c.JSON(dto.LoginResponse{
		Token: result.Token,
		User: dto.UserInfo{
			ID:    result.Principal.ID.String(),
			Name:  result.Principal.Name,
			Email: result.Principal.Email,
			Roles: result.Principal.Roles,
		},
	})
}

// Logout handles DELETE /api/auth. Tokens are stateless, so this only
// acknowledges; the client discards its copy.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	_ = h.auth.Logout(c.UserContext(), "")
	return c.SendStatus(http.StatusOK)
}

// Me handles GET /api/auth behind the request gate.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}
	principal = h.auth.Whoami(c.UserContext(), principal)
	return c.JSON(dto.UserInfo{
		ID:    principal.ID.String(),
		Name:  principal.Name,
		Email: principal.Email,
		Roles: principal.Roles,
	})
}
