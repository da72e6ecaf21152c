package auth

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tritonops/admin-gateway/internal/domain"
	"github.com/tritonops/admin-gateway/internal/events"
)

const principalKey = "auth_principal"

// Rejection reasons returned to the client. The bearer token itself is
// never echoed or logged.
const (
	reasonMissingHeader  = "Missing authorization header"
	reasonInvalidFormat  = "Invalid authorization header format"
	reasonInvalidSubject = "Invalid token subject"
)

const bearerPrefix = "Bearer "

// Middleware is the request gate: it validates the bearer token on every
// protected request and attaches the resulting principal, or short-circuits
// with 401 before any downstream handler runs.
type Middleware struct {
	tokens     *TokenManager
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewMiddleware constructs the gate.
func NewMiddleware(tokens *TokenManager, dispatcher events.Dispatcher, logger *zap.Logger) *Middleware {
	return &Middleware{tokens: tokens, dispatcher: dispatcher, logger: logger}
}

// Handle enforces authentication for protected routes. Pre-flight OPTIONS
// requests pass through with no principal so CORS handling can respond.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodOptions {
		return c.Next()
	}

	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return m.reject(c, reasonMissingHeader)
	}
	if !strings.HasPrefix(header, bearerPrefix) {
		return m.reject(c, reasonInvalidFormat)
	}

	claims, err := m.tokens.Verify(strings.TrimPrefix(header, bearerPrefix))
	if err != nil {
		return m.reject(c, "Invalid token: "+err.Error())
	}

	identity, err := uuid.Parse(claims.Subject)
	if err != nil {
		return m.reject(c, reasonInvalidSubject)
	}

	c.Locals(principalKey, &domain.Principal{
		ID:    identity,
		Name:  claims.Name,
		Email: claims.Email,
		Roles: claims.Roles,
	})
	return c.Next()
}

func (m *Middleware) reject(c *fiber.Ctx, reason string) error {
	m.logger.Info("request rejected",
		zap.String("reason", reason),
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
	)
	if m.dispatcher != nil {
		_ = m.dispatcher.Publish(c.UserContext(), events.NewEvent(events.EventRequestRejected, "", reason))
	}
	return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": reason})
}

// PrincipalFromContext retrieves the authenticated principal.
func PrincipalFromContext(c *fiber.Ctx) (*domain.Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*domain.Principal)
	return principal, ok
}
