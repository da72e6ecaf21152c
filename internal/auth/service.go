package auth

import (
	"context"
	"time"

	"github.com/tritonops/admin-gateway/internal/domain"
)

// Service coordinates the login flow: verify credentials, mint a token.
type Service struct {
	verifier *Verifier
	tokens   *TokenManager
}

// NewService builds the service.
func NewService(verifier *Verifier, tokens *TokenManager) *Service {
	return &Service{verifier: verifier, tokens: tokens}
}

// LoginResult carries the issued token and the authenticated principal.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Principal *domain.Principal
}

// Login authenticates the credential pair and issues a session token.
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	principal, err := s.verifier.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.tokens.Issue(principal)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, ExpiresAt: expiresAt, Principal: principal}, nil
}

// Whoami returns the freshest view of the principal: the cached directory
// record when one is present, otherwise the claims carried by the token.
func (s *Service) Whoami(ctx context.Context, fromToken *domain.Principal) *domain.Principal {
	if fromToken == nil {
		return nil
	}
	if cached, ok := s.verifier.Lookup(ctx, fromToken.ID.String()); ok {
		return cached
	}
	return fromToken
}

// Logout is a no-op: tokens are stateless and cannot be invalidated before
// expiry. The client discards its copy.
func (s *Service) Logout(_ context.Context, _ string) error {
	return nil
}
