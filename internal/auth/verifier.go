package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tritonops/admin-gateway/internal/directory"
	"github.com/tritonops/admin-gateway/internal/domain"
	"github.com/tritonops/admin-gateway/internal/events"
)

// ErrInvalidCredentials is the only authentication error that crosses the
// trust boundary. Every directory failure class collapses into it so a
// caller cannot probe for valid usernames or directory topology.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Verifier is the single entry point for credential verification.
type Verifier struct {
	dev        *DevRegistry
	binder     *BindPool
	cache      directory.Cache
	dispatcher events.Dispatcher
	logger     *zap.Logger
	timeout    time.Duration
}

// NewVerifier builds the verifier. dev may be nil when development logins
// are disabled.
func NewVerifier(dev *DevRegistry, binder *BindPool, cache directory.Cache, dispatcher events.Dispatcher, logger *zap.Logger, timeout time.Duration) *Verifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Verifier{
		dev:        dev,
		binder:     binder,
		cache:      cache,
		dispatcher: dispatcher,
		logger:     logger,
		timeout:    timeout,
	}
}

// Authenticate verifies the credential pair and returns the canonical
// principal. The directory bind runs on the bind pool with a deadline.
func (v *Verifier) Authenticate(ctx context.Context, username, password string) (*domain.Principal, error) {
	if principal, ok := v.dev.Resolve(username, password); ok {
		v.logger.Info("development account login", zap.String("login", username))
		v.publish(ctx, events.NewEvent(events.EventLoginSucceeded, principal.ID.String(), "dev"))
		return principal, nil
	}

	bindCtx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	record, err := v.binder.Do(bindCtx, username, password)
	if err != nil {
		kind := directory.Classify(err)
		v.logger.Warn("directory authentication failed",
			zap.String("login", username),
			zap.String("kind", kind.String()),
			zap.Error(err),
		)
		v.publish(ctx, events.NewEvent(events.EventLoginFailed, username, kind.String()))
		return nil, ErrInvalidCredentials
	}

	identity, err := uuid.Parse(record.Identity)
	if err != nil {
		v.logger.Warn("directory entry has malformed identity",
			zap.String("login", username),
			zap.String("identity", record.Identity),
		)
		v.publish(ctx, events.NewEvent(events.EventLoginFailed, username, "malformed_identity"))
		return nil, ErrInvalidCredentials
	}

	principal := &domain.Principal{
		ID:    identity,
		Name:  record.Name,
		Email: record.Email,
		Roles: record.Roles,
	}

	if v.cache != nil {
		v.cache.Put(ctx, principal)
	}

	v.logger.Info("directory login", zap.String("login", username), zap.String("identity", principal.ID.String()))
	v.publish(ctx, events.NewEvent(events.EventLoginSucceeded, principal.ID.String(), "directory"))
	return principal, nil
}

// Lookup returns the cached canonical principal for an identity. A miss
// means no directory login refreshed the entry within its TTL.
func (v *Verifier) Lookup(ctx context.Context, identity string) (*domain.Principal, bool) {
	if v.cache == nil {
		return nil, false
	}
	return v.cache.Get(ctx, identity)
}

func (v *Verifier) publish(ctx context.Context, event events.Event) {
	if v.dispatcher == nil {
		return
	}
	_ = v.dispatcher.Publish(ctx, event)
}
