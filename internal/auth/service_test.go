package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tritonops/admin-gateway/internal/directory"
	"github.com/tritonops/admin-gateway/internal/domain"
)

func TestWhoamiPrefersCachedRecord(t *testing.T) {
	cache := directory.NewMemoryCache(time.Minute)
	verifier := newTestVerifier(t, nil, &fakeDirectory{}, cache)
	service := NewService(verifier, NewTokenManager("whoami-secret", 1))

	id := uuid.MustParse("5d41b4a2-8de7-4b35-9c43-0f3a8b1de111")
	fromToken := &domain.Principal{ID: id, Name: "Jane Doe", Roles: []string{"operators"}}

	// a later directory login refreshed the entry with a new role set
	cache.Put(context.Background(), &domain.Principal{
		ID:    id,
		Name:  "Jane Doe",
		Roles: []string{"operators", "admin"},
	})

	principal := service.Whoami(context.Background(), fromToken)
	require.NotNil(t, principal)
	assert.Equal(t, []string{"operators", "admin"}, principal.Roles)
}

func TestWhoamiFallsBackToTokenClaims(t *testing.T) {
	verifier := newTestVerifier(t, nil, &fakeDirectory{}, directory.NewMemoryCache(time.Minute))
	service := NewService(verifier, NewTokenManager("whoami-secret", 1))

	fromToken := &domain.Principal{ID: uuid.New(), Name: "Jane Doe", Roles: []string{"operators"}}

	principal := service.Whoami(context.Background(), fromToken)
	assert.Same(t, fromToken, principal)
}
