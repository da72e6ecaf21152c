package directory

import (
	"context"
	"sync"
	"time"

	"github.com/tritonops/admin-gateway/internal/domain"
)

// Cache memoizes the most recently resolved principal per identity.
// Entries are replaced whole; last writer wins.
type Cache interface {
	Get(ctx context.Context, identity string) (*domain.Principal, bool)
	Put(ctx context.Context, principal *domain.Principal)
}

type memoryEntry struct {
	principal domain.Principal
	expiresAt time.Time
}

// MemoryCache is a mutex-guarded in-process cache with per-entry TTL.
type MemoryCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
}

// NewMemoryCache builds an in-process cache. Entries live for ttl.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
	}
}

// Get returns the cached principal for identity, if present and fresh.
func (c *MemoryCache) Get(_ context.Context, identity string) (*domain.Principal, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[identity]
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		delete(c.entries, identity)
		return nil, false
	}
	principal := entry.principal
	return &principal, true
}

// Put stores the principal, overwriting any prior entry for the identity.
func (c *MemoryCache) Put(_ context.Context, principal *domain.Principal) {
	if principal == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[principal.ID.String()] = memoryEntry{
		principal: *principal,
		expiresAt: time.Now().Add(c.ttl),
	}
}
