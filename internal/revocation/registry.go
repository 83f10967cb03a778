// Package revocation tracks bearer tokens that must be rejected before their
// natural expiry. Membership is keyed on the exact token string: a revoked
// token is refused regardless of signature validity or unexpired claims.
package revocation

import (
	"context"
	"sync"
	"time"
)

// Registry is consulted by the auth middleware on every protected request.
// Implementations must be safe for concurrent use without caller locking.
// Revoke is idempotent; revoking an already-revoked token is not an error.
type Registry interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// MemoryRegistry keeps revocations in process memory. Entries are lost on
// restart and not shared between instances; deployments running multiple
// replicas should use the Redis-backed registry instead.
type MemoryRegistry struct {
	mu      sync.RWMutex
	revoked map[string]time.Time // token -> entry expiry
	now     func() time.Time
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (r *MemoryRegistry) Revoke(_ context.Context, token string, ttl time.Duration) error {
	if token == "" {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.revoked[token] = r.now().Add(ttl)
	r.pruneLocked()
	return nil
}

func (r *MemoryRegistry) IsRevoked(_ context.Context, token string) (bool, error) {
	r.mu.RLock()
	expiry, ok := r.revoked[token]
	r.mu.RUnlock()

	if !ok {
		return false, nil
	}

	// An entry past its TTL no longer matters: the token's own exp claim has
	// already elapsed by then, so verification rejects it either way.
	if r.now().After(expiry) {
		r.mu.Lock()
		delete(r.revoked, token)
		r.mu.Unlock()
		return false, nil
	}

	return true, nil
}

// pruneLocked drops expired entries; caller holds the write lock
func (r *MemoryRegistry) pruneLocked() {
	now := r.now()
	for token, expiry := range r.revoked {
		if now.After(expiry) {
			delete(r.revoked, token)
		}
	}
}

// Len reports the number of live entries, for diagnostics
func (r *MemoryRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.revoked)
}
