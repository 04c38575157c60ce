package cache

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/veracitylabs/claimcheck/internal/model"
)

// timeNow is injectable for tests
var timeNow = time.Now

// MemoryStore is an in-process Store for development, tests, and
// cache-less deployments. Expiry is delegated to go-cache; the TTL
// window check is still applied at read time so behavior matches the
// relational store exactly.
type MemoryStore struct {
	cache *gocache.Cache
	ttl   time.Duration
	mu    sync.Mutex
}

// NewMemoryStore creates an in-memory store with the given validity window
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		cache: gocache.New(ttl, ttl/2),
		ttl:   ttl,
	}
}

// Lookup returns the cached entry if within the window, bumping hits
func (s *MemoryStore) Lookup(_ context.Context, hash string) (*model.CacheEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	val, found := s.cache.Get(hash)
	if !found {
		return nil, nil
	}

	entry := val.(*model.CacheEntry)
	if timeNow().Sub(entry.CachedAt) > s.ttl {
		return nil, nil
	}

	entry.Hits++
	copied := *entry
	return &copied, nil
}

// Save upserts the entry, resetting cached_at and the hit counter
func (s *MemoryStore) Save(_ context.Context, hash, preview string, result model.VerificationResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Set(hash, &model.CacheEntry{
		ClaimHash:    hash,
		ClaimPreview: preview,
		Result:       result,
		CachedAt:     timeNow(),
		Hits:         0,
	}, s.ttl)
	return nil
}
