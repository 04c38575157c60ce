package cache

import (
	"context"
	"time"

	"github.com/veracitylabs/claimcheck/internal/model"
)

// DefaultTTL is the validity window for cached verifications. Entries
// older than this are ignored at read time, never deleted.
const DefaultTTL = 7 * 24 * time.Hour

// PreviewLen caps the stored claim text preview
const PreviewLen = 140

// Store is the verification cache: read-through by claim hash with a
// TTL window and a hit counter. Implementations must tolerate
// concurrent writers on the same hash (last write wins).
type Store interface {
	// Lookup returns the entry for hash if it is within the validity
	// window, incrementing its hit counter. A miss is (nil, nil).
	Lookup(ctx context.Context, hash string) (*model.CacheEntry, error)

	// Save upserts the result under hash, resetting cached_at to now
	// and the hit counter to zero.
	Save(ctx context.Context, hash, preview string, result model.VerificationResult) error
}

// Preview truncates claim text for the stored debugging preview
func Preview(text string) string {
	if len(text) <= PreviewLen {
		return text
	}
	return text[:PreviewLen]
}
