package model

import "time"

// Status is the verification verdict, ordered by decreasing
// evidentiary strength. StatusUnableToVerify is a distinct failure
// state and must never be conflated with StatusUnreliable.
type Status string

const (
	StatusVerified       Status = "verified"
	StatusReliable       Status = "reliable"
	StatusUnreliable     Status = "unreliable"
	StatusUnableToVerify Status = "unable_to_verify"
)

// Valid reports whether s is one of the four known statuses
func (s Status) Valid() bool {
	switch s {
	case StatusVerified, StatusReliable, StatusUnreliable, StatusUnableToVerify:
		return true
	}
	return false
}

// Freshness judges how current the claim's underlying data is
type Freshness string

const (
	FreshnessFresh Freshness = "fresh"
	FreshnessDated Freshness = "dated"
	FreshnessStale Freshness = "stale"
)

// Source is one supporting citation attached to a result
type Source struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt,omitempty"`
}

// VerificationResult is the pipeline's response envelope and the only
// entity that is persisted.
type VerificationResult struct {
	Status               Status    `json:"status"`
	Confidence           int       `json:"confidence"` // always clamped to [0,100]
	Sources              []Source  `json:"sources"`
	Summary              string    `json:"summary"`
	Freshness            Freshness `json:"freshness"`
	FreshnessReason      string    `json:"freshnessReason"`
	DataDate             string    `json:"dataDate,omitempty"`
	RequiresManualReview bool      `json:"requiresManualReview,omitempty"`
	Cached               bool      `json:"cached,omitempty"`
}

// ClampConfidence forces a model-reported confidence into [0,100].
// Upstream models occasionally return out-of-range or fractional
// values; the server-side bound always wins.
func ClampConfidence(c int) int {
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}

// CacheEntry is one persisted verification keyed by claim hash
type CacheEntry struct {
	ClaimHash    string             `json:"claim_hash" db:"claim_hash"`
	ClaimPreview string             `json:"claim_preview" db:"claim_preview"`
	Result       VerificationResult `json:"result"`
	CachedAt     time.Time          `json:"cached_at" db:"cached_at"`
	Hits         int64              `json:"hits" db:"hits"`
}
