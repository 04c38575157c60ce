package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// NormalizeClaim canonicalizes claim text for cache keying: lowercase,
// trimmed, with internal whitespace runs collapsed to single spaces.
// This deduplicates trivially re-typed claims, not paraphrases.
func NormalizeClaim(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// Key derives the cache key for a claim: the hex-encoded SHA-256
// digest of the normalized claim text.
func Key(text string) string {
	hash := sha256.Sum256([]byte(NormalizeClaim(text)))
	return hex.EncodeToString(hash[:])
}
