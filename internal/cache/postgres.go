package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver

	"github.com/veracitylabs/claimcheck/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS verification_cache (
	claim_hash    TEXT PRIMARY KEY,
	claim_preview TEXT NOT NULL DEFAULT '',
	result        JSONB NOT NULL,
	cached_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
	hits          BIGINT NOT NULL DEFAULT 0
)`

// PostgresStore persists verification results in a relational table
// keyed by claim hash. Staleness is enforced by the read-time window
// filter; rows are never deleted.
type PostgresStore struct {
	db  *sqlx.DB
	ttl time.Duration
}

// NewPostgresStore connects to the database and ensures the schema exists
func NewPostgresStore(ctx context.Context, databaseURL string, ttl time.Duration) (*PostgresStore, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	db, err := sqlx.ConnectContext(ctx, "postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return &PostgresStore{db: db, ttl: ttl}, nil
}

type cacheRow struct {
	ClaimHash    string          `db:"claim_hash"`
	ClaimPreview string          `db:"claim_preview"`
	Result       json.RawMessage `db:"result"`
	CachedAt     time.Time       `db:"cached_at"`
	Hits         int64           `db:"hits"`
}

// Lookup returns the row for hash if cached_at is within the window,
// incrementing the hit counter in the same statement.
func (s *PostgresStore) Lookup(ctx context.Context, hash string) (*model.CacheEntry, error) {
	const q = `
		UPDATE verification_cache
		SET hits = hits + 1
		WHERE claim_hash = $1 AND cached_at > $2
		RETURNING claim_hash, claim_preview, result, cached_at, hits`

	var row cacheRow
	err := s.db.GetContext(ctx, &row, q, hash, time.Now().Add(-s.ttl))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache lookup: %w", err)
	}

	var result model.VerificationResult
	if err := json.Unmarshal(row.Result, &result); err != nil {
		// A corrupt row is a miss, not a failure
		return nil, nil
	}

	return &model.CacheEntry{
		ClaimHash:    row.ClaimHash,
		ClaimPreview: row.ClaimPreview,
		Result:       result,
		CachedAt:     row.CachedAt,
		Hits:         row.Hits,
	}, nil
}

// Save upserts the result under hash. Concurrent upserts on the same
// hash race harmlessly: last write wins.
func (s *PostgresStore) Save(ctx context.Context, hash, preview string, result model.VerificationResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	const q = `
		INSERT INTO verification_cache (claim_hash, claim_preview, result, cached_at, hits)
		VALUES ($1, $2, $3, now(), 0)
		ON CONFLICT (claim_hash) DO UPDATE
		SET claim_preview = EXCLUDED.claim_preview,
		    result        = EXCLUDED.result,
		    cached_at     = EXCLUDED.cached_at,
		    hits          = 0`

	if _, err := s.db.ExecContext(ctx, q, hash, preview, payload); err != nil {
		return fmt.Errorf("cache save: %w", err)
	}
	return nil
}

// Close releases the database connection pool
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
