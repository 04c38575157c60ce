package cli

import (
	"context"
	"fmt"

	"github.com/veracitylabs/claimcheck/internal/cache"
	"github.com/veracitylabs/claimcheck/internal/classify"
	"github.com/veracitylabs/claimcheck/internal/logger"
	"github.com/veracitylabs/claimcheck/internal/model"
	"github.com/veracitylabs/claimcheck/internal/pipeline"
	"github.com/veracitylabs/claimcheck/internal/sources"
	"github.com/veracitylabs/claimcheck/internal/verify"
	"github.com/veracitylabs/claimcheck/internal/worker"
)

// buildPipeline wires the full verification pipeline from
// configuration. Missing model credentials are infrastructure errors
// and abort startup; missing fetcher keys just disable that fetcher.
func buildPipeline(ctx context.Context, cfg model.Config) (*pipeline.Pipeline, error) {
	log := logger.Get()

	if cfg.Classifier.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required for claim classification")
	}

	generator, err := verify.NewGeminiGenerator(ctx, cfg.Verifier)
	if err != nil {
		return nil, fmt.Errorf("GEMINI_API_KEY is required for grounded verification: %w", err)
	}

	store, err := buildStore(ctx, cfg.Cache)
	if err != nil {
		return nil, err
	}

	limiter := worker.NewLimiter(5, 5)

	return pipeline.New(
		classify.NewClassifier(cfg.Classifier, log),
		sources.NewFinancialFetcher(cfg.Financial, limiter, log),
		sources.NewNewsFetcher(cfg.News, limiter, log),
		verify.NewVerifier(generator, log),
		store,
		log,
	), nil
}

func buildStore(ctx context.Context, cfg model.CacheConfig) (cache.Store, error) {
	switch cfg.Backend {
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the postgres cache backend")
		}
		return cache.NewPostgresStore(ctx, cfg.DatabaseURL, cfg.TTL)
	case "memory", "":
		return cache.NewMemoryStore(cfg.TTL), nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %s (supported: memory, postgres)", cfg.Backend)
	}
}
