package pipeline

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/veracitylabs/claimcheck/internal/cache"
	"github.com/veracitylabs/claimcheck/internal/freshness"
	"github.com/veracitylabs/claimcheck/internal/logger"
	"github.com/veracitylabs/claimcheck/internal/metrics"
	"github.com/veracitylabs/claimcheck/internal/model"
	"github.com/veracitylabs/claimcheck/internal/sources"
	"github.com/veracitylabs/claimcheck/internal/verify"
)

// Classifier tags a claim for routing; it never fails
type Classifier interface {
	Classify(ctx context.Context, claim string) model.ClaimClassification
}

// FinancialSource is the quote provider adapter
type FinancialSource interface {
	Configured() bool
	Fetch(ctx context.Context, entities model.ClaimEntities) model.FinancialResult
}

// NewsSource is the news-search provider adapter
type NewsSource interface {
	Configured() bool
	Fetch(ctx context.Context, entities model.ClaimEntities, claim string) model.NewsResult
}

// Verdictor produces the authoritative verdict
type Verdictor interface {
	Verify(ctx context.Context, claim, claimContext string, evidence model.EvidenceBundle) verify.Verdict
}

// Pipeline composes the claim verification flow: cache short-circuit,
// classification, evidence fan-out, grounded verification, freshness
// judgment, and the error-safe response envelope. One Pipeline serves
// all requests; per-request state lives on the stack.
type Pipeline struct {
	classifier Classifier
	financial  FinancialSource
	news       NewsSource
	verifier   Verdictor
	store      cache.Store
	log        *logger.Logger
}

// New wires a pipeline from its collaborators
func New(classifier Classifier, financial FinancialSource, news NewsSource, verifier Verdictor, store cache.Store, log *logger.Logger) *Pipeline {
	return &Pipeline{
		classifier: classifier,
		financial:  financial,
		news:       news,
		verifier:   verifier,
		store:      store,
		log:        log,
	}
}

// ErrEmptyClaim rejects requests with no claim text. It is the only
// error Verify can return; everything downstream degrades into a
// structured result instead.
var ErrEmptyClaim = fmt.Errorf("claim text is required")

// Verify runs the end-to-end verification of one claim
func (p *Pipeline) Verify(ctx context.Context, claim, claimContext string) (model.VerificationResult, error) {
	claim = strings.TrimSpace(claim)
	if claim == "" {
		return model.VerificationResult{}, ErrEmptyClaim
	}

	hash := cache.Key(claim)
	log := p.log.With("claim_hash", hash[:12])

	// Cache short-circuit
	if entry := p.lookup(ctx, hash, log); entry != nil {
		result := entry.Result
		result.Cached = true
		metrics.VerificationsTotal.WithLabelValues(string(result.Status), "true").Inc()
		log.Infow("cache hit", "hits", entry.Hits, "status", result.Status)
		return result, nil
	}

	// Classification failure is absorbed inside the classifier
	start := time.Now()
	classification := p.classifier.Classify(ctx, claim)
	metrics.ModelCallDuration.WithLabelValues("classify").Observe(time.Since(start).Seconds())
	log.Infow("claim classified", "type", classification.Type, "timeframe", classification.Timeframe)

	evidence := p.fetchEvidence(ctx, classification, claim, log)

	start = time.Now()
	verdict := p.verifier.Verify(ctx, claim, claimContext, evidence)
	metrics.ModelCallDuration.WithLabelValues("verify").Observe(time.Since(start).Seconds())

	fresh, reason := freshness.Analyze(claim, verdict.DataDate)

	result := model.VerificationResult{
		Status:          verdict.Status,
		Confidence:      model.ClampConfidence(verdict.Confidence),
		Sources:         verdict.Sources,
		Summary:         verdict.Summary,
		Freshness:       fresh,
		FreshnessReason: reason,
		DataDate:        verdict.DataDate,
	}
	if result.Sources == nil {
		result.Sources = []model.Source{}
	}

	if result.Status == model.StatusUnableToVerify {
		// Terminal failure: never cached, always flagged for review
		result.Confidence = 0
		result.RequiresManualReview = true
	} else {
		p.save(ctx, hash, claim, result, log)
	}

	metrics.VerificationsTotal.WithLabelValues(string(result.Status), "false").Inc()
	log.Infow("verification complete", "status", result.Status, "confidence", result.Confidence, "freshness", result.Freshness)

	return result, nil
}

// fetchEvidence routes to the configured fetchers and runs them
// concurrently. Each fetcher is independently fault-tolerant, so the
// only coordination needed is waiting for both to finish.
func (p *Pipeline) fetchEvidence(ctx context.Context, classification model.ClaimClassification, claim string, log *logger.Logger) model.EvidenceBundle {
	plan := sources.Route(classification, p.financial.Configured(), p.news.Configured())
	if !plan.Financial && !plan.News {
		return model.EvidenceBundle{}
	}

	var (
		wg     sync.WaitGroup
		bundle model.EvidenceBundle
	)

	if plan.Financial {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bundle.Financial = p.financial.Fetch(ctx, classification.Entities)
			metrics.SourceFetches.WithLabelValues("financial", metrics.FetchOutcome(bundle.Financial.OK)).Inc()
		}()
	}
	if plan.News {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bundle.News = p.news.Fetch(ctx, classification.Entities, claim)
			metrics.SourceFetches.WithLabelValues("news", metrics.FetchOutcome(bundle.News.OK)).Inc()
		}()
	}
	wg.Wait()

	log.Infow("evidence fetched",
		"financial", bundle.Financial.OK,
		"news_articles", len(bundle.News.Articles))
	return bundle
}

// lookup is best-effort: a cache read failure is a miss
func (p *Pipeline) lookup(ctx context.Context, hash string, log *logger.Logger) *model.CacheEntry {
	entry, err := p.store.Lookup(ctx, hash)
	if err != nil {
		metrics.CacheLookups.WithLabelValues("error").Inc()
		log.Warnw("cache lookup failed", "error", err)
		return nil
	}
	if entry == nil {
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return nil
	}
	metrics.CacheLookups.WithLabelValues("hit").Inc()
	return entry
}

// save is best-effort: a cache write failure is logged and swallowed
func (p *Pipeline) save(ctx context.Context, hash, claim string, result model.VerificationResult, log *logger.Logger) {
	if err := p.store.Save(ctx, hash, cache.Preview(claim), result); err != nil {
		log.Warnw("cache save failed", "error", err)
	}
}
