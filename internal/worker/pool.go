package worker

import (
	"context"
	"sync"

	"github.com/veracitylabs/claimcheck/internal/model"
)

// VerifyFunc runs one claim through the pipeline
type VerifyFunc func(ctx context.Context, claim string) (model.VerificationResult, error)

// JobResult pairs a claim with its verification outcome
type JobResult struct {
	Claim  string
	Result model.VerificationResult
	Err    error
}

// Pool verifies many claims with bounded concurrency. Results are
// returned in input order; a cancelled context marks the remaining
// claims with the context error.
type Pool struct {
	workers int
	verify  VerifyFunc
}

// NewPool creates a pool with the given worker count
func NewPool(workers int, verify VerifyFunc) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{workers: workers, verify: verify}
}

// Run verifies all claims and returns one result per claim
func (p *Pool) Run(ctx context.Context, claims []string) []JobResult {
	results := make([]JobResult, len(claims))
	if len(claims) == 0 {
		return results
	}

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, p.workers)

	for i, claim := range claims {
		wg.Add(1)
		go func(idx int, claim string) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				results[idx] = JobResult{Claim: claim, Err: ctx.Err()}
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			result, err := p.verify(ctx, claim)
			results[idx] = JobResult{Claim: claim, Result: result, Err: err}
		}(i, claim)
	}

	wg.Wait()
	return results
}
