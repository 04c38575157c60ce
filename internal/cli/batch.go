package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/veracitylabs/claimcheck/internal/cache"
	"github.com/veracitylabs/claimcheck/internal/logger"
	"github.com/veracitylabs/claimcheck/internal/model"
	"github.com/veracitylabs/claimcheck/internal/worker"
)

var (
	batchConcurrency int
	batchOutputDir   string
	batchTimeout     time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Verify multiple claims from a file in parallel",
	Long: `Batch verifies many claims concurrently:
- Read claims from the input file (one per line, # for comments)
- Verify claims in parallel with a configurable worker count
- Write one JSON result per claim into the output directory

Example:
  claimcheck batch claims.txt
  claimcheck batch claims.txt --concurrency 8 --output-dir ./results`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 4, "number of concurrent workers")
	batchCmd.Flags().StringVar(&batchOutputDir, "output-dir", "./claimcheck-results", "output directory for results")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 15*time.Minute, "total timeout for batch processing")
}

func runBatch(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg := loadConfig()
	if err := logger.Init(cfg.Log.Level, cfg.Log.Env); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	claims, err := worker.ReadClaims(args[0])
	if err != nil {
		return err
	}
	if len(claims) == 0 {
		return fmt.Errorf("no claims found in %s", args[0])
	}

	if err := os.MkdirAll(batchOutputDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	pipe, err := buildPipeline(ctx, cfg)
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Verifying %d claims with %d workers\n", len(claims), batchConcurrency)

	pool := worker.NewPool(batchConcurrency, func(ctx context.Context, claim string) (model.VerificationResult, error) {
		return pipe.Verify(ctx, claim, "")
	})
	results := pool.Run(ctx, claims)

	var failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", r.Claim, r.Err)
			continue
		}

		path := filepath.Join(batchOutputDir, cache.Key(r.Claim)[:16]+".json")
		payload, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", r.Claim, err)
			continue
		}
		if err := os.WriteFile(path, payload, 0644); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", r.Claim, err)
			continue
		}

		fmt.Fprintf(os.Stderr, "✓ [%s %d%%] %s\n", r.Result.Status, r.Result.Confidence, r.Claim)
	}

	fmt.Fprintf(os.Stderr, "\nDone: %d verified, %d failed, results in %s\n",
		len(results)-failed, failed, batchOutputDir)

	if failed > 0 {
		return fmt.Errorf("%d of %d claims failed", failed, len(results))
	}
	return nil
}
