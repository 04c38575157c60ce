package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/veracitylabs/claimcheck/internal/logger"
)

var (
	checkContext string
	checkTimeout time.Duration
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <claim>",
	Short: "Verify a single claim and print the result as JSON",
	Long: `Check runs one claim through the full verification pipeline:
classification, evidence fetching, grounded verification, and
freshness analysis.

Example:
  claimcheck check "Apple's revenue grew 8% in Q4 2024"
  claimcheck check "AAPL is trading above $200" --context "as of this week"`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&checkContext, "context", "", "optional context hint for the claim")
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 2*time.Minute, "overall verification timeout")
}

func runCheck(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	cfg := loadConfig()
	if err := logger.Init(cfg.Log.Level, cfg.Log.Env); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	pipe, err := buildPipeline(ctx, cfg)
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}

	result, err := pipe.Verify(ctx, args[0], checkContext)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}
