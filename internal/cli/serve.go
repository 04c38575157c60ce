package cli

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/veracitylabs/claimcheck/internal/logger"
	"github.com/veracitylabs/claimcheck/internal/server"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the claim verification API server",
	Long: `Serve exposes the verification pipeline over HTTP:

  POST /v1/verify   {"claim": "...", "context": "..."}
  GET  /health
  GET  /metrics     Prometheus exposition

A verification failure is a structured 200 response with
status "unable_to_verify"; only infrastructure errors produce 5xx.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	// Best-effort .env for local development
	_ = godotenv.Load()

	cfg := loadConfig()
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Env); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	log := logger.Get()

	pipe, err := buildPipeline(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}

	log.Infow("pipeline ready",
		"cache_backend", cfg.Cache.Backend,
		"classifier_model", cfg.Classifier.Model,
		"verifier_model", cfg.Verifier.Model,
	)

	return server.New(pipe, log, cfg.Log.Env).Run(cfg.Server.Addr)
}
