package verify

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	"github.com/veracitylabs/claimcheck/internal/model"
)

const verifierTemperature = 0.2

// Generator produces a raw model completion for a verification prompt.
// grounded=true requests live-search augmentation.
type Generator interface {
	Generate(ctx context.Context, prompt string, grounded bool) (string, error)
}

// GeminiGenerator backs Generator with the Gemini API. The grounded
// call carries the GoogleSearch tool; the fallback call carries none.
type GeminiGenerator struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGeminiGenerator creates the Gemini-backed generator. A missing
// API key is an infrastructure error, not a degradation.
func NewGeminiGenerator(ctx context.Context, cfg model.VerifierConfig) (*GeminiGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("verifier API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 45 * time.Second
	}

	return &GeminiGenerator{
		client:  client,
		model:   cfg.Model,
		timeout: timeout,
	}, nil
}

// Generate runs a single completion and returns the raw text
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string, grounded bool) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](verifierTemperature),
	}
	if grounded {
		config.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty completion")
	}
	return text, nil
}
