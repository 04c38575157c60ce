package classify

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/veracitylabs/claimcheck/internal/logger"
	"github.com/veracitylabs/claimcheck/internal/model"
)

const systemPrompt = `You classify factual claims for a verification pipeline. Respond with strict JSON only, no prose, no markdown fences, matching exactly:
{
  "type": "financial" | "news" | "general",
  "entities": {
    "companies": [],
    "tickers": [],
    "dates": [],
    "percentages": [],
    "currencies": []
  },
  "timeframe": ""
}
"financial" covers revenue, earnings, stock price and market claims. "news" covers current events. Everything else is "general". Extract entity strings exactly as they appear in the claim. "timeframe" is the period the claim refers to (e.g. "Q4 2024") or an empty string.`

// Classifier tags a claim with a type, extracted entities, and a
// timeframe using a low-temperature LLM completion. It never returns
// an error: any transport or parse failure yields the default
// classification so the pipeline keeps going.
type Classifier struct {
	client      *openai.Client
	model       string
	temperature float32
	timeout     time.Duration
	log         *logger.Logger
}

// NewClassifier creates a classifier from configuration
func NewClassifier(cfg model.ClassifierConfig, log *logger.Logger) *Classifier {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}

	return &Classifier{
		client:      openai.NewClientWithConfig(clientConfig),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		timeout:     timeout,
		log:         log,
	}
}

// Classify tags the claim. No retry: a failed classification is
// absorbed here and the claim is treated as general.
func (c *Classifier) Classify(ctx context.Context, claim string) model.ClaimClassification {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: claim},
		},
		Temperature: c.temperature,
	})
	if err != nil {
		c.log.Warnw("claim classification failed, using default", "error", err)
		return model.DefaultClassification()
	}

	if len(resp.Choices) == 0 {
		c.log.Warnw("claim classification returned no choices, using default")
		return model.DefaultClassification()
	}

	var classification model.ClaimClassification
	content := stripCodeFence(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &classification); err != nil {
		c.log.Warnw("claim classification unparsable, using default", "error", err)
		return model.DefaultClassification()
	}

	switch classification.Type {
	case model.ClaimTypeFinancial, model.ClaimTypeNews, model.ClaimTypeGeneral:
	default:
		classification.Type = model.ClaimTypeGeneral
	}

	return classification
}

// stripCodeFence removes a surrounding markdown code fence, which
// models emit even when told not to.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
