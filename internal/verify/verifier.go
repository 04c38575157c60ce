package verify

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/veracitylabs/claimcheck/internal/logger"
	"github.com/veracitylabs/claimcheck/internal/model"
)

// attempt is one state of the fallback chain. The chain is an explicit
// state machine (grounded -> fallback -> terminal failure) so the
// "a failure to verify is never reported as a verification" invariant
// stays auditable in one place.
type attempt int

const (
	attemptGrounded attempt = iota
	attemptFallback
	attemptFailed
)

// Verdict is the verifier's contribution to the final result
type Verdict struct {
	Status     model.Status
	Confidence int
	Summary    string
	Sources    []model.Source
	DataDate   string
}

// Verifier produces the authoritative verdict for a claim
type Verifier struct {
	gen Generator
	log *logger.Logger
}

// NewVerifier creates a verifier on top of a Generator
func NewVerifier(gen Generator, log *logger.Logger) *Verifier {
	return &Verifier{gen: gen, log: log}
}

// Verify runs the fallback chain: a grounded call, then one retry with
// the identical prompt and grounding disabled, then the terminal
// failure state. The terminal state is explicit and never upgraded.
func (v *Verifier) Verify(ctx context.Context, claim, claimContext string, evidence model.EvidenceBundle) Verdict {
	prompt := BuildPrompt(claim, claimContext, evidence)

	for state := attemptGrounded; state != attemptFailed; state++ {
		grounded := state == attemptGrounded

		raw, err := v.gen.Generate(ctx, prompt, grounded)
		if err != nil {
			v.log.Warnw("verification call failed", "grounded", grounded, "error", err)
			continue
		}

		verdict, err := parseVerdict(raw)
		if err != nil {
			// Unparsable output is treated the same as transport failure
			v.log.Warnw("verification output unparsable", "grounded", grounded, "error", err)
			continue
		}

		return verdict
	}

	return Verdict{
		Status:     model.StatusUnableToVerify,
		Confidence: 0,
		Summary:    "Verification could not be completed: both the grounded and fallback model calls failed. The claim has not been judged and requires manual review.",
	}
}

// parseVerdict decodes the model's JSON verdict, stripping code
// fences, clamping confidence, and rejecting unknown statuses.
func parseVerdict(raw string) (Verdict, error) {
	var payload struct {
		Status     string         `json:"status"`
		Confidence float64        `json:"confidence"`
		Summary    string         `json:"summary"`
		Sources    []model.Source `json:"sources"`
		DataDate   string         `json:"dataDate"`
	}

	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &payload); err != nil {
		return Verdict{}, fmt.Errorf("decode verdict: %w", err)
	}

	status := model.Status(strings.ToLower(strings.TrimSpace(payload.Status)))
	if !status.Valid() || status == model.StatusUnableToVerify {
		// The model does not get to declare the terminal state
		return Verdict{}, fmt.Errorf("unknown status %q", payload.Status)
	}
	if payload.Summary == "" {
		return Verdict{}, fmt.Errorf("missing summary")
	}

	sources := payload.Sources
	if sources == nil {
		sources = []model.Source{}
	}

	return Verdict{
		Status:     status,
		Confidence: model.ClampConfidence(int(math.Round(payload.Confidence))),
		Summary:    payload.Summary,
		Sources:    sources,
		DataDate:   payload.DataDate,
	}, nil
}

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
