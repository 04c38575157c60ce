package verify

import (
	"context"
	"errors"
	"testing"

	"github.com/veracitylabs/claimcheck/internal/logger"
	"github.com/veracitylabs/claimcheck/internal/model"
)

// fakeGenerator scripts one response per call, in order
type fakeGenerator struct {
	responses []fakeResponse
	calls     []bool // grounded flag per call
}

type fakeResponse struct {
	text string
	err  error
}

func (g *fakeGenerator) Generate(_ context.Context, _ string, grounded bool) (string, error) {
	g.calls = append(g.calls, grounded)
	if len(g.responses) == 0 {
		return "", errors.New("no scripted response")
	}
	resp := g.responses[0]
	g.responses = g.responses[1:]
	return resp.text, resp.err
}

const goodVerdict = `{"status":"verified","confidence":85,"summary":"Matches reported figures.","sources":[{"title":"10-K","url":"https://example.com/10k"}],"dataDate":"2024-11-01"}`

func TestVerifier_Verify_GroundedSuccess(t *testing.T) {
	gen := &fakeGenerator{responses: []fakeResponse{{text: goodVerdict}}}
	v := NewVerifier(gen, logger.Nop())

	got := v.Verify(context.Background(), "claim", "", model.EvidenceBundle{})

	if got.Status != model.StatusVerified {
		t.Errorf("expected verified, got %s", got.Status)
	}
	if got.Confidence != 85 {
		t.Errorf("expected confidence 85, got %d", got.Confidence)
	}
	if got.DataDate != "2024-11-01" {
		t.Errorf("expected dataDate carried through, got %q", got.DataDate)
	}
	if len(gen.calls) != 1 || !gen.calls[0] {
		t.Errorf("expected a single grounded call, got %v", gen.calls)
	}
}

func TestVerifier_Verify_FallbackAfterGroundedFailure(t *testing.T) {
	gen := &fakeGenerator{responses: []fakeResponse{
		{err: errors.New("tool unavailable")},
		{text: `{"status":"reliable","confidence":60,"summary":"Consistent with coverage."}`},
	}}
	v := NewVerifier(gen, logger.Nop())

	got := v.Verify(context.Background(), "claim", "", model.EvidenceBundle{})

	if got.Status != model.StatusReliable {
		t.Errorf("expected reliable from fallback, got %s", got.Status)
	}
	if len(gen.calls) != 2 || gen.calls[0] != true || gen.calls[1] != false {
		t.Errorf("expected grounded then ungrounded calls, got %v", gen.calls)
	}
}

func TestVerifier_Verify_TerminalFailure(t *testing.T) {
	gen := &fakeGenerator{responses: []fakeResponse{
		{err: errors.New("boom")},
		{err: errors.New("boom again")},
	}}
	v := NewVerifier(gen, logger.Nop())

	got := v.Verify(context.Background(), "claim", "", model.EvidenceBundle{})

	if got.Status != model.StatusUnableToVerify {
		t.Errorf("expected unable_to_verify, got %s", got.Status)
	}
	if got.Confidence != 0 {
		t.Errorf("terminal state must carry zero confidence, got %d", got.Confidence)
	}
	if got.Summary == "" {
		t.Error("terminal state must explain itself")
	}
}

func TestVerifier_Verify_UnparsableOutputFallsThrough(t *testing.T) {
	gen := &fakeGenerator{responses: []fakeResponse{
		{text: "I think this claim is probably true."},
		{text: goodVerdict},
	}}
	v := NewVerifier(gen, logger.Nop())

	got := v.Verify(context.Background(), "claim", "", model.EvidenceBundle{})

	if got.Status != model.StatusVerified {
		t.Errorf("expected fallback to recover, got %s", got.Status)
	}
}

func TestVerifier_Verify_ModelCannotDeclareTerminalState(t *testing.T) {
	gen := &fakeGenerator{responses: []fakeResponse{
		{text: `{"status":"unable_to_verify","confidence":50,"summary":"shrug"}`},
		{text: `{"status":"unable_to_verify","confidence":50,"summary":"shrug"}`},
	}}
	v := NewVerifier(gen, logger.Nop())

	got := v.Verify(context.Background(), "claim", "", model.EvidenceBundle{})

	// Both attempts rejected, so the chain lands on its own terminal
	// state with zero confidence regardless of what the model claimed.
	if got.Status != model.StatusUnableToVerify {
		t.Errorf("expected terminal state, got %s", got.Status)
	}
	if got.Confidence != 0 {
		t.Errorf("expected zero confidence, got %d", got.Confidence)
	}
}

func TestParseVerdict(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Verdict
		wantErr bool
	}{
		{
			name: "fenced verdict",
			raw:  "```json\n{\"status\":\"unreliable\",\"confidence\":20,\"summary\":\"Contradicted.\"}\n```",
			want: Verdict{Status: model.StatusUnreliable, Confidence: 20, Summary: "Contradicted.", Sources: []model.Source{}},
		},
		{
			name: "confidence clamped high",
			raw:  `{"status":"verified","confidence":150,"summary":"s"}`,
			want: Verdict{Status: model.StatusVerified, Confidence: 100, Summary: "s", Sources: []model.Source{}},
		},
		{
			name: "confidence clamped low",
			raw:  `{"status":"unreliable","confidence":-5,"summary":"s"}`,
			want: Verdict{Status: model.StatusUnreliable, Confidence: 0, Summary: "s", Sources: []model.Source{}},
		},
		{
			name: "fractional confidence rounded",
			raw:  `{"status":"reliable","confidence":59.6,"summary":"s"}`,
			want: Verdict{Status: model.StatusReliable, Confidence: 60, Summary: "s", Sources: []model.Source{}},
		},
		{
			name:    "unknown status rejected",
			raw:     `{"status":"plausible","confidence":50,"summary":"s"}`,
			wantErr: true,
		},
		{
			name:    "missing summary rejected",
			raw:     `{"status":"verified","confidence":50}`,
			wantErr: true,
		},
		{
			name:    "not json",
			raw:     "nope",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseVerdict(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseVerdict failed: %v", err)
			}
			if got.Status != tt.want.Status || got.Confidence != tt.want.Confidence || got.Summary != tt.want.Summary {
				t.Errorf("parseVerdict() = %+v, want %+v", got, tt.want)
			}
			if got.Sources == nil {
				t.Error("sources must never be nil")
			}
		})
	}
}
