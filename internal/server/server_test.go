package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/veracitylabs/claimcheck/internal/logger"
	"github.com/veracitylabs/claimcheck/internal/model"
	"github.com/veracitylabs/claimcheck/internal/pipeline"
)

type stubService struct {
	result model.VerificationResult
	err    error
	claim  string
}

func (s *stubService) Verify(_ context.Context, claim, _ string) (model.VerificationResult, error) {
	s.claim = claim
	if strings.TrimSpace(claim) == "" {
		return model.VerificationResult{}, pipeline.ErrEmptyClaim
	}
	return s.result, s.err
}

func newTestServer(svc *stubService) *Server {
	return New(svc, logger.Nop(), "production")
}

func postVerify(t *testing.T, s *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/verify", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestServer_Verify_OK(t *testing.T) {
	svc := &stubService{result: model.VerificationResult{
		Status:     model.StatusVerified,
		Confidence: 85,
		Summary:    "Matches reported figures.",
		Sources:    []model.Source{},
		Freshness:  model.FreshnessFresh,
	}}
	s := newTestServer(svc)

	w := postVerify(t, s, `{"claim":"Apple revenue grew 8% in Q4 2024","context":"earnings call"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if svc.claim != "Apple revenue grew 8% in Q4 2024" {
		t.Errorf("claim not forwarded, got %q", svc.claim)
	}

	var got model.VerificationResult
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("response not a verification result: %v", err)
	}
	if got.Status != model.StatusVerified || got.Confidence != 85 {
		t.Errorf("unexpected result: %+v", got)
	}
}

func TestServer_Verify_UnableToVerifyIsStill200(t *testing.T) {
	svc := &stubService{result: model.VerificationResult{
		Status:               model.StatusUnableToVerify,
		Confidence:           0,
		Summary:              "both calls failed",
		Sources:              []model.Source{},
		RequiresManualReview: true,
	}}
	s := newTestServer(svc)

	w := postVerify(t, s, `{"claim":"unverifiable claim"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("verification failure must be a structured 200, got %d", w.Code)
	}

	var got model.VerificationResult
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !got.RequiresManualReview {
		t.Error("expected requiresManualReview in envelope")
	}
}

func TestServer_Verify_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"claim":`},
		{"empty claim", `{"claim":""}`},
		{"whitespace claim", `{"claim":"   "}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(&stubService{})
			w := postVerify(t, s, tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

func TestServer_Verify_InfrastructureErrorIs500(t *testing.T) {
	svc := &stubService{err: errors.New("database on fire")}
	s := newTestServer(svc)

	w := postVerify(t, s, `{"claim":"anything"}`)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}

func TestServer_Health(t *testing.T) {
	s := newTestServer(&stubService{})

	for _, path := range []string{"/health", "/ready"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", path, w.Code)
		}
	}
}

func TestServer_RequestIDHeader(t *testing.T) {
	s := newTestServer(&stubService{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if w.Header().Get("X-Request-ID") == "" {
		t.Error("expected generated X-Request-ID header")
	}

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "caller-id")
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != "caller-id" {
		t.Errorf("expected caller-provided id echoed, got %q", got)
	}
}
