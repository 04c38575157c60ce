package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestClampConfidence(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{-10, 0},
		{0, 0},
		{55, 55},
		{100, 100},
		{140, 100},
	}

	for _, tt := range tests {
		if got := ClampConfidence(tt.in); got != tt.want {
			t.Errorf("ClampConfidence(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestStatus_Valid(t *testing.T) {
	for _, s := range []Status{StatusVerified, StatusReliable, StatusUnreliable, StatusUnableToVerify} {
		if !s.Valid() {
			t.Errorf("expected %s to be valid", s)
		}
	}
	for _, s := range []Status{"", "plausible", "VERIFIED"} {
		if s.Valid() {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestVerificationResult_JSONShape(t *testing.T) {
	result := VerificationResult{
		Status:     StatusVerified,
		Confidence: 85,
		Sources:    []Source{},
		Summary:    "ok",
		Freshness:  FreshnessFresh,
	}

	body, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got := string(body)

	// API consumers depend on these exact field names
	for _, field := range []string{`"status"`, `"confidence"`, `"sources"`, `"summary"`, `"freshness"`} {
		if !strings.Contains(got, field) {
			t.Errorf("expected field %s in %s", field, got)
		}
	}
	if !strings.Contains(got, `"sources":[]`) {
		t.Errorf("empty sources must serialize as [], got %s", got)
	}
	if strings.Contains(got, `"requiresManualReview"`) {
		t.Errorf("false review flag must be omitted, got %s", got)
	}

	result.RequiresManualReview = true
	body, err = json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(body), `"requiresManualReview":true`) {
		t.Errorf("expected review flag when set, got %s", body)
	}
}
