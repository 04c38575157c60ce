package verify

import (
	"strings"
	"testing"

	"github.com/veracitylabs/claimcheck/internal/model"
)

func TestBuildPrompt_EmptyEvidence(t *testing.T) {
	got := BuildPrompt("Apple revenue grew 8%", "", model.EvidenceBundle{})

	if !strings.Contains(got, "CLAIM: Apple revenue grew 8%") {
		t.Error("prompt must carry the claim")
	}
	if !strings.Contains(got, "No external data available") {
		t.Error("empty evidence must be stated explicitly")
	}
	if strings.Contains(got, "CONTEXT:") {
		t.Error("no context line expected when context is empty")
	}
}

func TestBuildPrompt_WithContext(t *testing.T) {
	got := BuildPrompt("claim", "from an earnings call", model.EvidenceBundle{})

	if !strings.Contains(got, "CONTEXT: from an earnings call") {
		t.Error("caller context must appear in the prompt")
	}
}

func TestBuildPrompt_RendersEvidence(t *testing.T) {
	price := 227.51
	bundle := model.EvidenceBundle{
		Financial: model.FinancialResult{
			OK: true,
			Data: model.FinancialEvidence{
				Ticker:      "AAPL",
				SourceLabel: "Alpha Vantage",
				Quote:       &model.Quote{Price: price, Change: 3.21, ChangePercent: "1.43%", TradingDay: "2025-01-17"},
				DailySeries: []model.DailyBar{{Date: "2025-01-17", Open: 225, High: 228.1, Low: 224.5, Close: 227.51, Volume: 51230000}},
			},
		},
		News: model.NewsResult{
			OK: true,
			Articles: []model.NewsArticle{
				{Title: "Apple beats estimates", URL: "https://example.com/a", SourceName: "Reuters", PublishedAt: "2025-01-15", Description: "Quarterly beat."},
			},
		},
	}

	got := BuildPrompt("claim", "", bundle)

	for _, want := range []string{
		"Market data for AAPL (source: Alpha Vantage)",
		"Latest quote: 227.51",
		"volume 51230000",
		"Recent news coverage:",
		`"Apple beats estimates" (Reuters, 2025-01-15) https://example.com/a`,
		"Quarterly beat.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt missing %q\nprompt:\n%s", want, got)
		}
	}
	if strings.Contains(got, "No external data available") {
		t.Error("populated evidence must not be described as absent")
	}
}

func TestBuildPrompt_PartialEvidence(t *testing.T) {
	bundle := model.EvidenceBundle{
		News: model.NewsResult{OK: true, Articles: []model.NewsArticle{{Title: "t", URL: "u"}}},
	}

	got := BuildPrompt("claim", "", bundle)

	if strings.Contains(got, "Market data for") {
		t.Error("absent financial evidence must not be rendered")
	}
	if !strings.Contains(got, "Recent news coverage:") {
		t.Error("news evidence must be rendered")
	}
}
