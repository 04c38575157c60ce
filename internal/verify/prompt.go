package verify

import (
	"fmt"
	"strings"

	"github.com/veracitylabs/claimcheck/internal/model"
)

// BuildPrompt assembles the single grounded-verification prompt from
// the claim, optional caller context, and whatever evidence the
// fetchers returned. When both fetchers came back empty the prompt
// says so explicitly: the model must not assume evidence exists.
func BuildPrompt(claim, claimContext string, evidence model.EvidenceBundle) string {
	var b strings.Builder

	b.WriteString(`You verify factual claims. Judge the claim below against the provided data and anything you can find through search. Respond with strict JSON only, no prose, no markdown fences, matching exactly:
{
  "status": "verified" | "reliable" | "unreliable",
  "confidence": 0-100,
  "summary": "2-3 sentence explanation",
  "sources": [{"title": "", "url": "", "publishedAt": ""}],
  "dataDate": "the timeframe the supporting data actually refers to, e.g. 'Q4 2024' or '2025-03-15', or empty"
}
Banding: "verified" 70-100 (strong corroboration), "reliable" 50-74 (partial corroboration), "unreliable" 0-49 (contradicted or unsupported). If evidence is insufficient, say so in the summary and lower the confidence; never invent sources.

`)

	fmt.Fprintf(&b, "CLAIM: %s\n", claim)
	if claimContext != "" {
		fmt.Fprintf(&b, "CONTEXT: %s\n", claimContext)
	}
	b.WriteString("\n")

	if evidence.Empty() {
		b.WriteString("EXTERNAL DATA: No external data available.\n")
		return b.String()
	}

	b.WriteString("EXTERNAL DATA:\n")
	if evidence.Financial.OK {
		renderFinancial(&b, evidence.Financial.Data)
	}
	if evidence.News.OK {
		renderNews(&b, evidence.News.Articles)
	}

	return b.String()
}

func renderFinancial(b *strings.Builder, data model.FinancialEvidence) {
	fmt.Fprintf(b, "\nMarket data for %s (source: %s):\n", data.Ticker, data.SourceLabel)

	if q := data.Quote; q != nil {
		fmt.Fprintf(b, "- Latest quote: %.2f (change %.2f, %s) as of %s\n",
			q.Price, q.Change, q.ChangePercent, q.TradingDay)
	}
	for _, bar := range data.DailySeries {
		fmt.Fprintf(b, "- %s: open %.2f, high %.2f, low %.2f, close %.2f, volume %d\n",
			bar.Date, bar.Open, bar.High, bar.Low, bar.Close, bar.Volume)
	}
}

func renderNews(b *strings.Builder, articles []model.NewsArticle) {
	b.WriteString("\nRecent news coverage:\n")
	for _, a := range articles {
		fmt.Fprintf(b, "- %q (%s, %s) %s\n", a.Title, a.SourceName, a.PublishedAt, a.URL)
		if a.Description != "" {
			fmt.Fprintf(b, "  %s\n", a.Description)
		}
	}
}
