package model

// Claim is a single factual assertion submitted for verification
type Claim struct {
	Text    string `json:"claim"`             // The claim text itself (required)
	Context string `json:"context,omitempty"` // Optional free-text hint from the caller
}

// ClaimType categorizes a claim for source routing
type ClaimType string

const (
	ClaimTypeFinancial ClaimType = "financial" // Market, revenue, stock-price claims
	ClaimTypeNews      ClaimType = "news"      // Current-events claims
	ClaimTypeGeneral   ClaimType = "general"   // Everything else
)

// ClaimEntities holds the structured entities extracted from a claim
type ClaimEntities struct {
	Companies   []string `json:"companies,omitempty"`
	Tickers     []string `json:"tickers,omitempty"`
	Dates       []string `json:"dates,omitempty"`
	Percentages []string `json:"percentages,omitempty"`
	Currencies  []string `json:"currencies,omitempty"`
}

// ClaimClassification is the routing decision derived from a claim
type ClaimClassification struct {
	Type      ClaimType     `json:"type"`
	Entities  ClaimEntities `json:"entities"`
	Timeframe string        `json:"timeframe,omitempty"` // e.g. "Q4 2024"
}

// DefaultClassification is the fallback when classification fails.
// Classification failure must never abort the pipeline.
func DefaultClassification() ClaimClassification {
	return ClaimClassification{Type: ClaimTypeGeneral}
}
