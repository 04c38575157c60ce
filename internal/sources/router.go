package sources

import "github.com/veracitylabs/claimcheck/internal/model"

// Plan decides which external fetchers to invoke for a classified
// claim. A missing API key disables the corresponding fetcher; that is
// "no evidence available from this source", not an error.
type Plan struct {
	Financial bool
	News      bool
}

// Route is a pure decision table:
//
//	financial -> quote provider (if configured) plus news
//	news      -> news only
//	general   -> neither; the grounded verifier searches on its own
func Route(c model.ClaimClassification, financialConfigured, newsConfigured bool) Plan {
	switch c.Type {
	case model.ClaimTypeFinancial:
		return Plan{
			Financial: financialConfigured,
			News:      newsConfigured,
		}
	case model.ClaimTypeNews:
		return Plan{News: newsConfigured}
	default:
		return Plan{}
	}
}
