package sources

import (
	"strings"

	"github.com/veracitylabs/claimcheck/internal/model"
)

// tickerTable maps well-known company names to ticker symbols. The
// table is deliberately small: anything it misses falls through to
// "no data" and the grounded verifier carries the claim alone.
var tickerTable = map[string]string{
	"apple":             "AAPL",
	"microsoft":         "MSFT",
	"alphabet":          "GOOGL",
	"google":            "GOOGL",
	"amazon":            "AMZN",
	"meta":              "META",
	"facebook":          "META",
	"nvidia":            "NVDA",
	"tesla":             "TSLA",
	"netflix":           "NFLX",
	"intel":             "INTC",
	"amd":               "AMD",
	"ibm":               "IBM",
	"oracle":            "ORCL",
	"salesforce":        "CRM",
	"adobe":             "ADBE",
	"paypal":            "PYPL",
	"shopify":           "SHOP",
	"uber":              "UBER",
	"airbnb":            "ABNB",
	"coinbase":          "COIN",
	"jpmorgan":          "JPM",
	"jpmorgan chase":    "JPM",
	"goldman sachs":     "GS",
	"berkshire":         "BRK.B",
	"walmart":           "WMT",
	"disney":            "DIS",
	"boeing":            "BA",
	"exxon":             "XOM",
	"exxonmobil":        "XOM",
	"johnson & johnson": "JNJ",
}

var companySuffixes = []string{
	", inc.", ", inc", " inc.", " inc",
	", corp.", " corp.", " corp", " corporation",
	", ltd.", " ltd.", " ltd", " limited",
	" co.", " company", " plc",
}

// ResolveTicker resolves a ticker symbol from classification entities:
// the first extracted ticker literal wins, else the first company name
// is looked up in the static table. Returns false when nothing resolves.
func ResolveTicker(entities model.ClaimEntities) (string, bool) {
	for _, t := range entities.Tickers {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t != "" {
			return t, true
		}
	}

	for _, company := range entities.Companies {
		if ticker, ok := lookupCompany(company); ok {
			return ticker, true
		}
		// Only the first company name is consulted
		break
	}

	return "", false
}

func lookupCompany(name string) (string, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, suffix := range companySuffixes {
		name = strings.TrimSuffix(name, suffix)
	}
	name = strings.TrimSpace(name)

	ticker, ok := tickerTable[name]
	return ticker, ok
}
