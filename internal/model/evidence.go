package model

// Quote is a point-in-time price snapshot from the quote provider
type Quote struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent string  `json:"change_percent,omitempty"`
	TradingDay    string  `json:"trading_day,omitempty"`
}

// DailyBar is one day of the recent time series
type DailyBar struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// FinancialEvidence bundles whatever the quote provider returned.
// Quote and DailySeries are independent; either may be missing.
type FinancialEvidence struct {
	Ticker      string     `json:"ticker"`
	Quote       *Quote     `json:"quote,omitempty"`
	DailySeries []DailyBar `json:"daily_series,omitempty"`
	SourceLabel string     `json:"source_label"`
}

// FinancialResult is the tagged outcome of a financial fetch.
// OK=false means "no evidence from this source", never an error.
type FinancialResult struct {
	OK   bool
	Data FinancialEvidence
}

// NewsArticle is one normalized article from the news-search provider
type NewsArticle struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	PublishedAt string `json:"published_at,omitempty"`
	SourceName  string `json:"source_name,omitempty"`
	Description string `json:"description,omitempty"`
}

// NewsResult is the tagged outcome of a news fetch
type NewsResult struct {
	OK       bool
	Articles []NewsArticle
}

// EvidenceBundle carries the fetched evidence into the grounded
// verification prompt. It lives only for the duration of one request.
type EvidenceBundle struct {
	Financial FinancialResult
	News      NewsResult
}

// Empty reports whether neither fetcher produced evidence
func (b EvidenceBundle) Empty() bool {
	return !b.Financial.OK && !b.News.OK
}
