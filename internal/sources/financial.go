package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/veracitylabs/claimcheck/internal/logger"
	"github.com/veracitylabs/claimcheck/internal/model"
	"github.com/veracitylabs/claimcheck/internal/worker"
)

const financialSourceLabel = "Alpha Vantage"

// FinancialFetcher pulls a current quote and a recent daily series for
// a ticker resolved from classification entities. It is best-effort
// throughout: network and parse failures become a tagged "no data"
// result, never an error.
type FinancialFetcher struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	limiter    *worker.Limiter
	log        *logger.Logger
}

// NewFinancialFetcher creates the quote provider adapter
func NewFinancialFetcher(cfg model.FinancialConfig, limiter *worker.Limiter, log *logger.Logger) *FinancialFetcher {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &FinancialFetcher{
		httpClient: &http.Client{Timeout: timeout},
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		limiter:    limiter,
		log:        log,
	}
}

// Configured reports whether the quote provider API key is present
func (f *FinancialFetcher) Configured() bool {
	return f.apiKey != ""
}

// Fetch resolves a ticker and issues the quote and daily-series calls
// independently; whichever succeeds contributes to the result. With no
// resolvable ticker the network is never touched.
func (f *FinancialFetcher) Fetch(ctx context.Context, entities model.ClaimEntities) model.FinancialResult {
	ticker, ok := ResolveTicker(entities)
	if !ok {
		return model.FinancialResult{}
	}

	if err := f.limiter.Wait(ctx, "financial"); err != nil {
		return model.FinancialResult{}
	}

	var (
		wg     sync.WaitGroup
		quote  *model.Quote
		series []model.DailyBar
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		q, err := f.fetchQuote(ctx, ticker)
		if err != nil {
			f.log.Warnw("quote fetch failed", "ticker", ticker, "error", err)
			return
		}
		quote = q
	}()
	go func() {
		defer wg.Done()
		s, err := f.fetchDailySeries(ctx, ticker)
		if err != nil {
			f.log.Warnw("daily series fetch failed", "ticker", ticker, "error", err)
			return
		}
		series = s
	}()
	wg.Wait()

	if quote == nil && len(series) == 0 {
		return model.FinancialResult{}
	}

	return model.FinancialResult{
		OK: true,
		Data: model.FinancialEvidence{
			Ticker:      ticker,
			Quote:       quote,
			DailySeries: series,
			SourceLabel: financialSourceLabel,
		},
	}
}

func (f *FinancialFetcher) fetchQuote(ctx context.Context, ticker string) (*model.Quote, error) {
	body, err := f.get(ctx, url.Values{
		"function": {"GLOBAL_QUOTE"},
		"symbol":   {ticker},
		"apikey":   {f.apiKey},
	})
	if err != nil {
		return nil, err
	}

	var payload struct {
		GlobalQuote map[string]string `json:"Global Quote"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode quote: %w", err)
	}
	if len(payload.GlobalQuote) == 0 {
		return nil, fmt.Errorf("empty quote for %s", ticker)
	}

	q := &model.Quote{
		Symbol:        payload.GlobalQuote["01. symbol"],
		Price:         parseFloat(payload.GlobalQuote["05. price"]),
		Change:        parseFloat(payload.GlobalQuote["09. change"]),
		ChangePercent: payload.GlobalQuote["10. change percent"],
		TradingDay:    payload.GlobalQuote["07. latest trading day"],
	}
	if q.Symbol == "" {
		q.Symbol = ticker
	}
	return q, nil
}

func (f *FinancialFetcher) fetchDailySeries(ctx context.Context, ticker string) ([]model.DailyBar, error) {
	body, err := f.get(ctx, url.Values{
		"function":   {"TIME_SERIES_DAILY"},
		"symbol":     {ticker},
		"outputsize": {"compact"},
		"apikey":     {f.apiKey},
	})
	if err != nil {
		return nil, err
	}

	var payload struct {
		Series map[string]map[string]string `json:"Time Series (Daily)"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode series: %w", err)
	}
	if len(payload.Series) == 0 {
		return nil, fmt.Errorf("empty series for %s", ticker)
	}

	dates := make([]string, 0, len(payload.Series))
	for date := range payload.Series {
		dates = append(dates, date)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	// Most recent five trading days are enough for the prompt
	if len(dates) > 5 {
		dates = dates[:5]
	}

	bars := make([]model.DailyBar, 0, len(dates))
	for _, date := range dates {
		day := payload.Series[date]
		volume, _ := strconv.ParseInt(day["5. volume"], 10, 64)
		bars = append(bars, model.DailyBar{
			Date:   date,
			Open:   parseFloat(day["1. open"]),
			High:   parseFloat(day["2. high"]),
			Low:    parseFloat(day["3. low"]),
			Close:  parseFloat(day["4. close"]),
			Volume: volume,
		})
	}
	return bars, nil
}

func (f *FinancialFetcher) get(ctx context.Context, params url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	return readAllLimited(resp.Body)
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
