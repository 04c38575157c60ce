package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/veracitylabs/claimcheck/internal/logger"
	"github.com/veracitylabs/claimcheck/internal/model"
	"github.com/veracitylabs/claimcheck/internal/worker"
)

const (
	newsWindow      = 30 * 24 * time.Hour
	newsPageSize    = 10
	newsMaxArticles = 5
	maxBodyBytes    = 2 << 20
)

// NewsFetcher queries a search-style news endpoint for recent coverage
// of the claim's companies, falling back to the leading words of the
// claim itself. Any HTTP or parse error yields an empty tagged result.
type NewsFetcher struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	limiter    *worker.Limiter
	log        *logger.Logger
}

// NewNewsFetcher creates the news-search provider adapter
func NewNewsFetcher(cfg model.NewsConfig, limiter *worker.Limiter, log *logger.Logger) *NewsFetcher {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &NewsFetcher{
		httpClient: &http.Client{Timeout: timeout},
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		limiter:    limiter,
		log:        log,
	}
}

// Configured reports whether the news provider API key is present
func (f *NewsFetcher) Configured() bool {
	return f.apiKey != ""
}

// Fetch searches the last 30 days sorted by relevance and returns up
// to five normalized articles.
func (f *NewsFetcher) Fetch(ctx context.Context, entities model.ClaimEntities, claim string) model.NewsResult {
	query := buildQuery(entities, claim)
	if query == "" {
		return model.NewsResult{}
	}

	if err := f.limiter.Wait(ctx, "news"); err != nil {
		return model.NewsResult{}
	}

	params := url.Values{
		"q":        {query},
		"from":     {time.Now().Add(-newsWindow).Format("2006-01-02")},
		"sortBy":   {"relevancy"},
		"pageSize": {fmt.Sprintf("%d", newsPageSize)},
		"apiKey":   {f.apiKey},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+"/everything?"+params.Encode(), nil)
	if err != nil {
		f.log.Warnw("news request build failed", "error", err)
		return model.NewsResult{}
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		f.log.Warnw("news fetch failed", "query", query, "error", err)
		return model.NewsResult{}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		f.log.Warnw("news fetch non-200", "query", query, "status", resp.StatusCode)
		return model.NewsResult{}
	}

	var payload struct {
		Articles []struct {
			Title       string `json:"title"`
			URL         string `json:"url"`
			PublishedAt string `json:"publishedAt"`
			Description string `json:"description"`
			Source      struct {
				Name string `json:"name"`
			} `json:"source"`
		} `json:"articles"`
	}

	body, err := readAllLimited(resp.Body)
	if err != nil {
		f.log.Warnw("news body read failed", "error", err)
		return model.NewsResult{}
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		f.log.Warnw("news decode failed", "error", err)
		return model.NewsResult{}
	}

	if len(payload.Articles) == 0 {
		return model.NewsResult{}
	}

	articles := make([]model.NewsArticle, 0, newsMaxArticles)
	for _, a := range payload.Articles {
		if a.Title == "" || a.URL == "" {
			continue
		}
		articles = append(articles, model.NewsArticle{
			Title:       a.Title,
			URL:         a.URL,
			PublishedAt: a.PublishedAt,
			SourceName:  a.Source.Name,
			Description: a.Description,
		})
		if len(articles) == newsMaxArticles {
			break
		}
	}

	if len(articles) == 0 {
		return model.NewsResult{}
	}
	return model.NewsResult{OK: true, Articles: articles}
}

// buildQuery OR-joins extracted company names, falling back to the
// first five words of the claim.
func buildQuery(entities model.ClaimEntities, claim string) string {
	var companies []string
	for _, c := range entities.Companies {
		c = strings.TrimSpace(c)
		if c != "" {
			companies = append(companies, c)
		}
	}
	if len(companies) > 0 {
		return strings.Join(companies, " OR ")
	}

	words := strings.Fields(claim)
	if len(words) > 5 {
		words = words[:5]
	}
	return strings.Join(words, " ")
}

func readAllLimited(r io.Reader) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
