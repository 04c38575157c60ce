package model

import "time"

// Config is the complete claimcheck configuration
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Classifier  ClassifierConfig  `yaml:"classifier"`
	Verifier    VerifierConfig    `yaml:"verifier"`
	Financial   FinancialConfig   `yaml:"financial"`
	News        NewsConfig        `yaml:"news"`
	Cache       CacheConfig       `yaml:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Log         LogConfig         `yaml:"log"`
}

// ServerConfig configures the HTTP surface
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// ClassifierConfig configures the claim classifier LLM call
type ClassifierConfig struct {
	APIKey      string        `yaml:"-"` // OPENAI_API_KEY, never written to file
	BaseURL     string        `yaml:"base_url,omitempty"`
	Model       string        `yaml:"model"`
	Temperature float32       `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout"`
}

// VerifierConfig configures the grounded verification LLM call
type VerifierConfig struct {
	APIKey  string        `yaml:"-"` // GEMINI_API_KEY
	Model   string        `yaml:"model"`
	Timeout time.Duration `yaml:"timeout"`
}

// FinancialConfig configures the quote provider adapter.
// An empty APIKey silently disables the fetcher.
type FinancialConfig struct {
	APIKey  string        `yaml:"-"` // QUOTE_API_KEY
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// NewsConfig configures the news-search provider adapter.
// An empty APIKey silently disables the fetcher.
type NewsConfig struct {
	APIKey  string        `yaml:"-"` // NEWS_API_KEY
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// CacheConfig configures the verification cache store
type CacheConfig struct {
	Backend     string        `yaml:"backend"` // "memory" or "postgres"
	DatabaseURL string        `yaml:"-"`       // DATABASE_URL
	TTL         time.Duration `yaml:"ttl"`
}

// ConcurrencyConfig configures batch processing
type ConcurrencyConfig struct {
	Workers int `yaml:"workers"`
}

// LogConfig configures structured logging
type LogConfig struct {
	Level string `yaml:"level"`
	Env   string `yaml:"env"` // "development" or "production"
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		Classifier: ClassifierConfig{
			Model:       "gpt-4o-mini",
			Temperature: 0.1,
			Timeout:     15 * time.Second,
		},
		Verifier: VerifierConfig{
			Model:   "gemini-2.0-flash",
			Timeout: 45 * time.Second,
		},
		Financial: FinancialConfig{
			BaseURL: "https://www.alphavantage.co/query",
			Timeout: 10 * time.Second,
		},
		News: NewsConfig{
			BaseURL: "https://newsapi.org/v2",
			Timeout: 10 * time.Second,
		},
		Cache: CacheConfig{
			Backend: "memory",
			TTL:     7 * 24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Log: LogConfig{
			Level: "info",
			Env:   "development",
		},
	}
}
