// Package serper searches Google through the Serper API and exposes the
// search as the NewsSearch tool.
package serper

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const (
	defaultBaseURL    = "https://google.serper.dev"
	defaultAPIKeyEnv  = "SERPER_API_KEY"
	defaultNResults   = 5
	defaultSearchType = "news"
	defaultTimeout    = 30 * time.Second
)

// Sentinel errors for the Serper client.
var (
	ErrMissingAPIKey = errors.New("missing Serper API key")
	ErrEmptyQuery    = errors.New("search query is empty")
	ErrSearchType    = errors.New("unsupported search type")
	ErrRequestFailed = errors.New("serper request failed")
)

// resultKeys maps a search type to the response array holding its results.
var resultKeys = map[string]string{
	"news":   "news",
	"search": "organic",
}

// Config holds Serper client settings.
type Config struct {
	APIKey     string        `json:"api_key,omitempty" mapstructure:"api_key"`
	APIKeyEnv  string        `json:"api_key_env,omitempty" mapstructure:"api_key_env"`
	BaseURL    string        `json:"base_url,omitempty" mapstructure:"base_url"`
	NResults   int           `json:"n_results,omitempty" mapstructure:"n_results"`
	SearchType string        `json:"search_type,omitempty" mapstructure:"search_type"`
	Timeout    time.Duration `json:"timeout,omitempty" mapstructure:"timeout"`
}

// DefaultConfig returns a news search for five results keyed by
// SERPER_API_KEY.
func DefaultConfig() Config {
	return Config{
		APIKeyEnv:  defaultAPIKeyEnv,
		BaseURL:    defaultBaseURL,
		NResults:   defaultNResults,
		SearchType: defaultSearchType,
		Timeout:    defaultTimeout,
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.APIKey != "" {
		c.APIKey = source.APIKey
	}
	if source.APIKeyEnv != "" {
		c.APIKeyEnv = source.APIKeyEnv
	}
	if source.BaseURL != "" {
		c.BaseURL = source.BaseURL
	}
	if source.NResults > 0 {
		c.NResults = source.NResults
	}
	if source.SearchType != "" {
		c.SearchType = source.SearchType
	}
	if source.Timeout > 0 {
		c.Timeout = source.Timeout
	}
}

// Result is one search hit.
type Result struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet,omitempty"`
	Date    string `json:"date,omitempty"`
	Source  string `json:"source,omitempty"`
}

// Client calls the Serper API.
type Client struct {
	apiKey    string
	endpoint  string
	resultKey string
	nResults  int
	http      *http.Client
}

// NewClient creates a Client. Zero fields in cfg take their defaults.
func NewClient(cfg Config) (*Client, error) {
	merged := DefaultConfig()
	merged.Merge(&cfg)

	apiKey := merged.APIKey
	if apiKey == "" {
		apiKey = os.Getenv(merged.APIKeyEnv)
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w: set %s", ErrMissingAPIKey, merged.APIKeyEnv)
	}

	key, ok := resultKeys[merged.SearchType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSearchType, merged.SearchType)
	}

	return &Client{
		apiKey:    apiKey,
		endpoint:  strings.TrimRight(merged.BaseURL, "/") + "/" + merged.SearchType,
		resultKey: key,
		nResults:  merged.NResults,
		http:      &http.Client{Timeout: merged.Timeout},
	}, nil
}

// Search runs query and returns at most the configured number of results.
func (c *Client) Search(ctx context.Context, query string) ([]Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	body, err := json.Marshal(map[string]any{"q": query, "num": c.nResults})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %w", ErrRequestFailed, err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := gjson.GetBytes(data, "message").String()
		if msg == "" {
			msg = strings.TrimSpace(string(data))
		}
		return nil, fmt.Errorf("%w: status %d: %s", ErrRequestFailed, resp.StatusCode, msg)
	}

	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: response is not JSON", ErrRequestFailed)
	}

	var results []Result
	gjson.GetBytes(data, c.resultKey).ForEach(func(_, item gjson.Result) bool {
		results = append(results, Result{
			Title:   item.Get("title").String(),
			Link:    item.Get("link").String(),
			Snippet: item.Get("snippet").String(),
			Date:    item.Get("date").String(),
			Source:  item.Get("source").String(),
		})
		return len(results) < c.nResults
	})

	return results, nil
}
