// Package search maintains the Meilisearch mirror of the catalog product
// collections and serves the read-side product search.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/SmekensRuben/HotelSuite/internal/config"
)

// Client performs authenticated HTTP calls against the Meilisearch index and
// document endpoints. It holds no state beyond its configuration.
type Client struct {
	host       string
	apiKey     string
	httpClient *http.Client
}

// NewClient resolves host and key from the loaded configuration and fails fast
// when either is absent.
func NewClient(cfg *config.Config) (*Client, error) {
	host := strings.TrimRight(strings.TrimSpace(cfg.MeiliHost), "/")
	apiKey := strings.TrimSpace(cfg.MeiliKey)
	if host == "" {
		return nil, &ConfigurationError{Missing: "MEILI_HOST"}
	}
	if apiKey == "" {
		return nil, &ConfigurationError{Missing: "MEILI_API_KEY"}
	}
	return &Client{
		host:       host,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// Request performs one call and returns the raw response. It never treats a
// non-2xx status as an error — callers decide which status codes are
// acceptable per operation.
func (c *Client) Request(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("search: marshal body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.host+path, reader)
	if err != nil {
		return nil, fmt.Errorf("search: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search: %s %s: %w", method, path, err)
	}
	return resp, nil
}

// RequestJSON performs Request, parses the body as JSON when present, and on a
// non-2xx status returns a RemoteIndexError carrying the status and the
// parsed (or raw) body. A parse failure falls back to the raw text rather than
// masking the original HTTP error.
func (c *Client) RequestJSON(ctx context.Context, method, path string, body any) (map[string]any, error) {
	resp, err := c.Request(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("search: read response: %w", err)
	}

	var parsed map[string]any
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &parsed); err != nil {
			parsed = nil
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody any = string(raw)
		if parsed != nil {
			errBody = parsed
		}
		return nil, &RemoteIndexError{Status: resp.StatusCode, Body: errBody}
	}
	return parsed, nil
}

// Healthy probes the engine's health endpoint.
func (c *Client) Healthy(ctx context.Context) error {
	_, err := c.RequestJSON(ctx, http.MethodGet, "/health", nil)
	return err
}

// SearchQuery is the read-side search request body.
type SearchQuery struct {
	Q      string `json:"q"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
	Filter string `json:"filter,omitempty"`
}

// SearchResult carries the hit ids in relevance order plus the estimated
// total, enough for the caller to hydrate documents and page further.
type SearchResult struct {
	HitIDs             []string
	EstimatedTotalHits int
}

// Search runs a full-text query against the index, scoped to one hotel via a
// hotelUid filter.
func (c *Client) Search(ctx context.Context, indexUID, hotelUID string, q SearchQuery) (*SearchResult, error) {
	q.Filter = fmt.Sprintf("hotelUid = %q", hotelUID)
	payload, err := c.RequestJSON(ctx, http.MethodPost, "/indexes/"+url.PathEscape(indexUID)+"/search", q)
	if err != nil {
		return nil, err
	}

	result := &SearchResult{}
	if total, ok := payload["estimatedTotalHits"].(float64); ok {
		result.EstimatedTotalHits = int(total)
	}
	hits, _ := payload["hits"].([]any)
	for _, hit := range hits {
		entry, ok := hit.(map[string]any)
		if !ok {
			continue
		}
		if id, ok := entry["id"].(string); ok && id != "" {
			result.HitIDs = append(result.HitIDs, id)
		}
	}
	return result, nil
}
