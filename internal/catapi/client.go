// Package catapi implements the client for the external cat image catalog.
package catapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kpetrakis/catsnatch/internal/errs"
)

// SearchBreed carries the breed attributes tags are derived from.
type SearchBreed struct {
	Temperament string `json:"temperament"`
}

// SearchResult is one record of the images/search response.
type SearchResult struct {
	ID     string        `json:"id"`
	URL    string        `json:"url"`
	Width  int           `json:"width"`
	Height int           `json:"height"`
	Breeds []SearchBreed `json:"breeds"`
}

// Client talks to a TheCatAPI-compatible catalog. Every request, image
// downloads included, is bounded by the client timeout.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient constructs a catalog client for the given base URL.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// FetchBatch requests up to limit catalog records that carry breed
// information. Failures wrap ErrFetch.
func (c *Client) FetchBatch(ctx context.Context, limit int) ([]SearchResult, error) {
	u := fmt.Sprintf("%s/v1/images/search?limit=%d&has_breeds=1&api_key=%s",
		c.baseURL, limit, url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrFetch, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrFetch, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: catalog returned %s", errs.ErrFetch, resp.Status)
	}
	var out []SearchResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decode search response: %w", errs.ErrFetch, err)
	}
	return out, nil
}

// FetchBytes downloads an image payload. Failures wrap ErrFetch.
func (c *Client) FetchBytes(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrFetch, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrFetch, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: image download returned %s", errs.ErrFetch, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read image body: %w", errs.ErrFetch, err)
	}
	return body, nil
}
