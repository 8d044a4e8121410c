// Package client implements the search client for the ShikshaSetu API:
// query validation, search submission with supersede-on-resubmit semantics,
// document fetch, and summary download.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/pratham-bits/Shiksha-Setu/internal/config"
	"github.com/pratham-bits/Shiksha-Setu/internal/models"
)

// Indicator reflects in-flight state to the user, e.g. a spinner or a
// loading banner. Show and Hide are paired around every search.
type Indicator interface {
	Show()
	Hide()
}

// nopIndicator is used when no indicator is injected.
type nopIndicator struct{}

func (nopIndicator) Show() {}
func (nopIndicator) Hide() {}

// Client talks to the ShikshaSetu HTTP API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	indicator  Indicator
	logger     *zap.Logger

	mu       sync.Mutex
	inFlight *inFlightSearch
}

// inFlightSearch identifies one outstanding search so a finished search only
// clears its own slot. superseded is set, under the client mutex, when a
// newer search cancels this one.
type inFlightSearch struct {
	cancel     context.CancelFunc
	superseded bool
}

// NewClient creates an API client from config. A nil indicator is replaced
// with a no-op.
func NewClient(cfg config.ClientConfig, indicator Indicator, logger *zap.Logger) *Client {
	if indicator == nil {
		indicator = nopIndicator{}
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(cfg.ServerURL, "/"),
		apiKey:     cfg.APIKey,
		indicator:  indicator,
		logger:     logger,
	}
}

// Validate checks a raw query string before any request is made.
func Validate(query string) error {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return ErrEmptyQuery
	}
	if utf8.RuneCountInString(trimmed) < 2 {
		return ErrQueryTooShort
	}
	return nil
}

// SubmitSearch validates the query and posts it to /api/search. Submitting
// a new search cancels any search still in flight; the canceled call returns
// ErrSuperseded. The indicator is shown for the in-flight window and hidden
// exactly once on every terminal outcome.
func (c *Client) SubmitSearch(ctx context.Context, q models.SearchQuery) ([]models.SearchResult, error) {
	if err := Validate(q.Query); err != nil {
		return nil, err
	}
	q.Normalize()

	ctx, cancel := context.WithCancel(ctx)
	handle := &inFlightSearch{cancel: cancel}
	c.mu.Lock()
	if c.inFlight != nil {
		c.inFlight.superseded = true
		c.inFlight.cancel()
	}
	c.inFlight = handle
	c.mu.Unlock()

	defer func() {
		cancel()
		c.mu.Lock()
		if c.inFlight == handle {
			c.inFlight = nil
		}
		c.mu.Unlock()
	}()

	c.indicator.Show()
	defer c.indicator.Hide()

	results, err := c.doSearch(ctx, q)
	if err != nil && ctx.Err() == context.Canceled {
		c.mu.Lock()
		superseded := handle.superseded
		c.mu.Unlock()
		if superseded {
			return nil, ErrSuperseded
		}
	}
	return results, err
}

func (c *Client) doSearch(ctx context.Context, q models.SearchQuery) ([]models.SearchResult, error) {
	body, err := json.Marshal(q)
	if err != nil {
		return nil, fmt.Errorf("failed to encode search query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	c.logger.Debug("submitting search", zap.String("query", q.Query))
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrAuthenticationRequired
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrServiceUnavailable
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &HTTPError{Status: resp.StatusCode}
	}

	var out models.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	if !out.Success {
		return nil, &SearchFailedError{Reason: out.Error}
	}
	if out.Results == nil {
		return []models.SearchResult{}, nil
	}
	return out.Results, nil
}

// FetchDocument gets a single document by ID. Non-2xx statuses map to
// HTTPError; a success=false envelope maps to APIError.
func (c *Client) FetchDocument(ctx context.Context, id int64) (*models.Document, error) {
	url := fmt.Sprintf("%s/api/document/%d", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build document request: %w", err)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{Status: resp.StatusCode}
	}

	var out models.DocumentResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode document response: %w", err)
	}
	if !out.Success || out.Document == nil {
		return nil, &APIError{Message: out.Error}
	}
	return out.Document, nil
}

// Categories fetches the category facet values.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	return c.fetchFacet(ctx, "/api/categories")
}

// DocumentTypes fetches the document type facet values.
func (c *Client) DocumentTypes(ctx context.Context) ([]string, error) {
	return c.fetchFacet(ctx, "/api/document-types")
}

// Departments fetches the department facet values.
func (c *Client) Departments(ctx context.Context) ([]string, error) {
	return c.fetchFacet(ctx, "/api/departments")
}

func (c *Client) fetchFacet(ctx context.Context, path string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build facet request: %w", err)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{Status: resp.StatusCode}
	}

	var out models.FacetResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode facet response: %w", err)
	}
	if !out.Success {
		return nil, &APIError{Message: out.Error}
	}
	return out.Values, nil
}

func (c *Client) authorize(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}
