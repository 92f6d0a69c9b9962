// Package datastore talks to the hosted data collaborator that stores
// explorations, marches and textes. Berge never owns this data; it reads
// it over HTTP JSON with a per-project API key.
package datastore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	retry "github.com/avast/retry-go/v4"
)

// ErrUnhealthy is returned when the collaborator health check fails.
var ErrUnhealthy = errors.New("datastore health check failed")

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Client is an HTTP client for the data collaborator.
type Client struct {
	url        string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a client for the collaborator at the given base URL.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		url:    strings.TrimSuffix(baseURL, "/"),
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// HealthCheck verifies the collaborator is reachable.
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.url+"/rest/v1/health", nil)
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnhealthy, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, resp.StatusCode)
	}
	return nil
}

// WaitReady polls the health endpoint until the collaborator responds or
// the timeout elapses.
func (c *Client) WaitReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return retry.Do(
		func() error { return c.HealthCheck(ctx) },
		retry.Context(ctx),
		retry.Attempts(uint(timeout.Seconds())),
		retry.Delay(1*time.Second),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)
}

// GetExploration fetches one exploration by ID.
func (c *Client) GetExploration(ctx context.Context, id string) (*Exploration, error) {
	var rows []Exploration
	if err := c.getJSON(ctx, "/rest/v1/explorations", url.Values{"id": {"eq." + id}}, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("exploration %s: %w", id, ErrNotFound)
	}
	return &rows[0], nil
}

// ListExplorations fetches all explorations ordered by name.
func (c *Client) ListExplorations(ctx context.Context) ([]Exploration, error) {
	var rows []Exploration
	if err := c.getJSON(ctx, "/rest/v1/explorations", url.Values{"order": {"nom.asc"}}, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// ListMarches fetches marches matching the filter, ordered by date ascending.
func (c *Client) ListMarches(ctx context.Context, filter Filter) ([]Marche, error) {
	q := url.Values{"order": {"date.asc"}}
	if filter.ExplorationID != "" {
		q.Set("exploration_id", "eq."+filter.ExplorationID)
	}
	if filter.Region != "" {
		q.Set("region", "eq."+filter.Region)
	}
	if filter.DateFrom != "" {
		q.Set("date", "gte."+filter.DateFrom)
	}
	if filter.DateTo != "" {
		q.Add("date", "lte."+filter.DateTo)
	}

	var rows []Marche
	if err := c.getJSON(ctx, "/rest/v1/marches", q, &rows); err != nil {
		return nil, err
	}
	// The collaborator orders by date; re-sort defensively so document
	// row order never depends on remote behavior.
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Date < rows[j].Date })
	return rows, nil
}

// ListTextes fetches the textes of one marche in reading order.
func (c *Client) ListTextes(ctx context.Context, marcheID string) ([]TexteRow, error) {
	q := url.Values{
		"marche_id": {"eq." + marcheID},
		"order":     {"ordre.asc"},
	}
	var rows []TexteRow
	if err := c.getJSON(ctx, "/rest/v1/textes", q, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// GetMarcheCounts fetches the media counts recorded on one marche.
func (c *Client) GetMarcheCounts(ctx context.Context, marcheID string) (*Counts, error) {
	var rows []Counts
	q := url.Values{"marche_id": {"eq." + marcheID}}
	if err := c.getJSON(ctx, "/rest/v1/marche_counts", q, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return &Counts{}, nil
	}
	return &rows[0], nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	u := c.url + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("datastore error (status %d): %s",
			resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
