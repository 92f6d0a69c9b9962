package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	retry "github.com/avast/retry-go/v4"
)

const serviceName = "service"

// ServiceClient calls the hosted resume-marche function of the data
// collaborator instead of talking to a model directly.
type ServiceClient struct {
	url        string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewServiceClient creates a client for the hosted summarization function.
func NewServiceClient(cfg Config, logger *slog.Logger) *ServiceClient {
	return &ServiceClient{
		url:        strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: 90 * time.Second},
		logger:     logger.With("provider", serviceName),
	}
}

// Name returns the provider identifier.
func (c *ServiceClient) Name() string {
	return serviceName
}

// Summarize posts the marche payload to the hosted function and returns
// the validated summary.
func (c *ServiceClient) Summarize(ctx context.Context, req Request) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	var summary string
	err = retry.Do(
		func() error {
			httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
				c.url+"/functions/v1/resume-marche", bytes.NewReader(body))
			if err != nil {
				return fmt.Errorf("create request: %w", err)
			}
			httpReq.Header.Set("Content-Type", "application/json")
			if c.apiKey != "" {
				httpReq.Header.Set("apikey", c.apiKey)
				httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
			}

			resp, err := c.httpClient.Do(httpReq)
			if err != nil {
				return fmt.Errorf("call resume function: %w", err)
			}
			defer resp.Body.Close()

			data, err := io.ReadAll(resp.Body)
			if err != nil {
				return fmt.Errorf("read response: %w", err)
			}
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("resume function returned status %d: %s",
					resp.StatusCode, strings.TrimSpace(string(data)))
			}

			parsed, err := parseResume(string(data))
			if err != nil {
				return err
			}
			summary = parsed
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(2),
		retry.Delay(time.Second),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return "", err
	}
	return summary, nil
}
