package copilot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/chuehnone/developers-dashboard/internal/config"
)

const defaultTimeout = 30 * time.Second

// Client fetches Copilot billing data over the GitHub REST API.
type Client struct {
	httpClient *http.Client
	logger     *zap.SugaredLogger
	cfg        config.GitHubConfig
}

// NewClient creates a Copilot billing client.
func NewClient(cfg config.GitHubConfig, logger *zap.SugaredLogger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger,
		cfg:        cfg,
	}
}

// FetchSeats lists the organization's Copilot seat assignments.
func (c *Client) FetchSeats(ctx context.Context) (SeatsResponse, error) {
	url := fmt.Sprintf("%s/orgs/%s/copilot/billing/seats", c.cfg.RESTBaseURL, c.cfg.Org)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return SeatsResponse{}, fmt.Errorf("failed to build seats request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "developers-dashboard")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return SeatsResponse{}, fmt.Errorf("copilot seats request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return SeatsResponse{}, fmt.Errorf("failed to read seats response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return SeatsResponse{}, fmt.Errorf("github api returned status %d: %s", resp.StatusCode, string(body))
	}

	var seats SeatsResponse
	if err := json.Unmarshal(body, &seats); err != nil {
		return SeatsResponse{}, fmt.Errorf("failed to decode seats response: %w", err)
	}

	c.logger.Debugw("fetched copilot seats", "total", seats.TotalSeats)
	return seats, nil
}
