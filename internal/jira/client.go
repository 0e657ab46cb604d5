package jira

import (
	"bytes"
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

// searchPageSize bounds one page of the issue search.
const searchPageSize = 100

// Client talks to the Jira Cloud REST and Agile APIs with basic auth.
type Client struct {
	httpClient *http.Client
	logger     *zap.SugaredLogger
	cfg        config.JiraConfig
	baseURL    string
}

// NewClient creates a Jira client from the given configuration.
func NewClient(cfg config.JiraConfig, logger *zap.SugaredLogger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger,
		cfg:        cfg,
		baseURL:    "https://" + cfg.Domain,
	}
}

// ProjectKey returns the configured project key.
func (c *Client) ProjectKey() string {
	return c.cfg.ProjectKey
}

// BoardID returns the configured agile board id.
func (c *Client) BoardID() int {
	return c.cfg.BoardID
}

func (c *Client) do(ctx context.Context, method, url string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to build jira request: %w", err)
	}
	req.SetBasicAuth(c.cfg.Email, c.cfg.APIToken)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("jira request failed: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read jira response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("jira api returned status %d: %s", resp.StatusCode, string(payload))
	}

	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("failed to decode jira response: %w", err)
	}
	return nil
}

type searchRequest struct {
	JQL        string   `json:"jql"`
	Fields     []string `json:"fields"`
	MaxResults int      `json:"maxResults"`
}

// SearchIssues runs a JQL search with the standard field set.
func (c *Client) SearchIssues(ctx context.Context, jql string) ([]Issue, error) {
	body, err := json.Marshal(searchRequest{
		JQL:        jql,
		Fields:     StandardFields,
		MaxResults: searchPageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode jira search: %w", err)
	}

	var out SearchResponse
	url := c.baseURL + "/rest/api/3/search/jql"
	if err := c.do(ctx, http.MethodPost, url, body, &out); err != nil {
		return nil, fmt.Errorf("failed to search jira issues: %w", err)
	}

	c.logger.Debugw("jira search completed", "jql", jql, "issues", len(out.Issues))
	return out.Issues, nil
}

// FetchSprints lists the board's active and closed sprints.
func (c *Client) FetchSprints(ctx context.Context) ([]Sprint, error) {
	var out SprintsResponse
	url := fmt.Sprintf("%s/rest/agile/1.0/board/%d/sprint?state=active,closed", c.baseURL, c.cfg.BoardID)
	if err := c.do(ctx, http.MethodGet, url, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to fetch sprints: %w", err)
	}
	return out.Values, nil
}

// FetchSprintIssues lists every issue of one sprint.
func (c *Client) FetchSprintIssues(ctx context.Context, sprintID int) ([]Issue, error) {
	var out SearchResponse
	url := fmt.Sprintf("%s/rest/agile/1.0/sprint/%d/issue?maxResults=%d", c.baseURL, sprintID, searchPageSize)
	if err := c.do(ctx, http.MethodGet, url, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to fetch sprint issues: %w", err)
	}
	return out.Issues, nil
}
