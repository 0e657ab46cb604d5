// Package client implements the GitHub GraphQL and REST API clients
// used by the dashboard fetch layer.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/chuehnone/developers-dashboard/internal/config"
	"github.com/chuehnone/developers-dashboard/internal/github/model"
)

const defaultTimeout = 30 * time.Second

// rateLimitWarnBelow triggers a warning when the remaining GraphQL
// quota drops under this many points.
const rateLimitWarnBelow = 100

// Client talks to the GitHub GraphQL API on behalf of one organization.
type Client struct {
	httpClient *http.Client
	logger     *zap.SugaredLogger
	cfg        config.GitHubConfig
}

// NewClient creates a GitHub client from the given configuration.
func NewClient(cfg config.GitHubConfig, logger *zap.SugaredLogger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger,
		cfg:        cfg,
	}
}

// Org returns the organization login the client is scoped to.
func (c *Client) Org() string {
	return c.cfg.Org
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

// query executes one GraphQL request and decodes the data payload into
// out. GraphQL-level errors are surfaced as a single wrapped error.
func (c *Client) query(ctx context.Context, query string, variables map[string]any, out any) error {
	payload, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("failed to encode graphql request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.GraphQLURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build graphql request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "developers-dashboard")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("graphql request failed: %w", err)
	}
	defer resp.Body.Close()

	c.warnOnLowRateLimit(resp)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read graphql response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("github api returned status %d: %s", resp.StatusCode, string(body))
	}

	var decoded graphQLResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return fmt.Errorf("failed to decode graphql response: %w", err)
	}

	if len(decoded.Errors) > 0 {
		for _, gqlErr := range decoded.Errors {
			c.logger.Warnw("github graphql error", "type", gqlErr.Type, "message", gqlErr.Message)
		}
		return fmt.Errorf("github graphql error: %s", decoded.Errors[0].Message)
	}

	if err := json.Unmarshal(decoded.Data, out); err != nil {
		return fmt.Errorf("failed to decode graphql data: %w", err)
	}
	return nil
}

func (c *Client) warnOnLowRateLimit(resp *http.Response) {
	remaining := resp.Header.Get("X-RateLimit-Remaining")
	if remaining == "" {
		return
	}
	left, err := strconv.Atoi(remaining)
	if err != nil || left >= rateLimitWarnBelow {
		return
	}
	c.logger.Warnw("github rate limit running low", "remaining", left)
}

// FetchOrgPullRequests fetches the most recent pull requests of every
// repository in the organization and flattens them into a single list
// with repository attribution attached.
func (c *Client) FetchOrgPullRequests(ctx context.Context) ([]model.PullRequest, error) {
	var out model.OrgPullRequestsResponse
	vars := map[string]any{"org": c.cfg.Org}
	if err := c.query(ctx, orgPullRequestsQuery, vars, &out); err != nil {
		return nil, fmt.Errorf("failed to fetch org pull requests: %w", err)
	}
	return FlattenOrgPullRequests(out), nil
}

// FetchOrgMembers fetches organization members together with team
// assignments.
func (c *Client) FetchOrgMembers(ctx context.Context) (model.Organization, error) {
	var out model.OrgMembersResponse
	vars := map[string]any{"org": c.cfg.Org}
	if err := c.query(ctx, orgMembersQuery, vars, &out); err != nil {
		return model.Organization{}, fmt.Errorf("failed to fetch org members: %w", err)
	}
	return out.Organization, nil
}

// FlattenOrgPullRequests collapses the nested repository/pull request
// response into one flat list. Each pull request gets a repository
// reference; a repository with no owner falls back to the organization
// login.
func FlattenOrgPullRequests(resp model.OrgPullRequestsResponse) []model.PullRequest {
	org := resp.Organization

	var prs []model.PullRequest
	for _, repo := range org.Repositories.Nodes {
		owner := org.Login
		if repo.Owner != nil && repo.Owner.Login != "" {
			owner = repo.Owner.Login
		}
		ref := &model.RepositoryRef{
			Name:  repo.Name,
			Owner: model.Actor{Login: owner},
		}
		for _, pr := range repo.PullRequests.Nodes {
			pr.Repository = ref
			prs = append(prs, pr)
		}
	}
	return prs
}
