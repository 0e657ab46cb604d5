package dashboard

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/chuehnone/developers-dashboard/internal/cache"
	"github.com/chuehnone/developers-dashboard/internal/copilot"
	"github.com/chuehnone/developers-dashboard/internal/github/analyzer"
	githubmodel "github.com/chuehnone/developers-dashboard/internal/github/model"
	"github.com/chuehnone/developers-dashboard/internal/jira"
)

// ErrJiraNotConfigured is returned by Jira analytics when no Jira
// connection is configured.
var ErrJiraNotConfigured = errors.New("jira integration is not configured")

// analyticsWindowDays is the fixed window of the pull request
// analytics view.
const analyticsWindowDays = 30

// activityTrendDays is the length of the per-developer activity
// sparkline.
const activityTrendDays = 7

// maxSprints bounds how many recent sprints the Jira analytics score.
const maxSprints = 6

// GithubFetcher fetches organization data from GitHub.
type GithubFetcher interface {
	FetchOrgPullRequests(ctx context.Context) ([]githubmodel.PullRequest, error)
	FetchOrgMembers(ctx context.Context) (githubmodel.Organization, error)
}

// JiraFetcher fetches sprint and issue data from Jira.
type JiraFetcher interface {
	SearchIssues(ctx context.Context, jql string) ([]jira.Issue, error)
	FetchSprints(ctx context.Context) ([]jira.Sprint, error)
	FetchSprintIssues(ctx context.Context, sprintID int) ([]jira.Issue, error)
	ProjectKey() string
}

// CopilotFetcher fetches Copilot seat data.
type CopilotFetcher interface {
	FetchSeats(ctx context.Context) (copilot.SeatsResponse, error)
}

// Service orchestrates the upstream fetches and assembles dashboard
// responses. Jira is optional: a nil JiraFetcher disables every Jira
// path.
type Service struct {
	github         GithubFetcher
	jira           JiraFetcher
	copilot        CopilotFetcher
	store          *cache.Store
	logger         *zap.SugaredLogger
	fallbackToMock bool

	// now is replaceable in tests.
	now func() time.Time
}

// NewService creates the dashboard service.
func NewService(
	github GithubFetcher,
	jiraFetcher JiraFetcher,
	copilotFetcher CopilotFetcher,
	store *cache.Store,
	fallbackToMock bool,
	logger *zap.SugaredLogger,
) *Service {
	return &Service{
		github:         github,
		jira:           jiraFetcher,
		copilot:        copilotFetcher,
		store:          store,
		logger:         logger,
		fallbackToMock: fallbackToMock,
		now:            time.Now,
	}
}

// DeveloperMetrics serves the main dashboard payload for one time
// range. Cached responses are served immediately and refetched in the
// background so the entry stays warm.
func (s *Service) DeveloperMetrics(ctx context.Context, timeRange TimeRange) (MetricsResponse, error) {
	key := metricsCacheKeyPrefix + string(timeRange)
	return fetchWithRefresh(ctx, s.store, s.logger, key, 0,
		func(ctx context.Context) (MetricsResponse, error) {
			return s.buildMetrics(ctx, timeRange)
		},
		s.metricsFallback(timeRange),
	)
}

// GithubAnalytics serves the pull request analytics view.
func (s *Service) GithubAnalytics(ctx context.Context) (githubmodel.AnalyticsData, error) {
	return fetchWithCache(ctx, s.store, s.logger, githubCacheKey, 0,
		func(ctx context.Context) (githubmodel.AnalyticsData, error) {
			prs, err := s.github.FetchOrgPullRequests(ctx)
			if err != nil {
				return githubmodel.AnalyticsData{}, err
			}
			return analyzer.BuildAnalytics(prs, analyticsWindowDays, s.now()), nil
		},
		s.githubFallback(),
	)
}

// JiraAnalytics serves the sprint delivery view.
func (s *Service) JiraAnalytics(ctx context.Context) (jira.Analytics, error) {
	if s.jira == nil {
		return jira.Analytics{}, ErrJiraNotConfigured
	}
	return fetchWithCache(ctx, s.store, s.logger, jiraCacheKey, 0,
		s.buildJiraAnalytics,
		s.jiraFallback(),
	)
}

// CopilotAnalytics serves the Copilot adoption view for one time range.
func (s *Service) CopilotAnalytics(ctx context.Context, timeRange TimeRange) (copilot.Analytics, error) {
	key := copilotCacheKeyPrefix + string(timeRange)
	return fetchWithCache(ctx, s.store, s.logger, key, 0,
		func(ctx context.Context) (copilot.Analytics, error) {
			seats, err := s.copilot.FetchSeats(ctx)
			if err != nil {
				return copilot.Analytics{}, err
			}
			return copilot.BuildAnalytics(seats, timeRange.Days(), s.now()), nil
		},
		s.copilotFallback(timeRange),
	)
}

// DeveloperDetail serves the drill-down view for one developer login.
func (s *Service) DeveloperDetail(ctx context.Context, login string, timeRange TimeRange) (DeveloperDetail, error) {
	key := developerCacheKeyPrefix + strings.ToLower(login) + "_" + string(timeRange)
	return fetchWithCache(ctx, s.store, s.logger, key, 0,
		func(ctx context.Context) (DeveloperDetail, error) {
			return s.buildDeveloperDetail(ctx, login, timeRange)
		},
		nil,
	)
}

// ClearCache drops every cached dashboard response.
func (s *Service) ClearCache() error {
	return s.store.Clear()
}

// CacheInfo describes the current cache contents.
func (s *Service) CacheInfo() (cache.Info, error) {
	return s.store.GetInfo()
}

// buildMetrics assembles the per-developer dashboard from scratch.
func (s *Service) buildMetrics(ctx context.Context, timeRange TimeRange) (MetricsResponse, error) {
	now := s.now()
	days := timeRange.Days()

	prs, err := s.github.FetchOrgPullRequests(ctx)
	if err != nil {
		return MetricsResponse{}, fmt.Errorf("failed to fetch pull requests: %w", err)
	}
	prs = filterByUpdateDate(prs, days, now)

	org, err := s.github.FetchOrgMembers(ctx)
	if err != nil {
		return MetricsResponse{}, fmt.Errorf("failed to fetch org members: %w", err)
	}

	issues := s.fetchJiraIssues(ctx, days)

	developers := make([]DeveloperMetric, 0, len(org.MembersWithRole.Nodes))
	for _, member := range org.MembersWithRole.Nodes {
		stats := analyzer.UserPullRequestStats(prs, member.Login, days, now)

		var jiraStats *jira.JiraStats
		if issues != nil {
			userStats := jira.UserStats(issues, member.Login, memberDisplayName(member))
			jiraStats = &userStats
		}

		developers = append(developers, DeveloperMetric{
			Developer: Developer{
				ID:   member.Login,
				Name: memberDisplayName(member),
				Role: memberRole(org, member.Login),
			},
			Github:        stats,
			Jira:          jiraStats,
			ActivityTrend: analyzer.ActivityTrend(prs, member.Login, activityTrendDays, now),
			ImpactScore:   ImpactScore(stats, jiraStats),
			Status:        DeveloperStatus(stats),
		})
	}

	return MetricsResponse{
		Developers:  developers,
		Summary:     summarize(developers),
		TimeRange:   timeRange,
		GeneratedAt: now,
	}, nil
}

// buildDeveloperDetail runs the comment-graph and authored-PR analyses
// for one developer over a fresh org pull request snapshot.
func (s *Service) buildDeveloperDetail(ctx context.Context, login string, timeRange TimeRange) (DeveloperDetail, error) {
	now := s.now()
	days := timeRange.Days()

	prs, err := s.github.FetchOrgPullRequests(ctx)
	if err != nil {
		return DeveloperDetail{}, fmt.Errorf("failed to fetch pull requests: %w", err)
	}

	org, err := s.github.FetchOrgMembers(ctx)
	if err != nil {
		return DeveloperDetail{}, fmt.Errorf("failed to fetch org members: %w", err)
	}

	name := login
	for _, member := range org.MembersWithRole.Nodes {
		if strings.EqualFold(member.Login, login) {
			name = memberDisplayName(member)
			break
		}
	}

	return DeveloperDetail{
		Developer:     Developer{ID: login, Name: name, Role: memberRole(org, login)},
		Comments:      analyzer.CommentsOnAuthorPRs(prs, login, days, now),
		CommentsGiven: analyzer.CommentsGivenByAuthor(prs, login, days, now),
		PullRequests:  analyzer.PRsCreatedByAuthor(prs, login, days, now),
		TimeRange:     timeRange,
		GeneratedAt:   now,
	}, nil
}

// buildJiraAnalytics scores the recent sprints and the project backlog.
func (s *Service) buildJiraAnalytics(ctx context.Context) (jira.Analytics, error) {
	sprints, err := s.jira.FetchSprints(ctx)
	if err != nil {
		return jira.Analytics{}, fmt.Errorf("failed to fetch sprints: %w", err)
	}

	sort.SliceStable(sprints, func(i, j int) bool {
		return sprintStart(sprints[i]).After(sprintStart(sprints[j]))
	})
	if len(sprints) > maxSprints {
		sprints = sprints[:maxSprints]
	}

	metrics := make([]jira.SprintMetric, 0, len(sprints))
	for _, sprint := range sprints {
		sprintIssues, err := s.jira.FetchSprintIssues(ctx, sprint.ID)
		if err != nil {
			return jira.Analytics{}, fmt.Errorf("failed to fetch issues of sprint %d: %w", sprint.ID, err)
		}
		metrics = append(metrics, jira.SprintMetrics(sprint, sprintIssues))
	}

	backlog, err := s.jira.SearchIssues(ctx, jira.ProjectIssuesJQL(s.jira.ProjectKey(), RangeQuarter.Days()))
	if err != nil {
		return jira.Analytics{}, fmt.Errorf("failed to search project issues: %w", err)
	}

	return jira.BuildAnalytics(metrics, backlog, s.now()), nil
}

// fetchJiraIssues pulls the backlog for per-developer stats. Jira being
// down never blocks the dashboard: failures degrade to GitHub-only
// metrics.
func (s *Service) fetchJiraIssues(ctx context.Context, days int) []jira.Issue {
	if s.jira == nil {
		return nil
	}
	issues, err := s.jira.SearchIssues(ctx, jira.ProjectIssuesJQL(s.jira.ProjectKey(), days))
	if err != nil {
		s.logger.Warnw("jira fetch failed, serving github-only metrics", "error", err)
		return nil
	}
	return issues
}

func summarize(developers []DeveloperMetric) DashboardSummary {
	summary := DashboardSummary{}

	var cycleSum float64
	withMerges := 0
	for _, dev := range developers {
		summary.TotalPRsMerged += dev.Github.PRsMerged
		if dev.Github.PRsMerged > 0 {
			cycleSum += dev.Github.AvgCycleTimeHours
			withMerges++
		}
	}
	if withMerges > 0 {
		summary.AvgCycleTimeHours = round1(cycleSum / float64(withMerges))
	}
	return summary
}

// memberRole derives a developer's role from their first team.
func memberRole(org githubmodel.Organization, login string) Role {
	for _, team := range org.Teams.Nodes {
		for _, member := range team.Members.Nodes {
			if strings.EqualFold(member.Login, login) {
				return RoleFromTeam(team.Name)
			}
		}
	}
	return RoleOther
}

func memberDisplayName(member githubmodel.Member) string {
	if member.Name != "" {
		return member.Name
	}
	return member.Login
}

// filterByUpdateDate keeps pull requests touched within the window.
func filterByUpdateDate(prs []githubmodel.PullRequest, days int, now time.Time) []githubmodel.PullRequest {
	if days <= 0 {
		return prs
	}
	cutoff := now.AddDate(0, 0, -days)

	filtered := make([]githubmodel.PullRequest, 0, len(prs))
	for _, pr := range prs {
		if !pr.UpdatedAt.Before(cutoff) {
			filtered = append(filtered, pr)
		}
	}
	return filtered
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func sprintStart(sprint jira.Sprint) time.Time {
	if sprint.StartDate == nil {
		return time.Time{}
	}
	return sprint.StartDate.Time
}
