package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/chuehnone/developers-dashboard/internal/copilot"
	githubmodel "github.com/chuehnone/developers-dashboard/internal/github/model"
	"github.com/chuehnone/developers-dashboard/internal/jira"
)

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

type fakeGithub struct {
	prs        []githubmodel.PullRequest
	org        githubmodel.Organization
	prsErr     error
	membersErr error

	// mu guards prCalls against background refreshes.
	mu      sync.Mutex
	prCalls int
}

func (f *fakeGithub) FetchOrgPullRequests(ctx context.Context) ([]githubmodel.PullRequest, error) {
	f.mu.Lock()
	f.prCalls++
	f.mu.Unlock()
	return f.prs, f.prsErr
}

func (f *fakeGithub) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.prCalls
}

func (f *fakeGithub) FetchOrgMembers(ctx context.Context) (githubmodel.Organization, error) {
	return f.org, f.membersErr
}

type fakeJira struct {
	issues       []jira.Issue
	sprints      []jira.Sprint
	sprintIssues map[int][]jira.Issue
	searchErr    error
}

func (f *fakeJira) SearchIssues(ctx context.Context, jql string) ([]jira.Issue, error) {
	return f.issues, f.searchErr
}

func (f *fakeJira) FetchSprints(ctx context.Context) ([]jira.Sprint, error) {
	return f.sprints, nil
}

func (f *fakeJira) FetchSprintIssues(ctx context.Context, sprintID int) ([]jira.Issue, error) {
	return f.sprintIssues[sprintID], nil
}

func (f *fakeJira) ProjectKey() string { return "PROJ" }

type fakeCopilot struct {
	seats copilot.SeatsResponse
	err   error
}

func (f *fakeCopilot) FetchSeats(ctx context.Context) (copilot.SeatsResponse, error) {
	return f.seats, f.err
}

func testOrg() githubmodel.Organization {
	org := githubmodel.Organization{Login: "acme"}
	org.MembersWithRole.Nodes = []githubmodel.Member{
		{Login: "alice", Name: "Alice Doe"},
		{Login: "bob"},
	}
	backend := githubmodel.Team{Name: "Backend"}
	backend.Members.Nodes = []githubmodel.Actor{{Login: "alice"}}
	org.Teams.Nodes = []githubmodel.Team{backend}
	return org
}

func mergedPR(author string, createdAt time.Time, cycleHours int) githubmodel.PullRequest {
	mergedAt := createdAt.Add(time.Duration(cycleHours) * time.Hour)
	return githubmodel.PullRequest{
		ID:        "PR_" + author,
		Number:    1,
		Title:     "change",
		State:     githubmodel.StateMerged,
		CreatedAt: createdAt,
		UpdatedAt: mergedAt,
		MergedAt:  &mergedAt,
		Author:    &githubmodel.Actor{Login: author},
	}
}

func newTestService(t *testing.T, github GithubFetcher, jiraFetcher JiraFetcher, copilotFetcher CopilotFetcher, mock bool) *Service {
	t.Helper()
	service := NewService(github, jiraFetcher, copilotFetcher, newTestStore(t), mock, zap.NewNop().Sugar())
	service.now = func() time.Time { return testNow }
	return service
}

func TestDeveloperMetrics(t *testing.T) {
	ctx := context.Background()

	t.Run("assembles per developer records", func(t *testing.T) {
		github := &fakeGithub{
			prs: []githubmodel.PullRequest{mergedPR("alice", testNow.AddDate(0, 0, -3), 24)},
			org: testOrg(),
		}
		service := newTestService(t, github, nil, &fakeCopilot{}, false)

		got, err := service.DeveloperMetrics(ctx, RangeSprint)
		require.NoError(t, err)
		require.Len(t, got.Developers, 2)

		alice := got.Developers[0]
		assert.Equal(t, "alice", alice.Developer.ID)
		assert.Equal(t, "Alice Doe", alice.Developer.Name)
		assert.Equal(t, RoleBackend, alice.Developer.Role)
		assert.Equal(t, 1, alice.Github.PRsMerged)
		assert.Equal(t, StatusShipping, alice.Status)
		assert.Nil(t, alice.Jira)
		assert.Len(t, alice.ActivityTrend, activityTrendDays)

		bob := got.Developers[1]
		// No display name recorded: login stands in.
		assert.Equal(t, "bob", bob.Developer.Name)
		assert.Equal(t, RoleOther, bob.Developer.Role)
		assert.Equal(t, StatusOnLeave, bob.Status)

		assert.Equal(t, 1, got.Summary.TotalPRsMerged)
		assert.Equal(t, 24.0, got.Summary.AvgCycleTimeHours)
		assert.Equal(t, RangeSprint, got.TimeRange)
	})

	t.Run("jira stats attach when the integration is up", func(t *testing.T) {
		github := &fakeGithub{org: testOrg()}
		issue := jira.Issue{Key: "PROJ-1"}
		issue.Fields.Assignee = &jira.Assignee{DisplayName: "Alice Doe"}
		issue.Fields.Status.StatusCategory.Key = jira.StatusCategoryDone
		issue.Fields.IssueType.Name = "Story"
		points := 5.0
		issue.Fields.Points10016 = &points

		service := newTestService(t, github, &fakeJira{issues: []jira.Issue{issue}}, &fakeCopilot{}, false)

		got, err := service.DeveloperMetrics(ctx, RangeSprint)
		require.NoError(t, err)

		alice := got.Developers[0]
		require.NotNil(t, alice.Jira)
		assert.Equal(t, 5.0, alice.Jira.Velocity)
		assert.Equal(t, 1, alice.Jira.FeaturesCompleted)
	})

	t.Run("jira being down degrades to github only", func(t *testing.T) {
		github := &fakeGithub{org: testOrg()}
		service := newTestService(t, github, &fakeJira{searchErr: errors.New("jira down")}, &fakeCopilot{}, false)

		got, err := service.DeveloperMetrics(ctx, RangeSprint)
		require.NoError(t, err)
		require.Len(t, got.Developers, 2)
		assert.Nil(t, got.Developers[0].Jira)
	})

	t.Run("cached hit is served and refreshed in the background", func(t *testing.T) {
		github := &fakeGithub{org: testOrg()}
		service := newTestService(t, github, nil, &fakeCopilot{}, false)

		_, err := service.DeveloperMetrics(ctx, RangeSprint)
		require.NoError(t, err)
		got, err := service.DeveloperMetrics(ctx, RangeSprint)
		require.NoError(t, err)
		require.Len(t, got.Developers, 2)

		// The second request answers from the cache and triggers a
		// detached refetch to keep the entry warm.
		assert.Eventually(t, func() bool {
			return github.calls() == 2
		}, time.Second, 5*time.Millisecond)
	})

	t.Run("ranges cache independently", func(t *testing.T) {
		github := &fakeGithub{org: testOrg()}
		service := newTestService(t, github, nil, &fakeCopilot{}, false)

		_, err := service.DeveloperMetrics(ctx, RangeSprint)
		require.NoError(t, err)
		_, err = service.DeveloperMetrics(ctx, RangeMonth)
		require.NoError(t, err)

		assert.Equal(t, 2, github.calls())
	})

	t.Run("mock fallback serves demo data when everything fails", func(t *testing.T) {
		fastRetries(t)
		github := &fakeGithub{prsErr: errors.New("github down")}
		service := newTestService(t, github, nil, &fakeCopilot{}, true)

		got, err := service.DeveloperMetrics(ctx, RangeSprint)
		require.NoError(t, err)
		assert.NotEmpty(t, got.Developers)
	})

	t.Run("without mock fallback the failure surfaces", func(t *testing.T) {
		fastRetries(t)
		github := &fakeGithub{prsErr: errors.New("github down")}
		service := newTestService(t, github, nil, &fakeCopilot{}, false)

		_, err := service.DeveloperMetrics(ctx, RangeSprint)
		require.Error(t, err)
	})
}

func TestDeveloperDetail(t *testing.T) {
	ctx := context.Background()

	pr := mergedPR("alice", testNow.AddDate(0, 0, -3), 24)
	pr.Comments.Nodes = []githubmodel.Comment{
		{Author: &githubmodel.Actor{Login: "bob"}, CreatedAt: testNow.AddDate(0, 0, -2)},
	}

	t.Run("bundles the per-developer analyses", func(t *testing.T) {
		github := &fakeGithub{prs: []githubmodel.PullRequest{pr}, org: testOrg()}
		service := newTestService(t, github, nil, &fakeCopilot{}, false)

		got, err := service.DeveloperDetail(ctx, "alice", RangeMonth)
		require.NoError(t, err)

		assert.Equal(t, "Alice Doe", got.Developer.Name)
		assert.Equal(t, RoleBackend, got.Developer.Role)
		assert.Equal(t, 1, got.Comments.TotalComments)
		assert.Equal(t, []githubmodel.CommentAuthorStat{{Login: "bob", Count: 1}}, got.Comments.TopCommenters)
		assert.Equal(t, 1, got.PullRequests.TotalPRsMerged)
		assert.Equal(t, RangeMonth, got.TimeRange)
	})

	t.Run("login outside the org still resolves", func(t *testing.T) {
		github := &fakeGithub{prs: []githubmodel.PullRequest{pr}, org: testOrg()}
		service := newTestService(t, github, nil, &fakeCopilot{}, false)

		got, err := service.DeveloperDetail(ctx, "mallory", RangeSprint)
		require.NoError(t, err)
		assert.Equal(t, "mallory", got.Developer.Name)
		assert.Equal(t, RoleOther, got.Developer.Role)
		assert.Zero(t, got.PullRequests.TotalPRsCreated)
	})

	t.Run("caches per login", func(t *testing.T) {
		github := &fakeGithub{org: testOrg()}
		service := newTestService(t, github, nil, &fakeCopilot{}, false)

		_, err := service.DeveloperDetail(ctx, "alice", RangeSprint)
		require.NoError(t, err)
		_, err = service.DeveloperDetail(ctx, "Alice", RangeSprint)
		require.NoError(t, err)
		_, err = service.DeveloperDetail(ctx, "bob", RangeSprint)
		require.NoError(t, err)

		assert.Equal(t, 2, github.calls())
	})
}

func TestGithubAnalytics(t *testing.T) {
	ctx := context.Background()

	github := &fakeGithub{
		prs: []githubmodel.PullRequest{mergedPR("alice", testNow.AddDate(0, 0, -3), 24)},
		org: testOrg(),
	}
	service := newTestService(t, github, nil, &fakeCopilot{}, false)

	got, err := service.GithubAnalytics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 24.0, got.Summary.AvgCycleTimeHours)
	assert.Equal(t, 100.0, got.Summary.MergeRate)
	assert.Len(t, got.CycleTimeTrend, 14)
}

func TestJiraAnalytics(t *testing.T) {
	ctx := context.Background()

	t.Run("not configured returns a sentinel error", func(t *testing.T) {
		service := newTestService(t, &fakeGithub{}, nil, &fakeCopilot{}, false)

		_, err := service.JiraAnalytics(ctx)
		assert.ErrorIs(t, err, ErrJiraNotConfigured)
	})

	t.Run("scores the recent sprints", func(t *testing.T) {
		start := jira.Timestamp{Time: testNow.AddDate(0, 0, -14)}
		sprint := jira.Sprint{ID: 1, Name: "Sprint 1", State: jira.SprintStateClosed, StartDate: &start}

		issue := jira.Issue{Key: "PROJ-1"}
		issue.Fields.Created = jira.Timestamp{Time: start.AddDate(0, 0, -1)}
		issue.Fields.Status.StatusCategory.Key = jira.StatusCategoryDone
		issue.Fields.IssueType.Name = "Story"
		points := 8.0
		issue.Fields.Points10016 = &points

		jiraFetcher := &fakeJira{
			sprints:      []jira.Sprint{sprint},
			sprintIssues: map[int][]jira.Issue{1: {issue}},
			issues:       []jira.Issue{issue},
		}
		service := newTestService(t, &fakeGithub{}, jiraFetcher, &fakeCopilot{}, false)

		got, err := service.JiraAnalytics(ctx)
		require.NoError(t, err)
		require.Len(t, got.Sprints, 1)
		assert.Equal(t, 8.0, got.Sprints[0].CommittedPoints)
		assert.Equal(t, 100, got.Sprints[0].SayDoRatio)
		assert.Equal(t, 8.0, got.Summary.AvgVelocity)
	})
}

func TestCopilotAnalytics(t *testing.T) {
	ctx := context.Background()

	seat := copilot.Seat{CreatedAt: testNow.AddDate(0, -3, 0)}
	activity := testNow.AddDate(0, 0, -2)
	seat.LastActivityAt = &activity
	seat.Assignee.Login = "alice"

	service := newTestService(t, &fakeGithub{}, nil, &fakeCopilot{
		seats: copilot.SeatsResponse{TotalSeats: 1, Seats: []copilot.Seat{seat}},
	}, false)

	got, err := service.CopilotAnalytics(ctx, RangeSprint)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Summary.ActiveUsers)
	assert.Equal(t, 100.0, got.Summary.AdoptionRate)
	assert.Len(t, got.DailyTrend, RangeSprint.Days())
}
