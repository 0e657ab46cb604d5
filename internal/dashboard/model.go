// Package dashboard assembles the team metrics served by the API: it
// orchestrates the GitHub, Jira and Copilot fetches through the cache
// and folds their analytics into per-developer records.
package dashboard

import (
	"strings"
	"time"

	githubmodel "github.com/chuehnone/developers-dashboard/internal/github/model"
	"github.com/chuehnone/developers-dashboard/internal/jira"
)

// TimeRange selects the analysis window.
type TimeRange string

// Supported time ranges.
const (
	RangeSprint  TimeRange = "sprint"
	RangeMonth   TimeRange = "month"
	RangeQuarter TimeRange = "quarter"
)

// ParseTimeRange normalizes a range query value. Anything unrecognized
// falls back to the sprint window.
func ParseTimeRange(raw string) TimeRange {
	switch TimeRange(strings.ToLower(raw)) {
	case RangeMonth:
		return RangeMonth
	case RangeQuarter:
		return RangeQuarter
	default:
		return RangeSprint
	}
}

// Days returns the window length in days.
func (r TimeRange) Days() int {
	switch r {
	case RangeMonth:
		return 30
	case RangeQuarter:
		return 90
	default:
		return 14
	}
}

// Role is a developer's team role, derived from org team membership.
type Role string

// Known roles. Team names outside the known set map to RoleOther.
const (
	RoleFrontend  Role = "Frontend"
	RoleBackend   Role = "Backend"
	RoleFullstack Role = "Fullstack"
	RoleDevOps    Role = "DevOps"
	RoleOther     Role = "Other"
)

// RoleFromTeam derives a role from a team name, matching
// case-insensitively.
func RoleFromTeam(teamName string) Role {
	switch strings.ToLower(teamName) {
	case "frontend":
		return RoleFrontend
	case "backend":
		return RoleBackend
	case "fullstack":
		return RoleFullstack
	case "devops":
		return RoleDevOps
	default:
		return RoleOther
	}
}

// Developer statuses shown on the dashboard.
const (
	StatusShipping = "Shipping"
	StatusOnLeave  = "On Leave"
)

// Developer identifies one org member.
type Developer struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// DeveloperMetric is the full per-developer dashboard record.
type DeveloperMetric struct {
	Developer     Developer                 `json:"developer"`
	Github        githubmodel.GithubStats   `json:"github"`
	Jira          *jira.JiraStats           `json:"jira,omitempty"`
	ActivityTrend []githubmodel.ActivityDay `json:"activity_trend"`
	ImpactScore   int                       `json:"impact_score"`
	Status        string                    `json:"status"`
}

// DeveloperDetail is the drill-down view for one developer: who
// commented on their pull requests, where they commented, and what they
// authored.
type DeveloperDetail struct {
	Developer     Developer                        `json:"developer"`
	Comments      githubmodel.CommentAnalysis      `json:"comments"`
	CommentsGiven githubmodel.CommentGivenAnalysis `json:"comments_given"`
	PullRequests  githubmodel.PRCreatedAnalysis    `json:"pull_requests"`
	TimeRange     TimeRange                        `json:"time_range"`
	GeneratedAt   time.Time                        `json:"generated_at"`
}

// DashboardSummary is the team rollup shown above the developer table.
type DashboardSummary struct {
	TotalPRsMerged    int     `json:"total_prs_merged"`
	AvgCycleTimeHours float64 `json:"avg_cycle_time_hours"`
	CycleTimeTrend    float64 `json:"cycle_time_trend"`
	PRsTrend          float64 `json:"prs_trend"`
}

// MetricsResponse is the main dashboard payload.
type MetricsResponse struct {
	Developers  []DeveloperMetric `json:"developers"`
	Summary     DashboardSummary  `json:"summary"`
	TimeRange   TimeRange         `json:"time_range"`
	GeneratedAt time.Time         `json:"generated_at"`
}
