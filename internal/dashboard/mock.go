package dashboard

import (
	"fmt"

	"github.com/chuehnone/developers-dashboard/internal/copilot"
	githubmodel "github.com/chuehnone/developers-dashboard/internal/github/model"
	"github.com/chuehnone/developers-dashboard/internal/jira"
)

// Mock fallback data. Served only when FALLBACK_TO_MOCK is enabled and
// both the upstream fetch and the stale cache came up empty, so a demo
// deployment still renders instead of erroring out.

var mockDevelopers = []struct {
	login, name string
	role        Role
	merged      int
	cycleHours  float64
	velocity    float64
	bugsFixed   int
}{
	{"ana-dev", "Ana Martins", RoleBackend, 6, 28.4, 13, 2},
	{"jsilva", "João Silva", RoleFrontend, 4, 41.0, 8, 1},
	{"mchen", "Mei Chen", RoleFullstack, 7, 19.7, 15, 3},
	{"opetrov", "Oleg Petrov", RoleDevOps, 2, 52.3, 5, 0},
}

func (s *Service) metricsFallback(timeRange TimeRange) func() (MetricsResponse, bool) {
	if !s.fallbackToMock {
		return nil
	}
	return func() (MetricsResponse, bool) {
		developers := make([]DeveloperMetric, 0, len(mockDevelopers))
		for i, dev := range mockDevelopers {
			stats := githubmodel.GithubStats{
				DeveloperID:         dev.login,
				PRsOpened:           dev.merged + 1,
				PRsMerged:           dev.merged,
				AvgCycleTimeHours:   dev.cycleHours,
				ReviewCommentsGiven: 4 + i*3,
			}
			jiraStats := &jira.JiraStats{
				DeveloperID:       dev.login,
				Velocity:          dev.velocity,
				ActiveTickets:     2,
				BugsFixed:         dev.bugsFixed,
				FeaturesCompleted: dev.merged / 2,
			}

			trend := make([]githubmodel.ActivityDay, activityTrendDays)
			for d := range trend {
				trend[d] = githubmodel.ActivityDay{
					Date:  s.now().AddDate(0, 0, d-activityTrendDays+1).UTC().Format("2006-01-02"),
					Count: (i + d) % 3,
				}
			}

			developers = append(developers, DeveloperMetric{
				Developer:     Developer{ID: dev.login, Name: dev.name, Role: dev.role},
				Github:        stats,
				Jira:          jiraStats,
				ActivityTrend: trend,
				ImpactScore:   ImpactScore(stats, jiraStats),
				Status:        DeveloperStatus(stats),
			})
		}

		return MetricsResponse{
			Developers:  developers,
			Summary:     summarize(developers),
			TimeRange:   timeRange,
			GeneratedAt: s.now(),
		}, true
	}
}

func (s *Service) githubFallback() func() (githubmodel.AnalyticsData, bool) {
	if !s.fallbackToMock {
		return nil
	}
	return func() (githubmodel.AnalyticsData, bool) {
		trend := make([]githubmodel.CycleTimeDaily, 14)
		for i := range trend {
			trend[i] = githubmodel.CycleTimeDaily{
				Date:        s.now().AddDate(0, 0, i-13).UTC().Format("2006-01-02"),
				CodingHours: 6 + float64(i%4)*2,
				PickupHours: 3 + float64(i%3),
				ReviewHours: 4 + float64(i%5),
			}
			trend[i].TotalHours = trend[i].CodingHours + trend[i].PickupHours + trend[i].ReviewHours
		}

		return githubmodel.AnalyticsData{
			Summary: githubmodel.AnalyticsSummary{
				AvgCycleTimeHours: 31.2,
				AvgPickupHours:    5.4,
				AvgReviewHours:    9.8,
				MergeRate:         72.5,
			},
			CycleTimeTrend: trend,
		}, true
	}
}

func (s *Service) jiraFallback() func() (jira.Analytics, bool) {
	if !s.fallbackToMock {
		return nil
	}
	return func() (jira.Analytics, bool) {
		sprints := make([]jira.SprintMetric, 0, 4)
		for i := 0; i < 4; i++ {
			committed := 30.0 + float64(i)*4
			completed := committed - float64((i%3)*5)
			sprints = append(sprints, jira.SprintMetric{
				SprintID:        100 + i,
				Name:            fmt.Sprintf("Sprint %d", 20+i),
				State:           jira.SprintStateClosed,
				CommittedPoints: committed,
				CompletedPoints: completed,
				AddedPoints:     float64(i * 2),
				SayDoRatio:      int(completed / committed * 100),
			})
		}

		return jira.BuildAnalytics(sprints, nil, s.now()), true
	}
}

func (s *Service) copilotFallback(timeRange TimeRange) func() (copilot.Analytics, bool) {
	if !s.fallbackToMock {
		return nil
	}
	return func() (copilot.Analytics, bool) {
		editor := "vscode"
		seats := make([]copilot.Seat, 0, len(mockDevelopers))
		for i, dev := range mockDevelopers {
			seat := copilot.Seat{CreatedAt: s.now().AddDate(0, -6, 0)}
			if i < 3 {
				activity := s.now().AddDate(0, 0, -i*3)
				seat.LastActivityAt = &activity
				seat.LastActivityEditor = &editor
			}
			seat.Assignee.Login = dev.login
			seats = append(seats, seat)
		}

		resp := copilot.SeatsResponse{TotalSeats: len(seats), Seats: seats}
		return copilot.BuildAnalytics(resp, timeRange.Days(), s.now()), true
	}
}
