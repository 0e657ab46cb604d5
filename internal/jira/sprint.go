package jira

import (
	"math"
	"time"
)

// SprintMetrics scores one sprint's delivery. Issues created on or
// before the sprint start count as committed scope; later ones count
// as added scope. Completed points cover every finished issue in the
// sprint regardless of when it joined. Active sprints report a say-do
// ratio of zero since their scope is still in flight.
func SprintMetrics(sprint Sprint, issues []Issue) SprintMetric {
	metric := SprintMetric{
		SprintID: sprint.ID,
		Name:     sprint.Name,
		State:    sprint.State,
	}

	var start time.Time
	if sprint.StartDate != nil {
		start = sprint.StartDate.Time
	}

	for _, issue := range issues {
		points := StoryPoints(issue)
		if !start.IsZero() && issue.Fields.Created.After(start) {
			metric.AddedPoints += points
		} else {
			metric.CommittedPoints += points
		}
		if issue.Done() {
			metric.CompletedPoints += points
		}
	}

	if sprint.State != SprintStateActive && metric.CommittedPoints > 0 {
		metric.SayDoRatio = int(math.Round(metric.CompletedPoints / metric.CommittedPoints * 100))
	}
	return metric
}

// BuildAnalytics assembles the Jira analytics bundle from sprint
// scoreboards and the issue backlog.
func BuildAnalytics(sprints []SprintMetric, issues []Issue, now time.Time) Analytics {
	analytics := Analytics{
		Sprints:           sprints,
		InvestmentProfile: InvestmentProfile(issues),
		StuckTickets:      StuckTickets(issues, defaultStuckAfterDays, now),
	}

	if len(sprints) > 0 {
		var velocity, sayDo, added float64
		for _, sprint := range sprints {
			velocity += sprint.CompletedPoints
			sayDo += float64(sprint.SayDoRatio)
			added += sprint.AddedPoints
		}
		n := float64(len(sprints))
		analytics.Summary.AvgVelocity = round1(velocity / n)
		analytics.Summary.SayDoRatio = int(math.Round(sayDo / n))
		// Scope creep is measured in points added mid-sprint, not as a
		// percentage of committed scope.
		analytics.Summary.ScopeCreep = round1(added / n)
	}

	if len(issues) > 0 {
		bugs := 0
		for _, issue := range issues {
			if NormalizeType(issue.Fields.IssueType.Name) == TypeBug {
				bugs++
			}
		}
		analytics.Summary.BugRate = round1(float64(bugs) / float64(len(issues)) * 100)
	}

	return analytics
}

// InvestmentProfile counts issues by normalized issue type. Every
// issue counts once, estimated or not.
func InvestmentProfile(issues []Issue) []InvestmentEntry {
	counts := make(map[string]int)
	var order []string

	for _, issue := range issues {
		kind := NormalizeType(issue.Fields.IssueType.Name)
		if _, seen := counts[kind]; !seen {
			order = append(order, kind)
		}
		counts[kind]++
	}

	profile := make([]InvestmentEntry, 0, len(order))
	for _, kind := range order {
		profile = append(profile, InvestmentEntry{
			Type:  kind,
			Count: counts[kind],
			Color: TypeColor(kind),
		})
	}
	return profile
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
