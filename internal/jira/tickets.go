package jira

import (
	"math"
	"strings"
	"time"
)

// defaultStuckAfterDays is how long a ticket may sit in progress or in
// review before it reads as stuck.
const defaultStuckAfterDays = 3

// boardStatuses is the whitelist of statuses the board view shows.
// Anything outside it falls back to the to-do column.
var boardStatuses = map[string]struct{}{
	TicketStatusTodo:       {},
	TicketStatusInProgress: {},
	TicketStatusReview:     {},
	TicketStatusDone:       {},
}

// flaggedLabels mark a ticket as blocked.
var flaggedLabels = map[string]struct{}{
	"blocked":    {},
	"impediment": {},
}

// techDebtLabels mark a ticket as technical debt work regardless of its
// issue type.
var techDebtLabels = map[string]struct{}{
	"tech-debt":      {},
	"technical-debt": {},
}

// ToTicket projects an issue into its board view shape.
func ToTicket(issue Issue, now time.Time) Ticket {
	status := issue.Fields.Status.Name
	if _, ok := boardStatuses[status]; !ok {
		status = TicketStatusTodo
	}

	assignee := ""
	if issue.Fields.Assignee != nil {
		assignee = issue.Fields.Assignee.DisplayName
	}

	return Ticket{
		Key:          issue.Key,
		Summary:      issue.Fields.Summary,
		Status:       status,
		Assignee:     assignee,
		Type:         NormalizeType(issue.Fields.IssueType.Name),
		StoryPoints:  StoryPoints(issue),
		DaysInStatus: daysSince(issue.Fields.Updated.Time, now),
		Flagged:      hasAnyLabel(issue, flaggedLabels),
	}
}

// StuckTickets returns the in-flight tickets that have not moved for at
// least stuckAfterDays days.
func StuckTickets(issues []Issue, stuckAfterDays int, now time.Time) []Ticket {
	if stuckAfterDays <= 0 {
		stuckAfterDays = defaultStuckAfterDays
	}

	var stuck []Ticket
	for _, issue := range issues {
		name := issue.Fields.Status.Name
		if !strings.EqualFold(name, TicketStatusInProgress) && !strings.EqualFold(name, TicketStatusReview) {
			continue
		}
		if daysSince(issue.Fields.Updated.Time, now) >= stuckAfterDays {
			stuck = append(stuck, ToTicket(issue, now))
		}
	}
	return stuck
}

// UserStats rolls up one developer's sprint delivery from the issues
// assigned to them.
func UserStats(issues []Issue, developerID string, displayName string) JiraStats {
	stats := JiraStats{DeveloperID: developerID}

	for _, issue := range issues {
		if issue.Fields.Assignee == nil || !strings.EqualFold(issue.Fields.Assignee.DisplayName, displayName) {
			continue
		}

		isTechDebt := issue.Fields.IssueType.Name == "Technical Debt" || hasAnyLabel(issue, techDebtLabels)
		if isTechDebt {
			stats.TechDebtTickets++
		}

		if !issue.Done() {
			stats.ActiveTickets++
			continue
		}

		stats.Velocity += StoryPoints(issue)
		switch NormalizeType(issue.Fields.IssueType.Name) {
		case TypeBug:
			stats.BugsFixed++
		case TypeStory:
			stats.FeaturesCompleted++
		}
	}
	return stats
}

func hasAnyLabel(issue Issue, wanted map[string]struct{}) bool {
	for _, label := range issue.Fields.Labels {
		if _, ok := wanted[strings.ToLower(label)]; ok {
			return true
		}
	}
	return false
}

// daysSince returns the whole days elapsed from t to now, never below
// zero.
func daysSince(t, now time.Time) int {
	if t.IsZero() {
		return 0
	}
	days := int(math.Floor(now.Sub(t).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}
