// Package analyzer provides the pure transform functions that turn raw
// pull request data into per-developer and per-team analytics records.
// Every function reads only its arguments and is safe for concurrent use.
package analyzer

import (
	"time"

	"github.com/chuehnone/developers-dashboard/internal/github/model"
)

// FilterByCreationDate returns the pull requests created within the last
// days. A days value of zero or below disables filtering and returns the
// input unchanged.
func FilterByCreationDate(prs []model.PullRequest, days int, now time.Time) []model.PullRequest {
	if days <= 0 {
		return prs
	}

	cutoff := startOfDay(now).AddDate(0, 0, -days)

	filtered := make([]model.PullRequest, 0, len(prs))
	for _, pr := range prs {
		if !pr.CreatedAt.Before(cutoff) {
			filtered = append(filtered, pr)
		}
	}
	return filtered
}

// startOfDay truncates t to midnight in its own location.
func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// dayKey formats t as the ISO date used for trend bucketing.
func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
