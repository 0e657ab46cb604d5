package dashboard

import (
	"math"

	githubmodel "github.com/chuehnone/developers-dashboard/internal/github/model"
	"github.com/chuehnone/developers-dashboard/internal/jira"
)

// Impact score weights. Merged work dominates; review participation
// and sprint delivery refine the score when available.
const (
	weightMergedPR       = 5.0
	weightReviewComment  = 0.5
	weightVelocityPoint  = 1.5
	weightBugFixed       = 3.0
	maxImpactScore       = 100
)

// ImpactScore folds a developer's activity into a 0-100 score. The
// Jira contribution only applies when sprint data is available.
func ImpactScore(github githubmodel.GithubStats, jiraStats *jira.JiraStats) int {
	score := float64(github.PRsMerged)*weightMergedPR +
		float64(github.ReviewCommentsGiven)*weightReviewComment

	if jiraStats != nil {
		score += jiraStats.Velocity*weightVelocityPoint +
			float64(jiraStats.BugsFixed)*weightBugFixed
	}

	rounded := int(math.Round(score))
	if rounded > maxImpactScore {
		return maxImpactScore
	}
	return rounded
}

// DeveloperStatus derives the dashboard status badge from merge
// activity in the window.
func DeveloperStatus(github githubmodel.GithubStats) string {
	if github.PRsMerged == 0 {
		return StatusOnLeave
	}
	return StatusShipping
}
