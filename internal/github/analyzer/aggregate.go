package analyzer

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/chuehnone/developers-dashboard/internal/github/model"
)

// UserPullRequestStats rolls up one developer's pull request activity
// over the window. Average cycle time covers merged pull requests only;
// review comments count those attached to the developer's reviews on
// other people's pull requests.
func UserPullRequestStats(prs []model.PullRequest, login string, days int, now time.Time) model.GithubStats {
	filtered := FilterByCreationDate(prs, days, now)

	opened := 0
	merged := 0
	var totalHours float64

	for _, pr := range filtered {
		if !pr.AuthoredBy(login) {
			continue
		}
		opened++
		if pr.IsMerged() {
			merged++
			totalHours += CycleTime(pr).TotalHours
		}
	}

	avg := 0.0
	if merged > 0 {
		avg = round1(totalHours / float64(merged))
	}

	reviewComments := 0
	for _, pr := range filtered {
		if pr.AuthoredBy(login) {
			continue
		}
		for _, review := range pr.Reviews.Nodes {
			if review.Author != nil && strings.EqualFold(review.Author.Login, login) {
				reviewComments += review.Comments.TotalCount
			}
		}
	}

	return model.GithubStats{
		DeveloperID:         login,
		PRsOpened:           opened,
		PRsMerged:           merged,
		AvgCycleTimeHours:   avg,
		ReviewCommentsGiven: reviewComments,
	}
}

// PRsCreatedByAuthor lists the pull requests a developer authored in the
// window, newest first.
func PRsCreatedByAuthor(prs []model.PullRequest, login string, days int, now time.Time) model.PRCreatedAnalysis {
	filtered := FilterByCreationDate(prs, days, now)

	var details []model.PRCreatedDetail
	merged := 0
	open := 0

	for _, pr := range filtered {
		if !pr.AuthoredBy(login) {
			continue
		}
		switch pr.State {
		case model.StateMerged:
			merged++
		case model.StateOpen:
			open++
		}

		var milestone *string
		if pr.Milestone != nil {
			title := pr.Milestone.Title
			milestone = &title
		}

		details = append(details, model.PRCreatedDetail{
			PRID:       pr.ID,
			PRNumber:   pr.Number,
			PRTitle:    pr.Title,
			PRURL:      PullRequestURL(pr),
			Repository: pr.RepositoryName(),
			Status:     pr.State,
			Milestone:  milestone,
			CreatedAt:  pr.CreatedAt,
			MergedAt:   pr.MergedAt,
		})
	}

	sort.SliceStable(details, func(i, j int) bool {
		return details[i].CreatedAt.After(details[j].CreatedAt)
	})

	return model.PRCreatedAnalysis{
		DeveloperID:     login,
		TotalPRsCreated: len(details),
		TotalPRsMerged:  merged,
		TotalPRsOpen:    open,
		PRsCreated:      details,
	}
}

// SummarizePullRequest projects a raw pull request into its presentation
// shape.
func SummarizePullRequest(pr model.PullRequest) model.PullRequestSummary {
	firstCommitAt := pr.CreatedAt
	if len(pr.Commits.Nodes) > 0 {
		firstCommitAt = pr.Commits.Nodes[0].Commit.CommittedDate
	}

	return model.PullRequestSummary{
		ID:            pr.ID,
		Title:         pr.Title,
		Author:        pr.AuthorLogin(),
		CreatedAt:     pr.CreatedAt,
		FirstCommitAt: firstCommitAt,
		FirstReviewAt: FirstReviewAt(pr),
		MergedAt:      pr.MergedAt,
		LinesAdded:    pr.Additions,
		LinesDeleted:  pr.Deletions,
		Status:        pr.State,
		URL:           PullRequestURL(pr),
	}
}

// PullRequestURL reconstructs the canonical web URL of a pull request
// from its repository attribution.
func PullRequestURL(pr model.PullRequest) string {
	owner := "unknown"
	if pr.Repository != nil && pr.Repository.Owner.Login != "" {
		owner = pr.Repository.Owner.Login
	}
	return fmt.Sprintf("https://github.com/%s/%s/pull/%d", owner, pr.RepositoryName(), pr.Number)
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
