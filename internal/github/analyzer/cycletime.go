package analyzer

import (
	"time"

	"github.com/chuehnone/developers-dashboard/internal/github/model"
)

// CycleTime computes the coding/pickup/review breakdown for one pull
// request.
//
// Coding runs from the first commit to creation (first commit falls back
// to the creation time when the commit list is empty). Pickup runs from
// creation to the first review event found on the timeline after
// creation; when no review ever happened but the PR merged, the whole
// span from creation to merge counts as pickup and review stays zero.
// Review runs from the first review to merge. Each component is clamped
// to >= 0 independently, so the total can exceed the naive merged-minus-
// created span when coding time predates creation.
func CycleTime(pr model.PullRequest) model.CycleTimeBreakdown {
	createdAt := pr.CreatedAt

	firstCommitAt := createdAt
	if len(pr.Commits.Nodes) > 0 {
		firstCommitAt = pr.Commits.Nodes[0].Commit.CommittedDate
	}

	coding := hoursBetween(firstCommitAt, createdAt)

	var pickup, review float64
	firstReviewAt := firstReviewAfter(pr, createdAt)

	switch {
	case firstReviewAt != nil:
		pickup = hoursBetween(createdAt, *firstReviewAt)
		if pr.MergedAt != nil {
			review = hoursBetween(*firstReviewAt, *pr.MergedAt)
		}
	case pr.MergedAt != nil:
		// No review found: pickup absorbs everything up to merge.
		pickup = hoursBetween(createdAt, *pr.MergedAt)
	}

	coding = clampNonNegative(coding)
	pickup = clampNonNegative(pickup)
	review = clampNonNegative(review)

	return model.CycleTimeBreakdown{
		CodingHours: coding,
		PickupHours: pickup,
		ReviewHours: review,
		TotalHours:  coding + pickup + review,
	}
}

// FirstReviewAt returns the timestamp of the earliest review event after
// the pull request was opened, or nil when none exists.
func FirstReviewAt(pr model.PullRequest) *time.Time {
	return firstReviewAfter(pr, pr.CreatedAt)
}

// firstReviewAfter scans the chronologically ordered timeline for the
// first review event strictly after t.
func firstReviewAfter(pr model.PullRequest, t time.Time) *time.Time {
	for _, item := range pr.TimelineItems.Nodes {
		if item.Kind() != model.EventReview {
			continue
		}
		if item.CreatedAt.After(t) {
			at := item.CreatedAt
			return &at
		}
	}
	return nil
}

// hoursBetween returns the signed duration from a to b in hours.
func hoursBetween(a, b time.Time) float64 {
	return b.Sub(a).Hours()
}

func clampNonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
