package analyzer

import (
	"math"
	"sort"
	"time"

	"github.com/chuehnone/developers-dashboard/internal/github/model"
)

// Bounds on the stale pull request age threshold, in days.
const (
	staleThresholdDefault = 7
	staleThresholdMin     = 3
	staleThresholdMax     = 14
)

// trendWindowMax caps the cycle time trend at two weeks of buckets.
const trendWindowMax = 14

// DailyCycleTimeTrend buckets merged pull requests by merge date over
// the trailing window and averages each cycle time component per day.
// Every day of the window gets a bucket, days without merges included.
func DailyCycleTimeTrend(prs []model.PullRequest, days int, now time.Time) []model.CycleTimeDaily {
	if days <= 0 {
		days = trendWindowMax
	}

	type accumulator struct {
		coding, pickup, review, total float64
		count                         int
	}

	start := startOfDay(now).AddDate(0, 0, -(days - 1))
	buckets := make(map[string]*accumulator, days)
	keys := make([]string, 0, days)
	for i := 0; i < days; i++ {
		key := dayKey(start.AddDate(0, 0, i))
		buckets[key] = &accumulator{}
		keys = append(keys, key)
	}

	for _, pr := range prs {
		if !pr.IsMerged() || pr.MergedAt == nil {
			continue
		}
		bucket, ok := buckets[dayKey(*pr.MergedAt)]
		if !ok {
			continue
		}
		breakdown := CycleTime(pr)
		bucket.coding += breakdown.CodingHours
		bucket.pickup += breakdown.PickupHours
		bucket.review += breakdown.ReviewHours
		bucket.total += breakdown.TotalHours
		bucket.count++
	}

	sort.Strings(keys)

	trend := make([]model.CycleTimeDaily, 0, len(keys))
	for _, key := range keys {
		bucket := buckets[key]
		daily := model.CycleTimeDaily{Date: key}
		if bucket.count > 0 {
			n := float64(bucket.count)
			daily.CodingHours = round1(bucket.coding / n)
			daily.PickupHours = round1(bucket.pickup / n)
			daily.ReviewHours = round1(bucket.review / n)
			daily.TotalHours = round1(bucket.total / n)
		}
		trend = append(trend, daily)
	}
	return trend
}

// ActivityTrend counts, for each trailing day, the developer's pull
// requests that received at least one commit that day.
func ActivityTrend(prs []model.PullRequest, login string, days int, now time.Time) []model.ActivityDay {
	if days <= 0 {
		return nil
	}

	trend := make([]model.ActivityDay, 0, days)
	for i := days - 1; i >= 0; i-- {
		dayStart := startOfDay(now).AddDate(0, 0, -i)
		dayEnd := dayStart.AddDate(0, 0, 1).Add(-time.Millisecond)

		count := 0
		for _, pr := range prs {
			if !pr.AuthoredBy(login) {
				continue
			}
			for _, node := range pr.Commits.Nodes {
				committed := node.Commit.CommittedDate
				if !committed.Before(dayStart) && !committed.After(dayEnd) {
					count++
					break
				}
			}
		}

		trend = append(trend, model.ActivityDay{Date: dayKey(dayStart), Count: count})
	}
	return trend
}

// StalePullRequests returns the open pull requests that have seen no
// update for longer than the staleness threshold. The threshold is half
// the analysis window, clamped to [3, 14] days; a non-positive window
// falls back to 7 days.
func StalePullRequests(prs []model.PullRequest, days int, now time.Time) []model.PullRequestSummary {
	threshold := staleThresholdDefault
	if days > 0 {
		threshold = int(math.Floor(float64(days) * 0.5))
		if threshold < staleThresholdMin {
			threshold = staleThresholdMin
		}
		if threshold > staleThresholdMax {
			threshold = staleThresholdMax
		}
	}
	cutoff := now.AddDate(0, 0, -threshold)

	var stale []model.PullRequestSummary
	for _, pr := range prs {
		if pr.State != model.StateOpen {
			continue
		}
		if pr.UpdatedAt.Before(cutoff) {
			stale = append(stale, SummarizePullRequest(pr))
		}
	}
	return stale
}

// ScatterData relates each merged pull request's size to its total cycle
// time, one point per merged pull request.
func ScatterData(prs []model.PullRequest) []model.ScatterPoint {
	var points []model.ScatterPoint
	for _, pr := range prs {
		if !pr.IsMerged() {
			continue
		}
		points = append(points, model.ScatterPoint{
			Size: pr.Additions + pr.Deletions,
			Time: CycleTime(pr).TotalHours,
			PR:   SummarizePullRequest(pr),
		})
	}
	return points
}

// BuildAnalytics assembles the full pull request analytics bundle for
// the window.
func BuildAnalytics(prs []model.PullRequest, days int, now time.Time) model.AnalyticsData {
	filtered := FilterByCreationDate(prs, days, now)

	var sumTotal, sumPickup, sumReview float64
	mergedCount := 0
	for _, pr := range filtered {
		if !pr.IsMerged() {
			continue
		}
		breakdown := CycleTime(pr)
		sumTotal += breakdown.TotalHours
		sumPickup += breakdown.PickupHours
		sumReview += breakdown.ReviewHours
		mergedCount++
	}

	summary := model.AnalyticsSummary{}
	if mergedCount > 0 {
		n := float64(mergedCount)
		summary.AvgCycleTimeHours = round1(sumTotal / n)
		summary.AvgPickupHours = round1(sumPickup / n)
		summary.AvgReviewHours = round1(sumReview / n)
	}
	if len(filtered) > 0 {
		summary.MergeRate = round1(float64(mergedCount) / float64(len(filtered)) * 100)
	}

	window := trendWindowMax
	if days > 0 && days < trendWindowMax {
		window = days
	}

	return model.AnalyticsData{
		Summary:        summary,
		CycleTimeTrend: DailyCycleTimeTrend(filtered, window, now),
		ScatterData:    ScatterData(filtered),
		StalePRs:       StalePullRequests(filtered, days, now),
	}
}
