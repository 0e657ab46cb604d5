package model

import "time"

// CycleTimeBreakdown splits a pull request's life into coding, pickup
// and review phases, in hours. Every component is clamped to >= 0 and
// Total is always the exact sum of the three clamped components.
type CycleTimeBreakdown struct {
	CodingHours float64 `json:"coding_hours"`
	PickupHours float64 `json:"pickup_hours"`
	ReviewHours float64 `json:"review_hours"`
	TotalHours  float64 `json:"total_hours"`
}

// GithubStats is the per-developer pull request rollup.
type GithubStats struct {
	DeveloperID         string  `json:"developer_id"`
	PRsOpened           int     `json:"prs_opened"`
	PRsMerged           int     `json:"prs_merged"`
	AvgCycleTimeHours   float64 `json:"avg_cycle_time_hours"`
	ReviewCommentsGiven int     `json:"review_comments_given"`
}

// PullRequestSummary is the presentation shape of a single pull request.
type PullRequestSummary struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Author        string     `json:"author"`
	CreatedAt     time.Time  `json:"created_at"`
	FirstCommitAt time.Time  `json:"first_commit_at"`
	FirstReviewAt *time.Time `json:"first_review_at"`
	MergedAt      *time.Time `json:"merged_at"`
	LinesAdded    int        `json:"lines_added"`
	LinesDeleted  int        `json:"lines_deleted"`
	Status        string     `json:"status"`
	URL           string     `json:"url"`
}

// ActivityDay is one day bucket of a developer's commit activity.
type ActivityDay struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// CycleTimeDaily is one day bucket of the cycle time trend.
type CycleTimeDaily struct {
	Date        string  `json:"date"`
	CodingHours float64 `json:"coding_hours"`
	PickupHours float64 `json:"pickup_hours"`
	ReviewHours float64 `json:"review_hours"`
	TotalHours  float64 `json:"total_hours"`
}

// ScatterPoint relates a merged pull request's size to its total cycle
// time. Points are emitted at full fidelity, one per merged PR.
type ScatterPoint struct {
	Size int                `json:"size"`
	Time float64            `json:"time"`
	PR   PullRequestSummary `json:"pr"`
}

// AnalyticsSummary aggregates the filtered pull request set.
type AnalyticsSummary struct {
	AvgCycleTimeHours float64 `json:"avg_cycle_time_hours"`
	AvgPickupHours    float64 `json:"avg_pickup_hours"`
	AvgReviewHours    float64 `json:"avg_review_hours"`
	MergeRate         float64 `json:"merge_rate"`
}

// AnalyticsData is the pull request analytics bundle served to the
// presentation layer.
type AnalyticsData struct {
	Summary        AnalyticsSummary     `json:"summary"`
	CycleTimeTrend []CycleTimeDaily     `json:"cycle_time_trend"`
	ScatterData    []ScatterPoint       `json:"scatter_data"`
	StalePRs       []PullRequestSummary `json:"stale_prs"`
}

// CommentAuthorStat counts comments attributed to one login.
type CommentAuthorStat struct {
	Login string `json:"login"`
	Count int    `json:"count"`
}

// CommentAnalysis describes who commented on a developer's pull
// requests, self-comments excluded.
type CommentAnalysis struct {
	DeveloperID      string              `json:"developer_id"`
	TotalComments    int                 `json:"total_comments"`
	UniqueCommenters int                 `json:"unique_commenters"`
	TopCommenters    []CommentAuthorStat `json:"top_commenters"`
	Commenters       []CommentAuthorStat `json:"commenters"`
}

// PRCommentedOn is one pull request a developer commented on.
type PRCommentedOn struct {
	PR              PullRequestSummary `json:"pr"`
	CommentCount    int                `json:"comment_count"`
	LastCommentedAt time.Time          `json:"last_commented_at"`
}

// CommentGivenAnalysis describes the pull requests a developer
// commented on, own pull requests excluded.
type CommentGivenAnalysis struct {
	DeveloperID        string          `json:"developer_id"`
	TotalCommentsGiven int             `json:"total_comments_given"`
	TotalPRsCommented  int             `json:"total_prs_commented_on"`
	PRsCommentedOn     []PRCommentedOn `json:"prs_commented_on"`
}

// PRCreatedDetail is one authored pull request in the creation listing.
type PRCreatedDetail struct {
	PRID       string     `json:"pr_id"`
	PRNumber   int        `json:"pr_number"`
	PRTitle    string     `json:"pr_title"`
	PRURL      string     `json:"pr_url"`
	Repository string     `json:"repository"`
	Status     string     `json:"status"`
	Milestone  *string    `json:"milestone"`
	CreatedAt  time.Time  `json:"created_at"`
	MergedAt   *time.Time `json:"merged_at"`
}

// PRCreatedAnalysis lists the pull requests a developer authored,
// newest first.
type PRCreatedAnalysis struct {
	DeveloperID     string            `json:"developer_id"`
	TotalPRsCreated int               `json:"total_prs_created"`
	TotalPRsMerged  int               `json:"total_prs_merged"`
	TotalPRsOpen    int               `json:"total_prs_open"`
	PRsCreated      []PRCreatedDetail `json:"prs_created"`
}
