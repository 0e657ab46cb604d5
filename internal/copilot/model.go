// Package copilot analyzes GitHub Copilot seat activity for an
// organization.
package copilot

import "time"

// Seat is one Copilot seat assignment as returned by the billing API.
type Seat struct {
	CreatedAt          time.Time  `json:"created_at"`
	LastActivityAt     *time.Time `json:"last_activity_at"`
	LastActivityEditor *string    `json:"last_activity_editor"`
	Assignee           struct {
		Login string `json:"login"`
	} `json:"assignee"`
}

// SeatsResponse is the billing seats listing payload.
type SeatsResponse struct {
	TotalSeats int    `json:"total_seats"`
	Seats      []Seat `json:"seats"`
}

// Seat activity statuses.
const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusNeverUsed = "never_used"
)

// SeatSummary is the per-seat presentation record.
type SeatSummary struct {
	Login             string     `json:"login"`
	LastActivityAt    *time.Time `json:"last_activity_at"`
	Editor            string     `json:"editor"`
	DaysSinceActivity *int       `json:"days_since_activity"`
	Status            string     `json:"status"`
}

// Summary is the organization-wide seat rollup.
type Summary struct {
	TotalSeats           int     `json:"total_seats"`
	ActiveUsers          int     `json:"active_users"`
	InactiveUsers        int     `json:"inactive_users"`
	NeverUsed            int     `json:"never_used"`
	AdoptionRate         float64 `json:"adoption_rate"`
	AvgDaysSinceActivity int     `json:"avg_days_since_activity"`
}

// EditorUsage counts seats whose last activity came from one editor.
type EditorUsage struct {
	Editor     string `json:"editor"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// TrendDay is one day bucket of the seat activity trend.
type TrendDay struct {
	Date      string `json:"date"`
	Active    int    `json:"active"`
	Inactive  int    `json:"inactive"`
	NeverUsed int    `json:"never_used"`
}

// Analytics is the Copilot analytics bundle.
type Analytics struct {
	Summary            Summary       `json:"summary"`
	Seats              []SeatSummary `json:"seats"`
	EditorDistribution []EditorUsage `json:"editor_distribution"`
	DailyTrend         []TrendDay    `json:"daily_trend"`
}
