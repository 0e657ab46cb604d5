package copilot

import (
	"math"
	"sort"
	"strings"
	"time"
)

// activityThresholdDays separates active seats from inactive ones. A
// seat whose last activity is at most this many whole days old counts
// as active.
const activityThresholdDays = 7

// editorNames maps raw editor identifiers to display names. Unmapped
// identifiers pass through unchanged.
var editorNames = map[string]string{
	"vscode":       "VS Code",
	"visualstudio": "Visual Studio",
	"jetbrains":    "JetBrains IDEs",
	"intellij":     "IntelliJ IDEA",
	"pycharm":      "PyCharm",
	"webstorm":     "WebStorm",
	"neovim":       "Neovim",
	"vim":          "Vim",
	"emacs":        "Emacs",
	"sublime":      "Sublime Text",
	"atom":         "Atom",
}

// EditorDisplayName resolves a raw editor identifier to its display
// name, matching case-insensitively. A nil editor reads as Unknown.
func EditorDisplayName(editor *string) string {
	if editor == nil || *editor == "" {
		return "Unknown"
	}
	if name, ok := editorNames[strings.ToLower(*editor)]; ok {
		return name
	}
	return *editor
}

// daysSince returns the whole days elapsed from t to now.
func daysSince(t, now time.Time) int {
	return int(math.Floor(now.Sub(t).Hours() / 24))
}

// SeatStatus classifies one seat at the given instant. A seat with no
// recorded activity is never-used regardless of age.
func SeatStatus(seat Seat, now time.Time) string {
	if seat.LastActivityAt == nil {
		return StatusNeverUsed
	}
	// No lower bound: clock-skewed future activity still reads as
	// active.
	if daysSince(*seat.LastActivityAt, now) <= activityThresholdDays {
		return StatusActive
	}
	return StatusInactive
}

// BuildAnalytics computes the full Copilot analytics bundle over the
// trailing window of days.
func BuildAnalytics(resp SeatsResponse, days int, now time.Time) Analytics {
	summaries := make([]SeatSummary, 0, len(resp.Seats))

	active, inactive, neverUsed := 0, 0, 0
	totalDays, withActivity := 0, 0

	for _, seat := range resp.Seats {
		status := SeatStatus(seat, now)
		switch status {
		case StatusActive:
			active++
		case StatusInactive:
			inactive++
		default:
			neverUsed++
		}

		var sinceDays *int
		if seat.LastActivityAt != nil {
			d := daysSince(*seat.LastActivityAt, now)
			sinceDays = &d
			totalDays += d
			withActivity++
		}

		summaries = append(summaries, SeatSummary{
			Login:             seat.Assignee.Login,
			LastActivityAt:    seat.LastActivityAt,
			Editor:            EditorDisplayName(seat.LastActivityEditor),
			DaysSinceActivity: sinceDays,
			Status:            status,
		})
	}

	summary := Summary{
		TotalSeats:    resp.TotalSeats,
		ActiveUsers:   active,
		InactiveUsers: inactive,
		NeverUsed:     neverUsed,
	}
	if resp.TotalSeats > 0 {
		summary.AdoptionRate = math.Round(float64(active)/float64(resp.TotalSeats)*1000) / 10
	}
	if withActivity > 0 {
		summary.AvgDaysSinceActivity = int(math.Round(float64(totalDays) / float64(withActivity)))
	}

	return Analytics{
		Summary:            summary,
		Seats:              summaries,
		EditorDistribution: editorDistribution(resp.Seats),
		DailyTrend:         dailyTrend(resp.Seats, days, now),
	}
}

// editorDistribution counts seats per editor display name, busiest
// first.
func editorDistribution(seats []Seat) []EditorUsage {
	counts := make(map[string]int)
	var order []string
	for _, seat := range seats {
		name := EditorDisplayName(seat.LastActivityEditor)
		if _, seen := counts[name]; !seen {
			order = append(order, name)
		}
		counts[name]++
	}

	usage := make([]EditorUsage, 0, len(order))
	for _, name := range order {
		entry := EditorUsage{Editor: name, Count: counts[name]}
		if len(seats) > 0 {
			entry.Percentage = int(math.Round(float64(entry.Count) / float64(len(seats)) * 100))
		}
		usage = append(usage, entry)
	}
	sort.SliceStable(usage, func(i, j int) bool {
		return usage[i].Count > usage[j].Count
	})
	return usage
}

// dailyTrend replays the activity classification against each trailing
// day. Never-used seats stay constant across the whole trend.
func dailyTrend(seats []Seat, days int, now time.Time) []TrendDay {
	if days <= 0 {
		return nil
	}

	neverUsed := 0
	for _, seat := range seats {
		if seat.LastActivityAt == nil {
			neverUsed++
		}
	}

	year, month, dayOfMonth := now.Date()
	today := time.Date(year, month, dayOfMonth, 0, 0, 0, 0, now.Location())

	trend := make([]TrendDay, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)

		active := 0
		for _, seat := range seats {
			if seat.LastActivityAt == nil {
				continue
			}
			elapsed := daysSince(*seat.LastActivityAt, day)
			if elapsed >= 0 && elapsed <= activityThresholdDays {
				active++
			}
		}

		trend = append(trend, TrendDay{
			Date:      day.UTC().Format("2006-01-02"),
			Active:    active,
			Inactive:  len(seats) - active - neverUsed,
			NeverUsed: neverUsed,
		})
	}
	return trend
}
