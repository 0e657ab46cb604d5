package jira

// Ticket statuses surfaced on the dashboard board view.
const (
	TicketStatusTodo       = "To Do"
	TicketStatusInProgress = "In Progress"
	TicketStatusReview     = "Review"
	TicketStatusDone       = "Done"
)

// Ticket is the board view projection of one issue.
type Ticket struct {
	Key          string  `json:"key"`
	Summary      string  `json:"summary"`
	Status       string  `json:"status"`
	Assignee     string  `json:"assignee"`
	Type         string  `json:"type"`
	StoryPoints  float64 `json:"story_points"`
	DaysInStatus int     `json:"days_in_status"`
	Flagged      bool    `json:"flagged"`
}

// JiraStats is the per-developer sprint delivery rollup.
type JiraStats struct {
	DeveloperID       string  `json:"developer_id"`
	Velocity          float64 `json:"velocity"`
	ActiveTickets     int     `json:"active_tickets"`
	BugsFixed         int     `json:"bugs_fixed"`
	FeaturesCompleted int     `json:"features_completed"`
	TechDebtTickets   int     `json:"tech_debt_tickets"`
}

// SprintMetric is the delivery scoreboard of one sprint.
type SprintMetric struct {
	SprintID        int     `json:"sprint_id"`
	Name            string  `json:"name"`
	State           string  `json:"state"`
	CommittedPoints float64 `json:"committed_points"`
	CompletedPoints float64 `json:"completed_points"`
	AddedPoints     float64 `json:"added_points"`
	SayDoRatio      int     `json:"say_do_ratio"`
}

// InvestmentEntry is one slice of the work investment profile.
type InvestmentEntry struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
	Color string `json:"color"`
}

// Summary aggregates sprint delivery across the analyzed window.
// ScopeCreep is the average story points added mid-sprint.
type Summary struct {
	AvgVelocity float64 `json:"avg_velocity"`
	SayDoRatio  int     `json:"say_do_ratio"`
	ScopeCreep  float64 `json:"scope_creep"`
	BugRate     float64 `json:"bug_rate"`
}

// Analytics is the Jira analytics bundle.
type Analytics struct {
	Summary           Summary           `json:"summary"`
	Sprints           []SprintMetric    `json:"sprints"`
	InvestmentProfile []InvestmentEntry `json:"investment_profile"`
	StuckTickets      []Ticket          `json:"stuck_tickets"`
}
