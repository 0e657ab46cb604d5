package jira

// Display categories of normalized issue types.
const (
	TypeStory    = "Story"
	TypeBug      = "Bug"
	TypeTask     = "Task"
	TypeTechDebt = "Tech Debt"
	TypeSupport  = "Support"
)

// typeColors assigns the chart color of each normalized type.
var typeColors = map[string]string{
	TypeStory:    "#3b82f6",
	TypeBug:      "#ef4444",
	TypeTask:     "#8b5cf6",
	TypeTechDebt: "#f59e0b",
	TypeSupport:  "#10b981",
}

const fallbackColor = "#6b7280"

// StoryPoints reads the issue estimate from the first populated story
// point field. Instances place the estimate in different custom fields,
// so the common ones are probed in order.
func StoryPoints(issue Issue) float64 {
	for _, field := range []*float64{
		issue.Fields.Points10016,
		issue.Fields.Points10026,
		issue.Fields.Points10036,
	} {
		if field != nil {
			return *field
		}
	}
	return 0
}

// NormalizeType folds a raw issue type name into one of the dashboard's
// display categories. Unrecognized types read as tasks.
func NormalizeType(raw string) string {
	switch raw {
	case "Story":
		return TypeStory
	case "Bug":
		return TypeBug
	case "Task", "Sub-task":
		return TypeTask
	case "Technical Debt":
		return TypeTechDebt
	case "Support":
		return TypeSupport
	default:
		return TypeTask
	}
}

// TypeColor returns the chart color of a normalized type.
func TypeColor(normalized string) string {
	if color, ok := typeColors[normalized]; ok {
		return color
	}
	return fallbackColor
}
