package jira

import (
	"fmt"
	"strings"
)

// StandardFields lists the issue fields every dashboard search
// requests, story point custom fields included.
var StandardFields = []string{
	"summary",
	"status",
	"issuetype",
	"assignee",
	"created",
	"updated",
	"resolutiondate",
	"labels",
	"customfield_10016",
	"customfield_10026",
	"customfield_10036",
}

// JQLBuilder assembles a JQL query from AND-joined clauses.
type JQLBuilder struct {
	clauses []string
	orderBy string
}

// NewJQL starts an empty query.
func NewJQL() *JQLBuilder {
	return &JQLBuilder{}
}

// Project scopes the query to one project key.
func (b *JQLBuilder) Project(key string) *JQLBuilder {
	b.clauses = append(b.clauses, fmt.Sprintf("project = %q", key))
	return b
}

// CreatedSince keeps issues created within the last days.
func (b *JQLBuilder) CreatedSince(days int) *JQLBuilder {
	if days > 0 {
		b.clauses = append(b.clauses, fmt.Sprintf("created >= -%dd", days))
	}
	return b
}

// UpdatedSince keeps issues updated within the last days.
func (b *JQLBuilder) UpdatedSince(days int) *JQLBuilder {
	if days > 0 {
		b.clauses = append(b.clauses, fmt.Sprintf("updated >= -%dd", days))
	}
	return b
}

// Assignee scopes the query to one assignee.
func (b *JQLBuilder) Assignee(name string) *JQLBuilder {
	b.clauses = append(b.clauses, fmt.Sprintf("assignee = %q", name))
	return b
}

// StatusCategory keeps issues in one status category.
func (b *JQLBuilder) StatusCategory(key string) *JQLBuilder {
	b.clauses = append(b.clauses, fmt.Sprintf("statusCategory = %q", key))
	return b
}

// Sprint scopes the query to one sprint id.
func (b *JQLBuilder) Sprint(id int) *JQLBuilder {
	b.clauses = append(b.clauses, fmt.Sprintf("sprint = %d", id))
	return b
}

// OrderBy sets the sort clause.
func (b *JQLBuilder) OrderBy(field, direction string) *JQLBuilder {
	b.orderBy = fmt.Sprintf("ORDER BY %s %s", field, direction)
	return b
}

// Build renders the query.
func (b *JQLBuilder) Build() string {
	query := strings.Join(b.clauses, " AND ")
	if b.orderBy != "" {
		if query != "" {
			query += " "
		}
		query += b.orderBy
	}
	return query
}

// ProjectIssuesJQL builds the main backlog query of one project over
// the trailing window.
func ProjectIssuesJQL(projectKey string, days int) string {
	return NewJQL().
		Project(projectKey).
		CreatedSince(days).
		OrderBy("created", "DESC").
		Build()
}

// DeveloperIssuesJQL builds the query for one developer's issues over
// the trailing window.
func DeveloperIssuesJQL(projectKey, assignee string, days int) string {
	return NewJQL().
		Project(projectKey).
		Assignee(assignee).
		UpdatedSince(days).
		OrderBy("updated", "DESC").
		Build()
}

// SprintIssuesJQL builds the query for every issue of one sprint.
func SprintIssuesJQL(sprintID int) string {
	return NewJQL().
		Sprint(sprintID).
		OrderBy("created", "ASC").
		Build()
}
