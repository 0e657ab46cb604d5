// Package jira analyzes sprint delivery and ticket health for one Jira
// project.
package jira

import (
	"fmt"
	"strings"
	"time"
)

// jiraTimeLayouts are the timestamp formats Jira emits, tried in order.
var jiraTimeLayouts = []string{
	"2006-01-02T15:04:05.000-0700",
	time.RFC3339,
	"2006-01-02",
}

// Timestamp is a Jira timestamp. The REST and Agile APIs disagree on
// formats, so decoding tries each known layout.
type Timestamp struct {
	time.Time
}

// UnmarshalJSON decodes a Jira timestamp string. Null and empty values
// decode to the zero time.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range jiraTimeLayouts {
		parsed, err := time.Parse(layout, raw)
		if err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognized jira timestamp %q", raw)
}

// MarshalJSON encodes the timestamp as RFC 3339.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Format(time.RFC3339) + `"`), nil
}

// StatusCategoryDone is the status category key of finished work.
const StatusCategoryDone = "done"

// StatusCategory is the coarse state grouping Jira attaches to every
// status.
type StatusCategory struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// Status is an issue workflow status.
type Status struct {
	Name           string         `json:"name"`
	StatusCategory StatusCategory `json:"statusCategory"`
}

// IssueType names the issue's type.
type IssueType struct {
	Name string `json:"name"`
}

// Assignee is the user an issue is assigned to.
type Assignee struct {
	DisplayName  string `json:"displayName"`
	EmailAddress string `json:"emailAddress"`
	AccountID    string `json:"accountId"`
}

// Fields carries the issue fields the analyzers read. Story point
// estimates live in an instance-specific custom field, so the three
// common locations are all decoded.
type Fields struct {
	Summary        string     `json:"summary"`
	Status         Status     `json:"status"`
	IssueType      IssueType  `json:"issuetype"`
	Assignee       *Assignee  `json:"assignee"`
	Created        Timestamp  `json:"created"`
	Updated        Timestamp  `json:"updated"`
	ResolutionDate *Timestamp `json:"resolutiondate"`
	Labels         []string   `json:"labels"`
	Points10016    *float64   `json:"customfield_10016"`
	Points10026    *float64   `json:"customfield_10026"`
	Points10036    *float64   `json:"customfield_10036"`
}

// Issue is one Jira issue.
type Issue struct {
	ID     string `json:"id"`
	Key    string `json:"key"`
	Fields Fields `json:"fields"`
}

// Done reports whether the issue's status category marks it finished.
func (i Issue) Done() bool {
	return i.Fields.Status.StatusCategory.Key == StatusCategoryDone
}

// SearchResponse is the issue search payload.
type SearchResponse struct {
	Issues []Issue `json:"issues"`
	Total  int     `json:"total"`
}

// Sprint is one board sprint from the Agile API.
type Sprint struct {
	ID        int        `json:"id"`
	Name      string     `json:"name"`
	State     string     `json:"state"`
	StartDate *Timestamp `json:"startDate"`
	EndDate   *Timestamp `json:"endDate"`
}

// SprintsResponse is the board sprint listing payload.
type SprintsResponse struct {
	Values []Sprint `json:"values"`
}

// Sprint states as reported by the Agile API.
const (
	SprintStateActive = "active"
	SprintStateClosed = "closed"
)
