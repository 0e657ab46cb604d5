package jira

import "time"

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func floatPtr(v float64) *float64 { return &v }

type issueOption func(*Issue)

func withType(name string) issueOption {
	return func(i *Issue) { i.Fields.IssueType.Name = name }
}

func withStatus(name, categoryKey string) issueOption {
	return func(i *Issue) {
		i.Fields.Status.Name = name
		i.Fields.Status.StatusCategory.Key = categoryKey
	}
}

func withPoints(v float64) issueOption {
	return func(i *Issue) { i.Fields.Points10016 = floatPtr(v) }
}

func withAssignee(displayName string) issueOption {
	return func(i *Issue) {
		i.Fields.Assignee = &Assignee{DisplayName: displayName}
	}
}

func withLabels(labels ...string) issueOption {
	return func(i *Issue) { i.Fields.Labels = labels }
}

func withCreated(t time.Time) issueOption {
	return func(i *Issue) { i.Fields.Created = Timestamp{Time: t} }
}

func withUpdated(t time.Time) issueOption {
	return func(i *Issue) { i.Fields.Updated = Timestamp{Time: t} }
}

func makeIssue(key string, opts ...issueOption) Issue {
	issue := Issue{
		ID:  "1000" + key,
		Key: key,
		Fields: Fields{
			Summary:   "work on " + key,
			Status:    Status{Name: "To Do", StatusCategory: StatusCategory{Key: "new"}},
			IssueType: IssueType{Name: "Task"},
			Created:   Timestamp{Time: testNow.AddDate(0, 0, -10)},
			Updated:   Timestamp{Time: testNow.AddDate(0, 0, -1)},
		},
	}
	for _, opt := range opts {
		opt(&issue)
	}
	return issue
}
