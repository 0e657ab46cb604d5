// Package model provides GitHub API response shapes and derived
// analytics records for the pull-request pipeline.
package model

import (
	"strings"
	"time"
)

// Pull request states as reported by the GraphQL API.
const (
	StateOpen   = "OPEN"
	StateMerged = "MERGED"
	StateClosed = "CLOSED"
)

// Actor is a minimal GitHub user reference. Deleted users appear as
// null actors in API responses, so actors are carried as pointers
// wherever the API may omit them.
type Actor struct {
	Login string `json:"login"`
}

// Commit carries the single commit field the pipeline reads.
type Commit struct {
	CommittedDate time.Time `json:"committedDate"`
}

// CommitNode wraps a commit in the GraphQL connection shape.
type CommitNode struct {
	Commit Commit `json:"commit"`
}

// CommitConnection is a GraphQL commit connection.
type CommitConnection struct {
	Nodes []CommitNode `json:"nodes"`
}

// CommentCount is the totalCount projection of a comment connection.
type CommentCount struct {
	TotalCount int `json:"totalCount"`
}

// Review is a pull request review with its attached comment count.
type Review struct {
	Author    *Actor       `json:"author"`
	CreatedAt time.Time    `json:"createdAt"`
	State     string       `json:"state"`
	Comments  CommentCount `json:"comments"`
}

// ReviewConnection is a GraphQL review connection.
type ReviewConnection struct {
	Nodes []Review `json:"nodes"`
}

// Comment is a direct pull request discussion comment.
type Comment struct {
	Author    *Actor    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

// CommentConnection is a GraphQL comment connection.
type CommentConnection struct {
	Nodes []Comment `json:"nodes"`
}

// EventKind classifies a timeline item once, at the parse boundary, so
// downstream logic never re-checks the raw typename string.
type EventKind int

// Timeline event kinds.
const (
	EventUnknown EventKind = iota
	EventReview
	EventIssueComment
)

// TimelineItem is a raw timeline entry. Items the pipeline does not
// understand classify as EventUnknown and are ignored.
type TimelineItem struct {
	Typename  string    `json:"__typename"`
	CreatedAt time.Time `json:"createdAt"`
	Author    *Actor    `json:"author"`
}

// Kind classifies the timeline item.
func (t TimelineItem) Kind() EventKind {
	switch t.Typename {
	case "PullRequestReview":
		return EventReview
	case "IssueComment":
		return EventIssueComment
	default:
		return EventUnknown
	}
}

// TimelineConnection is a GraphQL timeline connection.
type TimelineConnection struct {
	Nodes []TimelineItem `json:"nodes"`
}

// Milestone is a pull request milestone reference.
type Milestone struct {
	Title  string `json:"title"`
	Number int    `json:"number"`
	State  string `json:"state"`
}

// RepositoryRef names the repository a pull request belongs to. It is
// attached while flattening the org response, since nested pull
// requests do not carry their repository.
type RepositoryRef struct {
	Name  string `json:"name"`
	Owner Actor  `json:"owner"`
}

// PullRequest is the raw pull request shape consumed by every analyzer.
type PullRequest struct {
	ID            string             `json:"id"`
	Number        int                `json:"number"`
	Title         string             `json:"title"`
	State         string             `json:"state"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
	MergedAt      *time.Time         `json:"mergedAt"`
	ClosedAt      *time.Time         `json:"closedAt"`
	Additions     int                `json:"additions"`
	Deletions     int                `json:"deletions"`
	Milestone     *Milestone         `json:"milestone"`
	Author        *Actor             `json:"author"`
	Reviews       ReviewConnection   `json:"reviews"`
	Comments      CommentConnection  `json:"comments"`
	TimelineItems TimelineConnection `json:"timelineItems"`
	Commits       CommitConnection   `json:"commits"`
	Repository    *RepositoryRef     `json:"repository"`
}

// AuthorLogin returns the author login, or "" for deleted users.
func (pr PullRequest) AuthorLogin() string {
	if pr.Author == nil {
		return ""
	}
	return pr.Author.Login
}

// AuthoredBy reports whether the pull request was authored by login.
// Login comparison is case-insensitive everywhere in the pipeline.
func (pr PullRequest) AuthoredBy(login string) bool {
	return pr.Author != nil && strings.EqualFold(pr.Author.Login, login)
}

// IsMerged reports whether the pull request reached the merged state.
func (pr PullRequest) IsMerged() bool {
	return pr.State == StateMerged
}

// RepositoryName returns the attributed repository name, or "unknown".
func (pr PullRequest) RepositoryName() string {
	if pr.Repository == nil || pr.Repository.Name == "" {
		return "unknown"
	}
	return pr.Repository.Name
}

// RepositoryNode is an org repository with its pull requests.
type RepositoryNode struct {
	Name         string `json:"name"`
	Owner        *Actor `json:"owner"`
	PullRequests struct {
		Nodes []PullRequest `json:"nodes"`
	} `json:"pullRequests"`
}

// Member is an organization member.
type Member struct {
	Login string `json:"login"`
	Name  string `json:"name"`
}

// Team is an organization team with its member logins.
type Team struct {
	Name    string `json:"name"`
	Slug    string `json:"slug"`
	Members struct {
		Nodes []Actor `json:"nodes"`
	} `json:"members"`
}

// Organization is the org projection used by the dashboard queries.
type Organization struct {
	Login        string `json:"login"`
	Repositories struct {
		Nodes []RepositoryNode `json:"nodes"`
	} `json:"repositories"`
	MembersWithRole struct {
		Nodes []Member `json:"nodes"`
	} `json:"membersWithRole"`
	Teams struct {
		Nodes []Team `json:"nodes"`
	} `json:"teams"`
}

// OrgPullRequestsResponse is the org pull requests query payload.
type OrgPullRequestsResponse struct {
	Organization Organization `json:"organization"`
}

// OrgMembersResponse is the org members and teams query payload.
type OrgMembersResponse struct {
	Organization Organization `json:"organization"`
}
