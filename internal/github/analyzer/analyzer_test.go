package analyzer

import (
	"time"

	"github.com/chuehnone/developers-dashboard/internal/github/model"
)

// testNow is the fixed reference time the analyzer tests pin to.
var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func actor(login string) *model.Actor {
	return &model.Actor{Login: login}
}

func timePtr(t time.Time) *time.Time {
	return &t
}

type prOption func(*model.PullRequest)

func withState(state string) prOption {
	return func(pr *model.PullRequest) { pr.State = state }
}

func withMergedAt(t time.Time) prOption {
	return func(pr *model.PullRequest) {
		pr.State = model.StateMerged
		pr.MergedAt = timePtr(t)
	}
}

func withUpdatedAt(t time.Time) prOption {
	return func(pr *model.PullRequest) { pr.UpdatedAt = t }
}

func withCommit(at time.Time) prOption {
	return func(pr *model.PullRequest) {
		pr.Commits.Nodes = append(pr.Commits.Nodes, model.CommitNode{
			Commit: model.Commit{CommittedDate: at},
		})
	}
}

func withReviewEvent(at time.Time) prOption {
	return func(pr *model.PullRequest) {
		pr.TimelineItems.Nodes = append(pr.TimelineItems.Nodes, model.TimelineItem{
			Typename:  "PullRequestReview",
			CreatedAt: at,
		})
	}
}

func withIssueComment(author *model.Actor, at time.Time) prOption {
	return func(pr *model.PullRequest) {
		pr.TimelineItems.Nodes = append(pr.TimelineItems.Nodes, model.TimelineItem{
			Typename:  "IssueComment",
			CreatedAt: at,
			Author:    author,
		})
	}
}

func withComment(author *model.Actor, at time.Time) prOption {
	return func(pr *model.PullRequest) {
		pr.Comments.Nodes = append(pr.Comments.Nodes, model.Comment{
			Author:    author,
			CreatedAt: at,
		})
	}
}

func withReview(author *model.Actor, at time.Time, commentCount int) prOption {
	return func(pr *model.PullRequest) {
		pr.Reviews.Nodes = append(pr.Reviews.Nodes, model.Review{
			Author:    author,
			CreatedAt: at,
			Comments:  model.CommentCount{TotalCount: commentCount},
		})
	}
}

func withSize(additions, deletions int) prOption {
	return func(pr *model.PullRequest) {
		pr.Additions = additions
		pr.Deletions = deletions
	}
}

func withRepository(owner, name string) prOption {
	return func(pr *model.PullRequest) {
		pr.Repository = &model.RepositoryRef{
			Name:  name,
			Owner: model.Actor{Login: owner},
		}
	}
}

func makePR(author string, createdAt time.Time, opts ...prOption) model.PullRequest {
	pr := model.PullRequest{
		ID:        "PR_" + author,
		Number:    1,
		Title:     "change by " + author,
		State:     model.StateOpen,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
		Author:    actor(author),
	}
	for _, opt := range opts {
		opt(&pr)
	}
	return pr
}
