package analyzer

import (
	"sort"
	"strings"
	"time"

	"github.com/chuehnone/developers-dashboard/internal/github/model"
)

// topCommentersLimit bounds the short list in a received-comment analysis.
const topCommentersLimit = 5

// CommentsOnAuthorPRs analyzes who commented on the pull requests a
// developer authored within the window. Self-comments never count, and
// comments from deleted users are skipped. Commenters are ranked by
// count descending; ties keep discovery order.
func CommentsOnAuthorPRs(prs []model.PullRequest, login string, days int, now time.Time) model.CommentAnalysis {
	filtered := FilterByCreationDate(prs, days, now)

	counts := make(map[string]int)
	var order []string

	tally := func(author *model.Actor, prAuthor string) {
		if author == nil {
			return // deleted user
		}
		commenter := strings.ToLower(author.Login)
		if commenter == prAuthor {
			return
		}
		if _, seen := counts[commenter]; !seen {
			order = append(order, commenter)
		}
		counts[commenter]++
	}

	for _, pr := range filtered {
		if !pr.AuthoredBy(login) {
			continue
		}
		prAuthor := strings.ToLower(pr.AuthorLogin())

		for _, comment := range pr.Comments.Nodes {
			tally(comment.Author, prAuthor)
		}
		for _, item := range pr.TimelineItems.Nodes {
			if item.Kind() != model.EventIssueComment {
				continue
			}
			tally(item.Author, prAuthor)
		}
	}

	commenters := make([]model.CommentAuthorStat, 0, len(order))
	for _, commenter := range order {
		commenters = append(commenters, model.CommentAuthorStat{
			Login: commenter,
			Count: counts[commenter],
		})
	}
	sort.SliceStable(commenters, func(i, j int) bool {
		return commenters[i].Count > commenters[j].Count
	})

	total := 0
	for _, c := range commenters {
		total += c.Count
	}

	top := commenters
	if len(top) > topCommentersLimit {
		top = top[:topCommentersLimit]
	}

	return model.CommentAnalysis{
		DeveloperID:      login,
		TotalComments:    total,
		UniqueCommenters: len(commenters),
		TopCommenters:    top,
		Commenters:       commenters,
	}
}

// CommentsGivenByAuthor analyzes the pull requests a developer commented
// on, excluding their own. Review-attached comment counts, direct
// comments and timeline issue comments all contribute; the latest
// timestamp across the three sources is recorded per pull request.
func CommentsGivenByAuthor(prs []model.PullRequest, login string, days int, now time.Time) model.CommentGivenAnalysis {
	user := strings.ToLower(login)
	filtered := FilterByCreationDate(prs, days, now)

	var commented []model.PRCommentedOn

	for _, pr := range filtered {
		if pr.AuthoredBy(login) {
			continue
		}

		count := 0
		var lastAt time.Time

		for _, review := range pr.Reviews.Nodes {
			if review.Author == nil || !strings.EqualFold(review.Author.Login, user) {
				continue
			}
			count += review.Comments.TotalCount
			if review.CreatedAt.After(lastAt) {
				lastAt = review.CreatedAt
			}
		}

		for _, comment := range pr.Comments.Nodes {
			if comment.Author == nil || !strings.EqualFold(comment.Author.Login, user) {
				continue
			}
			count++
			if comment.CreatedAt.After(lastAt) {
				lastAt = comment.CreatedAt
			}
		}

		for _, item := range pr.TimelineItems.Nodes {
			if item.Kind() != model.EventIssueComment {
				continue
			}
			if item.Author == nil || !strings.EqualFold(item.Author.Login, user) {
				continue
			}
			count++
			if item.CreatedAt.After(lastAt) {
				lastAt = item.CreatedAt
			}
		}

		if count > 0 {
			commented = append(commented, model.PRCommentedOn{
				PR:              SummarizePullRequest(pr),
				CommentCount:    count,
				LastCommentedAt: lastAt,
			})
		}
	}

	sort.SliceStable(commented, func(i, j int) bool {
		return commented[i].CommentCount > commented[j].CommentCount
	})

	total := 0
	for _, c := range commented {
		total += c.CommentCount
	}

	return model.CommentGivenAnalysis{
		DeveloperID:        login,
		TotalCommentsGiven: total,
		TotalPRsCommented:  len(commented),
		PRsCommentedOn:     commented,
	}
}
