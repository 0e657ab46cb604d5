package client

// orgPullRequestsQuery pulls the recent pull requests of the most
// recently pushed repositories, with the commit, review, comment and
// timeline projections the analyzers read.
const orgPullRequestsQuery = `
query OrgPullRequests($org: String!) {
  organization(login: $org) {
    login
    repositories(first: 50, orderBy: {field: PUSHED_AT, direction: DESC}) {
      nodes {
        name
        owner { login }
        pullRequests(first: 20, orderBy: {field: CREATED_AT, direction: DESC}, states: [OPEN, MERGED, CLOSED]) {
          nodes {
            id
            number
            title
            state
            createdAt
            updatedAt
            mergedAt
            closedAt
            additions
            deletions
            author { login }
            milestone { title number state }
            commits(first: 100) {
              nodes { commit { committedDate } }
            }
            reviews(first: 50) {
              nodes {
                author { login }
                createdAt
                state
                comments { totalCount }
              }
            }
            comments(first: 100) {
              nodes { author { login } createdAt }
            }
            timelineItems(first: 100, itemTypes: [PULL_REQUEST_REVIEW, ISSUE_COMMENT]) {
              nodes {
                __typename
                ... on PullRequestReview { createdAt author { login } }
                ... on IssueComment { createdAt author { login } }
              }
            }
          }
        }
      }
    }
  }
}`

// orgMembersQuery pulls members plus team rosters so developers can be
// attributed a role.
const orgMembersQuery = `
query OrgMembers($org: String!) {
  organization(login: $org) {
    login
    membersWithRole(first: 100) {
      nodes { login name }
    }
    teams(first: 50) {
      nodes {
        name
        slug
        members(first: 100) { nodes { login } }
      }
    }
  }
}`
