// Package mapper converts between GitHub API models, domain models and transport DTOs.
package mapper

import (
	"pr-review-status/internal/entities"
	"pr-review-status/internal/transport/http/dto"

	"github.com/google/go-github/v71/github"
)

// FromGitHubUser maps a GitHub account. Returns nil for a nil input.
func FromGitHubUser(u *github.User) *entities.User {
	if u == nil {
		return nil
	}
	return &entities.User{
		ID:      u.GetID(),
		Login:   u.GetLogin(),
		HTMLURL: u.GetHTMLURL(),
	}
}

// FromGitHubPull builds an entities.PullRequest from the REST model.
func FromGitHubPull(pr *github.PullRequest) entities.PullRequest {
	var author entities.User
	if u := FromGitHubUser(pr.GetUser()); u != nil {
		author = *u
	}

	return entities.PullRequest{
		Number:    pr.GetNumber(),
		Title:     pr.GetTitle(),
		HTMLURL:   pr.GetHTMLURL(),
		Author:    author,
		Draft:     pr.GetDraft(),
		Mergeable: entities.MergeableFromPtr(pr.Mergeable),
		CreatedAt: pr.GetCreatedAt().Time,
		HeadSHA:   pr.GetHead().GetSHA(),
	}
}

// FromGitHubPulls maps a page of pull requests, skipping nil entries.
func FromGitHubPulls(list []*github.PullRequest) []entities.PullRequest {
	res := make([]entities.PullRequest, 0, len(list))
	for _, pr := range list {
		if pr == nil {
			continue
		}
		res = append(res, FromGitHubPull(pr))
	}
	return res
}

// FromGitHubReview maps a submitted review.
func FromGitHubReview(r *github.PullRequestReview) entities.Review {
	return entities.Review{
		ID:          r.GetID(),
		Author:      FromGitHubUser(r.User),
		State:       entities.ReviewState(r.GetState()),
		SubmittedAt: r.GetSubmittedAt().Time,
	}
}

// FromGitHubCheckRun maps a check run.
func FromGitHubCheckRun(c *github.CheckRun) entities.CheckRun {
	return entities.CheckRun{
		Name:       c.GetName(),
		Status:     c.GetStatus(),
		Conclusion: c.GetConclusion(),
	}
}

// ToStatus maps a stored record to transport model.
func ToStatus(r entities.StatusRecord) dto.Status {
	return dto.Status{
		RunID:             r.RunID.String(),
		Repository:        r.Repository,
		PullNumber:        r.PullNumber,
		Status:            string(r.Status),
		Approvals:         r.Decision.Approvals,
		ChangesRequested:  r.Decision.ChangesRequested,
		UnresolvedThreads: r.Decision.UnresolvedThreads,
		ThreadsComplete:   r.Decision.ThreadsComplete,
		RecordedAt:        r.RecordedAt,
	}
}
