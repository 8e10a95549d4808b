package githubapi

import (
	"context"
	"fmt"
	"net/http"

	"pr-review-status/internal/entities"
	"pr-review-status/internal/mapper"

	"github.com/google/go-github/v71/github"
)

// GetPullRequest fetches a fresh PR snapshot, including mergeability.
func (g *GitHub) GetPullRequest(ctx context.Context, repo entities.Repository, number int) (*entities.PullRequest, error) {
	pr, _, err := g.client.PullRequests.Get(ctx, repo.Owner, repo.Name, number)
	if err != nil {
		if statusCode(err) == http.StatusNotFound {
			return nil, fmt.Errorf("get pull request #%d: %w", number, entities.ErrPRNotFound)
		}
		return nil, wrap("get pull request", err)
	}
	res := mapper.FromGitHubPull(pr)
	return &res, nil
}

// ListOpenPullRequests returns every open PR, oldest first.
func (g *GitHub) ListOpenPullRequests(ctx context.Context, repo entities.Repository) ([]entities.PullRequest, error) {
	opts := &github.PullRequestListOptions{
		State:       "open",
		Sort:        "created",
		Direction:   "asc",
		ListOptions: github.ListOptions{PerPage: perPage},
	}

	var res []entities.PullRequest
	for {
		page, resp, err := g.client.PullRequests.List(ctx, repo.Owner, repo.Name, opts)
		if err != nil {
			return nil, wrap("list pull requests", err)
		}
		res = append(res, mapper.FromGitHubPulls(page)...)
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	g.log.Debugw("open pull requests listed", "repository", repo.String(), "count", len(res))
	return res, nil
}

// ListReviews returns every submitted review, oldest first.
func (g *GitHub) ListReviews(ctx context.Context, repo entities.Repository, number int) ([]entities.Review, error) {
	opts := &github.ListOptions{PerPage: perPage}

	var res []entities.Review
	for {
		page, resp, err := g.client.PullRequests.ListReviews(ctx, repo.Owner, repo.Name, number, opts)
		if err != nil {
			return nil, wrap("list reviews", err)
		}
		for _, r := range page {
			if r == nil {
				continue
			}
			res = append(res, mapper.FromGitHubReview(r))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return res, nil
}

// ListCheckRuns returns every check run attached to ref.
func (g *GitHub) ListCheckRuns(ctx context.Context, repo entities.Repository, ref string) ([]entities.CheckRun, error) {
	opts := &github.ListCheckRunsOptions{ListOptions: github.ListOptions{PerPage: perPage}}

	var res []entities.CheckRun
	for {
		page, resp, err := g.client.Checks.ListCheckRunsForRef(ctx, repo.Owner, repo.Name, ref, opts)
		if err != nil {
			return nil, wrap("list check runs", err)
		}
		for _, c := range page.CheckRuns {
			if c == nil {
				continue
			}
			res = append(res, mapper.FromGitHubCheckRun(c))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return res, nil
}
