// Package repository contains interfaces for the GitHub platform and the status history store.
package repository

import (
	"context"

	"pr-review-status/internal/entities"
)

// LifecycleInterface describes storage startup/shutdown hooks.
type LifecycleInterface interface {
	OnStart(_ context.Context) error
	OnStop(_ context.Context) error
}

// PullRequestInterface exposes PR lookups.
type PullRequestInterface interface {
	GetPullRequest(ctx context.Context, repo entities.Repository, number int) (*entities.PullRequest, error)
	// ListOpenPullRequests returns open PRs ordered by creation time, oldest first.
	ListOpenPullRequests(ctx context.Context, repo entities.Repository) ([]entities.PullRequest, error)
}

// ReviewInterface exposes review listings.
type ReviewInterface interface {
	// ListReviews returns every review of the PR, oldest first.
	ListReviews(ctx context.Context, repo entities.Repository, number int) ([]entities.Review, error)
	// ReviewThreads returns one page of review threads starting after cursor.
	// A page missing its expected structure yields entities.ErrMalformedResponse.
	ReviewThreads(ctx context.Context, repo entities.Repository, number int, cursor string) (*entities.ReviewThreadPage, error)
}

// CheckRunInterface exposes CI checks.
type CheckRunInterface interface {
	ListCheckRuns(ctx context.Context, repo entities.Repository, ref string) ([]entities.CheckRun, error)
}

// LabelInterface exposes label mutation on a PR.
type LabelInterface interface {
	ListLabels(ctx context.Context, repo entities.Repository, number int) ([]string, error)
	AddLabels(ctx context.Context, repo entities.Repository, number int, labels []string) error
	RemoveLabel(ctx context.Context, repo entities.Repository, number int, label string) error
}

// Platform aggregates everything read from or written to GitHub.
type Platform interface {
	PullRequestInterface
	ReviewInterface
	CheckRunInterface
	LabelInterface
}

// StatusHistoryInterface persists classifications.
type StatusHistoryInterface interface {
	SaveStatuses(ctx context.Context, records []entities.StatusRecord) error
	LatestStatus(ctx context.Context, repo string, number int) (*entities.StatusRecord, error)
}
