package domain

import (
	"context"
	"fmt"

	"pr-review-status/internal/entities"
)

// BuildReport enriches and classifies every open non-draft PR.
func (u *Usecase) BuildReport(ctx context.Context, repo entities.Repository) (*entities.Report, error) {
	open, err := u.platform.ListOpenPullRequests(ctx, repo)
	if err != nil {
		return nil, fmt.Errorf("open pull requests: %w", err)
	}

	ready := make([]entities.PullRequest, 0, len(open))
	for _, pr := range open {
		if !pr.Draft {
			ready = append(ready, pr)
		}
	}

	enriched, err := runOrdered(ctx, ready, u.settings.Workers,
		func(ctx context.Context, pr entities.PullRequest) (entities.EnrichedPullRequest, error) {
			return u.enrich(ctx, repo, pr.Number)
		})
	if err != nil {
		return nil, err
	}

	groups, classes, err := groupByStatus(ctx, enriched, u.settings.Workers,
		func(ctx context.Context, pr entities.EnrichedPullRequest) (entities.Classification, error) {
			return u.evaluate(ctx, repo, pr.PullRequest)
		})
	if err != nil {
		return nil, err
	}
	u.record(ctx, repo, classes)

	u.log.Infow("report built",
		"repository", repo.String(),
		"open", len(open),
		"total", len(ready),
		"pending_review", len(groups[entities.StatusPendingReview]),
		"changes_requested", len(groups[entities.StatusChangesRequested]),
		"approved", len(groups[entities.StatusApproved]),
	)

	return &entities.Report{
		Repository:  repo,
		Total:       len(ready),
		Groups:      groups,
		StaleDays:   u.settings.StaleDays,
		GeneratedAt: u.settings.Now(),
	}, nil
}
