package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pr-review-status/internal/entities"
	"pr-review-status/pkg/poll"
)

// enrich re-fetches the PR until GitHub reports mergeability, then derives the
// report flags. When polling runs out the last snapshot is used and the PR is
// treated as free of conflicts.
func (u *Usecase) enrich(ctx context.Context, repo entities.Repository, number int) (entities.EnrichedPullRequest, error) {
	var last *entities.PullRequest

	attempts, err := u.settings.Mergeable.Do(ctx, func(ctx context.Context, _ int) (bool, error) {
		pr, err := u.platform.GetPullRequest(ctx, repo, number)
		if err != nil {
			return false, err
		}
		last = pr
		return pr.Mergeable.Known(), nil
	})

	resolved := true
	switch {
	case errors.Is(err, poll.ErrExhausted):
		resolved = false
		u.log.Warnw("mergeability still unknown, assuming no conflicts",
			"repository", repo.String(), "pull_number", number, "attempts", attempts)
	case err != nil:
		return entities.EnrichedPullRequest{}, fmt.Errorf("poll pull request #%d: %w", number, err)
	}

	runs, err := u.platform.ListCheckRuns(ctx, repo, last.HeadSHA)
	if err != nil {
		return entities.EnrichedPullRequest{}, fmt.Errorf("check runs of #%d: %w", number, err)
	}

	return entities.EnrichedPullRequest{
		PullRequest:       *last,
		HasBuildFailure:   hasBuildFailure(runs),
		HasMergeConflicts: last.Mergeable == entities.MergeableFalse,
		IsStale:           isStale(last.CreatedAt, u.settings.Now(), u.settings.StaleDays),
		MergeableResolved: resolved,
	}, nil
}

func hasBuildFailure(runs []entities.CheckRun) bool {
	for _, r := range runs {
		if r.Failed() {
			return true
		}
	}
	return false
}

func isStale(createdAt, now time.Time, staleDays int) bool {
	return createdAt.Before(now.AddDate(0, 0, -staleDays))
}
