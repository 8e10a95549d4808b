package domain

import (
	"context"
	"fmt"

	"pr-review-status/internal/entities"

	"github.com/google/uuid"
)

// record stores the classifications of one run. Failures are only logged.
func (u *Usecase) record(ctx context.Context, repo entities.Repository, classes []entities.Classification) {
	if u.history == nil || len(classes) == 0 {
		return
	}

	runID := uuid.New()
	now := u.settings.Now()
	records := make([]entities.StatusRecord, 0, len(classes))
	for _, c := range classes {
		records = append(records, entities.StatusRecord{
			RunID:      runID,
			Repository: repo.String(),
			PullNumber: c.PullRequest.Number,
			Status:     c.Status,
			Decision:   c.Decision,
			RecordedAt: now,
		})
	}

	ctx, cancel := withTimeout(ctx, u.settings.StoreTimeout)
	defer cancel()

	if err := u.history.SaveStatuses(ctx, records); err != nil {
		u.log.Warnw("failed to record statuses", "repository", repo.String(), "run_id", runID, "error", err)
	}
}

// LatestStatus returns the last recorded status of a PR.
func (u *Usecase) LatestStatus(ctx context.Context, repo entities.Repository, number int) (*entities.StatusRecord, error) {
	if number <= 0 {
		return nil, fmt.Errorf("%w: pull number must be positive", entities.ErrInvalidArgument)
	}
	if u.history == nil {
		return nil, entities.ErrStatusNotFound
	}

	ctx, cancel := withTimeout(ctx, u.settings.StoreTimeout)
	defer cancel()
	return u.history.LatestStatus(ctx, repo.String(), number)
}
