package domain

import (
	"context"
	"fmt"

	"pr-review-status/internal/entities"
)

// LabelPullRequest classifies the PR and makes its labels match the status.
func (u *Usecase) LabelPullRequest(ctx context.Context, repo entities.Repository, number int) (*entities.Classification, error) {
	c, err := u.ClassifyPullRequest(ctx, repo, number)
	if err != nil {
		return nil, err
	}
	if err := u.applyLabels(ctx, repo, number, c.Status); err != nil {
		return nil, err
	}
	u.record(ctx, repo, []entities.Classification{*c})
	return c, nil
}

// labelChanges returns the labels a PR in status must carry and the ones it must not.
func labelChanges(status entities.ReviewStatus, labels entities.LabelSet) (add, remove []string, err error) {
	switch status {
	case entities.StatusDraft:
		return nil, labels.All(), nil
	case entities.StatusPendingReview:
		return []string{labels.PendingReview}, []string{labels.ChangesRequested, labels.Approved}, nil
	case entities.StatusChangesRequested:
		return []string{labels.ChangesRequested}, []string{labels.PendingReview, labels.Approved}, nil
	case entities.StatusApproved:
		return []string{labels.Approved}, []string{labels.PendingReview, labels.ChangesRequested}, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", entities.ErrUnknownStatus, status)
	}
}

func (u *Usecase) applyLabels(ctx context.Context, repo entities.Repository, number int, status entities.ReviewStatus) error {
	add, remove, err := labelChanges(status, u.settings.Labels)
	if err != nil {
		return err
	}

	current, err := u.platform.ListLabels(ctx, repo, number)
	if err != nil {
		return fmt.Errorf("%w: %w", entities.ErrDelivery, err)
	}
	present := make(map[string]struct{}, len(current))
	for _, l := range current {
		present[l] = struct{}{}
	}

	var missing []string
	for _, l := range add {
		if _, ok := present[l]; !ok {
			missing = append(missing, l)
		}
	}
	if len(missing) > 0 {
		if err := u.platform.AddLabels(ctx, repo, number, missing); err != nil {
			return fmt.Errorf("%w: %w", entities.ErrDelivery, err)
		}
	}

	for _, l := range remove {
		if _, ok := present[l]; !ok {
			continue
		}
		if err := u.platform.RemoveLabel(ctx, repo, number, l); err != nil {
			return fmt.Errorf("%w: %w", entities.ErrDelivery, err)
		}
	}

	u.log.Infow("labels updated", "repository", repo.String(), "pull_number", number, "status", status, "added", missing)
	return nil
}
