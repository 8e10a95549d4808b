package domain

import (
	"context"
	"fmt"

	"pr-review-status/internal/entities"

	"golang.org/x/sync/errgroup"
)

// runOrdered applies fn to every item with at most workers calls in flight and
// returns the results in input order. The first error cancels the rest.
func runOrdered[T, R any](ctx context.Context, items []T, workers int, fn func(context.Context, T) (R, error)) ([]R, error) {
	out := make([]R, len(items))
	if workers <= 1 {
		for i, item := range items {
			r, err := fn(ctx, item)
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, item := range items {
		g.Go(func() error {
			r, err := fn(gctx, item)
			if err != nil {
				return err
			}
			out[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// groupByStatus classifies every item and buckets it by status. Every status
// has a bucket, and items keep their input order inside it. The classifications
// are returned in input order as well.
func groupByStatus[T any](
	ctx context.Context,
	items []T,
	workers int,
	classify func(context.Context, T) (entities.Classification, error),
) (entities.StatusGroups[T], []entities.Classification, error) {
	classes, err := runOrdered(ctx, items, workers, classify)
	if err != nil {
		return nil, nil, err
	}

	groups := make(entities.StatusGroups[T], len(entities.Statuses()))
	for _, st := range entities.Statuses() {
		groups[st] = []T{}
	}
	for i, c := range classes {
		switch c.Status {
		case entities.StatusDraft, entities.StatusPendingReview, entities.StatusChangesRequested, entities.StatusApproved:
			groups[c.Status] = append(groups[c.Status], items[i])
		default:
			return nil, nil, fmt.Errorf("%w: %q", entities.ErrUnknownStatus, c.Status)
		}
	}
	return groups, classes, nil
}
