// Package domain contains application services classifying pull requests by review status.
package domain

import (
	"context"
	"fmt"

	"pr-review-status/internal/entities"
)

// ClassifyPullRequest fetches the PR and computes its review status.
func (u *Usecase) ClassifyPullRequest(ctx context.Context, repo entities.Repository, number int) (*entities.Classification, error) {
	if number <= 0 {
		return nil, fmt.Errorf("%w: pull number must be positive", entities.ErrInvalidArgument)
	}

	pr, err := u.platform.GetPullRequest(ctx, repo, number)
	if err != nil {
		return nil, err
	}
	c, err := u.evaluate(ctx, repo, *pr)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// evaluate runs the aggregator and the thread counter and classifies the result.
// Drafts are classified without looking at reviews.
func (u *Usecase) evaluate(ctx context.Context, repo entities.Repository, pr entities.PullRequest) (entities.Classification, error) {
	if pr.Draft {
		return entities.Classification{
			PullRequest: pr,
			Status:      Classify(true, 0, 0, 0, u.settings.RequiredApprovals),
			Decision:    entities.ReviewDecision{ThreadsComplete: true},
		}, nil
	}

	reviews, err := u.platform.ListReviews(ctx, repo, pr.Number)
	if err != nil {
		return entities.Classification{}, fmt.Errorf("reviews of #%d: %w", pr.Number, err)
	}
	approvals, changesRequested := countDecisions(latestDecisiveReviews(reviews, pr.Author.ID))

	threads, err := u.countUnresolvedThreads(ctx, repo, pr.Number, pr.Author.Login)
	if err != nil {
		return entities.Classification{}, err
	}

	decision := entities.ReviewDecision{
		Approvals:         approvals,
		ChangesRequested:  changesRequested,
		UnresolvedThreads: threads.Count,
		ThreadsComplete:   threads.Complete,
	}
	status := Classify(false, approvals, changesRequested, threads.Count, u.settings.RequiredApprovals)

	u.log.Infow("pull request classified",
		"repository", repo.String(),
		"pull_number", pr.Number,
		"status", status,
		"approvals", approvals,
		"changes_requested", changesRequested,
		"unresolved_threads", threads.Count,
		"threads_complete", threads.Complete,
	)

	return entities.Classification{PullRequest: pr, Status: status, Decision: decision}, nil
}
