package domain

import (
	"context"
	"errors"
	"fmt"

	"pr-review-status/internal/entities"
)

// countUnresolvedThreads walks every review thread page and counts unresolved
// threads not started by the PR author. Threads without a known first comment
// author are ignored. A malformed page ends the walk; the partial count is kept
// and flagged incomplete.
func (u *Usecase) countUnresolvedThreads(
	ctx context.Context,
	repo entities.Repository,
	number int,
	authorLogin string,
) (entities.UnresolvedThreads, error) {
	res := entities.UnresolvedThreads{Complete: true}
	cursor := ""

	for page := 1; ; page++ {
		p, err := u.platform.ReviewThreads(ctx, repo, number, cursor)
		if err != nil {
			if errors.Is(err, entities.ErrMalformedResponse) {
				res.Complete = false
				u.log.Warnw("review threads page malformed, keeping partial count",
					"repository", repo.String(), "pull_number", number, "page", page, "unresolved", res.Count, "error", err)
				return res, nil
			}
			return res, fmt.Errorf("count unresolved threads of #%d: %w", number, err)
		}

		for _, t := range p.Threads {
			if t.FirstCommentAuthor == nil {
				continue
			}
			if t.FirstCommentAuthor.Login == authorLogin {
				continue
			}
			if !t.IsResolved {
				res.Count++
			}
		}

		if !p.HasNextPage {
			return res, nil
		}
		if p.EndCursor == "" || p.EndCursor == cursor {
			res.Complete = false
			u.log.Warnw("review threads cursor did not advance, keeping partial count",
				"repository", repo.String(), "pull_number", number, "page", page, "unresolved", res.Count)
			return res, nil
		}
		cursor = p.EndCursor
	}
}
