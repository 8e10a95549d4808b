package domain

import "pr-review-status/internal/entities"

// latestDecisiveReviews keeps the last APPROVED or CHANGES_REQUESTED review of
// every reviewer, in input order. Reviews without an author and reviews by the
// PR author are skipped.
func latestDecisiveReviews(reviews []entities.Review, prAuthorID int64) map[int64]entities.Review {
	latest := make(map[int64]entities.Review)
	for _, r := range reviews {
		if r.Author == nil {
			continue
		}
		if r.Author.ID == prAuthorID {
			continue
		}
		if !r.State.Decisive() {
			continue
		}
		latest[r.Author.ID] = r
	}
	return latest
}

// countDecisions groups reviewer votes by state.
func countDecisions(latest map[int64]entities.Review) (approvals, changesRequested int) {
	for _, r := range latest {
		switch r.State {
		case entities.ReviewStateApproved:
			approvals++
		case entities.ReviewStateChangesRequested:
			changesRequested++
		}
	}
	return approvals, changesRequested
}
