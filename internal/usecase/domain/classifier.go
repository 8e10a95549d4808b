package domain

import "pr-review-status/internal/entities"

type classifierInput struct {
	isDraft           bool
	approvals         int
	changesRequested  int
	unresolvedThreads int
	requiredApprovals int
}

type classifierRule struct {
	name   string
	match  func(in classifierInput) bool
	status entities.ReviewStatus
}

// classifierRules are evaluated top to bottom; the first match wins.
var classifierRules = []classifierRule{
	{
		name:   "draft",
		match:  func(in classifierInput) bool { return in.isDraft },
		status: entities.StatusDraft,
	},
	{
		name: "open objections",
		match: func(in classifierInput) bool {
			return in.changesRequested > 0 || in.unresolvedThreads > 0
		},
		status: entities.StatusChangesRequested,
	},
	{
		name:   "enough approvals",
		match:  func(in classifierInput) bool { return in.approvals >= in.requiredApprovals },
		status: entities.StatusApproved,
	},
	{
		name:   "fallback",
		match:  func(classifierInput) bool { return true },
		status: entities.StatusPendingReview,
	},
}

// Classify maps a PR's review counts to its status. Outstanding change requests
// and unresolved threads win over any number of approvals.
func Classify(isDraft bool, approvals, changesRequested, unresolvedThreads, requiredApprovals int) entities.ReviewStatus {
	in := classifierInput{
		isDraft:           isDraft,
		approvals:         approvals,
		changesRequested:  changesRequested,
		unresolvedThreads: unresolvedThreads,
		requiredApprovals: requiredApprovals,
	}
	for _, rule := range classifierRules {
		if rule.match(in) {
			return rule.status
		}
	}
	return entities.StatusPendingReview
}
