package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ReviewStatus is the closed set of statuses a PR can be classified into.
type ReviewStatus string

const (
	// StatusDraft marks draft PRs.
	StatusDraft ReviewStatus = "draft"
	// StatusPendingReview marks PRs still waiting for approvals.
	StatusPendingReview ReviewStatus = "pending_review"
	// StatusChangesRequested marks PRs with open objections.
	StatusChangesRequested ReviewStatus = "changes_requested"
	// StatusApproved marks PRs with enough approvals and no objections.
	StatusApproved ReviewStatus = "approved"
)

// Statuses lists every ReviewStatus in display order.
func Statuses() []ReviewStatus {
	return []ReviewStatus{StatusDraft, StatusPendingReview, StatusChangesRequested, StatusApproved}
}

// ParseReviewStatus validates s against the closed set.
func ParseReviewStatus(s string) (ReviewStatus, error) {
	switch st := ReviewStatus(s); st {
	case StatusDraft, StatusPendingReview, StatusChangesRequested, StatusApproved:
		return st, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
}

// StatusGroups buckets items by status, keeping input order inside each bucket.
type StatusGroups[T any] map[ReviewStatus][]T

// Classification is a PR together with its status and the counts behind it.
type Classification struct {
	PullRequest PullRequest
	Status      ReviewStatus
	Decision    ReviewDecision
}

// Report is the summary posted in report mode.
type Report struct {
	Repository  Repository
	Total       int
	Groups      StatusGroups[EnrichedPullRequest]
	StaleDays   int
	GeneratedAt time.Time
}

// StatusRecord is a persisted classification.
type StatusRecord struct {
	RunID      uuid.UUID      `json:"run_id"`
	Repository string         `json:"repository"`
	PullNumber int            `json:"pull_number"`
	Status     ReviewStatus   `json:"status"`
	Decision   ReviewDecision `json:"decision"`
	RecordedAt time.Time      `json:"recorded_at"`
}

// LabelSet holds the label names applied per status. Drafts carry no label.
type LabelSet struct {
	PendingReview    string
	ChangesRequested string
	Approved         string
}

// All returns every managed label.
func (l LabelSet) All() []string {
	return []string{l.PendingReview, l.ChangesRequested, l.Approved}
}
