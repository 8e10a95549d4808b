package entities

import "time"

// ReviewState is the state GitHub reports for a submitted review.
type ReviewState string

// ReviewState values. Other states (PENDING, DISMISSED) are passed through and ignored.
const (
	ReviewStateApproved         ReviewState = "APPROVED"
	ReviewStateCommented        ReviewState = "COMMENTED"
	ReviewStateChangesRequested ReviewState = "CHANGES_REQUESTED"
)

// Decisive reports whether the state counts as a reviewer's vote.
func (s ReviewState) Decisive() bool {
	return s == ReviewStateApproved || s == ReviewStateChangesRequested
}

// Review is one review event. Author is nil for deleted accounts.
type Review struct {
	ID          int64
	Author      *User
	State       ReviewState
	SubmittedAt time.Time
}

// ReviewThread is an inline discussion thread. FirstCommentAuthor is nil when the
// thread has no comments or the author is unknown.
type ReviewThread struct {
	IsResolved         bool
	FirstCommentAuthor *User
}

// ReviewThreadPage is one cursor page of review threads.
type ReviewThreadPage struct {
	Threads     []ReviewThread
	HasNextPage bool
	EndCursor   string
}

// UnresolvedThreads is the outcome of walking all thread pages.
type UnresolvedThreads struct {
	Count int
	// Complete is false when pagination stopped early on a malformed page.
	Complete bool
}

// ReviewDecision holds the counts the classifier works on.
type ReviewDecision struct {
	Approvals         int  `json:"approvals"`
	ChangesRequested  int  `json:"changes_requested"`
	UnresolvedThreads int  `json:"unresolved_threads"`
	ThreadsComplete   bool `json:"threads_complete"`
}
