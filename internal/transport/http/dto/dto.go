// Package dto contains HTTP request and response bodies.
package dto

import "time"

// ErrorCode is a machine readable error kind.
type ErrorCode string

// ErrorCode values.
const (
	BADREQUEST   ErrorCode = "BAD_REQUEST"
	NOTFOUND     ErrorCode = "NOT_FOUND"
	UNAUTHORIZED ErrorCode = "UNAUTHORIZED"
	UPSTREAM     ErrorCode = "UPSTREAM"
	INTERNAL     ErrorCode = "INTERNAL"
)

// ErrorBody is the payload of ErrorResponse.
type ErrorBody struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// ErrorResponse wraps every failed response.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Status is the last recorded classification of a PR.
type Status struct {
	RunID             string    `json:"run_id"`
	Repository        string    `json:"repository"`
	PullNumber        int       `json:"pull_number"`
	Status            string    `json:"status"`
	Approvals         int       `json:"approvals"`
	ChangesRequested  int       `json:"changes_requested"`
	UnresolvedThreads int       `json:"unresolved_threads"`
	ThreadsComplete   bool      `json:"threads_complete"`
	RecordedAt        time.Time `json:"recorded_at"`
}

// WebhookResult describes what a delivery triggered.
type WebhookResult struct {
	Event      string `json:"event"`
	Action     string `json:"action,omitempty"`
	PullNumber int    `json:"pull_number,omitempty"`
	Status     string `json:"status,omitempty"`
	Ignored    bool   `json:"ignored"`
}

// Health is returned by the liveness probe.
type Health struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}
