// Package entities contains core business entities.
package entities

import (
	"fmt"
	"strings"
	"time"
)

// Repository identifies a GitHub repository.
type Repository struct {
	Owner string
	Name  string
}

// ParseRepository splits "owner/name".
func ParseRepository(fullName string) (Repository, error) {
	owner, name, ok := strings.Cut(strings.TrimSpace(fullName), "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return Repository{}, fmt.Errorf("%w: repository %q must be owner/name", ErrInvalidArgument, fullName)
	}
	return Repository{Owner: owner, Name: name}, nil
}

func (r Repository) String() string {
	return r.Owner + "/" + r.Name
}

// User is a GitHub account.
type User struct {
	ID      int64
	Login   string
	HTMLURL string
}

// Mergeable is the tri-state mergeability GitHub computes asynchronously.
type Mergeable int

const (
	// MergeableUnknown means GitHub has not finished computing mergeability.
	MergeableUnknown Mergeable = iota
	// MergeableTrue means the PR merges cleanly.
	MergeableTrue
	// MergeableFalse means the PR has conflicts.
	MergeableFalse
)

// MergeableFromPtr maps GitHub's nullable boolean.
func MergeableFromPtr(v *bool) Mergeable {
	switch {
	case v == nil:
		return MergeableUnknown
	case *v:
		return MergeableTrue
	default:
		return MergeableFalse
	}
}

// Known reports whether mergeability has been computed.
func (m Mergeable) Known() bool {
	return m != MergeableUnknown
}

func (m Mergeable) String() string {
	switch m {
	case MergeableTrue:
		return "true"
	case MergeableFalse:
		return "false"
	default:
		return "unknown"
	}
}

// PullRequest is a snapshot of a PR as fetched from GitHub.
type PullRequest struct {
	Number    int
	Title     string
	HTMLURL   string
	Author    User
	Draft     bool
	Mergeable Mergeable
	CreatedAt time.Time
	HeadSHA   string
}

// EnrichedPullRequest carries the derived report flags.
type EnrichedPullRequest struct {
	PullRequest
	HasBuildFailure   bool
	HasMergeConflicts bool
	IsStale           bool
	// MergeableResolved is false when polling gave up before GitHub computed mergeability.
	MergeableResolved bool
}

// CheckRun is a CI check attached to a commit.
type CheckRun struct {
	Name       string
	Status     string
	Conclusion string
}

// Completed reports whether the check finished.
func (c CheckRun) Completed() bool {
	return c.Status == "completed"
}

// Failed reports whether the check finished with a failing-class conclusion.
func (c CheckRun) Failed() bool {
	if !c.Completed() {
		return false
	}
	switch c.Conclusion {
	case "failure", "cancelled", "timed_out":
		return true
	default:
		return false
	}
}
