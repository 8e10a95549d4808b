package entities

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRepository(t *testing.T) {
	repo, err := ParseRepository("octo/widgets")
	require.NoError(t, err)
	require.Equal(t, Repository{Owner: "octo", Name: "widgets"}, repo)
	require.Equal(t, "octo/widgets", repo.String())

	for _, bad := range []string{"", "octo", "/widgets", "octo/", "a/b/c"} {
		_, err := ParseRepository(bad)
		require.ErrorIs(t, err, ErrInvalidArgument, bad)
	}
}

func TestCheckRunFailed(t *testing.T) {
	tests := []struct {
		run    CheckRun
		failed bool
	}{
		{CheckRun{Status: "completed", Conclusion: "failure"}, true},
		{CheckRun{Status: "completed", Conclusion: "cancelled"}, true},
		{CheckRun{Status: "completed", Conclusion: "timed_out"}, true},
		{CheckRun{Status: "completed", Conclusion: "success"}, false},
		{CheckRun{Status: "completed", Conclusion: "neutral"}, false},
		{CheckRun{Status: "completed", Conclusion: "skipped"}, false},
		{CheckRun{Status: "in_progress", Conclusion: "failure"}, false},
		{CheckRun{Status: "queued"}, false},
	}
	for _, tt := range tests {
		require.Equal(t, tt.failed, tt.run.Failed(), "%+v", tt.run)
	}
}

func TestMergeableFromPtr(t *testing.T) {
	yes, no := true, false
	require.Equal(t, MergeableUnknown, MergeableFromPtr(nil))
	require.Equal(t, MergeableTrue, MergeableFromPtr(&yes))
	require.Equal(t, MergeableFalse, MergeableFromPtr(&no))
	require.False(t, MergeableUnknown.Known())
	require.True(t, MergeableFalse.Known())
}

func TestParseReviewStatus(t *testing.T) {
	for _, st := range Statuses() {
		got, err := ParseReviewStatus(string(st))
		require.NoError(t, err)
		require.Equal(t, st, got)
	}
	_, err := ParseReviewStatus("changed_requested")
	require.ErrorIs(t, err, ErrUnknownStatus)
}

func TestReviewStateDecisive(t *testing.T) {
	require.True(t, ReviewStateApproved.Decisive())
	require.True(t, ReviewStateChangesRequested.Decisive())
	require.False(t, ReviewStateCommented.Decisive())
	require.False(t, ReviewState("DISMISSED").Decisive())
}
