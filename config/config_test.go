package config

import (
	"testing"
	"time"

	"pr-review-status/internal/entities"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func setLabelInputs(t *testing.T) {
	t.Helper()
	t.Setenv("GITHUB_REPOSITORY", "octo/widgets")
	t.Setenv("INPUT_GITHUB-TOKEN", "ghs_token")
	t.Setenv("INPUT_RUN-MODE", "label")
	t.Setenv("INPUT_REQUIRED-APPROVALS", "2")
	t.Setenv("INPUT_PULL-NUMBER", "42")
	t.Setenv("INPUT_PENDING-REVIEW-LABEL", "pending review")
	t.Setenv("INPUT_CHANGES-REQUESTED-LABEL", "changes requested")
	t.Setenv("INPUT_APPROVED-LABEL", "approved")
}

func TestNewConfigLabelMode(t *testing.T) {
	setLabelInputs(t)

	cfg, err := NewConfig(ModeFromInput, nil)
	require.NoError(t, err)

	require.Equal(t, ModeLabel, cfg.Mode)
	require.Equal(t, "ghs_token", cfg.Inputs.GitHubToken)
	require.Equal(t, 2, cfg.Inputs.RequiredApprovals)
	require.Equal(t, 42, cfg.Inputs.PullNumber)
	require.Equal(t, entities.LabelSet{
		PendingReview:    "pending review",
		ChangesRequested: "changes requested",
		Approved:         "approved",
	}, cfg.Inputs.Labels())
	require.Equal(t, 1, cfg.Inputs.Concurrency)
	require.Equal(t, 10, cfg.Mergeable.MaxAttempts)
	require.Equal(t, 500*time.Millisecond, cfg.Mergeable.PollDelay)
	require.Equal(t, "memory", cfg.Storage.Backend)

	repo, err := cfg.GitHub.Repo()
	require.NoError(t, err)
	require.Equal(t, entities.Repository{Owner: "octo", Name: "widgets"}, repo)
}

func TestNewConfigRejectsUnknownRunMode(t *testing.T) {
	setLabelInputs(t)
	t.Setenv("INPUT_RUN-MODE", "publish")

	_, err := NewConfig(ModeFromInput, nil)
	require.ErrorIs(t, err, entities.ErrInvalidConfig)
	require.Contains(t, err.Error(), "publish")
}

func TestNewConfigRejectsNonNumericApprovals(t *testing.T) {
	setLabelInputs(t)
	t.Setenv("INPUT_REQUIRED-APPROVALS", "two")

	_, err := NewConfig(ModeFromInput, nil)
	require.ErrorIs(t, err, entities.ErrInvalidConfig)
}

func TestNewConfigMissingRequiredInput(t *testing.T) {
	setLabelInputs(t)
	t.Setenv("INPUT_APPROVED-LABEL", "")

	_, err := NewConfig(ModeFromInput, nil)
	require.ErrorIs(t, err, entities.ErrInvalidConfig)
	require.Contains(t, err.Error(), "approved-label")
}

func TestNewConfigReportMode(t *testing.T) {
	t.Setenv("GITHUB_REPOSITORY", "octo/widgets")
	t.Setenv("INPUT_GITHUB-TOKEN", "ghs_token")
	t.Setenv("INPUT_RUN-MODE", "report")
	t.Setenv("INPUT_REQUIRED-APPROVALS", "1")
	t.Setenv("INPUT_SLACK-TOKEN", "xoxb-1")
	t.Setenv("INPUT_SLACK-CHANNEL", "#reviews")
	t.Setenv("INPUT_STALE-DAYS", "7")
	t.Setenv("INPUT_CONCURRENCY", "4")

	cfg, err := NewConfig(ModeFromInput, nil)
	require.NoError(t, err)
	require.Equal(t, ModeReport, cfg.Mode)
	require.Equal(t, "#reviews", cfg.Inputs.SlackChannel)
	require.Equal(t, 7, cfg.Inputs.StaleDays)
	require.Equal(t, 4, cfg.Inputs.Concurrency)
}

func TestNewConfigFlagsOverrideEnv(t *testing.T) {
	setLabelInputs(t)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("pull-number", "", "")
	flags.String("repository", "", "")
	require.NoError(t, flags.Parse([]string{"--pull-number=7", "--repository=acme/api"}))

	cfg, err := NewConfig(ModeLabel, flags)
	require.NoError(t, err)
	require.Equal(t, 7, cfg.Inputs.PullNumber)
	require.Equal(t, "acme/api", cfg.GitHub.Repository)
}

func TestValidate(t *testing.T) {
	base := Config{
		Mode: ModeLabel,
		Inputs: InputsConfig{
			RequiredApprovals: 1,
			PullNumber:        1,
			Concurrency:       1,
		},
		GitHub:    GitHubConfig{Repository: "octo/widgets"},
		Mergeable: MergeableConfig{MaxAttempts: 10},
		Storage:   StorageConfig{Backend: "memory"},
	}
	require.NoError(t, base.Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"negative approvals", func(c *Config) { c.Inputs.RequiredApprovals = -1 }},
		{"zero pull number", func(c *Config) { c.Inputs.PullNumber = 0 }},
		{"zero concurrency", func(c *Config) { c.Inputs.Concurrency = 0 }},
		{"bad repository", func(c *Config) { c.GitHub.Repository = "widgets" }},
		{"bad backend", func(c *Config) { c.Storage.Backend = "redis" }},
		{"negative stale days", func(c *Config) { c.Mode = ModeReport; c.Inputs.StaleDays = -3 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			require.ErrorIs(t, cfg.Validate(), entities.ErrInvalidConfig)
		})
	}
}

func TestParseRunMode(t *testing.T) {
	m, err := ParseRunMode("report")
	require.NoError(t, err)
	require.Equal(t, ModeReport, m)

	_, err = ParseRunMode("serve")
	require.ErrorIs(t, err, entities.ErrInvalidConfig)
}
