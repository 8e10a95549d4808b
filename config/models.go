package config

import (
	"errors"
	"fmt"
	"time"

	"pr-review-status/internal/entities"
)

// Mode selects what a command run needs from the configuration.
type Mode string

const (
	// ModeFromInput resolves the mode from the run-mode input.
	ModeFromInput Mode = ""
	// ModeLabel labels a single PR.
	ModeLabel Mode = "label"
	// ModeReport posts a summary of all open PRs to Slack.
	ModeReport Mode = "report"
	// ModeServe runs the webhook server.
	ModeServe Mode = "serve"
	// ModeStatus prints the summary to the terminal.
	ModeStatus Mode = "status"
)

// ParseRunMode accepts only the values allowed for the run-mode input.
func ParseRunMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeLabel, ModeReport:
		return m, nil
	default:
		return "", fmt.Errorf("%w: run-mode must be %q or %q, got %q", entities.ErrInvalidConfig, ModeLabel, ModeReport, s)
	}
}

// Config holds application configuration.
type Config struct {
	Mode Mode `mapstructure:"-"`

	Inputs    InputsConfig    `mapstructure:",squash"`
	GitHub    GitHubConfig    `mapstructure:"github"`
	Mergeable MergeableConfig `mapstructure:"mergeable"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Postgres  PostgresConfig  `mapstructure:"postgres"`
	Server    ServerConfig    `mapstructure:"server"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Webhook   WebhookConfig   `mapstructure:"webhook"`
}

// InputsConfig mirrors the action inputs declared in action.yml.
type InputsConfig struct {
	GitHubToken           string `mapstructure:"github-token"`
	RunMode               string `mapstructure:"run-mode"`
	RequiredApprovals     int    `mapstructure:"required-approvals"`
	PullNumber            int    `mapstructure:"pull-number"`
	PendingReviewLabel    string `mapstructure:"pending-review-label"`
	ChangesRequestedLabel string `mapstructure:"changes-requested-label"`
	ApprovedLabel         string `mapstructure:"approved-label"`
	SlackToken            string `mapstructure:"slack-token"`
	SlackChannel          string `mapstructure:"slack-channel"`
	StaleDays             int    `mapstructure:"stale-days"`
	Concurrency           int    `mapstructure:"concurrency"`
}

// Labels returns the configured label names.
func (i InputsConfig) Labels() entities.LabelSet {
	return entities.LabelSet{
		PendingReview:    i.PendingReviewLabel,
		ChangesRequested: i.ChangesRequestedLabel,
		Approved:         i.ApprovedLabel,
	}
}

// GitHubConfig contains API client options.
type GitHubConfig struct {
	Repository     string        `mapstructure:"repository"`
	APIURL         string        `mapstructure:"api_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// Repo parses the owner/name repository.
func (g GitHubConfig) Repo() (entities.Repository, error) {
	return entities.ParseRepository(g.Repository)
}

// MergeableConfig tunes the mergeability poll.
type MergeableConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	PollDelay   time.Duration `mapstructure:"poll_delay"`
}

// LoggingConfig contains logger preferences.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// StorageConfig selects the status history backend.
type StorageConfig struct {
	Backend string `mapstructure:"backend"`
}

// ServerConfig contains HTTP server options.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// HTTPConfig contains transport settings.
type HTTPConfig struct {
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// WebhookConfig contains GitHub webhook settings.
type WebhookConfig struct {
	Secret string `mapstructure:"secret"`
}

// PostgresConfig describes database connection parameters.
type PostgresConfig struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	User           string        `mapstructure:"user"`
	Password       string        `mapstructure:"password"`
	DBName         string        `mapstructure:"db_name"`
	SSLMode        string        `mapstructure:"ssl_mode"`
	MigrationsDir  string        `mapstructure:"migrations_dir"`
	MigrateTimeout time.Duration `mapstructure:"migrate_timeout"`
	QueryTimeout   time.Duration `mapstructure:"query_timeout"`
	MaxConns       int32         `mapstructure:"max_conns"`
	MinConns       int32         `mapstructure:"min_conns"`
}

// DSN returns a Postgres connection string.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DBName, p.SSLMode,
	)
}

// ServerAddr returns host:port for HTTP server binding.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Validate checks value ranges. Presence of required inputs is checked while loading.
func (c Config) Validate() error {
	if c.Inputs.RequiredApprovals < 0 {
		return invalid("required-approvals must be >= 0")
	}
	if c.Inputs.Concurrency < 1 {
		return invalid("concurrency must be >= 1")
	}
	if c.Mergeable.MaxAttempts < 1 {
		return invalid("mergeable.max_attempts must be >= 1")
	}

	switch c.Mode {
	case ModeLabel:
		if c.Inputs.PullNumber <= 0 {
			return invalid("pull-number must be a positive integer")
		}
	case ModeReport, ModeStatus:
		if c.Inputs.StaleDays < 0 {
			return invalid("stale-days must be >= 0")
		}
	case ModeServe:
		if c.Server.Port == 0 {
			return errors.New("server.port is required")
		}
	default:
		return invalid(fmt.Sprintf("unsupported mode %q", c.Mode))
	}

	if c.Mode != ModeServe {
		if _, err := c.GitHub.Repo(); err != nil {
			return fmt.Errorf("%w: %v", entities.ErrInvalidConfig, err)
		}
	}

	switch c.Storage.Backend {
	case "memory":
	case "postgres":
		if c.Postgres.User == "" || c.Postgres.Password == "" || c.Postgres.DBName == "" {
			return errors.New("postgres credentials are required")
		}
		if c.Postgres.Host == "" {
			return errors.New("postgres.host is required")
		}
	default:
		return invalid(fmt.Sprintf("storage.backend must be memory or postgres, got %q", c.Storage.Backend))
	}
	return nil
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", entities.ErrInvalidConfig, msg)
}
