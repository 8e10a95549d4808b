// Package config loads application configuration.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"pr-review-status/internal/entities"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	envFile = "config/.env"
	// The Actions runner exposes every input as INPUT_<NAME>, keeping dashes.
	inputPrefix = "INPUT"
)

var inputKeys = []string{
	"github-token",
	"run-mode",
	"required-approvals",
	"pull-number",
	"pending-review-label",
	"changes-requested-label",
	"approved-label",
	"slack-token",
	"slack-channel",
	"stale-days",
	"concurrency",
}

var ambientEnvs = [][2]string{
	{"github.repository", "GITHUB_REPOSITORY"},
	{"github.api_url", "GITHUB_API_URL"},
	{"github.request_timeout", "GITHUB_REQUEST_TIMEOUT"},
	{"mergeable.max_attempts", "MERGEABLE_MAX_ATTEMPTS"},
	{"mergeable.poll_delay", "MERGEABLE_POLL_DELAY"},
	{"logging.level", "LOGGING_LEVEL"},
	{"storage.backend", "STORAGE_BACKEND"},
	{"server.host", "SERVER_HOST"},
	{"server.port", "SERVER_PORT"},
	{"server.shutdown_timeout", "SERVER_SHUTDOWN_TIMEOUT"},
	{"http.request_timeout", "HTTP_REQUEST_TIMEOUT"},
	{"webhook.secret", "WEBHOOK_SECRET"},
	{"postgres.host", "POSTGRES_HOST"},
	{"postgres.port", "POSTGRES_PORT"},
	{"postgres.user", "POSTGRES_USER"},
	{"postgres.password", "POSTGRES_PASSWORD"},
	{"postgres.db_name", "POSTGRES_DB_NAME"},
	{"postgres.ssl_mode", "POSTGRES_SSL_MODE"},
	{"postgres.migrations_dir", "POSTGRES_MIGRATIONS_DIR"},
	{"postgres.migrate_timeout", "POSTGRES_MIGRATE_TIMEOUT"},
	{"postgres.query_timeout", "POSTGRES_QUERY_TIMEOUT"},
	{"postgres.max_conns", "POSTGRES_MAX_CONNS"},
	{"postgres.min_conns", "POSTGRES_MIN_CONNS"},
}

// flag names that do not match their config key.
var flagKeys = map[string]string{
	"repository": "github.repository",
	"log-level":  "logging.level",
	"storage":    "storage.backend",
}

// NewConfig loads configuration for mode from action inputs, environment and
// optional command-line flags. ModeFromInput resolves the mode from run-mode.
func NewConfig(mode Mode, flags *pflag.FlagSet) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetEnvPrefix(inputPrefix)

	setDefaults(v)
	bindEnvs(v)
	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, err
		}
	}

	if mode == ModeFromInput {
		m, err := ParseRunMode(strings.TrimSpace(v.GetString("run-mode")))
		if err != nil {
			return nil, err
		}
		mode = m
	}

	if err := requireInputs(v, requiredInputs(mode)); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrInvalidConfig, err)
	}
	cfg.Mode = mode

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func loadEnvFile() {
	envMap, err := godotenv.Read(envFile)
	if err != nil {
		return
	}
	for k, val := range envMap {
		if _, exists := os.LookupEnv(k); !exists {
			_ = os.Setenv(k, val)
		}
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("concurrency", 1)

	v.SetDefault("github.api_url", "https://api.github.com/")
	v.SetDefault("github.request_timeout", 30*time.Second)

	v.SetDefault("mergeable.max_attempts", 10)
	v.SetDefault("mergeable.poll_delay", 500*time.Millisecond)

	v.SetDefault("logging.level", "info")
	v.SetDefault("storage.backend", "memory")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)

	v.SetDefault("http.request_timeout", 30*time.Second)

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "postgres")
	v.SetDefault("postgres.password", "postgres")
	v.SetDefault("postgres.db_name", "pr_review_status")
	v.SetDefault("postgres.ssl_mode", "disable")
	v.SetDefault("postgres.migrations_dir", "db/migrations")
	v.SetDefault("postgres.migrate_timeout", 10*time.Second)
	v.SetDefault("postgres.query_timeout", 2*time.Second)
	v.SetDefault("postgres.max_conns", 4)
	v.SetDefault("postgres.min_conns", 1)
}

func bindEnvs(v *viper.Viper) {
	for _, k := range inputKeys {
		_ = v.BindEnv(k)
	}
	for _, kv := range ambientEnvs {
		_ = v.BindEnv(kv[0], kv[1])
	}
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var err error
	flags.VisitAll(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		key, ok := flagKeys[f.Name]
		if !ok {
			key = f.Name
		}
		if bindErr := v.BindPFlag(key, f); bindErr != nil {
			err = fmt.Errorf("bind flag %s: %w", f.Name, bindErr)
		}
	})
	return err
}

func requiredInputs(mode Mode) []string {
	labels := []string{"pending-review-label", "changes-requested-label", "approved-label"}

	switch mode {
	case ModeLabel:
		return append([]string{"github-token", "required-approvals", "pull-number"}, labels...)
	case ModeReport:
		return []string{"github-token", "required-approvals", "slack-token", "slack-channel", "stale-days"}
	case ModeStatus:
		return []string{"github-token", "required-approvals", "stale-days"}
	case ModeServe:
		return append([]string{"github-token", "required-approvals"}, labels...)
	default:
		return nil
	}
}

func requireInputs(v *viper.Viper, keys []string) error {
	for _, k := range keys {
		if strings.TrimSpace(v.GetString(k)) == "" {
			return fmt.Errorf("%w: input required and not supplied: %s", entities.ErrInvalidConfig, k)
		}
	}
	return nil
}
