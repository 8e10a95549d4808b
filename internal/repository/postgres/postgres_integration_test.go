package postgres

import (
	"context"
	"database/sql"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"pr-review-status/config"
	"pr-review-status/internal/entities"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStatusHistoryIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("requires docker")
	}
	ctx := context.Background()

	cfg, cleanup := setupPostgres(t)
	t.Cleanup(cleanup)

	repo := New(ctx, testLogger(t), cfg)
	require.NoError(t, repo.OnStart(ctx))
	t.Cleanup(func() { _ = repo.OnStop(ctx) })

	_, err := repo.LatestStatus(ctx, "octo/widgets", 7)
	require.ErrorIs(t, err, entities.ErrStatusNotFound)

	require.NoError(t, repo.SaveStatuses(ctx, nil))

	first := uuid.New()
	now := time.Now().UTC().Truncate(time.Microsecond)
	require.NoError(t, repo.SaveStatuses(ctx, []entities.StatusRecord{
		{
			RunID: first, Repository: "octo/widgets", PullNumber: 7,
			Status:     entities.StatusPendingReview,
			Decision:   entities.ReviewDecision{Approvals: 1, UnresolvedThreads: 2, ThreadsComplete: true},
			RecordedAt: now,
		},
		{
			RunID: first, Repository: "octo/widgets", PullNumber: 8,
			Status:     entities.StatusChangesRequested,
			Decision:   entities.ReviewDecision{ChangesRequested: 1, ThreadsComplete: false},
			RecordedAt: now,
		},
	}))

	second := uuid.New()
	require.NoError(t, repo.SaveStatuses(ctx, []entities.StatusRecord{{
		RunID: second, Repository: "octo/widgets", PullNumber: 7,
		Status:     entities.StatusApproved,
		Decision:   entities.ReviewDecision{Approvals: 2, ThreadsComplete: true},
		RecordedAt: now.Add(time.Minute),
	}}))

	got, err := repo.LatestStatus(ctx, "octo/widgets", 7)
	require.NoError(t, err)
	require.Equal(t, second, got.RunID)
	require.Equal(t, entities.StatusApproved, got.Status)
	require.Equal(t, 2, got.Decision.Approvals)
	require.True(t, got.RecordedAt.Equal(now.Add(time.Minute)))

	got, err = repo.LatestStatus(ctx, "octo/widgets", 8)
	require.NoError(t, err)
	require.Equal(t, first, got.RunID)
	require.Equal(t, entities.StatusChangesRequested, got.Status)
	require.False(t, got.Decision.ThreadsComplete)

	_, err = repo.LatestStatus(ctx, "octo/other", 7)
	require.ErrorIs(t, err, entities.ErrStatusNotFound)
}

func setupPostgres(t *testing.T) (*config.Config, func()) {
	t.Helper()

	pool, err := dockertest.NewPool("")
	require.NoError(t, err)

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_PASSWORD=postgres",
			"POSTGRES_USER=postgres",
			"POSTGRES_DB=pr_review_status",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
	})
	require.NoError(t, err)

	hostPort := resource.GetPort("5432/tcp")
	port, err := strconv.Atoi(hostPort)
	require.NoError(t, err)

	migrationsDir, err := filepath.Abs(filepath.Join("..", "..", "..", "db", "migrations"))
	require.NoError(t, err)
	require.DirExists(t, migrationsDir)

	cfg := &config.Config{
		Postgres: config.PostgresConfig{
			Host:           "localhost",
			Port:           port,
			User:           "postgres",
			Password:       "postgres",
			DBName:         "pr_review_status",
			SSLMode:        "disable",
			MigrationsDir:  migrationsDir,
			QueryTimeout:   10 * time.Second,
			MigrateTimeout: 20 * time.Second,
			MaxConns:       4,
			MinConns:       1,
		},
	}

	require.NoError(t, pool.Retry(func() error {
		db, err := sql.Open("postgres", cfg.Postgres.DSN())
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()
		return db.Ping()
	}))

	return cfg, func() { _ = pool.Purge(resource) }
}

func testLogger(t *testing.T) *zap.SugaredLogger {
	t.Helper()

	l, _ := zap.NewDevelopment()
	t.Cleanup(func() { _ = l.Sync() })
	return l.Sugar()
}
