package postgres

import (
	"context"
	"errors"
	"fmt"

	"pr-review-status/internal/entities"

	"github.com/jackc/pgx/v5"
)

const (
	insertStatusQuery = `INSERT INTO review_status_history
    (run_id, repository, pull_number, status, approvals, changes_requested, unresolved_threads, threads_complete, recorded_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`
	latestStatusQuery = `SELECT run_id, repository, pull_number, status, approvals, changes_requested,
       unresolved_threads, threads_complete, recorded_at
FROM review_status_history
WHERE repository=$1 AND pull_number=$2
ORDER BY recorded_at DESC, id DESC
LIMIT 1`
)

// SaveStatuses inserts all records in one transaction.
func (p *Postgres) SaveStatuses(ctx context.Context, records []entities.StatusRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batch := &pgx.Batch{}
	for _, r := range records {
		batch.Queue(insertStatusQuery,
			r.RunID, r.Repository, r.PullNumber, string(r.Status),
			r.Decision.Approvals, r.Decision.ChangesRequested, r.Decision.UnresolvedThreads,
			r.Decision.ThreadsComplete, r.RecordedAt,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		p.log.Errorw("failed to insert statuses", "error", err, "count", len(records))
		return fmt.Errorf("insert statuses: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit statuses: %w", err)
	}

	p.log.Infow("statuses saved", "count", len(records), "run_id", records[0].RunID)
	return nil
}

// LatestStatus returns the most recent record for the PR.
func (p *Postgres) LatestStatus(ctx context.Context, repo string, number int) (*entities.StatusRecord, error) {
	var (
		r      entities.StatusRecord
		status string
	)
	err := p.db.QueryRow(ctx, latestStatusQuery, repo, number).Scan(
		&r.RunID, &r.Repository, &r.PullNumber, &status,
		&r.Decision.Approvals, &r.Decision.ChangesRequested, &r.Decision.UnresolvedThreads,
		&r.Decision.ThreadsComplete, &r.RecordedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrStatusNotFound
		}
		p.log.Errorw("failed to select latest status", "error", err, "repository", repo, "pull_number", number)
		return nil, fmt.Errorf("latest status: %w", err)
	}

	r.Status, err = entities.ParseReviewStatus(status)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
