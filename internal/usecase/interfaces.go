package usecase

import (
	"context"

	"pr-review-status/internal/entities"
)

// ClassificationUsecaseInterface classifies and labels single PRs.
type ClassificationUsecaseInterface interface {
	ClassifyPullRequest(ctx context.Context, repo entities.Repository, number int) (*entities.Classification, error)
	LabelPullRequest(ctx context.Context, repo entities.Repository, number int) (*entities.Classification, error)
}

// ReportUsecaseInterface summarises all open PRs of a repository.
type ReportUsecaseInterface interface {
	BuildReport(ctx context.Context, repo entities.Repository) (*entities.Report, error)
}

// StatusUsecaseInterface reads recorded statuses.
type StatusUsecaseInterface interface {
	LatestStatus(ctx context.Context, repo entities.Repository, number int) (*entities.StatusRecord, error)
}
