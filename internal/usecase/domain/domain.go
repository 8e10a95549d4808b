package domain

import (
	"context"
	"time"

	"pr-review-status/internal/entities"
	"pr-review-status/internal/repository"
	"pr-review-status/pkg/poll"

	"go.uber.org/zap"
)

// Settings are the run parameters the usecases work with.
type Settings struct {
	RequiredApprovals int
	Labels            entities.LabelSet
	StaleDays         int
	// Workers bounds how many PRs are processed at once. Values below 1 mean 1.
	Workers int
	// Mergeable controls re-fetching a PR until GitHub has computed mergeability.
	Mergeable    poll.Policy
	StoreTimeout time.Duration
	Now          func() time.Time
}

// Usecase struct implements all usecase interfaces.
type Usecase struct {
	log      *zap.SugaredLogger
	platform repository.Platform
	history  repository.StatusHistoryInterface
	settings Settings
}

// New constructs a new usecase layer with its dependencies. history may be nil.
func New(
	log *zap.SugaredLogger,
	platform repository.Platform,
	history repository.StatusHistoryInterface,
	settings Settings,
) *Usecase {
	if settings.Now == nil {
		settings.Now = time.Now
	}
	if settings.Workers < 1 {
		settings.Workers = 1
	}
	return &Usecase{
		log:      log.Named("usecase"),
		platform: platform,
		history:  history,
		settings: settings,
	}
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
