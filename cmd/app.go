package main

import (
	"context"
	"fmt"

	"pr-review-status/config"
	"pr-review-status/internal/entities"
	"pr-review-status/internal/repository"
	"pr-review-status/internal/repository/githubapi"
	"pr-review-status/internal/usecase"
	"pr-review-status/internal/usecase/domain"
	"pr-review-status/pkg/logger"
	"pr-review-status/pkg/poll"

	"github.com/sethvargo/go-githubactions"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// app holds everything a command needs once configuration is loaded.
type app struct {
	cfg  *config.Config
	log  *zap.SugaredLogger
	repo repository.Repository
	uc   usecase.InterfaceUsecase
}

// bootstrap loads config for mode, masks secrets, starts the history store and
// builds the usecase layer. Callers must close the returned app.
func bootstrap(ctx context.Context, mode config.Mode, flags *pflag.FlagSet) (*app, error) {
	cfg, err := config.NewConfig(mode, flags)
	if err != nil {
		return nil, err
	}

	for _, secret := range []string{cfg.Inputs.GitHubToken, cfg.Inputs.SlackToken, cfg.Webhook.Secret, cfg.Postgres.Password} {
		if secret != "" {
			githubactions.AddMask(secret)
		}
	}

	log, err := logger.New(cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrInvalidConfig, err)
	}

	repo, err := repository.New(ctx, cfg.Storage.Backend, log, cfg)
	if err != nil {
		return nil, err
	}
	if err := repo.OnStart(ctx); err != nil {
		return nil, fmt.Errorf("start %s history store: %w", cfg.Storage.Backend, err)
	}

	gh, err := githubapi.New(log, githubapi.NewHTTPClient(ctx, cfg.Inputs.GitHubToken, cfg.GitHub.RequestTimeout), cfg.GitHub.APIURL)
	if err != nil {
		_ = repo.OnStop(context.Background())
		return nil, err
	}

	uc := usecase.New(log, gh, repo, domain.Settings{
		RequiredApprovals: cfg.Inputs.RequiredApprovals,
		Labels:            cfg.Inputs.Labels(),
		StaleDays:         cfg.Inputs.StaleDays,
		Workers:           cfg.Inputs.Concurrency,
		Mergeable: poll.Policy{
			MaxAttempts: cfg.Mergeable.MaxAttempts,
			Delay:       cfg.Mergeable.PollDelay,
		},
		StoreTimeout: cfg.Postgres.QueryTimeout,
	})

	log.Debugw("configured",
		"mode", cfg.Mode,
		"repository", cfg.GitHub.Repository,
		"storage", cfg.Storage.Backend,
		"required_approvals", cfg.Inputs.RequiredApprovals,
	)

	return &app{cfg: cfg, log: log, repo: repo, uc: uc}, nil
}

func (a *app) close() {
	if err := a.repo.OnStop(context.Background()); err != nil {
		a.log.Warnw("history store stop error", "error", err)
	}
	_ = a.log.Sync()
}
