package main

import (
	"context"

	"pr-review-status/config"
	"pr-review-status/internal/transport/http/middleware"
	"pr-review-status/internal/transport/http/server/handlers-fiber"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Relabel pull requests from GitHub webhook deliveries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := bootstrap(cmd.Context(), config.ModeServe, cmd.Flags())
			if err != nil {
				return err
			}
			defer a.close()

			return serve(cmd.Context(), a)
		},
	}
}

func serve(ctx context.Context, a *app) error {
	cfg, log := a.cfg, a.log

	serv := fiber.New(fiber.Config{
		ReadTimeout:           cfg.HTTP.RequestTimeout,
		WriteTimeout:          cfg.HTTP.RequestTimeout,
		DisableStartupMessage: true,
	})
	serv.Use(recover.New())
	serv.Use(requestid.New())
	serv.Use(middleware.RequestLogger(log))

	if cfg.Webhook.Secret == "" {
		log.Warnw("webhook secret not set, signatures are not verified")
	}
	h := handlers_fiber.NewHandler(log, a.uc, cfg.Webhook.Secret, cfg.Storage.Backend)
	h.Register(serv)

	errCh := make(chan error, 1)
	go func() {
		log.Infow("listening", "addr", cfg.ServerAddr())
		errCh <- serv.Listen(cfg.ServerAddr())
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	done := make(chan struct{})
	go func() {
		_ = serv.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-shutdownCtx.Done():
		log.Warnw("server shutdown timeout", "timeout", cfg.Server.ShutdownTimeout)
	}
	return nil
}
