// Package handlers_fiber wires HTTP delivery components.
package handlers_fiber

import (
	"pr-review-status/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler serves GitHub webhooks and status lookups using service layer interfaces.
type Handler struct {
	log     *zap.SugaredLogger
	uc      usecase.InterfaceUsecase
	secret  []byte
	storage string
}

// NewHandler constructs an HTTP server with service dependencies. An empty
// secret disables webhook signature checks.
func NewHandler(log *zap.SugaredLogger, usecase usecase.InterfaceUsecase, secret, storage string) *Handler {
	return &Handler{
		log:     log.Named("http"),
		uc:      usecase,
		secret:  []byte(secret),
		storage: storage,
	}
}

// Register mounts all routes on r.
func (h *Handler) Register(r fiber.Router) {
	r.Get("/healthz", h.GetHealth)
	r.Post("/github-hook", h.PostGitHubHook)
	r.Get("/status/:owner/:repo/:number", h.GetStatus)
}
