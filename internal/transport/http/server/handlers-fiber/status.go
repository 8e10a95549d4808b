package handlers_fiber

import (
	"fmt"
	"net/http"
	"strconv"

	"pr-review-status/internal/entities"
	"pr-review-status/internal/mapper"
	"pr-review-status/internal/transport/http/dto"

	"github.com/gofiber/fiber/v2"
)

// GetStatus returns the last recorded status of a PR.
func (h *Handler) GetStatus(c *fiber.Ctx) error {
	number, err := strconv.Atoi(c.Params("number"))
	if err != nil {
		return writeError(c, fmt.Errorf("%w: pull number %q", entities.ErrInvalidArgument, c.Params("number")))
	}
	repo, err := entities.ParseRepository(c.Params("owner") + "/" + c.Params("repo"))
	if err != nil {
		return writeError(c, err)
	}

	rec, err := h.uc.LatestStatus(c.UserContext(), repo, number)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToStatus(*rec))
}

// GetHealth is the liveness probe.
func (h *Handler) GetHealth(c *fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(dto.Health{Status: "ok", Storage: h.storage})
}
