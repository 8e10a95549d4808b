package handlers_fiber

import (
	"errors"
	"net/http"

	"pr-review-status/internal/entities"
	"pr-review-status/internal/transport/http/dto"

	"github.com/gofiber/fiber/v2"
)

func writeError(c *fiber.Ctx, err error) error {
	status := http.StatusInternalServerError
	code := dto.INTERNAL
	msg := "internal error"

	switch {
	case errors.Is(err, entities.ErrInvalidArgument):
		status = http.StatusBadRequest
		code = dto.BADREQUEST
		msg = err.Error()
	case errors.Is(err, entities.ErrUnauthorized):
		status = http.StatusUnauthorized
		code = dto.UNAUTHORIZED
		msg = "invalid signature or credentials"
	case errors.Is(err, entities.ErrStatusNotFound), errors.Is(err, entities.ErrPRNotFound):
		status = http.StatusNotFound
		code = dto.NOTFOUND
		msg = "resource not found"
	case errors.Is(err, entities.ErrDelivery):
		status = http.StatusBadGateway
		code = dto.UPSTREAM
		msg = err.Error()
	default:
		msg = err.Error()
	}

	return c.Status(status).JSON(errorResponse(code, msg))
}

func errorResponse(code dto.ErrorCode, msg string) dto.ErrorResponse {
	return dto.ErrorResponse{Error: dto.ErrorBody{Code: code, Message: msg}}
}
