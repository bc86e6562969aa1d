package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"docchat-be/internal/apperr"
)

// ErrorResponse is the uniform error envelope. Reason is machine-readable so
// clients can tell "fix your input and ask again" from "try again later"
// without parsing the message.
type ErrorResponse struct {
	Status  string `json:"status"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// ErrorHandlerMiddleware translates pipeline sentinels into distinct HTTP
// statuses. Components raise typed failures and nothing in between
// reinterprets them, so the mapping lives in exactly one place.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"status": "error",
				"reason": "validation_failed",
				"errors": validationErr.Errors,
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse{
				Status:  "error",
				Reason:  "http_error",
				Message: fiberErr.Message,
			})
		}

		return ctx.Status(statusFor(err)).JSON(ErrorResponse{
			Status:  "error",
			Reason:  apperr.Reason(err),
			Message: err.Error(),
		})
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrSessionNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, apperr.ErrInvalidDocumentType),
		errors.Is(err, apperr.ErrExtraction),
		errors.Is(err, apperr.ErrNoDocument),
		errors.Is(err, apperr.ErrEmptyCorpus),
		errors.Is(err, apperr.ErrUnsupportedProvider):
		return fiber.StatusBadRequest
	case errors.Is(err, apperr.ErrEmbeddingUnavailable),
		errors.Is(err, apperr.ErrGeneration):
		return fiber.StatusBadGateway
	default:
		// ErrDimensionMismatch lands here intentionally: it is an internal
		// invariant violation, not a client mistake.
		return fiber.StatusInternalServerError
	}
}
