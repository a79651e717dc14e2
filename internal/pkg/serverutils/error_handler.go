package serverutils

import (
	"errors"
	"log"

	"notemark-be/internal/service"
	"notemark-be/pkg/parser"
	"notemark-be/pkg/preprocess"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware turns handler errors into ErrorResponse bodies.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code, body := mapError(err)
		if code >= fiber.StatusInternalServerError {
			log.Printf("[ERROR] %s %s: %v", ctx.Method(), ctx.Path(), err)
		}
		return ctx.Status(code).JSON(body)
	}
}

func mapError(err error) (int, ErrorResponse) {
	var validationErr *ValidationError
	var fiberErr *fiber.Error

	switch {
	case errors.As(err, &validationErr):
		return fiber.StatusBadRequest, ErrorResponse{
			Code:    fiber.StatusBadRequest,
			Message: "Validation failed",
			Errors:  validationErr.Fields,
		}
	case errors.Is(err, service.ErrInvalidBlocks):
		return errorBody(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrMentionNotFound):
		return errorBody(fiber.StatusNotFound, err.Error())
	case errors.Is(err, preprocess.ErrInsufficientColumns),
		errors.Is(err, preprocess.ErrInvalidColumnRatioSum),
		errors.Is(err, parser.ErrNestingTooDeep):
		return errorBody(fiber.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &fiberErr):
		return errorBody(fiberErr.Code, fiberErr.Message)
	}
	return errorBody(fiber.StatusInternalServerError, "Internal server error")
}

func errorBody(code int, message string) (int, ErrorResponse) {
	return code, ErrorResponse{Code: code, Message: message}
}
