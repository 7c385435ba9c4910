package serverutils

import (
	"errors"

	"text-summarizer-be/internal/pkg/logger"
	"text-summarizer-be/internal/repository/contract"
	"text-summarizer-be/internal/service"
	"text-summarizer-be/pkg/inference"
	"text-summarizer-be/pkg/pdftext"
	"text-summarizer-be/pkg/wordcloud"

	"github.com/gofiber/fiber/v2"
)

// StatusFromError maps domain errors to HTTP status codes. Unknown errors are 500.
func StatusFromError(err error) int {
	var validationErr *ValidationError
	var fiberErr *fiber.Error

	switch {
	case errors.As(err, &validationErr):
		return fiber.StatusBadRequest
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	case errors.Is(err, service.ErrMissingFile),
		errors.Is(err, service.ErrUnsupportedFile),
		errors.Is(err, pdftext.ErrEmptyDocument):
		return fiber.StatusBadRequest
	case errors.Is(err, contract.ErrSessionNotFound),
		errors.Is(err, service.ErrNothingToDownload):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrNoSummary):
		return fiber.StatusConflict
	case errors.Is(err, pdftext.ErrMalformedPDF),
		errors.Is(err, wordcloud.ErrNoWords):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, inference.ErrModelUnavailable):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, inference.ErrModelResponse):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler writes err as a BaseResponse JSON body with the mapped status code.
// It doubles as fiber.Config.ErrorHandler for errors raised outside the middleware chain.
func ErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		code := StatusFromError(err)
		message := err.Error()
		if code == fiber.StatusInternalServerError {
			log.Error("ErrorHandler", "unhandled error", map[string]interface{}{
				"error":  err.Error(),
				"path":   ctx.Path(),
				"method": ctx.Method(),
			})
			message = "Internal server error"
		} else {
			log.Warn("ErrorHandler", "request failed", map[string]interface{}{
				"error":  err.Error(),
				"path":   ctx.Path(),
				"status": code,
			})
		}

		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}

// ErrorHandlerMiddleware turns errors returned by later handlers into BaseResponse JSON bodies.
// Register recover after it so recovered panics come back through here as errors.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	handle := ErrorHandler(log)
	return func(ctx *fiber.Ctx) error {
		if err := ctx.Next(); err != nil {
			return handle(ctx, err)
		}
		return nil
	}
}
