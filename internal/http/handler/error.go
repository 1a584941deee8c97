package handler

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"docshare/internal/http/middleware"
)

// errorPayload defines the standardized error response body for API routes.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// ErrorHandler returns a Fiber global error handler. API routes get the standard
// JSON payload; page routes get a plain status page.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		if strings.HasPrefix(c.Path(), "/api/") || strings.HasPrefix(c.Path(), "/health") {
			switch status {
			case fiber.StatusBadRequest:
				return writeError(c, status, "BAD_REQUEST", "bad request")
			case fiber.StatusNotFound:
				return writeError(c, status, "NOT_FOUND", "resource not found")
			case fiber.StatusMethodNotAllowed:
				return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
			case fiber.StatusServiceUnavailable:
				return writeError(c, status, "SERVICE_UNAVAILABLE", "dependency unavailable")
			default:
				return writeError(c, status, "INTERNAL_ERROR", "internal server error")
			}
		}

		return c.Status(status).SendString(http.StatusText(status))
	}
}
