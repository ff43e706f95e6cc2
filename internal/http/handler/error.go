package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"arkiv/internal/http/middleware"
	"arkiv/internal/service"
)

// errorPayload is the standard error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts the id stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes the standard JSON error response. code is the
// machine-readable short code ("NOT_FOUND", "NAME_REQUIRED", ...); message is
// safe for clients and never carries internal details.
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

// serviceErrors maps service sentinels onto HTTP statuses and envelope codes.
// Not-found errors are usually handled in the handler first so the message
// can name the missing identifier; the entries here are the fallback.
var serviceErrors = []struct {
	target error
	status int
	code   string
}{
	{service.ErrIDRequired, fiber.StatusBadRequest, "ID_REQUIRED"},
	{service.ErrNameRequired, fiber.StatusBadRequest, "NAME_REQUIRED"},
	{service.ErrInvalidType, fiber.StatusBadRequest, "INVALID_TYPE"},
	{service.ErrInvalidRack, fiber.StatusBadRequest, "INVALID_RACK"},
	{service.ErrUnknownCategory, fiber.StatusBadRequest, "UNKNOWN_CATEGORY"},
	{service.ErrParentNotFound, fiber.StatusBadRequest, "PARENT_NOT_FOUND"},
	{service.ErrInvalidParent, fiber.StatusBadRequest, "INVALID_PARENT"},
	{service.ErrCycle, fiber.StatusBadRequest, "CYCLE"},
	{service.ErrNoBoxes, fiber.StatusBadRequest, "NO_BOXES"},
	{service.ErrBadLayout, fiber.StatusBadRequest, "INVALID_LAYOUT"},
	{service.ErrBadFormat, fiber.StatusBadRequest, "INVALID_FORMAT"},
	{service.ErrBadExport, fiber.StatusBadRequest, "INVALID_FORMAT"},
	{service.ErrNoEntries, fiber.StatusBadRequest, "NO_ENTRIES"},
	{service.ErrBadSnapshot, fiber.StatusBadRequest, "INVALID_SNAPSHOT"},
	{service.ErrBaseURLRequired, fiber.StatusConflict, "BASE_URL_REQUIRED"},
	{service.ErrNoStorage, fiber.StatusConflict, "STORAGE_DISABLED"},
	{service.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{service.ErrEntryNotFound, fiber.StatusNotFound, "NOT_FOUND"},
}

// serviceError translates a service failure into an error envelope. Sentinel
// messages are crafted for clients, so they pass through; anything
// unrecognized returns unchanged and bubbles to ErrorHandler, which logs the
// cause and answers with a redacted 500.
func serviceError(c *fiber.Ctx, err error) error {
	for _, m := range serviceErrors {
		if errors.Is(err, m.target) {
			return writeError(c, m.status, m.code, err.Error())
		}
	}
	return err
}

// ErrorHandler returns the app-level error handler. It catches everything the
// handlers did not turn into an envelope themselves: fiber routing errors and
// unexpected internal failures.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusUpgradeRequired:
			return writeError(c, status, "UPGRADE_REQUIRED", "websocket upgrade required")
		case fiber.StatusServiceUnavailable:
			return writeError(c, status, "SERVICE_UNAVAILABLE", "dependency unavailable")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
