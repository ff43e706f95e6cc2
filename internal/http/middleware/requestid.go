// Package middleware holds the fiber middleware shared by the HTTP server:
// request id propagation, zap request logging and Prometheus metrics.
package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader carries the request id to and from clients.
	RequestIDHeader = "X-Request-ID"
	// RequestIDLocalKey is the fiber locals key downstream handlers read.
	RequestIDLocalKey = "request_id"
)

// RequestID ensures every request carries an id: an incoming X-Request-ID is
// kept, otherwise a fresh UUID is issued. The id is stored in context locals
// for handlers and the logger, and echoed on the response so clients can
// correlate their logs with ours.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Locals(RequestIDLocalKey, id)
		c.Set(RequestIDHeader, id)

		return c.Next()
	}
}
