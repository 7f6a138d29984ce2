package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/oklog/ulid/v2"
)

// RequestIDHeader is the response header carrying the per-request ID.
const RequestIDHeader = "X-Request-ID"

// RequestID assigns a ULID to every request for log correlation. An inbound
// ID is honored so callers can trace across hops.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(RequestIDHeader)
		if id == "" {
			id = ulid.Make().String()
		}
		c.Locals("request_id", id)
		c.Set(RequestIDHeader, id)
		return c.Next()
	}
}
