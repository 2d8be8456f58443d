package middleware

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
)

// Logging writes one line per request: request id, method, path, status,
// latency and the authenticated user when present.
func Logging() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			if err != nil {
				c.Error(err)
			}

			rid, _ := c.Get(ContextKeyRequestID).(string)
			req := c.Request()
			line := "request_id=" + rid + " method=" + req.Method + " path=" + req.URL.Path
			if userID, ok := c.Get(ContextKeyUserID).(string); ok && userID != "" {
				line += " user_id=" + userID
			}
			log.Printf("%s status=%d latency=%s", line, c.Response().Status, time.Since(start))

			return err
		}
	}
}
