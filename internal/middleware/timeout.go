package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

// Timeout derives a deadline context for the request. Handlers and the
// database layer observe the deadline through ctx.
func Timeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
