package middleware

import (
	"github.com/bankist-labs/bankist-api/pkg"
	"github.com/gin-gonic/gin"
)

// RateLimit returns Gin middleware enforcing the given limiter. Throttled
// requests are rejected before any business validation runs, so the silent
// precondition policy of the action handlers is not affected.
func RateLimit(limiter *pkg.DistributedLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.Request.Context()) {
			c.AbortWithStatusJSON(pkg.ErrRateLimitedCode.Status, pkg.ErrorResponse{
				Code:    pkg.ErrRateLimitedCode.Code,
				Message: pkg.ErrRateLimitedCode.Message,
			})
			return
		}
		c.Next()
	}
}
