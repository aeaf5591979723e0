package ratelimit

import (
	"log/slog"
	"math"
	"strconv"

	apperrors "github.com/ZanzyTHEbar/lews/internal/errors"
	"github.com/gin-gonic/gin"
)

// IPRateLimitMiddleware enforces the per-minute budget of each client address
// and reports it through the X-RateLimit-* headers
func (rl *RateLimiter) IPRateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		result, err := rl.AllowIP(c.Request.Context(), ip)
		if err != nil {
			// never block traffic because the limiter itself failed
			slog.Error("Rate limit check failed", "ip", ip, "error", err)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

		if !result.Allowed {
			if rl.metrics != nil {
				rl.metrics.IncrementRateLimitBlock()
			}

			retryAfter := strconv.Itoa(int(math.Ceil(result.RetryAfter.Seconds())))
			c.Header("Retry-After", retryAfter)
			apperrors.Respond(c, apperrors.NewRateLimitError(retryAfter))
			return
		}

		c.Next()
	}
}
