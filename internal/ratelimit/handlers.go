package ratelimit

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HandleRateLimitStatus reports the configured budget and limiter state
// @Summary      Rate limit status
// @Description  Configured per-IP budget of the caller and the state of the limiter backend
// @Tags         operations
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      429  {object}  api.ErrorResponse
// @Router       /ratelimit [get]
func (rl *RateLimiter) HandleRateLimitStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"ip": c.ClientIP(),
			"limits": gin.H{
				"ip_per_minute": gin.H{
					"limit":  rl.config.RequestsPerMinute,
					"burst":  rl.config.RequestsPerMinute * rl.config.BurstMultiplier,
					"period": "1 minute",
				},
			},
			"backend":   rl.GetStats(),
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}
