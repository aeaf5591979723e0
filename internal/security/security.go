package security

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Config holds security configuration
type Config struct {
	AllowedOrigins []string      `json:"allowed_origins"`
	EnableHSTS     bool          `json:"enable_hsts"`
	MaxBodyBytes   int64         `json:"max_body_bytes"`
	RequestTimeout time.Duration `json:"request_timeout"`
}

// DefaultConfig returns secure defaults
func DefaultConfig() Config {
	return Config{
		AllowedOrigins: []string{"http://localhost:3000"},
		MaxBodyBytes:   64 << 10,
		RequestTimeout: 10 * time.Second,
	}
}

// CORSMiddleware builds the gin-contrib/cors handler. An empty origin list
// or a "*" entry allows any origin; credentials are never allowed then.
func CORSMiddleware(cfg Config) gin.HandlerFunc {
	cc := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"},
		MaxAge:        12 * time.Hour,
	}

	allowAll := len(cfg.AllowedOrigins) == 0
	for _, o := range cfg.AllowedOrigins {
		if o == "*" {
			allowAll = true
		}
	}

	if allowAll {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = cfg.AllowedOrigins
	}

	return cors.New(cc)
}

// ValidateContentType rejects request bodies that are not JSON
func ValidateContentType() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		contentType := strings.ToLower(c.GetHeader("Content-Type"))
		if contentType != "" && !strings.Contains(contentType, "application/json") {
			c.AbortWithStatusJSON(http.StatusUnsupportedMediaType, gin.H{
				"error": "Content-Type must be application/json",
			})
			return
		}

		c.Next()
	}
}

// BodyLimit caps the request body. Reads past the limit fail, which the
// JSON decoder reports as a malformed body.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}

// RequestTimeout bounds the request context
func RequestTimeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if timeout <= 0 {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Header("X-Timeout", strconv.Itoa(int(timeout.Seconds())))

		c.Next()
	}
}

// Middlewares returns the full chain in the order the router installs it
func Middlewares(cfg Config) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		CORSMiddleware(cfg),
		SecurityHeadersMiddleware(cfg.EnableHSTS),
		CSPMiddleware("/swagger"),
		ValidateContentType(),
		BodyLimit(cfg.MaxBodyBytes),
		RequestTimeout(cfg.RequestTimeout),
	}
}
