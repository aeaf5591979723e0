package monitoring

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader carries the correlation id in both directions
	RequestIDHeader = "X-Request-ID"
	// RequestIDKey is the gin context key the id is stored under
	RequestIDKey = "request_id"

	maxRequestIDLength = 128
	maxCalculateBody   = 10_000
)

// RequestIDMiddleware reuses a sane incoming X-Request-ID or generates one
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// MonitoringMiddleware records metrics and a log line for each request
func MonitoringMiddleware(metrics *Metrics, logger *Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		ip := c.ClientIP()
		userAgent := c.GetHeader("User-Agent")
		method := c.Request.Method
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		// route templates keep label cardinality bounded
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RecordRequest(method, route, statusCode, duration)

		logger.RequestLogger(c.GetString(RequestIDKey), method, path, ip, userAgent, statusCode, duration)

		for _, err := range c.Errors {
			logger.APIErrorLogger(err.Err, method, path, ip, statusCode)
		}

		if statusCode >= http.StatusInternalServerError {
			logger.SystemLogger("server_error", fmt.Sprintf("Status %d for %s %s", statusCode, method, path))
		}
	}
}

// SecurityMonitoringMiddleware logs requests that look like scanning or abuse
func SecurityMonitoringMiddleware(logger *Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		userAgent := c.GetHeader("User-Agent")

		details := make(map[string]interface{})

		if c.Request.Method == http.MethodPost && c.Request.URL.Path == "/calculate" &&
			c.Request.ContentLength > maxCalculateBody {
			details["type"] = "large_request_body"
			details["size_bytes"] = c.Request.ContentLength
		}

		if containsSuspiciousUserAgent(userAgent) {
			details["type"] = "suspicious_user_agent"
		}

		if len(details) > 0 {
			logger.SecurityLogger("suspicious_activity_detected", ip, userAgent, details)
		}

		c.Next()
	}
}

var suspiciousAgents = []string{
	"sqlmap",
	"nmap",
	"masscan",
	"zmap",
	"dirbuster",
	"gobuster",
	"nikto",
	"acunetix",
	"nessus",
}

func containsSuspiciousUserAgent(userAgent string) bool {
	ua := strings.ToLower(userAgent)
	for _, agent := range suspiciousAgents {
		if strings.Contains(ua, agent) {
			return true
		}
	}
	return false
}
