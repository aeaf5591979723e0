package monitoring

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Logger provides structured logging with domain helpers
type Logger struct {
	*slog.Logger
	level *slog.LevelVar
}

// NewLogger creates a JSON logger writing to w at the given level.
// A nil writer means stdout.
func NewLogger(w io.Writer, level slog.Level) *Logger {
	if w == nil {
		w = os.Stdout
	}

	lv := new(slog.LevelVar)
	lv.Set(level)

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     lv,
		AddSource: level <= slog.LevelDebug,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{
					Key:   "timestamp",
					Value: slog.StringValue(a.Value.Time().Format(time.RFC3339)),
				}
			}
			return a
		},
	})

	return &Logger{
		Logger: slog.New(handler),
		level:  lv,
	}
}

// ParseLevel maps debug, info, warn and error onto slog levels
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// SetLevel changes the level without rebuilding the handler
func (l *Logger) SetLevel(level slog.Level) {
	l.level.Set(level)
}

// RequestLogger logs HTTP request details
func (l *Logger) RequestLogger(requestID, method, path, ip, userAgent string, statusCode int, duration time.Duration) {
	l.Info("HTTP Request",
		"request_id", requestID,
		"method", method,
		"path", path,
		"ip", ip,
		"user_agent", userAgent,
		"status_code", statusCode,
		"duration_ms", duration.Milliseconds(),
	)
}

// AssessmentLogger logs a completed score computation
func (l *Logger) AssessmentLogger(strategy string, score int, stage, window string, clamped []string, duration time.Duration) {
	attrs := []any{
		"strategy", strategy,
		"score", score,
		"stage", stage,
		"window", window,
		"duration_us", duration.Microseconds(),
	}
	if len(clamped) > 0 {
		attrs = append(attrs, "clamped", clamped)
	}
	l.Info("Assessment Completed", attrs...)
}

// TrajectoryLogger logs a trajectory lookup
func (l *Logger) TrajectoryLogger(species, technology string, found bool) {
	l.Debug("Trajectory Lookup",
		"species", species,
		"technology", technology,
		"found", found,
	)
}

// APIErrorLogger logs API errors with context
func (l *Logger) APIErrorLogger(err error, method, path, ip string, statusCode int) {
	l.Error("API Error",
		"error", err.Error(),
		"method", method,
		"path", path,
		"ip", ip,
		"status_code", statusCode,
	)
}

// CacheLogger logs cache operations
func (l *Logger) CacheLogger(operation, key string, hit bool, itemCount int) {
	if len(key) > 8 {
		key = key[:8] + "..."
	}
	l.Debug("Cache Operation",
		"operation", operation,
		"key_hash", key,
		"hit", hit,
		"cache_size", itemCount,
	)
}

// SystemLogger logs system-level events
func (l *Logger) SystemLogger(event, details string) {
	l.Info("System Event",
		"event", event,
		"details", details,
		"uptime", time.Since(startTime).Round(time.Second).String(),
	)
}

// SecurityLogger logs security-related events
func (l *Logger) SecurityLogger(event, ip, userAgent string, details map[string]interface{}) {
	attrs := []any{
		"event", event,
		"ip", ip,
		"user_agent", userAgent,
	}
	for key, value := range details {
		attrs = append(attrs, key, value)
	}

	l.Warn("Security Event", attrs...)
}

var startTime = time.Now()

// Uptime reports time since process start
func Uptime() time.Duration {
	return time.Since(startTime)
}
