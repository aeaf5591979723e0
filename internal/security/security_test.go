package security

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(cfg Config) *gin.Engine {
	r := gin.New()
	r.Use(Middlewares(cfg)...)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/swagger/index.html", func(c *gin.Context) {
		c.String(http.StatusOK, "<html></html>")
	})
	r.POST("/calculate", func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		_, hasDeadline := c.Request.Context().Deadline()
		c.JSON(http.StatusOK, gin.H{"size": len(body), "deadline": hasDeadline})
	})
	return r
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Contains(t, cfg.AllowedOrigins, "http://localhost:3000")
	assert.False(t, cfg.EnableHSTS)
	assert.Equal(t, int64(64<<10), cfg.MaxBodyBytes)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
}

func TestSecurityHeaders(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter(DefaultConfig()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "strict-origin-when-cross-origin", w.Header().Get("Referrer-Policy"))
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
	assert.Equal(t, apiPolicy, w.Header().Get("Content-Security-Policy"))
}

func TestHSTSWhenEnabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnableHSTS = true

	w := httptest.NewRecorder()
	newRouter(cfg).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Contains(t, w.Header().Get("Strict-Transport-Security"), "max-age=31536000")
}

func TestCSPSkipsSwagger(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter(DefaultConfig()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil))
	assert.Empty(t, w.Header().Get("Content-Security-Policy"))
}

func TestCORS(t *testing.T) {
	r := newRouter(DefaultConfig())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSAllowAll(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AllowedOrigins = []string{"*"}
	r := newRouter(cfg)

	req := httptest.NewRequest(http.MethodOptions, "/calculate", nil)
	req.Header.Set("Origin", "https://dashboard.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestValidateContentType(t *testing.T) {
	r := newRouter(DefaultConfig())

	req := httptest.NewRequest(http.MethodPost, "/calculate", strings.NewReader("animals=50"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
	assert.JSONEq(t, `{"error":"Content-Type must be application/json"}`, w.Body.String())

	req = httptest.NewRequest(http.MethodPost, "/calculate", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"size":2,"deadline":true}`, w.Body.String())
}

func TestBodyLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxBodyBytes = 8
	r := newRouter(cfg)

	req := httptest.NewRequest(http.MethodPost, "/calculate", strings.NewReader(`{"animals":50,"growth":50}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "too large")
}
