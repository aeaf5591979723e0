package cache

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ZanzyTHEbar/lews/internal/monitoring"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	goleak.VerifyTestMain(m)
}

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func TestCacheExpiry(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := newCache(time.Minute, time.Hour, clock.Now)
	defer c.Close()

	c.Set("k", []byte(`{}`), "application/json")
	item, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "application/json", item.ContentType)

	clock.now = clock.now.Add(2 * time.Minute)
	_, ok = c.Get("k")
	assert.False(t, ok)

	stats := c.Stats()
	assert.Equal(t, 1, stats["expired_items"])
	assert.Equal(t, 1, c.removeExpired())
	assert.Zero(t, c.Size())
}

func TestCacheDeleteAndClear(t *testing.T) {
	c := NewCache(time.Minute)
	defer c.Close()

	c.Set("a", []byte("1"), "text/plain")
	c.Set("b", []byte("2"), "text/plain")
	c.Delete("a")
	assert.Equal(t, 1, c.Size())
	c.Clear()
	assert.Zero(t, c.Size())
}

func TestKeyDistinguishesQueries(t *testing.T) {
	assert.Equal(t, Key("GET", "/trajectory", "species=shrimp"), Key("GET", "/trajectory", "species=shrimp"))
	assert.NotEqual(t, Key("GET", "/trajectory", "species=shrimp"), Key("GET", "/trajectory", "species=insects"))
}

func TestCloseIsIdempotent(t *testing.T) {
	c := NewCache(time.Minute)
	c.Close()
	c.Close()
}

func TestMiddleware(t *testing.T) {
	c := NewCache(time.Minute)
	defer c.Close()

	var calls atomic.Int32
	r := gin.New()
	r.Use(c.Middleware(monitoring.NewMetrics(), nil))
	r.GET("/trajectory", func(ctx *gin.Context) {
		calls.Add(1)
		if ctx.Query("species") == "unicorns" {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Species data not found for unicorns"})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"technology": "factoryFarming"})
	})
	r.POST("/calculate", func(ctx *gin.Context) {
		calls.Add(1)
		ctx.JSON(http.StatusOK, gin.H{"score": 50})
	})

	get := func(target string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
		return w
	}

	first := get("/trajectory")
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
	second := get("/trajectory")
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())
	assert.Contains(t, second.Header().Get("Content-Type"), "application/json")
	assert.EqualValues(t, 1, calls.Load())

	get("/trajectory?species=unicorns")
	miss := get("/trajectory?species=unicorns")
	assert.Equal(t, http.StatusNotFound, miss.Code)
	assert.EqualValues(t, 3, calls.Load())

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/calculate", nil))
		assert.Empty(t, w.Header().Get("X-Cache"))
	}
	assert.EqualValues(t, 5, calls.Load())
}
