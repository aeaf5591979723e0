package cache

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"sync"
	"time"

	"github.com/ZanzyTHEbar/lews/internal/monitoring"
	"github.com/gin-gonic/gin"
)

const defaultCleanupInterval = 5 * time.Minute

// CacheItem represents a cached response with expiration
type CacheItem struct {
	Data        []byte
	ContentType string
	ExpiresAt   time.Time
}

// IsExpired checks if the cache item has expired at now
func (c *CacheItem) IsExpired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// Cache provides thread-safe caching with TTL
type Cache struct {
	mu    sync.RWMutex
	items map[string]*CacheItem
	ttl   time.Duration
	now   func() time.Time

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewCache creates a cache with the given TTL and starts its cleanup
// goroutine. Close releases it.
func NewCache(ttl time.Duration) *Cache {
	return newCache(ttl, defaultCleanupInterval, time.Now)
}

func newCache(ttl, cleanupEvery time.Duration, now func() time.Time) *Cache {
	c := &Cache{
		items: make(map[string]*CacheItem),
		ttl:   ttl,
		now:   now,
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	go c.cleanup(cleanupEvery)
	return c
}

// Close stops the cleanup goroutine. It is safe to call more than once.
func (c *Cache) Close() {
	c.stopOnce.Do(func() {
		close(c.stop)
		<-c.done
	})
}

func (c *Cache) cleanup(every time.Duration) {
	defer close(c.done)

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.removeExpired()
		}
	}
}

func (c *Cache) removeExpired() int {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, item := range c.items {
		if item.IsExpired(now) {
			delete(c.items, key)
			removed++
		}
	}
	return removed
}

// Key derives a stable cache key from a request line
func Key(method, path, rawQuery string) string {
	sum := sha256.Sum256([]byte(method + " " + path + "?" + rawQuery))
	return hex.EncodeToString(sum[:])
}

// Get retrieves an unexpired item from the cache
func (c *Cache) Get(key string) (*CacheItem, bool) {
	c.mu.RLock()
	item, exists := c.items[key]
	c.mu.RUnlock()

	if !exists || item.IsExpired(c.now()) {
		return nil, false
	}
	return item, true
}

// Set stores data under key for the cache TTL
func (c *Cache) Set(key string, data []byte, contentType string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = &CacheItem{
		Data:        data,
		ContentType: contentType,
		ExpiresAt:   c.now().Add(c.ttl),
	}
}

// Delete removes an item from the cache
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
}

// Clear removes all items from the cache
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*CacheItem)
}

// Size returns the number of items in the cache, expired or not
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.items)
}

// Stats returns cache statistics
func (c *Cache) Stats() map[string]interface{} {
	now := c.now()

	c.mu.RLock()
	defer c.mu.RUnlock()

	totalItems := len(c.items)
	expiredItems := 0
	for _, item := range c.items {
		if item.IsExpired(now) {
			expiredItems++
		}
	}

	return map[string]interface{}{
		"total_items":   totalItems,
		"expired_items": expiredItems,
		"active_items":  totalItems - expiredItems,
		"ttl_seconds":   c.ttl.Seconds(),
	}
}

// Middleware serves successful GET responses from the cache. Responses are
// derived from the read-only trajectory data, so they only change on restart.
func (c *Cache) Middleware(metrics *monitoring.Metrics, logger *monitoring.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.Request.Method != http.MethodGet {
			ctx.Next()
			return
		}

		key := Key(ctx.Request.Method, ctx.Request.URL.Path, ctx.Request.URL.RawQuery)

		if item, found := c.Get(key); found {
			if metrics != nil {
				metrics.IncrementCacheHit()
			}
			if logger != nil {
				logger.CacheLogger("get", key, true, c.Size())
			}
			ctx.Header("X-Cache", "HIT")
			ctx.Data(http.StatusOK, item.ContentType, item.Data)
			ctx.Abort()
			return
		}

		if metrics != nil {
			metrics.IncrementCacheMiss()
		}
		ctx.Header("X-Cache", "MISS")

		wrapper := &responseWriter{ResponseWriter: ctx.Writer, body: &bytes.Buffer{}}
		ctx.Writer = wrapper
		ctx.Next()

		if wrapper.Status() == http.StatusOK {
			c.Set(key, wrapper.body.Bytes(), wrapper.Header().Get("Content-Type"))
			if logger != nil {
				logger.CacheLogger("set", key, false, c.Size())
			}
		}
	}
}

// responseWriter wraps gin.ResponseWriter to capture response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(data []byte) (int, error) {
	w.body.Write(data)
	return w.ResponseWriter.Write(data)
}

func (w *responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
