// Package middleware holds HTTP middleware shared by the API router.
package middleware

import (
	"bytes"
	"compress/gzip"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

// CompressionConfig holds configuration for response compression
type CompressionConfig struct {
	MinSize          int      // smallest body worth compressing, in bytes
	CompressionLevel int      // gzip level, 1-9
	ContentTypes     []string // media types eligible for compression
}

// DefaultCompressionConfig returns the default compression configuration
func DefaultCompressionConfig() CompressionConfig {
	return CompressionConfig{
		MinSize:          1024,
		CompressionLevel: gzip.DefaultCompression,
		ContentTypes:     []string{"application/json", "text/plain", "text/html"},
	}
}

// Compressor gzips buffered responses for clients that accept it
type Compressor struct {
	config CompressionConfig
	pool   sync.Pool

	total      atomic.Int64
	compressed atomic.Int64
}

// NewCompressor creates the middleware. An invalid level falls back to the default.
func NewCompressor(config CompressionConfig) *Compressor {
	if config.CompressionLevel < gzip.HuffmanOnly || config.CompressionLevel > gzip.BestCompression {
		config.CompressionLevel = gzip.DefaultCompression
	}
	cm := &Compressor{config: config}
	cm.pool.New = func() interface{} {
		gz, _ := gzip.NewWriterLevel(nil, config.CompressionLevel)
		return gz
	}
	return cm
}

// Handler returns the gin middleware
func (cm *Compressor) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodHead || !acceptsGzip(c.Request) {
			c.Next()
			return
		}

		bw := &bufferedWriter{ResponseWriter: c.Writer}
		c.Writer = bw
		// deferred so a recovered panic further out writes to the real writer
		defer func() {
			c.Writer = bw.ResponseWriter
			cm.finish(bw)
		}()

		c.Next()
	}
}

func (cm *Compressor) finish(bw *bufferedWriter) {
	body := bw.buf.Bytes()
	if len(body) == 0 {
		return
	}
	cm.total.Add(1)

	w := bw.ResponseWriter
	h := w.Header()
	if len(body) < cm.config.MinSize || h.Get("Content-Encoding") != "" || !cm.compressible(h.Get("Content-Type")) {
		_, _ = w.Write(body)
		return
	}

	h.Set("Content-Encoding", "gzip")
	h.Add("Vary", "Accept-Encoding")
	h.Del("Content-Length")

	gz := cm.pool.Get().(*gzip.Writer)
	gz.Reset(w)
	_, _ = gz.Write(body)
	_ = gz.Close()
	cm.pool.Put(gz)
	cm.compressed.Add(1)
}

func (cm *Compressor) compressible(contentType string) bool {
	for _, ct := range cm.config.ContentTypes {
		if strings.Contains(contentType, ct) {
			return true
		}
	}
	return false
}

// Stats reports how many buffered responses were compressed
func (cm *Compressor) Stats() map[string]interface{} {
	return map[string]interface{}{
		"responses":  cm.total.Load(),
		"compressed": cm.compressed.Load(),
	}
}

func acceptsGzip(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept-Encoding"), "gzip")
}

// bufferedWriter holds the body back until the handler chain has finished
// so the encoding can be chosen from the complete response.
type bufferedWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *bufferedWriter) Write(data []byte) (int, error) {
	return w.buf.Write(data)
}

func (w *bufferedWriter) WriteString(s string) (int, error) {
	return w.buf.WriteString(s)
}

// WriteHeaderNow is deferred to finish; the status is kept by WriteHeader
func (w *bufferedWriter) WriteHeaderNow() {}

func (w *bufferedWriter) Written() bool {
	return w.buf.Len() > 0 || w.ResponseWriter.Written()
}

func (w *bufferedWriter) Size() int {
	return w.buf.Len()
}
