// cache/cache.go
package cache

import (
	"bytes"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
)

// Path-scoped response cache for server-rendered GET routes. A cached path
// is served as-is until a mutation calls InvalidatePath for it, at which
// point the next request recomputes the response.

type entry struct {
	status      int
	contentType string
	body        []byte
}

var (
	mu      sync.RWMutex
	entries = map[string]entry{}
)

// Middleware serves cached bodies for GET requests and captures fresh
// responses for later hits. Only 2xx responses are stored.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		path := c.Request.URL.Path

		mu.RLock()
		e, ok := entries[path]
		mu.RUnlock()
		if ok {
			c.Header("X-Cache", "HIT")
			c.Data(e.status, e.contentType, e.body)
			c.Abort()
			return
		}

		w := &captureWriter{ResponseWriter: c.Writer}
		c.Writer = w
		c.Next()

		status := w.Status()
		if status >= 200 && status < 300 {
			mu.Lock()
			entries[path] = entry{
				status:      status,
				contentType: w.Header().Get("Content-Type"),
				body:        w.buf.Bytes(),
			}
			mu.Unlock()
		}
	}
}

// InvalidatePath drops the cached response for a route so it is regenerated
// on the next request. Unknown paths are a no-op.
func InvalidatePath(path string) {
	mu.Lock()
	delete(entries, path)
	mu.Unlock()
}

// Flush clears the whole cache.
func Flush() {
	mu.Lock()
	entries = map[string]entry{}
	mu.Unlock()
}

type captureWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
