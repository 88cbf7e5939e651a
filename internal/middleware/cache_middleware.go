package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
)

// cachedResponse is one stored GET response body with its status and
// content type.
type cachedResponse struct {
	status      int
	contentType string
	body        []byte
}

// bodyCapturingWriter duplicates the response body so it can be stored
// after the handler runs.
type bodyCapturingWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *bodyCapturingWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

// CacheMiddleware serves successful GET responses from an in-memory
// cache for the given TTL. The fleet and feed endpoints are read far more
// often than umbrellas change hands, so a short TTL absorbs most of the
// read traffic.
func CacheMiddleware(ttl time.Duration) gin.HandlerFunc {
	store := gocache.New(ttl, 2*ttl)
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := c.Request.URL.RequestURI()
		if v, ok := store.Get(key); ok {
			cached := v.(*cachedResponse)
			c.Data(cached.status, cached.contentType, cached.body)
			c.Abort()
			return
		}

		writer := &bodyCapturingWriter{ResponseWriter: c.Writer}
		c.Writer = writer
		c.Next()

		status := c.Writer.Status()
		if status == http.StatusOK {
			store.Set(key, &cachedResponse{
				status:      status,
				contentType: writer.Header().Get("Content-Type"),
				body:        writer.buf.Bytes(),
			}, ttl)
		}
	}
}
