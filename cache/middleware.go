package cache

import (
	"bytes"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Middleware caches successful public article detail responses on disk.
// Only GET requests under /api/articles/<slug> and /api/kb/<slug> are
// cached; admin routes never pass through it.
func Middleware(maxAge time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		table, slug := extractFromPath(c.Request.URL.Path)
		if table == "" || slug == "" {
			c.Next()
			return
		}

		if cached, found := Read(table, slug, maxAge); found {
			c.Header("X-Cache", "HIT")
			c.Data(http.StatusOK, "application/json; charset=utf-8", cached)
			c.Abort()
			return
		}

		c.Header("X-Cache", "MISS")

		writer := &responseWriter{
			ResponseWriter: c.Writer,
			body:           bytes.NewBuffer(nil),
		}
		c.Writer = writer

		c.Next()

		if c.Writer.Status() == http.StatusOK {
			Write(table, slug, writer.body.Bytes())
		}
	}
}

// extractFromPath maps /api/articles/<slug> and /api/kb/<slug> to a
// cache table and slug. List endpoints (no slug segment) are skipped.
func extractFromPath(path string) (table, slug string) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 3 || parts[0] != "api" {
		return "", ""
	}

	switch parts[1] {
	case "articles":
		return "articles", parts[2]
	case "kb":
		return "kb", parts[2]
	}
	return "", ""
}
