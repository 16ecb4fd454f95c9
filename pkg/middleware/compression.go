package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

// Compression levels
const (
	DefaultCompression = gzip.DefaultCompression
	BestSpeed          = gzip.BestSpeed
	BestCompression    = gzip.BestCompression
)

// gzipWriter compresses the body lazily so empty responses stay uncompressed.
type gzipWriter struct {
	gin.ResponseWriter
	writer  *gzip.Writer
	started bool
}

func (g *gzipWriter) start() {
	g.started = true
	h := g.Header()
	h.Set("Content-Encoding", "gzip")
	h.Add("Vary", "Accept-Encoding")
	h.Del("Content-Length")
	g.writer.Reset(g.ResponseWriter)
}

func (g *gzipWriter) Write(data []byte) (int, error) {
	if !g.started {
		g.start()
	}
	return g.writer.Write(data)
}

func (g *gzipWriter) WriteString(s string) (int, error) {
	return g.Write([]byte(s))
}

func (g *gzipWriter) finish() {
	if g.started {
		_ = g.writer.Close()
	}
}

// Compression returns a middleware that gzips responses for clients that accept it.
func Compression(level int) gin.HandlerFunc {
	pool := sync.Pool{
		New: func() interface{} {
			gz, err := gzip.NewWriterLevel(io.Discard, level)
			if err != nil {
				gz = gzip.NewWriter(io.Discard)
			}
			return gz
		},
	}

	return func(c *gin.Context) {
		if !shouldCompress(c.Request) {
			c.Next()
			return
		}

		gz := pool.Get().(*gzip.Writer)
		writer := &gzipWriter{ResponseWriter: c.Writer, writer: gz}
		c.Writer = writer

		defer func() {
			writer.finish()
			c.Writer = writer.ResponseWriter
			gz.Reset(io.Discard)
			pool.Put(gz)
		}()

		c.Next()
	}
}

func shouldCompress(req *http.Request) bool {
	if req.Method == http.MethodHead {
		return false
	}
	if !strings.Contains(req.Header.Get("Accept-Encoding"), "gzip") {
		return false
	}
	return !strings.Contains(strings.ToLower(req.Header.Get("Connection")), "upgrade")
}
