package middleware

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
)

// DefaultMinCompressLength is the smallest body worth compressing.
const DefaultMinCompressLength = 1024

// bufferedWriter holds the body back until the handler chain is done so the
// encoding can be chosen from the final size.
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

// Compress brotli-encodes response bodies of at least minLength bytes for
// clients that accept it. WebSocket upgrades pass through untouched.
func Compress(quality, minLength int) gin.HandlerFunc {
	if quality < brotli.BestSpeed || quality > brotli.BestCompression {
		quality = brotli.DefaultCompression
	}
	if minLength <= 0 {
		minLength = DefaultMinCompressLength
	}

	return func(c *gin.Context) {
		if strings.EqualFold(c.GetHeader("Upgrade"), "websocket") || !acceptsBrotli(c.Request) {
			c.Next()
			return
		}

		orig := c.Writer
		bw := &bufferedWriter{ResponseWriter: orig}
		c.Writer = bw
		c.Next()
		c.Writer = orig

		body := bw.buf.Bytes()
		if len(body) == 0 {
			return
		}

		h := orig.Header()
		h.Add("Vary", "Accept-Encoding")
		if len(body) < minLength || h.Get("Content-Encoding") != "" {
			if _, err := orig.Write(body); err != nil {
				_ = c.Error(err)
			}
			return
		}

		h.Set("Content-Encoding", "br")
		h.Del("Content-Length")
		bz := brotli.NewWriterLevel(orig, quality)
		if _, err := bz.Write(body); err != nil {
			_ = c.Error(err)
		}
		if err := bz.Close(); err != nil {
			_ = c.Error(err)
		}
	}
}

func acceptsBrotli(r *http.Request) bool {
	for _, enc := range strings.Split(r.Header.Get("Accept-Encoding"), ",") {
		name, _, _ := strings.Cut(strings.TrimSpace(enc), ";")
		if strings.EqualFold(name, "br") {
			return true
		}
	}
	return false
}
