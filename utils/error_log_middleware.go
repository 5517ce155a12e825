package utils

import (
	"log"
	"strings"

	"github.com/gin-gonic/gin"
)

const maxLoggedBody = 512

type errorLogWriter struct {
	gin.ResponseWriter
	gc *gin.Context
}

func (w errorLogWriter) Write(b []byte) (int, error) {
	status := w.gc.Writer.Status()
	if status >= 400 && strings.HasPrefix(w.Header().Get("content-type"), "application/json") {
		body := b
		if len(body) > maxLoggedBody {
			body = body[:maxLoggedBody]
		}
		log.Printf("[DEBUG ERROR]: %s %s, Status %d, Body: %s", w.gc.Request.Method, w.gc.Request.URL.Path, status, string(body))
	}
	return w.ResponseWriter.Write(b)
}

// ErrorLogMiddleware logs JSON error responses. It doesn't work with GZIP
func ErrorLogMiddleware(c *gin.Context) {
	blw := &errorLogWriter{gc: c, ResponseWriter: c.Writer}
	c.Writer = blw
	c.Next()
}
