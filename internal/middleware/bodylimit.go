package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// BodyLimit caps request body size. Base64 receipt images can be large, so the
// limit is configurable in megabytes rather than hardcoded.
func BodyLimit(maxMB int64) gin.HandlerFunc {
	maxBytes := maxMB << 20
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
