package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// multipartOverhead leaves room for the form boundaries and the text fields.
const multipartOverhead = 64 << 10

// LimitBody caps the request body at maxBytes plus multipart framing. Reads past the
// cap fail, so oversized uploads are rejected before they reach the photo store.
func LimitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes+multipartOverhead {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File too large"})
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes+multipartOverhead)
		c.Next()
	}
}
