package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/modelserve/gateway/internal/interfaces/http/dto"
)

// BodyLimit returns a middleware that limits request body size. The
// cap guards the dispatch endpoints, whose input payload is forwarded
// to the backend verbatim.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				dto.NewErrorResponse("ERR_REQUEST_TOO_LARGE", "Request body exceeds maximum allowed size"))
			return
		}

		// Wrap the body with a limited reader for streaming requests
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
