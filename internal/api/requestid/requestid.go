package requestid

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// contextKey is the gin context key holding the request id
const contextKey = "request_id"

// headerKey is the HTTP header carrying the request id in both directions
const headerKey = "X-Request-ID"

// New returns middleware that assigns every request an id for log
// correlation, honoring one supplied by the caller, and echoes it in the
// response headers
func New() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerKey)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(contextKey, id)
		c.Writer.Header().Set(headerKey, id)

		c.Next()
	}
}

// Get returns the request id assigned by New, or an empty string when the
// middleware did not run
func Get(c *gin.Context) string {
	return c.GetString(contextKey)
}
