package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// TerminalIDHeader identifies the POS terminal issuing the request. Every
// wizard session, draft slot and idempotency key is scoped to it.
const TerminalIDHeader = "X-Terminal-ID"

// TerminalMiddleware requires the terminal header and puts its value on the
// request context.
func TerminalMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		terminalID := c.GetHeader(TerminalIDHeader)
		if terminalID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "X-Terminal-ID header is required",
			})
			return
		}
		c.Set("terminal_id", terminalID)
		c.Next()
	}
}
