package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/schedularhq/schedular-api/internal/presentation/http/middleware"
)

// GetTerminalID extracts the terminal ID from the Gin context
func GetTerminalID(c *gin.Context) string {
	if id := c.GetString("terminal_id"); id != "" {
		return id
	}
	return c.GetHeader(middleware.TerminalIDHeader)
}
