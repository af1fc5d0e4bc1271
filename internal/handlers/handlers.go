package handlers

import (
	"net/http"

	"inforequests/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// handleError provides a consistent way to handle and log errors
func handleError(c *gin.Context, status int, message string, err error) {
	zap.L().Warn(message,
		zap.Int("status", status),
		zap.String("path", c.Request.URL.Path),
		zap.String("client_ip", utils.GetRealClientIP(c)),
		zap.String("service", c.GetString("service")),
		zap.Error(err))
	c.JSON(status, gin.H{"error": message})
}

// HealthHandler is a simple health check endpoint
func HealthHandler(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}
