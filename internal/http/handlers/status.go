package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type StatusHandler struct {
	serviceName string
	version     string
	features    []string
}

func NewStatusHandler(serviceName, version string, features []string) *StatusHandler {
	return &StatusHandler{serviceName: serviceName, version: version, features: features}
}

func (h *StatusHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "online",
		"service":   h.serviceName,
		"version":   h.version,
		"timestamp": time.Now().Format(time.RFC3339),
		"features":  h.features,
	})
}
