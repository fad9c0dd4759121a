package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cruisebooking/internal/upstream"
)

type SystemHandler struct {
	Client *upstream.Client
}

// GET /api/health
func (h SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// GET /api/upstream-check
func (h SystemHandler) UpstreamCheck(c *gin.Context) {
	if err := h.Client.Health(c.Request.Context()); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "upstream": h.Client.BaseURL})
}
