package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /health
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}
