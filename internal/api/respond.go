package api

import (
	"github.com/gin-gonic/gin"
)

// Stable machine-readable error kinds emitted by the handlers. The auth
// middleware writes its own "auth" and "forbidden" kinds.
const (
	kindValidation = "validation"
	kindNotFound   = "not_found"
	kindConflict   = "conflict"
	kindStore      = "store"
)

func respondError(c *gin.Context, status int, kind, message string) {
	c.JSON(status, gin.H{"error": gin.H{"kind": kind, "message": message}})
}
