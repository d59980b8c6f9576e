package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"iptv-hub/internal/auth"
	"iptv-hub/internal/config"
)

type TokenRequest struct {
	Email string `json:"email"`
}

// POST /jwt
func IssueTokenHandler(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TokenRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
			respondError(c, http.StatusBadRequest, kindValidation, "Email required")
			return
		}
		token, err := auth.GenerateJWT(cfg.Server.JWTSecret, req.Email, auth.TokenTTL)
		if err != nil {
			respondError(c, http.StatusInternalServerError, kindStore, "Failed to generate token")
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}
