package auth

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"iptv-hub/internal/config"
	"iptv-hub/internal/store"
	"iptv-hub/internal/user"
)

// Context keys set by the middleware chain.
const (
	ContextEmailKey = "principalEmail"
	ContextRoleKey  = "principalRole"
)

// RequireAuth verifies the bearer token and attaches the principal's
// email to the request context. 401 when no token or the payload lacks an
// email, 403 when the signature is invalid or expired.
func RequireAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"kind": "auth", "message": "No token provided"}})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := ParseJWT(cfg.Server.JWTSecret, tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": gin.H{"kind": "auth", "message": "Invalid or expired token"}})
			return
		}
		if claims.Email == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"kind": "auth", "message": "Malformed token payload"}})
			return
		}
		c.Set(ContextEmailKey, claims.Email)
		c.Next()
	}
}

// RequireAdmin looks the principal up in the user registry and admits only
// role "admin". Must run after RequireAuth.
func RequireAdmin(gw *store.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString(ContextEmailKey)
		var u user.User
		err := gw.FindOne(store.CollectionUsers, map[string]any{"email": email}, &u)
		if errors.Is(err, store.ErrNoDocument) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": gin.H{"kind": "not_found", "message": "User not found"}})
			return
		}
		if err != nil {
			log.Printf("[Auth] principal lookup failed: %v", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": gin.H{"kind": "store", "message": "User lookup failed"}})
			return
		}
		if u.Role != user.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": gin.H{"kind": "forbidden", "message": "Admin only"}})
			return
		}
		c.Set(ContextRoleKey, string(u.Role))
		c.Next()
	}
}
