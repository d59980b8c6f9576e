package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"iptv-hub/internal/auth"
	"iptv-hub/internal/store"
	"iptv-hub/internal/user"
)

type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// POST /users — create-or-return by email. Reposting the same email never
// creates a duplicate.
func CreateUserHandler(gw *store.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" || req.Email == "" {
			respondError(c, http.StatusBadRequest, kindValidation, "Name & Email required")
			return
		}
		if req.Role != "" && !user.ValidRole(req.Role) {
			respondError(c, http.StatusBadRequest, kindValidation, "Invalid role value")
			return
		}
		var existing user.User
		err := gw.FindOne(store.CollectionUsers, map[string]any{"email": req.Email}, &existing)
		if err == nil {
			c.JSON(http.StatusOK, gin.H{"message": "User already exists", "user": existing})
			return
		}
		if !errors.Is(err, store.ErrNoDocument) {
			respondError(c, http.StatusInternalServerError, kindStore, "User lookup failed")
			return
		}
		u := user.User{
			Name:  req.Name,
			Email: req.Email,
			Role:  user.Role(req.Role),
		}
		if err := gw.InsertOne(store.CollectionUsers, &u); err != nil {
			respondError(c, http.StatusInternalServerError, kindStore, "Create error")
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "User saved", "user": u})
	}
}

// GET /users  [admin only]
func ListUsersHandler(gw *store.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		users := []user.User{}
		if err := gw.FindAll(store.CollectionUsers, &users); err != nil {
			respondError(c, http.StatusInternalServerError, kindStore, "List error")
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

// DELETE /dashBoard/allUsers/:id  [authenticated]
func DeleteUserHandler(gw *store.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if uuid.Validate(id) != nil {
			respondError(c, http.StatusBadRequest, kindValidation, "Invalid ID")
			return
		}
		var u user.User
		err := gw.FindOne(store.CollectionUsers, map[string]any{"id": id}, &u)
		if errors.Is(err, store.ErrNoDocument) {
			respondError(c, http.StatusNotFound, kindNotFound, "User not found")
			return
		}
		if err != nil {
			respondError(c, http.StatusInternalServerError, kindStore, "User lookup failed")
			return
		}
		if u.Email == c.GetString(auth.ContextEmailKey) {
			respondError(c, http.StatusForbidden, kindConflict, "Cannot delete your own account")
			return
		}
		if _, err := gw.DeleteOne(store.CollectionUsers, map[string]any{"id": id}); err != nil {
			respondError(c, http.StatusInternalServerError, kindStore, "Delete error")
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "User deleted"})
	}
}

type RolePatchRequest struct {
	Role string `json:"role"`
}

// PATCH /dashBoard/allUsers/:email  [admin only]
func UpdateUserRoleHandler(gw *store.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Param("email")
		var req RolePatchRequest
		if err := c.ShouldBindJSON(&req); err != nil || !user.ValidRole(req.Role) {
			respondError(c, http.StatusBadRequest, kindValidation, "Invalid role value")
			return
		}
		if email == c.GetString(auth.ContextEmailKey) {
			respondError(c, http.StatusForbidden, kindConflict, "Cannot change your own role")
			return
		}
		var u user.User
		err := gw.FindOne(store.CollectionUsers, map[string]any{"email": email}, &u)
		if errors.Is(err, store.ErrNoDocument) {
			respondError(c, http.StatusNotFound, kindNotFound, "User not found")
			return
		}
		if err != nil {
			respondError(c, http.StatusInternalServerError, kindStore, "User lookup failed")
			return
		}
		if u.Role == user.Role(req.Role) {
			c.JSON(http.StatusOK, gin.H{"success": true, "modified": false, "message": "Role unchanged"})
			return
		}
		update := map[string]any{"role": req.Role, "updated_at": time.Now().UTC()}
		if _, err := gw.UpdateOne(store.CollectionUsers, map[string]any{"email": email}, update); err != nil {
			respondError(c, http.StatusInternalServerError, kindStore, "Update error")
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "modified": true, "message": "Role updated"})
	}
}
