package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"iptv-hub/internal/channel"
	"iptv-hub/internal/store"
)

type ChannelRequest struct {
	Name  string         `json:"name"`
	Group string         `json:"group"`
	Logo  string         `json:"logo"`
	URL   string         `json:"url"`
	Attrs map[string]any `json:"attrs"`
}

func (r *ChannelRequest) attrsJSON() datatypes.JSON {
	if len(r.Attrs) == 0 {
		return nil
	}
	b, err := json.Marshal(r.Attrs)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}

// GET /
func ListChannelsHandler(gw *store.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		channels := []channel.Channel{}
		if err := gw.FindAll(store.CollectionChannels, &channels); err != nil {
			respondError(c, http.StatusInternalServerError, kindStore, "List error")
			return
		}
		c.JSON(http.StatusOK, channels)
	}
}

// POST /  [admin only]
func CreateChannelHandler(gw *store.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ChannelRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" || req.URL == "" {
			respondError(c, http.StatusBadRequest, kindValidation, "Name and url required")
			return
		}
		ch := channel.Channel{
			Name:  req.Name,
			Group: req.Group,
			Logo:  req.Logo,
			URL:   req.URL,
			Attrs: req.attrsJSON(),
		}
		if err := gw.InsertOne(store.CollectionChannels, &ch); err != nil {
			respondError(c, http.StatusInternalServerError, kindStore, "Create error")
			return
		}
		c.JSON(http.StatusCreated, ch)
	}
}

// PUT /:id  [admin only]
func UpdateChannelHandler(gw *store.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if uuid.Validate(id) != nil {
			respondError(c, http.StatusBadRequest, kindValidation, "Invalid ID")
			return
		}
		var req ChannelRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" || req.URL == "" {
			respondError(c, http.StatusBadRequest, kindValidation, "Name and url required")
			return
		}
		// Full-field overwrite of the mutable document fields.
		update := map[string]any{
			"name":       req.Name,
			"group":      req.Group,
			"logo":       req.Logo,
			"url":        req.URL,
			"attrs":      req.attrsJSON(),
			"updated_at": time.Now().UTC(),
		}
		matched, err := gw.UpdateOne(store.CollectionChannels, map[string]any{"id": id}, update)
		if err != nil {
			respondError(c, http.StatusInternalServerError, kindStore, "Update error")
			return
		}
		if matched == 0 {
			respondError(c, http.StatusNotFound, kindNotFound, "Channel not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Channel updated"})
	}
}

// DELETE /:id  [admin only]
func DeleteChannelHandler(gw *store.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if uuid.Validate(id) != nil {
			respondError(c, http.StatusBadRequest, kindValidation, "Invalid ID")
			return
		}
		deleted, err := gw.DeleteOne(store.CollectionChannels, map[string]any{"id": id})
		if err != nil {
			respondError(c, http.StatusInternalServerError, kindStore, "Delete error")
			return
		}
		if deleted == 0 {
			respondError(c, http.StatusNotFound, kindNotFound, "Channel not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "deleteCount": deleted})
	}
}
