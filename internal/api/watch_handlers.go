package api

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"iptv-hub/internal/store"
	"iptv-hub/internal/watch"
)

type WatchReport struct {
	ChannelURL  string `json:"channelUrl"`
	ChannelName string `json:"channelName"`
	Seconds     int64  `json:"seconds"`
}

// POST /watch — accumulate seconds for a stream URL. One atomic upsert:
// concurrent reports for the same URL never lose increments.
func ReportWatchHandler(gw *store.Gateway, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req WatchReport
		if err := c.ShouldBindJSON(&req); err != nil || req.ChannelURL == "" || req.Seconds <= 0 {
			respondError(c, http.StatusBadRequest, kindValidation, "channelUrl and seconds required")
			return
		}
		now := time.Now().UTC()
		rec := watch.WatchTimeRecord{
			ChannelURL:   req.ChannelURL,
			ChannelName:  req.ChannelName,
			TotalSeconds: req.Seconds,
			UpdatedAt:    now,
		}
		err := gw.UpsertOne(store.CollectionWatchTime, []string{"channel_url"}, &rec, map[string]any{
			"channel_name":  req.ChannelName,
			"total_seconds": gorm.Expr("total_seconds + ?", req.Seconds),
			"updated_at":    now,
		})
		if err != nil {
			respondError(c, http.StatusInternalServerError, kindStore, "Watch time update error")
			return
		}
		if err := watch.MarkActive(rdb, req.ChannelURL); err != nil {
			log.Printf("[Watch] activity mark failed: %v", err)
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// GET /dashboard/watchTime  [admin only]
func ListWatchTimeHandler(gw *store.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		records := []watch.WatchTimeRecord{}
		if err := gw.FindAll(store.CollectionWatchTime, &records); err != nil {
			respondError(c, http.StatusInternalServerError, kindStore, "List error")
			return
		}
		c.JSON(http.StatusOK, records)
	}
}

// GET /dashboard/activeChannels  [admin only]
func ActiveChannelsHandler(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		urls, err := watch.ActiveChannels(rdb)
		if err != nil {
			respondError(c, http.StatusInternalServerError, kindStore, "Active channel lookup failed")
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": len(urls), "channels": urls})
	}
}
