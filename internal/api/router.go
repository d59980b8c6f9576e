package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"iptv-hub/internal/auth"
	"iptv-hub/internal/config"
	"iptv-hub/internal/store"
)

func SetupRouter(cfg *config.Config, gw *store.Gateway, rdb *redis.Client) *gin.Engine {
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	if len(cfg.CORS.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.CORS.AllowedOrigins
		corsCfg.AllowCredentials = true
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	r.GET("/health", healthHandler)

	// Channels
	r.GET("/", ListChannelsHandler(gw))
	r.POST("/", auth.RequireAuth(cfg), auth.RequireAdmin(gw), CreateChannelHandler(gw))
	r.PUT("/:id", auth.RequireAuth(cfg), auth.RequireAdmin(gw), UpdateChannelHandler(gw))

	// Token issuance
	r.POST("/jwt", IssueTokenHandler(cfg))

	// Users
	r.POST("/users", CreateUserHandler(gw))
	r.GET("/users", auth.RequireAuth(cfg), auth.RequireAdmin(gw), ListUsersHandler(gw))
	r.PATCH("/dashBoard/allUsers/:email", auth.RequireAuth(cfg), auth.RequireAdmin(gw), UpdateUserRoleHandler(gw))

	// Watch time
	r.POST("/watch", ReportWatchHandler(gw, rdb))
	r.GET("/dashboard/watchTime", auth.RequireAuth(cfg), auth.RequireAdmin(gw), ListWatchTimeHandler(gw))
	r.GET("/dashboard/activeChannels", auth.RequireAuth(cfg), auth.RequireAdmin(gw), ActiveChannelsHandler(rdb))

	// Channel delete and user delete share the DELETE method tree, see
	// DeleteDispatch.
	r.DELETE("/*target", DeleteDispatch(cfg, gw))

	return r
}
