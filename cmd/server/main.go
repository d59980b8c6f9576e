package main

import (
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"

	"iptv-hub/internal/api"
	"iptv-hub/internal/config"
	redisdb "iptv-hub/internal/redis"
	"iptv-hub/internal/store"
)

func main() {
	cfg, err := config.LoadConfig("config.json")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	gw, err := store.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Store init error: %v\n", err)
		os.Exit(1)
	}
	// Redis is optional; without it the active-channel dashboard is empty.
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redisdb.NewClient(cfg)
	}

	r := api.SetupRouter(cfg, gw, rdb)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	fmt.Printf("Starting server on %s\n", addr)
	if err := r.Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
