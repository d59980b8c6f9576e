package watch

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const activeKeyPrefix = "watching:"

// ActiveWindow is how long a channel counts as actively watched after its
// last report.
const ActiveWindow = 5 * time.Minute

// MarkActive refreshes the activity marker for a stream URL. Best effort:
// a nil client (redis disabled) is a no-op.
func MarkActive(rdb *redis.Client, channelURL string) error {
	if rdb == nil {
		return nil
	}
	ctx := context.Background()
	key := activeKeyPrefix + channelURL
	return rdb.Set(ctx, key, time.Now().UTC().Format(time.RFC3339), ActiveWindow).Err()
}

// ActiveChannels returns the stream URLs reported within ActiveWindow.
func ActiveChannels(rdb *redis.Client) ([]string, error) {
	urls := []string{}
	if rdb == nil {
		return urls, nil
	}
	ctx := context.Background()
	var cursor uint64
	for {
		keys, newCursor, err := rdb.Scan(ctx, cursor, activeKeyPrefix+"*", 100).Result()
		if err != nil {
			return nil, err
		}
		for _, key := range keys {
			urls = append(urls, strings.TrimPrefix(key, activeKeyPrefix))
		}
		if newCursor == 0 {
			break
		}
		cursor = newCursor
	}
	return urls, nil
}
