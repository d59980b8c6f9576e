package watch

import (
	"time"
)

// WatchTimeRecord accumulates viewing seconds per stream URL. The key is
// the URL alone: two channel names sharing a URL collapse into one record
// and the most recently reported name wins.
type WatchTimeRecord struct {
	ChannelURL   string    `gorm:"primaryKey;size:512;column:channel_url" json:"channelUrl"`
	ChannelName  string    `gorm:"size:128" json:"channelName"`
	TotalSeconds int64     `gorm:"not null;default:0" json:"totalSeconds"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// TableName specifies the table name for GORM
func (WatchTimeRecord) TableName() string {
	return "watch_times"
}
