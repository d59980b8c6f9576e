package channel

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Channel is one IPTV channel document. Attrs carries free-form
// playlist attributes (tvg-id, tvg-language and friends) untouched.
type Channel struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	Name      string         `gorm:"size:128;not null" json:"name"`
	Group     string         `gorm:"size:64" json:"group"`
	Logo      string         `gorm:"size:512" json:"logo"`
	URL       string         `gorm:"size:512;not null" json:"url"`
	Attrs     datatypes.JSON `json:"attrs,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

func (ch *Channel) BeforeCreate(tx *gorm.DB) error {
	if ch.ID == "" {
		ch.ID = uuid.NewString()
	}
	return nil
}
