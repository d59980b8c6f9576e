package store

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"iptv-hub/internal/channel"
	"iptv-hub/internal/config"
	"iptv-hub/internal/user"
	"iptv-hub/internal/watch"
)

// Collection names. All three live on the one connection opened by Open.
const (
	CollectionChannels  = "channels"
	CollectionUsers     = "users"
	CollectionWatchTime = "watch_times"
)

// ErrNoDocument is returned by FindOne when the filter matches nothing.
var ErrNoDocument = errors.New("store: no matching document")

// Gateway wraps the single process-wide store connection. It is opened
// once at startup and injected into handlers; it never retries — a failed
// operation surfaces to the caller as an error.
type Gateway struct {
	db *gorm.DB
}

func Open(cfg *config.Config) (*Gateway, error) {
	db, err := gorm.Open(postgres.Open(cfg.Postgres.DSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("store: open: %w", err)
	}
	if err := db.AutoMigrate(&channel.Channel{}, &user.User{}, &watch.WatchTimeRecord{}); err != nil {
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	log.Printf("[Store] connected and migrated")
	return &Gateway{db: db}, nil
}

// NewGateway wraps an already-open connection (used by tests to run the
// gateway over in-memory sqlite).
func NewGateway(db *gorm.DB) *Gateway {
	return &Gateway{db: db}
}

func (g *Gateway) FindAll(collection string, out any) error {
	if err := g.db.Table(collection).Find(out).Error; err != nil {
		return fmt.Errorf("store: find all %s: %w", collection, err)
	}
	return nil
}

func (g *Gateway) FindOne(collection string, filter map[string]any, out any) error {
	err := g.db.Table(collection).Where(filter).Take(out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNoDocument
	}
	if err != nil {
		return fmt.Errorf("store: find one %s: %w", collection, err)
	}
	return nil
}

func (g *Gateway) InsertOne(collection string, doc any) error {
	if err := g.db.Table(collection).Create(doc).Error; err != nil {
		return fmt.Errorf("store: insert %s: %w", collection, err)
	}
	return nil
}

// UpdateOne applies update to the documents matching filter and returns
// how many matched. Callers filter on unique keys, so the count is 0 or 1.
func (g *Gateway) UpdateOne(collection string, filter, update map[string]any) (int64, error) {
	res := g.db.Table(collection).Where(filter).Updates(update)
	if res.Error != nil {
		return 0, fmt.Errorf("store: update %s: %w", collection, res.Error)
	}
	return res.RowsAffected, nil
}

func (g *Gateway) DeleteOne(collection string, filter map[string]any) (int64, error) {
	res := g.db.Table(collection).Where(filter).Delete(nil)
	if res.Error != nil {
		return 0, fmt.Errorf("store: delete %s: %w", collection, res.Error)
	}
	return res.RowsAffected, nil
}

// UpsertOne inserts doc, or when a row already holds the conflict columns
// applies onConflict to it instead. The whole operation is one statement,
// so concurrent upserts against the same key never lose updates.
func (g *Gateway) UpsertOne(collection string, conflictColumns []string, doc any, onConflict map[string]any) error {
	cols := make([]clause.Column, 0, len(conflictColumns))
	for _, name := range conflictColumns {
		cols = append(cols, clause.Column{Name: name})
	}
	err := g.db.Table(collection).Clauses(clause.OnConflict{
		Columns:   cols,
		DoUpdates: clause.Assignments(onConflict),
	}).Create(doc).Error
	if err != nil {
		return fmt.Errorf("store: upsert %s: %w", collection, err)
	}
	return nil
}
