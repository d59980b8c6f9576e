package store

import (
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"os"

	"iptv-hub/internal/channel"
	"iptv-hub/internal/config"
	"iptv-hub/internal/user"
	"iptv-hub/internal/watch"
)

func setupGateway(t *testing.T) *Gateway {
	dbConn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := dbConn.AutoMigrate(&channel.Channel{}, &user.User{}, &watch.WatchTimeRecord{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	for _, table := range []string{CollectionChannels, CollectionUsers, CollectionWatchTime} {
		if err := dbConn.Exec("DELETE FROM " + table).Error; err != nil {
			t.Fatalf("failed to reset %s: %v", table, err)
		}
	}
	return NewGateway(dbConn)
}

// Dummy DSN for test (won't actually connect, just checks error path)
func TestOpen_InvalidDSN(t *testing.T) {
	cfg := &config.Config{}
	cfg.Postgres.DSN = "invalid-dsn-for-testing"
	_, err := Open(cfg)
	if err == nil {
		t.Errorf("expected error for invalid DSN, got nil")
	}
}

// Only runs against a real Postgres instance, skipped otherwise
func TestOpen_ValidDSN_AndMigrates(t *testing.T) {
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("set TEST_DB_DSN to run real DB test")
	}
	cfg := &config.Config{}
	cfg.Postgres.DSN = dsn
	gw, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if gw == nil {
		t.Fatalf("gateway not set")
	}
}

func TestInsertAndFindOne(t *testing.T) {
	gw := setupGateway(t)
	ch := channel.Channel{Name: "News 24", Group: "News", URL: "http://stream.example/news"}
	if err := gw.InsertOne(CollectionChannels, &ch); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if ch.ID == "" {
		t.Fatalf("expected generated id on insert")
	}
	var got channel.Channel
	if err := gw.FindOne(CollectionChannels, map[string]any{"id": ch.ID}, &got); err != nil {
		t.Fatalf("find one failed: %v", err)
	}
	if got.Name != "News 24" || got.URL != "http://stream.example/news" {
		t.Errorf("unexpected document: %+v", got)
	}
}

func TestFindOne_NoDocument(t *testing.T) {
	gw := setupGateway(t)
	var got user.User
	err := gw.FindOne(CollectionUsers, map[string]any{"email": "nobody@example.com"}, &got)
	if !errors.Is(err, ErrNoDocument) {
		t.Errorf("expected ErrNoDocument, got %v", err)
	}
}

func TestFindAll(t *testing.T) {
	gw := setupGateway(t)
	for _, name := range []string{"one", "two", "three"} {
		ch := channel.Channel{Name: name, URL: "http://stream.example/" + name}
		if err := gw.InsertOne(CollectionChannels, &ch); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}
	var channels []channel.Channel
	if err := gw.FindAll(CollectionChannels, &channels); err != nil {
		t.Fatalf("find all failed: %v", err)
	}
	if len(channels) != 3 {
		t.Errorf("expected 3 channels, got %d", len(channels))
	}
}

func TestUpdateOne_MatchedCount(t *testing.T) {
	gw := setupGateway(t)
	u := user.User{Name: "Alice", Email: "alice@example.com"}
	if err := gw.InsertOne(CollectionUsers, &u); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	matched, err := gw.UpdateOne(CollectionUsers, map[string]any{"email": "alice@example.com"}, map[string]any{"role": "admin"})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if matched != 1 {
		t.Errorf("expected 1 matched, got %d", matched)
	}
	matched, err = gw.UpdateOne(CollectionUsers, map[string]any{"email": "missing@example.com"}, map[string]any{"role": "admin"})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if matched != 0 {
		t.Errorf("expected 0 matched for absent filter, got %d", matched)
	}
	var got user.User
	if err := gw.FindOne(CollectionUsers, map[string]any{"email": "alice@example.com"}, &got); err != nil {
		t.Fatalf("find one failed: %v", err)
	}
	if got.Role != user.RoleAdmin {
		t.Errorf("role not updated, got %s", got.Role)
	}
}

func TestDeleteOne_Count(t *testing.T) {
	gw := setupGateway(t)
	ch := channel.Channel{Name: "doomed", URL: "http://stream.example/doomed"}
	if err := gw.InsertOne(CollectionChannels, &ch); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	deleted, err := gw.DeleteOne(CollectionChannels, map[string]any{"id": ch.ID})
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("expected 1 deleted, got %d", deleted)
	}
	deleted, err = gw.DeleteOne(CollectionChannels, map[string]any{"id": ch.ID})
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if deleted != 0 {
		t.Errorf("expected 0 deleted on repeat, got %d", deleted)
	}
}

// Every collection constant must name the table AutoMigrate actually
// creates, or the gateway would query tables that don't exist. Uses a
// private in-memory DB so nothing is pre-migrated.
func TestCollectionNamesMatchMigratedTables(t *testing.T) {
	dbConn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := dbConn.AutoMigrate(&channel.Channel{}, &user.User{}, &watch.WatchTimeRecord{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	for _, table := range []string{CollectionChannels, CollectionUsers, CollectionWatchTime} {
		if !dbConn.Migrator().HasTable(table) {
			t.Errorf("migration did not create table %q", table)
		}
	}

	gw := NewGateway(dbConn)
	rec := watch.WatchTimeRecord{ChannelURL: "http://stream.example/news", ChannelName: "News 24", TotalSeconds: 10}
	if err := gw.InsertOne(CollectionWatchTime, &rec); err != nil {
		t.Fatalf("insert into %s failed: %v", CollectionWatchTime, err)
	}
	var got watch.WatchTimeRecord
	if err := gw.FindOne(CollectionWatchTime, map[string]any{"channel_url": rec.ChannelURL}, &got); err != nil {
		t.Fatalf("find one in %s failed: %v", CollectionWatchTime, err)
	}
	if got.TotalSeconds != 10 {
		t.Errorf("unexpected record: %+v", got)
	}
}

func TestUpsertOne_Accumulates(t *testing.T) {
	gw := setupGateway(t)
	url := "http://stream.example/movies"
	report := func(name string, seconds int64) {
		now := time.Now().UTC()
		rec := watch.WatchTimeRecord{ChannelURL: url, ChannelName: name, TotalSeconds: seconds, UpdatedAt: now}
		err := gw.UpsertOne(CollectionWatchTime, []string{"channel_url"}, &rec, map[string]any{
			"channel_name":  name,
			"total_seconds": gorm.Expr("total_seconds + ?", seconds),
			"updated_at":    now,
		})
		if err != nil {
			t.Fatalf("upsert failed: %v", err)
		}
	}
	report("Movies HD", 30)
	report("Movies HD", 30)

	var records []watch.WatchTimeRecord
	if err := gw.FindAll(CollectionWatchTime, &records); err != nil {
		t.Fatalf("find all failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected a single record per url, got %d", len(records))
	}
	if records[0].TotalSeconds != 60 {
		t.Errorf("expected totalSeconds=60 after two reports of 30, got %d", records[0].TotalSeconds)
	}

	// Same url under a different name still collapses into one record.
	report("Movies (backup)", 15)
	var got watch.WatchTimeRecord
	if err := gw.FindOne(CollectionWatchTime, map[string]any{"channel_url": url}, &got); err != nil {
		t.Fatalf("find one failed: %v", err)
	}
	if got.TotalSeconds != 75 {
		t.Errorf("expected totalSeconds=75, got %d", got.TotalSeconds)
	}
	if got.ChannelName != "Movies (backup)" {
		t.Errorf("expected latest name to win, got %s", got.ChannelName)
	}
}
