package bot

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"cmdbridge/config"
	"cmdbridge/logger"
	"cmdbridge/storage"
)

func newTestBot(t *testing.T, retention time.Duration) (*Bot, *storage.DBStore) {
	t.Helper()
	store, err := storage.NewDBStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewDBStore failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	cfg := &config.Config{}
	cfg.Ledger.Retention = retention
	return &Bot{cfg: cfg, log: logger.Nop(), dbStore: store}, store
}

func TestPruneRepliesUsesRetention(t *testing.T) {
	b, store := newTestBot(t, 24*time.Hour)
	now := time.UnixMilli(1700000000000)

	records := map[string]time.Time{
		"expired":  now.Add(-25 * time.Hour),
		"boundary": now.Add(-24 * time.Hour),
		"recent":   now.Add(-time.Hour),
	}
	for id, at := range records {
		rec := storage.ReplyRecord{SourceID: id, Origin: "message", ChannelID: "chan", ResponseID: "res-" + id, UpdatedAt: at}
		if err := store.SaveReply(rec); err != nil {
			t.Fatalf("SaveReply(%s) failed: %v", id, err)
		}
	}

	b.pruneReplies(now)

	if _, err := store.GetReply("expired"); !errors.Is(err, storage.ErrReplyNotFound) {
		t.Errorf("expired record was kept: %v", err)
	}
	for _, id := range []string{"boundary", "recent"} {
		if _, err := store.GetReply(id); err != nil {
			t.Errorf("record %s was pruned: %v", id, err)
		}
	}
}

func TestPruneRepliesShorterRetention(t *testing.T) {
	b, store := newTestBot(t, time.Hour)
	now := time.UnixMilli(1700000000000)
	if err := store.SaveReply(storage.ReplyRecord{SourceID: "src", Origin: "message", ChannelID: "chan", ResponseID: "res", UpdatedAt: now.Add(-2 * time.Hour)}); err != nil {
		t.Fatalf("SaveReply failed: %v", err)
	}

	b.pruneReplies(now)

	if n, err := store.CountReplies(); err != nil || n != 0 {
		t.Errorf("CountReplies = %d, %v, want 0", n, err)
	}
}
