package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// ErrReplyNotFound is returned by GetReply when no reply is recorded for a source.
var ErrReplyNotFound = errors.New("storage: reply not found")

// --- Structures ---

// ReplyRecord links a command message to the bot's latest response to it.
type ReplyRecord struct {
	SourceID   string `json:"source_id"`
	Origin     string `json:"origin"`
	GuildID    string `json:"guild_id"`
	ChannelID  string `json:"channel_id"`
	ResponseID string `json:"response_id"`
	Command    string `json:"command"`
	// UpdatedAt is the time of the latest reply or edit.
	UpdatedAt time.Time `json:"updated_at"`
}

// --- DBStore ---

type DBStore struct {
	db *sql.DB
	mu sync.RWMutex
}

func NewDBStore(dataSourceName string) (*DBStore, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", dataSourceName, err)
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite %q: %w", dataSourceName, err)
	}
	store := &DBStore{db: db}
	if err = store.initTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init tables: %w", err)
	}
	return store, nil
}

func (s *DBStore) initTables() error {
	tables := []string{
		`CREATE TABLE IF NOT EXISTS replies (
			source_id TEXT PRIMARY KEY,
			origin TEXT NOT NULL,
			guild_id TEXT NOT NULL DEFAULT '',
			channel_id TEXT NOT NULL,
			response_id TEXT NOT NULL,
			command TEXT NOT NULL DEFAULT '',
			updated_at INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_replies_updated_at ON replies (updated_at);`,
	}
	for _, table := range tables {
		if _, err := s.db.Exec(table); err != nil {
			return err
		}
	}
	return nil
}

func (s *DBStore) Close() error {
	return s.db.Close()
}

func (s *DBStore) PingDB() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.db.Ping()
}

// --- Replies ---

// SaveReply inserts rec or replaces the record for the same source.
// A zero UpdatedAt is stored as the current time.
func (s *DBStore) SaveReply(rec ReplyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = time.Now()
	}
	_, err := s.db.Exec(`INSERT INTO replies
		(source_id, origin, guild_id, channel_id, response_id, command, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(source_id) DO UPDATE SET
			origin = excluded.origin,
			guild_id = excluded.guild_id,
			channel_id = excluded.channel_id,
			response_id = excluded.response_id,
			command = excluded.command,
			updated_at = excluded.updated_at`,
		rec.SourceID, rec.Origin, rec.GuildID, rec.ChannelID, rec.ResponseID, rec.Command, rec.UpdatedAt.UnixMilli())
	return err
}

func (s *DBStore) GetReply(sourceID string) (*ReplyRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec := &ReplyRecord{}
	var updatedAt int64
	err := s.db.QueryRow(`SELECT source_id, origin, guild_id, channel_id, response_id, command, updated_at
		FROM replies WHERE source_id = ?`, sourceID).
		Scan(&rec.SourceID, &rec.Origin, &rec.GuildID, &rec.ChannelID, &rec.ResponseID, &rec.Command, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReplyNotFound
	}
	if err != nil {
		return nil, err
	}
	rec.UpdatedAt = time.UnixMilli(updatedAt)
	return rec, nil
}

func (s *DBStore) DeleteReply(sourceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec("DELETE FROM replies WHERE source_id = ?", sourceID)
	return err
}

// PruneReplies removes records last updated before the given time and
// reports how many were removed.
func (s *DBStore) PruneReplies(before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result, err := s.db.Exec("DELETE FROM replies WHERE updated_at < ?", before.UnixMilli())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (s *DBStore) CountReplies() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM replies").Scan(&count)
	return count, err
}
