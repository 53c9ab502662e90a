package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/avelis/coachflow/internal/domain"
	_ "modernc.org/sqlite"
)

// slotName identifies the one snapshot slot this installation owns.
const slotName = "coachflow"

// SQLiteStore implements SnapshotStore on a local SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens (creating if needed) the snapshot database at dbPath.
func NewSQLite(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	// WAL mode so a reader opening the file mid-write never blocks.
	dsn := dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	PRAGMA busy_timeout = 5000;
	CREATE TABLE IF NOT EXISTS snapshots (
		slot TEXT PRIMARY KEY,
		data TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Load reads the snapshot slot. A missing slot or unparsable payload yields
// (nil, nil): prior state is simply gone, never a fatal condition.
func (s *SQLiteStore) Load(ctx context.Context) (*domain.Snapshot, error) {
	var data string
	row := s.db.QueryRowContext(ctx, `SELECT data FROM snapshots WHERE slot = ?`, slotName)
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snap domain.Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		slog.Warn("Discarding unparsable snapshot", "error", err)
		return nil, nil
	}
	return &snap, nil
}

// Save writes the snapshot, keeping only the most recent MaxStoredMessages
// messages. Last write wins.
func (s *SQLiteStore) Save(ctx context.Context, snap *domain.Snapshot) error {
	bounded := *snap
	if len(bounded.Messages) > MaxStoredMessages {
		bounded.Messages = bounded.Messages[len(bounded.Messages)-MaxStoredMessages:]
	}

	data, err := json.Marshal(&bounded)
	if err != nil {
		return fmt.Errorf("serialize snapshot: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO snapshots (slot, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		slotName, string(data), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
