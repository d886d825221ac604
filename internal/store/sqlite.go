package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

// FetchRecord is one journaled acquisition: which source won, how many rows
// it produced and how long the read took. Quote rows themselves are never
// persisted.
type FetchRecord struct {
	ID         int64  `json:"id"`
	TS         int64  `json:"ts"`
	Source     string `json:"source"`
	Rows       int    `json:"rows"`
	DurationMs int64  `json:"duration_ms"`
	Notices    string `json:"notices,omitempty"`
	CreatedAt  string `json:"created_at"`
}

func Open(path string) (*Store, error) {
	if path == "" {
		path = "data/dashboard.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pragma wal: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=3000;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pragma busy_timeout: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS fetch_log (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			ts INTEGER NOT NULL,
			source TEXT,
			row_count INTEGER,
			duration_ms INTEGER,
			notices TEXT,
			created_at TEXT
		);`,
		`CREATE INDEX IF NOT EXISTS idx_fetch_log_ts ON fetch_log(ts);`,
		`CREATE INDEX IF NOT EXISTS idx_fetch_log_source ON fetch_log(source);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func (s *Store) InsertFetch(r FetchRecord) error {
	if s == nil || s.db == nil {
		return nil
	}
	if r.CreatedAt == "" {
		r.CreatedAt = time.Now().Format(time.RFC3339)
	}
	_, err := s.db.Exec(
		`INSERT INTO fetch_log (ts, source, row_count, duration_ms, notices, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.TS, r.Source, r.Rows, r.DurationMs, r.Notices, r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert fetch: %w", err)
	}
	return nil
}

func (s *Store) RecentFetches(limit int) ([]FetchRecord, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("store not initialized")
	}
	if limit <= 0 {
		limit = 200
	}
	if limit > 1000 {
		limit = 1000
	}
	rows, err := s.db.Query(
		`SELECT id, ts, source, row_count, duration_ms, notices, created_at
		 FROM fetch_log ORDER BY ts DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query fetches: %w", err)
	}
	defer rows.Close()

	var out []FetchRecord
	for rows.Next() {
		var r FetchRecord
		if err := rows.Scan(&r.ID, &r.TS, &r.Source, &r.Rows, &r.DurationMs, &r.Notices, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan fetch: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows fetch: %w", err)
	}
	return out, nil
}
