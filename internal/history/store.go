// Package history persists recent activity (calculator runs and assistant
// interactions) in SQLite, capped to a configurable number of entries.
package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"plcortex/internal/logging"
)

// Kind classifies a history entry.
type Kind string

const (
	KindScaling    Kind = "scaling"
	KindCalculator Kind = "calculator"
	KindLookup     Kind = "lookup"
	KindDiagnosis  Kind = "diagnosis"
	KindMigration  Kind = "migration"
	KindCommission Kind = "commission"
)

// Entry is one recorded activity.
type Entry struct {
	ID        string
	Kind      Kind
	Summary   string
	Payload   string // JSON detail blob
	CreatedAt time.Time
}

// Store is the SQLite-backed recent-activity store.
type Store struct {
	db         *sql.DB
	mu         sync.Mutex
	maxEntries int
}

// NewStore opens (or creates) the history database at path. maxEntries caps
// the store; older entries are pruned on every Record.
func NewStore(path string, maxEntries int) (*Store, error) {
	if maxEntries < 1 {
		return nil, fmt.Errorf("history: max entries must be positive, got %d", maxEntries)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("history: failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("history: failed to open database: %w", err)
	}

	s := &Store{db: db, maxEntries: maxEntries}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS activity (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		summary TEXT NOT NULL,
		payload TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_activity_created ON activity(created_at);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("history: failed to create schema: %w", err)
	}
	return nil
}

// Record stores one activity and prunes past the cap. payload may be any
// JSON-serializable detail value, or nil.
func (s *Store) Record(kind Kind, summary string, payload interface{}) error {
	if summary == "" {
		return fmt.Errorf("history: summary required")
	}

	var payloadJSON string
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("history: failed to marshal payload: %w", err)
		}
		payloadJSON = string(b)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO activity (id, kind, summary, payload, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, string(kind), summary, payloadJSON, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("history: failed to insert: %w", err)
	}

	// Prune everything past the cap, oldest first.
	_, err = s.db.Exec(
		`DELETE FROM activity WHERE id NOT IN (
			SELECT id FROM activity ORDER BY created_at DESC, id LIMIT ?
		)`, s.maxEntries,
	)
	if err != nil {
		return fmt.Errorf("history: failed to prune: %w", err)
	}

	logging.Get(logging.CategoryHistory).Debug("recorded %s: %s", kind, summary)
	return nil
}

// Recent returns up to n entries, newest first.
func (s *Store) Recent(n int) ([]Entry, error) {
	if n < 1 {
		return nil, fmt.Errorf("history: n must be positive, got %d", n)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(
		`SELECT id, kind, summary, payload, created_at FROM activity
		 ORDER BY created_at DESC, id LIMIT ?`, n,
	)
	if err != nil {
		return nil, fmt.Errorf("history: query failed: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var kind string
		if err := rows.Scan(&e.ID, &kind, &e.Summary, &e.Payload, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("history: scan failed: %w", err)
		}
		e.Kind = Kind(kind)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Clear wipes all history.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM activity`); err != nil {
		return fmt.Errorf("history: clear failed: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
