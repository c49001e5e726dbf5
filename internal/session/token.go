package session

import (
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

// TokenKey is the well-known storage key the session token lives under.
// The value is an opaque user id; its presence across restarts is the
// only durable state in the system.
const TokenKey = "brocode-auth-userid"

// TokenStore persists the opaque session token. Load returns "" when no
// token is stored; Clear on an empty store is a no-op.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// SQLiteTokenStore keeps the token in a small SQLite key/value table so
// it survives process restarts.
type SQLiteTokenStore struct {
	db *sql.DB
}

// OpenTokenStore creates or opens the token database at path. Applies
// required pragmas and the schema; idempotent, safe to call repeatedly.
func OpenTokenStore(path string) (*SQLiteTokenStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open token store: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect token store: %w", err)
	}

	// SQLite supports one writer at a time; a single connection avoids
	// SQLITE_BUSY on concurrent saves.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS session_state (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply token schema: %w", err)
	}

	return &SQLiteTokenStore{db: db}, nil
}

// Close closes the underlying database.
func (s *SQLiteTokenStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Load returns the stored token, or "" when none exists.
func (s *SQLiteTokenStore) Load() (string, error) {
	var token string
	err := s.db.QueryRow(
		"SELECT value FROM session_state WHERE key = ?", TokenKey,
	).Scan(&token)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load token: %w", err)
	}
	return token, nil
}

// Save upserts the token under the well-known key.
func (s *SQLiteTokenStore) Save(token string) error {
	_, err := s.db.Exec(`
		INSERT INTO session_state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, TokenKey, token)
	if err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// Clear removes the token. Clearing an empty store succeeds.
func (s *SQLiteTokenStore) Clear() error {
	if _, err := s.db.Exec("DELETE FROM session_state WHERE key = ?", TokenKey); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// MemoryTokenStore is an in-process TokenStore for tests.
type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
}

// NewMemoryTokenStore creates an empty in-memory token store.
func NewMemoryTokenStore() *MemoryTokenStore { return &MemoryTokenStore{} }

// Load returns the stored token, or "".
func (s *MemoryTokenStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

// Save stores the token.
func (s *MemoryTokenStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

// Clear removes the token.
func (s *MemoryTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
