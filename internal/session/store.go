package session

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

// Store persists the session credential across process restarts.
//
// Load returns the empty string when no credential is stored; absence is not
// an error.
type Store interface {
	Load() (string, error)
	Save(credential string) error
	Clear() error
}

// credentialKey names the single persisted entry. Absence of the row means
// "logged out".
const credentialKey = "access_token"

// SQLiteStore implements [Store] on a single-row SQLite table.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the session database at the specified
// path. The path can be ":memory:" for an in-memory store.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create storage directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping session database: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS session (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create session table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Load retrieves the persisted credential, or "" when none is stored.
func (s *SQLiteStore) Load() (string, error) {
	var credential string

	query := `SELECT value FROM session WHERE key = ?`
	err := s.db.QueryRow(query, credentialKey).Scan(&credential)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query session: %w", err)
	}

	return credential, nil
}

// Save upserts the credential so a later reload finds it.
func (s *SQLiteStore) Save(credential string) error {
	query := `
		INSERT INTO session (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`
	if _, err := s.db.Exec(query, credentialKey, credential); err != nil {
		return fmt.Errorf("failed to save credential: %w", err)
	}
	return nil
}

// Clear removes the persisted credential. Clearing an empty store is a no-op.
func (s *SQLiteStore) Clear() error {
	query := `DELETE FROM session WHERE key = ?`
	if _, err := s.db.Exec(query, credentialKey); err != nil {
		return fmt.Errorf("failed to clear credential: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// MemoryStore implements [Store] without persistence. It backs sessions when
// the on-disk store cannot be opened; the credential lives only as long as
// the process.
type MemoryStore struct {
	mu         sync.Mutex
	credential string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.credential, nil
}

func (s *MemoryStore) Save(credential string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credential = credential
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credential = ""
	return nil
}
