package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// SQLiteStore implements Store on a single SQLite table:
//
//	CREATE TABLE IF NOT EXISTS kv (key TEXT PRIMARY KEY, value BLOB NOT NULL)
//
// Keys carry the namespace prefix, matching the file backend, so a shared
// database file cannot collide with unrelated data.
type SQLiteStore struct {
	db        *sql.DB
	namespace string
	mu        sync.Mutex
	closed    bool
	logger    *slog.Logger
}

// OpenSQLiteStore opens (creating if necessary) the SQLite database at path
// and ensures the kv table exists. An empty namespace falls back to
// DefaultNamespace.
func OpenSQLiteStore(path, namespace string, logger *slog.Logger) (*SQLiteStore, error) {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	// The store is single-writer by contract; a single connection avoids
	// SQLITE_BUSY on concurrent statement preparation.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (key TEXT PRIMARY KEY, value BLOB NOT NULL)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create kv table: %w", err)
	}

	logger.Debug("sqlite store opened", "path", path)
	return &SQLiteStore{db: db, namespace: namespace, logger: logger}, nil
}

// Get reads the value stored under key into out.
func (s *SQLiteStore) Get(key string, out any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false, ErrClosed
	}

	var raw []byte
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, s.namespace+key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query %q: %w", key, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("decode value for %q: %w", key, err)
	}
	return true, nil
}

// Set persists value under key, replacing any previous value.
func (s *SQLiteStore) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode value for %q: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	if _, err := s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		s.namespace+key, raw,
	); err != nil {
		return fmt.Errorf("upsert %q: %w", key, err)
	}
	return nil
}

// Remove deletes the value stored under key. Removing an absent key is a
// no-op.
func (s *SQLiteStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	if _, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, s.namespace+key); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

// Clear removes every entry in this store's namespace.
func (s *SQLiteStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	// ESCAPE so namespaces containing LIKE metacharacters match literally.
	pattern := likeEscape(s.namespace) + "%"
	if _, err := s.db.Exec(`DELETE FROM kv WHERE key LIKE ? ESCAPE '\'`, pattern); err != nil {
		return fmt.Errorf("clear namespace: %w", err)
	}
	return nil
}

// Close releases the underlying database handle. Subsequent operations
// return ErrClosed.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// likeEscape escapes LIKE metacharacters with backslash.
func likeEscape(in string) string {
	out := make([]byte, 0, len(in))
	for i := 0; i < len(in); i++ {
		c := in[i]
		if c == '%' || c == '_' || c == '\\' {
			out = append(out, '\\')
		}
		out = append(out, c)
	}
	return string(out)
}

// Compile-time interface verification.
var _ Store = (*SQLiteStore)(nil)
