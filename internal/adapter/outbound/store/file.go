package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
)

// document is the on-disk structure of the JSON file backend.
type document struct {
	// Version is the schema version for forward compatibility. Currently "1".
	Version string `json:"version"`

	// Entries maps namespaced keys to their raw JSON values.
	Entries map[string]json.RawMessage `json:"entries"`

	// CreatedAt is when this file was first written.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when this file was last modified.
	UpdatedAt time.Time `json:"updated_at"`
}

// FileStore persists key-value entries in a single JSON document.
// It provides atomic writes (write-tmp-then-rename), automatic backups,
// and file locking (flock for cross-process, mutex for in-process).
type FileStore struct {
	path      string
	namespace string
	mu        sync.Mutex
	logger    *slog.Logger

	// lastDigest is the xxhash of the last payload written; unchanged
	// payloads skip the disk write entirely.
	lastDigest uint64
}

// NewFileStore creates a FileStore for the given file path and namespace.
// An empty namespace falls back to DefaultNamespace.
func NewFileStore(path, namespace string, logger *slog.Logger) *FileStore {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &FileStore{
		path:      path,
		namespace: namespace,
		logger:    logger,
	}
}

// Get reads the value stored under key into out.
func (s *FileStore) Get(key string, out any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return false, err
	}
	raw, ok := doc.Entries[s.namespace+key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("decode value for %q: %w", key, err)
	}
	return true, nil
}

// Set persists value under key, replacing any previous value.
func (s *FileStore) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode value for %q: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	doc.Entries[s.namespace+key] = raw
	return s.save(doc)
}

// Remove deletes the value stored under key. Removing an absent key is a
// no-op.
func (s *FileStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := doc.Entries[s.namespace+key]; !ok {
		return nil
	}
	delete(doc.Entries, s.namespace+key)
	return s.save(doc)
}

// Clear removes every entry in this store's namespace. Entries outside the
// namespace are left untouched.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	removed := 0
	for k := range doc.Entries {
		if len(k) >= len(s.namespace) && k[:len(s.namespace)] == s.namespace {
			delete(doc.Entries, k)
			removed++
		}
	}
	if removed == 0 {
		return nil
	}
	return s.save(doc)
}

// Exists returns true if the backing file exists on disk.
func (s *FileStore) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Path returns the configured file path.
func (s *FileStore) Path() string {
	return s.path
}

// load reads and parses the backing file. A missing file yields an empty
// document. Caller must hold s.mu.
func (s *FileStore) load() (*document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			now := time.Now().UTC()
			return &document{
				Version:   "1",
				Entries:   map[string]json.RawMessage{},
				CreatedAt: now,
				UpdatedAt: now,
			}, nil
		}
		return nil, fmt.Errorf("read store file: %w", err)
	}

	// Warn if the existing file has permissions more open than 0600.
	// Skip on Windows where Unix permission bits are not supported.
	if runtime.GOOS != "windows" {
		if info, statErr := os.Stat(s.path); statErr == nil {
			mode := info.Mode().Perm()
			if mode&0077 != 0 {
				s.logger.Warn("store file has too-open permissions, should be 0600",
					"path", s.path, "current_mode", fmt.Sprintf("%04o", mode))
			}
		}
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse store file: %w", err)
	}
	if doc.Entries == nil {
		doc.Entries = map[string]json.RawMessage{}
	}
	return &doc, nil
}

// save writes the document to disk atomically.
//
// The write sequence is:
//  1. Acquire flock on path+".lock"
//  2. Copy current file to path+".bak" (skipped if no current file)
//  3. Marshal document as indented JSON
//  4. Write to path+".tmp" with 0600 permissions
//  5. Fsync the temp file
//  6. Rename path+".tmp" -> path
//  7. Release flock
//
// Caller must hold s.mu.
func (s *FileStore) save(doc *document) error {
	doc.UpdatedAt = time.Now().UTC()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store: %w", err)
	}
	data = append(data, '\n')

	// Skip the write when the payload is byte-identical to the last one.
	digest := xxhash.Sum64(data)
	if digest == s.lastDigest && s.Exists() {
		s.logger.Debug("store unchanged, skipping write", "path", s.path)
		return nil
	}

	lockPath := s.path + ".lock"
	lockFile, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}
	defer func() { _ = lockFile.Close() }()

	if err := flockLock(lockFile.Fd()); err != nil {
		return fmt.Errorf("acquire file lock: %w", err)
	}
	defer flockUnlock(lockFile.Fd()) //nolint:errcheck

	// Backup the current file (ignored when the file does not exist yet).
	if currentData, readErr := os.ReadFile(s.path); readErr == nil {
		bakPath := s.path + ".bak"
		if writeErr := os.WriteFile(bakPath, currentData, 0600); writeErr != nil {
			s.logger.Warn("failed to create backup", "error", writeErr)
		}
	}

	if err := s.writeAtomic(data); err != nil {
		return err
	}
	s.lastDigest = digest

	// Explicitly ensure 0600 permissions after rename as a safety net.
	if err := os.Chmod(s.path, 0600); err != nil {
		s.logger.Warn("failed to set permissions on store file", "error", err)
	}

	s.logger.Debug("store saved", "path", s.path)
	return nil
}

// writeAtomic writes data to a temp file, fsyncs it, and renames it over
// the target path. On any error the temp file is cleaned up.
func (s *FileStore) writeAtomic(data []byte) error {
	tmpPath := s.path + ".tmp"

	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	cleanup := func() {
		_ = f.Close()
		_ = os.Remove(tmpPath)
	}

	if _, err := f.Write(data); err != nil {
		cleanup()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("fsync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp to store: %w", err)
	}
	return nil
}

// Compile-time interface verification.
var _ Store = (*FileStore)(nil)
