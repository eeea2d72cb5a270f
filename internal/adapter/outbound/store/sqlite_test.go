package store

import (
	"errors"
	"path/filepath"
	"testing"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLiteStore(filepath.Join(t.TempDir(), "peopledesk.db"), "", testLogger())
	if err != nil {
		t.Fatalf("OpenSQLiteStore() returned unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	s := newTestSQLiteStore(t)

	type payload struct {
		Name string `json:"name"`
	}
	if err := s.Set("k", payload{Name: "alpha"}); err != nil {
		t.Fatalf("Set() returned unexpected error: %v", err)
	}

	var out payload
	found, err := s.Get("k", &out)
	if err != nil {
		t.Fatalf("Get() returned unexpected error: %v", err)
	}
	if !found || out.Name != "alpha" {
		t.Errorf("round-trip mismatch: found=%v out=%+v", found, out)
	}
}

func TestSQLiteStore_UpsertReplaces(t *testing.T) {
	s := newTestSQLiteStore(t)

	if err := s.Set("k", "first"); err != nil {
		t.Fatalf("Set() returned unexpected error: %v", err)
	}
	if err := s.Set("k", "second"); err != nil {
		t.Fatalf("Set() returned unexpected error: %v", err)
	}

	var out string
	if _, err := s.Get("k", &out); err != nil {
		t.Fatalf("Get() returned unexpected error: %v", err)
	}
	if out != "second" {
		t.Errorf("expected upserted value 'second', got %q", out)
	}
}

func TestSQLiteStore_PersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "peopledesk.db")

	first, err := OpenSQLiteStore(path, "", testLogger())
	if err != nil {
		t.Fatalf("OpenSQLiteStore() returned unexpected error: %v", err)
	}
	if err := first.Set("k", 42); err != nil {
		t.Fatalf("Set() returned unexpected error: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close() returned unexpected error: %v", err)
	}

	second, err := OpenSQLiteStore(path, "", testLogger())
	if err != nil {
		t.Fatalf("OpenSQLiteStore() returned unexpected error: %v", err)
	}
	defer func() { _ = second.Close() }()

	var out int
	found, err := second.Get("k", &out)
	if err != nil {
		t.Fatalf("Get() returned unexpected error: %v", err)
	}
	if !found || out != 42 {
		t.Errorf("expected persisted value 42, found=%v out=%d", found, out)
	}
}

func TestSQLiteStore_ClearOnlyTouchesOwnNamespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shared.db")

	a, err := OpenSQLiteStore(path, "hrms_", testLogger())
	if err != nil {
		t.Fatalf("OpenSQLiteStore() returned unexpected error: %v", err)
	}
	defer func() { _ = a.Close() }()
	b, err := OpenSQLiteStore(path, "other_", testLogger())
	if err != nil {
		t.Fatalf("OpenSQLiteStore() returned unexpected error: %v", err)
	}
	defer func() { _ = b.Close() }()

	if err := a.Set("k", "a"); err != nil {
		t.Fatalf("Set() returned unexpected error: %v", err)
	}
	if err := b.Set("k", "b"); err != nil {
		t.Fatalf("Set() returned unexpected error: %v", err)
	}

	if err := a.Clear(); err != nil {
		t.Fatalf("Clear() returned unexpected error: %v", err)
	}

	var out string
	found, err := a.Get("k", &out)
	if err != nil {
		t.Fatalf("Get() returned unexpected error: %v", err)
	}
	if found {
		t.Error("expected cleared namespace to be empty")
	}
	found, err = b.Get("k", &out)
	if err != nil {
		t.Fatalf("Get() returned unexpected error: %v", err)
	}
	if !found || out != "b" {
		t.Errorf("expected other namespace to survive Clear, found=%v out=%q", found, out)
	}
}

func TestSQLiteStore_ClosedStoreRejectsOperations(t *testing.T) {
	s, err := OpenSQLiteStore(filepath.Join(t.TempDir(), "peopledesk.db"), "", testLogger())
	if err != nil {
		t.Fatalf("OpenSQLiteStore() returned unexpected error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() returned unexpected error: %v", err)
	}

	if err := s.Set("k", 1); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed from Set, got %v", err)
	}
	var out int
	if _, err := s.Get("k", &out); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed from Get, got %v", err)
	}
	if err := s.Remove("k"); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed from Remove, got %v", err)
	}
}
