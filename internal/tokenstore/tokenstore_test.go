package tokenstore

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestMemoryStore_Lifecycle(t *testing.T) {
	s := NewMemoryStore()

	if _, err := s.Get(); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on empty store, got %v", err)
	}

	if err := s.Set("abc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := Token(s); got != "abc" {
		t.Errorf("expected 'abc', got '%s'", got)
	}

	if err := s.Remove(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := Token(s); got != "" {
		t.Errorf("expected empty token after remove, got '%s'", got)
	}
}

func TestToken_NilStore(t *testing.T) {
	if got := Token(nil); got != "" {
		t.Errorf("expected empty token, got '%s'", got)
	}
}

func TestSQLiteStore_PersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token.db")

	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("failed to open: %v", err)
	}

	if _, err := s.Get(); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	if err := s.Set("first"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := s.Set("second"); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	reopened, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("failed to reopen: %v", err)
	}
	defer reopened.Close()

	token, err := reopened.Get()
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if token != "second" {
		t.Errorf("expected 'second', got '%s'", token)
	}

	if err := reopened.Remove(); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if got := Token(reopened); got != "" {
		t.Errorf("expected empty token after remove, got '%s'", got)
	}
}
