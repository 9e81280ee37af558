package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func exerciseStorage(t *testing.T, s Storage) {
	t.Helper()

	if _, err := s.Get("weather-app-theme"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on empty storage, got %v", err)
	}

	if err := s.Set("weather-app-theme", "light"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Set("weather-app-theme", "dark"); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	v, err := s.Get("weather-app-theme")
	if err != nil || v != "dark" {
		t.Fatalf("Get = %q, %v; want dark", v, err)
	}

	if err := s.Set("weather-app-settings", `{"name":"Ann"}`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Remove("weather-app-settings"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := s.Get("weather-app-settings"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected removed key to be missing, got %v", err)
	}
	if err := s.Remove("never-set"); err != nil {
		t.Fatalf("removing a missing key should succeed, got %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStorage(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.json")
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	exerciseStorage(t, s)

	// A second handle sees the persisted value.
	again, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if v, err := again.Get("weather-app-theme"); err != nil || v != "dark" {
		t.Fatalf("reopened Get = %q, %v", v, err)
	}
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	if _, err := s.Get("anything"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected a corrupt file to read as empty, got %v", err)
	}

	if err := s.Set("k", "v"); err != nil {
		t.Fatalf("Set over a corrupt file failed: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), `"k": "v"`) {
		t.Fatalf("expected the file to be rewritten, got %q", raw)
	}
	if v, err := s.Get("k"); err != nil || v != "v" {
		t.Fatalf("Get after rewrite = %q, %v", v, err)
	}
}

func TestSQLiteStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "prefs.db")
	s, err := NewSQLStore("sqlite", dbPath)
	if err != nil {
		t.Fatalf("NewSQLStore failed: %v", err)
	}
	defer s.Close()

	exerciseStorage(t, s)
}

func TestOpenUnknownDriver(t *testing.T) {
	if _, err := Open("redis", ""); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestRebindPostgres(t *testing.T) {
	s := &SQLStore{driver: "postgres"}
	got := s.rebind("INSERT INTO t VALUES(?,?,?)")
	if got != "INSERT INTO t VALUES($1,$2,$3)" {
		t.Fatalf("unexpected rebind %q", got)
	}
}
