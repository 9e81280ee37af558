package store

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// SQLStore implements Storage on a key/value table, using either the pure
// Go sqlite driver or lib/pq.
type SQLStore struct {
	db     *sql.DB
	driver string
}

const kvSchema = `CREATE TABLE IF NOT EXISTS preferences (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TEXT NOT NULL
);`

// NewSQLStore opens the database and applies the schema.
func NewSQLStore(driver, dsn string) (*SQLStore, error) {
	if driver != "sqlite" && driver != "postgres" {
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	if driver == "sqlite" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			log.Println("warning: could not set WAL mode:", err)
		}
	}

	if _, err := db.Exec(kvSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLStore{db: db, driver: driver}, nil
}

func (s *SQLStore) Get(key string) (string, error) {
	var v string
	err := s.db.QueryRow(s.rebind(`SELECT value FROM preferences WHERE key = ?`), key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

func (s *SQLStore) Set(key, value string) error {
	_, err := s.db.Exec(s.rebind(`INSERT INTO preferences(key, value, updated_at) VALUES(?,?,?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`),
		key, value, time.Now().UTC().Format(time.RFC3339))
	return err
}

func (s *SQLStore) Remove(key string) error {
	_, err := s.db.Exec(s.rebind(`DELETE FROM preferences WHERE key = ?`), key)
	return err
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

// rebind rewrites ? placeholders into $n for postgres.
func (s *SQLStore) rebind(query string) string {
	if s.driver != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
