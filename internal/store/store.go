// Package store provides the durable key/value storage backing user
// preferences: one entry per key, read at hydration, written on every
// mutation.
package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a key has no stored value.
	ErrNotFound = errors.New("no stored value for key")
)

// Storage is the contract every backend (memory, file, SQL) satisfies.
type Storage interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Remove(key string) error
	Close() error
}

// Open selects a backend by driver name.
func Open(driver, dsn string) (Storage, error) {
	switch driver {
	case "memory":
		return NewMemoryStore(), nil
	case "file":
		return NewFileStore(dsn)
	case "sqlite", "postgres":
		return NewSQLStore(driver, dsn)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}
